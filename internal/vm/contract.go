// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"github.com/holiman/uint256"
	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/internal/cache"
)

// ContractRef is anything that can be addressed as the caller or callee of
// a message call: an externally owned account, or a running Contract.
type ContractRef interface {
	Address() types.Address
}

// AccountRef wraps a plain address as a ContractRef, used for the
// transaction sender and any callee that turns out to hold no code.
type AccountRef types.Address

// Address returns the wrapped address.
func (ar AccountRef) Address() types.Address {
	return types.Address(ar)
}

// Contract is the running state of a single message call: its code, the
// remaining gas, and the operands the instructions operate on reach it
// through the EVM and ScopeContext instead.
type Contract struct {
	CallerAddress types.Address
	caller        ContractRef
	self          ContractRef

	jumpdests map[types.Hash][]uint64

	Code     []byte
	CodeHash types.Hash
	CodeAddr *types.Address
	Input    []byte

	Gas   uint64
	value *uint256.Int

	skipAnalysis bool
	IsDeployment bool
	IsSystemCall bool

	EOFContainer *EOFContainer
	CodeSection  int
}

// NewContract returns a Contract ready to execute code on behalf of object,
// invoked by caller. When caller is itself a *Contract, the jumpdest
// analysis cache is shared by reference down the call chain instead of
// being recomputed per frame.
func NewContract(caller ContractRef, object ContractRef, value *uint256.Int, gas uint64, skipAnalysis bool) *Contract {
	c := &Contract{CallerAddress: caller.Address(), caller: caller, self: object}

	if parent, ok := caller.(*Contract); ok {
		c.jumpdests = parent.jumpdests
	} else {
		c.jumpdests = make(map[types.Hash][]uint64)
	}

	if value == nil {
		value = new(uint256.Int)
	}
	c.value = value
	c.Gas = gas
	c.skipAnalysis = skipAnalysis
	return c
}

// AsDelegate turns contract into a delegate call's contract: the caller
// address and call value are inherited from the contract that invoked
// DELEGATECALL rather than from the immediate caller argument.
func (c *Contract) AsDelegate() *Contract {
	parent := c.caller.(*Contract)
	c.CallerAddress = parent.CallerAddress
	c.value = parent.value
	return c
}

// activeCode returns the bytecode currently executing: the selected EOF
// code section when the contract is running an EOF container (CALLF/JUMPF
// switch CodeSection without touching Code itself), or c.Code otherwise.
func (c *Contract) activeCode() []byte {
	if c.EOFContainer != nil {
		if section := c.EOFContainer.GetCodeSection(c.CodeSection); section != nil {
			return section
		}
	}
	return c.Code
}

// GetOp returns the opcode at position n, or STOP once n runs past the end
// of the contract's code (the Yellow Paper's implicit STOP-at-end rule).
func (c *Contract) GetOp(n uint64) OpCode {
	code := c.activeCode()
	if n < uint64(len(code)) {
		return OpCode(code[n])
	}
	return STOP
}

// Caller returns the address that invoked this contract.
func (c *Contract) Caller() types.Address {
	return c.CallerAddress
}

// UseGas deducts gas from the contract's remaining gas, reporting false
// without modifying Gas if that would underflow.
func (c *Contract) UseGas(gas uint64) bool {
	if c.Gas < gas {
		return false
	}
	c.Gas -= gas
	return true
}

// RefundGas returns previously-spent gas to the contract, used by SSTORE
// refunds and by the top-level caller reclaiming unused gas.
func (c *Contract) RefundGas(gas uint64) {
	if gas == 0 {
		return
	}
	c.Gas += gas
}

// Address returns the address of the contract currently running.
func (c *Contract) Address() types.Address {
	return c.self.Address()
}

// Value returns the call's endowment in wei.
func (c *Contract) Value() *uint256.Int {
	return c.value
}

// SetCode sets the code to execute and the hash it was loaded under.
func (c *Contract) SetCode(hash types.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
}

// SetCallCode sets the code, its hash, and the address it was loaded from
// (EIP-2929 warms CodeAddr, not self, for CALLCODE/DELEGATECALL/STATICCALL
// targets whose code lives at a different address than the account being
// called).
func (c *Contract) SetCallCode(addr *types.Address, hash types.Hash, code []byte) {
	c.Code = code
	c.CodeHash = hash
	c.CodeAddr = addr
}

// jumpdestPositions returns the set of valid JUMPDEST positions for the
// contract's current code. It checks the call chain's own jumpdests map
// first, then analysisCache (the EVM instance's cross-transaction cache,
// populated by some earlier, unrelated call chain that happened to run the
// same code), and only calls analyzeJumpdests if both miss.
func (c *Contract) jumpdestPositions(analysisCache *cache.LRU[types.Hash, []uint64]) []uint64 {
	if dests, ok := c.jumpdests[c.CodeHash]; ok {
		return dests
	}
	if analysisCache != nil {
		if dests, ok := analysisCache.Get(c.CodeHash); ok {
			c.jumpdests[c.CodeHash] = dests
			return dests
		}
	}
	dests := analyzeJumpdests(c.Code)
	if analysisCache != nil {
		analysisCache.Set(c.CodeHash, dests)
	}
	c.jumpdests[c.CodeHash] = dests
	return dests
}

// isCode reports whether position pos in the contract's code is a JUMPDEST
// instruction reachable as code, rather than falling inside a PUSH's
// immediate data.
func (c *Contract) isCode(pos uint64, analysisCache *cache.LRU[types.Hash, []uint64]) bool {
	if c.skipAnalysis {
		return pos < uint64(len(c.Code)) && OpCode(c.Code[pos]) == JUMPDEST
	}
	for _, d := range c.jumpdestPositions(analysisCache) {
		if d == pos {
			return true
		}
	}
	return false
}

// validJumpdest reports whether dest is an in-bounds JUMPDEST instruction
// that the code analysis hasn't ruled out as unreachable push data.
// analysisCache may be nil (e.g. in tests constructing a bare Contract),
// in which case analysis is simply never shared across call chains.
func (c *Contract) validJumpdest(dest *uint256.Int, analysisCache *cache.LRU[types.Hash, []uint64]) bool {
	udest, overflow := SafeUint256ToUint64(dest)
	if overflow || udest >= uint64(len(c.Code)) {
		return false
	}
	if OpCode(c.Code[udest]) != JUMPDEST {
		return false
	}
	return c.isCode(udest, analysisCache)
}

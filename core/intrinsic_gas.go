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

// Package core drives a single transaction's execution end to end: the
// pre-execution accounting the original's EthPreExecution handler performs
// (load_accounts / deduct_caller / apply_eip7702_auth_list), the call into
// the interpreter, and the post-execution accounting (reimburse_caller /
// reward_beneficiary / refund-capped finalization).
package core

import (
	"math"

	"github.com/vertexchain/evmcore/common/transaction"
	"github.com/vertexchain/evmcore/internal/vm"
	"github.com/vertexchain/evmcore/params"
	pkgerrors "github.com/vertexchain/evmcore/pkg/errors"
)

// IntrinsicGas computes the gas a transaction owes before a single EVM
// opcode runs: the flat per-transaction base, calldata bytes (EIP-7623
// floor-priced under Pectra), EIP-2930 access-list entries, EIP-3860
// init-code words (contract creation only, Shanghai+), and EIP-7702
// authorization tuples.
func IntrinsicGas(data []byte, accessList transaction.AccessList, authListLen int, isContractCreation bool, rules *params.Rules) (uint64, error) {
	gas := vm.IntrinsicGasEIP7623(data, accessList, isContractCreation, rules.IsPrague)

	if isContractCreation && rules.IsEIP3860 {
		lenWords := toWordSize(uint64(len(data)))
		if lenWords > (math.MaxUint64-gas)/params.InitCodeWordGas {
			return 0, pkgerrors.ErrGasUintOverflow
		}
		gas += lenWords * params.InitCodeWordGas
	}

	if authListLen > 0 {
		n := uint64(authListLen)
		if n > (math.MaxUint64-gas)/params.TxAuthTupleGas {
			return 0, pkgerrors.ErrGasUintOverflow
		}
		gas += n * params.TxAuthTupleGas
	}

	return gas, nil
}

// toWordSize rounds n up to the next multiple of 32, expressed in words,
// matching the Yellow Paper's ceil(n / 32) used throughout gas metering.
func toWordSize(n uint64) uint64 {
	if n > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (n + 31) / 32
}

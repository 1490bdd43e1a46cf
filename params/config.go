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

// Package params carries the fork-configuration design from spec §9: a
// ChainConfig is data (chain id, per-fork activation points); it compiles
// down to a Rules snapshot of boolean flags that the rest of the engine
// reads, so that no component needs to know block numbers or timestamps,
// only "is this behavior active".
package params

import "math/big"

// SpecId is the ordered fork enum. Forks are comparable (SpecId values
// increase monotonically with protocol age), which lets gating code write
// `rules.Spec >= Berlin` where that reads more naturally than a boolean.
type SpecId int

const (
	Frontier SpecId = iota
	Homestead
	TangerineWhistle // EIP-150
	SpuriousDragon   // EIP-158/161
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	Berlin
	London
	Paris // The Merge
	Shanghai
	Cancun
	Prague
	Osaka
)

func (s SpecId) String() string {
	switch s {
	case Frontier:
		return "Frontier"
	case Homestead:
		return "Homestead"
	case TangerineWhistle:
		return "TangerineWhistle"
	case SpuriousDragon:
		return "SpuriousDragon"
	case Byzantium:
		return "Byzantium"
	case Constantinople:
		return "Constantinople"
	case Petersburg:
		return "Petersburg"
	case Istanbul:
		return "Istanbul"
	case Berlin:
		return "Berlin"
	case London:
		return "London"
	case Paris:
		return "Paris"
	case Shanghai:
		return "Shanghai"
	case Cancun:
		return "Cancun"
	case Prague:
		return "Prague"
	case Osaka:
		return "Osaka"
	default:
		return "Unknown"
	}
}

// ChainConfig is the persisted, human-edited description of a chain's fork
// schedule: block-number-activated forks up through the Merge, and
// timestamp-activated forks from Shanghai onward (mirrors mainnet's own
// switch from block-based to time-based fork activation).
type ChainConfig struct {
	ChainID *big.Int

	HomesteadBlock        *big.Int
	EIP150Block           *big.Int
	EIP155Block           *big.Int
	EIP158Block           *big.Int
	ByzantiumBlock        *big.Int
	ConstantinopleBlock   *big.Int
	PetersburgBlock       *big.Int
	IstanbulBlock         *big.Int
	BerlinBlock           *big.Int
	LondonBlock           *big.Int
	MergeNetsplitBlock    *big.Int

	ShanghaiTime *uint64
	CancunTime   *uint64
	PragueTime   *uint64
	OsakaTime    *uint64

	// EOF gates the EVM Object Format container validation path. It has no
	// canonical mainnet activation yet, so it is keyed on its own flag
	// rather than folded into Osaka.
	EnableEOF bool
}

// MainnetChainConfig mirrors Ethereum mainnet's published fork schedule, for
// callers that just want "the real rules" without hand-building one.
var MainnetChainConfig = &ChainConfig{
	ChainID:             big.NewInt(1),
	HomesteadBlock:      big.NewInt(1150000),
	EIP150Block:         big.NewInt(2463000),
	EIP155Block:         big.NewInt(2675000),
	EIP158Block:         big.NewInt(2675000),
	ByzantiumBlock:      big.NewInt(4370000),
	ConstantinopleBlock: big.NewInt(7280000),
	PetersburgBlock:     big.NewInt(7280000),
	IstanbulBlock:       big.NewInt(9069000),
	BerlinBlock:         big.NewInt(12244000),
	LondonBlock:         big.NewInt(12965000),
	MergeNetsplitBlock:  big.NewInt(15537394),
	ShanghaiTime:        u64p(1681338455),
	CancunTime:          u64p(1710338135),
}

// AllDevChainConfig activates every fork, including Prague/Osaka, at genesis
// (block 0, time 0) -- the configuration tests and local-dev tooling want.
var AllDevChainConfig = &ChainConfig{
	ChainID:             big.NewInt(1337),
	HomesteadBlock:      big.NewInt(0),
	EIP150Block:         big.NewInt(0),
	EIP155Block:         big.NewInt(0),
	EIP158Block:         big.NewInt(0),
	ByzantiumBlock:      big.NewInt(0),
	ConstantinopleBlock: big.NewInt(0),
	PetersburgBlock:     big.NewInt(0),
	IstanbulBlock:       big.NewInt(0),
	BerlinBlock:         big.NewInt(0),
	LondonBlock:         big.NewInt(0),
	MergeNetsplitBlock:  big.NewInt(0),
	ShanghaiTime:        u64p(0),
	CancunTime:          u64p(0),
	PragueTime:          u64p(0),
	OsakaTime:           u64p(0),
}

func u64p(v uint64) *uint64 { return &v }

func isBlockActivated(activation *big.Int, blockNumber uint64) bool {
	if activation == nil {
		return false
	}
	return activation.Cmp(new(big.Int).SetUint64(blockNumber)) <= 0
}

func isTimeActivated(activation *uint64, timestamp uint64) bool {
	if activation == nil {
		return false
	}
	return *activation <= timestamp
}

// Rules is the compiled, frame-cacheable snapshot of which behaviors are
// active at a given (blockNumber, timestamp) pair, per spec §9's "fork
// configuration" design note. Handlers and the gas table read Rules, never
// ChainConfig or raw block numbers.
type Rules struct {
	ChainID *big.Int
	Spec    SpecId

	IsHomestead bool
	IsEIP150    bool
	IsEIP155    bool
	IsEIP158    bool

	IsByzantium      bool
	IsConstantinople bool
	IsPetersburg     bool
	IsIstanbul       bool
	IsBerlin         bool
	IsLondon         bool
	IsMerge          bool
	IsShanghai       bool
	IsCancun         bool
	IsPrague         bool
	IsOsaka          bool

	// IsEIP2929 mirrors IsBerlin; named separately because call sites read
	// more clearly when they're gating on the EIP rather than the fork.
	IsEIP2929 bool
	// IsEIP1153 (transient storage) mirrors IsCancun.
	IsEIP1153 bool
	// IsEIP4844 (blob transactions) mirrors IsCancun.
	IsEIP4844 bool
	// IsEIP6780 (selfdestruct semantics) mirrors IsCancun.
	IsEIP6780 bool
	// IsEIP3860 (init code size limit / word gas) mirrors IsShanghai.
	IsEIP3860 bool
	// IsEIP7702 (set-code authorizations) mirrors IsPrague.
	IsEIP7702 bool

	IsEOF bool
}

// Rules compiles the config down to the flags active at the given point in
// chain history. blockNumber gates pre-Merge forks; timestamp gates
// Shanghai onward.
func (c *ChainConfig) Rules(blockNumber uint64, timestamp uint64) Rules {
	r := Rules{
		ChainID:          c.ChainID,
		IsHomestead:      isBlockActivated(c.HomesteadBlock, blockNumber),
		IsEIP150:         isBlockActivated(c.EIP150Block, blockNumber),
		IsEIP155:         isBlockActivated(c.EIP155Block, blockNumber),
		IsEIP158:         isBlockActivated(c.EIP158Block, blockNumber),
		IsByzantium:      isBlockActivated(c.ByzantiumBlock, blockNumber),
		IsConstantinople: isBlockActivated(c.ConstantinopleBlock, blockNumber),
		IsPetersburg:     isBlockActivated(c.PetersburgBlock, blockNumber),
		IsIstanbul:       isBlockActivated(c.IstanbulBlock, blockNumber),
		IsBerlin:         isBlockActivated(c.BerlinBlock, blockNumber),
		IsLondon:         isBlockActivated(c.LondonBlock, blockNumber),
		IsMerge:          isBlockActivated(c.MergeNetsplitBlock, blockNumber),
		IsShanghai:       isTimeActivated(c.ShanghaiTime, timestamp),
		IsCancun:         isTimeActivated(c.CancunTime, timestamp),
		IsPrague:         isTimeActivated(c.PragueTime, timestamp),
		IsOsaka:          isTimeActivated(c.OsakaTime, timestamp),
		IsEOF:            c.EnableEOF,
	}
	r.IsEIP2929 = r.IsBerlin
	r.IsEIP1153 = r.IsCancun
	r.IsEIP4844 = r.IsCancun
	r.IsEIP6780 = r.IsCancun
	r.IsEIP3860 = r.IsShanghai
	r.IsEIP7702 = r.IsPrague

	switch {
	case r.IsOsaka:
		r.Spec = Osaka
	case r.IsPrague:
		r.Spec = Prague
	case r.IsCancun:
		r.Spec = Cancun
	case r.IsShanghai:
		r.Spec = Shanghai
	case r.IsMerge:
		r.Spec = Paris
	case r.IsLondon:
		r.Spec = London
	case r.IsBerlin:
		r.Spec = Berlin
	case r.IsIstanbul:
		r.Spec = Istanbul
	case r.IsPetersburg:
		r.Spec = Petersburg
	case r.IsConstantinople:
		r.Spec = Constantinople
	case r.IsByzantium:
		r.Spec = Byzantium
	case r.IsEIP158:
		r.Spec = SpuriousDragon
	case r.IsEIP150:
		r.Spec = TangerineWhistle
	case r.IsHomestead:
		r.Spec = Homestead
	default:
		r.Spec = Frontier
	}
	return r
}

// MaxRefundQuotient returns the divisor the gas meter caps total refund
// against at finalization: gas_used/2 pre-London, gas_used/5 from London on
// (EIP-3529, spec §4.1).
func (r Rules) MaxRefundQuotient() uint64 {
	if r.IsLondon {
		return MaxRefundQuotientLondon
	}
	return MaxRefundQuotientPreLondon
}

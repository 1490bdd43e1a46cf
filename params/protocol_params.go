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

package params

// Gas schedule constants (spec §4.1/4.3/4.8). Values that changed across
// forks keep their pre- and post- names rather than being overwritten, so a
// Rules-gated call site can pick the right one explicitly.
const (
	MaximumExtraDataSize uint64 = 32

	TxGas                 uint64 = 21000
	TxGasContractCreation uint64 = 53000
	TxDataZeroGas         uint64 = 4
	TxDataNonZeroGasFrontier uint64 = 68
	TxDataNonZeroGasEIP2028  uint64 = 16 // EIP-2028: calldata gas cost reduction
	TxAccessListAddressGas     uint64 = 2400  // EIP-2930
	TxAccessListStorageKeyGas  uint64 = 1900  // EIP-2930
	TxAuthTupleGas             uint64 = 12500 // EIP-7702 per authorization tuple

	InitCodeWordGas uint64 = 2 // EIP-3860: per 32-byte word of init code

	QuadCoeffDiv uint64 = 512

	SstoreSetGas    uint64 = 20000
	SstoreResetGas  uint64 = 5000
	SstoreClearGas  uint64 = 5000
	SstoreRefundGas uint64 = 15000

	// EIP-2200 rebalanced SSTORE gas costs (Istanbul+, reused by EIP-3529).
	SstoreSentryGasEIP2200           uint64 = 2300
	SstoreNoopGasEIP2200             uint64 = 800
	SstoreDirtyGasEIP2200            uint64 = 800
	SstoreInitGasEIP2200             uint64 = 20000
	SstoreInitRefundEIP2200          uint64 = 19200
	SstoreCleanGasEIP2200            uint64 = 5000
	SstoreCleanRefundEIP2200         uint64 = 4200
	SstoreClearRefundEIP2200         uint64 = 15000
	// EIP-3529 (London): clearing-slot refund dropped from 15000 to 4800,
	// and the overall refund cap from gas_used/2 to gas_used/5.
	SstoreClearRefundEIP3529 uint64 = 4800
	MaxRefundQuotientPreLondon  uint64 = 2
	MaxRefundQuotientLondon     uint64 = 5

	JumpdestGas uint64 = 1

	CreateDataGas     uint64 = 200
	CallCreateDepth   uint64 = 1024
	ExpByteGas        uint64 = 10 // pre-EIP-160
	ExpByteGasEIP158  uint64 = 50 // EIP-160
	LogGas            uint64 = 375
	CopyGas           uint64 = 3
	StackLimit        uint64 = 1024
	LogTopicGas       uint64 = 375
	LogDataGas        uint64 = 8
	CreateGas         uint64 = 32000
	Create2Gas        uint64 = 32000
	SelfdestructRefundGas uint64 = 24000 // pre-EIP-3529 only
	MemoryGas         uint64 = 3

	TxDataNonZeroGas uint64 = 68

	CallStipend          uint64 = 2300
	CallValueTransferGas uint64 = 9000
	CallNewAccountGas    uint64 = 25000
	CallGas              uint64 = 40 // pre-EIP-150
	CallGasEIP150        uint64 = 700

	SelfdestructGasEIP150 uint64 = 5000

	Sha3Gas     uint64 = 30
	Sha3WordGas uint64 = 6

	Sha256Gas        uint64 = 60
	Sha256WordGas    uint64 = 12
	Ripemd160Gas     uint64 = 600
	Ripemd160WordGas uint64 = 120
	IdentityGas      uint64 = 15
	IdentityWordGas  uint64 = 3
	EcrecoverGas     uint64 = 3000

	// EIP-2929 (Berlin): cold/warm access pricing.
	ColdAccountAccessCostEIP2929 uint64 = 2600
	ColdSloadCostEIP2929         uint64 = 2100
	WarmStorageReadCostEIP2929   uint64 = 100

	MaxCodeSize     = 24576
	MaxInitCodeSize = 2 * MaxCodeSize // EIP-3860

	// EIP-150: 63/64ths rule cap on gas forwarded to a sub-call.
	CallGasCapDivisor uint64 = 64

	// EIP-6780 (Cancun): new-account sweep cost retained for selfdestruct of
	// accounts created earlier in the same transaction.
	SelfdestructNewAccountGas uint64 = 25000

	// EIP-4844 (Cancun): point evaluation precompile, fixed cost regardless
	// of input (the KZG verification it wraps is constant-time).
	BlobTxPointEvaluationPrecompileGas uint64 = 50000
)

// Blob gas schedule (EIP-4844/EIP-7691): mutable package vars rather than
// constants because the active schedule is fork-dependent (Cancun vs.
// Pectra raise the per-block blob count) and is installed once at process
// init by whichever fork package is linked in, mirroring how the vm
// package's own EIP activators register themselves into a table.
var (
	TargetBlobGasPerBlock  uint64 = 393216 // Cancun default: 3 blobs/block target
	MaxBlobGasPerBlock     uint64 = 786432 // Cancun default: 6 blobs/block max
	MinBlobGasprice        uint64 = 1
	BlobGaspriceUpdateFrac uint64 = 3338477

	// EIP-7702 (Prague): per-authorization-tuple gas accounting, mirrored
	// from the vm package's own constants at init so other packages (the
	// transaction driver) can read them without importing vm.
	PerAuthBaseCost     uint64 = 2500
	PerEmptyAccountCost uint64 = 25000
)

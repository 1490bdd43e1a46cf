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
	"crypto/ecdsa"
	"crypto/elliptic"
	"math/big"
)

// =============================================================================
// EIP-7212: secp256r1 (P-256) Precompile, address 0x100
//
// Verifies ECDSA signatures on the secp256r1 (P-256/prime256v1) curve, used
// by secure enclaves, passkeys, and WebAuthn. EIP-7212 does not require
// low-s malleability rejection the way Ethereum's own secp256k1 signatures
// do, so none is applied here.
//
// Input format (160 bytes):
//   - [0:32]   message hash
//   - [32:64]  r component of signature
//   - [64:96]  s component of signature
//   - [96:128] x coordinate of public key
//   - [128:160] y coordinate of public key
//
// Output:
//   - 32 bytes: 0x01 if valid, empty if invalid
// =============================================================================

const (
	// P256VerifyGas is the gas cost for P256VERIFY precompile
	P256VerifyGas = 3450

	// P256VerifyInputLength is the expected input length
	P256VerifyInputLength = 160
)

var (
	// p256Curve is the secp256r1 curve
	p256Curve = elliptic.P256()

	// p256N is the order of the curve
	p256N = p256Curve.Params().N
)

// p256Verify implements the secp256r1 signature verification precompile.
// EIP-7212: secp256r1 signature verification precompile
type p256Verify struct{}

// RequiredGas returns the gas required to execute the precompile.
func (c *p256Verify) RequiredGas(input []byte) uint64 {
	return P256VerifyGas
}

// Run executes the precompile.
func (c *p256Verify) Run(input []byte) ([]byte, error) {
	// Pad input to expected length
	if len(input) < P256VerifyInputLength {
		padded := make([]byte, P256VerifyInputLength)
		copy(padded, input)
		input = padded
	}

	// Extract components
	hash := input[0:32]
	r := new(big.Int).SetBytes(input[32:64])
	s := new(big.Int).SetBytes(input[64:96])
	x := new(big.Int).SetBytes(input[96:128])
	y := new(big.Int).SetBytes(input[128:160])

	// Validate signature components
	// r and s must be in [1, N-1]
	if r.Sign() <= 0 || r.Cmp(p256N) >= 0 {
		return nil, nil // Invalid signature returns empty, not error
	}
	if s.Sign() <= 0 || s.Cmp(p256N) >= 0 {
		return nil, nil
	}

	// Optional: Check for signature malleability (s <= N/2)
	// Some implementations require this, some don't
	// Uncomment if needed:
	// if s.Cmp(p256HalfN) > 0 {
	//     return nil, nil
	// }

	// Validate public key is on curve
	if !p256Curve.IsOnCurve(x, y) {
		return nil, nil
	}

	// Construct public key
	pubKey := &ecdsa.PublicKey{
		Curve: p256Curve,
		X:     x,
		Y:     y,
	}

	// Verify signature
	if ecdsa.Verify(pubKey, hash, r, s) {
		// Return 1 as 32-byte big-endian
		result := make([]byte, 32)
		result[31] = 1
		return result, nil
	}

	// Invalid signature returns empty output
	return nil, nil
}

// GetP256Verify returns a new p256Verify precompile instance.
func GetP256Verify() PrecompiledContract {
	return &p256Verify{}
}


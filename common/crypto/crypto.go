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

// Package crypto provides the signature-recovery primitive EIP-7702
// authorization tuples need. Transaction/authorization hashing itself lives
// in common/hash; this package only wraps secp256k1 recovery.
package crypto

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/vertexchain/evmcore/common/hash"
)

var (
	ErrInvalidSignatureLen = errors.New("crypto: invalid signature length")
	ErrInvalidRecoveryID   = errors.New("crypto: invalid recovery id")
)

// Keccak256 re-exports common/hash.Keccak256 for callers that only need
// crypto-adjacent hashing without importing common/hash directly.
func Keccak256(data ...[]byte) []byte { return hash.Keccak256(data...) }

// Ecrecover recovers the uncompressed public key (65 bytes, 0x04 prefix)
// that produced sig over hash. sig is the 65-byte [R || S || V] signature
// with V in {0, 1}.
func Ecrecover(digest []byte, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, ErrInvalidSignatureLen
	}
	if sig[64] >= 4 {
		return nil, ErrInvalidRecoveryID
	}
	// btcec expects the compact signature format: [recovery_id+27 || R || S].
	compact := make([]byte, 65)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, fmt.Errorf("crypto: ecrecover: %w", err)
	}
	return pub.SerializeUncompressed(), nil
}

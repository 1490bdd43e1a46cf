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
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"

	"golang.org/x/crypto/ripemd160"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/vertexchain/evmcore/common/crypto"
	"github.com/vertexchain/evmcore/common/crypto/bn254"
	"github.com/vertexchain/evmcore/common/types"
	"github.com/vertexchain/evmcore/params"
)

// PrecompiledContract is the interface every native precompile implements:
// RequiredGas prices the call before Run spends it.
type PrecompiledContract interface {
	RequiredGas(input []byte) uint64
	Run(input []byte) ([]byte, error)
}

// PrecompileRegistry looks up and runs precompiles for a fixed set of chain
// rules. The precompiles package implements this over a Registry built from
// a Rules snapshot; EVM.call consults it before falling through to bytecode.
type PrecompileRegistry interface {
	Lookup(addr types.Address) (PrecompiledContract, bool)
	Run(addr types.Address, input []byte, suppliedGas uint64) ([]byte, uint64, error)
	ActivePrecompiles() []types.Address
	Has(addr types.Address) bool
}

// =============================================================================
// Errors
// =============================================================================

var errBN254InvalidInput = errors.New("bn254 precompile: invalid input")

// secp256k1N is the order of the secp256k1 curve group, used to bound the
// r and s signature values ecrecover accepts.
var secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

func ecrecoverValidSignature(r, s *big.Int) bool {
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	return r.Cmp(secp256k1N) < 0 && s.Cmp(secp256k1N) < 0
}

// =============================================================================
// 0x01 ecrecover
// =============================================================================

type ecrecoverPrecompile struct{}

func (c *ecrecoverPrecompile) RequiredGas(input []byte) uint64 { return 3000 }

func (c *ecrecoverPrecompile) Run(input []byte) ([]byte, error) {
	input = precompilePadRight(input, 128)

	digest := input[0:32]
	v := input[63]
	r := new(big.Int).SetBytes(input[64:96])
	s := new(big.Int).SetBytes(input[96:128])

	if v != 27 && v != 28 {
		return nil, nil
	}
	if !ecrecoverValidSignature(r, s) {
		return nil, nil
	}

	sig := make([]byte, 65)
	rBytes, sBytes := r.Bytes(), s.Bytes()
	copy(sig[32-len(rBytes):32], rBytes)
	copy(sig[64-len(sBytes):64], sBytes)
	sig[64] = v - 27

	pub, err := crypto.Ecrecover(digest, sig)
	if err != nil {
		return nil, nil
	}

	addrHash := crypto.Keccak256(pub[1:])
	out := make([]byte, 32)
	copy(out[12:], addrHash[12:])
	return out, nil
}

// GetEcrecover returns the ecrecover precompile.
func GetEcrecover() PrecompiledContract { return &ecrecoverPrecompile{} }

// =============================================================================
// 0x02 sha256
// =============================================================================

type sha256Precompile struct{}

func (c *sha256Precompile) RequiredGas(input []byte) uint64 {
	return 60 + 12*precompileWordCount(len(input))
}

func (c *sha256Precompile) Run(input []byte) ([]byte, error) {
	h := sha256.Sum256(input)
	return h[:], nil
}

// GetSha256 returns the SHA256 precompile.
func GetSha256() PrecompiledContract { return &sha256Precompile{} }

// =============================================================================
// 0x03 ripemd160
// =============================================================================

type ripemd160Precompile struct{}

func (c *ripemd160Precompile) RequiredGas(input []byte) uint64 {
	return 600 + 120*precompileWordCount(len(input))
}

func (c *ripemd160Precompile) Run(input []byte) ([]byte, error) {
	h := ripemd160.New()
	h.Write(input)
	digest := h.Sum(nil)
	out := make([]byte, 32)
	copy(out[12:], digest)
	return out, nil
}

// GetRipemd160 returns the RIPEMD160 precompile.
func GetRipemd160() PrecompiledContract { return &ripemd160Precompile{} }

// =============================================================================
// 0x04 identity / data copy
// =============================================================================

type dataCopyPrecompile struct{}

func (c *dataCopyPrecompile) RequiredGas(input []byte) uint64 {
	return 15 + 3*precompileWordCount(len(input))
}

func (c *dataCopyPrecompile) Run(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// GetDataCopy returns the identity precompile.
func GetDataCopy() PrecompiledContract { return &dataCopyPrecompile{} }

// =============================================================================
// 0x05 modexp
// =============================================================================

type bigModExpPrecompile struct {
	eip2565 bool
}

func (c *bigModExpPrecompile) RequiredGas(input []byte) uint64 {
	input = precompilePadRight(input, 96)
	baseLen := new(big.Int).SetBytes(input[0:32]).Uint64()
	expLen := new(big.Int).SetBytes(input[32:64]).Uint64()
	modLen := new(big.Int).SetBytes(input[64:96]).Uint64()

	adjExpLen := adjustedExpLen(expLen, baseLen, input[96:])

	maxLen := baseLen
	if modLen > maxLen {
		maxLen = modLen
	}
	words := toWordSize(maxLen)
	multComplexity := words * words
	if c.eip2565 {
		// EIP-2565 divides by 3 with words measured in 8-byte ceil-rounds
		// of the original Berlin repricing rather than 32-byte words.
		words8 := (maxLen + 7) / 8
		multComplexity = words8 * words8
	}

	gas := multComplexity * maxUint64Of(adjExpLen, 1) / 3
	if gas < 200 {
		gas = 200
	}
	return gas
}

func (c *bigModExpPrecompile) Run(input []byte) ([]byte, error) {
	input = precompilePadRight(input, 96)
	baseLen := new(big.Int).SetBytes(input[0:32])
	expLen := new(big.Int).SetBytes(input[32:64])
	modLen := new(big.Int).SetBytes(input[64:96])

	if baseLen.BitLen() > 32 || expLen.BitLen() > 32 || modLen.BitLen() > 32 {
		return nil, errors.New("modexp: length overflow")
	}
	bLen, eLen, mLen := baseLen.Uint64(), expLen.Uint64(), modLen.Uint64()

	data := input[96:]
	base := precompileDataSlice(data, 0, bLen)
	exp := precompileDataSlice(data, bLen, eLen)
	mod := precompileDataSlice(data, bLen+eLen, mLen)

	modVal := new(big.Int).SetBytes(mod)
	if modVal.Sign() == 0 {
		return make([]byte, mLen), nil
	}

	result := new(big.Int).Exp(new(big.Int).SetBytes(base), new(big.Int).SetBytes(exp), modVal)
	out := result.Bytes()
	if uint64(len(out)) < mLen {
		padded := make([]byte, mLen)
		copy(padded[mLen-uint64(len(out)):], out)
		return padded, nil
	}
	return out[:mLen], nil
}

// GetBigModExp returns the modexp precompile. eip2565 selects the Berlin
// repricing (EIP-2565); the input/output semantics are unchanged.
func GetBigModExp(eip2565 bool) PrecompiledContract { return &bigModExpPrecompile{eip2565: eip2565} }

// =============================================================================
// 0x06-0x08 BN254 (alt_bn128)
// =============================================================================

type bn256AddPrecompile struct{ istanbul bool }

func (c *bn256AddPrecompile) RequiredGas(input []byte) uint64 {
	if c.istanbul {
		return 150
	}
	return 500
}

func (c *bn256AddPrecompile) Run(input []byte) ([]byte, error) {
	return bn254.BN254Add(input)
}

// GetBn256Add returns the BN254 point addition precompile (0x06).
func GetBn256Add(istanbul bool) PrecompiledContract { return &bn256AddPrecompile{istanbul: istanbul} }

type bn256ScalarMulPrecompile struct{ istanbul bool }

func (c *bn256ScalarMulPrecompile) RequiredGas(input []byte) uint64 {
	if c.istanbul {
		return 6000
	}
	return 40000
}

func (c *bn256ScalarMulPrecompile) Run(input []byte) ([]byte, error) {
	return bn254.BN254ScalarMul(input)
}

// GetBn256ScalarMul returns the BN254 scalar multiplication precompile (0x07).
func GetBn256ScalarMul(istanbul bool) PrecompiledContract {
	return &bn256ScalarMulPrecompile{istanbul: istanbul}
}

type bn256PairingPrecompile struct{ istanbul bool }

func (c *bn256PairingPrecompile) RequiredGas(input []byte) uint64 {
	k := uint64(len(input)) / 192
	if c.istanbul {
		return 45000 + 34000*k
	}
	return 100000 + 80000*k
}

func (c *bn256PairingPrecompile) Run(input []byte) ([]byte, error) {
	if len(input)%192 != 0 {
		return nil, errBN254InvalidInput
	}
	return bn254.BN254PairingCheck(input)
}

// GetBn256Pairing returns the BN254 pairing check precompile (0x08).
func GetBn256Pairing(istanbul bool) PrecompiledContract {
	return &bn256PairingPrecompile{istanbul: istanbul}
}

// =============================================================================
// 0x09 blake2f
// =============================================================================

type blake2FPrecompile struct{}

func (c *blake2FPrecompile) RequiredGas(input []byte) uint64 {
	if len(input) < 4 {
		return 0
	}
	return uint64(binary.BigEndian.Uint32(input[:4]))
}

func (c *blake2FPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 213 {
		return nil, errors.New("blake2f: invalid input length")
	}
	final := input[212]
	if final != 0 && final != 1 {
		return nil, errors.New("blake2f: invalid final block indicator")
	}

	rounds := binary.BigEndian.Uint32(input[:4])
	var h [8]uint64
	for i := 0; i < 8; i++ {
		h[i] = binary.LittleEndian.Uint64(input[4+i*8 : 4+(i+1)*8])
	}
	var m [16]uint64
	for i := 0; i < 16; i++ {
		m[i] = binary.LittleEndian.Uint64(input[68+i*8 : 68+(i+1)*8])
	}
	t0 := binary.LittleEndian.Uint64(input[196:204])
	t1 := binary.LittleEndian.Uint64(input[204:212])

	blake2fCompress(&h, &m, t0, t1, final == 1, rounds)

	out := make([]byte, 64)
	for i := 0; i < 8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:(i+1)*8], h[i])
	}
	return out, nil
}

// GetBlake2F returns the BLAKE2b F compression function precompile (0x09).
func GetBlake2F() PrecompiledContract { return &blake2FPrecompile{} }

var blake2bIV = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
	0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f,
	0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

var blake2bSigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// blake2fCompress runs the BLAKE2b compression function F (EIP-152),
// mutating h in place over rounds mixing rounds.
func blake2fCompress(h *[8]uint64, m *[16]uint64, t0, t1 uint64, final bool, rounds uint32) {
	var v [16]uint64
	copy(v[:8], h[:])
	copy(v[8:], blake2bIV[:])
	v[12] ^= t0
	v[13] ^= t1
	if final {
		v[14] = ^v[14]
	}

	g := func(a, b, c, d int, x, y uint64) {
		v[a] = v[a] + v[b] + x
		v[d] = bits.RotateLeft64(v[d]^v[a], -32)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -24)
		v[a] = v[a] + v[b] + y
		v[d] = bits.RotateLeft64(v[d]^v[a], -16)
		v[c] = v[c] + v[d]
		v[b] = bits.RotateLeft64(v[b]^v[c], -63)
	}

	for i := uint32(0); i < rounds; i++ {
		s := blake2bSigma[i%10]
		g(0, 4, 8, 12, m[s[0]], m[s[1]])
		g(1, 5, 9, 13, m[s[2]], m[s[3]])
		g(2, 6, 10, 14, m[s[4]], m[s[5]])
		g(3, 7, 11, 15, m[s[6]], m[s[7]])
		g(0, 5, 10, 15, m[s[8]], m[s[9]])
		g(1, 6, 11, 12, m[s[10]], m[s[11]])
		g(2, 7, 8, 13, m[s[12]], m[s[13]])
		g(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// =============================================================================
// BLS12-381 (EIP-2537), backed by github.com/supranational/blst
// =============================================================================

type blsG1AddPrecompile struct{}

func (c *blsG1AddPrecompile) RequiredGas(input []byte) uint64 { return 375 }

func (c *blsG1AddPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 256 {
		return nil, errors.New("bls12381: invalid G1 add input length")
	}
	a := new(blst.P1Affine).Uncompress(blsCompressG1(input[0:128]))
	b := new(blst.P1Affine).Uncompress(blsCompressG1(input[128:256]))
	if a == nil || b == nil {
		return nil, errors.New("bls12381: invalid G1 point")
	}
	sum := new(blst.P1).FromAffine(a).Add(b).ToAffine()
	return blsUncompressG1(sum.Compress()), nil
}

// GetBls12381G1Add returns the BLS12-381 G1 addition precompile (0x0b).
func GetBls12381G1Add() PrecompiledContract { return &blsG1AddPrecompile{} }

type blsG1MulPrecompile struct{}

func (c *blsG1MulPrecompile) RequiredGas(input []byte) uint64 { return 12000 }

func (c *blsG1MulPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 160 {
		return nil, errors.New("bls12381: invalid G1 mul input length")
	}
	p := new(blst.P1Affine).Uncompress(blsCompressG1(input[0:128]))
	if p == nil {
		return nil, errors.New("bls12381: invalid G1 point")
	}
	scalar := input[128:160]
	out := new(blst.P1).FromAffine(p).Mult(scalar).ToAffine()
	return blsUncompressG1(out.Compress()), nil
}

// GetBls12381G1Mul returns the BLS12-381 G1 scalar multiplication precompile (0x0c).
func GetBls12381G1Mul() PrecompiledContract { return &blsG1MulPrecompile{} }

type blsG1MultiExpPrecompile struct{}

func (c *blsG1MultiExpPrecompile) RequiredGas(input []byte) uint64 {
	k := uint64(len(input)) / 160
	return k * 12000 * blsMultiExpDiscount(k) / 1000
}

func (c *blsG1MultiExpPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) == 0 || len(input)%160 != 0 {
		return nil, errors.New("bls12381: invalid G1 multiexp input length")
	}
	acc := new(blst.P1)
	for off := 0; off < len(input); off += 160 {
		p := new(blst.P1Affine).Uncompress(blsCompressG1(input[off : off+128]))
		if p == nil {
			return nil, errors.New("bls12381: invalid G1 point")
		}
		term := new(blst.P1).FromAffine(p).Mult(input[off+128 : off+160])
		acc = acc.Add(term.ToAffine())
	}
	return blsUncompressG1(acc.ToAffine().Compress()), nil
}

// GetBls12381G1MultiExp returns the BLS12-381 G1 multi-scalar-multiplication
// precompile (0x0d).
func GetBls12381G1MultiExp() PrecompiledContract { return &blsG1MultiExpPrecompile{} }

type blsG2AddPrecompile struct{}

func (c *blsG2AddPrecompile) RequiredGas(input []byte) uint64 { return 600 }

func (c *blsG2AddPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 512 {
		return nil, errors.New("bls12381: invalid G2 add input length")
	}
	a := new(blst.P2Affine).Uncompress(blsCompressG2(input[0:256]))
	b := new(blst.P2Affine).Uncompress(blsCompressG2(input[256:512]))
	if a == nil || b == nil {
		return nil, errors.New("bls12381: invalid G2 point")
	}
	sum := new(blst.P2).FromAffine(a).Add(b).ToAffine()
	return blsUncompressG2(sum.Compress()), nil
}

// GetBls12381G2Add returns the BLS12-381 G2 addition precompile (0x0e).
func GetBls12381G2Add() PrecompiledContract { return &blsG2AddPrecompile{} }

type blsG2MulPrecompile struct{}

func (c *blsG2MulPrecompile) RequiredGas(input []byte) uint64 { return 22500 }

func (c *blsG2MulPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) != 288 {
		return nil, errors.New("bls12381: invalid G2 mul input length")
	}
	p := new(blst.P2Affine).Uncompress(blsCompressG2(input[0:256]))
	if p == nil {
		return nil, errors.New("bls12381: invalid G2 point")
	}
	out := new(blst.P2).FromAffine(p).Mult(input[256:288]).ToAffine()
	return blsUncompressG2(out.Compress()), nil
}

// GetBls12381G2Mul returns the BLS12-381 G2 scalar multiplication precompile (0x0f).
func GetBls12381G2Mul() PrecompiledContract { return &blsG2MulPrecompile{} }

type blsG2MultiExpPrecompile struct{}

func (c *blsG2MultiExpPrecompile) RequiredGas(input []byte) uint64 {
	k := uint64(len(input)) / 288
	return k * 22500 * blsMultiExpDiscount(k) / 1000
}

func (c *blsG2MultiExpPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) == 0 || len(input)%288 != 0 {
		return nil, errors.New("bls12381: invalid G2 multiexp input length")
	}
	acc := new(blst.P2)
	for off := 0; off < len(input); off += 288 {
		p := new(blst.P2Affine).Uncompress(blsCompressG2(input[off : off+256]))
		if p == nil {
			return nil, errors.New("bls12381: invalid G2 point")
		}
		term := new(blst.P2).FromAffine(p).Mult(input[off+256 : off+288])
		acc = acc.Add(term.ToAffine())
	}
	return blsUncompressG2(acc.ToAffine().Compress()), nil
}

// GetBls12381G2MultiExp returns the BLS12-381 G2 multi-scalar-multiplication
// precompile (0x10).
func GetBls12381G2MultiExp() PrecompiledContract { return &blsG2MultiExpPrecompile{} }

type blsPairingPrecompile struct{}

func (c *blsPairingPrecompile) RequiredGas(input []byte) uint64 {
	k := uint64(len(input)) / 384
	return 32600*k + 37700
}

func (c *blsPairingPrecompile) Run(input []byte) ([]byte, error) {
	if len(input) == 0 || len(input)%384 != 0 {
		return nil, errors.New("bls12381: invalid pairing input length")
	}
	n := len(input) / 384
	g1s := make([]*blst.P1Affine, n)
	g2s := make([]*blst.P2Affine, n)
	for i := 0; i < n; i++ {
		off := i * 384
		g1 := new(blst.P1Affine).Uncompress(blsCompressG1(input[off : off+128]))
		g2 := new(blst.P2Affine).Uncompress(blsCompressG2(input[off+128 : off+384]))
		if g1 == nil || g2 == nil {
			return nil, errors.New("bls12381: invalid pairing point")
		}
		g1s[i] = g1
		g2s[i] = g2
	}
	ok := blst.PairingCheck(g1s, g2s)
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, nil
}

// GetBls12381Pairing returns the BLS12-381 pairing check precompile (0x11).
func GetBls12381Pairing() PrecompiledContract { return &blsPairingPrecompile{} }

type blsMapG1Precompile struct{}

func (c *blsMapG1Precompile) RequiredGas(input []byte) uint64 { return 5500 }

func (c *blsMapG1Precompile) Run(input []byte) ([]byte, error) {
	if len(input) != 64 {
		return nil, errors.New("bls12381: invalid map-to-G1 input length")
	}
	p := new(blst.P1Affine).MapToG1(input, nil)
	return blsUncompressG1(p.Compress()), nil
}

// GetBls12381MapG1 returns the BLS12-381 field-to-curve map for G1 (0x12).
func GetBls12381MapG1() PrecompiledContract { return &blsMapG1Precompile{} }

type blsMapG2Precompile struct{}

func (c *blsMapG2Precompile) RequiredGas(input []byte) uint64 { return 23800 }

func (c *blsMapG2Precompile) Run(input []byte) ([]byte, error) {
	if len(input) != 128 {
		return nil, errors.New("bls12381: invalid map-to-G2 input length")
	}
	p := new(blst.P2Affine).MapToG2(input, nil)
	return blsUncompressG2(p.Compress()), nil
}

// GetBls12381MapG2 returns the BLS12-381 field-to-curve map for G2 (0x13).
func GetBls12381MapG2() PrecompiledContract { return &blsMapG2Precompile{} }

// =============================================================================
// BLS12-381 EIP-2537 encoding helpers
//
// EIP-2537 zero-pads each field element to 64 bytes; blst's compressed
// encoding uses the minimal 48/96-byte form. These helpers translate
// between the two without touching the curve arithmetic above.
// =============================================================================

func blsCompressG1(padded []byte) []byte {
	out := make([]byte, 48)
	copy(out, padded[16:64])
	return out
}

func blsUncompressG1(compressed []byte) []byte {
	out := make([]byte, 128)
	copy(out[16:64], compressed[:48])
	return out
}

func blsCompressG2(padded []byte) []byte {
	out := make([]byte, 96)
	copy(out[:48], padded[16:64])
	copy(out[48:], padded[80:128])
	return out
}

func blsUncompressG2(compressed []byte) []byte {
	out := make([]byte, 256)
	copy(out[16:64], compressed[:48])
	copy(out[80:128], compressed[48:])
	return out
}

func blsMultiExpDiscount(k uint64) uint64 {
	if k == 0 {
		return 1000
	}
	if k > 128 {
		return 174
	}
	return blsDiscountTable[k-1]
}

// blsDiscountTable is EIP-2537's G1/G2 MSM discount table, indexed by
// (point count - 1), expressed in multiples of 1/1000.
var blsDiscountTable = [128]uint64{
	1000, 949, 848, 797, 764, 750, 738, 728, 719, 712, 705, 698, 692, 687, 682, 677,
	673, 669, 665, 661, 658, 654, 651, 648, 645, 642, 640, 637, 635, 632, 630, 627,
	625, 623, 621, 619, 617, 615, 613, 611, 609, 608, 606, 604, 603, 601, 599, 598,
	596, 595, 593, 592, 591, 589, 588, 586, 585, 584, 582, 581, 580, 579, 577, 576,
	575, 574, 573, 572, 570, 569, 568, 567, 566, 565, 564, 563, 562, 561, 560, 559,
	558, 557, 556, 555, 554, 553, 552, 551, 550, 549, 548, 547, 546, 545, 545, 544,
	543, 542, 541, 540, 539, 539, 538, 537, 536, 535, 535, 534, 533, 532, 531, 531,
	530, 529, 528, 528, 527, 526, 525, 525, 524, 523, 522, 522, 521, 520, 520, 519,
}

// =============================================================================
// Gas/data helpers shared by the precompiles above
// =============================================================================

func precompileWordCount(size int) uint64 {
	if size == 0 {
		return 0
	}
	return uint64((size + 31) / 32)
}

func precompilePadRight(data []byte, minLen int) []byte {
	if len(data) >= minLen {
		return data
	}
	padded := make([]byte, minLen)
	copy(padded, data)
	return padded
}

func precompileDataSlice(data []byte, offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	out := make([]byte, length)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

func adjustedExpLen(expLen, baseLen uint64, data []byte) uint64 {
	if expLen <= 32 {
		expData := precompileDataSlice(data, baseLen, expLen)
		exp := new(big.Int).SetBytes(expData)
		if exp.Sign() == 0 {
			return 0
		}
		return uint64(exp.BitLen() - 1)
	}
	firstExpData := precompileDataSlice(data, baseLen, 32)
	firstExp := new(big.Int).SetBytes(firstExpData)
	adj := uint64(0)
	if firstExp.Sign() > 0 {
		adj = uint64(firstExp.BitLen() - 1)
	}
	return adj + 8*(expLen-32)
}

func maxUint64Of(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// =============================================================================
// Fork precompile sets
// =============================================================================

var (
	PrecompiledAddressesHomestead = []types.Address{
		types.BytesToAddress([]byte{1}),
		types.BytesToAddress([]byte{2}),
		types.BytesToAddress([]byte{3}),
		types.BytesToAddress([]byte{4}),
	}

	PrecompiledAddressesByzantium = append(append([]types.Address{}, PrecompiledAddressesHomestead...),
		types.BytesToAddress([]byte{5}),
		types.BytesToAddress([]byte{6}),
		types.BytesToAddress([]byte{7}),
		types.BytesToAddress([]byte{8}),
	)

	PrecompiledAddressesIstanbul = append(append([]types.Address{}, PrecompiledAddressesByzantium...),
		types.BytesToAddress([]byte{9}),
	)

	// PrecompiledAddressesIstanbulForBSC mirrors Istanbul. Reserved for a
	// BSC-compatible deployment profile; no precompile differs from
	// mainnet Istanbul today.
	PrecompiledAddressesIstanbulForBSC = PrecompiledAddressesIstanbul

	PrecompiledAddressesBerlin = PrecompiledAddressesIstanbul

	// PrecompiledAddressesNano and PrecompiledAddressesMoran mirror Berlin,
	// reserved the same way as PrecompiledAddressesIstanbulForBSC.
	PrecompiledAddressesNano  = PrecompiledAddressesBerlin
	PrecompiledAddressesMoran = PrecompiledAddressesBerlin

	PrecompiledAddressesCancun = append(append([]types.Address{}, PrecompiledAddressesBerlin...),
		PointEvaluationPrecompileAddress,
	)

	PrecompiledAddressesPrague = append(append([]types.Address{}, PrecompiledAddressesCancun...),
		types.BytesToAddress([]byte{0x0b}),
		types.BytesToAddress([]byte{0x0c}),
		types.BytesToAddress([]byte{0x0d}),
		types.BytesToAddress([]byte{0x0e}),
		types.BytesToAddress([]byte{0x0f}),
		types.BytesToAddress([]byte{0x10}),
		types.BytesToAddress([]byte{0x11}),
		types.BytesToAddress([]byte{0x12}),
		types.BytesToAddress([]byte{0x13}),
	)

	// P256VerifyPrecompileAddress is the EIP-7212 secp256r1 verification
	// precompile's address, 0x0100.
	P256VerifyPrecompileAddress = types.BytesToAddress([]byte{0x01, 0x00})

	PrecompiledAddressesOsaka = append(append([]types.Address{}, PrecompiledAddressesPrague...),
		P256VerifyPrecompileAddress,
	)
)

var (
	PrecompiledContractsHomestead = map[types.Address]PrecompiledContract{
		types.BytesToAddress([]byte{1}): GetEcrecover(),
		types.BytesToAddress([]byte{2}): GetSha256(),
		types.BytesToAddress([]byte{3}): GetRipemd160(),
		types.BytesToAddress([]byte{4}): GetDataCopy(),
	}

	PrecompiledContractsByzantium = mergePrecompiles(PrecompiledContractsHomestead, map[types.Address]PrecompiledContract{
		types.BytesToAddress([]byte{5}): GetBigModExp(false),
		types.BytesToAddress([]byte{6}): GetBn256Add(false),
		types.BytesToAddress([]byte{7}): GetBn256ScalarMul(false),
		types.BytesToAddress([]byte{8}): GetBn256Pairing(false),
	})

	PrecompiledContractsIstanbul = mergePrecompiles(PrecompiledContractsHomestead, map[types.Address]PrecompiledContract{
		types.BytesToAddress([]byte{5}): GetBigModExp(false),
		types.BytesToAddress([]byte{6}): GetBn256Add(true),
		types.BytesToAddress([]byte{7}): GetBn256ScalarMul(true),
		types.BytesToAddress([]byte{8}): GetBn256Pairing(true),
		types.BytesToAddress([]byte{9}): GetBlake2F(),
	})

	PrecompiledContractsBerlin = mergePrecompiles(PrecompiledContractsIstanbul, map[types.Address]PrecompiledContract{
		types.BytesToAddress([]byte{5}): GetBigModExp(true),
	})

	// PrecompiledContractsNano and PrecompiledContractsIsMoran mirror
	// Berlin, reserved for a BSC-compatible deployment profile.
	PrecompiledContractsNano    = PrecompiledContractsBerlin
	PrecompiledContractsIsMoran = PrecompiledContractsBerlin

	PrecompiledContractsCancun = mergePrecompiles(PrecompiledContractsBerlin, map[types.Address]PrecompiledContract{
		PointEvaluationPrecompileAddress: GetPointEvaluationPrecompile(),
	})

	PrecompiledContractsPrague = mergePrecompiles(PrecompiledContractsCancun, map[types.Address]PrecompiledContract{
		types.BytesToAddress([]byte{0x0b}): GetBls12381G1Add(),
		types.BytesToAddress([]byte{0x0c}): GetBls12381G1Mul(),
		types.BytesToAddress([]byte{0x0d}): GetBls12381G1MultiExp(),
		types.BytesToAddress([]byte{0x0e}): GetBls12381G2Add(),
		types.BytesToAddress([]byte{0x0f}): GetBls12381G2Mul(),
		types.BytesToAddress([]byte{0x10}): GetBls12381G2MultiExp(),
		types.BytesToAddress([]byte{0x11}): GetBls12381Pairing(),
		types.BytesToAddress([]byte{0x12}): GetBls12381MapG1(),
		types.BytesToAddress([]byte{0x13}): GetBls12381MapG2(),
	})

	PrecompiledContractsOsaka = mergePrecompiles(PrecompiledContractsPrague, map[types.Address]PrecompiledContract{
		P256VerifyPrecompileAddress: GetP256Verify(),
	})
)

func mergePrecompiles(base map[types.Address]PrecompiledContract, extra map[types.Address]PrecompiledContract) map[types.Address]PrecompiledContract {
	out := make(map[types.Address]PrecompiledContract, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// ActivePrecompiles returns the addresses active under rules, newest fork
// first match wins.
func ActivePrecompiles(rules *params.Rules) []types.Address {
	switch {
	case rules.IsOsaka:
		return PrecompiledAddressesOsaka
	case rules.IsPrague:
		return PrecompiledAddressesPrague
	case rules.IsCancun:
		return PrecompiledAddressesCancun
	case rules.IsBerlin:
		return PrecompiledAddressesBerlin
	case rules.IsIstanbul:
		return PrecompiledAddressesIstanbul
	case rules.IsByzantium:
		return PrecompiledAddressesByzantium
	default:
		return PrecompiledAddressesHomestead
	}
}

// PrecompilesForRules returns the address-to-contract map active under rules.
func PrecompilesForRules(rules *params.Rules) map[types.Address]PrecompiledContract {
	switch {
	case rules.IsOsaka:
		return PrecompiledContractsOsaka
	case rules.IsPrague:
		return PrecompiledContractsPrague
	case rules.IsCancun:
		return PrecompiledContractsCancun
	case rules.IsBerlin:
		return PrecompiledContractsBerlin
	case rules.IsIstanbul:
		return PrecompiledContractsIstanbul
	case rules.IsByzantium:
		return PrecompiledContractsByzantium
	default:
		return PrecompiledContractsHomestead
	}
}

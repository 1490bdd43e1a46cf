// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// Tests for P-256 (secp256r1) precompile.

package vm

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

// =============================================================================
// P-256 Verify Precompile Tests
// =============================================================================

func TestP256VerifyGas(t *testing.T) {
	p := &p256Verify{}
	
	gas := p.RequiredGas(nil)
	if gas != P256VerifyGas {
		t.Errorf("P256Verify gas: expected %d, got %d", P256VerifyGas, gas)
	}
	
	t.Log("✓ P256Verify gas cost is correct")
}

func TestP256VerifyValidSignature(t *testing.T) {
	p := &p256Verify{}
	
	// Generate a test key pair
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	
	// Create a test message
	message := []byte("test message")
	hash := sha256.Sum256(message)
	
	// Sign the message
	r, s, err := ecdsa.Sign(rand.Reader, privateKey, hash[:])
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}
	
	// Build input: hash || r || s || x || y
	input := make([]byte, 160)
	copy(input[0:32], hash[:])
	r.FillBytes(input[32:64])
	s.FillBytes(input[64:96])
	privateKey.PublicKey.X.FillBytes(input[96:128])
	privateKey.PublicKey.Y.FillBytes(input[128:160])
	
	// Verify
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("P256Verify failed: %v", err)
	}
	
	if len(output) != 32 {
		t.Errorf("Expected 32-byte output, got %d", len(output))
	}
	
	if output[31] != 1 {
		t.Error("Expected valid signature (output[31] == 1)")
	}
	
	t.Log("✓ P256Verify validates correct signatures")
}

func TestP256VerifyInvalidSignature(t *testing.T) {
	p := &p256Verify{}
	
	// Generate a test key pair
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	
	// Create a test message
	message := []byte("test message")
	hash := sha256.Sum256(message)
	
	// Sign the message
	r, s, err := ecdsa.Sign(rand.Reader, privateKey, hash[:])
	if err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}
	
	// Modify the hash to make signature invalid
	hash[0] ^= 0xff
	
	// Build input with modified hash
	input := make([]byte, 160)
	copy(input[0:32], hash[:])
	r.FillBytes(input[32:64])
	s.FillBytes(input[64:96])
	privateKey.PublicKey.X.FillBytes(input[96:128])
	privateKey.PublicKey.Y.FillBytes(input[128:160])
	
	// Verify should return empty (invalid)
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("P256Verify should not return error: %v", err)
	}
	
	if len(output) != 0 {
		t.Error("Invalid signature should return empty output")
	}
	
	t.Log("✓ P256Verify correctly rejects invalid signatures")
}

func TestP256VerifyShortInput(t *testing.T) {
	p := &p256Verify{}
	
	// Test with short input (should be padded)
	shortInput := make([]byte, 64)
	
	output, err := p.Run(shortInput)
	if err != nil {
		t.Fatalf("P256Verify should not return error for short input: %v", err)
	}
	
	// Should return empty (invalid because padded zeros aren't a valid signature)
	if len(output) != 0 {
		t.Error("Short input should result in invalid signature")
	}
	
	t.Log("✓ P256Verify handles short input correctly")
}

func TestP256VerifyInvalidR(t *testing.T) {
	p := &p256Verify{}
	
	// Create input with r = 0 (invalid)
	input := make([]byte, 160)
	// r is at [32:64], leave as zeros (invalid)
	
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("P256Verify should not return error: %v", err)
	}
	
	if len(output) != 0 {
		t.Error("r=0 should result in invalid signature")
	}
	
	t.Log("✓ P256Verify rejects r=0")
}

func TestP256VerifyInvalidS(t *testing.T) {
	p := &p256Verify{}
	
	// Create input with s = 0 (invalid)
	input := make([]byte, 160)
	input[63] = 1 // r = 1 (valid range)
	// s is at [64:96], leave as zeros (invalid)
	
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("P256Verify should not return error: %v", err)
	}
	
	if len(output) != 0 {
		t.Error("s=0 should result in invalid signature")
	}
	
	t.Log("✓ P256Verify rejects s=0")
}

func TestP256VerifyPointNotOnCurve(t *testing.T) {
	p := &p256Verify{}
	
	// Create input with invalid public key (not on curve)
	input := make([]byte, 160)
	input[63] = 1  // r = 1
	input[95] = 1  // s = 1
	input[127] = 1 // x = 1
	input[159] = 1 // y = 1 (point (1,1) is not on P-256)
	
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("P256Verify should not return error: %v", err)
	}
	
	if len(output) != 0 {
		t.Error("Point not on curve should result in invalid signature")
	}
	
	t.Log("✓ P256Verify rejects points not on curve")
}

// =============================================================================
// Known Test Vector Tests
// =============================================================================

func TestP256VerifyKnownVector(t *testing.T) {
	p := &p256Verify{}
	
	// NIST P-256 test vector
	// From: https://csrc.nist.gov/groups/STM/cavp/documents/dss/186-3ecdsatestvectors.zip
	
	// First [P-256,SHA-256] SigGen entry: SHA-256 of its message, R, S, Qx, Qy
	hashHex := "44acf6b7e36c1342c2c5897204fe09504e1e2efb1a900377dbc4e7a6a133ec56"
	rHex := "f3ac8061b514795b8843e3d6629527ed2afd6b1f6a555a7acabb5e6f79c8c2ac"
	sHex := "8bf77819ca05a6b2786c76262bf7371cef97b218e96f175a3ccdda2acc058903"
	xHex := "1ccbe91c075fc7f4f033bfa248db8fccd3565de94bbfb12f3c59ff46c271bf83"
	yHex := "ce4014c68811f9a21a1fdb2c0e6113e06db7ca93b7404e78dc7ccd5ca89a4ca9"
	
	hash, _ := hex.DecodeString(hashHex)
	r, _ := hex.DecodeString(rHex)
	s, _ := hex.DecodeString(sHex)
	x, _ := hex.DecodeString(xHex)
	y, _ := hex.DecodeString(yHex)
	
	input := make([]byte, 160)
	copy(input[0:32], hash)
	copy(input[32:64], r)
	copy(input[64:96], s)
	copy(input[96:128], x)
	copy(input[128:160], y)
	
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("P256Verify failed: %v", err)
	}
	
	if len(output) == 32 && output[31] == 1 {
		t.Log("✓ P256Verify validates NIST test vector")
	} else {
		t.Errorf("P256Verify rejected the NIST test vector: output %x", output)
	}
}

// =============================================================================
// Getter Function Tests
// =============================================================================

func TestGetP256Verify(t *testing.T) {
	p := GetP256Verify()
	if p == nil {
		t.Error("GetP256Verify should return non-nil")
	}
	
	_, ok := p.(*p256Verify)
	if !ok {
		t.Error("GetP256Verify should return *p256Verify")
	}
	
	t.Log("✓ GetP256Verify returns correct type")
}

func TestP256VerifyWiredAtOsaka(t *testing.T) {
	if _, ok := PrecompiledContractsOsaka[P256VerifyPrecompileAddress]; !ok {
		t.Error("P256Verify should be registered at P256VerifyPrecompileAddress under Osaka")
	}

	found := false
	for _, addr := range PrecompiledAddressesOsaka {
		if addr == P256VerifyPrecompileAddress {
			found = true
			break
		}
	}
	if !found {
		t.Error("PrecompiledAddressesOsaka should list P256VerifyPrecompileAddress")
	}

	if _, ok := PrecompiledContractsPrague[P256VerifyPrecompileAddress]; ok {
		t.Error("P256Verify should not be active before Osaka")
	}

	t.Log("✓ P256Verify is wired into the Osaka precompile set")
}

// =============================================================================
// Constants Tests
// =============================================================================

func TestP256Constants(t *testing.T) {
	if P256VerifyGas != 3450 {
		t.Errorf("P256VerifyGas: expected 3450, got %d", P256VerifyGas)
	}
	
	if P256VerifyInputLength != 160 {
		t.Errorf("P256VerifyInputLength: expected 160, got %d", P256VerifyInputLength)
	}
	
	t.Log("✓ P-256 constants are correct")
}


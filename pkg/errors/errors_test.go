// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package errors

import (
	"errors"
	"fmt"
	"testing"
)

// TestTransactionErrors verifies the sentinel messages TxDriver's pre-checks return.
func TestTransactionErrors(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{ErrNonceTooLow, "nonce too low"},
		{ErrNonceTooHigh, "nonce too high"},
		{ErrNonceMax, "nonce has max value"},
		{ErrInsufficientFunds, "insufficient funds for gas * price + value"},
		{ErrGasUintOverflow, "gas uint64 overflow"},
		{ErrIntrinsicGas, "intrinsic gas too low"},
		{ErrTipAboveFeeCap, "max priority fee per gas higher than max fee per gas"},
		{ErrFeeCapTooLow, "max fee per gas less than block base fee"},
		{ErrSenderNoEOA, "sender not an eoa"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expected {
			t.Errorf("Expected error message '%s', got '%s'", tt.expected, tt.err.Error())
		}
	}
	t.Log("✓ Transaction pre-check errors are correctly defined")
}

// TestErrorUniqueness checks that no two sentinels share a message.
func TestErrorUniqueness(t *testing.T) {
	allErrors := []error{
		ErrNonceTooLow,
		ErrNonceTooHigh,
		ErrNonceMax,
		ErrInsufficientFunds,
		ErrGasUintOverflow,
		ErrIntrinsicGas,
		ErrTipAboveFeeCap,
		ErrFeeCapTooLow,
		ErrSenderNoEOA,
	}

	seen := make(map[string]bool)
	for _, err := range allErrors {
		msg := err.Error()
		if seen[msg] {
			t.Errorf("Duplicate error message: %s", msg)
		}
		seen[msg] = true
	}

	t.Log("✓ All errors are unique")
}

// TestWrap tests the Wrap function.
func TestWrap(t *testing.T) {
	t.Run("wrap nil error", func(t *testing.T) {
		result := Wrap(nil, "context")
		if result != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrap error with context", func(t *testing.T) {
		original := errors.New("original error")
		wrapped := Wrap(original, "context message")

		expected := "context message: original error"
		if wrapped.Error() != expected {
			t.Errorf("Expected '%s', got '%s'", expected, wrapped.Error())
		}

		if !errors.Is(wrapped, original) {
			t.Error("Wrapped error should unwrap to original")
		}
	})

	t.Log("✓ Wrap function works correctly")
}

// TestWrapf tests the Wrapf function.
func TestWrapf(t *testing.T) {
	t.Run("wrapf nil error", func(t *testing.T) {
		result := Wrapf(nil, "context %d", 123)
		if result != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})

	t.Run("wrapf error with formatted context", func(t *testing.T) {
		original := errors.New("original error")
		wrapped := Wrapf(original, "context %d %s", 123, "test")

		expected := "context 123 test: original error"
		if wrapped.Error() != expected {
			t.Errorf("Expected '%s', got '%s'", expected, wrapped.Error())
		}

		if !errors.Is(wrapped, original) {
			t.Error("Wrapped error should unwrap to original")
		}
	})

	t.Log("✓ Wrapf function works correctly")
}

// TestIs tests the Is function.
func TestIs(t *testing.T) {
	t.Run("is same error", func(t *testing.T) {
		if !Is(ErrNonceTooLow, ErrNonceTooLow) {
			t.Error("Is should return true for same error")
		}
	})

	t.Run("is different error", func(t *testing.T) {
		if Is(ErrNonceTooLow, ErrNonceTooHigh) {
			t.Error("Is should return false for different errors")
		}
	})

	t.Run("is wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("wrapped: %w", ErrNonceTooLow)
		if !Is(wrapped, ErrNonceTooLow) {
			t.Error("Is should return true for wrapped error")
		}
	})

	t.Run("is nil error", func(t *testing.T) {
		if Is(nil, ErrNonceTooLow) {
			t.Error("Is(nil, err) should return false")
		}
	})

	t.Log("✓ Is function works correctly")
}

// customError is used to exercise the As function with a concrete type.
type customError struct {
	Code    int
	Message string
}

func (e *customError) Error() string {
	return e.Message
}

// TestAs tests the As function.
func TestAs(t *testing.T) {
	t.Run("as matching type", func(t *testing.T) {
		original := &customError{Code: 404, Message: "not found"}
		wrapped := fmt.Errorf("wrapped: %w", original)

		var target *customError
		if !As(wrapped, &target) {
			t.Error("As should return true for matching type")
		}
		if target.Code != 404 {
			t.Errorf("Expected Code 404, got %d", target.Code)
		}
	})

	t.Run("as non-matching type", func(t *testing.T) {
		err := errors.New("simple error")
		var target *customError
		if As(err, &target) {
			t.Error("As should return false for non-matching type")
		}
	})

	t.Log("✓ As function works correctly")
}

// TestNew tests the New function.
func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Error("New should return non-nil error")
	}
	if err.Error() != "test error" {
		t.Errorf("Expected 'test error', got '%s'", err.Error())
	}
	t.Log("✓ New function works correctly")
}

// TestErrorf tests the Errorf function.
func TestErrorf(t *testing.T) {
	t.Run("simple format", func(t *testing.T) {
		err := Errorf("error %d", 123)
		if err.Error() != "error 123" {
			t.Errorf("Expected 'error 123', got '%s'", err.Error())
		}
	})

	t.Run("complex format", func(t *testing.T) {
		err := Errorf("error %s %d %v", "test", 123, true)
		expected := "error test 123 true"
		if err.Error() != expected {
			t.Errorf("Expected '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("wrap with errorf", func(t *testing.T) {
		original := ErrNonceTooLow
		wrapped := Errorf("wrapped: %w", original)
		if !errors.Is(wrapped, original) {
			t.Error("Errorf with %w should wrap error")
		}
	})

	t.Log("✓ Errorf function works correctly")
}

// BenchmarkWrap benchmarks the Wrap function.
func BenchmarkWrap(b *testing.B) {
	err := errors.New("original error")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Wrap(err, "context message")
	}
}

// BenchmarkWrapf benchmarks the Wrapf function.
func BenchmarkWrapf(b *testing.B) {
	err := errors.New("original error")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Wrapf(err, "context %d", 123)
	}
}

// BenchmarkIs benchmarks the Is function.
func BenchmarkIs(b *testing.B) {
	wrapped := fmt.Errorf("layer3: %w", fmt.Errorf("layer2: %w", ErrNonceTooLow))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Is(wrapped, ErrNonceTooLow)
	}
}

// BenchmarkNew benchmarks the New function.
func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New("test error")
	}
}

// BenchmarkErrorf benchmarks the Errorf function.
func BenchmarkErrorf(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Errorf("error %d %s", 123, "test")
	}
}

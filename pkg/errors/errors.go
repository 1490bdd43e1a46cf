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

// Package errors defines the sentinel errors TxDriver's pre-execution
// checks return, plus the Wrap/Wrapf/Is/As helpers the rest of this module
// uses to attach context to them without losing errors.Is/As matchability.
// A block-producing chain or a mempool would need banned-hash, genesis, and
// gas-pool errors too; this module only ever runs one transaction at a time
// against an already-selected block context, so those categories are
// dropped rather than carried unused.
package errors

import (
	"errors"
	"fmt"
)

// =====================
// Transaction Pre-Check Errors
// =====================

// TxDriver.Transact rejects a Message before it ever reaches the
// interpreter when one of these applies; none of them are VM-level
// reverts, so they surface as a Go error rather than ResultAndState.VMErr.
var (
	// ErrNonceTooLow is returned if the message's nonce is lower than the
	// sender account's current nonce.
	ErrNonceTooLow = errors.New("nonce too low")

	// ErrNonceTooHigh is returned if the message's nonce is higher than the
	// sender account's current nonce.
	ErrNonceTooHigh = errors.New("nonce too high")

	// ErrNonceMax is returned if the sender's nonce already holds the
	// maximum allowed value and would overflow on increment.
	ErrNonceMax = errors.New("nonce has max value")

	// ErrInsufficientFunds is returned if the total cost of executing a
	// transaction is higher than the sender's balance.
	ErrInsufficientFunds = errors.New("insufficient funds for gas * price + value")

	// ErrGasUintOverflow is returned when calculating intrinsic gas usage
	// overflows a uint64.
	ErrGasUintOverflow = errors.New("gas uint64 overflow")

	// ErrIntrinsicGas is returned if the message's gas limit is lower than
	// the gas required just to start the invocation.
	ErrIntrinsicGas = errors.New("intrinsic gas too low")

	// ErrTipAboveFeeCap is a sanity error: no message may specify a
	// priority fee higher than its own fee cap.
	ErrTipAboveFeeCap = errors.New("max priority fee per gas higher than max fee per gas")

	// ErrFeeCapTooLow is returned if the message's fee cap is less than the
	// block's base fee.
	ErrFeeCapTooLow = errors.New("max fee per gas less than block base fee")

	// ErrSenderNoEOA is returned if the sender of a transaction is a
	// contract account (EIP-3607), unless the sender already carries an
	// EIP-7702 delegation.
	ErrSenderNoEOA = errors.New("sender not an eoa")
)

// =====================
// Helper Functions
// =====================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}


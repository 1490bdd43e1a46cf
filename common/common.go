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

// Package common holds the small cross-cutting helpers (gas accounting,
// shared big.Int constants, human-readable duration/age formatting) that the
// rest of the engine's packages pull in instead of redefining locally.
package common

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"
)

// Shared big.Int constants, reused wherever arithmetic needs a small
// immutable operand (word-size checks, exponent bounds).
var (
	Big0   = big.NewInt(0)
	Big1   = big.NewInt(1)
	Big2   = big.NewInt(2)
	Big3   = big.NewInt(3)
	Big32  = big.NewInt(32)
	Big256 = big.NewInt(256)
	Big257 = big.NewInt(257)
)

// ErrGasLimitReached is returned by GasPool.SubGas when the requested amount
// exceeds the gas remaining in the pool.
var ErrGasLimitReached = errors.New("gas limit reached")

// GasPool tracks the gas available to a block or transaction batch. Callers
// draw it down with SubGas and may top it up (e.g. for a refund) with AddGas.
type GasPool uint64

// AddGas makes gas available for execution. It panics if the pool would
// overflow uint64, since that indicates a caller accounting bug rather than
// a runtime condition.
func (gp *GasPool) AddGas(amount uint64) *GasPool {
	if uint64(*gp) > math.MaxUint64-amount {
		panic("gas pool pushed above uint64")
	}
	*(*uint64)(gp) += amount
	return gp
}

// SubGas deducts the given amount from the pool, failing if the pool holds
// less gas than requested.
func (gp *GasPool) SubGas(amount uint64) error {
	if uint64(*gp) < amount {
		return ErrGasLimitReached
	}
	*(*uint64)(gp) -= amount
	return nil
}

// Gas returns the amount of gas remaining in the pool.
func (gp *GasPool) Gas() uint64 {
	return uint64(*gp)
}

func (gp *GasPool) String() string {
	return fmt.Sprintf("%d", uint64(*gp))
}

// PrettyDuration is a duration that formats as a compact, human-friendly
// string (e.g. "1.2s" for 1.234s) instead of Go's default verbose representation,
// for use in benchmark and log output.
type PrettyDuration time.Duration

var durationLimitUnits = []time.Duration{
	time.Second, 10 * time.Second, time.Minute, 10 * time.Minute,
	time.Hour, 10 * time.Hour,
}

func (d PrettyDuration) String() string {
	td := time.Duration(d)
	if td < 0 {
		return "-" + PrettyDuration(-td).String()
	}
	for _, limit := range durationLimitUnits {
		if td < limit {
			// Truncate to a handful of significant digits below the unit
			// threshold so sub-second durations don't print as e.g.
			// "123.456789ms".
			precision := limit / 100
			if precision == 0 {
				precision = 1
			}
			return (td - td%precision).String()
		}
	}
	return td.String()
}

// PrettyAge is a timestamp that formats as a coarse "how long ago" string
// (e.g. "5m32s", "3d"), for use in status and log output.
type PrettyAge time.Time

var ageUnits = []struct {
	unit time.Duration
	name string
}{
	{365 * 24 * time.Hour, "y"},
	{30 * 24 * time.Hour, "mo"},
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
}

func (t PrettyAge) String() string {
	age := time.Since(time.Time(t))
	if age < time.Second {
		return "0"
	}
	parts := 0
	result := ""
	for _, u := range ageUnits {
		if parts >= 2 {
			break
		}
		if age >= u.unit {
			n := age / u.unit
			age -= n * u.unit
			result += fmt.Sprintf("%d%s", n, u.name)
			parts++
		}
	}
	if result == "" {
		return "0"
	}
	return result
}

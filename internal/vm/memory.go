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

import "github.com/holiman/uint256"

// Memory is the EVM's byte-addressable scratch memory. It never shrinks
// within a call frame: Resize only grows the backing store, matching the
// EVM's memory-expansion-is-monotonic rule (the gas table charges for the
// expansion once, the first time a region is touched).
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns empty memory with a 4KB initial backing array, sized to
// avoid a reallocation on the first few expansions most call frames do.
func NewMemory() *Memory {
	return &Memory{store: make([]byte, 0, 4*1024)}
}

// Set copies value into memory at [offset, offset+size). The caller (the
// gas table) is responsible for having already grown memory to cover this
// range via Resize.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic("memory: out of bounds write")
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a 32-byte big-endian word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("memory: out of bounds write")
	}
	val.WriteToSlice(m.store[offset : offset+32])
}

// Resize grows memory to size bytes if it is currently smaller; it never
// shrinks.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	if uint64(cap(m.store)) >= size {
		m.store = m.store[:size]
		return
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
}

// GetCopy returns an independent copy of [offset, offset+size). Returns nil
// for a zero or out-of-bounds size.
func (m *Memory) GetCopy(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	if offset < 0 || offset >= int64(len(m.store)) {
		return nil
	}
	end := offset + size
	if end > int64(len(m.store)) {
		end = int64(len(m.store))
	}
	out := make([]byte, size)
	copy(out, m.store[offset:end])
	return out
}

// GetPtr returns a direct slice reference into the backing store, so
// writes through it mutate memory in place. Returns nil for a zero size.
func (m *Memory) GetPtr(offset, size int64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns memory's current size in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte {
	return m.store
}

// Copy moves size bytes from src to dst within memory, correctly handling
// overlap (Go's builtin copy already does, we just expose it at the
// offsets MCOPY/CODECOPY-into-self operate on).
func (m *Memory) Copy(dst, src, size uint64) {
	if size == 0 {
		return
	}
	copy(m.store[dst:dst+size], m.store[src:src+size])
}

// Reset empties memory and clears the cached expansion-gas cost.
func (m *Memory) Reset() {
	m.store = m.store[:0]
	m.lastGasCost = 0
}

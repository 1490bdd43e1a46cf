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

// Package stack is the EVM operand stack: up to 1024 256-bit words, and the
// parallel uint32 return-address stack EOF call frames push onto.
package stack

import (
	"sync"

	"github.com/holiman/uint256"
)

// Limit is the maximum number of items the operand stack may hold at once.
const Limit = 1024

// Stack is the EVM operand stack.
type Stack struct {
	data []uint256.Int
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// New returns an empty Stack, reused from a pool where possible.
func New() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnNormalStack clears s and returns it to the pool.
func ReturnNormalStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Push pushes d's value onto the stack.
func (st *Stack) Push(d *uint256.Int) {
	st.data = append(st.data, *d)
}

// PushN pushes each of ds onto the stack in order, so the last argument ends
// up on top.
func (st *Stack) PushN(ds ...uint256.Int) {
	st.data = append(st.data, ds...)
}

// Pop removes and returns the top element.
func (st *Stack) Pop() *uint256.Int {
	v := st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return &v
}

// Peek returns the top element without removing it.
func (st *Stack) Peek() *uint256.Int {
	return &st.data[len(st.data)-1]
}

// Back returns the n-th element from the top, 0-indexed (Back(0) == Peek()).
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[len(st.data)-1-n]
}

// Swap exchanges the top element with the element n positions below it
// (Swap(1) is EVM's SWAP1: top and second-from-top).
func (st *Stack) Swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

// Dup duplicates the n-th element from the top (1-indexed: Dup(1)
// duplicates the top element) and pushes the copy.
func (st *Stack) Dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Data returns the underlying slice, bottom to top.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

// Reset empties the stack without releasing its backing array.
func (st *Stack) Reset() {
	st.data = st.data[:0]
}

// Cap returns the stack's current backing-array capacity.
func (st *Stack) Cap() int {
	return cap(st.data)
}

// ReturnStack is the EOF call-frame return-address stack (RETF/CALLF),
// a stack of code offsets rather than 256-bit words.
type ReturnStack struct {
	data []uint32
}

var returnStackPool = sync.Pool{
	New: func() interface{} {
		return &ReturnStack{data: make([]uint32, 0, 16)}
	},
}

// NewReturnStack returns an empty ReturnStack, reused from a pool where
// possible.
func NewReturnStack() *ReturnStack {
	return returnStackPool.Get().(*ReturnStack)
}

// ReturnRStack clears rs and returns it to the pool.
func ReturnRStack(rs *ReturnStack) {
	rs.data = rs.data[:0]
	returnStackPool.Put(rs)
}

func (rs *ReturnStack) Push(d uint32) {
	rs.data = append(rs.data, d)
}

func (rs *ReturnStack) Pop() uint32 {
	v := rs.data[len(rs.data)-1]
	rs.data = rs.data[:len(rs.data)-1]
	return v
}

// Data returns the underlying slice, bottom to top.
func (rs *ReturnStack) Data() []uint32 {
	return rs.data
}

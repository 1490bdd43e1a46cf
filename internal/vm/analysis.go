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

// analyzeJumpdests walks code once and returns the positions of every
// JUMPDEST byte that is real code rather than a PUSH's immediate data, so
// JUMP/JUMPI validation never has to single-step the whole program to
// check a target.
func analyzeJumpdests(code []byte) []uint64 {
	var dests []uint64
	for pc := uint64(0); pc < uint64(len(code)); pc++ {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			dests = append(dests, pc)
			continue
		}
		if op.IsPush() {
			pc += uint64(op-PUSH1) + 1
		}
	}
	return dests
}

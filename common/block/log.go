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

// Package block holds the Log data model (spec §3). Block header/body types
// belong to the surrounding chain-validation layer and are out of scope for
// this engine (spec.md Non-goals); only the Log shape the interpreter emits
// is needed here.
package block

import "github.com/vertexchain/evmcore/common/types"

// Log is a single LOG0..LOG4 event, tentative until its emitting frame
// commits (spec §3).
type Log struct {
	Address types.Address
	Topics  []types.Hash
	Data    []byte

	// BlockNumber, TxHash, TxIndex, Index, Removed are populated by the
	// embedder once a log is attached to a committed block; the interpreter
	// itself only ever sets Address/Topics/Data.
	BlockNumber uint64
	TxHash      types.Hash
	TxIndex     uint
	BlockHash   types.Hash
	Index       uint
	Removed     bool
}

// Copy returns a deep copy of the log.
func (l *Log) Copy() *Log {
	cpy := *l
	cpy.Topics = append([]types.Hash(nil), l.Topics...)
	cpy.Data = append([]byte(nil), l.Data...)
	return &cpy
}

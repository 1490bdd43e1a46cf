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

// Package rlp is a minimal Recursive Length Prefix encoder, sufficient for
// the transaction/authorization signing-hash helpers in common/transaction.
// It supports the value shapes those callers actually pass: byte slices,
// fixed-size byte arrays (Address/Hash), unsigned integers, uint256.Int,
// nil pointers, heterogeneous slices (encoded as RLP lists), and structs
// such as AccessTuple and Authorization (encoded as the list of their
// exported fields).
package rlp

import (
	"bytes"
	"io"
	"math/big"
	"reflect"

	"github.com/holiman/uint256"
)

// Encode writes the RLP encoding of val to w.
func Encode(w io.Writer, val interface{}) error {
	b, err := EncodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val.
func EncodeToBytes(val interface{}) ([]byte, error) {
	return encode(reflect.ValueOf(val))
}

func encode(v reflect.Value) ([]byte, error) {
	if !v.IsValid() {
		return encodeString(nil), nil
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return encodeString(nil), nil
		}
		return encode(v.Elem())

	case reflect.Interface:
		if v.IsNil() {
			return encodeString(nil), nil
		}
		return encode(v.Elem())

	case reflect.Slice, reflect.Array:
		// uint256.Int is a [4]uint64 array but encodes as an integer.
		if x, ok := v.Interface().(uint256.Int); ok {
			return encodeString(minimalBytes(x.Bytes())), nil
		}
		// []byte / [N]byte is a string, everything else is a list.
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return encodeString(toBytes(v)), nil
		}
		return encodeList(v)

	case reflect.String:
		return encodeString([]byte(v.String())), nil

	case reflect.Bool:
		if v.Bool() {
			return encodeString([]byte{1}), nil
		}
		return encodeString(nil), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return encodeUint64(v.Uint()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeUint64(uint64(v.Int())), nil

	case reflect.Struct:
		switch x := v.Interface().(type) {
		case uint256.Int:
			return encodeString(minimalBytes(x.Bytes())), nil
		case big.Int:
			return encodeString(minimalBytes(x.Bytes())), nil
		}
		// Any other struct is a list of its exported fields in declaration
		// order; fields tagged `rlp:"-"` are skipped.
		var buf bytes.Buffer
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			if f.PkgPath != "" || f.Tag.Get("rlp") == "-" {
				continue
			}
			enc, err := encode(v.Field(i))
			if err != nil {
				return nil, err
			}
			buf.Write(enc)
		}
		return wrapList(buf.Bytes()), nil

	default:
		switch x := v.Interface().(type) {
		case *uint256.Int:
			if x == nil {
				return encodeString(nil), nil
			}
			return encodeString(minimalBytes(x.Bytes())), nil
		case *big.Int:
			if x == nil {
				return encodeString(nil), nil
			}
			return encodeString(minimalBytes(x.Bytes())), nil
		}
		return nil, &UnsupportedTypeError{v.Type()}
	}
}

func toBytes(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}
	b := make([]byte, v.Len())
	for i := 0; i < v.Len(); i++ {
		b[i] = byte(v.Index(i).Uint())
	}
	return b
}

func minimalBytes(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

func encodeList(v reflect.Value) ([]byte, error) {
	var buf bytes.Buffer
	for i := 0; i < v.Len(); i++ {
		enc, err := encode(v.Index(i))
		if err != nil {
			return nil, err
		}
		buf.Write(enc)
	}
	return wrapList(buf.Bytes()), nil
}

func wrapList(content []byte) []byte {
	if len(content) <= 55 {
		return append([]byte{0xc0 + byte(len(content))}, content...)
	}
	lenBytes := minimalBytes(uintToBytes(uint64(len(content))))
	head := append([]byte{0xf7 + byte(len(lenBytes))}, lenBytes...)
	return append(head, content...)
}

func encodeUint64(n uint64) []byte {
	if n == 0 {
		return encodeString(nil)
	}
	return encodeString(minimalBytes(uintToBytes(n)))
}

func uintToBytes(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}

func encodeString(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) <= 55 {
		return append([]byte{0x80 + byte(len(b))}, b...)
	}
	lenBytes := minimalBytes(uintToBytes(uint64(len(b))))
	head := append([]byte{0xb7 + byte(len(lenBytes))}, lenBytes...)
	return append(head, b...)
}

// UnsupportedTypeError is returned when a value cannot be RLP-encoded by
// this minimal implementation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "rlp: type not supported: " + e.Type.String()
}

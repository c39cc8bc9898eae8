// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wire implements the binary encoding operations exchange over
// (spec §6): little-endian fixed-width scalars, ULEB128 length prefixes on
// strings and sequences, single-byte booleans, and 256-bit object ids as
// 32 raw little-endian bytes.
//
// ULEB128 is exactly what encoding/binary.Uvarint/PutUvarint implement, so
// the codec leans on the standard library for that piece rather than
// hand-rolling a varint reader.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ObjectId mirrors fsstate.ObjectId's representation without importing it,
// keeping this package free of a dependency on the domain model it
// serializes. Callers convert with a plain type conversion since both are
// defined as [32]byte.
type ObjectId [32]byte

// Writer accumulates an encoded message.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteUint64 appends v as 8 little-endian bytes.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteBool appends a single byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// WriteUvarint appends v as a ULEB128 varint, used for every length prefix.
func (w *Writer) WriteUvarint(v uint64) {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	w.buf.Write(b[:n])
}

// WriteString appends s as a ULEB128 byte-length prefix followed by its raw
// bytes.
func (w *Writer) WriteString(s string) {
	w.WriteUvarint(uint64(len(s)))
	w.buf.WriteString(s)
}

// WriteStrings appends a ULEB128 count prefix followed by each string in
// order, used for the tags sequence.
func (w *Writer) WriteStrings(ss []string) {
	w.WriteUvarint(uint64(len(ss)))
	for _, s := range ss {
		w.WriteString(s)
	}
}

// WriteObjectId appends id as 32 little-endian bytes. fsstate.ObjectId is
// produced via math/big.Int.FillBytes, which is big-endian (most
// significant byte first); the wire format is little-endian like every
// other scalar, so the bytes are reversed on the way out.
func (w *Writer) WriteObjectId(id ObjectId) {
	var le [32]byte
	for i, b := range id {
		le[31-i] = b
	}
	w.buf.Write(le[:])
}

// Reader consumes a message written by Writer.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential decoding.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining reports how many bytes have not yet been consumed.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("wire: need %d bytes, have %d", n, r.Remaining())
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint64 decodes 8 little-endian bytes.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadBool decodes a single boolean byte.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("wire: invalid bool byte 0x%02x", b[0])
	}
}

// ReadUvarint decodes a ULEB128 varint.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("wire: malformed varint")
	}
	r.pos += n
	return v, nil
}

// ReadString decodes a ULEB128 byte-length prefix followed by that many
// raw bytes.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadStrings decodes a ULEB128 count prefix followed by that many strings.
func (r *Reader) ReadStrings() ([]string, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	ss := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	return ss, nil
}

// ReadObjectId decodes 32 little-endian bytes back into an ObjectId,
// reversing WriteObjectId's byte-order conversion to restore the
// big-endian-within-byte-array representation fsstate.ObjectId expects.
func (r *Reader) ReadObjectId() (ObjectId, error) {
	b, err := r.take(32)
	if err != nil {
		return ObjectId{}, err
	}
	var id ObjectId
	for i, v := range b {
		id[31-i] = v
	}
	return id, nil
}

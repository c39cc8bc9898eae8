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

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfs/fstree/internal/wire"
)

func TestScalarRoundTrip(t *testing.T) {
	w := wire.NewWriter()
	w.WriteUint64(1<<63 + 7)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteUvarint(300)

	r := wire.NewReader(w.Bytes())
	u, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63+7), u)

	b1, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, b1)

	b2, err := r.ReadBool()
	require.NoError(t, err)
	assert.False(t, b2)

	v, err := r.ReadUvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), v)

	assert.Equal(t, 0, r.Remaining())
}

func TestStringAndObjectIdRoundTrip(t *testing.T) {
	var id wire.ObjectId
	id[31] = 42

	w := wire.NewWriter()
	w.WriteString("hello world")
	w.WriteObjectId(id)
	w.WriteStrings([]string{"a", "bb", "ccc"})

	r := wire.NewReader(w.Bytes())
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)

	gotId, err := r.ReadObjectId()
	require.NoError(t, err)
	assert.Equal(t, id, gotId)

	tags, err := r.ReadStrings()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bb", "ccc"}, tags)
}

func TestWriteObjectIdIsLittleEndian(t *testing.T) {
	var id wire.ObjectId
	id[0] = 0xAA // most significant byte in the big-endian-within-array domain representation
	id[31] = 0xBB

	w := wire.NewWriter()
	w.WriteObjectId(id)

	encoded := w.Bytes()
	assert.Equal(t, byte(0xBB), encoded[0], "domain's least significant byte lands first on the wire")
	assert.Equal(t, byte(0xAA), encoded[31], "domain's most significant byte lands last on the wire")
}

func TestReadPastEndFails(t *testing.T) {
	r := wire.NewReader([]byte{1, 2, 3})
	_, err := r.ReadUint64()
	assert.Error(t, err)
}

func TestFileRecordRoundTrip(t *testing.T) {
	rec := wire.FileRecord{
		CreateTs: 1700000000,
		Size:     4096,
		EndEpoch: 12,
		BlobId:   "bafy-example",
		Tags:     []string{"photo", "2024"},
	}

	decoded, err := wire.DecodeFileRecord(wire.EncodeFileRecord(rec))
	require.NoError(t, err)
	assert.Equal(t, rec, decoded)
}

func TestDirEntriesRoundTrip(t *testing.T) {
	entries := []wire.DirEntry{
		{Name: "a.txt", IsDir: false},
		{Name: "sub", IsDir: true},
	}
	entries[0].Id[31] = 1
	entries[1].Id[31] = 2

	decoded, err := wire.DecodeDirEntries(wire.EncodeDirEntries(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestEmptyDirEntries(t *testing.T) {
	decoded, err := wire.DecodeDirEntries(wire.EncodeDirEntries(nil))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

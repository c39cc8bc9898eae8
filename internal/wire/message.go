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

package wire

// FileRecord is the wire shape of a stored file object (spec §6): a
// fixed-width scalar block plus the variable-length tag and blob id
// fields.
type FileRecord struct {
	CreateTs uint64
	Size     uint64
	EndEpoch uint64
	BlobId   string
	Tags     []string
}

// EncodeFileRecord serializes a FileRecord in field order.
func EncodeFileRecord(r FileRecord) []byte {
	w := NewWriter()
	w.WriteUint64(r.CreateTs)
	w.WriteUint64(r.Size)
	w.WriteUint64(r.EndEpoch)
	w.WriteString(r.BlobId)
	w.WriteStrings(r.Tags)
	return w.Bytes()
}

// DecodeFileRecord deserializes a FileRecord previously produced by
// EncodeFileRecord.
func DecodeFileRecord(data []byte) (FileRecord, error) {
	r := NewReader(data)
	var rec FileRecord
	var err error

	if rec.CreateTs, err = r.ReadUint64(); err != nil {
		return FileRecord{}, err
	}
	if rec.Size, err = r.ReadUint64(); err != nil {
		return FileRecord{}, err
	}
	if rec.EndEpoch, err = r.ReadUint64(); err != nil {
		return FileRecord{}, err
	}
	if rec.BlobId, err = r.ReadString(); err != nil {
		return FileRecord{}, err
	}
	if rec.Tags, err = r.ReadStrings(); err != nil {
		return FileRecord{}, err
	}
	return rec, nil
}

// DirEntry is the wire shape of one child-index entry used when streaming
// a directory's listing (spec §6): a name paired with its id and a flag
// discriminating file from directory.
type DirEntry struct {
	Name  string
	Id    ObjectId
	IsDir bool
}

// EncodeDirEntries serializes a sequence of DirEntry values with a count
// prefix, the shape list_dir and get_dir_all's child listings go over the
// wire as.
func EncodeDirEntries(entries []DirEntry) []byte {
	w := NewWriter()
	w.WriteUvarint(uint64(len(entries)))
	for _, e := range entries {
		w.WriteString(e.Name)
		w.WriteObjectId(e.Id)
		w.WriteBool(e.IsDir)
	}
	return w.Bytes()
}

// DecodeDirEntries deserializes a sequence produced by EncodeDirEntries.
func DecodeDirEntries(data []byte) ([]DirEntry, error) {
	r := NewReader(data)
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	entries := make([]DirEntry, 0, n)
	for i := uint64(0); i < n; i++ {
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		id, err := r.ReadObjectId()
		if err != nil {
			return nil, err
		}
		isDir, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		entries = append(entries, DirEntry{Name: name, Id: id, IsDir: isDir})
	}
	return entries, nil
}

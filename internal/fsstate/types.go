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

package fsstate

// FileObject is the per-file content metadata stored in the file arena
// (spec §3). The core never holds file bytes, only blob_id: an opaque
// pointer into an external, content-addressed store.
type FileObject struct {
	CreateTs int64    `yaml:"create_ts"`
	Tags     []string `yaml:"tags"`
	Size     uint64   `yaml:"size"`
	BlobId   string   `yaml:"blob_id"`
	EndEpoch uint64   `yaml:"end_epoch"`
}

func (f *FileObject) clone() *FileObject {
	cp := *f
	cp.Tags = append([]string(nil), f.Tags...)
	return &cp
}

// DirObject is a non-root directory's metadata plus its own pair of
// name->id child indexes (spec §3). Root's child indexes live directly on
// Root instead, since root itself is never represented in dir_arena.
type DirObject struct {
	CreateTs int64    `yaml:"create_ts"`
	Tags     []string `yaml:"tags"`

	ChildFiles       map[string]ObjectId `yaml:"children_files"`
	ChildDirectories map[string]ObjectId `yaml:"children_directories"`
}

func newDirObject(tags []string, now int64) *DirObject {
	return &DirObject{
		CreateTs:         now,
		Tags:             append([]string(nil), tags...),
		ChildFiles:       make(map[string]ObjectId),
		ChildDirectories: make(map[string]ObjectId),
	}
}

// ListEntry is the tagged sum type returned by list_dir and stat (get_dir_all
// returns DirRecord and FileRecord instead): IsDir discriminates between the file
// and directory variants, per spec §4.9's "polymorphism over file/dir"
// design note.
type ListEntry struct {
	Name     string   `yaml:"name"`
	IsDir    bool     `yaml:"is_dir"`
	CreateTs int64    `yaml:"create_ts"`
	Tags     []string `yaml:"tags"`

	// File-only fields; zero/empty for directories.
	Size     uint64 `yaml:"size,omitempty"`
	BlobId   string `yaml:"blob_id,omitempty"`
	EndEpoch uint64 `yaml:"end_epoch,omitempty"`
}

func fileListEntry(name string, f *FileObject) ListEntry {
	return ListEntry{
		Name:     name,
		IsDir:    false,
		CreateTs: f.CreateTs,
		Tags:     append([]string(nil), f.Tags...),
		Size:     f.Size,
		BlobId:   f.BlobId,
		EndEpoch: f.EndEpoch,
	}
}

func dirListEntry(name string, d *DirObject) ListEntry {
	return ListEntry{
		Name:     name,
		IsDir:    true,
		CreateTs: d.CreateTs,
		Tags:     append([]string(nil), d.Tags...),
	}
}

// DirRecord is one directory's entry within a RecursiveSnapshot (spec
// §4.9). The two child sequences are parallel: the i-th name corresponds
// to the i-th id.
type DirRecord struct {
	Id       ObjectId
	CreateTs int64
	Tags     []string

	ChildFileNames []string
	ChildFileIds   []ObjectId

	ChildDirNames []string
	ChildDirIds   []ObjectId
}

// FileRecord pairs a file's id with its stored object, as returned in a
// RecursiveSnapshot's Files sequence.
type FileRecord struct {
	Id   ObjectId
	File FileObject
}

// RecursiveSnapshot is get_dir_all's return value (spec §4.9): the target
// directory's own id, plus every file and directory transitively reachable
// from it.
type RecursiveSnapshot struct {
	DirId ObjectId
	Files []FileRecord
	Dirs  []DirRecord
}

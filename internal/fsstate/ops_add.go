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

// validateTags enforces MAX_TAGS and, per-tag, MAX_STRING_LEN (spec §4.2's
// shared tag/string validation, reused by add_file and add_dir).
func (e *Engine) validateTags(tags []string) error {
	if len(tags) > e.limits.MaxTags {
		return &TooManyTagsError{Len: len(tags), Max: e.limits.MaxTags}
	}
	for _, t := range tags {
		if len(t) > e.limits.MaxStringLen {
			return &StringTooLongError{Field: "tag", Len: len(t), Max: e.limits.MaxStringLen}
		}
	}
	return nil
}

// AddFile inserts or overwrites a file at path (spec §4.2).
//
// Without overwrite, an existing file at path raises FileAlreadyExistsError
// and emits FileAlreadyExists; with overwrite, the existing object is
// evicted from the file arena and replaced under a freshly minted id, same
// as a brand new file. Either way a FileAdded event carries the new object.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) AddFile(path string, tags []string, size uint64, blobId string, endEpoch uint64, overwrite bool, now int64) (ObjectId, error) {
	return instrumentValue(e, "add_file", path, func() (ObjectId, error) {
		if err := e.validateTags(tags); err != nil {
			return ObjectId{}, err
		}
		if len(blobId) > e.limits.MaxStringLen {
			return ObjectId{}, &StringTooLongError{Field: "blob_id", Len: len(blobId), Max: e.limits.MaxStringLen}
		}

		e.mu.Lock()
		defer e.mu.Unlock()

		parent, name, err := e.root.walk(path, e.limits)
		if err != nil {
			return ObjectId{}, err
		}
		if name == "" {
			return ObjectId{}, &InvalidRootOperationError{Op: "add_file"}
		}

		fileIds := parent.childFiles()
		if fileIds == nil {
			fileIds = e.root.ChildFiles
		}

		obj := &FileObject{CreateTs: now, Tags: append([]string(nil), tags...), Size: size, BlobId: blobId, EndEpoch: endEpoch}

		if existingId, ok := fileIds[name]; ok {
			if !overwrite {
				e.emit(Event{Kind: EventFileAlreadyExists, Path: path, File: e.root.FileArena[existingId]})
				return ObjectId{}, &FileAlreadyExistsError{Path: path}
			}
			delete(e.root.FileArena, existingId)
			id := e.root.Counter.next()
			fileIds[name] = id
			e.root.FileArena[id] = obj
			e.emit(Event{Kind: EventFileAdded, Path: path, File: obj.clone()})
			return id, nil
		}

		id := e.root.Counter.next()
		fileIds[name] = id
		e.root.FileArena[id] = obj
		e.emit(Event{Kind: EventFileAdded, Path: path, File: obj.clone()})
		return id, nil
	})
}

// AddDir creates a directory at path (spec §4.3). Unlike AddFile, there is
// no overwrite mode: an existing directory at path is always rejected.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) AddDir(path string, tags []string, now int64) (ObjectId, error) {
	return instrumentValue(e, "add_dir", path, func() (ObjectId, error) {
		if err := e.validateTags(tags); err != nil {
			return ObjectId{}, err
		}

		e.mu.Lock()
		defer e.mu.Unlock()

		parent, name, err := e.root.walk(path, e.limits)
		if err != nil {
			return ObjectId{}, err
		}
		if name == "" {
			return ObjectId{}, &InvalidRootOperationError{Op: "add_dir"}
		}

		dirIds := parent.childDirectories()
		if dirIds == nil {
			dirIds = e.root.ChildDirectories
		}

		if existingId, ok := dirIds[name]; ok {
			e.emit(Event{Kind: EventDirAlreadyExists, Path: path, Dir: e.root.DirArena[existingId]})
			return ObjectId{}, &DirectoryAlreadyExistsError{Path: path}
		}

		id := e.root.Counter.next()
		obj := newDirObject(tags, now)
		dirIds[name] = id
		e.root.DirArena[id] = obj
		e.emit(Event{Kind: EventDirAdded, Path: path, Dir: obj})
		return id, nil
	})
}

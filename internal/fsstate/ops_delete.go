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

// DeleteFile removes a single file (spec §4.5). The terminal name must
// exist and must resolve to a file.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) DeleteFile(path string) error {
	return e.instrument("delete_file", path, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		parent, name, err := e.root.walk(path, e.limits)
		if err != nil {
			return err
		}
		if name == "" {
			return &InvalidRootOperationError{Op: "delete_file"}
		}

		fileIds := parent.childFiles()
		if fileIds == nil {
			fileIds = e.root.ChildFiles
		}

		id, ok := fileIds[name]
		if !ok {
			return &PathNotFoundError{Path: path}
		}

		obj := e.root.FileArena[id]
		delete(fileIds, name)
		delete(e.root.FileArena, id)
		e.emit(Event{Kind: EventDeleted, Path: path, File: obj})
		return nil
	})
}

// DeleteDir removes a directory and everything transitively reachable from
// it (spec §4.6). The walk that collects the reachable set is breadth-
// first and set-based rather than a plain recursive sequence, so it
// tolerates accidental aliasing (two names pointing at the same child id)
// without double-freeing or looping.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) DeleteDir(path string) error {
	return e.instrument("delete_dir", path, func() error {
		e.mu.Lock()
		defer e.mu.Unlock()

		parent, name, err := e.root.walk(path, e.limits)
		if err != nil {
			return err
		}
		if name == "" {
			return &InvalidRootOperationError{Op: "delete_dir"}
		}

		dirIds := parent.childDirectories()
		if dirIds == nil {
			dirIds = e.root.ChildDirectories
		}

		rootId, ok := dirIds[name]
		if !ok {
			return &PathNotFoundError{Path: path}
		}

		visitedDirs := map[ObjectId]bool{rootId: true}
		visitedFiles := map[ObjectId]bool{}

		q := newQueue[ObjectId]()
		q.push(rootId)
		for !q.isEmpty() {
			dirId := q.pop()
			dir, ok := e.root.DirArena[dirId]
			if !ok {
				return &ArenaMismatchError{Id: dirId, Detail: "directory id missing from dir_arena"}
			}
			for _, fid := range dir.ChildFiles {
				visitedFiles[fid] = true
			}
			for _, did := range dir.ChildDirectories {
				if !visitedDirs[did] {
					visitedDirs[did] = true
					q.push(did)
				}
			}
		}

		for fid := range visitedFiles {
			delete(e.root.FileArena, fid)
		}
		for did := range visitedDirs {
			delete(e.root.DirArena, did)
		}
		delete(dirIds, name)

		e.emit(Event{Kind: EventDeleted, Path: path})
		return nil
	})
}

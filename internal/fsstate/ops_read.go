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

import (
	"sort"

	"github.com/chainfs/fstree/cfg"
)

// resolveDir resolves path to a directory's id and its own pair of child
// indexes, handling "/" as a special case since root's indexes live
// directly on Root rather than in dir_arena.
func (r *Root) resolveDir(path string, limits cfg.LimitsConfig) (id ObjectId, childFiles, childDirs map[string]ObjectId, err error) {
	parent, name, err := r.walk(path, limits)
	if err != nil {
		return ObjectId{}, nil, nil, err
	}
	if name == "" {
		return RootId, r.ChildFiles, r.ChildDirectories, nil
	}

	dirIds := parent.childDirectories()
	if dirIds == nil {
		dirIds = r.ChildDirectories
	}
	dirId, ok := dirIds[name]
	if !ok {
		return ObjectId{}, nil, nil, &PathNotFoundError{Path: path}
	}
	dir, ok := r.DirArena[dirId]
	if !ok {
		return ObjectId{}, nil, nil, &ArenaMismatchError{Id: dirId, Detail: "directory id missing from dir_arena"}
	}
	return dirId, dir.ChildFiles, dir.ChildDirectories, nil
}

// ListDir returns the immediate children of path, files and directories
// together, sorted by name for a deterministic result (spec §4.7).
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) ListDir(path string) ([]ListEntry, error) {
	return instrumentValue(e, "list_dir", path, func() ([]ListEntry, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		_, childFiles, childDirs, err := e.root.resolveDir(path, e.limits)
		if err != nil {
			return nil, err
		}

		entries := make([]ListEntry, 0, len(childFiles)+len(childDirs))
		for name, id := range childFiles {
			entries = append(entries, fileListEntry(name, e.root.FileArena[id]))
		}
		for name, id := range childDirs {
			entries = append(entries, dirListEntry(name, e.root.DirArena[id]))
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		return entries, nil
	})
}

// Stat resolves path to its entry (spec §4.8). The root path "/" is not a
// valid argument and aborts PathError, same as any other malformed path;
// unlike AddFile/AddDir/etc. it is not InvalidRootOperationError, since that
// type is reserved for mutations targeting "/" exactly. When a file and a
// directory happen to share the same name under the same parent, the file
// wins: the file index is consulted before the directory index.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) Stat(path string) (ListEntry, error) {
	return instrumentValue(e, "stat", path, func() (ListEntry, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		parent, name, err := e.root.walk(path, e.limits)
		if err != nil {
			return ListEntry{}, err
		}
		if name == "" {
			return ListEntry{}, &PathError{Path: path, Reason: "root is not a valid stat argument"}
		}

		fileIds := parent.childFiles()
		if fileIds == nil {
			fileIds = e.root.ChildFiles
		}
		if id, ok := fileIds[name]; ok {
			return fileListEntry(name, e.root.FileArena[id]), nil
		}

		dirIds := parent.childDirectories()
		if dirIds == nil {
			dirIds = e.root.ChildDirectories
		}
		if id, ok := dirIds[name]; ok {
			return dirListEntry(name, e.root.DirArena[id]), nil
		}

		return ListEntry{}, &PathNotFoundError{Path: path}
	})
}

// GetDirAll returns path's id plus every file and directory transitively
// reachable from it (spec §4.9). Like DeleteDir's collection pass, the walk
// is breadth-first and set-based so aliasing cannot produce duplicate or
// missing records, but nothing is removed.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) GetDirAll(path string) (RecursiveSnapshot, error) {
	return instrumentValue(e, "get_dir_all", path, func() (RecursiveSnapshot, error) {
		return e.getDirAll(path)
	})
}

func (e *Engine) getDirAll(path string) (RecursiveSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dirId, childFiles, childDirs, err := e.root.resolveDir(path, e.limits)
	if err != nil {
		return RecursiveSnapshot{}, err
	}

	snapshot := RecursiveSnapshot{DirId: dirId}
	visitedDirs := map[ObjectId]bool{}
	visitedFiles := map[ObjectId]bool{}

	if dirId.IsRoot() {
		visitedDirs[RootId] = true
		snapshot.Dirs = append(snapshot.Dirs, rootDirRecord(childFiles, childDirs))
	} else {
		visitedDirs[dirId] = true
		snapshot.Dirs = append(snapshot.Dirs, dirRecord(dirId, e.root.DirArena[dirId]))
	}

	q := newQueue[ObjectId]()
	for _, id := range childDirs {
		if !visitedDirs[id] {
			visitedDirs[id] = true
			q.push(id)
		}
	}
	for _, id := range childFiles {
		visitedFiles[id] = true
	}

	for !q.isEmpty() {
		dirId := q.pop()
		dir, ok := e.root.DirArena[dirId]
		if !ok {
			return RecursiveSnapshot{}, &ArenaMismatchError{Id: dirId, Detail: "directory id missing from dir_arena"}
		}
		snapshot.Dirs = append(snapshot.Dirs, dirRecord(dirId, dir))
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
		snapshot.Files = append(snapshot.Files, FileRecord{Id: fid, File: *e.root.FileArena[fid]})
	}
	sort.Slice(snapshot.Files, func(i, j int) bool { return snapshot.Files[i].Id.String() < snapshot.Files[j].Id.String() })
	sort.Slice(snapshot.Dirs, func(i, j int) bool { return snapshot.Dirs[i].Id.String() < snapshot.Dirs[j].Id.String() })

	return snapshot, nil
}

// sortedNames returns m's keys sorted, so the two parallel child
// sequences below never depend on Go's randomized map iteration order.
func sortedNames(m map[string]ObjectId) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dirRecord(id ObjectId, d *DirObject) DirRecord {
	rec := DirRecord{Id: id, CreateTs: d.CreateTs, Tags: append([]string(nil), d.Tags...)}
	for _, name := range sortedNames(d.ChildFiles) {
		rec.ChildFileNames = append(rec.ChildFileNames, name)
		rec.ChildFileIds = append(rec.ChildFileIds, d.ChildFiles[name])
	}
	for _, name := range sortedNames(d.ChildDirectories) {
		rec.ChildDirNames = append(rec.ChildDirNames, name)
		rec.ChildDirIds = append(rec.ChildDirIds, d.ChildDirectories[name])
	}
	return rec
}

// rootDirRecord builds the synthetic DirRecord for root itself, whose
// CreateTs/Tags have no analogue (root is never created, only
// initialized) and whose id is the RootId sentinel.
func rootDirRecord(childFiles, childDirs map[string]ObjectId) DirRecord {
	rec := DirRecord{Id: RootId}
	for _, name := range sortedNames(childFiles) {
		rec.ChildFileNames = append(rec.ChildFileNames, name)
		rec.ChildFileIds = append(rec.ChildFileIds, childFiles[name])
	}
	for _, name := range sortedNames(childDirs) {
		rec.ChildDirNames = append(rec.ChildDirNames, name)
		rec.ChildDirIds = append(rec.ChildDirIds, childDirs[name])
	}
	return rec
}

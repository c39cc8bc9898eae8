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
	"fmt"
)

// Validate re-checks the structural invariants spec §3 lays out for a
// tree. It is run by the invariant-checking build around every
// Engine.Lock/Unlock pair, and is exposed standalone as an fsck-style
// consistency check over a tree loaded from disk.
func Validate(root *Root) error {
	if _, ok := root.DirArena[RootId]; ok {
		return fmt.Errorf("fsstate: root id present in dir_arena")
	}
	if _, ok := root.FileArena[RootId]; ok {
		return fmt.Errorf("fsstate: root id present in file_arena")
	}

	counterVal := root.Counter.value

	seenDirs := map[ObjectId]bool{}
	seenFiles := map[ObjectId]bool{}

	checkDirChild := func(parentDesc string, id ObjectId) error {
		if id.IsRoot() {
			return fmt.Errorf("fsstate: %s references root id as a child directory", parentDesc)
		}
		if _, ok := root.DirArena[id]; !ok {
			return fmt.Errorf("fsstate: %s references missing directory id %s", parentDesc, id)
		}
		if id.big().Cmp(&counterVal) > 0 {
			return fmt.Errorf("fsstate: directory id %s exceeds obj_id_counter %s", id, &counterVal)
		}
		return nil
	}
	checkFileChild := func(parentDesc string, id ObjectId) error {
		if id.IsRoot() {
			return fmt.Errorf("fsstate: %s references root id as a child file", parentDesc)
		}
		if _, ok := root.FileArena[id]; !ok {
			return fmt.Errorf("fsstate: %s references missing file id %s", parentDesc, id)
		}
		if id.big().Cmp(&counterVal) > 0 {
			return fmt.Errorf("fsstate: file id %s exceeds obj_id_counter %s", id, &counterVal)
		}
		return nil
	}

	q := newQueue[ObjectId]()
	for _, id := range root.ChildDirectories {
		if err := checkDirChild("root", id); err != nil {
			return err
		}
		if !seenDirs[id] {
			seenDirs[id] = true
			q.push(id)
		}
	}
	for _, id := range root.ChildFiles {
		if err := checkFileChild("root", id); err != nil {
			return err
		}
		seenFiles[id] = true
	}

	for !q.isEmpty() {
		id := q.pop()
		dir := root.DirArena[id]
		desc := fmt.Sprintf("directory %s", id)
		for _, cid := range dir.ChildDirectories {
			if err := checkDirChild(desc, cid); err != nil {
				return err
			}
			if !seenDirs[cid] {
				seenDirs[cid] = true
				q.push(cid)
			}
		}
		for _, cid := range dir.ChildFiles {
			if err := checkFileChild(desc, cid); err != nil {
				return err
			}
			seenFiles[cid] = true
		}
	}

	if len(seenDirs) != len(root.DirArena) {
		return fmt.Errorf("fsstate: dir_arena has %d unreachable entries", len(root.DirArena)-len(seenDirs))
	}
	if len(seenFiles) != len(root.FileArena) {
		return fmt.Errorf("fsstate: file_arena has %d unreachable entries", len(root.FileArena)-len(seenFiles))
	}

	return nil
}

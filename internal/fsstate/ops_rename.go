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

import "path"

// sameParent reports whether from and to share every segment but the last,
// the "renames never cross directories" rule from spec §4.4.
func sameParent(from, to string) bool {
	return path.Dir(from) == path.Dir(to)
}

// RenameFile moves a file to a new name within the same directory (spec
// §4.4). from must exist and to must not; from and to must differ only in
// their terminal segment.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) RenameFile(from, to string) error {
	return e.instrument("rename_file", from+"->"+to, func() error {
		if !sameParent(from, to) {
			return &RenamePathMismatchError{From: from, To: to}
		}

		e.mu.Lock()
		defer e.mu.Unlock()

		parent, fromName, err := e.root.walk(from, e.limits)
		if err != nil {
			return err
		}
		if fromName == "" {
			return &InvalidRootOperationError{Op: "rename_file"}
		}
		_, toName, err := e.root.walk(to, e.limits)
		if err != nil {
			return err
		}

		fileIds := parent.childFiles()
		if fileIds == nil {
			fileIds = e.root.ChildFiles
		}

		id, ok := fileIds[fromName]
		if !ok {
			return &PathNotFoundError{Path: from}
		}
		if _, exists := fileIds[toName]; exists {
			return &FileAlreadyExistsError{Path: to}
		}

		delete(fileIds, fromName)
		fileIds[toName] = id
		return nil
	})
}

// RenameDir moves a directory to a new name within the same parent (spec
// §4.4). Symmetric to RenameFile but over the directory index.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) RenameDir(from, to string) error {
	return e.instrument("rename_dir", from+"->"+to, func() error {
		if !sameParent(from, to) {
			return &RenamePathMismatchError{From: from, To: to}
		}

		e.mu.Lock()
		defer e.mu.Unlock()

		parent, fromName, err := e.root.walk(from, e.limits)
		if err != nil {
			return err
		}
		if fromName == "" {
			return &InvalidRootOperationError{Op: "rename_dir"}
		}
		_, toName, err := e.root.walk(to, e.limits)
		if err != nil {
			return err
		}

		dirIds := parent.childDirectories()
		if dirIds == nil {
			dirIds = e.root.ChildDirectories
		}

		id, ok := dirIds[fromName]
		if !ok {
			return &PathNotFoundError{Path: from}
		}
		if _, exists := dirIds[toName]; exists {
			return &DirectoryAlreadyExistsError{Path: to}
		}

		delete(dirIds, fromName)
		dirIds[toName] = id
		return nil
	})
}

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

import "fmt"

// Every mutating and read-only operation has a single failure path: a
// tagged abort error that leaves state unchanged (spec §7). Each kind is
// its own type so callers can errors.As against it instead of matching
// strings, while still embedding enough context to print something useful.

// PathError is raised when a path fails syntactic validation, a
// non-terminal segment does not exist, or the operation targets root where
// root is not a valid target.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("fsstate: invalid path %q: %s", e.Path, e.Reason)
}

// PathNotFoundError is raised when a terminal name does not exist (stat,
// delete).
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("fsstate: path not found: %q", e.Path)
}

// ArenaMismatchError signals a broken internal invariant: a name->id entry
// points to a missing arena entry. It should be unreachable in a correct
// implementation; surfacing it is how bugs are meant to show up (spec §7).
type ArenaMismatchError struct {
	Id     ObjectId
	Detail string
}

func (e *ArenaMismatchError) Error() string {
	return fmt.Sprintf("fsstate: arena mismatch for id %s: %s", e.Id, e.Detail)
}

// FileAlreadyExistsError is raised by add_file without overwrite, or by a
// rename_file whose destination name already exists.
type FileAlreadyExistsError struct {
	Path string
}

func (e *FileAlreadyExistsError) Error() string {
	return fmt.Sprintf("fsstate: file already exists: %q", e.Path)
}

// DirectoryAlreadyExistsError is raised by add_dir, or by a rename_dir
// whose destination name already exists.
type DirectoryAlreadyExistsError struct {
	Path string
}

func (e *DirectoryAlreadyExistsError) Error() string {
	return fmt.Sprintf("fsstate: directory already exists: %q", e.Path)
}

// RenamePathMismatchError is raised when from and to differ in any prefix
// segment; renames never cross directories.
type RenamePathMismatchError struct {
	From, To string
}

func (e *RenamePathMismatchError) Error() string {
	return fmt.Sprintf("fsstate: rename %q -> %q crosses directories", e.From, e.To)
}

// StringTooLongError is raised when any input string exceeds MaxStringLen.
type StringTooLongError struct {
	Field string
	Len   int
	Max   int
}

func (e *StringTooLongError) Error() string {
	return fmt.Sprintf("fsstate: %s is %d bytes, exceeds limit of %d", e.Field, e.Len, e.Max)
}

// TooManyTagsError is raised when tags.len() > MaxTags.
type TooManyTagsError struct {
	Len int
	Max int
}

func (e *TooManyTagsError) Error() string {
	return fmt.Sprintf("fsstate: %d tags exceeds limit of %d", e.Len, e.Max)
}

// InvalidRootOperationError is raised when a mutation targets "/" exactly.
type InvalidRootOperationError struct {
	Op string
}

func (e *InvalidRootOperationError) Error() string {
	return fmt.Sprintf("fsstate: %s cannot target the root path", e.Op)
}

// UnauthorizedError is raised when the caller is not the root's bound
// authority.
type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "fsstate: caller is not the bound authority"
}

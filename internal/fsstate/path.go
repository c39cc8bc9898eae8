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
	"strings"

	"github.com/chainfs/fstree/cfg"
)

// splitPath validates path against spec §4.1 and returns its segments.
//
// A valid path is non-empty, begins with "/", contains no empty segments
// (so no "//" and no trailing "/" beyond the root itself), and every
// segment is between 1 and limits.MaxStringLen bytes. The path as a whole
// must not exceed limits.MaxPathLen bytes. "/" itself splits to zero
// segments, denoting root.
func splitPath(path string, limits cfg.LimitsConfig) ([]string, error) {
	if path == "" {
		return nil, &PathError{Path: path, Reason: "path must not be empty"}
	}
	if !strings.HasPrefix(path, "/") {
		return nil, &PathError{Path: path, Reason: "path must start with '/'"}
	}
	if len(path) > limits.MaxPathLen {
		return nil, &PathError{Path: path, Reason: "path exceeds maximum length"}
	}
	if path == "/" {
		return nil, nil
	}

	raw := strings.Split(path[1:], "/")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg == "" {
			return nil, &PathError{Path: path, Reason: "path contains an empty segment"}
		}
		if len(seg) > limits.MaxStringLen {
			return nil, &PathError{Path: path, Reason: "path segment exceeds maximum length"}
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// parentRef identifies a directory that can own children: either the root
// itself, whose child indexes live on Root, or a non-root directory found
// in dir_arena.
type parentRef struct {
	id   ObjectId
	dir  *DirObject // nil when id.IsRoot()
}

func (p parentRef) childFiles() map[string]ObjectId {
	if p.dir == nil {
		return nil
	}
	return p.dir.ChildFiles
}

func (p parentRef) childDirectories() map[string]ObjectId {
	if p.dir == nil {
		return nil
	}
	return p.dir.ChildDirectories
}

// walk splits path, then descends from root through every non-terminal
// segment's child-directory index, returning the immediate parent of the
// terminal name plus the terminal name itself. It never inspects the
// terminal segment's own existence; callers that need to know whether the
// terminal name exists look it up in the returned parent's indexes.
//
// An empty segments slice (path == "/") has no terminal name: callers that
// reach root itself get back name == "" and must reject that case
// themselves (add/rename/delete of "/" is invalid; list_dir/get_dir_all of
// "/" is not).
func (r *Root) walk(path string, limits cfg.LimitsConfig) (parent parentRef, name string, err error) {
	segments, err := splitPath(path, limits)
	if err != nil {
		return parentRef{}, "", err
	}
	if len(segments) == 0 {
		return parentRef{id: RootId}, "", nil
	}

	cur := parentRef{id: RootId, dir: nil} // root, via r.ChildDirectories
	curDirs := r.ChildDirectories
	for _, seg := range segments[:len(segments)-1] {
		childId, ok := curDirs[seg]
		if !ok {
			return parentRef{}, "", &PathError{Path: path, Reason: "no such directory: " + seg}
		}
		child, ok := r.DirArena[childId]
		if !ok {
			return parentRef{}, "", &ArenaMismatchError{Id: childId, Detail: "directory id missing from dir_arena"}
		}
		cur = parentRef{id: childId, dir: child}
		curDirs = child.ChildDirectories
	}
	return cur, segments[len(segments)-1], nil
}

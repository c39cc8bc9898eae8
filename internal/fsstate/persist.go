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
	"os"

	"gopkg.in/yaml.v3"
)

// SaveRoot writes root's entire state to path as YAML, bit-for-bit
// round-trippable through LoadRoot. Callers obtain root via
// Engine.Snapshot; root is marshaled without holding the engine's lock, so
// no other operation may run on that engine while SaveRoot is in progress.
func SaveRoot(path string, root *Root) error {
	data, err := yaml.Marshal(root)
	if err != nil {
		return fmt.Errorf("fsstate: marshal root: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fsstate: write %s: %w", path, err)
	}
	return nil
}

// LoadRoot reads a tree previously written by SaveRoot and validates it
// before returning, so a caller never ends up operating on silently
// corrupt state.
func LoadRoot(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fsstate: read %s: %w", path, err)
	}

	root := &Root{
		ChildFiles:       make(map[string]ObjectId),
		ChildDirectories: make(map[string]ObjectId),
		FileArena:        make(map[ObjectId]*FileObject),
		DirArena:         make(map[ObjectId]*DirObject),
	}
	if err := yaml.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("fsstate: unmarshal %s: %w", path, err)
	}
	if err := Validate(root); err != nil {
		return nil, fmt.Errorf("fsstate: %s failed validation: %w", path, err)
	}
	return root, nil
}

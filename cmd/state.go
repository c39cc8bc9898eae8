// Copyright 2024 Google Inc. All Rights Reserved.
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

package cmd

import (
	"fmt"

	"github.com/chainfs/fstree/internal/authority"
	"github.com/chainfs/fstree/internal/fsstate"
)

// openEngine loads the tree at stateFile and wraps it in an Engine bound
// by the configured limits. Every leaf command that mutates or reads the
// tree goes through this, except init and fsck, which call SaveRoot and
// LoadRoot directly.
func openEngine() (*fsstate.Engine, error) {
	root, err := fsstate.LoadRoot(stateFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", stateFile, err)
	}
	return fsstate.NewEngine(root, TreeConfig.Limits, newEventSink()), nil
}

// loadIdentity reads the signing identity commands that mutate the tree's
// authority-gated fields (currently just epoch advances) need.
func loadIdentity() (authority.Identity, error) {
	id, err := authority.LoadFromFile(identityFile)
	if err != nil {
		return authority.Identity{}, fmt.Errorf("loading identity from %s: %w", identityFile, err)
	}
	return id, nil
}

// withEngine opens the tree, runs fn against it, and, when fn succeeds,
// persists the (possibly mutated) tree back to stateFile.
func withEngine(fn func(*fsstate.Engine) error) error {
	e, err := openEngine()
	if err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	return fsstate.SaveRoot(stateFile, e.Snapshot())
}

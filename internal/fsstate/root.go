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
	"crypto/ed25519"
	"fmt"

	"github.com/jacobsa/syncutil"

	"github.com/chainfs/fstree/cfg"
	"github.com/chainfs/fstree/internal/metrics"
)

// Root is the entire persisted state of one tree (spec §3): the current
// epoch, the id-minting counter, the bound authority's public key, root's
// own pair of name->id child indexes, and the two arenas every non-root
// object lives in.
//
// Root by itself is not safe for concurrent use; Engine supplies the
// locking discipline every operation in this package runs under.
type Root struct {
	CurrentEpoch uint64            `yaml:"current_epoch"`
	Counter      counter           `yaml:"obj_id_counter"`
	Authority    ed25519.PublicKey `yaml:"authority"`

	ChildFiles       map[string]ObjectId `yaml:"children_files"`
	ChildDirectories map[string]ObjectId `yaml:"children_directories"`

	FileArena map[ObjectId]*FileObject `yaml:"file_arena"`
	DirArena  map[ObjectId]*DirObject  `yaml:"dir_arena"`
}

// NewRoot returns a freshly initialized tree bound to authority, with empty
// arenas and epoch zero (spec §4's "Initialize").
func NewRoot(authority ed25519.PublicKey) *Root {
	return &Root{
		Authority:        authority,
		ChildFiles:       make(map[string]ObjectId),
		ChildDirectories: make(map[string]ObjectId),
		FileArena:        make(map[ObjectId]*FileObject),
		DirArena:         make(map[ObjectId]*DirObject),
	}
}

// Engine is the single-writer execution surface every caller goes through:
// one exclusive lock per root, matching the teacher's one-inode-table-lock
// fs.FileSystem design (LOCKS_REQUIRED/LOCKS_EXCLUDED throughout fs/fs.go).
type Engine struct {
	limits        cfg.LimitsConfig
	sink          EventSink
	metricsHandle metrics.OpsHandle

	mu   syncutil.InvariantMutex
	root *Root // GUARDED_BY(mu)
}

// NewEngine wraps root with the locking and validation discipline every
// operation requires. A nil sink discards events.
func NewEngine(root *Root, limits cfg.LimitsConfig, sink EventSink) *Engine {
	if sink == nil {
		sink = noopSink
	}
	e := &Engine{root: root, limits: limits, sink: sink}
	e.mu = syncutil.NewInvariantMutex(e.checkInvariants)
	return e
}

// WithSink replaces the engine's event sink, used by tests and by hosts
// that want to attach the sink after construction rather than threading it
// through NewEngine. A nil sink discards events.
func (e *Engine) WithSink(sink EventSink) *Engine {
	if sink == nil {
		sink = noopSink
	}
	e.sink = sink
	return e
}

// checkInvariants is run by the InvariantMutex around every Lock/Unlock
// pair in builds where invariant checking is enabled. It re-validates the
// structural invariants from spec §3 rather than duplicating that logic.
//
// LOCKS_REQUIRED(e.mu)
func (e *Engine) checkInvariants() {
	if err := Validate(e.root); err != nil {
		panic(fmt.Sprintf("fsstate: invariant violation: %v", err))
	}
}

// emit forwards an event to the configured sink. The operations call it
// while still holding e.mu, so a slow sink delays other callers.
func (e *Engine) emit(ev Event) {
	e.sink(ev)
}

// Snapshot returns the engine's live root (not a copy) for callers that
// only need to read it under their own synchronization, such as SaveRoot.
// The lock is released before it returns, so later operations on the
// engine change what the returned pointer sees; it must not be mutated.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) Snapshot() *Root {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Authorize verifies that sig is authority's signature over msg, the
// binding UpdateEpoch checks before touching state (spec §5 "Authority").
// AddFile, AddDir, the renames and the deletes take no signature and do
// not call it.
func (e *Engine) Authorize(msg, sig []byte) error {
	root := e.root
	if len(root.Authority) != ed25519.PublicKeySize || !ed25519.Verify(root.Authority, msg, sig) {
		return &UnauthorizedError{}
	}
	return nil
}

// UpdateEpoch advances the tree's logical clock (spec §4 "UpdateEpoch").
// newEpoch must be strictly greater than the current epoch; callers
// already hold a valid signature authorizing the advance.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) UpdateEpoch(newEpoch uint64, sig []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var msg [8]byte
	for i := range msg {
		msg[i] = byte(newEpoch >> (8 * (7 - i)))
	}
	if err := e.Authorize(msg[:], sig); err != nil {
		return err
	}
	if newEpoch <= e.root.CurrentEpoch {
		return fmt.Errorf("fsstate: new epoch %d does not advance current epoch %d", newEpoch, e.root.CurrentEpoch)
	}
	e.root.CurrentEpoch = newEpoch
	return nil
}

// Epoch returns the tree's current epoch.
//
// LOCKS_EXCLUDED(e.mu)
func (e *Engine) Epoch() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root.CurrentEpoch
}

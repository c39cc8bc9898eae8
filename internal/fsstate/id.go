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
	"math/big"
)

// ObjectId is a 256-bit unsigned identifier, analogous to an inode number:
// zero is the sentinel root id, real objects start at 1, and the counter
// that mints them is never reused even after deletion (spec §3).
type ObjectId [32]byte

// RootId is the sentinel id denoting the root directory. It never appears
// as a key in either arena.
var RootId = ObjectId{}

// IsRoot reports whether id is the root sentinel.
func (id ObjectId) IsRoot() bool {
	return id == RootId
}

// String renders the id as a decimal number, matching how the rest of the
// tree logs inode-like identifiers (fuseops.InodeID's %d in the teacher).
func (id ObjectId) String() string {
	return id.big().String()
}

func (id ObjectId) big() *big.Int {
	return new(big.Int).SetBytes(id[:])
}

func idFromBig(b *big.Int) ObjectId {
	var id ObjectId
	b.FillBytes(id[:])
	return id
}

// counter mints monotonically increasing ObjectIds. It is part of Root's
// persisted state: obj_id_counter is bumped before assignment and is never
// allowed to repeat a previously issued id (spec §3, invariant 3).
type counter struct {
	value big.Int
}

// next bumps the counter and returns the freshly minted id.
func (c *counter) next() ObjectId {
	c.value.Add(&c.value, big.NewInt(1))
	return idFromBig(&c.value)
}

// String reports the counter's current value, used by persistence and by
// Validate's invariant-3 check.
func (c *counter) String() string {
	return c.value.String()
}

// MarshalText implements encoding.TextMarshaler so Root's YAML snapshot
// stores the counter as a plain decimal string instead of a byte blob.
func (c counter) MarshalText() ([]byte, error) {
	return []byte(c.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *counter) UnmarshalText(text []byte) error {
	if _, ok := c.value.SetString(string(text), 10); !ok {
		return fmt.Errorf("fsstate: invalid obj_id_counter %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler for ObjectId, rendering it
// as decimal so the persisted root round-trips through YAML legibly.
func (id ObjectId) MarshalText() ([]byte, error) {
	return []byte(id.big().String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for ObjectId.
func (id *ObjectId) UnmarshalText(text []byte) error {
	b, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return fmt.Errorf("fsstate: invalid ObjectId %q", text)
	}
	*id = idFromBig(b)
	return nil
}

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

// Package authority holds the keypair that binds a tree to its single
// writer (spec §5 "Authority"). The core engine only ever verifies
// signatures against a tree's stored public key; minting and using the
// private half lives here, outside the engine, the way a real deployment
// would keep its signing key off the machine serving reads.
package authority

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

// Identity is a generated or loaded ed25519 keypair.
type Identity struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Generate mints a fresh identity, analogous to initializing a new tree's
// root authority.
func Generate() (Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Identity{}, fmt.Errorf("authority: generate key: %w", err)
	}
	return Identity{Public: pub, Private: priv}, nil
}

// Sign produces a signature over msg that the tree's engine will accept
// from Engine.Authorize, provided Public matches the tree's stored
// authority.
func (id Identity) Sign(msg []byte) []byte {
	return ed25519.Sign(id.Private, msg)
}

// WriteToFile persists the private key as a hex-encoded seed, the format
// LoadFromFile expects.
func (id Identity) WriteToFile(path string) error {
	seed := id.Private.Seed()
	if err := os.WriteFile(path, []byte(hex.EncodeToString(seed)), 0o600); err != nil {
		return fmt.Errorf("authority: write %s: %w", path, err)
	}
	return nil
}

// LoadFromFile reads an identity previously written by WriteToFile.
func LoadFromFile(path string) (Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Identity{}, fmt.Errorf("authority: read %s: %w", path, err)
	}
	seed, err := hex.DecodeString(string(data))
	if err != nil {
		return Identity{}, fmt.Errorf("authority: decode %s: %w", path, err)
	}
	if len(seed) != ed25519.SeedSize {
		return Identity{}, fmt.Errorf("authority: %s has invalid seed length %d", path, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return Identity{Public: priv.Public().(ed25519.PublicKey), Private: priv}, nil
}

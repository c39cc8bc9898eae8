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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfs/fstree/internal/authority"
	"github.com/chainfs/fstree/internal/fsstate"
)

func TestInitConfigPopulatesDefaultsWithoutConfigFile(t *testing.T) {
	cfgFile = ""
	initConfig()

	require.NoError(t, bindErr)
	require.NoError(t, configFileErr)
	require.NoError(t, unmarshalErr)
	assert.Equal(t, 5, TreeConfig.Limits.MaxTags)
	assert.Equal(t, 64, TreeConfig.Limits.MaxStringLen)
}

func TestOpenEngineRoundTripsThroughSaveRoot(t *testing.T) {
	dir := t.TempDir()
	stateFile = filepath.Join(dir, "tree.yaml")

	id, err := authority.Generate()
	require.NoError(t, err)
	require.NoError(t, fsstate.SaveRoot(stateFile, fsstate.NewRoot(id.Public)))

	cfgFile = ""
	initConfig()
	require.NoError(t, unmarshalErr)

	e, err := openEngine()
	require.NoError(t, err)

	_, err = e.AddDir("/docs", nil, 1000)
	require.NoError(t, err)
	require.NoError(t, fsstate.SaveRoot(stateFile, e.Snapshot()))

	reloaded, err := openEngine()
	require.NoError(t, err)
	_, err = reloaded.Stat("/docs")
	assert.NoError(t, err)
}

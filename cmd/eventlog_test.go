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
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfs/fstree/cfg"
	"github.com/chainfs/fstree/internal/fsstate"
)

func TestNewEventSinkReturnsNilWhenDisabled(t *testing.T) {
	TreeConfig = cfg.GetDefaultConfig()
	TreeConfig.EventLog.Enabled = false

	assert.Nil(t, newEventSink())
}

func TestNewEventSinkAppendsDecodableFrames(t *testing.T) {
	dir := t.TempDir()

	TreeConfig = cfg.GetDefaultConfig()
	TreeConfig.EventLog.Enabled = true
	TreeConfig.EventLog.Path = filepath.Join(dir, "events.log")
	eventLogOnce = sync.Once{}
	eventLogWriter = nil
	eventLogAsync = nil

	sink := newEventSink()
	require.NotNil(t, sink)

	sink(fsstate.Event{Kind: fsstate.EventDirAdded, Path: "/docs"})
	sink(fsstate.Event{Kind: fsstate.EventDeleted, Path: "/docs"})
	require.NoError(t, eventLogAsync.Close())
	require.NoError(t, eventLogWriter.Close())

	data, err := os.ReadFile(TreeConfig.EventLog.Path)
	require.NoError(t, err)

	frame, rest, ok := readEventLogFrame(data)
	require.True(t, ok)
	assert.NotEmpty(t, frame)

	frame, rest, ok = readEventLogFrame(rest)
	require.True(t, ok)
	assert.NotEmpty(t, frame)
	assert.Empty(t, rest)
}

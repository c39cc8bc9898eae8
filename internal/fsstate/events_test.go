// Copyright 2024 Google LLC
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

package fsstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainfs/fstree/internal/fsstate"
)

func TestAddFileEmitsDecodableEvent(t *testing.T) {
	e := newTestEngine(t)

	var captured fsstate.Event
	e.WithSink(func(ev fsstate.Event) { captured = ev })

	_, err := e.AddFile("/readme.txt", []string{"draft"}, 128, "blob-1", 0, false, 1000)
	assert.NoError(t, err)
	assert.Equal(t, fsstate.EventFileAdded, captured.Kind)
	assert.Equal(t, "/readme.txt", captured.Path)

	encoded := fsstate.EncodeEvent(captured)
	assert.NotEmpty(t, encoded)
}

func TestDeleteDirEmitsEventWithoutFileOrDirPayload(t *testing.T) {
	e := newTestEngine(t)

	var captured fsstate.Event
	e.WithSink(func(ev fsstate.Event) {
		if ev.Kind == fsstate.EventDeleted {
			captured = ev
		}
	})

	_, err := e.AddDir("/docs", nil, 1000)
	assert.NoError(t, err)
	assert.NoError(t, e.DeleteDir("/docs"))

	assert.Equal(t, "/docs", captured.Path)
	assert.Nil(t, captured.File)
	assert.Nil(t, captured.Dir)
	encoded := fsstate.EncodeEvent(captured)
	assert.NotEmpty(t, encoded)
}

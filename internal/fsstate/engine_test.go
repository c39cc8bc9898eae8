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

package fsstate_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfs/fstree/cfg"
	"github.com/chainfs/fstree/internal/fsstate"
)

func newTestEngine(t *testing.T) *fsstate.Engine {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	root := fsstate.NewRoot(pub)
	return fsstate.NewEngine(root, cfg.GetDefaultLimitsConfig(), nil)
}

func TestAddFileAtTopLevelThenStat(t *testing.T) {
	e := newTestEngine(t)

	id, err := e.AddFile("/readme.txt", []string{"draft"}, 128, "blob-1", 0, false, 1000)
	require.NoError(t, err)
	assert.False(t, id.IsRoot())

	entry, err := e.Stat("/readme.txt")
	require.NoError(t, err)
	assert.False(t, entry.IsDir)
	assert.Equal(t, []string{"draft"}, entry.Tags)
}

func TestAddDirThenAddFileInside(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.AddDir("/docs", []string{"root"}, 1000)
	require.NoError(t, err)

	fileId, err := e.AddFile("/docs/readme.txt", nil, 10, "blob-1", 0, false, 1001)
	require.NoError(t, err)

	entry, err := e.Stat("/docs/readme.txt")
	require.NoError(t, err)
	assert.False(t, entry.IsDir)
	assert.Equal(t, uint64(10), entry.Size)
	assert.Equal(t, "blob-1", entry.BlobId)

	entries, err := e.ListDir("/docs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "readme.txt", entries[0].Name)

	_, err = e.AddFile("/docs/readme.txt", nil, 20, "blob-2", 0, false, 1002)
	var alreadyExists *fsstate.FileAlreadyExistsError
	assert.ErrorAs(t, err, &alreadyExists)

	overwriteId, err := e.AddFile("/docs/readme.txt", nil, 20, "blob-2", 0, true, 1003)
	require.NoError(t, err)
	assert.NotEqual(t, fileId, overwriteId, "overwrite mints a new id and bumps obj_id_counter")

	entry, err = e.Stat("/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, uint64(20), entry.Size)
}

func TestAddFileRejectsMissingParent(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.AddFile("/missing/readme.txt", nil, 1, "blob", 0, false, 1000)
	var pathErr *fsstate.PathError
	assert.ErrorAs(t, err, &pathErr)
}

func TestStatRejectsRoot(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Stat("/")
	var pathErr *fsstate.PathError
	assert.ErrorAs(t, err, &pathErr)
}

func TestAddFileRejectsTooManyTags(t *testing.T) {
	e := newTestEngine(t)

	tags := make([]string, cfg.GetDefaultLimitsConfig().MaxTags+1)
	for i := range tags {
		tags[i] = "t"
	}

	_, err := e.AddFile("/f.txt", tags, 1, "blob", 0, false, 1000)
	var tooMany *fsstate.TooManyTagsError
	assert.ErrorAs(t, err, &tooMany)
}

func TestRenameFileWithinSameDirectory(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddDir("/docs", nil, 1000)
	require.NoError(t, err)
	_, err = e.AddFile("/docs/a.txt", nil, 1, "blob", 0, false, 1001)
	require.NoError(t, err)

	require.NoError(t, e.RenameFile("/docs/a.txt", "/docs/b.txt"))

	_, err = e.Stat("/docs/a.txt")
	assert.Error(t, err)
	entry, err := e.Stat("/docs/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", entry.Name)
}

func TestRenameFileRejectsCrossDirectory(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddDir("/a", nil, 1000)
	require.NoError(t, err)
	_, err = e.AddDir("/b", nil, 1000)
	require.NoError(t, err)
	_, err = e.AddFile("/a/x.txt", nil, 1, "blob", 0, false, 1001)
	require.NoError(t, err)

	err = e.RenameFile("/a/x.txt", "/b/x.txt")
	var mismatch *fsstate.RenamePathMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestDeleteDirRemovesEverythingReachable(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddDir("/docs", nil, 1000)
	require.NoError(t, err)
	_, err = e.AddDir("/docs/sub", nil, 1001)
	require.NoError(t, err)
	_, err = e.AddFile("/docs/a.txt", nil, 1, "blob", 0, false, 1002)
	require.NoError(t, err)
	_, err = e.AddFile("/docs/sub/b.txt", nil, 1, "blob", 0, false, 1003)
	require.NoError(t, err)

	require.NoError(t, e.DeleteDir("/docs"))

	_, err = e.Stat("/docs")
	assert.Error(t, err)

	snapshot, err := e.GetDirAll("/")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Files)
	assert.Empty(t, snapshot.Dirs[0].ChildDirNames)
}

func TestGetDirAllCollectsWholeSubtree(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddDir("/docs", nil, 1000)
	require.NoError(t, err)
	_, err = e.AddDir("/docs/sub", nil, 1001)
	require.NoError(t, err)
	_, err = e.AddFile("/docs/a.txt", nil, 1, "blob", 0, false, 1002)
	require.NoError(t, err)
	_, err = e.AddFile("/docs/sub/b.txt", nil, 1, "blob", 0, false, 1003)
	require.NoError(t, err)

	snapshot, err := e.GetDirAll("/docs")
	require.NoError(t, err)
	assert.Len(t, snapshot.Files, 2)
	assert.Len(t, snapshot.Dirs, 2)
}

func TestDeleteFileNotFound(t *testing.T) {
	e := newTestEngine(t)
	err := e.DeleteFile("/nope.txt")
	var notFound *fsstate.PathNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAddFileRejectsRootPath(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.AddFile("/", nil, 1, "blob", 0, false, 1000)
	var invalidRoot *fsstate.InvalidRootOperationError
	assert.ErrorAs(t, err, &invalidRoot)
}

func TestUpdateEpochRequiresValidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	root := fsstate.NewRoot(pub)
	e := fsstate.NewEngine(root, cfg.GetDefaultLimitsConfig(), nil)

	var msg [8]byte
	msg[7] = 5
	sig := ed25519.Sign(priv, msg[:])

	require.NoError(t, e.UpdateEpoch(5, sig))
	assert.Equal(t, uint64(5), e.Epoch())

	err = e.UpdateEpoch(6, []byte("bad-signature-bytes-000000000000000000000000000000000000000000"))
	var unauthorized *fsstate.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

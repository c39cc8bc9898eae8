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

import "github.com/chainfs/fstree/internal/wire"

// EventKind discriminates the five events an operation can emit (spec §6).
type EventKind int

const (
	EventFileAdded EventKind = iota
	EventFileAlreadyExists
	EventDirAdded
	EventDirAlreadyExists
	EventDeleted
)

func (k EventKind) String() string {
	switch k {
	case EventFileAdded:
		return "FileAdded"
	case EventFileAlreadyExists:
		return "FileAlreadyExists"
	case EventDirAdded:
		return "DirAdded"
	case EventDirAlreadyExists:
		return "DirAlreadyExists"
	case EventDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// Event carries the operation's path and, where applicable, the object's
// metadata as stored (spec §6 "Events").
type Event struct {
	Kind EventKind
	Path string

	// Set for FileAdded/FileAlreadyExists, and for the Deleted event of a
	// file (not of a directory).
	File *FileObject

	// Set for DirAdded/DirAlreadyExists.
	Dir *DirObject
}

// EventSink is the pluggable capability events are emitted through (spec
// §9 "Event emission"): off-chain indexers consume events as a side
// channel, never as part of an operation's return value.
type EventSink func(Event)

// noopSink discards every event; used when a caller doesn't need one.
func noopSink(Event) {}

// EncodeEvent renders ev in the same wire format as everything else the
// core puts on a wire (spec §6): off-chain indexers tailing the event log
// decode with internal/wire the same way they'd decode a call's return
// value.
func EncodeEvent(ev Event) []byte {
	w := wire.NewWriter()
	w.WriteUvarint(uint64(ev.Kind))
	w.WriteString(ev.Path)

	hasFile := ev.File != nil
	w.WriteBool(hasFile)
	if hasFile {
		w.WriteUint64(uint64(ev.File.CreateTs))
		w.WriteUint64(ev.File.Size)
		w.WriteUint64(ev.File.EndEpoch)
		w.WriteString(ev.File.BlobId)
		w.WriteStrings(ev.File.Tags)
	}

	hasDir := ev.Dir != nil
	w.WriteBool(hasDir)
	if hasDir {
		w.WriteUint64(uint64(ev.Dir.CreateTs))
		w.WriteStrings(ev.Dir.Tags)
	}

	return w.Bytes()
}

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
	"encoding/binary"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/chainfs/fstree/internal/fsstate"
	"github.com/chainfs/fstree/internal/logger"
)

// eventLogWriter and eventLogAsync are shared across the process's
// mutating commands rather than reopened per call, so lumberjack's
// rotation bookkeeping stays consistent even if a future host batches
// several operations in one process lifetime.
var (
	eventLogOnce   sync.Once
	eventLogWriter *lumberjack.Logger
	eventLogAsync  *logger.AsyncLogger
)

// eventLogBufferSize bounds how many pending event records the async
// logger queues before it starts dropping writes rather than blocking a
// mutation on disk I/O.
const eventLogBufferSize = 256

// newEventSink builds the EventSink every mutating subcommand passes to
// openEngine when the event log is enabled (spec §9 "Event emission" — a
// pluggable sink off-chain indexers consume as a side channel). Each event
// is logged at DEBUG and appended to the rotated file, through an
// AsyncLogger, as a ULEB128 length-prefixed fsstate.EncodeEvent record, so a
// tailer can resync by re-reading length prefixes after a truncated read
// and a slow disk never makes a mutation appear to block.
func newEventSink() fsstate.EventSink {
	if !TreeConfig.EventLog.Enabled {
		return nil
	}

	eventLogOnce.Do(func() {
		eventLogWriter = &lumberjack.Logger{
			Filename:   TreeConfig.EventLog.Path,
			MaxSize:    TreeConfig.EventLog.LogRotate.MaxFileSizeMb,
			MaxBackups: TreeConfig.EventLog.LogRotate.BackupFileCount,
			Compress:   TreeConfig.EventLog.LogRotate.Compress,
		}
		eventLogAsync = logger.NewAsyncLogger(eventLogWriter, eventLogBufferSize)
	})

	return func(ev fsstate.Event) {
		logger.Debugf("event kind=%s path=%s", ev.Kind, ev.Path)

		payload := fsstate.EncodeEvent(ev)
		var lenPrefix [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(lenPrefix[:], uint64(len(payload)))

		if _, err := eventLogAsync.Write(append(lenPrefix[:n], payload...)); err != nil {
			logger.Warnf("event log write failed: %v", err)
		}
	}
}

// readEventLogFrame reads one length-prefixed fsstate.EncodeEvent record, used
// by tooling that tails the rotated file this package writes.
func readEventLogFrame(data []byte) (frame []byte, rest []byte, ok bool) {
	n, sz := binary.Uvarint(data)
	if sz <= 0 || uint64(len(data)-sz) < n {
		return nil, data, false
	}
	start := sz
	end := sz + int(n)
	return data[start:end], data[end:], true
}

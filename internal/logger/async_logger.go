// Copyright 2025 Google LLC
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

package logger

import (
	"fmt"
	"io"
	"os"
)

// AsyncLogger decouples log writers (the event sink, in particular) from
// the latency of the underlying io.Writer — a rotated file on a slow disk
// must never make a mutating operation appear to block.
type AsyncLogger struct {
	messages chan []byte
	done     chan struct{}
}

// NewAsyncLogger starts a background goroutine that drains messages into w
// in the order they were written. If the buffer is full, new messages are
// dropped rather than blocking the caller.
func NewAsyncLogger(w io.Writer, bufferSize int) *AsyncLogger {
	l := &AsyncLogger{
		messages: make(chan []byte, bufferSize),
		done:     make(chan struct{}),
	}

	go func() {
		defer close(l.done)
		for msg := range l.messages {
			if _, err := w.Write(msg); err != nil {
				fmt.Fprintf(os.Stderr, "asynclogger: write failed: %v\n", err)
			}
		}
	}()

	return l
}

// Write implements io.Writer. The byte slice is copied before being queued
// since callers (fmt.Fprintln and friends) may reuse their buffer.
func (l *AsyncLogger) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)

	select {
	case l.messages <- cp:
	default:
		fmt.Fprintln(os.Stderr, "asynclogger: log buffer is full, dropping message.")
	}

	return len(p), nil
}

// Close stops accepting new messages and waits for the queued ones to
// drain.
func (l *AsyncLogger) Close() error {
	close(l.messages)
	<-l.done
	return nil
}

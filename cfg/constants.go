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

package cfg

const (
	// DefaultMaxTags is the bit-exact MAX_TAGS limit from the state machine
	// specification: at most this many tags per file or directory.
	DefaultMaxTags = 5

	// DefaultMaxStringLen is the bit-exact MAX_STRING_LEN limit: the byte
	// length (not rune count) any single string field may reach.
	DefaultMaxStringLen = 64

	// DefaultMaxPathLen must be at least 6*MAX_STRING_LEN per the
	// specification; it is set to exactly that minimum here rather than
	// derived at every call site.
	DefaultMaxPathLen = 6 * DefaultMaxStringLen

	// DefaultMetricsListenAddr is where the serve subcommand exposes
	// Prometheus/OTel metrics when metrics are enabled.
	DefaultMetricsListenAddr = ":9090"

	// DefaultEventLogPath is where mutating commands append wire-encoded
	// event records when the event log is enabled.
	DefaultEventLogPath = "fstree-events.log"
)

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

package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfs/fstree/internal/metrics"
)

func TestNewOpsHandleRecordsWithoutError(t *testing.T) {
	provider, err := metrics.NewProvider()
	require.NoError(t, err)
	defer provider.Shutdown(context.Background())

	handle, err := metrics.NewOpsHandle(provider)
	require.NoError(t, err)

	attrs := []metrics.Attr{{Key: "op", Value: "add_file"}}
	assert.NotPanics(t, func() {
		handle.OpsCount(context.Background(), 1, attrs)
		handle.OpsErrorCount(context.Background(), 0, attrs)
		handle.OpsLatency(context.Background(), 12*time.Millisecond, attrs)
	})
}

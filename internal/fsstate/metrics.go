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

package fsstate

import (
	"context"
	"time"

	"github.com/chainfs/fstree/internal/logger"
	"github.com/chainfs/fstree/internal/metrics"
)

// WithMetrics attaches an OpsHandle that every subsequent operation reports
// its count, error count, and latency through. A nil handle (the default)
// disables metrics recording; the per-operation log lines are written
// either way.
func (e *Engine) WithMetrics(handle metrics.OpsHandle) *Engine {
	e.metricsHandle = handle
	return e
}

// instrument runs fn, logging and timing it and recording its outcome
// against opName when a metrics handle is attached. Together with
// instrumentValue it wraps every add, rename, delete and read operation
// (UpdateEpoch is not wrapped), so logging one DEBUG line per attempted
// operation (and a WARNING on abort) lives here rather than at each call
// site.
func (e *Engine) instrument(opName, path string, fn func() error) error {
	start := time.Now()
	err := fn()

	if err != nil {
		logger.Warnf("run=%s op=%s path=%q aborted: %v", logger.RunID(), opName, path, err)
	} else {
		logger.Debugf("run=%s op=%s path=%q ok", logger.RunID(), opName, path)
	}

	if e.metricsHandle == nil {
		return err
	}
	attrs := []metrics.Attr{{Key: "op", Value: opName}}
	ctx := context.Background()
	e.metricsHandle.OpsLatency(ctx, time.Since(start), attrs)
	e.metricsHandle.OpsCount(ctx, 1, attrs)
	if err != nil {
		e.metricsHandle.OpsErrorCount(ctx, 1, attrs)
	}
	return err
}

// instrumentValue is instrument's counterpart for operations that return a
// value alongside their error. Methods can't carry their own type
// parameters in Go, so this lives as a free function taking the Engine.
func instrumentValue[T any](e *Engine, opName, path string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()

	if err != nil {
		logger.Warnf("run=%s op=%s path=%q aborted: %v", logger.RunID(), opName, path, err)
	} else {
		logger.Debugf("run=%s op=%s path=%q id=%v ok", logger.RunID(), opName, path, v)
	}

	if e.metricsHandle == nil {
		return v, err
	}
	attrs := []metrics.Attr{{Key: "op", Value: opName}}
	ctx := context.Background()
	e.metricsHandle.OpsLatency(ctx, time.Since(start), attrs)
	e.metricsHandle.OpsCount(ctx, 1, attrs)
	if err != nil {
		e.metricsHandle.OpsErrorCount(ctx, 1, attrs)
	}
	return v, err
}

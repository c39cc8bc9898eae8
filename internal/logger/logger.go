// Copyright 2023 Google Inc. All Rights Reserved.
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

// Package logger provides the structured, leveled logger used across the
// state machine and its host process. It wraps log/slog with a custom
// severity scale (TRACE below DEBUG, OFF above ERROR) and two output
// shapes: a "text" shape close to slog's default, and a "json" shape that
// nests the timestamp the way off-chain indexers expect to scrape it.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/chainfs/fstree/cfg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// runID identifies this process's lifetime in the per-operation log lines
// fsstate writes, so a host running many short-lived fstreectl
// invocations against the same tree can correlate which invocation
// produced which log lines. It is not attached to metric samples.
var runID = uuid.NewString()

// RunID returns this process's run-scoped correlation id.
func RunID() string {
	return runID
}

// Custom severities, one notch below/above slog's own Debug/Error so TRACE
// and OFF fit on the same LevelVar.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
	LevelOff   = slog.Level(12)
)

const textTimeLayout = "2006/01/02 15:04:05.000000"

// loggerFactory owns everything needed to (re)build defaultLogger: where it
// writes, in what shape, and at what level.
type loggerFactory struct {
	file            *lumberjack.Logger
	sysWriter       io.Writer
	format          string
	level           string
	logRotateConfig cfg.LogRotateLoggingConfig
}

var defaultLoggerFactory = &loggerFactory{
	sysWriter: os.Stderr,
	format:    string(cfg.TextLogFormat),
	level:     string(cfg.InfoLogSeverity),
}

var programLevel = new(slog.LevelVar)

var defaultLogger = slog.New(defaultLoggerFactory.createJsonOrTextHandler(os.Stderr, programLevel, ""))

func init() {
	setLoggingLevel(defaultLoggerFactory.level, programLevel)
}

// prefixHandler prepends a fixed prefix to every record's message before
// delegating to an inner handler; it exists only so the "TestLogs: "-style
// prefixes used in tests (and an eventual per-component prefix) don't need
// their own slog.Handler implementation from scratch.
type prefixHandler struct {
	inner  slog.Handler
	prefix string
}

func (h *prefixHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *prefixHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.prefix != "" {
		r.Message = h.prefix + r.Message
	}
	return h.inner.Handle(ctx, r)
}

func (h *prefixHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prefixHandler{inner: h.inner.WithAttrs(attrs), prefix: h.prefix}
}

func (h *prefixHandler) WithGroup(name string) slog.Handler {
	return &prefixHandler{inner: h.inner.WithGroup(name), prefix: h.prefix}
}

func renameLevelAndMsg(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(severityName(lvl))
		}
	case slog.MessageKey:
		a.Key = "message"
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Key = "time"
			a.Value = slog.StringValue(t.Format(textTimeLayout))
		}
	}
	return a
}

func renameLevelAndMsgJSON(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(severityName(lvl))
		}
	case slog.MessageKey:
		a.Key = "message"
	case slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Key = "timestamp"
			a.Value = slog.GroupValue(
				slog.Int64("seconds", t.Unix()),
				slog.Int64("nanos", int64(t.Nanosecond())),
			)
		}
	}
	return a
}

func severityName(level slog.Level) string {
	switch {
	case level < LevelDebug:
		return "TRACE"
	case level < LevelInfo:
		return "DEBUG"
	case level < LevelWarn:
		return "INFO"
	case level < LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// createJsonOrTextHandler builds the slog.Handler used by the default
// logger, based on the factory's configured format.
func (f *loggerFactory) createJsonOrTextHandler(w io.Writer, levelVar *slog.LevelVar, prefix string) slog.Handler {
	var inner slog.Handler
	opts := &slog.HandlerOptions{Level: levelVar}
	if f.format == string(cfg.JSONLogFormat) {
		opts.ReplaceAttr = renameLevelAndMsgJSON
		inner = slog.NewJSONHandler(w, opts)
	} else {
		opts.ReplaceAttr = renameLevelAndMsg
		inner = slog.NewTextHandler(w, opts)
	}
	return &prefixHandler{inner: inner, prefix: prefix}
}

// setLoggingLevel maps a cfg.LogSeverity-style string onto the LevelVar
// that gates defaultLogger.
func setLoggingLevel(level string, programLevel *slog.LevelVar) {
	switch cfg.LogSeverity(level) {
	case cfg.TraceLogSeverity:
		programLevel.Set(LevelTrace)
	case cfg.DebugLogSeverity:
		programLevel.Set(LevelDebug)
	case cfg.InfoLogSeverity:
		programLevel.Set(LevelInfo)
	case cfg.WarningLogSeverity:
		programLevel.Set(LevelWarn)
	case cfg.ErrorLogSeverity:
		programLevel.Set(LevelError)
	default:
		programLevel.Set(LevelOff)
	}
}

// SetLogFormat switches the default logger between "text" and "json" shapes.
func SetLogFormat(format string) {
	defaultLoggerFactory.format = format
	rebuild()
}

// InitLogFile points the default logger at a rotated file on disk, using
// lumberjack for rotation the way the host process's event log sink does.
func InitLogFile(config cfg.LoggingConfig) error {
	defaultLoggerFactory.format = string(config.Format)
	defaultLoggerFactory.level = string(config.Severity)
	defaultLoggerFactory.logRotateConfig = config.LogRotate

	if config.FilePath == "" {
		defaultLoggerFactory.file = nil
		rebuild()
		return nil
	}

	defaultLoggerFactory.file = &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.LogRotate.MaxFileSizeMb,
		MaxBackups: config.LogRotate.BackupFileCount,
		Compress:   config.LogRotate.Compress,
	}
	rebuild()
	return nil
}

func rebuild() {
	var w io.Writer = defaultLoggerFactory.sysWriter
	if defaultLoggerFactory.file != nil {
		w = defaultLoggerFactory.file
	}
	setLoggingLevel(defaultLoggerFactory.level, programLevel)
	defaultLogger = slog.New(defaultLoggerFactory.createJsonOrTextHandler(w, programLevel, ""))
}

func Tracef(format string, v ...any) {
	defaultLogger.Log(context.Background(), LevelTrace, fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...any) {
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	defaultLogger.Info(fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...any) {
	defaultLogger.Warn(fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	defaultLogger.Error(fmt.Sprintf(format, v...))
}

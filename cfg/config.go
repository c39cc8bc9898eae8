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

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the complete, bindable configuration for a fstree host process:
// logging, the state machine's bit-exact limits, and the metrics surface.
type Config struct {
	AppName string `yaml:"app-name"`

	Logging LoggingConfig `yaml:"logging"`

	Limits LimitsConfig `yaml:"limits"`

	Metrics MetricsConfig `yaml:"metrics"`

	EventLog EventLogConfig `yaml:"event-log"`
}

// LoggingConfig controls internal/logger's output.
type LoggingConfig struct {
	Severity LogSeverity `yaml:"severity"`

	Format LogFormat `yaml:"format"`

	FilePath string `yaml:"file-path"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

// LogRotateLoggingConfig mirrors gopkg.in/natefinch/lumberjack.v2's knobs.
type LogRotateLoggingConfig struct {
	MaxFileSizeMb int `yaml:"max-file-size-mb"`

	BackupFileCount int `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`
}

// LimitsConfig carries the state machine's bit-exact limits (spec §6). They
// default to the spec's values and are not expected to change at runtime,
// but are exposed as config so a host embedding the engine in a constrained
// environment can tighten them further.
type LimitsConfig struct {
	MaxTags int `yaml:"max-tags"`

	MaxStringLen int `yaml:"max-string-len"`

	MaxPathLen int `yaml:"max-path-len"`
}

// MetricsConfig controls the Prometheus/OTel metrics HTTP endpoint started
// by the serve subcommand.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	ListenAddr string `yaml:"listen-addr"`
}

// EventLogConfig controls the rotated, wire-encoded event log every
// mutating command appends to (spec §9 "Event emission" — a pluggable
// sink off-chain indexers tail).
type EventLogConfig struct {
	Enabled bool `yaml:"enabled"`

	Path string `yaml:"path"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`
}

func BindFlags(flagSet *pflag.FlagSet) error {
	var err error

	flagSet.StringP("app-name", "", "fstree", "The application name of this host process.")
	if err = viper.BindPFlag("app-name", flagSet.Lookup("app-name")); err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", string(InfoLogSeverity), "Logging severity: TRACE, DEBUG, INFO, WARNING, ERROR, OFF.")
	if err = viper.BindPFlag("logging.severity", flagSet.Lookup("log-severity")); err != nil {
		return err
	}

	flagSet.StringP("log-format", "", string(TextLogFormat), "Logging format: text or json.")
	if err = viper.BindPFlag("logging.format", flagSet.Lookup("log-format")); err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "Path to a log file. Empty means stderr.")
	if err = viper.BindPFlag("logging.file-path", flagSet.Lookup("log-file")); err != nil {
		return err
	}

	flagSet.IntP("max-tags", "", DefaultMaxTags, "Maximum tags per file or directory.")
	if err = viper.BindPFlag("limits.max-tags", flagSet.Lookup("max-tags")); err != nil {
		return err
	}

	flagSet.IntP("max-string-len", "", DefaultMaxStringLen, "Maximum byte length of any string field.")
	if err = viper.BindPFlag("limits.max-string-len", flagSet.Lookup("max-string-len")); err != nil {
		return err
	}

	flagSet.IntP("max-path-len", "", DefaultMaxPathLen, "Maximum byte length of a path.")
	if err = viper.BindPFlag("limits.max-path-len", flagSet.Lookup("max-path-len")); err != nil {
		return err
	}

	flagSet.BoolP("metrics-enabled", "", false, "Serve Prometheus/OTel metrics.")
	if err = viper.BindPFlag("metrics.enabled", flagSet.Lookup("metrics-enabled")); err != nil {
		return err
	}

	flagSet.StringP("metrics-listen-addr", "", DefaultMetricsListenAddr, "Listen address for the metrics HTTP endpoint.")
	if err = viper.BindPFlag("metrics.listen-addr", flagSet.Lookup("metrics-listen-addr")); err != nil {
		return err
	}

	flagSet.BoolP("event-log-enabled", "", false, "Append a wire-encoded record of every mutation to the event log.")
	if err = viper.BindPFlag("event-log.enabled", flagSet.Lookup("event-log-enabled")); err != nil {
		return err
	}

	flagSet.StringP("event-log-path", "", DefaultEventLogPath, "Path to the rotated event log file.")
	if err = viper.BindPFlag("event-log.path", flagSet.Lookup("event-log-path")); err != nil {
		return err
	}

	return nil
}

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

// GetDefaultLoggingConfig returns the configuration used before a config
// file or flags have been parsed.
func GetDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Severity: InfoLogSeverity,
		Format:   TextLogFormat,
		LogRotate: LogRotateLoggingConfig{
			BackupFileCount: 10,
			Compress:        true,
			MaxFileSizeMb:   512,
		},
	}
}

// GetDefaultLimitsConfig returns the spec-mandated default limits.
func GetDefaultLimitsConfig() LimitsConfig {
	return LimitsConfig{
		MaxTags:      DefaultMaxTags,
		MaxStringLen: DefaultMaxStringLen,
		MaxPathLen:   DefaultMaxPathLen,
	}
}

// GetDefaultConfig returns a fully populated Config with spec defaults.
func GetDefaultConfig() Config {
	return Config{
		AppName: "fstree",
		Logging: GetDefaultLoggingConfig(),
		Limits:  GetDefaultLimitsConfig(),
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: DefaultMetricsListenAddr,
		},
		EventLog: EventLogConfig{
			Enabled: false,
			Path:    DefaultEventLogPath,
			LogRotate: LogRotateLoggingConfig{
				BackupFileCount: 10,
				Compress:        true,
				MaxFileSizeMb:   64,
			},
		},
	}
}

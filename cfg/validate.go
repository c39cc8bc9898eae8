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

import "fmt"

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidLimitsConfig(config *LimitsConfig) error {
	if config.MaxTags <= 0 {
		return fmt.Errorf("max-tags must be positive")
	}
	if config.MaxStringLen <= 0 {
		return fmt.Errorf("max-string-len must be positive")
	}
	if config.MaxPathLen < 6*config.MaxStringLen {
		return fmt.Errorf("max-path-len must be at least 6*max-string-len (%d)", 6*config.MaxStringLen)
	}
	return nil
}

// ValidateConfig performs the same kind of range checks gcsfuse-style
// config packages run before the value is trusted by the rest of the
// program.
func ValidateConfig(config *Config) error {
	if _, ok := severityRanking[config.Logging.Severity]; !ok {
		return fmt.Errorf("invalid logging.severity: %q", config.Logging.Severity)
	}
	if err := isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return err
	}
	if err := isValidLimitsConfig(&config.Limits); err != nil {
		return err
	}
	if config.EventLog.Enabled {
		if err := isValidLogRotateConfig(&config.EventLog.LogRotate); err != nil {
			return err
		}
		if config.EventLog.Path == "" {
			return fmt.Errorf("event-log.path must be set when event-log.enabled is true")
		}
	}
	return nil
}

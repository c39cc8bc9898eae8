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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listDirCmd = &cobra.Command{
	Use:   "list-dir <path>",
	Short: "List a directory's immediate children",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		entries, err := e.ListDir(args[0])
		if err != nil {
			return err
		}
		return printJSON(entries)
	},
}

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Print one entry's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		entry, err := e.Stat(args[0])
		if err != nil {
			return err
		}
		return printJSON(entry)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <path>",
	Short: "Print a directory and everything transitively reachable from it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		snap, err := e.GetDirAll(args[0])
		if err != nil {
			return err
		}
		return printJSON(snap)
	},
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(listDirCmd, statCmd, snapshotCmd)
}

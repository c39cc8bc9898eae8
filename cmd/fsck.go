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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainfs/fstree/internal/fsstate"
)

var fsckCmd = &cobra.Command{
	Use:   "fsck",
	Short: "Validate the persisted tree's structural invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		// LoadRoot already runs Validate; a successful load is itself the
		// pass/fail signal.
		_, err := fsstate.LoadRoot(stateFile)
		if err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fsckCmd)
}

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

	"github.com/chainfs/fstree/internal/authority"
	"github.com/chainfs/fstree/internal/fsstate"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a fresh identity and an empty tree bound to it",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := authority.Generate()
		if err != nil {
			return err
		}
		if err := id.WriteToFile(identityFile); err != nil {
			return err
		}

		root := fsstate.NewRoot(id.Public)
		if err := fsstate.SaveRoot(stateFile, root); err != nil {
			return err
		}

		fmt.Printf("wrote identity to %s and an empty tree to %s\n", identityFile, stateFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

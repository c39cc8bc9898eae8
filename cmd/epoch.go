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
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chainfs/fstree/internal/fsstate"
)

var epochShowCmd = &cobra.Command{
	Use:   "epoch-show",
	Short: "Print the tree's current epoch",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine()
		if err != nil {
			return err
		}
		fmt.Println(e.Epoch())
		return nil
	},
}

var epochSetCmd = &cobra.Command{
	Use:   "epoch-set <new-epoch>",
	Short: "Advance the tree's epoch, signed by the bound authority",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var newEpoch uint64
		if _, err := fmt.Sscanf(args[0], "%d", &newEpoch); err != nil {
			return fmt.Errorf("parsing new epoch %q: %w", args[0], err)
		}

		id, err := loadIdentity()
		if err != nil {
			return err
		}
		var msg [8]byte
		binary.BigEndian.PutUint64(msg[:], newEpoch)
		sig := id.Sign(msg[:])

		return withEngine(func(e *fsstate.Engine) error {
			return e.UpdateEpoch(newEpoch, sig)
		})
	},
}

func init() {
	rootCmd.AddCommand(epochShowCmd, epochSetCmd)
}

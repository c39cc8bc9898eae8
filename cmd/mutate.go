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

	"github.com/chainfs/fstree/clock"
	"github.com/chainfs/fstree/internal/fsstate"
)

// wallClock stamps every mutation's create_ts. Replaced with a
// clock.SimulatedClock in tests that need deterministic timestamps.
var wallClock clock.Clock = clock.RealClock{}

var (
	addTags      []string
	addSize      uint64
	addBlobId    string
	addEndEpoch  uint64
	addOverwrite bool
)

var addFileCmd = &cobra.Command{
	Use:   "add-file <path>",
	Short: "Insert or overwrite a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id fsstate.ObjectId
		err := withEngine(func(e *fsstate.Engine) error {
			var err error
			id, err = e.AddFile(args[0], addTags, addSize, addBlobId, addEndEpoch, addOverwrite, wallClock.Now().UnixMilli())
			return err
		})
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var addDirCmd = &cobra.Command{
	Use:   "add-dir <path>",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id fsstate.ObjectId
		err := withEngine(func(e *fsstate.Engine) error {
			var err error
			id, err = e.AddDir(args[0], addTags, wallClock.Now().UnixMilli())
			return err
		})
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var renameFileCmd = &cobra.Command{
	Use:   "rename-file <from> <to>",
	Short: "Rename a file within its directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(e *fsstate.Engine) error {
			return e.RenameFile(args[0], args[1])
		})
	},
}

var renameDirCmd = &cobra.Command{
	Use:   "rename-dir <from> <to>",
	Short: "Rename a directory within its parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(e *fsstate.Engine) error {
			return e.RenameDir(args[0], args[1])
		})
	},
}

var deleteFileCmd = &cobra.Command{
	Use:   "delete-file <path>",
	Short: "Remove a single file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(e *fsstate.Engine) error {
			return e.DeleteFile(args[0])
		})
	},
}

var deleteDirCmd = &cobra.Command{
	Use:   "delete-dir <path>",
	Short: "Remove a directory and everything reachable from it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(e *fsstate.Engine) error {
			return e.DeleteDir(args[0])
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{addFileCmd, addDirCmd} {
		c.Flags().StringSliceVar(&addTags, "tags", nil, "comma-separated tags")
	}
	addFileCmd.Flags().Uint64Var(&addSize, "size", 0, "file size in bytes")
	addFileCmd.Flags().StringVar(&addBlobId, "blob-id", "", "opaque pointer into the content-addressed blob store")
	addFileCmd.Flags().Uint64Var(&addEndEpoch, "end-epoch", 0, "epoch after which the file is considered expired")
	addFileCmd.Flags().BoolVar(&addOverwrite, "overwrite", false, "replace an existing file at this path")

	rootCmd.AddCommand(addFileCmd, addDirCmd, renameFileCmd, renameDirCmd, deleteFileCmd, deleteDirCmd)
}

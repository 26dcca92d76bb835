// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command emberdb is a small debug/inspection tool over an emberdb database
// directory. It reads the write-ahead log and reports per-file block counts
// without ever opening a transaction. It is not read-only: opening the
// directory runs the FileManager's startup sweep, which deletes entries whose
// names start with "temp" or "test", and dump-log writes an initial log block
// when the log file is empty or missing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "emberdb",
		Short: "Inspect an emberdb database directory",
	}
	root.AddCommand(newDumpLogCmd())
	root.AddCommand(newStatCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

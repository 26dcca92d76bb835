// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

func newDumpLogCmd() *cobra.Command {
	var blockSize int
	var maxOpenFiles int
	var logFilename string

	cmd := &cobra.Command{
		Use:   "dump-log <dir>",
		Short: "Print every record in the write-ahead log, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			fm, err := vfs.New(dir, blockSize, maxOpenFiles, nil)
			if err != nil {
				return err
			}
			defer fm.Close()

			lm, err := wal.New(fm, logFilename, nil)
			if err != nil {
				return err
			}

			it, err := lm.Iterator()
			if err != nil {
				return err
			}
			defer it.Close()

			n := 0
			for {
				record, ok, err := it.Next()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %q\n", n, record)
				n++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d record(s)\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&blockSize, "block-size", 4096, "database block size")
	cmd.Flags().IntVar(&maxOpenFiles, "max-open-files", 64, "max simultaneously open file handles")
	cmd.Flags().StringVar(&logFilename, "log-file", "emberdb.wal", "log filename within dir")
	return cmd
}

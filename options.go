// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package emberdb

import "time"

// Options configures Open. The zero value is not valid; use DefaultOptions
// or TestOptions as a starting point and override individual fields.
type Options struct {
	// DBDirectory is the absolute path of the directory all of this
	// database's files live under. Required.
	DBDirectory string

	// BlockSize is the fixed size, in bytes, of every block this database
	// reads or writes. Must be positive.
	BlockSize int

	// MaxOpenFiles bounds the number of simultaneously open kernel file
	// handles the FileManager's handle cache will hold. Must be positive.
	MaxOpenFiles int

	// BufferPoolSize is the number of in-memory buffer slots the BufferPool
	// manages. Must be positive.
	BufferPoolSize int

	// DeadlockWaitingDuration bounds how long Pool.Pin waits for a free
	// buffer before failing with ErrDeadlockTimeout.
	DeadlockWaitingDuration time.Duration

	// LogFilename names the write-ahead log file within DBDirectory.
	LogFilename string

	// Metrics, if non-nil, is populated with this DB's prometheus
	// collectors on Open. The caller owns registering them with a registry.
	Metrics *Metrics
}

// DefaultOptions returns production defaults: a 4KiB block size, 512 open
// file handles, a 100,000-slot buffer pool, and a 10s deadlock timeout.
func DefaultOptions() Options {
	return Options{
		BlockSize:               4096,
		MaxOpenFiles:            512,
		BufferPoolSize:          100_000,
		DeadlockWaitingDuration: 10 * time.Second,
		LogFilename:             "emberdb.wal",
	}
}

// TestOptions returns defaults sized for unit tests: small pools and a
// short deadlock timeout so that tests exercising contention run quickly.
func TestOptions() Options {
	o := DefaultOptions()
	o.BlockSize = 400
	o.MaxOpenFiles = 8
	o.BufferPoolSize = 1000
	o.DeadlockWaitingDuration = 200 * time.Millisecond
	return o
}

func (o Options) ensureDefaults() Options {
	if o.BlockSize == 0 {
		o.BlockSize = 4096
	}
	if o.MaxOpenFiles == 0 {
		o.MaxOpenFiles = 512
	}
	if o.BufferPoolSize == 0 {
		o.BufferPoolSize = 100_000
	}
	if o.DeadlockWaitingDuration == 0 {
		o.DeadlockWaitingDuration = 10 * time.Second
	}
	if o.LogFilename == "" {
		o.LogFilename = "emberdb.wal"
	}
	return o
}

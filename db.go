// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package emberdb wires together the block buffer pool, write-ahead log
// manager, and bounded file-handle cache into the storage-engine foundation
// of a database: the lowest layers that turn a set of files on disk into a
// durable, concurrently accessible pool of fixed-size blocks.
package emberdb

import (
	"github.com/cockroachdb/errors"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/buffer"
	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

// DB is the top-level handle wiring a FileManager, a LogManager, and a
// BufferPool over a single database directory, per the dependency edges
// FileManager ← LogManager ← Buffer ← BufferPool.
type DB struct {
	opts Options

	fm   *vfs.FileManager
	lm   *wal.Manager
	pool *buffer.Pool
}

// Open creates opts.DBDirectory if needed and wires a FileManager, a
// LogManager resuming from any existing log file, and a BufferPool sized
// per opts.
func Open(opts Options) (*DB, error) {
	opts = opts.ensureDefaults()
	if opts.DBDirectory == "" {
		return nil, errors.New("emberdb: Options.DBDirectory is required")
	}

	var vfsMetrics *vfs.Metrics
	var walMetrics *wal.Metrics
	var bufMetrics *buffer.Metrics
	if opts.Metrics != nil {
		vfsMetrics = opts.Metrics.vfs
		walMetrics = opts.Metrics.wal
		bufMetrics = opts.Metrics.buffer
	}

	fm, err := vfs.New(opts.DBDirectory, opts.BlockSize, opts.MaxOpenFiles, vfsMetrics)
	if err != nil {
		return nil, errors.Wrap(err, "emberdb: open file manager")
	}

	lm, err := wal.New(fm, opts.LogFilename, walMetrics)
	if err != nil {
		return nil, errors.Wrap(err, "emberdb: open log manager")
	}

	pool := buffer.NewPool(fm, lm, opts.BufferPoolSize, opts.BlockSize, opts.DeadlockWaitingDuration, bufMetrics)

	return &DB{opts: opts, fm: fm, lm: lm, pool: pool}, nil
}

// Pin returns the pinned buffer bound to block, per BufferPool.Pin.
func (db *DB) Pin(block base.BlockID) (*buffer.Buffer, error) {
	return db.pool.Pin(block)
}

// Unpin releases buf, per BufferPool.Unpin.
func (db *DB) Unpin(buf *buffer.Buffer) {
	db.pool.Unpin(buf)
}

// FlushAll flushes every buffer dirtied on behalf of tx.
func (db *DB) FlushAll(tx base.TxNum) error {
	return db.pool.FlushAll(tx)
}

// Append returns the BlockID just past the current end of filename, per
// FileManager.Append, without touching the buffer pool. The file grows only
// when that block is written.
func (db *DB) Append(filename string) (base.BlockID, error) {
	return db.fm.Append(filename)
}

// LogManager exposes the underlying write-ahead log manager, for callers
// that need direct append/flush/iterate access outside the buffer pool
// (e.g. a transaction manager layered above this package).
func (db *DB) LogManager() *wal.Manager {
	return db.lm
}

// FileManager exposes the underlying file manager.
func (db *DB) FileManager() *vfs.FileManager {
	return db.fm
}

// BlockSize returns the fixed block size this DB was opened with.
func (db *DB) BlockSize() int {
	return db.opts.BlockSize
}

// Close releases every file handle the DB's FileManager is holding. It does
// not flush the buffer pool; callers that need every dirty buffer durable
// before Close must call FlushAll for each outstanding transaction first.
func (db *DB) Close() error {
	return db.fm.Close()
}

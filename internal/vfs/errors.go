// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package vfs provides the block-granular file layer: a bounded,
// freshness-weighted cache of open file handles (HandleCache) and the
// block-aligned read/write/append surface built on top of it (FileManager).
package vfs

import "github.com/cockroachdb/errors"

// ErrIo marks every error this package returns that originated from the
// underlying filesystem, so callers can classify failures with
// errors.Is(err, vfs.ErrIo) without depending on *PathError internals.
var ErrIo = errors.New("vfs: io error")

// IoError wraps an underlying OS error with the operation that triggered it,
// and is always returned marked with ErrIo.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IoError) Unwrap() error {
	return e.Err
}

func wrapIo(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(&IoError{Op: op, Err: err}, ErrIo)
}

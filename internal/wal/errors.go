// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package wal implements an append-only log of opaque byte records, packed
// right-to-left within fixed-size blocks and streamed back newest-first.
package wal

import "github.com/cockroachdb/errors"

// ErrIo marks every error this package returns that originated from the
// underlying FileManager.
var ErrIo = errors.New("wal: io error")

func wrapIo(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, "wal: %s", op), ErrIo)
}

// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package buffer implements the pinning buffer pool: a fixed-size array of
// Buffers, each a Page bound to a BlockID, with pin/unpin, write-on-eviction,
// and deadlock-timeout backoff under contention.
package buffer

import "github.com/cockroachdb/errors"

// ErrDeadlockTimeout is returned by Pool.Pin when no buffer became
// available within the configured deadlock-waiting duration.
var ErrDeadlockTimeout = errors.New("buffer: deadlock timeout waiting for a free buffer")

// ErrIo marks errors raised by the underlying FileManager/LogManager during
// a buffer's read-on-assign or write-on-flush.
var ErrIo = errors.New("buffer: io error")

func wrapIo(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, "buffer: %s", op), ErrIo)
}

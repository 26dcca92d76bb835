// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package codec implements the fixed- and variable-length binary encodings
// shared by the block and log layers: fixed-width integers, varcount,
// varint, varchar, and generic pairs of the above.
//
// Every concrete codec implements Codec[T], a three-method capability set
// (Length, Encode, Decode) rather than relying on dynamic dispatch, so that
// composite codecs such as Varpair can be built generically over their two
// halves.
package codec

import "github.com/cockroachdb/errors"

// ErrShortBuffer is returned when the destination or source buffer is
// smaller than the number of bytes a value requires.
var ErrShortBuffer = errors.New("codec: short buffer")

// ErrInvalidUTF8 is returned by Varchar decoding when the encoded bytes are
// not valid UTF-8 and the caller has not opted into lossy decoding.
var ErrInvalidUTF8 = errors.New("codec: invalid utf8")

// ErrInvalidVarintLength is returned when a varcount/varint length prefix
// cannot be parsed (this should not occur for buffers this package wrote
// itself; it guards against corrupt or foreign input).
var ErrInvalidVarintLength = errors.New("codec: invalid varint length prefix")

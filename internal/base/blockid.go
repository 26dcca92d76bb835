// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the small value types shared across the block, log and
// buffer layers, so that none of those packages needs to import another's
// internals just to pass an identifier around.
package base

import "sync"

// filenameTable interns filenames so that two BlockIDs for the same file
// share a single backing string allocation and compare/hash by pointer
// equality of their interned string, not by content comparison.
var filenameTable sync.Map // map[string]*string

func intern(name string) *string {
	if v, ok := filenameTable.Load(name); ok {
		return v.(*string)
	}
	interned := new(string)
	*interned = name
	actual, _ := filenameTable.LoadOrStore(name, interned)
	return actual.(*string)
}

// BlockID identifies a fixed-size block of a logical file: a (filename,
// block number) pair. BlockID is a value type; equality is by filename and
// block number. Filenames are interned so that cloning a BlockID never
// allocates.
type BlockID struct {
	filename    *string
	blockNumber uint64
}

// NewBlockID returns the BlockID for the given filename and block number.
func NewBlockID(filename string, blockNumber uint64) BlockID {
	return BlockID{filename: intern(filename), blockNumber: blockNumber}
}

// Filename returns the logical file this block belongs to.
func (b BlockID) Filename() string {
	if b.filename == nil {
		return ""
	}
	return *b.filename
}

// BlockNumber returns the zero-based block offset within the file.
func (b BlockID) BlockNumber() uint64 {
	return b.blockNumber
}

// WithBlockNumber returns a copy of b addressing a different block of the
// same file, reusing the interned filename pointer.
func (b BlockID) WithBlockNumber(n uint64) BlockID {
	return BlockID{filename: b.filename, blockNumber: n}
}

// String implements fmt.Stringer for diagnostics and log lines.
func (b BlockID) String() string {
	return b.Filename() + "[" + itoa(b.blockNumber) + "]"
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package page implements Page, the fixed-size, thread-safe in-memory image
// of one block.
package page

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/emberdb/emberdb/internal/codec"
)

// ErrOutOfBounds is returned when a read or write offset falls outside the
// page's fixed-size buffer.
var ErrOutOfBounds = errors.New("page: offset out of bounds")

// Page is an owned, fixed-length byte buffer. All operations acquire Page's
// internal lock for their duration, so concurrent callers observe a
// sequentially consistent byte view; Page does not, however, serialize
// logically related sequences of calls (e.g. a read-modify-write needs its
// own external synchronization, which is exactly what Buffer provides).
type Page struct {
	mu  sync.RWMutex
	buf []byte
}

// New returns a zeroed Page of the given block size.
func New(blockSize int) *Page {
	return &Page{buf: make([]byte, blockSize)}
}

// Len returns the page's fixed block size.
func (p *Page) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.buf)
}

// Contents returns a copy of the entire buffer.
func (p *Page) Contents() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]byte, len(p.buf))
	copy(out, p.buf)
	return out
}

// SetContents replaces the entire buffer. src must be exactly Len() bytes.
func (p *Page) SetContents(src []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(src) != len(p.buf) {
		return errors.Wrapf(ErrOutOfBounds, "SetContents: got %d bytes, want %d", len(src), len(p.buf))
	}
	copy(p.buf, src)
	return nil
}

// GetBytes returns a copy of the length-prefixed byte slice stored at
// offset by a prior SetBytes.
func (p *Page) GetBytes(offset int) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if offset < 0 || offset > len(p.buf) {
		return nil, errors.Wrapf(ErrOutOfBounds, "GetBytes at %d", offset)
	}
	v, _, err := codec.VarcharBytesCodec.Decode(p.buf[offset:])
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetBytes stores a Varcount length prefix followed by v at offset.
func (p *Page) SetBytes(offset int, v []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeLocked(offset, codec.VarcharBytesCodec, v)
}

// writeLocked encodes v with c at offset; callers must already hold p.mu.
func (p *Page) writeLocked(offset int, c codec.Codec[[]byte], v []byte) error {
	n := c.Length(v)
	if offset < 0 || offset+n > len(p.buf) {
		return errors.Wrapf(ErrOutOfBounds, "write at %d, length %d, page size %d", offset, n, len(p.buf))
	}
	_, err := c.Encode(v, p.buf[offset:offset+n])
	return err
}

// Get decodes a value of type T at offset using c.
func Get[T any](p *Page, c codec.Codec[T], offset int) (T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var zero T
	if offset < 0 || offset > len(p.buf) {
		return zero, errors.Wrapf(ErrOutOfBounds, "get at %d", offset)
	}
	v, _, err := c.Decode(p.buf[offset:])
	if err != nil {
		return zero, err
	}
	return v, nil
}

// Set encodes v with c at offset.
func Set[T any](p *Page, c codec.Codec[T], offset int, v T) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := c.Length(v)
	if offset < 0 || offset+n > len(p.buf) {
		return errors.Wrapf(ErrOutOfBounds, "set at %d, length %d, page size %d", offset, n, len(p.buf))
	}
	_, err := c.Encode(v, p.buf[offset:offset+n])
	return err
}

// GetInt32 and SetInt32 are the fixed-width accessors the log layer uses for
// the in-block boundary field.
func (p *Page) GetInt32(offset int) (int32, error) {
	return Get(p, codec.Int32, offset)
}

func (p *Page) SetInt32(offset int, v int32) error {
	return Set(p, codec.Int32, offset, v)
}

// GetUint32 and SetUint32 back the log layer's record-length prefixes.
func (p *Page) GetUint32(offset int) (uint32, error) {
	return Get(p, codec.Uint32, offset)
}

func (p *Page) SetUint32(offset int, v uint32) error {
	return Set(p, codec.Uint32, offset, v)
}

// GetRaw and SetRaw read/write exactly length unprefixed bytes at offset.
// The log layer uses these to frame records itself with its own external
// 4-byte length field, rather than Page's Varcount-prefixed GetBytes/SetBytes.
func (p *Page) GetRaw(offset, length int) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if offset < 0 || length < 0 || offset+length > len(p.buf) {
		return nil, errors.Wrapf(ErrOutOfBounds, "GetRaw at %d, length %d", offset, length)
	}
	out := make([]byte, length)
	copy(out, p.buf[offset:offset+length])
	return out, nil
}

func (p *Page) SetRaw(offset int, v []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if offset < 0 || offset+len(v) > len(p.buf) {
		return errors.Wrapf(ErrOutOfBounds, "SetRaw at %d, length %d", offset, len(v))
	}
	copy(p.buf[offset:offset+len(v)], v)
	return nil
}

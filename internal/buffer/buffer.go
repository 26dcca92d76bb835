// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package buffer

import (
	"sync"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/invariants"
	"github.com/emberdb/emberdb/internal/page"
	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

// Buffer is a single in-memory slot: a Page optionally bound to a block,
// together with its pin count and dirty state. A Buffer is internally
// synchronized; callers may share a *Buffer across goroutines.
//
// Invariant: modifyingTx != nil implies block != nil.
type Buffer struct {
	fm *vfs.FileManager
	lm *wal.Manager

	mu          sync.Mutex
	page        *page.Page
	block       *base.BlockID
	pinCount    int
	modifyingTx *base.TxNum
	dirtyLSN    *base.LSN
}

// newBuffer returns an unbound buffer of blockSize bytes.
func newBuffer(fm *vfs.FileManager, lm *wal.Manager, blockSize int) *Buffer {
	return &Buffer{fm: fm, lm: lm, page: page.New(blockSize)}
}

// Block reports the block this buffer is currently bound to, or nil if
// unbound.
func (b *Buffer) Block() *base.BlockID {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.block == nil {
		return nil
	}
	block := *b.block
	return &block
}

// Page returns the buffer's underlying page. The page is safe for
// concurrent use on its own terms (internal rwlock); mutation intended to
// mark the buffer dirty must go through ModifyPage instead.
func (b *Buffer) Page() *page.Page {
	return b.page
}

// IsPinned reports whether the buffer is currently pinned by anyone.
func (b *Buffer) IsPinned() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pinCount > 0
}

// boundTo reports whether this buffer is bound to block.
func (b *Buffer) boundTo(block base.BlockID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.block != nil && *b.block == block
}

// AssignToBlock flushes any pending modification, then binds the buffer to
// block and loads its contents from disk, resetting the pin count to zero.
func (b *Buffer) AssignToBlock(block base.BlockID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.assignToBlockLocked(block)
}

func (b *Buffer) assignToBlockLocked(block base.BlockID) error {
	if err := b.flushLocked(); err != nil {
		return err
	}
	bound := block
	b.block = &bound
	if err := b.fm.Read(block, b.page); err != nil {
		return wrapIo("assign "+block.String(), err)
	}
	b.pinCount = 0
	return nil
}

// Flush persists the buffer's page and the log records covering it if the
// buffer is dirty. It is a no-op on a clean buffer.
func (b *Buffer) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

func (b *Buffer) flushLocked() error {
	if b.modifyingTx == nil {
		return nil
	}
	if b.dirtyLSN != nil {
		if err := b.lm.Flush(*b.dirtyLSN); err != nil {
			return wrapIo("flush log for "+b.block.String(), err)
		}
	}
	if err := b.fm.Write(*b.block, b.page); err != nil {
		return wrapIo("flush "+b.block.String(), err)
	}
	b.modifyingTx = nil
	b.dirtyLSN = nil
	return nil
}

// ModifyPage applies modifier to the buffer's page and marks the buffer
// dirty on behalf of tx, optionally recording the log sequence number that
// must be durable before the page itself may be written back.
func (b *Buffer) ModifyPage(tx base.TxNum, lsn *base.LSN, modifier func(p *page.Page) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := modifier(b.page); err != nil {
		return err
	}
	b.modifyingTx = &tx
	b.dirtyLSN = lsn
	return nil
}

// pin increments the pin count. Callers must already hold the pool's
// bookkeeping lock so that the pin-count transition and the pool's
// num_available adjustment happen as one atomic step.
func (b *Buffer) pin() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pinCount++
}

// unpin decrements the pin count and reports whether it dropped to zero.
// An underflow is a programmer error: it panics when built with the
// "invariants" tag, and otherwise saturates at zero.
func (b *Buffer) unpin() (reachedZero bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pinCount <= 0 {
		if invariants.Enabled {
			panic("buffer: unpin of a buffer with pin_count <= 0")
		}
		return false
	}
	b.pinCount--
	return b.pinCount == 0
}

func (b *Buffer) pinCountLocked() int {
	return b.pinCount
}

// modifyingTxIs reports whether b is currently dirty on behalf of tx.
func (b *Buffer) modifyingTxIs(tx base.TxNum) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.modifyingTx != nil && *b.modifyingTx == tx
}

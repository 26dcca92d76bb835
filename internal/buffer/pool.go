// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package buffer

import (
	"sync"
	"time"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

// Pool is a fixed-size array of Buffers with pinning, naive
// first-unpinned-buffer replacement, and deadlock-timeout backoff when the
// pool is fully pinned. Pool's own lock (mu, guarding numAvailable and the
// buffer-available condition) is acquired before any individual Buffer's
// lock for the duration of Pin/Unpin/FlushAll, so that the pin-count
// transition and the numAvailable adjustment happen as one atomic step —
// the resolution to the race described for concurrent Pin calls racing an
// Unpin of the same buffer.
type Pool struct {
	fm *vfs.FileManager
	lm *wal.Manager

	mu           sync.Mutex
	cond         *sync.Cond
	buffers      []*Buffer
	numAvailable int
	deadlockWait time.Duration

	metrics *Metrics
}

// NewPool constructs a Pool of poolSize buffers of blockSize bytes, backed
// by fm for block I/O and lm for log-ahead-of-data durability. A Pin call
// that cannot find or free a buffer within deadlockWait fails with
// ErrDeadlockTimeout.
func NewPool(fm *vfs.FileManager, lm *wal.Manager, poolSize, blockSize int, deadlockWait time.Duration, metrics *Metrics) *Pool {
	buffers := make([]*Buffer, poolSize)
	for i := range buffers {
		buffers[i] = newBuffer(fm, lm, blockSize)
	}
	p := &Pool{
		fm:           fm,
		lm:           lm,
		buffers:      buffers,
		numAvailable: poolSize,
		deadlockWait: deadlockWait,
		metrics:      metrics,
	}
	p.cond = sync.NewCond(&p.mu)
	p.recordAvailableLocked()
	return p
}

// Size returns the number of buffer slots in the pool.
func (p *Pool) Size() int {
	return len(p.buffers)
}

// NumAvailable returns the number of currently unpinned buffers.
func (p *Pool) NumAvailable() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numAvailable
}

// Pin returns the buffer bound to block, pinning it first. If no buffer is
// already bound to block, an unpinned buffer is reassigned (flushing it
// first if dirty). If every buffer is pinned, Pin waits on the
// buffer-available condition, retrying on wakeup, until deadlockWait
// elapses, at which point it fails with ErrDeadlockTimeout.
func (p *Pool) Pin(block base.BlockID) (*Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	deadline := time.Now().Add(p.deadlockWait)
	for {
		buf, found, err := p.tryPinLocked(block)
		if err != nil {
			return nil, err
		}
		if found {
			return buf, nil
		}
		if !time.Now().Before(deadline) {
			p.recordDeadlockLocked()
			return nil, ErrDeadlockTimeout
		}
		if !p.waitForAvailableLocked(deadline) {
			p.recordDeadlockLocked()
			return nil, ErrDeadlockTimeout
		}
	}
}

// tryPinLocked makes one pass over the pool. It returns (buf, true, nil) on
// success, (nil, false, nil) if every buffer is pinned and the caller
// should wait, or (nil, false, err) on an I/O failure during reassignment.
// Callers must hold p.mu.
func (p *Pool) tryPinLocked(block base.BlockID) (*Buffer, bool, error) {
	for _, buf := range p.buffers {
		if !buf.boundTo(block) {
			continue
		}
		wasUnpinned := !buf.IsPinned()
		buf.pin()
		if wasUnpinned {
			p.numAvailable--
			p.recordAvailableLocked()
		}
		p.recordPinLocked()
		return buf, true, nil
	}

	for _, buf := range p.buffers {
		if buf.IsPinned() {
			continue
		}
		wasBound := buf.Block() != nil
		if err := buf.AssignToBlock(block); err != nil {
			return nil, false, wrapIo("pin "+block.String(), err)
		}
		buf.pin()
		p.numAvailable--
		p.recordAvailableLocked()
		p.recordPinLocked()
		if wasBound {
			p.recordEvictionLocked()
		}
		return buf, true, nil
	}

	return nil, false, nil
}

// waitForAvailableLocked blocks on the buffer-available condition until
// woken or deadline passes. Callers must hold p.mu; it is released while
// waiting and re-acquired before returning, per sync.Cond semantics.
func (p *Pool) waitForAvailableLocked(deadline time.Time) bool {
	timer := time.AfterFunc(time.Until(deadline), func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer timer.Stop()
	p.cond.Wait()
	return time.Now().Before(deadline)
}

// Unpin decrements buf's pin count. If it reaches zero, the buffer becomes
// a replacement candidate and any goroutine waiting in Pin is woken.
func (p *Pool) Unpin(buf *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if buf.unpin() {
		p.numAvailable++
		p.recordAvailableLocked()
		p.cond.Broadcast()
	}
	p.recordUnpinLocked()
}

// FlushAll flushes every buffer currently dirty on behalf of tx.
func (p *Pool) FlushAll(tx base.TxNum) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, buf := range p.buffers {
		if !buf.modifyingTxIs(tx) {
			continue
		}
		if err := buf.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) recordPinLocked() {
	if p.metrics != nil {
		p.metrics.Pins.Inc()
	}
}

func (p *Pool) recordUnpinLocked() {
	if p.metrics != nil {
		p.metrics.Unpins.Inc()
	}
}

func (p *Pool) recordEvictionLocked() {
	if p.metrics != nil {
		p.metrics.Evictions.Inc()
	}
}

func (p *Pool) recordDeadlockLocked() {
	if p.metrics != nil {
		p.metrics.DeadlockTimeouts.Inc()
	}
}

func (p *Pool) recordAvailableLocked() {
	if p.metrics != nil {
		p.metrics.Available.Set(float64(p.numAvailable))
	}
}

package wal

import (
	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/page"
	"github.com/emberdb/emberdb/internal/vfs"
)

// RecordIterator walks the log newest-first from a fixed point-in-time
// snapshot of the head block. Records appended to the log after the
// iterator was constructed may or may not become visible to it; this
// package always chooses not to observe them, by copying the head page
// under the head lock at construction time.
type RecordIterator struct {
	fm        *vfs.FileManager
	filename  string
	blockSize int

	page        *page.Page
	blockNumber int64 // block held in page; stays 0 (with done set) once block 0 is consumed
	pos         int
	done        bool
}

// Iterator returns a RecordIterator positioned at the head block's current
// boundary, ready to walk all records newest-first.
func (m *Manager) Iterator() (*RecordIterator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := page.New(m.blockSize)
	if err := snapshot.SetContents(m.currentPage.Contents()); err != nil {
		return nil, err
	}

	return &RecordIterator{
		fm:          m.fm,
		filename:    m.filename,
		blockSize:   m.blockSize,
		page:        snapshot,
		blockNumber: int64(m.currentBlockNumber),
		pos:         int(m.boundary),
	}, nil
}

// Next returns the next record in newest-first order and true, or
// (nil, false, nil) once the log has been fully consumed.
func (it *RecordIterator) Next() ([]byte, bool, error) {
	if it.done {
		return nil, false, nil
	}

	if it.pos == it.blockSize {
		if it.blockNumber == 0 {
			it.done = true
			return nil, false, nil
		}
		it.blockNumber--
		block := base.NewBlockID(it.filename, uint64(it.blockNumber))
		if err := it.fm.Read(block, it.page); err != nil {
			return nil, false, wrapIo("read log block during iteration", err)
		}
		boundary, err := it.page.GetInt32(0)
		if err != nil {
			return nil, false, err
		}
		it.pos = int(boundary)
	}

	recordLen, err := it.page.GetUint32(it.pos)
	if err != nil {
		return nil, false, err
	}
	record, err := it.page.GetRaw(it.pos+lengthFieldSize, int(recordLen))
	if err != nil {
		return nil, false, err
	}
	it.pos += lengthFieldSize + int(recordLen)
	return record, true, nil
}

// Close releases resources held by the iterator. RecordIterator does not
// hold any OS resources of its own (its page is a private snapshot), so
// this is a no-op kept for symmetry with the rest of the pack's iterator
// APIs.
func (it *RecordIterator) Close() error {
	return nil
}

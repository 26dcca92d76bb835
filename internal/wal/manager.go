package wal

import (
	"sync"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/page"
	"github.com/emberdb/emberdb/internal/vfs"
)

// lengthFieldSize is the width of the raw, fixed-width record-length prefix
// each record carries on disk. This is independent of the codec package's
// Varcount, which is used for the in-memory block/page payload layer, not
// the log's wire format.
const lengthFieldSize = 4

// boundaryFieldSize is the width of the in-block boundary field stored at
// offset 0 of every log block.
const boundaryFieldSize = 4

// Position reports where an Append call landed: the LSN it was assigned
// (Latest) and the most recent LSN known to be durable (LastSaved) at the
// time of the call.
type Position struct {
	Latest    base.LSN
	LastSaved base.LSN
}

// Manager is the write-ahead log: an append-only sequence of opaque byte
// records, durable up to LastSaved, iterable newest-first. The head (current
// block, current page, latest/last-saved LSNs) is protected by a single
// mutex; Append is linearizable.
type Manager struct {
	mu sync.Mutex

	fm        *vfs.FileManager
	filename  string
	blockSize int
	metrics   *Metrics

	currentBlockNumber uint64
	currentPage        *page.Page
	boundary           int32
	latest             base.LSN
	lastSaved          base.LSN
}

// New opens (or initializes) the log file "filename" within fm's database
// directory. If the file is empty, a fresh block is appended; otherwise the
// last block is loaded and its boundary resumed as-is.
func New(fm *vfs.FileManager, filename string, metrics *Metrics) (*Manager, error) {
	blockSize := fm.BlockSize()
	m := &Manager{fm: fm, filename: filename, blockSize: blockSize, metrics: metrics}

	length, err := fm.BlockLength(filename)
	if err != nil {
		return nil, wrapIo("stat log file", err)
	}

	if length == 0 {
		block, err := m.appendNewBlockLocked()
		if err != nil {
			return nil, err
		}
		m.currentBlockNumber = block.BlockNumber()
		return m, nil
	}

	m.currentBlockNumber = length - 1
	m.currentPage = page.New(blockSize)
	block := base.NewBlockID(filename, m.currentBlockNumber)
	if err := fm.Read(block, m.currentPage); err != nil {
		return nil, wrapIo("read last log block", err)
	}
	boundary, err := m.currentPage.GetInt32(0)
	if err != nil {
		return nil, wrapIo("read boundary", err)
	}
	m.boundary = boundary
	return m, nil
}

// appendNewBlockLocked allocates a fresh block, sets its boundary to
// blockSize (marking it entirely free), writes it, and makes it the current
// head block. Callers must hold m.mu, or call this only from New before any
// other goroutine can observe m.
func (m *Manager) appendNewBlockLocked() (base.BlockID, error) {
	block, err := m.fm.Append(m.filename)
	if err != nil {
		return base.BlockID{}, wrapIo("allocate log block", err)
	}
	p := page.New(m.blockSize)
	if err := p.SetInt32(0, int32(m.blockSize)); err != nil {
		return base.BlockID{}, err
	}
	if err := m.fm.Write(block, p); err != nil {
		return base.BlockID{}, wrapIo("write new log block", err)
	}
	m.currentPage = p
	m.boundary = int32(m.blockSize)
	return block, nil
}

func (m *Manager) currentBlock() base.BlockID {
	return base.NewBlockID(m.filename, m.currentBlockNumber)
}

// Append writes record to the log, first rotating to a new block when the
// current boundary is below len(record)+12, that is, when writing the record
// and its 4-byte length prefix would leave fewer than 4 free bytes after the
// 4-byte boundary field. It returns the
// LSN assigned to record together with the most recently durable LSN.
func (m *Manager) Append(record []byte) (Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recordLen := len(record)
	need := recordLen + lengthFieldSize + boundaryFieldSize
	if int(m.boundary) < need+boundaryFieldSize {
		if err := m.flushLocked(); err != nil {
			return Position{}, err
		}
		block, err := m.appendNewBlockLocked()
		if err != nil {
			return Position{}, err
		}
		m.currentBlockNumber = block.BlockNumber()
	}

	recordPos := int(m.boundary) - (recordLen + lengthFieldSize)
	if err := m.currentPage.SetUint32(recordPos, uint32(recordLen)); err != nil {
		return Position{}, err
	}
	if err := m.currentPage.SetRaw(recordPos+lengthFieldSize, record); err != nil {
		return Position{}, err
	}
	m.boundary = int32(recordPos)
	if err := m.currentPage.SetInt32(0, m.boundary); err != nil {
		return Position{}, err
	}

	m.latest++
	m.recordAppend(recordLen)
	return Position{Latest: m.latest, LastSaved: m.lastSaved}, nil
}

// Flush writes the log head block and advances LastSaved to Latest whenever
// lsn >= LastSaved. Only an lsn strictly below LastSaved skips the write; an
// lsn equal to LastSaved, though already durable, is written again.
func (m *Manager) Flush(lsn base.LSN) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lsn >= m.lastSaved {
		return m.flushLocked()
	}
	return nil
}

func (m *Manager) flushLocked() error {
	if err := m.fm.Write(m.currentBlock(), m.currentPage); err != nil {
		return wrapIo("flush log head", err)
	}
	m.lastSaved = m.latest
	if m.metrics != nil {
		m.metrics.Flushes.Inc()
	}
	return nil
}

// Latest returns the most recently assigned LSN.
func (m *Manager) Latest() base.LSN {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// LastSaved returns the most recently durable LSN.
func (m *Manager) LastSaved() base.LSN {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSaved
}

func (m *Manager) recordAppend(recordLen int) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordsAppended.Inc()
	m.metrics.BytesAppended.Add(float64(recordLen))
}

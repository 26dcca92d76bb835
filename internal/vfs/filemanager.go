package vfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/page"
)

// FileManager provides block-granular read/write/append over files rooted
// at a single database directory, bounded by a HandleCache so the number of
// simultaneously open kernel handles never exceeds the configured capacity.
type FileManager struct {
	dbDirectory string
	blockSize   int
	handles     *HandleCache
	fileLocks   sync.Map // map[string]*sync.Mutex, one per logical filename
	metrics     *Metrics
}

// New creates dbDirectory if it does not exist, deletes any leftover
// temp/test files from a prior run, and returns a FileManager bounded to
// maxOpenFiles simultaneously open handles.
func New(dbDirectory string, blockSize, maxOpenFiles int, metrics *Metrics) (*FileManager, error) {
	if blockSize <= 0 {
		panic("vfs: blockSize must be positive")
	}
	if err := os.MkdirAll(dbDirectory, 0o755); err != nil {
		return nil, wrapIo("mkdir db directory", err)
	}
	fm := &FileManager{
		dbDirectory: dbDirectory,
		blockSize:   blockSize,
		handles:     NewHandleCache(maxOpenFiles, metrics),
		metrics:     metrics,
	}
	fm.removeLeftoverFiles()
	return fm, nil
}

// removeLeftoverFiles deletes any entry directly under dbDirectory whose
// basename starts with "temp" or "test". Failure to delete any one entry is
// not fatal and is only logged; a half-cleaned directory must not prevent
// startup.
//
// TODO: the "test" prefix is broad enough to delete a legitimately named
// user table called e.g. "testimonials.tbl"; spec Open Question #1 flags
// this as worth making configurable later.
func (fm *FileManager) removeLeftoverFiles() {
	entries, err := os.ReadDir(fm.dbDirectory)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "temp") || strings.HasPrefix(name, "test") {
			if err := os.Remove(filepath.Join(fm.dbDirectory, name)); err != nil {
				logWarnf("vfs: failed to remove leftover file %q: %v", name, err)
			}
		}
	}
}

func (fm *FileManager) lockFor(filename string) *sync.Mutex {
	mu, _ := fm.fileLocks.LoadOrStore(filename, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (fm *FileManager) open(filename string) (*os.File, error) {
	return fm.handles.GetOrCreate(filename, func() (*os.File, error) {
		path := filepath.Join(fm.dbDirectory, filename)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if err != nil {
			return nil, wrapIo("open "+filename, err)
		}
		return f, nil
	})
}

// BlockSize returns the fixed block size this FileManager was configured
// with.
func (fm *FileManager) BlockSize() int {
	return fm.blockSize
}

// Read loads the block into p, seeking to block_number*block_size and
// reading up to block_size bytes. A short underlying file (shorter than the
// block's end offset) is tolerated: the unread portion of p stays zero.
func (fm *FileManager) Read(block base.BlockID, p *page.Page) error {
	mu := fm.lockFor(block.Filename())
	mu.Lock()
	defer mu.Unlock()

	f, err := fm.open(block.Filename())
	if err != nil {
		return err
	}

	offset := int64(block.BlockNumber()) * int64(fm.blockSize)
	buf := make([]byte, fm.blockSize)
	n, err := f.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return wrapIo("read "+block.String(), err)
	}
	_ = n // a short read leaves buf[n:] zeroed, which is what we want

	if err := p.SetContents(buf); err != nil {
		return errors.Wrapf(err, "read %s into page", block.String())
	}
	fm.recordRead()
	return nil
}

// Write stores the entire contents of p at block's offset and flushes the
// write to stable storage before returning.
func (fm *FileManager) Write(block base.BlockID, p *page.Page) error {
	mu := fm.lockFor(block.Filename())
	mu.Lock()
	defer mu.Unlock()

	f, err := fm.open(block.Filename())
	if err != nil {
		return err
	}

	offset := int64(block.BlockNumber()) * int64(fm.blockSize)
	if _, err := f.WriteAt(p.Contents(), offset); err != nil {
		return wrapIo("write "+block.String(), err)
	}
	if err := flush(f); err != nil {
		return wrapIo("flush "+block.String(), err)
	}
	fm.recordWrite()
	return nil
}

// Append returns the BlockID just past the current end of filename, whose
// block number is floor(file_length / block_size). The file is not extended
// on disk until the first write to that block, so calling Append again
// before that write returns the same block number.
func (fm *FileManager) Append(filename string) (base.BlockID, error) {
	mu := fm.lockFor(filename)
	mu.Lock()
	defer mu.Unlock()

	newBlockNumber, err := fm.blockLengthLocked(filename)
	if err != nil {
		return base.BlockID{}, err
	}
	fm.recordAppend()
	return base.NewBlockID(filename, newBlockNumber), nil
}

// BlockLength returns floor(file_length / block_size) for filename.
func (fm *FileManager) BlockLength(filename string) (uint64, error) {
	mu := fm.lockFor(filename)
	mu.Lock()
	defer mu.Unlock()
	return fm.blockLengthLocked(filename)
}

func (fm *FileManager) blockLengthLocked(filename string) (uint64, error) {
	f, err := fm.open(filename)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, wrapIo("stat "+filename, err)
	}
	return uint64(info.Size()) / uint64(fm.blockSize), nil
}

// Close releases every handle the FileManager's cache is holding. It does
// not delete any files.
func (fm *FileManager) Close() error {
	return fm.handles.CloseAll()
}

// OpenHandles returns the number of kernel file handles currently open in
// this FileManager's handle cache.
func (fm *FileManager) OpenHandles() int {
	return fm.handles.LenOpen()
}

// HandleCapacity returns the maximum number of simultaneously open handles
// this FileManager's handle cache permits.
func (fm *FileManager) HandleCapacity() int {
	return fm.handles.Capacity()
}

// Directory returns the database directory this FileManager is rooted at.
func (fm *FileManager) Directory() string {
	return fm.dbDirectory
}

func (fm *FileManager) recordRead() {
	if fm.metrics != nil {
		fm.metrics.BlocksRead.Inc()
	}
}

func (fm *FileManager) recordWrite() {
	if fm.metrics != nil {
		fm.metrics.BlocksWritten.Inc()
	}
}

func (fm *FileManager) recordAppend() {
	if fm.metrics != nil {
		fm.metrics.BlocksAppended.Inc()
	}
}

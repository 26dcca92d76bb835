package wal_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

func newManager(t *testing.T, blockSize int) (*vfs.FileManager, *wal.Manager) {
	t.Helper()
	fm, err := vfs.New(t.TempDir(), blockSize, 8, nil)
	require.NoError(t, err)
	lm, err := wal.New(fm, "emberdb.wal", nil)
	require.NoError(t, err)
	return fm, lm
}

func TestLogManagerConcurrentAppendsProduceDistinctSequentialLSNs(t *testing.T) {
	_, lm := newManager(t, 400)

	const n = 50
	var wg sync.WaitGroup
	lsns := make([]base.LSN, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pos, err := lm.Append([]byte(fmt.Sprintf("record%d", i)))
			require.NoError(t, err)
			lsns[i] = pos.Latest
		}(i)
	}
	wg.Wait()

	seen := make(map[base.LSN]bool, n)
	for _, lsn := range lsns {
		require.False(t, seen[lsn], "duplicate LSN %d", lsn)
		seen[lsn] = true
	}
	for i := 1; i <= n; i++ {
		require.True(t, seen[base.LSN(i)], "missing LSN %d", i)
	}
	require.Equal(t, base.LSN(n), lm.Latest())
}

func TestLogManagerIteratesNewestFirstAfterFlush(t *testing.T) {
	_, lm := newManager(t, 400)

	var positions []wal.Position
	records := make([]string, 70)
	for i := 0; i < 70; i++ {
		records[i] = fmt.Sprintf("record%d:%d", i, i+100)
		pos, err := lm.Append([]byte(records[i]))
		require.NoError(t, err)
		positions = append(positions, pos)
	}

	require.NoError(t, lm.Flush(positions[len(positions)-1].Latest))

	it, err := lm.Iterator()
	require.NoError(t, err)

	var got []string
	for {
		rec, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, string(rec))
	}

	require.Len(t, got, 70)
	for i, rec := range got {
		require.Equal(t, records[69-i], rec)
	}
}

func TestLogManagerFlushIsConservative(t *testing.T) {
	_, lm := newManager(t, 400)

	pos1, err := lm.Append([]byte("r1"))
	require.NoError(t, err)
	require.NoError(t, lm.Flush(pos1.Latest))
	require.Equal(t, base.LSN(1), lm.LastSaved())

	pos2, err := lm.Append([]byte("r2"))
	require.NoError(t, err)
	require.Equal(t, base.LSN(1), lm.LastSaved())

	require.NoError(t, lm.Flush(pos2.Latest))
	require.Equal(t, base.LSN(2), lm.LastSaved())
}

func TestLogManagerResumesFromExistingFile(t *testing.T) {
	dir := t.TempDir()
	fm, err := vfs.New(dir, 400, 8, nil)
	require.NoError(t, err)
	lm, err := wal.New(fm, "emberdb.wal", nil)
	require.NoError(t, err)

	pos, err := lm.Append([]byte("persisted"))
	require.NoError(t, err)
	require.NoError(t, lm.Flush(pos.Latest))

	lm2, err := wal.New(fm, "emberdb.wal", nil)
	require.NoError(t, err)
	it, err := lm2.Iterator()
	require.NoError(t, err)
	rec, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "persisted", string(rec))
}

package vfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/page"
	"github.com/emberdb/emberdb/internal/vfs"
)

func TestFileManagerWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fm, err := vfs.New(dir, 4096, 8, nil)
	require.NoError(t, err)

	block := base.NewBlockID("testfile", 2)
	p := page.New(4096)
	require.NoError(t, p.SetInt32(0, 42))
	require.NoError(t, fm.Write(block, p))

	got := page.New(4096)
	require.NoError(t, fm.Read(block, got))

	v, err := got.GetInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)

	zero := make([]byte, 4096-4)
	require.Equal(t, zero, got.Contents()[4:])

	n, err := fm.BlockLength("testfile")
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)
}

func TestFileManagerAppendComputesNextBlock(t *testing.T) {
	dir := t.TempDir()
	fm, err := vfs.New(dir, 128, 8, nil)
	require.NoError(t, err)

	b0, err := fm.Append("log")
	require.NoError(t, err)
	require.Equal(t, uint64(0), b0.BlockNumber())

	require.NoError(t, fm.Write(b0, page.New(128)))

	b1, err := fm.Append("log")
	require.NoError(t, err)
	require.Equal(t, uint64(1), b1.BlockNumber())
}

func TestFileManagerStartupRemovesTempAndTestFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tempfoo"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testbar"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keepme"), []byte("x"), 0o644))

	_, err := vfs.New(dir, 64, 8, nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "tempfoo"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "testbar"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "keepme"))
	require.NoError(t, err)
}

func TestFileManagerPerFileOrdering(t *testing.T) {
	dir := t.TempDir()
	fm, err := vfs.New(dir, 64, 4, nil)
	require.NoError(t, err)

	block := base.NewBlockID("shared", 0)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p := page.New(64)
			require.NoError(t, p.SetInt32(0, int32(i)))
			require.NoError(t, fm.Write(block, p))
		}
		close(done)
	}()
	for i := 0; i < 100; i++ {
		p := page.New(64)
		require.NoError(t, fm.Read(block, p))
	}
	<-done
}

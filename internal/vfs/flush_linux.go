//go:build linux

package vfs

import (
	"os"

	"golang.org/x/sys/unix"
)

// flush durably persists f's previously written bytes. It prefers
// Fdatasync (skips flushing metadata that doesn't affect readability, such
// as atime) over the full file.Sync, the same trade-off pebble's own vfs
// layer makes for its default Linux syncer.
func flush(f *os.File) error {
	if err := unix.Fdatasync(int(f.Fd())); err != nil {
		return f.Sync()
	}
	return nil
}

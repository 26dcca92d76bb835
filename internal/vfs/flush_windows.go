//go:build windows

package vfs

import "os"

// flush durably persists f's previously written bytes. Windows has no
// Fdatasync equivalent exposed portably, so this falls back to a full sync.
func flush(f *os.File) error {
	return f.Sync()
}

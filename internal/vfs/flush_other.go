//go:build !windows && !linux

package vfs

import "os"

// flush durably persists f's previously written bytes. Platforms without a
// portable Fdatasync binding fall back to a full sync.
func flush(f *os.File) error {
	return f.Sync()
}

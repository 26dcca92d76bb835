package vfs_test

import (
	"fmt"
	"os"

	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/page"
	"github.com/emberdb/emberdb/internal/vfs"
)

// Example demonstrates the minimal write/read cycle through a FileManager:
// opening a database directory, writing an integer into a block, and
// reading it back into a fresh page.
func Example() {
	dir, err := os.MkdirTemp("", "emberdb-vfs-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	fm, err := vfs.New(dir, 400, 8, nil)
	if err != nil {
		panic(err)
	}

	block := base.NewBlockID("greetings", 0)
	p := page.New(400)
	if err := p.SetBytes(0, []byte("hello, block store")); err != nil {
		panic(err)
	}
	if err := fm.Write(block, p); err != nil {
		panic(err)
	}

	reread := page.New(400)
	if err := fm.Read(block, reread); err != nil {
		panic(err)
	}
	got, err := reread.GetBytes(0)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(got))
	// Output: hello, block store
}

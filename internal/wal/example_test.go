package wal_test

import (
	"fmt"
	"os"

	"github.com/emberdb/emberdb/internal/vfs"
	"github.com/emberdb/emberdb/internal/wal"
)

// Example demonstrates appending a handful of records and reading them back
// newest-first once they have been made durable.
func Example() {
	dir, err := os.MkdirTemp("", "emberdb-wal-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	fm, err := vfs.New(dir, 400, 8, nil)
	if err != nil {
		panic(err)
	}

	lm, err := wal.New(fm, "ledger.wal", nil)
	if err != nil {
		panic(err)
	}

	var last wal.Position
	for _, rec := range []string{"deposit:100", "withdraw:40", "deposit:5"} {
		last, err = lm.Append([]byte(rec))
		if err != nil {
			panic(err)
		}
	}
	if err := lm.Flush(last.Latest); err != nil {
		panic(err)
	}

	it, err := lm.Iterator()
	if err != nil {
		panic(err)
	}
	for {
		rec, ok, err := it.Next()
		if err != nil {
			panic(err)
		}
		if !ok {
			break
		}
		fmt.Println(string(rec))
	}
	// Output:
	// deposit:5
	// withdraw:40
	// deposit:100
}

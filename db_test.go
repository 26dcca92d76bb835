// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package emberdb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberdb/emberdb"
	"github.com/emberdb/emberdb/internal/base"
	"github.com/emberdb/emberdb/internal/codec"
	"github.com/emberdb/emberdb/internal/page"
)

func TestDBOpenRequiresDirectory(t *testing.T) {
	_, err := emberdb.Open(emberdb.Options{})
	require.Error(t, err)
}

func TestDBPinModifyFlushRoundTrips(t *testing.T) {
	opts := emberdb.TestOptions()
	opts.DBDirectory = t.TempDir()
	opts.Metrics = emberdb.NewMetrics()

	db, err := emberdb.Open(opts)
	require.NoError(t, err)
	defer db.Close()

	block, err := db.Append("accounts.tbl")
	require.NoError(t, err)

	buf, err := db.Pin(block)
	require.NoError(t, err)
	require.NoError(t, buf.ModifyPage(base.TxNum(1), nil, func(p *page.Page) error {
		return page.Set(p, codec.Uint32, 0, 12345)
	}))
	db.Unpin(buf)

	require.NoError(t, db.FlushAll(base.TxNum(1)))

	direct := page.New(db.BlockSize())
	require.NoError(t, db.FileManager().Read(block, direct))
	v, err := page.Get(direct, codec.Uint32, 0)
	require.NoError(t, err)
	require.Equal(t, uint32(12345), v)

	require.Contains(t, opts.Metrics.String(), "wal:")
}

func TestDBLogManagerSurvivesReopen(t *testing.T) {
	opts := emberdb.TestOptions()
	opts.DBDirectory = t.TempDir()

	db, err := emberdb.Open(opts)
	require.NoError(t, err)

	pos, err := db.LogManager().Append([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, db.LogManager().Flush(pos.Latest))
	require.NoError(t, db.Close())

	db2, err := emberdb.Open(opts)
	require.NoError(t, err)
	defer db2.Close()

	it, err := db2.LogManager().Iterator()
	require.NoError(t, err)
	rec, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello", string(rec))
}

package page_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberdb/emberdb/internal/codec"
	"github.com/emberdb/emberdb/internal/page"
)

func TestPageBytesRoundTrip(t *testing.T) {
	p := page.New(64)
	require.NoError(t, p.SetBytes(4, []byte("hello")))

	got, err := p.GetBytes(4)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestPageFixedWidthRoundTrip(t *testing.T) {
	p := page.New(16)
	require.NoError(t, p.SetInt32(0, 42))

	got, err := p.GetInt32(0)
	require.NoError(t, err)
	require.Equal(t, int32(42), got)

	require.NoError(t, page.Set(p, codec.Uint64, 8, uint64(123456789)))
	gotU, err := page.Get(p, codec.Uint64, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(123456789), gotU)
}

func TestPageOutOfBounds(t *testing.T) {
	p := page.New(8)
	err := p.SetInt32(6, 1)
	require.ErrorIs(t, err, page.ErrOutOfBounds)

	_, err = p.GetBytes(100)
	require.ErrorIs(t, err, page.ErrOutOfBounds)
}

func TestPageContentsRoundTrip(t *testing.T) {
	p := page.New(8)
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, p.SetContents(src))
	require.Equal(t, src, p.Contents())

	err := p.SetContents([]byte{1, 2, 3})
	require.ErrorIs(t, err, page.ErrOutOfBounds)
}

func TestPageConcurrentAccess(t *testing.T) {
	p := page.New(4096)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, p.SetInt32(0, int32(i)))
			_, err := p.GetInt32(0)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()
}

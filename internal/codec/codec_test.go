package codec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberdb/emberdb/internal/codec"
)

func TestVarcountLengthBoundaries(t *testing.T) {
	for k := 1; k <= 8; k++ {
		lower := uint64(1)<<uint(7*k) - 1
		upper := uint64(1) << uint(7*k)

		buf := make([]byte, 16)
		n, err := codec.VarcountCodec.Encode(lower, buf)
		require.NoError(t, err)
		require.Equal(t, k, n, "value %d should encode in %d bytes", lower, k)

		n, err = codec.VarcountCodec.Encode(upper, buf)
		require.NoError(t, err)
		require.Equal(t, k+1, n, "value %d should encode in %d bytes", upper, k+1)
	}
}

func TestVarcountRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16383, 16384, math.MaxUint32, math.MaxUint64}
	buf := make([]byte, 16)
	for _, v := range values {
		n, err := codec.VarcountCodec.Encode(v, buf)
		require.NoError(t, err)
		require.Equal(t, codec.VarcountCodec.Length(v), n)

		got, consumed, err := codec.VarcountCodec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, n, consumed)
		require.Equal(t, v, got)
	}
}

func TestVarcountShortBuffer(t *testing.T) {
	_, err := codec.VarcountCodec.Encode(math.MaxUint64, make([]byte, 3))
	require.ErrorIs(t, err, codec.ErrShortBuffer)

	_, _, err = codec.VarcountCodec.Decode(make([]byte, 0))
	require.ErrorIs(t, err, codec.ErrShortBuffer)
}

func TestVarintRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, 63, 64, -64, -65, math.MaxInt64, math.MinInt64, math.MaxInt32, math.MinInt32}
	buf := make([]byte, 16)
	for _, v := range values {
		n, err := codec.VarintCodec.Encode(v, buf)
		require.NoError(t, err)
		require.Equal(t, codec.VarintCodec.Length(v), n)

		got, consumed, err := codec.VarintCodec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, n, consumed)
		require.Equal(t, v, got, "round trip of %d", v)
	}
}

func TestVarintNegativeOne(t *testing.T) {
	buf := make([]byte, 16)
	n, err := codec.VarintCodec.Encode(-1, buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0x7F), buf[0])
}

func TestVarintBoundaries(t *testing.T) {
	for k := 1; k <= 8; k++ {
		limit := int64(1) << uint(7*k-1)

		buf := make([]byte, 16)
		n, err := codec.VarintCodec.Encode(limit-1, buf)
		require.NoError(t, err)
		require.Equal(t, k, n)

		n, err = codec.VarintCodec.Encode(-limit, buf)
		require.NoError(t, err)
		require.Equal(t, k, n)

		n, err = codec.VarintCodec.Encode(limit, buf)
		require.NoError(t, err)
		require.Equal(t, k+1, n)
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	buf := make([]byte, 16)

	n, err := codec.Uint64.Encode(math.MaxUint64, buf)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	got, consumed, err := codec.Uint64.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, 8, consumed)
	require.Equal(t, uint64(math.MaxUint64), got)

	n, err = codec.Int64.Encode(math.MinInt64, buf)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	gotI, _, err := codec.Int64.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), gotI)

	n, err = codec.Uint128C.Encode(codec.Uint128{Hi: 0xAABB, Lo: 0xCCDD}, buf)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	gotU128, _, err := codec.Uint128C.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, codec.Uint128{Hi: 0xAABB, Lo: 0xCCDD}, gotU128)
}

func TestVarcharRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	for _, s := range []string{"", "abc", "héllo wörld", "日本語"} {
		n, err := codec.VarcharCodec.Encode(s, buf)
		require.NoError(t, err)
		require.Equal(t, codec.VarcharCodec.Length(s), n)

		got, consumed, err := codec.VarcharCodec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, n, consumed)
		require.Equal(t, s, got)
	}
}

func TestVarcharInvalidUTF8(t *testing.T) {
	buf := make([]byte, 16)
	invalid := []byte{0xFF, 0xFE, 0xFD}
	n, err := codec.VarcountCodec.Encode(uint64(len(invalid)), buf)
	require.NoError(t, err)
	copy(buf[n:], invalid)

	_, _, err = codec.VarcharCodec.Decode(buf)
	require.ErrorIs(t, err, codec.ErrInvalidUTF8)

	s, _, err := codec.LossyVarcharCodec.Decode(buf)
	require.NoError(t, err)
	require.NotEmpty(t, s)
}

func TestVarpairRoundTrip(t *testing.T) {
	pairCodec := codec.NewVarpairCodec(codec.VarcharCodec, codec.VarintCodec)
	v := codec.Varpair[string, int64]{First: "abc", Second: -1}

	buf := make([]byte, 32)
	n, err := pairCodec.Encode(v, buf)
	require.NoError(t, err)
	require.Equal(t, pairCodec.Length(v), n)
	// "abc" -> [0x03 'a' 'b' 'c'], -1 -> [0x7F]
	require.Equal(t, []byte{0x03, 'a', 'b', 'c', 0x7F}, buf[:n])

	got, consumed, err := pairCodec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, n, consumed)
	require.Equal(t, v, got)
}

func FuzzVarcountRoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(127))
	f.Add(uint64(math.MaxUint64))
	f.Fuzz(func(t *testing.T, v uint64) {
		buf := make([]byte, 16)
		n, err := codec.VarcountCodec.Encode(v, buf)
		require.NoError(t, err)
		got, consumed, err := codec.VarcountCodec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, n, consumed)
		require.Equal(t, v, got)
	})
}

func FuzzVarintRoundTrip(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(-1))
	f.Add(int64(math.MinInt64))
	f.Fuzz(func(t *testing.T, v int64) {
		buf := make([]byte, 16)
		n, err := codec.VarintCodec.Encode(v, buf)
		require.NoError(t, err)
		got, consumed, err := codec.VarintCodec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, n, consumed)
		require.Equal(t, v, got)
	})
}

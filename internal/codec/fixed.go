package codec

import "encoding/binary"

// Uint128 is a 128-bit unsigned integer split into two 64-bit halves, used
// for the widest fixed-width count/integer encoding this package supports.
type Uint128 struct {
	Hi, Lo uint64
}

// Int128 is the signed counterpart of Uint128, stored as the two's
// complement 128-bit pattern split across Hi and Lo.
type Int128 struct {
	Hi, Lo uint64
}

type uint8Codec struct{}
type uint16Codec struct{}
type uint32Codec struct{}
type uint64Codec struct{}
type uint128Codec struct{}

type int8Codec struct{}
type int16Codec struct{}
type int32Codec struct{}
type int64Codec struct{}
type int128Codec struct{}

// Concrete codec instances for every fixed width the block and log layers
// rely on. All are little-endian per spec.
var (
	Uint8  Codec[uint8]  = uint8Codec{}
	Uint16 Codec[uint16] = uint16Codec{}
	Uint32 Codec[uint32] = uint32Codec{}
	Uint64 Codec[uint64] = uint64Codec{}
	Uint128C Codec[Uint128] = uint128Codec{}

	Int8  Codec[int8]  = int8Codec{}
	Int16 Codec[int16] = int16Codec{}
	Int32 Codec[int32] = int32Codec{}
	Int64 Codec[int64] = int64Codec{}
	Int128C Codec[Int128] = int128Codec{}
)

func (uint8Codec) Length(uint8) int { return 1 }

func (uint8Codec) Encode(v uint8, buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, ErrShortBuffer
	}
	buf[0] = v
	return 1, nil
}

func (uint8Codec) Decode(buf []byte) (uint8, int, error) {
	if len(buf) < 1 {
		return 0, 0, ErrShortBuffer
	}
	return buf[0], 1, nil
}

func (uint16Codec) Length(uint16) int { return 2 }

func (uint16Codec) Encode(v uint16, buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, ErrShortBuffer
	}
	binary.LittleEndian.PutUint16(buf, v)
	return 2, nil
}

func (uint16Codec) Decode(buf []byte) (uint16, int, error) {
	if len(buf) < 2 {
		return 0, 0, ErrShortBuffer
	}
	return binary.LittleEndian.Uint16(buf), 2, nil
}

func (uint32Codec) Length(uint32) int { return 4 }

func (uint32Codec) Encode(v uint32, buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, ErrShortBuffer
	}
	binary.LittleEndian.PutUint32(buf, v)
	return 4, nil
}

func (uint32Codec) Decode(buf []byte) (uint32, int, error) {
	if len(buf) < 4 {
		return 0, 0, ErrShortBuffer
	}
	return binary.LittleEndian.Uint32(buf), 4, nil
}

func (uint64Codec) Length(uint64) int { return 8 }

func (uint64Codec) Encode(v uint64, buf []byte) (int, error) {
	if len(buf) < 8 {
		return 0, ErrShortBuffer
	}
	binary.LittleEndian.PutUint64(buf, v)
	return 8, nil
}

func (uint64Codec) Decode(buf []byte) (uint64, int, error) {
	if len(buf) < 8 {
		return 0, 0, ErrShortBuffer
	}
	return binary.LittleEndian.Uint64(buf), 8, nil
}

func (uint128Codec) Length(Uint128) int { return 16 }

func (uint128Codec) Encode(v Uint128, buf []byte) (int, error) {
	if len(buf) < 16 {
		return 0, ErrShortBuffer
	}
	binary.LittleEndian.PutUint64(buf[0:8], v.Lo)
	binary.LittleEndian.PutUint64(buf[8:16], v.Hi)
	return 16, nil
}

func (uint128Codec) Decode(buf []byte) (Uint128, int, error) {
	if len(buf) < 16 {
		return Uint128{}, 0, ErrShortBuffer
	}
	return Uint128{
		Lo: binary.LittleEndian.Uint64(buf[0:8]),
		Hi: binary.LittleEndian.Uint64(buf[8:16]),
	}, 16, nil
}

func (int8Codec) Length(int8) int { return 1 }

func (int8Codec) Encode(v int8, buf []byte) (int, error) {
	return Uint8.Encode(uint8(v), buf)
}

func (int8Codec) Decode(buf []byte) (int8, int, error) {
	v, n, err := Uint8.Decode(buf)
	return int8(v), n, err
}

func (int16Codec) Length(int16) int { return 2 }

func (int16Codec) Encode(v int16, buf []byte) (int, error) {
	return Uint16.Encode(uint16(v), buf)
}

func (int16Codec) Decode(buf []byte) (int16, int, error) {
	v, n, err := Uint16.Decode(buf)
	return int16(v), n, err
}

func (int32Codec) Length(int32) int { return 4 }

func (int32Codec) Encode(v int32, buf []byte) (int, error) {
	return Uint32.Encode(uint32(v), buf)
}

func (int32Codec) Decode(buf []byte) (int32, int, error) {
	v, n, err := Uint32.Decode(buf)
	return int32(v), n, err
}

func (int64Codec) Length(int64) int { return 8 }

func (int64Codec) Encode(v int64, buf []byte) (int, error) {
	return Uint64.Encode(uint64(v), buf)
}

func (int64Codec) Decode(buf []byte) (int64, int, error) {
	v, n, err := Uint64.Decode(buf)
	return int64(v), n, err
}

func (int128Codec) Length(Int128) int { return 16 }

func (int128Codec) Encode(v Int128, buf []byte) (int, error) {
	return Uint128C.Encode(Uint128{Hi: v.Hi, Lo: v.Lo}, buf)
}

func (int128Codec) Decode(buf []byte) (Int128, int, error) {
	v, n, err := Uint128C.Decode(buf)
	return Int128{Hi: v.Hi, Lo: v.Lo}, n, err
}

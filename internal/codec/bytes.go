package codec

type bytesCodec struct{}

// VarcharBytesCodec encodes an arbitrary byte slice as a Varcount
// length prefix followed by the raw bytes, with no UTF-8 validation. It
// backs Page.GetBytes/SetBytes, which store opaque byte strings rather than
// text.
var VarcharBytesCodec Codec[[]byte] = bytesCodec{}

func (bytesCodec) Length(v []byte) int {
	return VarcountCodec.Length(uint64(len(v))) + len(v)
}

func (c bytesCodec) Encode(v []byte, buf []byte) (int, error) {
	n := c.Length(v)
	if len(buf) < n {
		return 0, ErrShortBuffer
	}
	prefixLen, err := VarcountCodec.Encode(uint64(len(v)), buf)
	if err != nil {
		return 0, err
	}
	copy(buf[prefixLen:n], v)
	return n, nil
}

func (bytesCodec) Decode(buf []byte) ([]byte, int, error) {
	byteLen, prefixLen, err := VarcountCodec.Decode(buf)
	if err != nil {
		return nil, 0, err
	}
	end := prefixLen + int(byteLen)
	if len(buf) < end {
		return nil, 0, ErrShortBuffer
	}
	out := make([]byte, byteLen)
	copy(out, buf[prefixLen:end])
	return out, end, nil
}

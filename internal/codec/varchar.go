package codec

import "unicode/utf8"

type varcharCodec struct {
	lossy bool
}

// VarcharCodec encodes a string as a Varcount byte-length prefix followed by
// its raw UTF-8 bytes. Decoding rejects invalid UTF-8 unless the caller
// explicitly builds a lossy variant with LossyVarcharCodec.
var VarcharCodec Codec[string] = varcharCodec{}

// LossyVarcharCodec decodes invalid UTF-8 by substituting the Unicode
// replacement character rather than returning ErrInvalidUTF8.
var LossyVarcharCodec Codec[string] = varcharCodec{lossy: true}

func (varcharCodec) Length(v string) int {
	return VarcountCodec.Length(uint64(len(v))) + len(v)
}

func (c varcharCodec) Encode(v string, buf []byte) (int, error) {
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

func (c varcharCodec) Decode(buf []byte) (string, int, error) {
	strLen, prefixLen, err := VarcountCodec.Decode(buf)
	if err != nil {
		return "", 0, err
	}
	end := prefixLen + int(strLen)
	if len(buf) < end {
		return "", 0, ErrShortBuffer
	}
	raw := buf[prefixLen:end]
	if c.lossy {
		return lossyUTF8(raw), end, nil
	}
	if !utf8.Valid(raw) {
		return "", 0, ErrInvalidUTF8
	}
	return string(raw), end, nil
}

func lossyUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	buf := make([]rune, 0, len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		buf = append(buf, r)
		i += size
	}
	return string(buf)
}

package codec

// Codec is the capability set every value type in this package implements:
// how many bytes a value needs, how to write it, and how to read it back.
// T is almost always a fixed Go type (uint64, int64, string, ...), but
// composite codecs such as Varpair are generic over two nested Codec values.
type Codec[T any] interface {
	// Length returns the number of bytes Encode will write for v.
	Length(v T) int
	// Encode writes v to buf[0:Length(v)] and returns the number of bytes
	// written. buf must have length >= Length(v) or ErrShortBuffer is
	// returned.
	Encode(v T, buf []byte) (int, error)
	// Decode reads a value from the front of buf and returns it along with
	// the number of bytes consumed.
	Decode(buf []byte) (T, int, error)
}

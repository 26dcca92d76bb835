package codec

// Varpair is the concatenation of two values, A then B, with no delimiter
// between them: the decoder must know the static codecs of both halves.
type Varpair[A, B any] struct {
	First  A
	Second B
}

type varpairCodec[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

// NewVarpairCodec builds a Codec for Varpair[A, B] out of the codecs for its
// two halves: Encode writes First at offset 0 and Second at offset
// a.Length(First); Decode mirrors this, reading First first so its encoded
// length is known before Second is decoded.
func NewVarpairCodec[A, B any](a Codec[A], b Codec[B]) Codec[Varpair[A, B]] {
	return varpairCodec[A, B]{a: a, b: b}
}

func (c varpairCodec[A, B]) Length(v Varpair[A, B]) int {
	return c.a.Length(v.First) + c.b.Length(v.Second)
}

func (c varpairCodec[A, B]) Encode(v Varpair[A, B], buf []byte) (int, error) {
	n := c.Length(v)
	if len(buf) < n {
		return 0, ErrShortBuffer
	}
	aLen, err := c.a.Encode(v.First, buf)
	if err != nil {
		return 0, err
	}
	bLen, err := c.b.Encode(v.Second, buf[aLen:])
	if err != nil {
		return 0, err
	}
	return aLen + bLen, nil
}

func (c varpairCodec[A, B]) Decode(buf []byte) (Varpair[A, B], int, error) {
	first, aLen, err := c.a.Decode(buf)
	if err != nil {
		return Varpair[A, B]{}, 0, err
	}
	second, bLen, err := c.b.Decode(buf[aLen:])
	if err != nil {
		return Varpair[A, B]{}, 0, err
	}
	return Varpair[A, B]{First: first, Second: second}, aLen + bLen, nil
}

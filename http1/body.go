package http1

import (
	"io"
	"iter"
)

// streamChunkSize is how much data a Stream body reads at once.
const streamChunkSize = 4096

// Body is what gets written as a message body. It reports its total length, if known in
// advance, and produces the data in chunks. An empty chunk is legal and is never encoded.
type Body interface {
	Len() (n int64, known bool)
	Chunks() iter.Seq2[[]byte, error]
}

// Bytes returns a body of known length, consisting of a single chunk.
func Bytes(b []byte) Body {
	return bytesBody(b)
}

type bytesBody []byte

func (b bytesBody) Len() (int64, bool) {
	return int64(len(b)), true
}

func (b bytesBody) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		yield(b, nil)
	}
}

// Chunked returns a body of unknown length, which yields the chunks in the passed order.
func Chunked(chunks ...[]byte) Body {
	return chunkedBody(chunks)
}

type chunkedBody [][]byte

func (c chunkedBody) Len() (int64, bool) {
	return 0, false
}

func (c chunkedBody) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for _, chunk := range c {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// Stream returns a body reading data from r. Negative size means the length is unknown.
// If r is an io.Closer, it is closed as soon as the iteration is over.
func Stream(r io.Reader, size int64) Body {
	return &streamBody{
		r:    r,
		size: size,
	}
}

type streamBody struct {
	r    io.Reader
	size int64
}

func (s *streamBody) Len() (int64, bool) {
	return s.size, s.size >= 0
}

func (s *streamBody) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if c, ok := s.r.(io.Closer); ok {
			defer c.Close()
		}

		buff := make([]byte, streamChunkSize)

		for {
			n, err := s.r.Read(buff)
			if n > 0 && !yield(buff[:n], nil) {
				return
			}

			switch err {
			case nil:
			case io.EOF:
				return
			default:
				yield(nil, err)
				return
			}
		}
	}
}

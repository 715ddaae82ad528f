package http1

import (
	"bytes"
	"io"
	"strconv"

	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/internal/hexconv"
	"github.com/indigo-web/h1wire/internal/strutil"
	"github.com/indigo-web/utils/uf"
)

// maxChunkLengthDigits limits the chunk length to what fits into uint64.
const maxChunkLengthDigits = 16

var chunkZeroTrailer = []byte("0\r\n\r\n")

// ReadChunk reads a single chunk of the chunk-encoded body. io.EOF is returned when the
// last chunk is reached, after the trailer section is consumed. Chunk extensions and
// trailer fields are discarded.
func (c *Connection) ReadChunk() ([]byte, error) {
	line, err := c.readRawLine()
	if err != nil {
		return nil, err
	}

	if ext := bytes.IndexByte(line, ';'); ext != -1 {
		line = line[:ext]
	}

	length, ok := hexconv.Parse(strutil.RStripWS(uf.B2S(line)), maxChunkLengthDigits)
	if !ok {
		return nil, c.fail(status.ErrBadChunk)
	}

	if length == 0 {
		return nil, c.skipTrailer()
	}

	if length > c.cfg.Body.MaxSize {
		return nil, c.fail(status.ErrBodyTooLarge)
	}

	chunk, err := c.readFull(int(length))
	if err != nil {
		return nil, err
	}

	tail, err := c.readFull(len(crlf))
	if err != nil {
		return nil, err
	}

	if string(tail) != crlf {
		return nil, c.fail(status.ErrBadChunk)
	}

	return chunk, nil
}

// ReadChunkedBody reads the whole chunk-encoded body, concatenating the chunks.
func (c *Connection) ReadChunkedBody() ([]byte, error) {
	body := []byte{}

	for {
		chunk, err := c.ReadChunk()
		switch err {
		case nil:
		case io.EOF:
			return body, nil
		default:
			return nil, err
		}

		if uint64(len(body)+len(chunk)) > c.cfg.Body.MaxSize {
			return nil, c.fail(status.ErrBodyTooLarge)
		}

		body = append(body, chunk...)
	}
}

// skipTrailer consumes the trailer section up to and including the empty line. It
// returns io.EOF if it went fine.
func (c *Connection) skipTrailer() error {
	for fields := 0; ; fields++ {
		if fields > c.cfg.Headers.Number.Maximal {
			return c.fail(status.ErrTooManyHeaders)
		}

		line, err := c.readRawLine()
		if err != nil {
			return err
		}

		if len(line) == 0 {
			return io.EOF
		}
	}
}

// WriteChunk encodes and flushes a single chunk. An empty chunk is omitted, as otherwise
// it'd be mistaken for the last one. nil writes the last chunk, ending the body.
func (c *Connection) WriteChunk(chunk []byte) error {
	if chunk == nil {
		return c.writeLastChunk()
	}

	if err := c.writeChunk(chunk); err != nil {
		return err
	}

	return c.flush()
}

// WriteChunkedBody writes the head-terminating headers and the body in chunked encoding.
func (c *Connection) WriteChunkedBody(body Body) error {
	c.appendChunkedHeader()
	c.crlf()
	if err := c.writeBuff(); err != nil {
		return err
	}

	if body != nil {
		for chunk, err := range body.Chunks() {
			if err != nil {
				return c.fail(err)
			}

			if err = c.writeChunk(chunk); err != nil {
				return err
			}
		}
	}

	return c.writeLastChunk()
}

func (c *Connection) writeChunk(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}

	c.buff = strconv.AppendUint(c.buff, uint64(len(chunk)), 16)
	c.crlf()
	if err := c.writeBuff(); err != nil {
		return err
	}

	if err := c.write(chunk); err != nil {
		return err
	}

	c.crlf()
	return c.writeBuff()
}

func (c *Connection) writeLastChunk() error {
	if err := c.write(chunkZeroTrailer); err != nil {
		return err
	}

	return c.flush()
}

func (c *Connection) appendChunkedHeader() {
	c.appendHeader("transfer-encoding", "chunked")
}

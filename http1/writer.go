package http1

import (
	"strconv"

	"github.com/indigo-web/h1wire/http/status"
)

// Framing is the way the end of a body is marked on the wire.
type Framing uint8

const (
	FramingEmpty Framing = iota
	FramingFixed
	FramingChunked
	FramingClose
)

// FramingOf decides how the body is going to be framed. An absent or known-empty body is
// empty, a body of known length is fixed. Otherwise, it's chunked if the peer supports
// it, and close-delimited if it doesn't.
func FramingOf(body Body, chunked bool) Framing {
	if body == nil {
		return FramingEmpty
	}

	switch n, known := body.Len(); {
	case known && n == 0:
		return FramingEmpty
	case known:
		return FramingFixed
	case chunked:
		return FramingChunked
	default:
		return FramingClose
	}
}

// WriteBody terminates the head with the length-defining headers the framing requires,
// and writes the body.
func (c *Connection) WriteBody(body Body, chunked bool) error {
	switch FramingOf(body, chunked) {
	case FramingEmpty:
		return c.WriteEmptyBody(body)
	case FramingFixed:
		n, _ := body.Len()
		return c.WriteFixedBody(body, n)
	case FramingChunked:
		return c.WriteChunkedBody(body)
	default:
		c.logger.Printf("http1: chunked encoding is not allowed, body is delimited by close")
		return c.WriteCloseBody(body)
	}
}

// WriteBodyHead terminates the head exactly as WriteBody would, but writes no body bytes.
// It serves responses to HEAD, and bodies the caller writes by itself: via WriteChunk for
// chunked framing, or via Write otherwise. The chosen framing is returned. Close-delimited
// body makes the connection non-persistent, and the caller must call CloseWrite when done.
func (c *Connection) WriteBodyHead(body Body, chunked bool) (Framing, error) {
	framing := FramingOf(body, chunked)

	switch framing {
	case FramingEmpty:
		c.appendContentLength(0)
	case FramingFixed:
		n, _ := body.Len()
		c.appendContentLength(n)
	case FramingChunked:
		c.appendChunkedHeader()
	case FramingClose:
		c.persistent = false
	}

	c.crlf()
	if err := c.writeBuff(); err != nil {
		return framing, err
	}

	return framing, c.flush()
}

// WriteEmptyBody declares zero length and terminates the head. If the body isn't nil, it's
// still drained.
func (c *Connection) WriteEmptyBody(body Body) error {
	c.appendContentLength(0)
	c.crlf()
	if err := c.writeBuff(); err != nil {
		return err
	}

	if body != nil {
		for _, err := range body.Chunks() {
			if err != nil {
				return c.fail(err)
			}
		}
	}

	return c.flush()
}

// WriteFixedBody declares the length and writes the body. It fails with
// status.ErrLengthMismatch as soon as a chunk would exceed the length, without writing it,
// or when the body ends before the length is reached.
func (c *Connection) WriteFixedBody(body Body, length int64) error {
	c.appendContentLength(length)
	c.crlf()
	if err := c.writeBuff(); err != nil {
		return err
	}

	var written int64

	if body != nil {
		for chunk, err := range body.Chunks() {
			if err != nil {
				return c.fail(err)
			}

			if written+int64(len(chunk)) > length {
				return c.fail(status.ErrLengthMismatch)
			}

			if err = c.write(chunk); err != nil {
				return err
			}

			written += int64(len(chunk))
		}
	}

	if written != length {
		return c.fail(status.ErrLengthMismatch)
	}

	return c.flush()
}

// WriteCloseBody writes a body which ends with the connection. No length is declared,
// the connection stops being persistent, and is half-closed after the body is written.
func (c *Connection) WriteCloseBody(body Body) error {
	c.persistent = false
	c.crlf()
	if err := c.writeBuff(); err != nil {
		return err
	}

	if body != nil {
		for chunk, err := range body.Chunks() {
			if err != nil {
				return c.fail(err)
			}

			if err = c.write(chunk); err != nil {
				return err
			}

			if err = c.flush(); err != nil {
				return err
			}
		}
	}

	return c.CloseWrite()
}

// Write writes raw body bytes. It's meant to be used after WriteBodyHead, and does no
// framing at all.
func (c *Connection) Write(p []byte) (int, error) {
	if err := c.write(p); err != nil {
		return 0, err
	}

	return len(p), nil
}

func (c *Connection) Flush() error {
	return c.flush()
}

// CloseWrite flushes and half-closes the stream, leaving it readable.
func (c *Connection) CloseWrite() error {
	c.persistent = false

	if err := c.stream.CloseWrite(); err != nil {
		return c.fail(err)
	}

	return nil
}

func (c *Connection) appendContentLength(n int64) {
	c.buff = append(c.buff, "content-length: "...)
	c.buff = strconv.AppendInt(c.buff, n, 10)
	c.crlf()
}

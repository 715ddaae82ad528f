package dummy

import (
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is an in-memory net.Conn. Every read returns (a part of) the next piece it was
// initialised with, so the way a message is fragmented on the wire can be scripted. All
// the written data is journaled.
type Conn struct {
	data        [][]byte
	pointer     int
	written     []byte
	writes      int
	closed      bool
	writeClosed bool
	readErr     error
}

func NewConn(data ...[]byte) *Conn {
	return &Conn{
		data: data,
	}
}

// NewStringConn is a sugar for NewConn.
func NewStringConn(data ...string) *Conn {
	pieces := make([][]byte, len(data))
	for i, piece := range data {
		pieces[i] = []byte(piece)
	}

	return NewConn(pieces...)
}

// WithReadError makes the connection fail with err instead of io.EOF when the data is over.
func (c *Conn) WithReadError(err error) *Conn {
	c.readErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	for c.pointer < len(c.data) && len(c.data[c.pointer]) == 0 {
		c.pointer++
	}

	if c.pointer >= len(c.data) {
		if c.readErr != nil {
			return 0, c.readErr
		}

		return 0, io.EOF
	}

	n = copy(b, c.data[c.pointer])
	if c.data[c.pointer] = c.data[c.pointer][n:]; len(c.data[c.pointer]) == 0 {
		c.pointer++
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.closed || c.writeClosed {
		return 0, net.ErrClosed
	}

	c.written = append(c.written, b...)
	c.writes++

	return len(b), nil
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	return string(c.written)
}

// Writes returns how many times Write was called, which for a buffered stream is the
// number of flushes reached the connection.
func (c *Conn) Writes() int {
	return c.writes
}

// Rest returns the data that was not read yet.
func (c *Conn) Rest() string {
	var rest []byte
	for _, piece := range c.data[min(c.pointer, len(c.data)):] {
		rest = append(rest, piece...)
	}

	return string(rest)
}

func (c *Conn) CloseWrite() error {
	c.writeClosed = true
	return nil
}

func (c *Conn) WriteClosed() bool {
	return c.writeClosed
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) Closed() bool {
	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return nil
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

package http1

import (
	"io"
	"log"

	"github.com/indigo-web/h1wire/config"
	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/transport"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

// Connection frames HTTP/1.1 messages over a single stream, in either role: a client
// writes requests and reads responses, a server does the opposite. A connection serves
// a sequence of exchanges as long as it stays persistent.
//
// Connection is not safe for concurrent use. Driving it from multiple goroutines at once
// results in interleaved bytes on the wire, so callers must serialize the access.
type Connection struct {
	stream     transport.Stream
	cfg        *config.Config
	logger     Logger
	persistent bool
	buff       []byte
}

func New(stream transport.Stream, cfg *config.Config) *Connection {
	return &Connection{
		stream:     stream,
		cfg:        cfg,
		logger:     log.Default(),
		persistent: true,
		buff:       make([]byte, 0, 128),
	}
}

func (c *Connection) SetLogger(logger Logger) {
	c.logger = logger
}

// Persistent reports whether the connection may still be used for further exchanges.
// Once false, it never becomes true again.
func (c *Connection) Persistent() bool {
	return c.persistent
}

// ForbidPersistence makes the connection non-persistent. Callers must do so after any
// failure they encounter outside the connection, e.g. when a handler panicked.
func (c *Connection) ForbidPersistence() {
	c.persistent = false
}

// Close closes the underlying stream.
func (c *Connection) Close() error {
	c.persistent = false
	return c.stream.Close()
}

// Hijack flushes everything pending and hands the stream over to the caller. No framing
// is done anymore: every further call on the connection fails with status.ErrHijacked.
// If the flush fails, the stream stays attached, so the connection can still be closed.
func (c *Connection) Hijack() (transport.Stream, error) {
	c.persistent = false

	if err := c.stream.Flush(); err != nil {
		return nil, err
	}

	stream := c.stream
	c.stream = hijacked{}

	c.logger.Printf("http1: connection hijacked")

	return stream, nil
}

// fail marks the connection as non-persistent, as after any failure there's no guarantee
// the stream is positioned at a message boundary.
func (c *Connection) fail(err error) error {
	c.persistent = false
	return err
}

func (c *Connection) readLine() (string, error) {
	line, err := c.readRawLine()
	return string(line), err
}

// readRawLine returns the line without copying it, so it's valid only until the next read.
func (c *Connection) readRawLine() ([]byte, error) {
	line, err := c.stream.ReadLine()
	switch err {
	case nil:
		return line, nil
	case io.EOF:
		return nil, c.fail(status.ErrConnectionClosed)
	default:
		return nil, c.fail(err)
	}
}

func (c *Connection) readFull(n int) ([]byte, error) {
	data, err := c.stream.ReadFull(n)
	switch err {
	case nil:
		return data, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return nil, c.fail(status.ErrUnexpectedEOF)
	default:
		return nil, c.fail(err)
	}
}

func (c *Connection) write(b []byte) error {
	if _, err := c.stream.Write(b); err != nil {
		return c.fail(err)
	}

	return nil
}

// writeBuff writes out the scratch buffer and resets it.
func (c *Connection) writeBuff() error {
	err := c.write(c.buff)
	c.buff = c.buff[:0]

	return err
}

func (c *Connection) flush() error {
	if err := c.stream.Flush(); err != nil {
		return c.fail(err)
	}

	return nil
}

// hijacked replaces the stream of a hijacked connection.
type hijacked struct{}

func (hijacked) ReadLine() ([]byte, error)    { return nil, status.ErrHijacked }
func (hijacked) ReadFull(int) ([]byte, error) { return nil, status.ErrHijacked }
func (hijacked) ReadAll() ([]byte, error)     { return nil, status.ErrHijacked }
func (hijacked) Write([]byte) (int, error)    { return 0, status.ErrHijacked }
func (hijacked) Flush() error                 { return status.ErrHijacked }
func (hijacked) Close() error                 { return status.ErrHijacked }
func (hijacked) CloseWrite() error            { return status.ErrHijacked }

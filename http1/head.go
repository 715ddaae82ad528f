package http1

import (
	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/internal/strutil"
	"github.com/indigo-web/h1wire/kv"
	"github.com/indigo-web/utils/strcomp"
)

const crlf = "\r\n"

// Request is a parsed request head.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers *kv.Storage
}

// Response is a parsed response head.
type Response struct {
	Version string
	Code    status.Code
	Reason  string
	Headers *kv.Storage
}

// WriteRequest writes the request line, the host header and the passed headers as they are,
// and flushes. The head isn't terminated: the blank line is up to the body writer, so each
// head writer call must be followed by exactly one of them.
func (c *Connection) WriteRequest(authority, method, path, version string, headers *kv.Storage) error {
	c.buff = append(c.buff, method...)
	c.buff = append(c.buff, ' ')
	c.buff = append(c.buff, path...)
	c.buff = append(c.buff, ' ')
	c.buff = append(c.buff, version...)
	c.crlf()
	c.appendHeader("host", authority)

	return c.writeHead(headers)
}

// WriteResponse writes the status line and the passed headers as they are, and flushes.
// The standard reason phrase is used if reason is empty. As with WriteRequest, the head
// must be completed by a body writer.
func (c *Connection) WriteResponse(version string, code status.Code, reason string, headers *kv.Storage) error {
	if len(reason) == 0 {
		reason = string(status.Text(code))
	}

	c.buff = append(c.buff, version...)
	c.buff = append(c.buff, ' ')
	c.buff = appendCode(c.buff, code)
	c.buff = append(c.buff, ' ')
	c.buff = append(c.buff, reason...)
	c.crlf()

	return c.writeHead(headers)
}

// WritePersistentHeader writes `connection: keep-alive` if the connection is persistent, and
// nothing otherwise.
func (c *Connection) WritePersistentHeader() error {
	if !c.persistent {
		return nil
	}

	c.appendHeader("connection", "keep-alive")
	return c.writeBuff()
}

// WantsPersistent reports whether the peer is fine with keeping the connection, i.e. none of
// the connection headers lists the close option.
func WantsPersistent(headers *kv.Storage) bool {
	for _, pair := range headers.Expose() {
		if strcomp.EqualFold(pair.Key, "connection") && strutil.HasToken(pair.Value, "close") {
			return false
		}
	}

	return true
}

func (c *Connection) writeHead(headers *kv.Storage) error {
	for _, pair := range headers.Expose() {
		c.appendHeader(pair.Key, pair.Value)
	}

	if err := c.writeBuff(); err != nil {
		return err
	}

	return c.flush()
}

func (c *Connection) appendHeader(key, value string) {
	c.buff = append(c.buff, key...)
	c.buff = append(c.buff, ": "...)
	c.buff = append(c.buff, value...)
	c.crlf()
}

func (c *Connection) crlf() {
	c.buff = append(c.buff, crlf...)
}

func appendCode(buff []byte, code status.Code) []byte {
	return append(buff, byte(code/100%10)+'0', byte(code/10%10)+'0', byte(code%10)+'0')
}

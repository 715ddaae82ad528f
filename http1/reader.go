package http1

import (
	"strconv"

	"github.com/indigo-web/h1wire/http/method"
	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/internal/strutil"
	"github.com/indigo-web/h1wire/kv"
	"github.com/indigo-web/utils/strcomp"
)

// Bodies are returned as plain byte slices. nil stands for an absent body, whereas a
// present but empty one is always a non-nil zero-length slice.

// ReadBody reads the body as declared by the length-defining headers. Transfer-Encoding
// takes precedence: the body is chunk-decoded if chunked is the final coding, otherwise it
// lasts until the connection is closed. If there's only Content-Length, exactly that many
// bytes are read. If neither is set, the body is absent and nothing is consumed. Having
// both of them at once is rejected with status.ErrConflictingLength before reading any
// body byte.
func (c *Connection) ReadBody(headers *kv.Storage) ([]byte, error) {
	if headers.Has("transfer-encoding") {
		if headers.Has("content-length") {
			return nil, c.fail(status.ErrConflictingLength)
		}

		if !isChunkedFinal(headers) {
			return c.ReadRemainder()
		}

		return c.ReadChunkedBody()
	}

	if !headers.Has("content-length") {
		return nil, nil
	}

	length, err := contentLength(headers.Values("content-length"))
	if err != nil {
		return nil, c.fail(err)
	}

	return c.ReadFixedBody(length)
}

// ReadRequestBody reads the request body. A request without length-defining headers has
// no body, it never lasts until the connection is closed. For the same reason, a
// Transfer-Encoding with anything except chunked as the final coding is rejected with
// status.ErrUnchunkedRequest.
func (c *Connection) ReadRequestBody(headers *kv.Storage) ([]byte, error) {
	if headers.Has("transfer-encoding") && !isChunkedFinal(headers) {
		if headers.Has("content-length") {
			return nil, c.fail(status.ErrConflictingLength)
		}

		return nil, c.fail(status.ErrUnchunkedRequest)
	}

	return c.ReadBody(headers)
}

// ReadResponseBody reads the body of the response to the request with method m. In order:
//   - responses to HEAD, 1xx, 204 and 304 never have a body, whatever the headers say;
//   - 200 to CONNECT is followed by the tunnel, so everything until close is returned;
//   - otherwise, ReadBody is done, and the body lasts until close if its length isn't declared.
func (c *Connection) ReadResponseBody(m method.Method, code status.Code, headers *kv.Storage) ([]byte, error) {
	switch {
	case m == method.HEAD, status.Informational(code), code == status.NoContent, code == status.NotModified:
		return nil, nil
	case m == method.CONNECT && code == status.OK:
		return c.ReadRemainder()
	}

	body, err := c.ReadBody(headers)
	if err != nil || body != nil {
		return body, err
	}

	c.logger.Printf("http1: response length is not declared, reading until close")
	return c.ReadRemainder()
}

// ReadFixedBody reads exactly n bytes, failing with status.ErrUnexpectedEOF if the
// connection is closed earlier.
func (c *Connection) ReadFixedBody(n uint64) ([]byte, error) {
	if n > c.cfg.Body.MaxSize {
		return nil, c.fail(status.ErrBodyTooLarge)
	}

	return c.readFull(int(n))
}

// ReadRemainder reads everything until the peer closes the connection, so the connection
// stops being persistent.
func (c *Connection) ReadRemainder() ([]byte, error) {
	c.persistent = false

	body, err := c.stream.ReadAll()
	if err != nil {
		return nil, c.fail(err)
	}

	return body, nil
}

// contentLength parses the values of Content-Length. Multiple values are allowed as long
// as they are all the same.
func contentLength(values []string) (uint64, error) {
	var length uint64

	for i, value := range values {
		n, err := strconv.ParseUint(strutil.StripWS(value), 10, 64)
		if err != nil || (i > 0 && n != length) {
			return 0, status.ErrBadContentLength
		}

		length = n
	}

	return length, nil
}

// isChunkedFinal reports whether chunked is the last applied transfer coding.
func isChunkedFinal(headers *kv.Storage) bool {
	te, _ := headers.Last("transfer-encoding")
	return strcomp.EqualFold(strutil.LastToken(te), "chunked")
}

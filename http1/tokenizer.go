package http1

import (
	"iter"
	"strings"

	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/internal/strutil"
	"github.com/indigo-web/h1wire/kv"
)

// Lines lazily reads lines of the stream until the empty one, which is consumed but not
// yielded. A failure is yielded once, with an empty line, and ends the sequence. The
// sequence consumes the stream, so it can be ranged over only once.
func (c *Connection) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			line, err := c.readLine()
			if err != nil {
				yield("", err)
				return
			}

			if len(line) == 0 || !yield(line, nil) {
				return
			}
		}
	}
}

// ReadLine reads exactly one line. status.ErrConnectionClosed is returned if the stream
// ends before the line is complete.
func (c *Connection) ReadLine() (string, error) {
	return c.readLine()
}

// ReadRequestLine reads and splits the request line.
func (c *Connection) ReadRequestLine() (method, target, version string, err error) {
	line, err := c.readLine()
	if err != nil {
		return "", "", "", err
	}

	method, target, version, ok := splitStartLine(line)
	if !ok {
		return "", "", "", c.fail(status.ErrMalformedHead)
	}

	return method, target, version, nil
}

// ReadStatusLine reads and splits the status line. The reason phrase may contain spaces
// and may be empty.
func (c *Connection) ReadStatusLine() (version string, code status.Code, reason string, err error) {
	line, err := c.readLine()
	if err != nil {
		return "", 0, "", err
	}

	version, rawCode, reason, ok := splitStartLine(line)
	if !ok {
		return "", 0, "", c.fail(status.ErrMalformedHead)
	}

	if code, ok = parseCode(rawCode); !ok {
		return "", 0, "", c.fail(status.ErrMalformedHead)
	}

	return version, code, reason, nil
}

// ReadHeaders reads header field lines up to and including the empty line. Field names
// are lower-cased, values are stripped of optional whitespaces, repeating fields are kept
// as they are.
//
// A line not matching `token ":" OWS value OWS` fails with status.ErrMalformedHeader,
// unless config.Headers.Strict is disabled. In that case the line is dropped and ends the
// header block, so whatever follows it will be treated as the body.
func (c *Connection) ReadHeaders() (*kv.Storage, error) {
	headers := kv.NewPrealloc(c.cfg.Headers.Number.Default)

	for line, err := range c.Lines() {
		if err != nil {
			return nil, err
		}

		key, value, ok := parseHeaderLine(line)
		if !ok {
			if c.cfg.Headers.Strict {
				return nil, c.fail(status.ErrMalformedHeader)
			}

			c.logger.Printf("http1: header block ended by a malformed line: %q", line)
			break
		}

		if headers.Len() >= c.cfg.Headers.Number.Maximal {
			return nil, c.fail(status.ErrTooManyHeaders)
		}

		headers.Add(strings.ToLower(key), value)
	}

	return headers, nil
}

// ReadRequest reads a complete request head. The connection stops being persistent if
// the peer declared `connection: close`.
func (c *Connection) ReadRequest() (*Request, error) {
	method, target, version, err := c.ReadRequestLine()
	if err != nil {
		return nil, err
	}

	headers, err := c.ReadHeaders()
	if err != nil {
		return nil, err
	}

	c.observePersistence(headers)

	return &Request{
		Method:  method,
		Target:  target,
		Version: version,
		Headers: headers,
	}, nil
}

// ReadResponse reads a complete response head. Like ReadRequest, it respects
// `connection: close`.
func (c *Connection) ReadResponse() (*Response, error) {
	version, code, reason, err := c.ReadStatusLine()
	if err != nil {
		return nil, err
	}

	headers, err := c.ReadHeaders()
	if err != nil {
		return nil, err
	}

	c.observePersistence(headers)

	return &Response{
		Version: version,
		Code:    code,
		Reason:  reason,
		Headers: headers,
	}, nil
}

// splitStartLine splits the line into at most three fields separated by whitespaces. The
// third one is kept as is, spaces included.
func splitStartLine(line string) (first, second, third string, ok bool) {
	first, rest, found := strutil.CutWS(strutil.LStripWS(line))
	if !found || len(first) == 0 {
		return "", "", "", false
	}

	second, third, found = strutil.CutWS(rest)
	if !found || len(second) == 0 {
		return "", "", "", false
	}

	return first, second, third, true
}

func parseCode(raw string) (code status.Code, ok bool) {
	if len(raw) != 3 {
		return 0, false
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}

		code = code*10 + status.Code(raw[i]-'0')
	}

	return code, true
}

func parseHeaderLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, ":")
	if !found || !strutil.IsToken(key) || !strutil.IsFieldValue(value) {
		return "", "", false
	}

	return key, strutil.StripWS(value), true
}

// observePersistence drops persistence if the peer asked to close the connection.
func (c *Connection) observePersistence(headers *kv.Storage) {
	if !WantsPersistent(headers) {
		c.persistent = false
	}
}

package transport

import (
	"bytes"
	"io"
	"net"
	"time"

	"github.com/indigo-web/h1wire/config"
	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/utils/buffer"
)

// Stream is a buffered duplex byte channel HTTP/1.1 framing is done on top of.
type Stream interface {
	// ReadLine returns a single line with the CRLF delimiter stripped. A lone LF doesn't
	// delimit a line and is returned as a part of it. io.EOF is returned if the stream
	// ends before the delimiter. The returned slice is valid until the next call.
	ReadLine() ([]byte, error)
	// ReadFull blocks until exactly n bytes are read. io.ErrUnexpectedEOF is returned
	// if the stream ends earlier.
	ReadFull(n int) ([]byte, error)
	// ReadAll reads everything until the peer closes the stream.
	ReadAll() ([]byte, error)
	// Write buffers the data. It may flush implicitly if the buffer overflows.
	Write([]byte) (int, error)
	Flush() error
	Close() error
	// CloseWrite flushes and half-closes the stream, leaving it readable.
	CloseWrite() error
}

type halfCloser interface {
	CloseWrite() error
}

type stream struct {
	conn         net.Conn
	readBuff     []byte
	pending      []byte
	line         *buffer.Buffer[byte]
	lineCR       bool
	writeBuff    []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewStream(conn net.Conn, cfg config.NET) Stream {
	return &stream{
		conn:         conn,
		readBuff:     make([]byte, cfg.ReadBufferSize),
		line:         buffer.NewBuffer[byte](min(cfg.ReadBufferSize, cfg.MaxLineLength), cfg.MaxLineLength+len("\r")),
		writeBuff:    make([]byte, 0, cfg.WriteBufferSize),
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

// read returns either data preserved via pushback or a fresh piece from the socket. Timeouts
// are also handled automatically.
func (s *stream) read() ([]byte, error) {
	if len(s.pending) > 0 {
		pending := s.pending
		s.pending = nil

		return pending, nil
	}

	for {
		if s.readTimeout > 0 {
			if err := s.conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
				return nil, err
			}
		}

		n, err := s.conn.Read(s.readBuff)
		if n > 0 {
			// in case err is non-nil, it'll be returned again by the next read
			return s.readBuff[:n], nil
		}

		if err != nil {
			return nil, err
		}
	}
}

// pushback preserves a chunk of data from the previous read for the next read.
func (s *stream) pushback(b []byte) {
	s.pending = b
}

func (s *stream) ReadLine() ([]byte, error) {
	s.line.Clear()
	s.lineCR = false

	for {
		data, err := s.read()
		if err != nil {
			return nil, err
		}

		for {
			lf := bytes.IndexByte(data, '\n')
			if lf == -1 {
				if len(data) == 0 {
					break
				}

				if !s.line.Append(data...) {
					return nil, status.ErrLineTooLong
				}

				s.lineCR = data[len(data)-1] == '\r'
				break
			}

			cr := s.lineCR
			if lf > 0 {
				cr = data[lf-1] == '\r'
			}

			if cr {
				if !s.line.Append(data[:lf]...) {
					return nil, status.ErrLineTooLong
				}

				s.pushback(data[lf+1:])
				line := s.line.Finish()

				return line[:len(line)-1], nil
			}

			// bare LF is no delimiter, so it is a part of the line
			if !s.line.Append(data[:lf+1]...) {
				return nil, status.ErrLineTooLong
			}

			s.lineCR = false
			data = data[lf+1:]
		}
	}
}

func (s *stream) ReadFull(n int) ([]byte, error) {
	body := make([]byte, 0, n)

	for len(body) < n {
		data, err := s.read()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return body, err
		}

		if need := n - len(body); len(data) > need {
			s.pushback(data[need:])
			data = data[:need]
		}

		body = append(body, data...)
	}

	return body, nil
}

func (s *stream) ReadAll() ([]byte, error) {
	rest := []byte{}

	for {
		data, err := s.read()
		switch err {
		case nil:
			rest = append(rest, data...)
		case io.EOF:
			return rest, nil
		default:
			return rest, err
		}
	}
}

func (s *stream) Write(b []byte) (int, error) {
	if len(s.writeBuff)+len(b) > cap(s.writeBuff) {
		if err := s.Flush(); err != nil {
			return 0, err
		}

		if len(b) >= cap(s.writeBuff) {
			// too big to be buffered anyway
			return s.write(b)
		}
	}

	s.writeBuff = append(s.writeBuff, b...)
	return len(b), nil
}

func (s *stream) Flush() error {
	if len(s.writeBuff) == 0 {
		return nil
	}

	_, err := s.write(s.writeBuff)
	s.writeBuff = s.writeBuff[:0]

	return err
}

func (s *stream) write(b []byte) (int, error) {
	if s.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return s.conn.Write(b)
}

func (s *stream) Close() error {
	return s.conn.Close()
}

// CloseWrite falls back to closing the whole connection if it doesn't support half-closing,
// as the peer must anyhow learn that no more data will be sent.
func (s *stream) CloseWrite() error {
	if err := s.Flush(); err != nil {
		return err
	}

	if hc, ok := s.conn.(halfCloser); ok {
		return hc.CloseWrite()
	}

	return s.conn.Close()
}

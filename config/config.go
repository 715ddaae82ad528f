package config

import (
	"io"
	"time"

	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

type (
	HeadersNumber struct {
		Default int `yaml:"default" json:"default"`
		Maximal int `yaml:"maximal" json:"maximal"`
	}
)

type (
	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket.
		ReadBufferSize int `yaml:"read_buffer_size" json:"read_buffer_size"`
		// MaxLineLength limits a single line of the head (start line, header field line,
		// chunk size line, trailer line), CRLF excluded.
		MaxLineLength int `yaml:"max_line_length" json:"max_line_length"`
		// ReadTimeout is armed before every read from the socket. If no data arrives in
		// this period, the read fails and the connection must be dropped.
		ReadTimeout time.Duration `yaml:"read_timeout" json:"read_timeout"`
		// WriteTimeout is armed before every flush.
		WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
		// WriteBufferSize is the amount of outgoing bytes accumulated before they are
		// implicitly flushed. Explicit flushes happen regardless.
		WriteBufferSize int `yaml:"write_buffer_size" json:"write_buffer_size"`
	}

	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of allocated headers storage.
		// Maximal value is maximum number of header fields (and trailer fields) allowed.
		Number HeadersNumber `yaml:"number" json:"number"`
		// Strict makes a malformed header field line fail the whole head with
		// status.ErrMalformedHeader. When disabled, the malformed line is dropped and
		// treated as the end of the header block.
		Strict bool `yaml:"strict" json:"strict"`
	}

	Body struct {
		// MaxSize describes the maximal size of a length-delimited or chunked body that
		// can be read into memory. Close-delimited bodies and tunnels are not limited.
		MaxSize uint64 `yaml:"max_size" json:"max_size"`
	}
)

// Config holds limits and buffer sizes used by the transport stream and the HTTP/1.1
// connection.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET     NET     `yaml:"net" json:"net"`
	Headers Headers `yaml:"headers" json:"headers"`
	Body    Body    `yaml:"body" json:"body"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize:  4 * 1024,
			MaxLineLength:   8 * 1024, // the common limit for request lines across servers
			ReadTimeout:     90 * time.Second,
			WriteTimeout:    90 * time.Second,
			WriteBufferSize: 4 * 1024,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 100,
			},
			Strict: true,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
	}
}

// LoadYAML overlays the YAML document read from r onto Default(). Missing keys keep their
// default values. Durations are accepted in time.ParseDuration form, e.g. "30s".
func LoadYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}

	return cfg, nil
}

// LoadJSON overlays the JSON document read from r onto Default(). Durations are integers
// of nanoseconds, as encoding/json treats them.
func LoadJSON(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := json.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}

	return cfg, nil
}

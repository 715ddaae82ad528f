package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestLoadYAML(t *testing.T) {
	t.Run("overlay", func(t *testing.T) {
		cfg, err := LoadYAML(strings.NewReader(`
net:
  read_timeout: 5s
  max_line_length: 1024
headers:
  strict: false
body:
  max_size: 100
`))
		require.NoError(t, err)
		require.Equal(t, 5*time.Second, cfg.NET.ReadTimeout)
		require.Equal(t, 1024, cfg.NET.MaxLineLength)
		require.False(t, cfg.Headers.Strict)
		require.Equal(t, uint64(100), cfg.Body.MaxSize)
		// untouched keys keep defaults
		require.Equal(t, Default().NET.ReadBufferSize, cfg.NET.ReadBufferSize)
		require.Equal(t, Default().Headers.Number, cfg.Headers.Number)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := LoadYAML(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("net: [1, 2"))
		require.Error(t, err)
	})
}

func TestLoadJSON(t *testing.T) {
	cfg, err := LoadJSON(strings.NewReader(`{"headers": {"number": {"maximal": 7}}, "net": {"write_buffer_size": 64}}`))
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Headers.Number.Maximal)
	require.Equal(t, Default().Headers.Number.Default, cfg.Headers.Number.Default)
	require.Equal(t, 64, cfg.NET.WriteBufferSize)
	require.True(t, cfg.Headers.Strict)

	_, err = LoadJSON(strings.NewReader(`{"net": `))
	require.Error(t, err)
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}

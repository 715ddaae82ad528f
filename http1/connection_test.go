package http1

import (
	"io"
	"log"
	"testing"

	"github.com/indigo-web/h1wire/config"
	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/transport"
	"github.com/indigo-web/h1wire/transport/dummy"
	"github.com/stretchr/testify/require"
)

func getConnection(data ...string) (*Connection, *dummy.Conn) {
	return getConnectionWithConfig(config.Default(), data...)
}

func getConnectionWithConfig(cfg *config.Config, data ...string) (*Connection, *dummy.Conn) {
	conn := dummy.NewStringConn(data...)
	c := New(transport.NewStream(conn, cfg.NET), cfg)
	c.SetLogger(log.New(io.Discard, "", 0))

	return c, conn
}

func TestConnection_Persistent(t *testing.T) {
	t.Run("fresh", func(t *testing.T) {
		c, _ := getConnection()
		require.True(t, c.Persistent())
	})

	t.Run("forbidden", func(t *testing.T) {
		c, _ := getConnection()
		c.ForbidPersistence()
		require.False(t, c.Persistent())
	})

	t.Run("dropped on failure", func(t *testing.T) {
		c, _ := getConnection("garbage\r\n")
		_, _, _, err := c.ReadRequestLine()
		require.ErrorIs(t, err, status.ErrMalformedHead)
		require.False(t, c.Persistent())
	})

	t.Run("never restored", func(t *testing.T) {
		c, _ := getConnection("GET / HTTP/1.1\r\n\r\n")
		c.ForbidPersistence()
		_, err := c.ReadRequest()
		require.NoError(t, err)
		require.False(t, c.Persistent())
	})
}

func TestConnection_Hijack(t *testing.T) {
	c, conn := getConnection("GET /ws HTTP/1.1\r\n\r\n", "raw bytes")
	_, err := c.ReadRequest()
	require.NoError(t, err)
	require.NoError(t, c.WritePersistentHeader())

	stream, err := c.Hijack()
	require.NoError(t, err)
	require.False(t, c.Persistent())
	require.Equal(t, "connection: keep-alive\r\n", conn.Written())

	data, err := stream.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "raw bytes", string(data))

	_, err = c.ReadLine()
	require.ErrorIs(t, err, status.ErrHijacked)
	require.ErrorIs(t, c.WriteChunk(nil), status.ErrHijacked)
	require.ErrorIs(t, c.Close(), status.ErrHijacked)
}

func TestConnection_HijackFlushFailure(t *testing.T) {
	c, conn := getConnection()
	require.NoError(t, c.WritePersistentHeader())
	require.NoError(t, conn.CloseWrite())

	stream, err := c.Hijack()
	require.Error(t, err)
	require.Nil(t, stream)
	require.False(t, c.Persistent())

	// the stream must stay attached, otherwise it could never be closed
	require.NoError(t, c.Close())
	require.True(t, conn.Closed())
}

func TestConnection_Close(t *testing.T) {
	c, conn := getConnection()
	require.NoError(t, c.Close())
	require.True(t, conn.Closed())
	require.False(t, c.Persistent())
}

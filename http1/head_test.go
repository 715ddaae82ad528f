package http1

import (
	"bufio"
	"strings"
	"testing"

	stdhttp "net/http"

	"github.com/indigo-web/h1wire/http/status"
	"github.com/indigo-web/h1wire/kv"
	"github.com/stretchr/testify/require"
)

func TestConnection_WriteRequest(t *testing.T) {
	c, conn := getConnection()
	headers := kv.New().Add("accept", "*/*").Add("x-multi", "1").Add("x-multi", "2")
	require.NoError(t, c.WriteRequest("example.com", "POST", "/upload", "HTTP/1.1", headers))
	require.Equal(t,
		"POST /upload HTTP/1.1\r\nhost: example.com\r\naccept: */*\r\nx-multi: 1\r\nx-multi: 2\r\n",
		conn.Written(),
	)

	require.NoError(t, c.WriteBody(Bytes([]byte("Hello, world!")), true))

	request, err := stdhttp.ReadRequest(bufio.NewReader(strings.NewReader(conn.Written())))
	require.NoError(t, err)
	require.Equal(t, "POST", request.Method)
	require.Equal(t, "/upload", request.URL.Path)
	require.Equal(t, "example.com", request.Host)
	require.Equal(t, []string{"1", "2"}, request.Header.Values("X-Multi"))
	require.EqualValues(t, 13, request.ContentLength)
}

func TestConnection_WriteResponse(t *testing.T) {
	t.Run("default reason", func(t *testing.T) {
		c, conn := getConnection()
		require.NoError(t, c.WriteResponse("HTTP/1.1", status.NotFound, "", nil))
		require.Equal(t, "HTTP/1.1 404 Not Found\r\n", conn.Written())
	})

	t.Run("custom reason", func(t *testing.T) {
		c, conn := getConnection()
		require.NoError(t, c.WriteResponse("HTTP/1.1", status.OK, "Fine", kv.New().Add("server", "h1wire")))
		require.Equal(t, "HTTP/1.1 200 Fine\r\nserver: h1wire\r\n", conn.Written())
	})

	t.Run("round trip", func(t *testing.T) {
		c, conn := getConnection()
		require.NoError(t, c.WriteResponse("HTTP/1.1", status.Accepted, "", kv.New().Add("x-id", "42")))
		require.NoError(t, c.WriteBody(nil, true))

		reader, _ := getConnection(conn.Written())
		response, err := reader.ReadResponse()
		require.NoError(t, err)
		require.Equal(t, status.Accepted, response.Code)
		require.Equal(t, "Accepted", response.Reason)
		require.Equal(t, "42", response.Headers.Value("x-id"))
		require.Equal(t, "0", response.Headers.Value("content-length"))
	})
}

func TestConnection_WritePersistentHeader(t *testing.T) {
	t.Run("persistent", func(t *testing.T) {
		c, conn := getConnection()
		require.NoError(t, c.WritePersistentHeader())
		require.NoError(t, c.Flush())
		require.Equal(t, "connection: keep-alive\r\n", conn.Written())
	})

	t.Run("not persistent", func(t *testing.T) {
		c, conn := getConnection()
		c.ForbidPersistence()
		require.NoError(t, c.WritePersistentHeader())
		require.NoError(t, c.Flush())
		require.Empty(t, conn.Written())
	})
}

func TestWantsPersistent(t *testing.T) {
	for _, tc := range []struct {
		Name    string
		Headers *kv.Storage
		Want    bool
	}{
		{"close", kv.New().Add("connection", "close"), false},
		{"absent", kv.New(), true},
		{"nil", nil, true},
		{"keep-alive", kv.New().Add("connection", "keep-alive"), true},
		{"case insensitive", kv.New().Add("Connection", "CLOSE"), false},
		{"among tokens", kv.New().Add("connection", "upgrade, close"), false},
		{"in a later header", kv.New().Add("connection", "upgrade").Add("connection", "close"), false},
		{"not a token", kv.New().Add("connection", "x-closed"), true},
		{"other header", kv.New().Add("x-connection", "close"), true},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			require.Equal(t, tc.Want, WantsPersistent(tc.Headers))
		})
	}
}

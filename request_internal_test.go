package wirehttp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestIncomplete(t *testing.T) {
	var buf Buffer
	buf.Append([]byte("GET / HTTP/1.1\r\nHost: example"))

	req, ok, err := parseRequest(&buf)
	require.NoError(t, err, "missing terminator is not an error")
	require.False(t, ok)
	require.Nil(t, req)
	assert.Equal(t, 29, buf.Len(), "nothing consumed while incomplete")
}

func TestParseRequestHeaderCap(t *testing.T) {
	t.Run("at the cap stays incomplete", func(t *testing.T) {
		var buf Buffer
		buf.Append([]byte(strings.Repeat("a", maxHeaderBytes)))

		_, ok, err := parseRequest(&buf)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("one past the cap fails with 413", func(t *testing.T) {
		var buf Buffer
		buf.Append([]byte(strings.Repeat("a", maxHeaderBytes+1)))

		_, _, err := parseRequest(&buf)
		require.Error(t, err)
		assert.Equal(t, CodeRequestEntityTooLarge, CodeOf(err))
	})
}

func TestParseRequestComplete(t *testing.T) {
	var buf Buffer
	buf.Append([]byte("POST /items HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 3\r\n" +
		"\r\n" +
		"abc"))

	req, ok, err := parseRequest(&buf)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/items", req.Target)
	assert.Equal(t, "HTTP/1.1", req.Version)
	require.Len(t, req.Headers, 2)
	assert.Equal(t, "Host: example.com", string(req.Headers[0]))
	assert.Equal(t, "Content-Length: 3", string(req.Headers[1]))

	assert.Equal(t, "abc", string(buf.View()), "body bytes stay in the buffer")
}

func TestParseRequestNoHeaders(t *testing.T) {
	var buf Buffer
	buf.Append([]byte("GET / HTTP/1.0\r\n\r\n"))

	req, ok, err := parseRequest(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, req.Headers)
	assert.Zero(t, buf.Len())
}

func TestParseRequestLineViolations(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"two tokens", "GET /x\r\n\r\n"},
		{"four tokens", "GET /x HTTP/1.1 extra\r\n\r\n"},
		{"double space", "GET  /x HTTP/1.1\r\n\r\n"},
		{"lowercase method", "get /x HTTP/1.1\r\n\r\n"},
		{"empty method", " /x HTTP/1.1\r\n\r\n"},
		{"method with digit", "GET2 /x HTTP/1.1\r\n\r\n"},
		{"relative target", "GET x HTTP/1.1\r\n\r\n"},
		{"bad version prefix", "GET /x HTP/1.1\r\n\r\n"},
		{"bad version digits", "GET /x HTTP/11\r\n\r\n"},
		{"version trailing junk", "GET /x HTTP/1.11\r\n\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf Buffer
			buf.Append([]byte(tt.line))

			_, _, err := parseRequest(&buf)
			require.Error(t, err)
			assert.Equal(t, CodeBadRequest, CodeOf(err))
		})
	}
}

func TestHeaderGet(t *testing.T) {
	headers := Header{
		[]byte("Host: example.com"),
		[]byte("no-colon-line"),
		[]byte("content-length:  42"),
		[]byte("X-Dup: first"),
		[]byte("X-Dup: second"),
	}

	t.Run("case insensitive name", func(t *testing.T) {
		v, ok := headers.Get("Content-Length")
		require.True(t, ok)
		assert.Equal(t, "  42", v, "value stays untrimmed")
	})

	t.Run("first match wins", func(t *testing.T) {
		v, ok := headers.Get("x-dup")
		require.True(t, ok)
		assert.Equal(t, " first", v)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := headers.Get("Transfer-Encoding")
		assert.False(t, ok)
	})

	t.Run("colonless lines are skipped", func(t *testing.T) {
		_, ok := headers.Get("no-colon-line")
		assert.False(t, ok)
	})
}

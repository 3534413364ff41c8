package wirehttp

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// BodyReader streams a message body as a sequence of pulled chunks. It is
// the backpressure boundary: no transport read happens until a consumer
// asks for the next chunk.
type BodyReader interface {
	// Len reports the declared total length of the body, or a negative
	// value when it is unknown.
	Len() int64

	// Next returns the next chunk of the body, or io.EOF after the final
	// byte. Returned chunks are owned by the caller. Next keeps returning
	// io.EOF once the body ended.
	Next() ([]byte, error)
}

type emptyBody struct{}

func (emptyBody) Len() int64            { return 0 }
func (emptyBody) Next() ([]byte, error) { return nil, io.EOF }

// NewBytesBody adapts an in-memory payload to [BodyReader], typically for
// building response bodies.
func NewBytesBody(p []byte) BodyReader {
	return &bytesBody{p: p}
}

type bytesBody struct {
	p    []byte
	done bool
}

func (b *bytesBody) Len() int64 { return int64(len(b.p)) }

func (b *bytesBody) Next() ([]byte, error) {
	if b.done || len(b.p) == 0 {
		return nil, io.EOF
	}

	b.done = true

	return b.p, nil
}

// boundedBody yields exactly the declared number of bytes out of the
// shared connection buffer, topping the buffer up with one transport read
// only when it runs dry. Chunk sizes vary: at most what is buffered, never
// more than what remains declared.
type boundedBody struct {
	total     int64
	remaining int64
	buf       *Buffer
	tr        Transport
}

func (b *boundedBody) Len() int64 { return b.total }

func (b *boundedBody) Next() ([]byte, error) {
	if b.remaining == 0 {
		return nil, io.EOF
	}

	if b.buf.Len() == 0 {
		chunk, err := b.tr.Read()
		if err != nil {
			return nil, errors.Wrap(err, "read body bytes")
		}

		if len(chunk) == 0 {
			return nil, Errorf(CodeBadRequest,
				"connection closed with %d body bytes outstanding", b.remaining)
		}

		b.buf.Append(chunk)
	}

	n := b.buf.Len()
	if int64(n) > b.remaining {
		n = int(b.remaining)
	}

	// copied before Consume: compaction may overwrite the consumed prefix
	chunk := append([]byte(nil), b.buf.View()[:n]...)
	b.buf.Consume(n)
	b.remaining -= int64(n)

	return chunk, nil
}

// newRequestBody derives the body streamer for a parsed request head from
// its framing headers. Exactly one streamer exists per request; the serve
// loop owns it until fully drained.
func newRequestBody(req *Request, buf *Buffer, tr Transport) (BodyReader, error) {
	length := int64(-1) // unknown until declared

	if raw, ok := req.Headers.Get("Content-Length"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || n < 0 {
			return nil, Errorf(CodeBadRequest, "invalid Content-Length %q", raw)
		}

		length = n
	}

	chunked := false
	if raw, ok := req.Headers.Get("Transfer-Encoding"); ok {
		chunked = strings.TrimSpace(raw) == "chunked"
	}

	if req.Method == "GET" || req.Method == "HEAD" {
		if length > 0 || chunked {
			return nil, Errorf(CodeBadRequest,
				"%s request must not carry a body", req.Method)
		}

		length = 0
	}

	switch {
	case length > 0:
		return &boundedBody{total: length, remaining: length, buf: buf, tr: tr}, nil
	case chunked:
		return nil, Errorf(CodeNotImplemented, "chunked transfer encoding is not supported")
	case length == 0:
		return emptyBody{}, nil
	default:
		return nil, Errorf(CodeNotImplemented, "bodies of unknown length are not supported")
	}
}

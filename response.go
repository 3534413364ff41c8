package wirehttp

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Response is the head of one response message plus its body producer.
// Handlers construct it; the serve loop encodes and writes it exactly
// once.
type Response struct {
	Status  int
	Headers []string
	Body    BodyReader
}

// NewResponse builds a response with an in-memory body.
func NewResponse(status int, body []byte) *Response {
	return &Response{Status: status, Body: NewBytesBody(body)}
}

// AddHeader appends a raw header line (without trailing CRLF).
func (r *Response) AddHeader(name, value string) {
	r.Headers = append(r.Headers, name+": "+value)
}

// encodeResponseHead serializes the status line and header block,
// appending a Content-Length computed from the body's declared length.
// The status line carries no reason phrase.
func encodeResponseHead(resp *Response, contentLength int64) []byte {
	var sb strings.Builder
	sb.WriteString("HTTP/1.1 ")
	sb.WriteString(strconv.Itoa(resp.Status))
	sb.WriteString(" \r\n")

	for _, line := range resp.Headers {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}

	sb.WriteString("Content-Length: ")
	sb.WriteString(strconv.FormatInt(contentLength, 10))
	sb.WriteString("\r\n\r\n")

	return []byte(sb.String())
}

// writeResponse encodes resp onto tr and streams its body to the end. A
// nil body writes as an empty one. Nothing is written until the head is
// known to be encodable, so a failed response can still be replaced by an
// error response.
func writeResponse(tr Transport, resp *Response) error {
	body := resp.Body
	if body == nil {
		body = emptyBody{}
	}

	length := body.Len()
	if length < 0 {
		return Errorf(CodeNotImplemented,
			"response bodies of unknown length are not supported")
	}

	// Content-Length is owned by the write phase
	for _, line := range resp.Headers {
		name, _, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			return Errorf(CodeInternalServerError,
				"response already carries a Content-Length header")
		}
	}

	if err := tr.Write(encodeResponseHead(resp, length)); err != nil {
		return err
	}

	for {
		chunk, err := body.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := tr.Write(chunk); err != nil {
			return err
		}
	}
}

package wirehttp

import "bytes"

// maxHeaderBytes caps how many bytes of an unterminated header block a
// connection may accumulate before it is rejected. Protects against a
// header block that never completes growing memory without bound.
const maxHeaderBytes = 8192

var (
	crlf             = []byte("\r\n")
	headerTerminator = []byte("\r\n\r\n")
)

// Header holds the raw, unparsed header lines of one message in their
// original order. Key/value decoding is deferred until lookup.
type Header [][]byte

// Get looks up the first line whose field name matches key
// case-insensitively. The field name is the trimmed part before the first
// colon; the returned value is the raw, untrimmed remainder after it.
// Lines lacking a colon are skipped, not rejected.
func (h Header) Get(key string) (string, bool) {
	for _, line := range h {
		i := bytes.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		name := bytes.TrimSpace(line[:i])
		if bytes.EqualFold(name, []byte(key)) {
			return string(line[i+1:]), true
		}
	}

	return "", false
}

// Request is the parsed head of one request message. It is created once by
// the framer and immutable afterwards.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers Header
}

// parseRequest scans buf's live window for a complete header block. When a
// CRLFCRLF terminator is present the block is parsed and consumed from the
// buffer. The boolean is false when more bytes are needed, which is not an
// error unless the accumulated block already exceeds maxHeaderBytes.
func parseRequest(buf *Buffer) (*Request, bool, error) {
	view := buf.View()

	i := bytes.Index(view, headerTerminator)
	if i < 0 {
		if buf.Len() > maxHeaderBytes {
			return nil, false, Errorf(CodeRequestEntityTooLarge,
				"header block exceeds %d bytes without terminator", maxHeaderBytes)
		}

		return nil, false, nil
	}

	block := view[:i+len(headerTerminator)]

	// the terminator contributes two trailing empty lines on a CRLF split
	lines := bytes.Split(block, crlf)
	if len(lines) < 3 || len(lines[len(lines)-1]) != 0 || len(lines[len(lines)-2]) != 0 {
		return nil, false, Errorf(CodeBadRequest, "malformed header block terminator")
	}

	req, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, false, err
	}

	rawLines := lines[1 : len(lines)-2]
	headers := make(Header, 0, len(rawLines))
	for _, line := range rawLines {
		// copied: the header outlives the buffer's live window
		headers = append(headers, append([]byte(nil), line...))
	}

	req.Headers = headers
	buf.Consume(i + len(headerTerminator))

	return req, true, nil
}

// parseRequestLine validates the three-token request line grammar:
// method SP target SP version.
func parseRequestLine(line []byte) (*Request, error) {
	parts := bytes.Split(line, []byte(" "))
	if len(parts) != 3 {
		return nil, Errorf(CodeBadRequest,
			"request line needs exactly three tokens, got %d", len(parts))
	}

	method, target, version := parts[0], parts[1], parts[2]
	if !isMethod(method) {
		return nil, Errorf(CodeBadRequest, "malformed method %q", method)
	}

	if len(target) == 0 || target[0] != '/' {
		return nil, Errorf(CodeBadRequest, "target %q does not start with '/'", target)
	}

	if !isVersion(version) {
		return nil, Errorf(CodeBadRequest, "malformed version %q", version)
	}

	return &Request{
		Method:  string(method),
		Target:  string(target),
		Version: string(version),
	}, nil
}

// isMethod reports whether p matches [A-Z]+.
func isMethod(p []byte) bool {
	if len(p) == 0 {
		return false
	}

	for _, c := range p {
		if c < 'A' || c > 'Z' {
			return false
		}
	}

	return true
}

// isVersion reports whether p matches HTTP/<digit>.<digit>.
func isVersion(p []byte) bool {
	return len(p) == 8 &&
		string(p[:5]) == "HTTP/" &&
		isDigit(p[5]) && p[6] == '.' && isDigit(p[7])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

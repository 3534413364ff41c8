package wirehttp

import "bytes"

// scriptTransport plays back a fixed sequence of read chunks and captures
// everything written. After the script runs out every read is a clean end
// of stream.
type scriptTransport struct {
	chunks [][]byte
	out    bytes.Buffer
	closed bool
}

func newScriptTransport(chunks ...string) *scriptTransport {
	t := &scriptTransport{}
	for _, c := range chunks {
		t.chunks = append(t.chunks, []byte(c))
	}

	return t
}

func (t *scriptTransport) Read() ([]byte, error) {
	if len(t.chunks) == 0 {
		return nil, nil
	}

	chunk := t.chunks[0]
	t.chunks = t.chunks[1:]

	return chunk, nil
}

func (t *scriptTransport) Write(p []byte) error {
	t.out.Write(p)

	return nil
}

func (t *scriptTransport) Close() error {
	t.closed = true

	return nil
}

var _ Transport = &scriptTransport{}

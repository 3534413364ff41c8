package wirehttp

import (
	"io"
	"net"

	"github.com/cockroachdb/errors"
)

// Transport is the byte channel one connection is served over. Read
// returns the next available chunk of bytes, with a nil or empty chunk
// signalling a clean end of stream. Write fully flushes p before
// returning. Both calls may block; blocking inside a Transport is the
// serve loop's only suspension point.
type Transport interface {
	Read() ([]byte, error)
	Write(p []byte) error
	Close() error
}

// defaultReadChunkSize is how many bytes a ConnTransport asks the
// connection for per read.
const defaultReadChunkSize = 4096

// ConnTransport adapts a net.Conn to the [Transport] contract. The serve
// loop's cooperative unit of work is the goroutine driving it, so the
// blocking reads and writes of the connection are the suspend points.
type ConnTransport struct {
	conn net.Conn
	rbuf []byte
}

// NewConnTransport wraps conn. A chunkSize of zero or less selects the
// default.
func NewConnTransport(conn net.Conn, chunkSize int) *ConnTransport {
	if chunkSize <= 0 {
		chunkSize = defaultReadChunkSize
	}

	return &ConnTransport{conn: conn, rbuf: make([]byte, chunkSize)}
}

// Read returns the next chunk from the connection. Chunks are copies, the
// internal read buffer is reused across calls.
func (t *ConnTransport) Read() ([]byte, error) {
	for {
		n, err := t.conn.Read(t.rbuf)
		if n > 0 {
			return append([]byte(nil), t.rbuf[:n]...), nil
		}

		switch {
		case err == nil:
			continue // zero-byte read without error, retry
		case errors.Is(err, io.EOF):
			return nil, nil
		default:
			return nil, errors.Wrap(err, "read from connection")
		}
	}
}

func (t *ConnTransport) Write(p []byte) error {
	if _, err := t.conn.Write(p); err != nil {
		return errors.Wrap(err, "write to connection")
	}

	return nil
}

func (t *ConnTransport) Close() error {
	return t.conn.Close()
}

// ChanTransport bridges an event-driven byte source to the pull contract:
// a producer (event loop, callback layer) delivers chunks on a channel and
// closes it at end of stream, while written bytes are handed to a sink
// callback.
type ChanTransport struct {
	in   <-chan []byte
	sink func(p []byte) error
}

// NewChanTransport inits a transport reading from in and writing through
// sink.
func NewChanTransport(in <-chan []byte, sink func(p []byte) error) *ChanTransport {
	return &ChanTransport{in: in, sink: sink}
}

// Read blocks until the producer delivers the next chunk. A closed channel
// reads as a clean end of stream.
func (t *ChanTransport) Read() ([]byte, error) {
	chunk, ok := <-t.in
	if !ok {
		return nil, nil
	}

	return chunk, nil
}

func (t *ChanTransport) Write(p []byte) error {
	return t.sink(p)
}

func (t *ChanTransport) Close() error {
	return nil
}

var (
	_ Transport = &ConnTransport{}
	_ Transport = &ChanTransport{}
)

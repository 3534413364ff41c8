package wirehttp

import (
	"context"
	"io"
	"log"

	"github.com/cockroachdb/errors"
)

// connState is the serve loop's position between transport suspensions.
type connState uint8

const (
	stateAwaitingMessage connState = iota
	stateHaveMessage
	stateDrainingBody
	stateClosing
)

// conn serves sequential request/response exchanges over one transport.
// All of its state is exclusively owned; independent connections never
// share any of it.
type conn struct {
	tr      Transport
	handler Handler
	logs    Logger
	buf     Buffer

	state connState
	req   *Request
	body  BodyReader
}

// ServeConn runs the serve loop for one accepted transport until the peer
// closes cleanly, keep-alive ends, or a protocol error occurs. Exactly one
// error per connection is converted into a best-effort plain-text response
// before the transport is closed; a single connection's failure is never
// fatal to the caller, so ServeConn returns nothing.
func ServeConn(ctx context.Context, tr Transport, handler Handler, logs Logger) {
	if handler == nil {
		handler = DefaultHandler
	}

	if logs == nil {
		logs = NewStdLogger(log.Default())
	}

	c := &conn{tr: tr, handler: handler, logs: logs}
	if err := c.serve(ctx); err != nil {
		c.logs.LogProtocolError(err)
		c.sendErrorResponse(err)
	}

	_ = tr.Close()
}

// serve drives the state machine. Errors from any state propagate out of
// here untouched; they are handled exactly once, at the ServeConn
// boundary.
func (c *conn) serve(ctx context.Context) error {
	for {
		switch c.state {
		case stateAwaitingMessage:
			req, ok, err := parseRequest(&c.buf)
			if err != nil {
				return err
			}

			if ok {
				c.req = req
				c.state = stateHaveMessage

				continue
			}

			chunk, err := c.tr.Read()
			if err != nil {
				return errors.Wrap(err, "read message bytes")
			}

			if len(chunk) == 0 {
				if c.buf.Len() > 0 {
					return Errorf(CodeBadRequest,
						"connection closed mid-message with %d unterminated bytes", c.buf.Len())
				}

				// clean end of stream between messages
				c.state = stateClosing

				continue
			}

			c.buf.Append(chunk)

		case stateHaveMessage:
			body, err := newRequestBody(c.req, &c.buf, c.tr)
			if err != nil {
				return err
			}

			c.body = body

			resp, err := c.handler.ServeHTTP1(ctx, c.req, body)
			if err != nil {
				return err
			}

			if err := writeResponse(c.tr, resp); err != nil {
				return err
			}

			c.state = stateDrainingBody

		case stateDrainingBody:
			// aligns the buffer/transport to the next message boundary even
			// if the handler never touched the body
			if err := drainBody(c.body); err != nil {
				return err
			}

			if c.req.Version == "HTTP/1.0" {
				c.state = stateClosing

				continue
			}

			c.req, c.body = nil, nil
			c.state = stateAwaitingMessage

		case stateClosing:
			return nil
		}
	}
}

// drainBody pulls body until end-of-body.
func drainBody(body BodyReader) error {
	for {
		_, err := body.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// sendErrorResponse converts err into a plain-text response carrying its
// status code. Best effort: a failure while sending is logged and
// swallowed, the connection closes regardless.
func (c *conn) sendErrorResponse(err error) {
	code := CodeOf(err)
	if code == CodeUnknown {
		code = CodeInternalServerError
	}

	resp := NewResponse(int(code), []byte(err.Error()+"\n"))
	resp.AddHeader("Content-Type", "text/plain; charset=utf-8")

	if werr := writeResponse(c.tr, resp); werr != nil {
		c.logs.LogErrorResponseFailure(werr)
	}
}

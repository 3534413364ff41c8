package wirehttp

import "context"

// Handler serves one request message. It receives the parsed head and the
// request's body streamer and returns the response to write. Consuming
// the body is optional; the serve loop drains any remainder before
// framing the next message. A returned error propagates to the serve
// loop's boundary where it is converted into an error response, with the
// status taken from [CodeOf] (unknown codes render as 500).
type Handler interface {
	ServeHTTP1(ctx context.Context, req *Request, body BodyReader) (*Response, error)
}

// HandlerFunc allows casting a function to an implementation of [Handler].
type HandlerFunc func(context.Context, *Request, BodyReader) (*Response, error)

// ServeHTTP1 implements the [Handler] interface.
func (f HandlerFunc) ServeHTTP1(ctx context.Context, req *Request, body BodyReader) (*Response, error) {
	return f(ctx, req, body)
}

// defaultBody is served for every target the placeholder dispatcher does
// not recognize.
var defaultBody = []byte("hello from wirehttp\n")

// DefaultHandler is the placeholder dispatcher: target /echo mirrors the
// request body back as the response body, every other target returns a
// fixed body with status 200.
var DefaultHandler Handler = HandlerFunc(func(_ context.Context, req *Request, body BodyReader) (*Response, error) {
	if req.Target == "/echo" {
		resp := &Response{Status: 200, Body: body}
		resp.AddHeader("Content-Type", "application/octet-stream")

		return resp, nil
	}

	resp := NewResponse(200, defaultBody)
	resp.AddHeader("Content-Type", "text/plain; charset=utf-8")

	return resp, nil
})

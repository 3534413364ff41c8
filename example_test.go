package wirehttp_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/wirehttp/wirehttp"
)

func Example() {
	// an event-driven source delivered one full request; real transports
	// hand over arbitrary-sized chunks
	in := make(chan []byte, 1)
	in <- []byte("GET /hello HTTP/1.0\r\n\r\n")
	close(in)

	var out bytes.Buffer
	tr := wirehttp.NewChanTransport(in, func(p []byte) error {
		out.Write(p)

		return nil
	})

	wirehttp.ServeConn(context.Background(), tr, nil, wirehttp.NewStdLogger(log.New(io.Discard, "", 0)))

	fmt.Printf("%q\n", out.String())
	// Output:
	// "HTTP/1.1 200 \r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: 20\r\n\r\nhello from wirehttp\n"
}

func ExampleHandlerFunc() {
	handler := wirehttp.HandlerFunc(func(_ context.Context, req *wirehttp.Request, _ wirehttp.BodyReader) (*wirehttp.Response, error) {
		if req.Target != "/greet" {
			return nil, wirehttp.Errorf(wirehttp.CodeNotFound, "unknown target %s", req.Target)
		}

		resp := wirehttp.NewResponse(200, []byte("hi\n"))
		resp.AddHeader("Content-Type", "text/plain; charset=utf-8")

		return resp, nil
	})

	in := make(chan []byte, 1)
	in <- []byte("GET /nope HTTP/1.0\r\n\r\n")
	close(in)

	var out bytes.Buffer
	tr := wirehttp.NewChanTransport(in, func(p []byte) error {
		out.Write(p)

		return nil
	})

	wirehttp.ServeConn(context.Background(), tr, handler, wirehttp.NewStdLogger(log.New(io.Discard, "", 0)))

	status, _, _ := bytes.Cut(out.Bytes(), []byte("\r\n"))
	fmt.Println(string(status))
	// Output:
	// HTTP/1.1 404
}

// Package wirehttp frames, parses and answers HTTP/1.1 request messages
// directly on a byte stream, without a pre-built HTTP stack underneath.
//
// # Overview
//
// A connection delivers bytes in arbitrary-sized chunks with no message
// alignment. wirehttp reconstructs discrete request messages from that
// stream, hands them to a handler, streams bodies of known length without
// buffering them whole, and serializes the response back onto the same
// channel. The moving parts:
//
//   - [Buffer]: per-connection accumulator of unconsumed bytes with a
//     compacting head offset
//   - the framer/parser: finds the CRLFCRLF terminator and turns the header
//     block into a [Request]
//   - [BodyReader]: pull-based, length-bounded body streaming over
//     buffered plus freshly-read bytes
//   - [ServeConn]: the per-connection serve loop with keep-alive and
//     error-to-response conversion
//
// A minimal server:
//
//	ln, _ := net.Listen("tcp", ":8080")
//	for {
//	    nc, err := ln.Accept()
//	    if err != nil {
//	        break
//	    }
//	    go wirehttp.ServeConn(context.Background(), wirehttp.NewConnTransport(nc, 0), handler, nil)
//	}
//
// The batteries-included runtime in the wired sub-package does the
// listening, configuration, logging and metrics for you.
//
// # Handler Signature
//
// Handlers receive the parsed request head and its body streamer and
// return the response head, or an error:
//
//	func(ctx context.Context, req *wirehttp.Request, body wirehttp.BodyReader) (*wirehttp.Response, error)
//
// Consuming the body is optional: the serve loop drains whatever the
// handler leaves behind before it frames the next message, so the
// connection state stays aligned to message boundaries.
//
// # Error Handling
//
// Protocol violations and handler failures are ordinary error values
// carrying a status [Code] (create them with [NewError] or [Errorf]). They
// propagate up to the serve loop's boundary, where exactly one error per
// connection is converted into a best-effort plain-text response before
// the connection closes. Errors without a code render as 500.
//
// # Transports
//
// The [Transport] contract is pull-based: Read returns the next available
// chunk (nil meaning clean end of stream) and Write fully flushes.
// [NewConnTransport] adapts a net.Conn; [NewChanTransport] bridges
// event-driven byte sources that deliver chunks via callbacks or channels.
//
// # Limitations
//
// Chunked transfer encoding and bodies of unknown length are not
// implemented; both surface as 501 responses rather than being silently
// mishandled. Response status lines deliberately carry no reason phrase.
package wirehttp

package wirehttp

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important connection
// states.
type Logger interface {
	LogProtocolError(err error)
	LogErrorResponseFailure(err error)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogProtocolError(err error) {
	l.Logger.Printf("wirehttp: protocol error: %s", err)
}

func (l stdLogger) LogErrorResponseFailure(err error) {
	l.Logger.Printf("wirehttp: error while sending error response: %s", err)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogProtocolError        int64
	NumLogErrorResponseFailure int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogProtocolError(err error) {
	atomic.AddInt64(&l.NumLogProtocolError, 1)
	l.tb.Logf("wirehttp: protocol error: %s", err)
}

func (l *TestLogger) LogErrorResponseFailure(err error) {
	atomic.AddInt64(&l.NumLogErrorResponseFailure, 1)
	l.tb.Logf("wirehttp: error while sending error response: %s", err)
}

var _ Logger = &TestLogger{}

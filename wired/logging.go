package wired

import (
	"github.com/wirehttp/wirehttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment. JSON
// encoding suitable for log shippers; WIREHTTP_LOG_LEVEL controls the
// level.
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.LogLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

type zapLogger struct{ *zap.Logger }

func (l zapLogger) LogProtocolError(err error) {
	l.Logger.Warn("protocol error", zap.Error(err))
}

func (l zapLogger) LogErrorResponseFailure(err error) {
	l.Logger.Error("error while sending error response", zap.Error(err))
}

// NewWireLogger adapts a zap logger to the [wirehttp.Logger] interface.
func NewWireLogger(l *zap.Logger) wirehttp.Logger {
	return zapLogger{l.Named("wirehttp")}
}

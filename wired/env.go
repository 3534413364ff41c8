package wired

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap/zapcore"
)

// Environment holds the server's runtime configuration, parsed from
// environment variables.
type Environment struct {
	// Addr is the listen address of the data path.
	Addr string `env:"WIREHTTP_ADDR" envDefault:":8080"`
	// MetricsAddr is the listen address of the prometheus endpoint. Empty
	// disables it.
	MetricsAddr string `env:"WIREHTTP_METRICS_ADDR"`
	// LogLevel controls the zap logger (debug, info, warn, error).
	LogLevel zapcore.Level `env:"WIREHTTP_LOG_LEVEL" envDefault:"info"`
	// ReadChunkSize is how many bytes each transport read asks for.
	ReadChunkSize int `env:"WIREHTTP_READ_CHUNK_SIZE" envDefault:"4096"`
	// AcceptRate limits accepted connections per second. Zero disables
	// the limiter.
	AcceptRate float64 `env:"WIREHTTP_ACCEPT_RATE" envDefault:"0"`
	// AcceptBurst is the limiter's burst size.
	AcceptBurst int `env:"WIREHTTP_ACCEPT_BURST" envDefault:"64"`
}

// ParseEnv reads the process environment into an Environment.
func ParseEnv() (Environment, error) {
	cfg, err := env.ParseAs[Environment]()
	if err != nil {
		return Environment{}, errors.Wrap(err, "parse environment")
	}

	return cfg, nil
}

// MustParseEnv is ParseEnv for startup paths where failing to configure
// is fatal anyway.
func MustParseEnv() Environment {
	return lo.Must(ParseEnv())
}

package wired

import (
	"github.com/wirehttp/wirehttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// AppConfig holds configuration for the app.
type AppConfig struct {
	Handler   wirehttp.Handler
	FxOptions []fx.Option
}

// Option configures the App.
type Option func(*AppConfig)

// WithHandler sets the handler the server dispatches to. Defaults to
// [wirehttp.DefaultHandler].
func WithHandler(h wirehttp.Handler) Option {
	return func(c *AppConfig) {
		c.Handler = h
	}
}

// WithFx adds fx options for dependency injection.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// NewApp creates a batteries-included server app: environment config, zap
// logging, prometheus metrics, access-log middleware and the listener
// lifecycle.
func NewApp(opts ...Option) *App {
	var cfg AppConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Handler == nil {
		cfg.Handler = wirehttp.DefaultHandler
	}

	baseOpts := make([]fx.Option, 0, 8+len(cfg.FxOptions))
	baseOpts = append(baseOpts,
		fx.NopLogger,
		fx.Provide(ParseEnv),
		fx.Provide(NewLogger),
		fx.Provide(NewMetrics),
		fx.Provide(func(logs *zap.Logger, metrics *Metrics) wirehttp.Handler {
			return wirehttp.Wrap(cfg.Handler, WithAccessLog(logs, metrics))
		}),
		fx.Provide(NewServer),
		fx.Invoke(startServerHook),
		fx.Invoke(startMetricsHook),
	)
	baseOpts = append(baseOpts, cfg.FxOptions...)

	return &App{app: fx.New(baseOpts...)}
}

// Run starts the app and blocks until a shutdown signal arrives.
func (a *App) Run() {
	a.app.Run()
}

package wired

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/wirehttp/wirehttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Server owns the listener and serves every accepted connection on its
// own goroutine through the wirehttp serve loop. Connections share
// nothing; each gets its own transport and buffer.
type Server struct {
	env     Environment
	logs    *zap.Logger
	metrics *Metrics
	handler wirehttp.Handler
	limiter *rate.Limiter

	ln net.Listener
	wg sync.WaitGroup
}

// NewServer inits a server. Start binds it.
func NewServer(env Environment, logs *zap.Logger, metrics *Metrics, handler wirehttp.Handler) *Server {
	var limiter *rate.Limiter
	if env.AcceptRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(env.AcceptRate), env.AcceptBurst)
	}

	return &Server{
		env:     env,
		logs:    logs,
		metrics: metrics,
		handler: handler,
		limiter: limiter,
	}
}

// Start binds the listener and launches the accept loop.
func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.env.Addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}

	s.ln = ln
	s.logs.Info("listening", zap.String("addr", ln.Addr().String()))

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Addr returns the bound listen address, valid after Start.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	wireLogs := NewWireLogger(s.logs)
	for {
		if s.limiter != nil {
			if err := s.limiter.Wait(context.Background()); err != nil {
				return
			}
		}

		nc, err := s.ln.Accept()
		if err != nil {
			// listener closed during shutdown, or a fatal accept error
			return
		}

		s.metrics.ConnectionsAccepted.Inc()
		s.wg.Add(1)

		go func() {
			defer s.wg.Done()
			tr := wirehttp.NewConnTransport(nc, s.env.ReadChunkSize)
			wirehttp.ServeConn(context.Background(), tr, s.handler, wireLogs)
		}()
	}
}

// Shutdown stops accepting and waits for in-flight connections up to
// ctx's deadline. Idle keep-alive peers that never close count as
// in-flight, so callers should bound ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.ln != nil {
		_ = s.ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for connections to finish")
	}
}

// startServerHook registers lifecycle hooks for the server.
func startServerHook(lc fx.Lifecycle, server *Server, logs *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: server.Start,
		OnStop: func(ctx context.Context) error {
			logs.Info("stopping server")

			return server.Shutdown(ctx)
		},
	})
}

// startMetricsHook serves the prometheus endpoint when configured.
func startMetricsHook(lc fx.Lifecycle, env Environment, metrics *Metrics, logs *zap.Logger) {
	if env.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              env.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			ln, err := net.Listen("tcp", env.MetricsAddr)
			if err != nil {
				return errors.Wrap(err, "listen for metrics")
			}

			logs.Info("serving metrics", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logs.Error("metrics server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: srv.Shutdown,
	})
}

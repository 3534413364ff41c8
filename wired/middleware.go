package wired

import (
	"context"
	"time"

	"github.com/wirehttp/wirehttp"
	"go.uber.org/zap"
)

// WithAccessLog logs one line per request with outcome and timing, and
// feeds the request counters.
func WithAccessLog(logs *zap.Logger, metrics *Metrics) wirehttp.Middleware {
	return func(next wirehttp.Handler) wirehttp.Handler {
		return wirehttp.HandlerFunc(func(ctx context.Context, req *wirehttp.Request, body wirehttp.BodyReader) (*wirehttp.Response, error) {
			start := time.Now()

			resp, err := next.ServeHTTP1(ctx, req, body)
			if err != nil {
				metrics.RequestErrors.Inc()
				logs.Warn("request failed",
					zap.String("method", req.Method),
					zap.String("target", req.Target),
					zap.Duration("took", time.Since(start)),
					zap.Error(err))

				return nil, err
			}

			metrics.RequestsServed.Inc()
			logs.Info("request served",
				zap.String("method", req.Method),
				zap.String("target", req.Target),
				zap.Int("status", resp.Status),
				zap.Duration("took", time.Since(start)))

			return resp, nil
		})
	}
}

package wired_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wirehttp/wirehttp"
	"github.com/wirehttp/wirehttp/wired"
	"go.uber.org/zap"
)

// startTestServer binds a real listener and serves the default dispatcher
// wrapped with the access-log middleware, so the wire format is exercised
// against a stock http client.
func startTestServer(t *testing.T) (*wired.Metrics, string) {
	t.Helper()

	env := wired.Environment{Addr: "127.0.0.1:0", ReadChunkSize: 4096}
	metrics := wired.NewMetrics()
	handler := wirehttp.Wrap(wirehttp.DefaultHandler, wired.WithAccessLog(zap.NewNop(), metrics))

	srv := wired.NewServer(env, zap.NewNop(), metrics, handler)
	require.NoError(t, srv.Start(context.Background()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	return metrics, "http://" + srv.Addr().String()
}

func TestServerEndToEnd(t *testing.T) {
	metrics, base := startTestServer(t)

	client := &http.Client{}
	t.Cleanup(client.CloseIdleConnections)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body string
	require.NoError(t, requests.
		URL(base+"/anything").
		Client(client).
		ToString(&body).
		Fetch(ctx))
	assert.Equal(t, "hello from wirehttp\n", body)

	var echoed string
	require.NoError(t, requests.
		URL(base+"/echo").
		Client(client).
		Method(http.MethodPost).
		BodyBytes([]byte("abc")).
		ToString(&echoed).
		Fetch(ctx))
	assert.Equal(t, "abc", echoed)

	assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.ConnectionsAccepted), 1.0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.RequestsServed), 0.001)
	assert.Zero(t, testutil.ToFloat64(metrics.RequestErrors))
}

func TestServerKeepAliveAcrossRequests(t *testing.T) {
	metrics, base := startTestServer(t)

	client := &http.Client{}
	t.Cleanup(client.CloseIdleConnections)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		var body string
		require.NoError(t, requests.
			URL(base+"/x").
			Client(client).
			ToString(&body).
			Fetch(ctx))
		require.Equal(t, "hello from wirehttp\n", body)
	}

	assert.InDelta(t, 3.0, testutil.ToFloat64(metrics.RequestsServed), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ConnectionsAccepted), 0.001,
		"a well-behaved client reuses one connection")
}

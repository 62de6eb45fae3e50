package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func robotsServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			hits.Add(1)
			w.Write([]byte("User-agent: *\nDisallow: /private\n"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ua":"` + r.Header.Get("User-Agent") + `"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRobotsChecker(t *testing.T) {
	var hits atomic.Int32
	srv := robotsServer(t, &hits)
	ctx := context.Background()

	rc := NewRobotsChecker(srv.Client(), true)
	ok, err := rc.IsAllowed(ctx, "bot", srv.URL+"/products")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rc.IsAllowed(ctx, "bot", srv.URL+"/private/x")
	require.NoError(t, err)
	assert.False(t, ok)

	// cached after the first fetch
	assert.Equal(t, int32(1), hits.Load())

	disabled := NewRobotsChecker(srv.Client(), false)
	ok, err = disabled.IsAllowed(ctx, "bot", srv.URL+"/private/x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTransportSetsHeadersAndBlocks(t *testing.T) {
	var hits atomic.Int32
	srv := robotsServer(t, &hits)

	var seen http.Header
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Clone()
		return http.DefaultTransport.RoundTrip(req)
	})

	client := &http.Client{Transport: &Transport{
		Base:        base,
		UserAgent:   "test-agent",
		Robots:      NewRobotsChecker(srv.Client(), true),
		RateLimiter: rate.NewLimiter(rate.Inf, 1),
	}}

	resp, err := client.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "test-agent", seen.Get("User-Agent"))
	assert.Equal(t, "application/json", seen.Get("Accept"))

	_, err = client.Get(srv.URL + "/private/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked by robots.txt")
}

func TestTransportDoesNotMutateCallerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := (&Transport{}).RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, req.Header.Get("User-Agent"))
}

func TestNewProxyTransport(t *testing.T) {
	tr, err := NewProxyTransport("")
	require.NoError(t, err)
	assert.NotNil(t, tr)

	tr, err = NewProxyTransport("http://user:pw@proxy.local:3128")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "https://fakestoreapi.com/products", nil)
	u, err := tr.Proxy(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy.local:3128", u.Host)

	_, err = NewProxyTransport("ftp://proxy.local")
	assert.Error(t, err)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

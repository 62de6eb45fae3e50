package transport

import (
	"fmt"
	"net/http"

	"github.com/yunisnasibov/e-ticaret-12/internal/httputil"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies the storefront to the catalog API.
const DefaultUserAgent = "e-ticaret-storefront/1.0 (+https://github.com/yunisnasibov/e-ticaret-12)"

// Transport is an http.RoundTripper that applies, in order:
// headers → robots.txt check → rate limiter → Base.
type Transport struct {
	Base        http.RoundTripper
	UserAgent   string
	Robots      *RobotsChecker
	RateLimiter *rate.Limiter
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	ua := t.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ua)
	}
	for key, vals := range httputil.JSONHeaders() {
		if req.Header.Get(key) == "" {
			req.Header[key] = vals
		}
	}

	if t.Robots != nil {
		allowed, err := t.Robots.IsAllowed(req.Context(), ua, req.URL.String())
		if err == nil && !allowed {
			return nil, fmt.Errorf("blocked by robots.txt: %s", req.URL.Path)
		}
	}

	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

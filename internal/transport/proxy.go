package transport

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/yunisnasibov/e-ticaret-12/internal/httputil"
)

// NewProxyTransport returns a base transport that sends every request
// through the HTTP or SOCKS5 proxy at rawURL. An empty rawURL falls back to
// the environment's HTTP(S)_PROXY settings.
func NewProxyTransport(rawURL string) (*http.Transport, error) {
	base := httputil.DefaultTransport()
	if rawURL == "" {
		return base, nil
	}
	proxyURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	switch proxyURL.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", proxyURL.Scheme)
	}
	base.Proxy = http.ProxyURL(proxyURL)
	return base, nil
}

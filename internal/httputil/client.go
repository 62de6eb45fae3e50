package httputil

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

// NewHTTPClient creates an HTTP client with sensible defaults.
// An optional RoundTripper (e.g. transport.Transport) can be injected.
// Callers bound individual requests with their context; Timeout is only
// the outer limit.
func NewHTTPClient(transport http.RoundTripper) *http.Client {
	if transport == nil {
		transport = DefaultTransport()
	}
	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}

// DefaultTransport is the pooled base transport requests go out on.
func DefaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// ReadBody reads and decompresses an HTTP response body. Setting
// Accept-Encoding by hand turns off the transport's transparent gzip, so
// gzip and brotli are both handled here.
func ReadBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "br":
		reader = brotli.NewReader(resp.Body)
	default:
		reader = resp.Body
	}
	return io.ReadAll(reader)
}

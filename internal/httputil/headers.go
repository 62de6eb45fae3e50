package httputil

import "net/http"

// JSONHeaders returns the headers sent with every catalog API call.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, br")
	h.Set("Accept-Language", "en-US,en;q=0.9,tr;q=0.8")
	return h
}

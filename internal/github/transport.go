package github

import (
	"net/http"
	"time"
)

// loggingTransport logs method, URL, status and latency of every request.
// Request and response bodies are never read or printed.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	logDebug("[github] %s %s", req.Method, redactURL(req))

	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		logDebug("[github] %s %s failed after %s: %v", req.Method, req.URL.Path, elapsed, err)
		return nil, err
	}

	logDebug("[github] %s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, elapsed)
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		logDebug("[github] rate limit remaining: %s", remaining)
	}
	return resp, nil
}

// redactURL drops user info from the logged URL.
func redactURL(req *http.Request) string {
	u := *req.URL
	u.User = nil
	return u.String()
}

package booru

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	proxyURL   string
	timeout    time.Duration
	limit      int
}

// WithHTTPClient sets the HTTP client. Proxy and timeout options are
// ignored when it is used.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithProxy routes requests through an http, https or socks5 proxy.
func WithProxy(proxyURL string) Option {
	return func(o *clientOptions) {
		o.proxyURL = proxyURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithLimit sets how many posts a page holds.
func WithLimit(limit int) Option {
	return func(o *clientOptions) {
		if limit >= 0 {
			o.limit = limit
		}
	}
}

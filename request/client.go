package request

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// HTTPClientConfig holds the transport settings a client is built with.
// A zero Timeout keeps the net/http default.
type HTTPClientConfig struct {
	ProxyURL string
	Timeout  time.Duration
}

// NewHTTPClient builds the *http.Client used by the API clients. Proxy
// problems are reported here, before any request is made.
func NewHTTPClient(cfg HTTPClientConfig) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyURL != "" {
		if err := configureProxy(transport, cfg.ProxyURL); err != nil {
			return nil, err
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}, nil
}

// ValidateProxyURL checks that raw is a usable http, https or socks5 proxy URL.
func ValidateProxyURL(raw string) error {
	_, err := parseProxyURL(raw)
	return err
}

func parseProxyURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		// *url.Error repeats the input, credentials included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &ConstructionError{Field: "proxy", Value: redactUserinfo(raw), Err: fmt.Errorf("%w: %v", ErrInvalidProxy, err)}
	}
	if parsed.Host == "" {
		return nil, &ConstructionError{Field: "proxy", Value: parsed.Redacted(), Err: fmt.Errorf("%w: missing host", ErrInvalidProxy)}
	}

	switch parsed.Scheme {
	case "http", "https", "socks5":
		return parsed, nil
	default:
		return nil, &ConstructionError{
			Field: "proxy",
			Value: parsed.Redacted(),
			Err:   fmt.Errorf("%w: unsupported scheme %q", ErrInvalidProxy, parsed.Scheme),
		}
	}
}

// redactUserinfo masks the userinfo of a URL that url.Parse rejected.
func redactUserinfo(raw string) string {
	start := 0
	if i := strings.Index(raw, "://"); i >= 0 {
		start = i + 3
	}
	end := len(raw)
	if i := strings.IndexAny(raw[start:], "/?#"); i >= 0 {
		end = start + i
	}
	at := strings.LastIndex(raw[start:end], "@")
	if at < 0 {
		return raw
	}
	return raw[:start] + "xxxxx" + raw[start+at:]
}

func configureProxy(transport *http.Transport, proxyURL string) error {
	parsed, err := parseProxyURL(proxyURL)
	if err != nil {
		return err
	}

	if parsed.Scheme != "socks5" {
		transport.Proxy = http.ProxyURL(parsed)
		return nil
	}

	dialer, err := proxy.FromURL(parsed, &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	})
	if err != nil {
		return &ConstructionError{Field: "proxy", Value: parsed.Redacted(), Err: fmt.Errorf("%w: %v", ErrInvalidProxy, err)}
	}

	transport.Proxy = nil
	if ctxDialer, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = ctxDialer.DialContext
	} else {
		transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}
	return nil
}

package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a failed response is kept on a TransportError.
const maxErrorBody = 4096

// Get issues a single GET for rawURL. header may be nil. The body of a 2xx
// response is returned as is; anything else is a *TransportError.
func Get(ctx context.Context, client *http.Client, rawURL string, header http.Header, logger zerolog.Logger) ([]byte, error) {
	redacted := RedactURL(rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ConstructionError{Field: "url", Value: redacted, Err: err}
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug().
		Str("url", redacted).
		Bool("authorized", header.Get("Authorization") != "").
		Msg("Sending API request")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: redacted, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			URL:        redacted,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: redacted, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	logger.Debug().
		Str("url", redacted).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Received API response")

	return body, nil
}

var secretParams = []string{"api_key", "apikey", "token"}

// RedactURL masks credentials in the userinfo and query of rawURL so it can
// be logged or put on an error.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := u.Query()
	changed := false
	for _, key := range secretParams {
		if query.Has(key) {
			query.Set(key, "xxxxx")
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
	return u.Redacted()
}

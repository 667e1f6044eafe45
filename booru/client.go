package booru

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/imgdl/request"
)

// listMethod is the DAPI path and fixed query of the post listing
const listMethod = "/index.php?page=dapi&s=post&q=index&json=1"

// Client represents a client for one Gelbooru-compatible site
type Client struct {
	rootURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	limit      int
}

// NewClient creates a client for the site rooted at rootURL
func NewClient(rootURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	rootURL = strings.TrimRight(rootURL, "/")
	if rootURL == "" {
		return nil, &request.ConstructionError{Field: "root URL", Err: fmt.Errorf("%w: root URL is required", request.ErrInvalidConfig)}
	}
	u, err := url.Parse(rootURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &request.ConstructionError{Field: "root URL", Value: rootURL, Err: request.ErrInvalidConfig}
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient, err = request.NewHTTPClient(request.HTTPClientConfig{
			ProxyURL: o.proxyURL,
			Timeout:  o.timeout,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		rootURL:    rootURL,
		httpClient: httpClient,
		logger:     logger.With().Str("api", "booru").Str("host", u.Host).Logger(),
		limit:      o.limit,
	}, nil
}

// RootURL returns the site root the client talks to
func (c *Client) RootURL() string {
	return c.rootURL
}

// buildURL composes the listing URL. These sites serve neither single
// posts nor pagination metadata in JSON.
func (c *Client) buildURL(endpoint request.Endpoint, tags string, page int) (string, error) {
	if endpoint != request.ListPosts {
		return "", &request.ConstructionError{Field: "endpoint", Value: endpoint.String(), Err: request.ErrUnsupportedEndpoint}
	}

	params := url.Values{}
	params.Set("tags", tags)
	if page > 0 {
		params.Set("pid", strconv.Itoa(page))
	}
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}

	return c.rootURL + listMethod + "&" + params.Encode(), nil
}

// FetchPosts lists the posts matching tags on the given page. A query
// without matches yields an empty slice.
func (c *Client) FetchPosts(ctx context.Context, tags string, page int) ([]Post, error) {
	u, err := c.buildURL(request.ListPosts, tags, page)
	if err != nil {
		return nil, err
	}

	body, err := request.Get(ctx, c.httpClient, u, nil, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	// No matches come back as an empty body rather than [].
	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.Debug().Str("tags", tags).Msg("No posts found for given tags")
		return []Post{}, nil
	}

	posts, err := request.DecodeList[Post](body, "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse posts: %w", err)
	}

	c.logger.Debug().
		Str("tags", tags).
		Int("page", page).
		Int("count", len(posts)).
		Msg("Retrieved posts")

	return posts, nil
}

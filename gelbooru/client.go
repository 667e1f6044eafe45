package gelbooru

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/imgdl/request"
)

const (
	// APIURL is the root of the Gelbooru site
	APIURL = "https://gelbooru.com"

	// listMethod is the DAPI path and fixed query of the post listing
	listMethod = "/index.php?page=dapi&s=post&q=index&json=1"
)

// Client represents a Gelbooru API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	limit      int
	apiKey     string
	userID     string
}

// NewClient creates a new Gelbooru client. A malformed proxy URL is
// reported here rather than on the first request.
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := clientOptions{baseURL: APIURL}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := strings.TrimRight(o.baseURL, "/")
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &request.ConstructionError{Field: "base URL", Value: o.baseURL, Err: request.ErrInvalidConfig}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		var err error
		httpClient, err = request.NewHTTPClient(request.HTTPClientConfig{
			ProxyURL: o.proxyURL,
			Timeout:  o.timeout,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.With().Str("api", "gelbooru").Logger(),
		limit:      o.limit,
		apiKey:     o.apiKey,
		userID:     o.userID,
	}, nil
}

// buildURL composes the listing URL. Posts and attributes come from the
// same listing response. A page of zero or less omits pid.
func (c *Client) buildURL(endpoint request.Endpoint, tags string, page int) (string, error) {
	switch endpoint {
	case request.ListPosts, request.ListAttributes:
	default:
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
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
		params.Set("user_id", c.userID)
	}

	return c.baseURL + listMethod + "&" + params.Encode(), nil
}

func (c *Client) get(ctx context.Context, endpoint request.Endpoint, tags string, page int) ([]byte, error) {
	u, err := c.buildURL(endpoint, tags, page)
	if err != nil {
		return nil, err
	}
	return request.Get(ctx, c.httpClient, u, nil, c.logger)
}

// FetchPosts lists the posts matching tags on the given page. A query
// without matches yields an empty slice.
func (c *Client) FetchPosts(ctx context.Context, tags string, page int) ([]Post, error) {
	body, err := c.get(ctx, request.ListPosts, tags, page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	posts, err := request.DecodeList[Post](body, "post")
	if err != nil {
		return nil, fmt.Errorf("failed to parse posts: %w", err)
	}

	c.logger.Debug().
		Str("tags", tags).
		Int("page", page).
		Int("count", len(posts)).
		Msg("Retrieved posts from Gelbooru")

	return posts, nil
}

// FetchAttributes fetches the pagination metadata of a listing
func (c *Client) FetchAttributes(ctx context.Context, tags string, page int) (*Attributes, error) {
	body, err := c.get(ctx, request.ListAttributes, tags, page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attributes: %w", err)
	}

	attrs, err := request.DecodeObject[Attributes](body, "@attributes")
	if err != nil {
		return nil, fmt.Errorf("failed to parse attributes: %w", err)
	}
	return &attrs, nil
}

// FetchPage fetches posts and pagination metadata with a single request
func (c *Client) FetchPage(ctx context.Context, tags string, page int) (*Page, error) {
	body, err := c.get(ctx, request.ListPosts, tags, page)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	posts, err := request.DecodeList[Post](body, "post")
	if err != nil {
		return nil, fmt.Errorf("failed to parse posts: %w", err)
	}
	attrs, err := request.DecodeObject[Attributes](body, "@attributes")
	if err != nil {
		return nil, fmt.Errorf("failed to parse attributes: %w", err)
	}

	c.logger.Debug().
		Str("tags", tags).
		Int("page", page).
		Int("count", len(posts)).
		Int("total", attrs.Count).
		Msg("Retrieved page from Gelbooru")

	return &Page{Posts: posts, Attributes: attrs}, nil
}

package boosty

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/imgdl/auth"
	"github.com/s0up4200/imgdl/request"
)

// APIURL is the root of the Boosty API
const APIURL = "https://api.boosty.to/v1/"

// Client represents a Boosty API client
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Boosty client
func NewClient(logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := clientOptions{baseURL: APIURL}
	for _, opt := range opts {
		opt(&o)
	}

	// Relative references resolve against the last path segment, so the
	// base must end with a slash to keep /v1/.
	if !strings.HasSuffix(o.baseURL, "/") {
		o.baseURL += "/"
	}
	base, err := url.Parse(o.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &request.ConstructionError{Field: "base URL", Value: o.baseURL, Err: request.ErrInvalidConfig}
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
		baseURL:    base,
		httpClient: httpClient,
		logger:     logger.With().Str("api", "boosty").Logger(),
	}, nil
}

// buildURL composes the URL of an endpoint. Listing URLs keep their
// trailing slash; the API answers 404 without it.
func (c *Client) buildURL(endpoint request.Endpoint, blogName, postID string, limit int) (string, error) {
	var ref string
	switch endpoint {
	case request.ListPosts:
		ref = "blog/" + url.PathEscape(blogName) + "/post/"
	case request.GetPost:
		ref = "blog/" + url.PathEscape(blogName) + "/post/" + url.PathEscape(postID)
	default:
		return "", &request.ConstructionError{Field: "endpoint", Value: endpoint.String(), Err: request.ErrUnsupportedEndpoint}
	}

	u, err := c.baseURL.Parse(ref)
	if err != nil {
		return "", &request.ConstructionError{Field: "url", Value: ref, Err: err}
	}

	if limit > 0 {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(limit))
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, endpoint request.Endpoint, blogName, postID string, limit int, a *auth.Auth) ([]byte, error) {
	if blogName == "" {
		return nil, &request.ConstructionError{Field: "blog name", Err: request.ErrInvalidConfig}
	}

	u, err := c.buildURL(endpoint, blogName, postID, limit)
	if err != nil {
		return nil, err
	}
	return request.Get(ctx, c.httpClient, u, a.Header(), c.logger)
}

// FetchPosts lists the posts of a blog. A limit of zero or less leaves the
// page size to the API, which defaults to 100. A blog without posts yields
// an empty slice.
func (c *Client) FetchPosts(ctx context.Context, blogName string, limit int, a *auth.Auth) ([]Post, error) {
	body, err := c.get(ctx, request.ListPosts, blogName, "", limit, a)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts of %s: %w", blogName, err)
	}

	posts, err := request.DecodeList[Post](body, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to parse posts of %s: %w", blogName, err)
	}

	c.logger.Debug().
		Str("blog", blogName).
		Int("count", len(posts)).
		Msg("Retrieved posts from Boosty")

	return posts, nil
}

// FetchPostsRaw lists the posts of a blog and returns the parsed JSON
// without applying the Post schema.
func (c *Client) FetchPostsRaw(ctx context.Context, blogName string, limit int, a *auth.Auth) (any, error) {
	body, err := c.get(ctx, request.ListPosts, blogName, "", limit, a)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts of %s: %w", blogName, err)
	}

	raw, err := request.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse posts of %s: %w", blogName, err)
	}
	return raw, nil
}

// FetchPost fetches a single post of a blog
func (c *Client) FetchPost(ctx context.Context, blogName, postID string, a *auth.Auth) (*Post, error) {
	if postID == "" {
		return nil, &request.ConstructionError{Field: "post id", Err: request.ErrInvalidConfig}
	}

	body, err := c.get(ctx, request.GetPost, blogName, postID, 0, a)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post %s: %w", postID, err)
	}

	post, err := request.DecodeObject[Post](body, "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse post %s: %w", postID, err)
	}

	c.logger.Debug().
		Str("blog", blogName).
		Str("post_id", post.ID).
		Bool("has_data", post.HasData()).
		Msg("Retrieved post from Boosty")

	return &post, nil
}

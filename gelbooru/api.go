package gelbooru

import (
	"context"
)

// API defines the interface for Gelbooru operations
type API interface {
	// FetchPosts lists the posts matching tags on a page
	FetchPosts(ctx context.Context, tags string, page int) ([]Post, error)

	// FetchAttributes fetches the pagination metadata of a listing
	FetchAttributes(ctx context.Context, tags string, page int) (*Attributes, error)

	// FetchPage fetches posts and pagination metadata together
	FetchPage(ctx context.Context, tags string, page int) (*Page, error)
}

var _ API = (*Client)(nil)

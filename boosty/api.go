package boosty

import (
	"context"

	"github.com/s0up4200/imgdl/auth"
)

// API defines the interface for Boosty operations
type API interface {
	// FetchPosts lists the posts of a blog, newest first
	FetchPosts(ctx context.Context, blogName string, limit int, a *auth.Auth) ([]Post, error)

	// FetchPostsRaw lists the posts of a blog without decoding them
	FetchPostsRaw(ctx context.Context, blogName string, limit int, a *auth.Auth) (any, error)

	// FetchPost fetches a single post
	FetchPost(ctx context.Context, blogName, postID string, a *auth.Auth) (*Post, error)
}

var _ API = (*Client)(nil)

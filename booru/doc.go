// Package booru provides a client for self-hosted sites speaking the
// Gelbooru DAPI query grammar.
//
// These sites answer a listing with a bare JSON array of posts, without
// the "post" wrapper or the "@attributes" pagination block of gelbooru.com,
// and use their own post schema. An empty answer means no matches.
//
//	client, err := booru.NewClient("https://api.rule34.xxx", logger)
//	posts, err := client.FetchPosts(ctx, "cat", 0)
package booru

// Package gelbooru provides a client for the gelbooru.com DAPI.
//
// Listings return an object holding the posts under "post" and pagination
// metadata under "@attributes":
//
//	client, err := gelbooru.NewClient(logger, gelbooru.WithProxy("socks5://127.0.0.1:1080"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	posts, err := client.FetchPosts(ctx, "rating:general", 2)
//	attrs, err := client.FetchAttributes(ctx, "rating:general", 0)
//
// Self-hosted sites speaking the same query grammar but returning a bare
// array of a different post schema are served by package booru.
package gelbooru

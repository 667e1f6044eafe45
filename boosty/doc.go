// Package boosty provides a client for the undocumented Boosty blog API.
//
// Posts can be listed per blog or fetched one by one. Free posts are
// readable anonymously; the paid content of a post (Post.Data) is only
// returned when the request carries the bearer token of a subscribed
// account.
//
// # Usage
//
//	client, err := boosty.NewClient(logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := auth.New(os.Getenv("BOOSTY_TOKEN"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	posts, err := client.FetchPosts(ctx, "boosty", 10, token)
//
// Pass a nil *auth.Auth for anonymous requests.
//
// # Error Handling
//
// Errors are one of *request.ConstructionError, *request.TransportError or
// *request.DecodeError and can be told apart with errors.As.
package boosty

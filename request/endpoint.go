package request

// Endpoint identifies a logical API call independent of its URL layout.
type Endpoint int

const (
	// ListPosts lists posts of a blog or a tag query
	ListPosts Endpoint = iota
	// GetPost fetches a single post
	GetPost
	// ListAttributes fetches pagination metadata of a listing
	ListAttributes
)

// String returns the string representation of an Endpoint
func (e Endpoint) String() string {
	switch e {
	case ListPosts:
		return "list_posts"
	case GetPost:
		return "get_post"
	case ListAttributes:
		return "list_attributes"
	default:
		return "unknown"
	}
}

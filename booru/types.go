package booru

import (
	"encoding/json"
	"strings"

	"github.com/s0up4200/imgdl/request"
)

// Post represents a post as returned by Gelbooru-compatible sites such as
// rule34.xxx or safebooru.org. Unlike gelbooru.com, these report the
// directory as a number, the hash under "hash" and a free-form rating.
type Post struct {
	ID           int64   `json:"id"`
	Directory    int64   `json:"directory"`
	Hash         string  `json:"hash"`
	Image        string  `json:"image"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Rating       string  `json:"rating"`
	Owner        string  `json:"owner"`
	ParentID     *int64  `json:"parent_id,omitempty"`
	Tags         string  `json:"tags"`
	Score        *int64  `json:"score,omitempty"`
	Sample       *bool   `json:"sample,omitempty"`
	SampleWidth  *int    `json:"sample_width,omitempty"`
	SampleHeight *int    `json:"sample_height,omitempty"`
	FileURL      string  `json:"file_url"`
	PreviewURL   string  `json:"preview_url"`
	SampleURL    *string `json:"sample_url,omitempty"`
	Source       string  `json:"source"`
	Status       string  `json:"status"`
	Change       *int64  `json:"change,omitempty"`
	HasNotes     *bool   `json:"has_notes,omitempty"`
	CommentCount *int    `json:"comment_count,omitempty"`
}

var postRequiredFields = []string{
	"id",
	"directory",
	"hash",
	"image",
	"width",
	"height",
	"rating",
	"owner",
	"tags",
	"file_url",
	"preview_url",
	"source",
	"status",
}

// UnmarshalJSON rejects posts missing a required field
func (p *Post) UnmarshalJSON(data []byte) error {
	if err := request.RequireFields(data, postRequiredFields...); err != nil {
		return err
	}
	type alias Post
	return json.Unmarshal(data, (*alias)(p))
}

// TagList splits the space separated tag string
func (p *Post) TagList() []string {
	return strings.Fields(p.Tags)
}

// HasParent checks if the post belongs to a parent post
func (p *Post) HasParent() bool {
	return p.ParentID != nil && *p.ParentID != 0
}

// HasSample checks if a downscaled sample exists
func (p *Post) HasSample() bool {
	return p.Sample != nil && *p.Sample
}

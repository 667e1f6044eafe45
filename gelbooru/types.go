package gelbooru

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/s0up4200/imgdl/request"
)

// Rating is the content rating of a post
type Rating string

const (
	// RatingGeneral marks safe content
	RatingGeneral Rating = "general"
	// RatingSensitive marks mildly suggestive content
	RatingSensitive Rating = "sensitive"
	// RatingQuestionable marks suggestive content
	RatingQuestionable Rating = "questionable"
	// RatingExplicit marks explicit content
	RatingExplicit Rating = "explicit"
)

// IsValid checks if the rating is one Gelbooru defines
func (r Rating) IsValid() bool {
	switch r {
	case RatingGeneral, RatingSensitive, RatingQuestionable, RatingExplicit:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects ratings outside the known set. The error is a
// *json.UnmarshalTypeError so encoding/json fills in the field name.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !Rating(s).IsValid() {
		return &json.UnmarshalTypeError{
			Value: fmt.Sprintf("rating %q", s),
			Type:  reflect.TypeOf(Rating("")),
		}
	}
	*r = Rating(s)
	return nil
}

// createdAtLayout is the format of Post.CreatedAt, e.g.
// "Sat Oct 19 10:24:01 -0500 2024"
const createdAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Post represents a post as returned by gelbooru.com. Fields the API may
// leave out are pointers.
type Post struct {
	ID            int64   `json:"id"`
	CreatedAt     string  `json:"created_at"`
	Score         *int64  `json:"score,omitempty"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MD5           string  `json:"md5"`
	Directory     string  `json:"directory"`
	Image         string  `json:"image"`
	Rating        Rating  `json:"rating"`
	Source        string  `json:"source"`
	Change        *int64  `json:"change,omitempty"`
	Owner         string  `json:"owner"`
	CreatorID     *int64  `json:"creator_id,omitempty"`
	ParentID      *int64  `json:"parent_id,omitempty"`
	Sample        *int    `json:"sample,omitempty"`
	PreviewWidth  *int    `json:"preview_width,omitempty"`
	PreviewHeight *int    `json:"preview_height,omitempty"`
	Tags          string  `json:"tags"`
	Title         string  `json:"title"`
	HasNotes      *string `json:"has_notes,omitempty"`
	HasComments   *string `json:"has_comments,omitempty"`
	FileURL       string  `json:"file_url"`
	PreviewURL    string  `json:"preview_url"`
	SampleURL     *string `json:"sample_url,omitempty"`
	SampleWidth   *int    `json:"sample_width,omitempty"`
	SampleHeight  *int    `json:"sample_height,omitempty"`
	Status        string  `json:"status"`
	PostLocked    *int    `json:"post_locked,omitempty"`
	HasChildren   string  `json:"has_children"`
}

var postRequiredFields = []string{
	"id",
	"created_at",
	"width",
	"height",
	"md5",
	"directory",
	"image",
	"rating",
	"owner",
	"tags",
	"file_url",
	"title",
	"source",
	"status",
	"preview_url",
	"has_children",
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

// HasParent checks if the post belongs to a parent post. Gelbooru reports
// no parent as 0.
func (p *Post) HasParent() bool {
	return p.ParentID != nil && *p.ParentID != 0
}

// HasSample checks if a downscaled sample exists
func (p *Post) HasSample() bool {
	return p.Sample != nil && *p.Sample != 0
}

// CreatedTime parses CreatedAt
func (p *Post) CreatedTime() (time.Time, error) {
	t, err := time.Parse(createdAtLayout, p.CreatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse created_at %q: %w", p.CreatedAt, err)
	}
	return t, nil
}

// Attributes is the pagination metadata of a listing
type Attributes struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// UnmarshalJSON rejects attributes missing a field
func (a *Attributes) UnmarshalJSON(data []byte) error {
	if err := request.RequireFields(data, "limit", "offset", "count"); err != nil {
		return err
	}
	type alias Attributes
	return json.Unmarshal(data, (*alias)(a))
}

// Page returns the zero-based page index the listing starts at
func (a *Attributes) Page() int {
	if a.Limit <= 0 {
		return 0
	}
	return a.Offset / a.Limit
}

// Pages returns the number of pages needed to list every matching post
func (a *Attributes) Pages() int {
	if a.Limit <= 0 {
		return 0
	}
	return (a.Count + a.Limit - 1) / a.Limit
}

// Page is one listing response: its posts and pagination metadata
type Page struct {
	Posts      []Post
	Attributes Attributes
}

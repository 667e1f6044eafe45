package boosty

import (
	"encoding/json"
	"time"

	"github.com/s0up4200/imgdl/request"
)

// CurrencyPrices holds the price of a paid post in two currencies
type CurrencyPrices struct {
	RUB float64 `json:"RUB"`
	USD float64 `json:"USD"`
}

// UnmarshalJSON rejects price objects missing either currency
func (c *CurrencyPrices) UnmarshalJSON(data []byte) error {
	if err := request.RequireFields(data, "RUB", "USD"); err != nil {
		return err
	}
	type alias CurrencyPrices
	return json.Unmarshal(data, (*alias)(c))
}

// Teaser is a preview fragment shown before the paywall
type Teaser struct {
	Type      string  `json:"type"`
	Width     *int    `json:"width,omitempty"`
	Height    *int    `json:"height,omitempty"`
	Rendition *string `json:"rendition,omitempty"`
	URL       *string `json:"url,omitempty"`
	ID        *string `json:"id,omitempty"`
}

// UnmarshalJSON requires the fragment type
func (t *Teaser) UnmarshalJSON(data []byte) error {
	if err := request.RequireFields(data, "type"); err != nil {
		return err
	}
	type alias Teaser
	return json.Unmarshal(data, (*alias)(t))
}

// Data is a full-content fragment, only returned to authorized subscribers
type Data struct {
	Type      string  `json:"type"`
	Width     *int    `json:"width,omitempty"`
	Height    *int    `json:"height,omitempty"`
	Rendition *string `json:"rendition,omitempty"`
	URL       *string `json:"url,omitempty"`
	ID        *string `json:"id,omitempty"`
}

// UnmarshalJSON requires the fragment type
func (d *Data) UnmarshalJSON(data []byte) error {
	if err := request.RequireFields(data, "type"); err != nil {
		return err
	}
	type alias Data
	return json.Unmarshal(data, (*alias)(d))
}

// Post represents a post on a Boosty blog. Timestamps are unix seconds.
// Data is nil when the API left it out, which is the case for paid posts
// fetched without a subscription.
type Post struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	CreatedAt        int64          `json:"createdAt"`
	UpdatedAt        *int64         `json:"updatedAt"`
	PublishTime      int64          `json:"publishTime"`
	Price            int64          `json:"price"`
	CurrencyPrices   CurrencyPrices `json:"currencyPrices"`
	Teaser           []Teaser       `json:"teaser"`
	Data             []Data         `json:"data"`
	ShowViewsCounter bool           `json:"showViewsCounter"`
}

var postRequiredFields = []string{
	"id",
	"title",
	"createdAt",
	"publishTime",
	"price",
	"currencyPrices",
	"teaser",
	"showViewsCounter",
}

// UnmarshalJSON rejects posts missing a required field
func (p *Post) UnmarshalJSON(data []byte) error {
	if err := request.RequireFields(data, postRequiredFields...); err != nil {
		return err
	}
	type alias Post
	return json.Unmarshal(data, (*alias)(p))
}

// MarshalJSON writes a nil Teaser as an empty list so the output decodes again
func (p Post) MarshalJSON() ([]byte, error) {
	type alias Post
	if p.Teaser == nil {
		p.Teaser = []Teaser{}
	}
	return json.Marshal(alias(p))
}

// IsFree checks if the post has no price
func (p *Post) IsFree() bool {
	return p.Price == 0
}

// HasData checks if the paid content was returned
func (p *Post) HasData() bool {
	return p.Data != nil
}

// Created returns the creation time
func (p *Post) Created() time.Time {
	return time.Unix(p.CreatedAt, 0)
}

// Published returns the publish time
func (p *Post) Published() time.Time {
	return time.Unix(p.PublishTime, 0)
}

// Updated returns the update time, if the post was ever updated
func (p *Post) Updated() (time.Time, bool) {
	if p.UpdatedAt == nil {
		return time.Time{}, false
	}
	return time.Unix(*p.UpdatedAt, 0), true
}

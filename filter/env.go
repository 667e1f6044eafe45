package filter

import (
	"slices"
	"strings"

	"github.com/s0up4200/imgdl/booru"
	"github.com/s0up4200/imgdl/boosty"
	"github.com/s0up4200/imgdl/gelbooru"
)

// BoostyEnv exposes a Boosty post to filter expressions.
func BoostyEnv(p boosty.Post) Env {
	types := make([]string, 0, len(p.Teaser)+len(p.Data))
	for _, t := range p.Teaser {
		types = append(types, t.Type)
	}
	for _, d := range p.Data {
		types = append(types, d.Type)
	}

	updated, _ := p.Updated()

	return Env{
		"Post":        p,
		"ID":          p.ID,
		"Title":       p.Title,
		"Price":       p.Price,
		"PriceRUB":    p.CurrencyPrices.RUB,
		"PriceUSD":    p.CurrencyPrices.USD,
		"Free":        p.IsFree(),
		"HasData":     p.HasData(),
		"Created":     p.Created(),
		"Published":   p.Published(),
		"Updated":     updated,
		"TeaserCount": len(p.Teaser),
		"DataCount":   len(p.Data),
		"hasType":     containsFold(types),
	}
}

// GelbooruEnv exposes a Gelbooru post to filter expressions.
// Created is the zero time when created_at cannot be parsed.
func GelbooruEnv(p gelbooru.Post) Env {
	tags := p.TagList()
	created, _ := p.CreatedTime()

	return Env{
		"Post":      p,
		"ID":        p.ID,
		"Tags":      tags,
		"Rating":    string(p.Rating),
		"Score":     deref(p.Score),
		"Width":     p.Width,
		"Height":    p.Height,
		"MD5":       p.MD5,
		"Owner":     p.Owner,
		"Source":    p.Source,
		"Title":     p.Title,
		"FileURL":   p.FileURL,
		"Created":   created,
		"HasParent": p.HasParent(),
		"HasSample": p.HasSample(),
		"hasTag":    containsFold(tags),
	}
}

// BooruEnv exposes a post from a compatible host to filter expressions.
func BooruEnv(p booru.Post) Env {
	tags := p.TagList()

	return Env{
		"Post":      p,
		"ID":        p.ID,
		"Tags":      tags,
		"Rating":    p.Rating,
		"Score":     deref(p.Score),
		"Width":     p.Width,
		"Height":    p.Height,
		"Hash":      p.Hash,
		"Owner":     p.Owner,
		"Source":    p.Source,
		"FileURL":   p.FileURL,
		"HasParent": p.HasParent(),
		"HasSample": p.HasSample(),
		"hasTag":    containsFold(tags),
	}
}

func containsFold(values []string) func(string) bool {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return func(v string) bool {
		return slices.Contains(lowered, strings.ToLower(v))
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

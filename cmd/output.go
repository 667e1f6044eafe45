package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/s0up4200/imgdl/filter"
)

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// applyFilter narrows items with the filter named or written in expression.
// An empty expression keeps every item.
func applyFilter[T any](ctx context.Context, expression string, items []T, env func(T) filter.Env, id func(T) string) ([]T, error) {
	if expression == "" {
		return items, nil
	}

	f, err := filters.Resolve(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	matches, err := filter.Select(ctx, f, items, env, id)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("filter", f.Expression()).
		Int("total", len(items)).
		Int("matched", len(matches)).
		Msg("Applied filter")

	return matches, nil
}

package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SelectOption configures Select
type SelectOption func(*selectConfig)

type selectConfig struct {
	workers   int
	batchSize int
}

// WithWorkers sets how many chunks are evaluated at once
func WithWorkers(workers int) SelectOption {
	return func(c *selectConfig) {
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithBatchSize sets the chunk size for concurrent evaluation
func WithBatchSize(size int) SelectOption {
	return func(c *selectConfig) {
		if size > 0 {
			c.batchSize = size
		}
	}
}

// Select returns the items matching f, preserving input order.
// env builds the expression variables for an item and id names it in errors.
// The first evaluation error aborts the selection.
func Select[T any](ctx context.Context, f *Filter, items []T, env func(T) Env, id func(T) string, opts ...SelectOption) ([]T, error) {
	cfg := selectConfig{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(items) == 0 {
		return []T{}, nil
	}

	if len(items) <= cfg.batchSize {
		return selectChunk(ctx, f, items, env, id)
	}

	chunks := make([][]T, 0, len(items)/cfg.batchSize+1)
	for start := 0; start < len(items); start += cfg.batchSize {
		chunks = append(chunks, items[start:min(start+cfg.batchSize, len(items))])
	}

	results := make([][]T, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)

	for i, chunk := range chunks {
		g.Go(func() error {
			matches, err := selectChunk(gctx, f, chunk, env, id)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]T, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

func selectChunk[T any](ctx context.Context, f *Filter, items []T, env func(T) Env, id func(T) string) ([]T, error) {
	matches := make([]T, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := f.Match(env(item), id(item))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

package lookup

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of resolving one filename.
type Outcome struct {
	Filename string
	Hash     string
	Err      error
}

// ResolveAll resolves every name with at most workers lookups in flight.
// Outcomes are returned in input order. Individual failures are reported in
// their Outcome and never abort the batch; only ctx cancellation stops it early.
func ResolveAll(ctx context.Context, r Resolver, names []string, workers int) []Outcome {
	if workers < 1 {
		workers = 1
	}

	out := make([]Outcome, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		out[i].Filename = name
		if err := gctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		g.Go(func() error {
			hash, err := r.Resolve(gctx, name)
			out[i].Hash, out[i].Err = hash, err
			return nil
		})
	}
	_ = g.Wait()
	return out
}

package async

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item concurrently and returns the results in
// input order. At most limit calls run at once; limit <= 0 means no limit.
//
// Every item is processed even when one fails. If any call fails, the error
// of the lowest failing index is returned, annotated with that index, and
// the results are discarded.
//
// Example:
//
//	envs, err := async.Map(ctx, specs, 0, func(_ context.Context, _ int, s config.ClusterSpec) (envplan.EnvSet, error) {
//	    return envplan.Plan(s, s.VMs, opts)
//	})
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, int, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			results[i], errs[i] = fn(gctx, i, item)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return results, nil
}

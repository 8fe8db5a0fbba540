package mpegps

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ProbeFiles probes each path with at most opts.Concurrency probes in flight.
// Per-file failures are kept on the matching FileResult; the returned count is
// the number of files that probed successfully. Results keep input order.
func ProbeFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, int, error) {
	opts = normalizeOptions(opts)
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := ProbeFile(gctx, path, opts)
			results[i] = FileResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, 0, err
	}

	count := 0
	for _, res := range results {
		if res.Err == nil {
			count++
		}
	}
	return results, count, nil
}

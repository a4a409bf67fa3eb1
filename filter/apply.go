package filter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vegasq/datamunger/table"
)

// minBatchSize keeps small inputs on a single goroutine.
const minBatchSize = 256

// Apply returns the rows matching expr, in input order. Rows are split into
// contiguous batches evaluated concurrently by up to workers goroutines. A
// nil expr matches every row.
func Apply(ctx context.Context, rows []table.Row, expr Expression, workers int) ([]table.Row, error) {
	if expr == nil {
		return rows, nil
	}
	if workers < 1 {
		workers = 1
	}

	batchSize := (len(rows) + workers - 1) / workers
	if batchSize < minBatchSize {
		batchSize = minBatchSize
	}

	batches := make([][]table.Row, 0, workers)
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batches = append(batches, rows[start:end])
	}

	results := make([][]table.Row, len(batches))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		eg.Go(func() error {
			matched, err := applyBatch(egCtx, batch, expr)
			if err != nil {
				return err
			}
			results[i] = matched
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]table.Row, 0)
	for _, matched := range results {
		filtered = append(filtered, matched...)
	}
	return filtered, nil
}

func applyBatch(ctx context.Context, rows []table.Row, expr Expression) ([]table.Row, error) {
	matched := make([]table.Row, 0)
	for i, row := range rows {
		if i%minBatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ok, err := expr.Evaluate(row)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

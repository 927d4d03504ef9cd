package oracle

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/cubeq/pkg/cube"
	"github.com/gitrdm/cubeq/pkg/layout"
)

// Solutions enumerates every sequence in the layout's search space and
// returns the code sequences whose classical effect takes initial to target.
// Results are in lexicographic code order with position 0 most significant.
// The work is split by first symbol, one goroutine each.
func Solutions(ctx context.Context, l *layout.Layout, initial, target [cube.EdgeCount]uint8) ([][]int, error) {
	k, d := l.Size(), l.Depth()
	buckets := make([][][]int, k)

	g, ctx := errgroup.WithContext(ctx)
	for first := 0; first < k; first++ {
		g.Go(func() error {
			codes := make([]int, d)
			codes[0] = first
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				got, err := fold(l, codes, initial)
				if err != nil {
					return err
				}
				if got == target {
					buckets[first] = append(buckets[first], append([]int(nil), codes...))
				}
				if !next(codes[1:], k) {
					return nil
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out [][]int
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out, nil
}

// next advances codes as a base-k counter with the last position least
// significant. It reports false after wrapping past the final value.
func next(codes []int, k int) bool {
	for i := len(codes) - 1; i >= 0; i-- {
		codes[i]++
		if codes[i] < k {
			return true
		}
		codes[i] = 0
	}
	return false
}

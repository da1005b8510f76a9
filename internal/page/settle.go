package page

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/tokenscope/internal/query"
)

// maxSettleRounds bounds Settle. Each round can only unlock the next layer
// of dependent queries (entity and contract, then one listing page).
const maxSettleRounds = 8

// settleConcurrency caps parallel fetches within one round.
const settleConcurrency = 4

// FetchFunc runs one request.
type FetchFunc func(ctx context.Context, req query.Request) Response

// Settle drives c without a UI: it runs reqs concurrently, applies the
// responses in request order, and repeats with whatever the controller asks
// for next until nothing is outstanding. Fetch failures are recorded in the
// controller; only cancellation is returned as an error.
func Settle(ctx context.Context, c *Controller, fetch FetchFunc, reqs []query.Request) error {
	for round := 0; len(reqs) > 0; round++ {
		if round >= maxSettleRounds {
			return fmt.Errorf("page did not settle after %d rounds", maxSettleRounds)
		}

		responses := make([]Response, len(reqs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(settleConcurrency)
		for i, req := range reqs {
			g.Go(func() error {
				responses[i] = fetch(gctx, req)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var next []query.Request
		for _, resp := range responses {
			next = append(next, c.Apply(resp)...)
		}
		reqs = next
	}
	return nil
}

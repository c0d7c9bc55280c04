package search

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Collect resolves every task of c concurrently, at most limit at a time
// (limit <= 0 means unbounded), and applies the completions one by one on
// the calling goroutine. Cancelling ctx cancels the cycle.
func (o *Orchestrator) Collect(ctx context.Context, c *Cycle, limit int) error {
	tasks := c.Tasks()
	if len(tasks) == 0 {
		return ctx.Err()
	}

	stop := context.AfterFunc(ctx, c.Cancel)
	defer stop()

	completions := make(chan Completion, len(tasks))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	go func() {
		for _, t := range tasks {
			t := t
			g.Go(func() error {
				completions <- t.Run()
				return nil
			})
		}
		_ = g.Wait()
		close(completions)
	}()

	for comp := range completions {
		o.Apply(comp)
	}
	return ctx.Err()
}

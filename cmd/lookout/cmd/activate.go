package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lookout/internal/actions"
	"lookout/internal/ui/results"
)

func activateRow(ctx context.Context, cmd *cobra.Command, opts *rootOptions, list *results.List, row int) error {
	items := list.Items()
	if row > len(items) {
		return fmt.Errorf("row %d out of range, %d results", row, len(items))
	}
	item := items[row-1]
	if item.Pending {
		return fmt.Errorf("row %d has not resolved", row)
	}

	sp, rec := spawner(opts)
	outcome, err := actions.NewExecutor(sp).Execute(ctx, item.Attributes)
	if err != nil {
		return err
	}
	if outcome.Output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), outcome.Output)
	}
	if rec != nil {
		printCalls(cmd, rec)
	}
	return nil
}

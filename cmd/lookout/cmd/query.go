package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lookout/internal/search"
	"lookout/internal/ui/results"
	"lookout/internal/ui/views"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var (
		timeout  time.Duration
		activate int
	)

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Run one search and print the results",
		Long: `Run a single search cycle without the interface, wait for every
asynchronous launcher to resolve and print the result list.

With --activate N the Nth row (1 based) is activated as if it had been
chosen in the interface.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runQuery(ctx, cmd, opts, strings.Join(args, " "), activate)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "give up on slow launchers after this long")
	cmd.Flags().IntVar(&activate, "activate", 0, "activate the row at this position")
	return cmd
}

func runQuery(ctx context.Context, cmd *cobra.Command, opts *rootOptions, text string, activate int) error {
	s, err := load(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	stderr := cmd.ErrOrStderr()
	for _, e := range s.errs {
		fmt.Fprintf(stderr, "warning: %v\n", e)
	}

	list := results.New()
	o, errs := search.New(search.Deps{
		Launchers: s.launchers,
		Renderer:  list,
		Images:    s.images,
		Bus:       s.bus,
		Options: search.Options{
			ShortcutSlots: s.cfg.Behavior.ShortcutSlots,
			AsyncDelay:    s.cfg.Behavior.Delay(),
		},
	})
	for _, e := range errs {
		fmt.Fprintf(stderr, "warning: %v\n", e)
	}

	if opts.mode != "" {
		o.SwitchMode(modeToken(opts.mode))
	}
	// a leading token behaves as if it had been typed first
	if alias, rest, ok := strings.Cut(text, " "); ok {
		if _, found := o.Registry().Lookup(alias + " "); found {
			o.SwitchMode(alias + " ")
			text = rest
		}
	}
	c := o.Search(text)
	if err := o.Collect(ctx, c, s.cfg.Behavior.AsyncLimit); err != nil {
		return fmt.Errorf("search interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	printRows(out, list, views.NewRenderer(s.cfg.Appearance.ShowIcons, s.cfg.Binds.Modifier), s.cfg.Appearance.Width)

	if activate > 0 {
		return activateRow(ctx, cmd, opts, list, activate)
	}
	return nil
}

func printRows(out io.Writer, list *results.List, r *views.Renderer, width int) {
	styled := isTerminal(out)
	for _, item := range list.Items() {
		if styled {
			fmt.Fprintln(out, r.StyledRow(item, width))
		} else {
			fmt.Fprintln(out, views.PlainRow(item))
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

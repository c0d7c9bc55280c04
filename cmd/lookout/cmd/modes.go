package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lookout/internal/search"
	"lookout/internal/ui/results"
)

func newModesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the launchers that can be searched on their own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			o, errs := search.New(search.Deps{
				Launchers: s.launchers,
				Renderer:  results.New(),
				Bus:       s.bus,
			})
			for _, e := range append(s.errs, errs...) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ALIAS\tLAUNCHER")
			for _, m := range o.Registry().Modes() {
				fmt.Fprintf(tw, "%s\t%s\n", m.Alias, m.Name)
			}
			return tw.Flush()
		},
	}
}

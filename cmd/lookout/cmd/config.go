package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lookout/internal/config"
	"lookout/internal/search"
	"lookout/internal/ui/results"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
	}
	cmd.AddCommand(newConfigInitCmd(opts))
	cmd.AddCommand(newConfigPathCmd(opts))
	cmd.AddCommand(newConfigCheckCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config.toml and launchers.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs := config.NewConfigService(opts.configPath, opts.launchersPath)
			written, err := cs.WriteDefaults(force)
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			if err != nil {
				return err
			}
			if len(written) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "configuration already exists, use --force to overwrite")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where configuration is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cs := config.NewConfigService(opts.configPath, opts.launchersPath)
			fmt.Fprintln(cmd.OutOrStdout(), cs.Path())
			fmt.Fprintln(cmd.OutOrStdout(), cs.LaunchersPath())
			return nil
		},
	}
}

func newConfigCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and report every problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			_, errs := search.New(search.Deps{Launchers: s.launchers, Renderer: results.New(), Bus: s.bus})
			s.errs = append(s.errs, errs...)
			for _, e := range s.errs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			if len(s.errs) > 0 {
				return fmt.Errorf("%d configuration problems", len(s.errs))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d launchers\n", len(s.launchers))
			return nil
		},
	}
}

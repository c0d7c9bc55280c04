// Package cmd provides the CLI commands for lookout.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"lookout/internal/actions"
	"lookout/internal/config"
	lkerrors "lookout/internal/errors"
	"lookout/internal/eventbus"
	"lookout/internal/icons"
	"lookout/internal/launcher"
	"lookout/internal/log"
	"lookout/internal/ui"
)

// Version is set at build time
var Version = "dev"

type rootOptions struct {
	configPath    string
	launchersPath string
	logFile       string
	mode          string
	debug         bool
	dryRun        bool

	loggingCleanup func()
}

// session is everything loaded from disk before a command runs
type session struct {
	cs        config.ConfigService
	cfg       *config.Config
	launchers []*launcher.Launcher
	images    *icons.Loader
	bus       eventbus.EventBus
	errs      []error
}

func (s *session) Close() {
	s.bus.Close()
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// launcher.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "lookout",
		Short: "Keyboard driven application launcher for the terminal",
		Long: `lookout searches a set of configured launchers (applications, web
search engines, a calculator, commands) as you type.

Type an alias followed by a space to search a single launcher, for
example "g golang" to search Google only.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("lookout version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.Dir()+"/config.toml)")
	flags.StringVar(&opts.launchersPath, "launchers", "", "launchers file (default "+config.Dir()+"/launchers.yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default "+log.DefaultPath()+")")
	flags.StringVarP(&opts.mode, "mode", "m", "", "start in the mode of this alias")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print commands instead of running them")

	cmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		if opts.loggingCleanup != nil {
			opts.loggingCleanup()
			opts.loggingCleanup = nil
		}
		return nil
	}

	cmd.AddCommand(newQueryCmd(opts))
	cmd.AddCommand(newModesCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// load reads config and launchers and sets up logging. Problems that
// still leave a usable setup are collected in session.errs.
func load(opts *rootOptions) (*session, error) {
	bus := eventbus.New()
	cs := config.NewConfigServiceWithBus(opts.configPath, opts.launchersPath, bus)
	s := &session{cs: cs, bus: bus}

	cfg, err := cs.Load()
	if err != nil {
		s.errs = append(s.errs, unwrapJoined(err)...)
	}
	s.cfg = cfg

	level := cfg.Debug.LogLevel
	if opts.debug {
		level = "debug"
	}
	cleanup, err := log.Setup(log.Config{Level: level, FilePath: opts.logFile})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	opts.loggingCleanup = cleanup

	launchers, errs := cs.LoadLaunchers()
	s.launchers = launchers
	s.errs = append(s.errs, errs...)

	images, err := icons.NewLoader(cfg.Appearance.IconPaths, 0)
	if err != nil {
		s.errs = append(s.errs, err)
	}
	s.images = images

	logger := log.WithComponent("cmd")
	logger.Info("configuration loaded",
		slog.String("config", cs.Path()),
		slog.String("launchers", cs.LaunchersPath()),
		slog.Int("count", len(launchers)),
		slog.Any("icon_paths", images.Paths()))
	for _, e := range s.errs {
		logger.Warn("configuration problem",
			slog.String("kind", string(lkerrors.KindOf(e))), slog.Any("error", e))
	}
	return s, nil
}

func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func spawner(opts *rootOptions) (actions.Spawner, *actions.Recorder) {
	if !opts.dryRun {
		return nil, nil
	}
	rec := &actions.Recorder{}
	return rec, rec
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	s, err := load(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	sp, rec := spawner(opts)
	m := ui.NewModel(ui.Options{
		Config:        s.cfg,
		Launchers:     s.launchers,
		Images:        s.images,
		Bus:           s.bus,
		Executor:      actions.NewExecutor(sp),
		StartupErrors: s.errs,
		InitialMode:   modeToken(opts.mode),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui: %w", err)
	}

	out := cmd.OutOrStdout()
	if o := m.Output(); o != "" {
		fmt.Fprintln(out, o)
	}
	if rec != nil {
		printCalls(cmd, rec)
	}
	return nil
}

func printCalls(cmd *cobra.Command, rec *actions.Recorder) {
	for _, call := range rec.Calls() {
		fmt.Fprintf(cmd.OutOrStdout(), "would run: %s\n", strings.Join(call, " "))
	}
}

// modeToken accepts an alias with or without the trailing space
func modeToken(alias string) string {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return ""
	}
	return alias + " "
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	lkerrors "lookout/internal/errors"
	"lookout/internal/eventbus"
	"lookout/internal/launcher"
)

type launchersDoc struct {
	Launchers []launcherEntry `yaml:"launchers"`
}

type launcherEntry struct {
	Name     string       `yaml:"name"`
	Alias    string       `yaml:"alias,omitempty"`
	Type     string       `yaml:"type"`
	Priority int          `yaml:"priority"`
	Async    bool         `yaml:"async,omitempty"`
	Home     bool         `yaml:"home,omitempty"`
	OnlyHome bool         `yaml:"only_home,omitempty"`
	Shortcut *bool        `yaml:"shortcut,omitempty"` // nil means true
	Args     launcherArgs `yaml:"args,omitempty"`
}

type launcherArgs struct {
	Apps   map[string]launcher.AppData `yaml:"apps,omitempty"`
	Engine string                      `yaml:"engine,omitempty"`
	Icon   string                      `yaml:"icon,omitempty"`
	Exec   string                      `yaml:"exec,omitempty"`
	Args   []string                    `yaml:"args,omitempty"`
}

func (e launcherEntry) build() (*launcher.Launcher, error) {
	l := launcher.Launcher{
		Name:     e.Name,
		Alias:    e.Alias,
		Kind:     launcher.Kind(e.Type),
		Priority: e.Priority,
		Async:    e.Async,
		Home:     e.Home,
		OnlyHome: e.OnlyHome,
		Shortcut: e.Shortcut == nil || *e.Shortcut,
		Apps:     e.Args.Apps,
	}
	switch l.Kind {
	case launcher.KindWeb:
		l.Web = &launcher.WebData{Engine: e.Args.Engine, Icon: e.Args.Icon}
	case launcher.KindBulkText:
		l.BulkText = &launcher.BulkTextData{Icon: e.Args.Icon, Exec: e.Args.Exec, Args: e.Args.Args}
	}
	return launcher.New(l)
}

// ParseLaunchers builds launchers from YAML. Invalid entries are skipped
// and reported; a document that does not parse yields no launchers.
func ParseLaunchers(data []byte) ([]*launcher.Launcher, []error) {
	var doc launchersDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []error{lkerrors.Configuration("Invalid Launchers", "failed to parse launchers", err)}
	}

	var (
		out  []*launcher.Launcher
		errs []error
	)
	for i, entry := range doc.Launchers {
		l, err := entry.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("launcher #%d: %w", i+1, err))
			continue
		}
		out = append(out, l)
	}
	return out, errs
}

// LoadLaunchers reads the launchers file. A missing file yields the
// defaults; a file that cannot be read or parsed yields the defaults plus
// the error.
func (cs *configService) LoadLaunchers() ([]*launcher.Launcher, []error) {
	launchers, errs := loadLaunchers(cs.launchersPath)
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Launchers: len(launchers), Errors: len(errs)})
	}
	return launchers, errs
}

func loadLaunchers(path string) ([]*launcher.Launcher, []error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultLaunchers(), nil
	}
	if err != nil {
		return DefaultLaunchers(), []error{lkerrors.Configuration("Unreadable Launchers",
			fmt.Sprintf("failed to read %s", path), err)}
	}
	launchers, errs := ParseLaunchers(data)
	if launchers == nil && len(errs) > 0 {
		return DefaultLaunchers(), errs
	}
	return launchers, errs
}

// DefaultLaunchers returns the built-in launcher set
func DefaultLaunchers() []*launcher.Launcher {
	launchers, errs := ParseLaunchers([]byte(DefaultLaunchersYAML))
	if len(errs) > 0 {
		panic(fmt.Sprintf("default launchers are invalid: %v", errs))
	}
	return launchers
}

// WriteDefaults writes config.toml and launchers.yaml unless they exist
func (cs *configService) WriteDefaults(force bool) ([]string, error) {
	var written []string
	if force || !exists(cs.filePath) {
		if err := cs.SaveToPath(DefaultConfig(), cs.filePath); err != nil {
			return written, err
		}
		written = append(written, cs.filePath)
	}
	if force || !exists(cs.launchersPath) {
		if err := os.MkdirAll(filepath.Dir(cs.launchersPath), 0o755); err != nil {
			return written, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(cs.launchersPath, []byte(DefaultLaunchersYAML), 0o644); err != nil {
			return written, fmt.Errorf("failed to write launchers file: %w", err)
		}
		written = append(written, cs.launchersPath)
	}
	return written, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultLaunchersYAML is written by "lookout config init"
const DefaultLaunchersYAML = `launchers:
  - name: Apps
    type: app_launcher
    priority: 2
    home: true
    shortcut: true
    args:
      apps:
        Files:
          exec: nautilus --new-window
          icon: org.gnome.Nautilus
          search_string: files nautilus folder
        Firefox:
          exec: firefox %u
          icon: firefox
          search_string: firefox browser web
        Terminal:
          exec: foot
          icon: foot
          search_string: terminal shell console

  - name: Calculator
    type: calculation
    priority: 1

  - name: Google
    alias: g
    type: web_launcher
    priority: 3
    async: true
    args:
      engine: google
      icon: google

  - name: DuckDuckGo
    alias: d
    type: web_launcher
    priority: 0
    args:
      engine: duckduckgo
      icon: duckduckgo

  - name: System
    alias: sys
    type: command
    priority: 4
    args:
      apps:
        Lock:
          exec: loginctl lock-session
          search_string: lock screen
        Reboot:
          exec: systemctl reboot
          search_string: reboot restart
        Shutdown:
          exec: systemctl poweroff
          search_string: shutdown power off

  - name: Dictionary
    alias: def
    type: bulk_text
    priority: 0
    args:
      exec: dict
      args: ["{keyword}"]
`

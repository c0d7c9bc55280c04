package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	lkerrors "lookout/internal/errors"
	"lookout/internal/eventbus"
	"lookout/internal/launcher"
)

const (
	configFile    = "config.toml"
	launchersFile = "launchers.yaml"
	maxSlots      = 9
)

// Config represents the application configuration
type Config struct {
	Behavior   Behavior   `toml:"behavior"`
	Appearance Appearance `toml:"appearance"`
	Binds      Binds      `toml:"binds"`
	Debug      Debug      `toml:"debug"`
}

// Behavior controls the search loop
type Behavior struct {
	Animate       bool   `toml:"animate"`
	ShortcutSlots int    `toml:"shortcut_slots"`
	AsyncDelay    string `toml:"async_delay"` // Go duration, "" or "0" disables
	AsyncLimit    int    `toml:"async_limit"` // concurrent resolutions in headless mode, 0 = unbounded
}

// Appearance controls the window
type Appearance struct {
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	IconPaths []string `toml:"icon_paths"`
	ShowIcons bool     `toml:"show_icons"`
}

// Binds holds the configurable key bindings
type Binds struct {
	Prev     []string `toml:"prev"`
	Next     []string `toml:"next"`
	Modifier string   `toml:"modifier"`
}

// Debug holds diagnostics settings
type Debug struct {
	LogLevel string `toml:"log_level"`
}

// Delay parses AsyncDelay; invalid values were rejected by validation
func (b Behavior) Delay() time.Duration {
	d, err := time.ParseDuration(b.AsyncDelay)
	if err != nil {
		return 0
	}
	return d
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	LoadLaunchers() ([]*launcher.Launcher, []error)
	WriteDefaults(force bool) ([]string, error)
	Path() string
	LaunchersPath() string
}

// configService is the concrete implementation
type configService struct {
	bus           eventbus.EventBus
	filePath      string
	launchersPath string
}

// Dir returns the default configuration directory
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "lookout")
}

// NewConfigService creates a config service. Empty paths use the files in
// Dir().
func NewConfigService(configPath, launchersPath string) ConfigService {
	if configPath == "" {
		configPath = filepath.Join(Dir(), configFile)
	}
	if launchersPath == "" {
		launchersPath = filepath.Join(Dir(), launchersFile)
	}
	return &configService{
		filePath:      configPath,
		launchersPath: launchersPath,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(configPath, launchersPath string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(configPath, launchersPath).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string          { return cs.filePath }
func (cs *configService) LaunchersPath() string { return cs.launchersPath }

// Load reads config.toml. A missing file yields the defaults. On any other
// failure the defaults are returned together with the error.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	cfg, err := cs.LoadFromPath(cs.filePath)
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return cfg, err
}

// Save writes the configuration to the service's path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. A file that
// cannot be parsed yields nil; a parsed file with bad values yields the
// corrected config plus the validation errors.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lkerrors.Configuration("Unreadable Config",
			fmt.Sprintf("failed to read %s", path), err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, lkerrors.Configuration("Invalid Config",
			fmt.Sprintf("failed to parse %s", path), err)
	}
	return cfg, cfg.Validate()
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate resets out-of-range values to their defaults and reports each
func (c *Config) Validate() error {
	def := DefaultConfig()
	var errs []error

	if c.Behavior.ShortcutSlots < 1 || c.Behavior.ShortcutSlots > maxSlots {
		errs = append(errs, lkerrors.Configuration("Invalid Shortcut Slots",
			fmt.Sprintf("shortcut_slots must be between 1 and %d, got %d", maxSlots, c.Behavior.ShortcutSlots), nil))
		c.Behavior.ShortcutSlots = def.Behavior.ShortcutSlots
	}
	if c.Behavior.AsyncDelay != "" {
		if d, err := time.ParseDuration(c.Behavior.AsyncDelay); err != nil || d < 0 {
			errs = append(errs, lkerrors.Configuration("Invalid Async Delay",
				fmt.Sprintf("async_delay %q is not a duration", c.Behavior.AsyncDelay), err))
			c.Behavior.AsyncDelay = def.Behavior.AsyncDelay
		}
	}
	if c.Behavior.AsyncLimit < 0 {
		errs = append(errs, lkerrors.Configuration("Invalid Async Limit",
			fmt.Sprintf("async_limit must not be negative, got %d", c.Behavior.AsyncLimit), nil))
		c.Behavior.AsyncLimit = def.Behavior.AsyncLimit
	}
	if c.Appearance.Width <= 0 || c.Appearance.Height <= 0 {
		errs = append(errs, lkerrors.Configuration("Invalid Size",
			fmt.Sprintf("window size %dx%d is not positive", c.Appearance.Width, c.Appearance.Height), nil))
		c.Appearance.Width, c.Appearance.Height = def.Appearance.Width, def.Appearance.Height
	}
	if len(c.Binds.Prev) == 0 {
		c.Binds.Prev = def.Binds.Prev
	}
	if len(c.Binds.Next) == 0 {
		c.Binds.Next = def.Binds.Next
	}
	switch c.Binds.Modifier {
	case "ctrl", "alt":
	default:
		errs = append(errs, lkerrors.Configuration("Invalid Modifier",
			fmt.Sprintf("modifier must be ctrl or alt, got %q", c.Binds.Modifier), nil))
		c.Binds.Modifier = def.Binds.Modifier
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Behavior: Behavior{
			Animate:       true,
			ShortcutSlots: 5,
			AsyncDelay:    "0s",
			AsyncLimit:    4,
		},
		Appearance: Appearance{
			Width:     80,
			Height:    20,
			IconPaths: []string{"~/.local/share/icons", "/usr/share/icons/hicolor/48x48/apps", "/usr/share/pixmaps"},
			ShowIcons: true,
		},
		Binds: Binds{
			Prev:     []string{"up", "ctrl+p", "shift+tab"},
			Next:     []string{"down", "ctrl+n", "tab"},
			Modifier: "alt",
		},
		Debug: Debug{LogLevel: "info"},
	}
}

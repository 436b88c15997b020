package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"folio/internal/application"
)

const DefaultRoot = "~/notes"

const defaultConfigTmpl = `# Folio configuration file.

# Notebook directory. Overridden by $FOLIO_ROOT.
root = %q

# Optional YAML or JSON outline file to browse instead of a directory.
outline = ""

# Where UI state is kept: "file" (one JSON file per key) or "sqlite".
state_backend = "file"

# Directory for UI state. Empty means $XDG_STATE_HOME/folio.
state_dir = ""

# When to collapse folders by default: "if-empty" (only when nothing is
# stored) or "always" (on every start).
collapse_defaults = "if-empty"

# Skip fold animations and smooth scrolling. Overridden by
# $FOLIO_REDUCED_MOTION.
reduced_motion = false

# Fold animation length, in frames, and the time between frames.
animation_frames = 8
frame_interval_ms = 16

# Tree pane scrollbar: "custom" draws a bar, "native" scrolls without one.
scrollbar = "custom"

# Markdown style for articles: "auto", "dark", "light" or "notty".
markdown_style = "auto"

# Editor command for opening notes. Empty means $VISUAL, then $EDITOR.
editor = ""

# Log level (debug, info, warn, error) and file. Empty log_file means
# $XDG_STATE_HOME/folio/folio.log.
log_level = "warn"
log_file = ""
`

// Config is the contents of folio.toml
type Config struct {
	Root             string `toml:"root"`
	Outline          string `toml:"outline"`
	StateBackend     string `toml:"state_backend"`
	StateDir         string `toml:"state_dir"`
	CollapseDefaults string `toml:"collapse_defaults"`
	ReducedMotion    bool   `toml:"reduced_motion"`
	AnimationFrames  int    `toml:"animation_frames"`
	FrameIntervalMS  int    `toml:"frame_interval_ms"`
	Scrollbar        string `toml:"scrollbar"`
	MarkdownStyle    string `toml:"markdown_style"`
	Editor           string `toml:"editor"`
	LogLevel         string `toml:"log_level"`
	LogFile          string `toml:"log_file"`
}

// Default returns the configuration used when the file sets nothing
func Default() Config {
	return Config{
		Root:             DefaultRoot,
		StateBackend:     "file",
		CollapseDefaults: "if-empty",
		AnimationFrames:  8,
		FrameIntervalMS:  16,
		Scrollbar:        "custom",
		MarkdownStyle:    "auto",
		LogLevel:         "warn",
	}
}

// RootPath returns the notebook path from the FOLIO_ROOT env var,
// falling back to DefaultRoot.
func RootPath() string {
	if env := os.Getenv("FOLIO_ROOT"); env != "" {
		return env
	}
	return DefaultRoot
}

// Dir returns the folio configuration directory
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "folio"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "folio"), nil
}

// Path returns the config file path. FOLIO_CONFIG overrides it.
func Path() string {
	if env := os.Getenv("FOLIO_CONFIG"); env != "" {
		return env
	}
	dir, _ := Dir()
	return filepath.Join(dir, "folio.toml")
}

// StateHome returns $XDG_STATE_HOME/folio
func StateHome() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "folio")
}

// Load reads the config at path, creating a default file if none
// exists, then applies environment overrides and validates.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return Config{}, fmt.Errorf("could not create config directory: %w", err)
		}
		contents := fmt.Sprintf(defaultConfigTmpl, DefaultRoot)
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			return Config{}, fmt.Errorf("could not write default config: %w", err)
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.expand(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if env := os.Getenv("FOLIO_ROOT"); env != "" {
		c.Root = env
	}
	if env := os.Getenv("FOLIO_REDUCED_MOTION"); env != "" {
		on, err := strconv.ParseBool(env)
		if err != nil {
			return &application.ValidationError{
				Field:   "FOLIO_REDUCED_MOTION",
				Message: fmt.Sprintf("expected a boolean, got: %s", env),
			}
		}
		c.ReducedMotion = on
	}
	return nil
}

// expand resolves ~ in every path setting
func (c *Config) expand() error {
	for _, p := range []*string{&c.Root, &c.Outline, &c.StateDir, &c.LogFile} {
		if !strings.HasPrefix(*p, "~") {
			continue
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not determine home directory: %w", err)
		}
		*p = filepath.Join(home, (*p)[1:])
	}
	return nil
}

// Validate checks enumerated and numeric settings
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}

	switch c.StateBackend {
	case "file", "sqlite":
	default:
		return &application.ValidationError{
			Field:   "state_backend",
			Message: fmt.Sprintf("expected file or sqlite, got: %s", c.StateBackend),
		}
	}

	switch c.Scrollbar {
	case "custom", "native":
	default:
		return &application.ValidationError{
			Field:   "scrollbar",
			Message: fmt.Sprintf("expected custom or native, got: %s", c.Scrollbar),
		}
	}

	switch c.MarkdownStyle {
	case "auto", "dark", "light", "notty":
	default:
		return &application.ValidationError{
			Field:   "markdown_style",
			Message: fmt.Sprintf("expected auto, dark, light or notty, got: %s", c.MarkdownStyle),
		}
	}

	if c.AnimationFrames < 0 {
		return &application.ValidationError{Field: "animation_frames", Message: "must not be negative"}
	}
	if c.FrameIntervalMS <= 0 {
		return &application.ValidationError{Field: "frame_interval_ms", Message: "must be positive"}
	}
	return nil
}

// Policy returns the parsed collapse_defaults setting
func (c Config) Policy() (application.DefaultsPolicy, error) {
	return application.ParseDefaultsPolicy(c.CollapseDefaults)
}

// FrameInterval returns the time between animation frames
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// StatePath returns the directory for UI state
func (c Config) StatePath() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return StateHome()
}

// LogPath returns the TUI log file
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(StateHome(), "folio.log")
}

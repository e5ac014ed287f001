// Package config resolves task-cli settings from defaults, TOML files,
// the environment, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/task-cli/internal/store/jsonstore"
	"github.com/idilsaglam/task-cli/internal/tasks"
	"github.com/idilsaglam/task-cli/internal/ui"
)

const (
	// ProjectFileName is looked up in the working directory.
	ProjectFileName = ".task-cli.toml"
	// UserFileName is looked up under the user config dir.
	UserFileName = "config.toml"
	appDir       = "task-cli"

	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
	DefaultColor    = "auto"
)

// Config is the resolved configuration.
type Config struct {
	File       string `toml:"file"`
	Theme      string `toml:"theme"`
	LogLevel   string `toml:"log_level"`
	IDStrategy string `toml:"id_strategy"`
	Validate   bool   `toml:"validate"`
	Color      string `toml:"color"` // auto | always | never

	// Sources lists the config files applied, in order.
	Sources []string `toml:"-"`
}

// Options carries flag values and lookup roots into Load.
// Empty strings mean "not set".
type Options struct {
	ConfigPath string // replaces the user and project files when set
	WorkDir    string // defaults to the process working directory
	File       string
	Theme      string
	LogLevel   string
	NoColor    bool
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		File:       jsonstore.DefaultFileName,
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
		IDStrategy: string(tasks.IDByLength),
		Validate:   true,
		Color:      DefaultColor,
	}
}

// Load applies, in order: defaults, the user file, the project file (or
// the explicit --config file instead of both), environment, and flags.
func Load(opts Options) (*Config, error) {
	cfg := Defaults()

	if opts.ConfigPath != "" {
		if err := cfg.decodeFile(expandPath(opts.ConfigPath)); err != nil {
			return nil, err
		}
	} else {
		if p := userConfigFile(); p != "" {
			if err := cfg.decodeFile(p); err != nil {
				return nil, err
			}
		}
		if p := projectConfigFile(opts.WorkDir); p != "" {
			if err := cfg.decodeFile(p); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	cfg.applyFlags(opts)
	cfg.File = expandPath(cfg.File)

	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Check rejects unknown enum values.
func (c *Config) Check() error {
	var errs []error
	if !ui.ValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("theme %q: want one of %s", c.Theme, strings.Join(ui.ThemeNames(), ", ")))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}
	if !tasks.IDStrategy(c.IDStrategy).Valid() {
		errs = append(errs, fmt.Errorf("id_strategy %q: want %s or %s", c.IDStrategy, tasks.IDByLength, tasks.IDByMax))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("color %q: want auto, always or never", c.Color))
	}
	if strings.TrimSpace(c.File) == "" {
		errs = append(errs, errors.New("file: must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) decodeFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	c.Sources = append(c.Sources, path)
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TASK_CLI_FILE"); v != "" {
		c.File = v
	}
	if v := os.Getenv("TASK_CLI_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("TASK_CLI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TASK_CLI_ID_STRATEGY"); v != "" {
		c.IDStrategy = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Color = "never"
	}
}

func (c *Config) applyFlags(opts Options) {
	if opts.File != "" {
		c.File = opts.File
	}
	if opts.Theme != "" {
		c.Theme = opts.Theme
	}
	if opts.LogLevel != "" {
		c.LogLevel = opts.LogLevel
	}
	if opts.NoColor {
		c.Color = "never"
	}
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(dir, appDir, UserFileName))
}

func projectConfigFile(workDir string) string {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		workDir = wd
	}
	return existing(filepath.Join(workDir, ProjectFileName))
}

func existing(p string) string {
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return p
	}
	return ""
}

// expandPath expands a leading ~/ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}

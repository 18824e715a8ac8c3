// Package config loads and validates the bundle configuration file.
//
// Configuration is YAML with environment variable expansion; a HELPBUNDLER_*
// environment override exists for every scalar field so CI can adjust a
// checked-in config without editing it.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// DefaultConfigFile is the config file name looked up when none is given.
const DefaultConfigFile = "helpbundler.yaml"

// Config is the root configuration for one bundle.
type Config struct {
	Bundle  BundleConfig  `yaml:"bundle"`
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Scan    ScanConfig    `yaml:"scan"`
	Theme   ThemeConfig   `yaml:"theme"`
	History HistoryConfig `yaml:"history"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// BundleConfig identifies the bundle being built. The identifier is the
// stable machine-readable bundle id carried into the manifest record; it
// defaults to the name.
type BundleConfig struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	Title      string `yaml:"title"`
	BaseURL    string `yaml:"base_url"`
}

// SourceConfig locates the content. Either a local content root or a git URL
// must be set; with a git URL, ContentRoot is resolved inside the clone.
type SourceConfig struct {
	ContentRoot string    `yaml:"content_root"`
	AssetsRoot  string    `yaml:"assets_root"`
	Git         GitSource `yaml:"git"`
}

// GitSource configures an optional remote content source.
type GitSource struct {
	URL       string `yaml:"url"`
	Ref       string `yaml:"ref"`
	Subdir    string `yaml:"subdir"`
	Username  string `yaml:"username"`
	Token     string `yaml:"token"`
	Workspace string `yaml:"workspace"`
}

// OutputConfig controls where the bundle is written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// ScanConfig controls content discovery.
type ScanConfig struct {
	Provider      string `yaml:"provider"`
	IncludeDrafts bool   `yaml:"include_drafts"`
	Workers       int    `yaml:"workers"`
}

// ThemeConfig selects the bundle stylesheet.
type ThemeConfig struct {
	Name       string `yaml:"name"`
	Stylesheet string `yaml:"stylesheet"` // required when name is "custom"
}

// HistoryConfig controls build history persistence.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// MetricsConfig controls the optional Prometheus endpoint in watch mode.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. ":9090"; empty disables
}

// Load reads, expands, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("failed to read configuration file").
			WithContext("path", path).Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration file").
			WithContext("path", path).Fatal().Build()
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bundle.Identifier == "" {
		c.Bundle.Identifier = c.Bundle.Name
	}
	if c.Bundle.Title == "" {
		c.Bundle.Title = c.Bundle.Name
	}
	if c.Bundle.Title == "" {
		c.Bundle.Title = "Documentation"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./bundle"
	}
	if c.Scan.Provider == "" {
		c.Scan.Provider = "hugo"
	}
	if c.Scan.Workers <= 0 {
		c.Scan.Workers = 4
	}
	if c.Theme.Name == "" {
		c.Theme.Name = "default"
	}
	if c.Source.Git.Workspace == "" {
		c.Source.Git.Workspace = ".helpbundler/sources"
	}
	if c.History.Enabled && c.History.Path == "" {
		c.History.Path = ".helpbundler/history.db"
	}
	if c.Watch.DebounceMS <= 0 {
		c.Watch.DebounceMS = 500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate checks the config for contradictions a build cannot recover from.
func (c *Config) Validate() error {
	if c.Bundle.Name == "" {
		return errors.ConfigError("bundle.name is required").Build()
	}
	if strings.ContainsAny(c.Bundle.Identifier, " \t/") {
		return errors.ConfigError("bundle.identifier must not contain whitespace or slashes").
			WithContext("identifier", c.Bundle.Identifier).Build()
	}
	if c.Source.ContentRoot == "" && c.Source.Git.URL == "" {
		return errors.ConfigError("either source.content_root or source.git.url is required").Build()
	}
	if c.Source.ContentRoot != "" && c.Source.Git.URL != "" {
		return errors.ConfigError("source.content_root and source.git.url are mutually exclusive").Build()
	}
	if c.Theme.Name == "custom" && c.Theme.Stylesheet == "" {
		return errors.ConfigError("theme.stylesheet is required for the custom theme").Build()
	}
	if c.Theme.Name != "custom" && c.Theme.Stylesheet != "" {
		return errors.ConfigError("theme.stylesheet only applies to the custom theme").
			WithContext("theme", c.Theme.Name).Build()
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.ConfigError("logging.level must be one of debug, info, warn, error").
			WithContext("level", c.Logging.Level).Build()
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.ConfigError("logging.format must be text or json").
			WithContext("format", c.Logging.Format).Build()
	}
	return nil
}

// Package config provides configuration management for the newsroom CLI.
//
// Configuration is layered: built-in defaults, then newsroom.yaml, then
// NEWSROOM_* environment variables, then explicitly-set CLI flags. Paths
// from the config file are resolved relative to the project root, which
// is found by searching upward for newsroom.yaml.
package config

// Config holds all CLI configuration options.
type Config struct {
	NewsDir      string         `koanf:"news_dir"`
	Changelog    string         `koanf:"changelog"`
	Manifest     string         `koanf:"manifest"`
	Repository   string         `koanf:"repository"`
	OutputFormat string         `koanf:"output"`
	Verbose      bool           `koanf:"verbose"`
	NoColor      bool           `koanf:"no_color"`
	History      *HistoryConfig `koanf:"history"`
	Serve        *ServeConfig   `koanf:"serve"`
	Lint         *LintConfig    `koanf:"lint"`

	// ProjectRoot is derived at load time, never read from the file.
	ProjectRoot string `koanf:"-"`
}

// HistoryConfig holds configuration for the release history store.
type HistoryConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
	DSN     string `koanf:"dsn"`
}

// ServeConfig holds configuration for the preview server.
type ServeConfig struct {
	Port  int  `koanf:"port"`
	Watch bool `koanf:"watch"`
}

// LintConfig holds lint configuration as written in newsroom.yaml.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`

	// Rules contains rule-specific options
	Rules map[string]RuleOptions `koanf:"rules"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// Default configuration values.
const (
	DefaultNewsDir        = "news"
	DefaultChangelog      = "CHANGELOG.md"
	DefaultManifest       = "package.json"
	DefaultOutput         = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultHistoryBackend = "sqlite"
	DefaultHistoryPath    = ".newsroom/history.db"
	DefaultServePort      = 8764
)

// DefaultHistoryConfig returns a HistoryConfig with default values.
func DefaultHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Backend: DefaultHistoryBackend,
		Path:    DefaultHistoryPath,
	}
}

// DefaultServeConfig returns a ServeConfig with default values.
func DefaultServeConfig() *ServeConfig {
	return &ServeConfig{
		Port:  DefaultServePort,
		Watch: true,
	}
}

// GetHistoryConfig returns the history config with defaults applied for
// any unset values.
func (c *Config) GetHistoryConfig() *HistoryConfig {
	if c.History == nil {
		return DefaultHistoryConfig()
	}
	h := c.History
	if h.Backend == "" {
		h.Backend = DefaultHistoryBackend
	}
	if h.Backend == "sqlite" && h.Path == "" {
		h.Path = DefaultHistoryPath
	}
	return h
}

// GetServeConfig returns the serve config with defaults applied for any
// unset values.
func (c *Config) GetServeConfig() *ServeConfig {
	if c.Serve == nil {
		return DefaultServeConfig()
	}
	s := c.Serve
	if s.Port == 0 {
		s.Port = DefaultServePort
	}
	return s
}

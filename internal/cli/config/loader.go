package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
// This key is shared with root.go via both using the same type.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// findConfigFile finds the config file to use.
// Priority: explicit path > newsroom.yaml > newsroom.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("newsroom.yaml"); err == nil {
		return "newsroom.yaml"
	}
	if _, err := os.Stat("newsroom.yml"); err == nil {
		return "newsroom.yml"
	}
	return ""
}

// configExistsIn checks if a newsroom config file exists in the directory.
func configExistsIn(dir string) bool {
	for _, name := range []string{"newsroom.yaml", "newsroom.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// findProjectRootUpward searches upward from startDir for a newsroom config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findProjectRootUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// inferProjectRoot determines the project root from CLI flags and filesystem.
// Priority:
//  1. Infer from --news-dir (parent if contains config or named "news")
//  2. Search upward from CWD for newsroom.yaml
//  3. Current working directory
func inferProjectRoot(flags *pflag.FlagSet) string {
	// 1. Infer from --news-dir
	if flags != nil {
		if newsDir, _ := flags.GetString("news-dir"); newsDir != "" && flags.Changed("news-dir") {
			absNews, err := filepath.Abs(newsDir)
			if err == nil {
				parent := filepath.Dir(absNews)

				// If parent has a config file, it's the project root
				if configExistsIn(parent) {
					return parent
				}

				// If folder is named "news", assume parent is root
				if filepath.Base(absNews) == "news" {
					return parent
				}
			}
		}
	}

	// 2. Search upward from CWD for newsroom.yaml
	if cwd, err := os.Getwd(); err == nil {
		if root := findProjectRootUpward(cwd); root != "" {
			return root
		}
	}

	// 3. Default to CWD
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return cwd
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// Infer project root from flags before loading config
	// This enables the "anchor pattern" where --news-dir testdata/news
	// implies project root is testdata/
	projectRoot := inferProjectRoot(flags)

	// Track paths that were explicitly provided as flags (already relative to CWD).
	// These will be converted to absolute paths before the normal resolution step,
	// to prevent double-resolution when project root was inferred from them.
	var flagNewsDir, flagChangelog, flagManifest string
	if flags != nil {
		if flags.Changed("news-dir") {
			if v, _ := flags.GetString("news-dir"); v != "" {
				flagNewsDir, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("changelog") {
			if v, _ := flags.GetString("changelog"); v != "" {
				flagChangelog, _ = filepath.Abs(v)
			}
		}
		if flags.Changed("manifest") {
			if v, _ := flags.GetString("manifest"); v != "" {
				flagManifest, _ = filepath.Abs(v)
			}
		}
	}

	// If an explicit config file is provided, use its directory as project root
	// (unless a more specific hint was given via flags)
	if cfgFile != "" && projectRoot == inferProjectRoot(nil) {
		// No flag-based inference happened, use config file's directory
		if absPath, err := filepath.Abs(cfgFile); err == nil {
			projectRoot = filepath.Dir(absPath)
		}
	}

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"news_dir":        DefaultNewsDir,
		"changelog":       DefaultChangelog,
		"manifest":        DefaultManifest,
		"repository":      "",
		"output":          DefaultOutput,
		"verbose":         false,
		"no_color":        false,
		"history.backend": DefaultHistoryBackend,
		"history.path":    DefaultHistoryPath,
		"history.dsn":     "",
		"serve.port":      DefaultServePort,
		"serve.watch":     true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	// Search in project root if no explicit config file provided
	if cfgFile == "" {
		// Look for config in inferred project root
		for _, name := range []string{"newsroom.yaml", "newsroom.yml"} {
			candidate := filepath.Join(projectRoot, name)
			if _, err := os.Stat(candidate); err == nil {
				cfgFile = candidate
				break
			}
		}
	}
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (NEWSROOM_ prefix)
	// Transform: NEWSROOM_NEWS_DIR -> news_dir
	// Double underscore marks nesting: NEWSROOM_HISTORY__BACKEND -> history.backend
	if err := k.Load(env.Provider("NEWSROOM_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "NEWSROOM_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Set project root and resolve relative paths
	// Use project root as base for all path resolution (not config file directory)
	cfg.ProjectRoot = projectRoot

	// For paths explicitly provided via flags, use the pre-computed absolute paths
	// (already computed relative to CWD at flag parse time).
	// For paths from config file or defaults, resolve relative to project root.
	if flagNewsDir != "" {
		cfg.NewsDir = flagNewsDir
	} else {
		cfg.NewsDir = resolvePathRelativeTo(cfg.NewsDir, projectRoot)
	}
	if flagChangelog != "" {
		cfg.Changelog = flagChangelog
	} else {
		cfg.Changelog = resolvePathRelativeTo(cfg.Changelog, projectRoot)
	}
	if flagManifest != "" {
		cfg.Manifest = flagManifest
	} else {
		cfg.Manifest = resolvePathRelativeTo(cfg.Manifest, projectRoot)
	}

	// The history database lives inside the project unless configured with
	// an absolute path. :memory: is passed through for sqlite.
	if cfg.History != nil && cfg.History.Path != "" && cfg.History.Path != ":memory:" {
		cfg.History.Path = resolvePathRelativeTo(cfg.History.Path, projectRoot)
	}

	// Expand environment variables in the DSN so credentials can stay out
	// of the config file.
	if cfg.History != nil {
		cfg.History.DSN = expandEnvVars(cfg.History.DSN)
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	// Match ${VAR} pattern
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR}
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Return original if not found
	})
}

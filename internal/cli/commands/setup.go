package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/leapstack-labs/newsroom/internal/cli/config"
	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/internal/manifest"
	"github.com/leapstack-labs/newsroom/internal/store"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    store.Store
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a history store and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutStore(cmd)

	st, err := openStore(cmd.Context(), cc.Cfg)
	if err != nil {
		return nil, nil, err
	}
	cc.Store = st

	cleanup := func() {
		_ = st.Close()
	}

	return cc, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a history store.
// Useful for commands that don't touch release history.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	newsDir := getEnvOrDefault("NEWSROOM_NEWS_DIR", config.DefaultNewsDir)
	changelog := getEnvOrDefault("NEWSROOM_CHANGELOG", config.DefaultChangelog)
	manifestPath := getEnvOrDefault("NEWSROOM_MANIFEST", config.DefaultManifest)
	repository := os.Getenv("NEWSROOM_REPOSITORY")
	verbose := os.Getenv("NEWSROOM_VERBOSE") == "true"
	outputFormat := os.Getenv("NEWSROOM_OUTPUT")

	return &config.Config{
		NewsDir:      newsDir,
		Changelog:    changelog,
		Manifest:     manifestPath,
		Repository:   repository,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore connects to the configured history backend.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	h := cfg.GetHistoryConfig()
	return store.Open(ctx, store.Config{
		Backend: h.Backend,
		Path:    h.Path,
		DSN:     h.DSN,
	})
}

// resolveRepository returns the repository reference used for issue
// links: an explicit config value wins, then the manifest's repository
// field. Empty means entries render without links.
func resolveRepository(cfg *config.Config) string {
	if cfg.Repository != "" {
		return cfg.Repository
	}
	if m, err := manifest.Load(cfg.Manifest); err == nil {
		return m.Repository.Slug()
	}
	return ""
}

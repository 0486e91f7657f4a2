package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/preview"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	NoWatch   bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local release preview server",
		Long: `Start a local web server previewing the pending release.

The page shows the news entries the next release would ship, grouped by
section, plus recent release history. It reloads itself whenever an
entry file changes.`,
		Example: `  # Start the preview on the default port
  newsroom serve

  # Start on a custom port
  newsroom serve --port 3000

  # Start without auto-opening the browser
  newsroom serve --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8764)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "Disable reloading on entry file changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContextWithoutStore(cmd)
	cfg := cc.Cfg
	r := cc.Renderer

	// Serve config with defaults
	serveCfg := cfg.GetServeConfig()

	// CLI flags override config file
	port := serveCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	watch := serveCfg.Watch
	if opts.NoWatch {
		watch = false
	}

	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	server := preview.NewServer(preview.Config{
		NewsDir:    cfg.NewsDir,
		Repository: resolveRepository(cfg),
		Store:      st,
		Port:       port,
		Watch:      watch,
		Logger:     cc.Logger,
	})

	// Open browser unless suppressed
	if !opts.NoBrowser {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	r.Printf("Serving release preview on http://localhost:%d\n", port)
	r.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}

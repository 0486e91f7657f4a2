package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/cli/output"
)

// VersionInfo describes the build (populated via ldflags).
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display Newsroom version and build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutStore(cmd)
			r := cc.Renderer

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(info)
			}

			r.Printf("newsroom v%s\n", info.Version)
			r.Printf("  commit: %s\n", info.GitCommit)
			r.Printf("  built:  %s\n", info.BuildDate)
			return nil
		},
	}
}

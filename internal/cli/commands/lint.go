package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/cli/config"
	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/internal/manifest"
	"github.com/leapstack-labs/newsroom/pkg/changelog"
	"github.com/leapstack-labs/newsroom/pkg/lint"
	_ "github.com/leapstack-labs/newsroom/pkg/lint/rules" // register lint rules
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Path        string   // File or directory path
	Format      string   // Output format: text, json
	Disable     []string // Rule IDs to disable
	Severity    string   // Minimum severity: error, warning, info, hint
	Rules       []string // Run only specific rules
	SkipProject bool     // Skip project-level rules
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path]",
		Short: "Run lint rules on news entries",
		Long: `Analyze news entries and the news directory layout for issues.

Runs the content, naming, section, and release rules and reports any
violations found. Rules can be configured in newsroom.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the whole project
  newsroom lint

  # Lint one section or entry
  newsroom lint "news/2 Fixes"

  # Output as JSON
  newsroom lint --format json

  # Disable specific rules
  newsroom lint --disable CT01,PS03

  # Only report errors (ignore warnings/hints)
  newsroom lint --severity error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVar(&opts.SkipProject, "skip-project", false, "Skip project-level rules")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cc := NewCommandContextWithoutStore(cmd)
	cfg := cc.Cfg
	r := cc.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	pctx, err := loadProjectContext(cfg)
	if err != nil {
		return err
	}

	// Build lint config from CLI flags + project config
	lintCfg := buildLintConfig(cfg, opts)
	analyzer := lint.NewAnalyzer(lintCfg)

	diags, err := analyzer.Run(cmd.Context(), pctx)
	if err != nil {
		return err
	}

	threshold, _ := lint.ParseSeverity(opts.Severity)
	diags = lint.FilterBySeverity(diags, threshold)
	if opts.Path != "" {
		diags = filterDiagnosticsByPath(diags, opts.Path)
	}

	if renderLintResults(r, diags) {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// loadProjectContext scans the news directory plus the manifest and
// changelog that the release rules inspect.
func loadProjectContext(cfg *config.Config) (lint.ProjectContext, error) {
	project, err := lint.LoadProject(cfg.NewsDir)
	if err != nil {
		return lint.ProjectContext{}, err
	}

	pctx := lint.ProjectContext{Project: project}
	if m, err := manifest.Load(cfg.Manifest); err == nil {
		pctx.Manifest = &lint.ManifestInfo{
			Path:    m.Path,
			Version: m.Version,
			Engines: m.Engines,
		}
	}

	pctx.Changelog = lint.ChangelogInfo{Path: cfg.Changelog}
	if raw, err := os.ReadFile(cfg.Changelog); err == nil {
		content := string(raw)
		pctx.Changelog.Exists = true
		pctx.Changelog.Title = changelog.Title(content)
		pctx.Changelog.HeadVersion = changelog.HeadVersion(content)
	}

	return pctx, nil
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	lintCfg := lint.NewConfig()

	// Apply project config first (lower precedence)
	if cfg != nil && cfg.Lint != nil {
		for _, id := range cfg.Lint.Disabled {
			lintCfg.Disable(strings.TrimSpace(id))
		}
		for id, sev := range cfg.Lint.Severity {
			if s, ok := lint.ParseSeverity(sev); ok {
				lintCfg.SetSeverity(id, s)
			}
		}
		for id, ruleOpts := range cfg.Lint.Rules {
			lintCfg.SetRuleOptions(id, ruleOpts)
		}
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}
	if opts.SkipProject {
		for _, rule := range lint.GetAllProjectRules() {
			lintCfg.Disable(rule.ID())
		}
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabledSet := make(map[string]bool)
		for _, id := range opts.Rules {
			enabledSet[strings.TrimSpace(id)] = true
		}
		for _, rule := range lint.GetAllEntryRules() {
			if !enabledSet[rule.ID()] {
				lintCfg.Disable(rule.ID())
			}
		}
		for _, rule := range lint.GetAllProjectRules() {
			if !enabledSet[rule.ID()] {
				lintCfg.Disable(rule.ID())
			}
		}
	}

	return lintCfg
}

// filterDiagnosticsByPath keeps diagnostics under the given file or
// directory.
func filterDiagnosticsByPath(diags []lint.Diagnostic, path string) []lint.Diagnostic {
	path = filepath.Clean(path)

	var kept []lint.Diagnostic
	for _, d := range diags {
		dp := filepath.Clean(d.Path)
		if dp == path || strings.HasPrefix(dp, path+string(filepath.Separator)) {
			kept = append(kept, d)
		}
	}
	return kept
}

func renderLintResults(r *output.Renderer, diags []lint.Diagnostic) bool {
	if len(diags) == 0 {
		r.Success("No lint issues found")
		return false
	}

	// Calculate summary stats
	summary := output.LintSummary{TotalIssues: len(diags)}
	seen := make(map[string]bool)
	for _, d := range diags {
		if !seen[d.Path] {
			seen[d.Path] = true
			summary.FilesAnalyzed++
		}
		switch d.Severity {
		case lint.SeverityError:
			summary.Errors++
		case lint.SeverityWarning:
			summary.Warnings++
		case lint.SeverityInfo:
			summary.Info++
		case lint.SeverityHint:
			summary.Hints++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		doc := output.LintOutput{Summary: summary}
		for _, d := range diags {
			if len(doc.Files) == 0 || doc.Files[len(doc.Files)-1].Path != d.Path {
				doc.Files = append(doc.Files, output.LintFileResult{Path: d.Path})
			}
			file := &doc.Files[len(doc.Files)-1]
			file.Diagnostics = append(file.Diagnostics, output.LintDiagnostic{
				RuleID:   d.RuleID,
				Severity: d.Severity.String(),
				Message:  d.Message,
				Line:     d.Line,
			})
		}
		_ = r.JSON(doc)
		return true
	}

	// Text/Markdown output, grouped by path
	lastPath := ""
	for i, d := range diags {
		if i == 0 || d.Path != lastPath {
			if i > 0 {
				r.Println("")
			}
			r.Println(r.Styles().EntryPath.Render(d.Path))
			lastPath = d.Path
		}
		loc := "-"
		if d.Line > 0 {
			loc = fmt.Sprintf("%d", d.Line)
		}
		r.Printf("  %s  %s  %s  %s\n",
			r.Styles().Muted.Render(fmt.Sprintf("%-4s", loc)),
			severityStyle(r, d.Severity),
			r.Styles().Bold.Render(d.RuleID),
			d.Message,
		)
	}
	r.Println("")

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesAnalyzed)

	return true
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

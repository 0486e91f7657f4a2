package commands

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/pkg/lint"
	_ "github.com/leapstack-labs/newsroom/pkg/lint/rules" // register lint rules
	"github.com/spf13/cobra"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a comprehensive project health check",
		Long: `Analyze your news project for potential issues and best practices.

The doctor command runs every lint rule and provides a comprehensive
report including:
- Project summary (sections, pending entries, changelog, release history)
- Health checks grouped by category (Content, Naming, Sections, Release)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  newsroom doctor

  # Output as JSON
  newsroom doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains project-level statistics.
type ProjectSummary struct {
	NewsDir          string `json:"news_dir"`
	Sections         int    `json:"sections"`
	PendingEntries   int    `json:"pending_entries"`
	EmptySections    int    `json:"empty_sections"`
	ManifestVersion  string `json:"manifest_version,omitempty"`
	ChangelogVersion string `json:"changelog_version,omitempty"`
	Releases         int    `json:"releases"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	// Build project context
	pctx, err := loadProjectContext(cfg)
	if err != nil {
		return err
	}

	// Run every rule at its default severity; doctor reports the whole
	// picture regardless of what lint thresholds the project configures.
	analyzer := lint.NewAnalyzer(lint.NewConfig())
	diags, err := analyzer.Run(cmd.Context(), pctx)
	if err != nil {
		return err
	}

	releases, err := cmdCtx.Store.ListReleases(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read release history: %w", err)
	}

	// Build output
	doctorOutput := buildDoctorOutput(pctx, diags, len(releases))

	// Render based on mode
	effectiveMode := r.EffectiveMode()
	switch effectiveMode {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(pctx lint.ProjectContext, diags []lint.Diagnostic, releases int) *DoctorOutput {
	// Build summary
	summary := buildProjectSummary(pctx, releases)

	// Group diagnostics by rule
	diagsByRule := make(map[string][]lint.Diagnostic)
	for _, d := range diags {
		diagsByRule[d.RuleID] = append(diagsByRule[d.RuleID], d)
	}

	// Build health checks from all registered rules
	rules := lint.AllRules()
	healthChecks := make([]HealthCheck, 0, len(rules))

	for _, rule := range rules {
		ruleDiags := diagsByRule[rule.ID]
		status := "pass"
		if len(ruleDiags) > 0 {
			if rule.DefaultSeverity == lint.SeverityError {
				status = "error"
			} else {
				status = "warn"
			}
		}

		details := make([]string, 0, len(ruleDiags))
		for _, d := range ruleDiags {
			detail := d.Message
			if d.Path != "" {
				detail = d.Path + ": " + d.Message
			}
			details = append(details, detail)
		}

		healthChecks = append(healthChecks, HealthCheck{
			RuleID:     rule.ID,
			Name:       rule.Name,
			Group:      rule.Group,
			Status:     status,
			IssueCount: len(ruleDiags),
			Details:    details,
		})
	}

	// Sort health checks by group then by rule ID
	sort.Slice(healthChecks, func(i, j int) bool {
		if healthChecks[i].Group != healthChecks[j].Group {
			return healthChecks[i].Group < healthChecks[j].Group
		}
		return healthChecks[i].RuleID < healthChecks[j].RuleID
	})

	// Calculate score
	score := calculateHealthScore(healthChecks, summary.PendingEntries)

	// Generate recommendations
	recommendations := generateRecommendations(healthChecks)

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    healthChecks,
		Score:           score,
		Recommendations: recommendations,
		IssueCount:      len(diags),
	}
}

func buildProjectSummary(pctx lint.ProjectContext, releases int) ProjectSummary {
	p := pctx.Project

	summary := ProjectSummary{
		NewsDir:        p.NewsDir,
		Sections:       len(p.Sections),
		PendingEntries: len(p.Files),
		Releases:       releases,
	}

	for _, se := range p.Sections {
		if len(se.Entries) == 0 {
			summary.EmptySections++
		}
	}

	if pctx.Manifest != nil {
		summary.ManifestVersion = pctx.Manifest.Version
	}
	if pctx.Changelog.Exists {
		summary.ChangelogVersion = pctx.Changelog.HeadVersion
	}

	return summary
}

// calculateHealthScore computes a health score from 0-100.
// The scoring weights:
// - Each passing rule adds points
// - Each issue reduces points
// - More pending entries means issues have less individual impact
func calculateHealthScore(checks []HealthCheck, entryCount int) int {
	if len(checks) == 0 {
		return 100
	}

	// Base score starts at 100
	score := 100.0

	// Calculate penalty per issue
	// With more entries, each individual issue has less impact
	basePenalty := 5.0
	if entryCount > 10 {
		basePenalty = 3.0
	}
	if entryCount > 50 {
		basePenalty = 2.0
	}
	if entryCount > 100 {
		basePenalty = 1.0
	}

	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= float64(check.IssueCount) * basePenalty * 2 // Errors count double
		case "warn":
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	// Clamp to 0-100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "CT01":
		return "Wrap long entry lines or raise the max_length option"
	case "CT02":
		return "Strip trailing whitespace from entry files"
	case "CT03":
		return "Write a description into each entry file or delete the empty file"
	case "CT04":
		return "Start entry descriptions with a capital letter"
	case "CT05":
		return "End entry descriptions with closing punctuation"
	case "CT06":
		return "Replace tab characters in entries with spaces"
	case "CT07":
		return "Keep each entry to a single paragraph; split extra paragraphs into their own entries"
	case "NM01":
		return "Rename entry files to <issue>.md or <issue>-<nonce>.md"
	case "NM02":
		return "Use real issue numbers from your tracker in entry file names"
	case "EN01":
		return "Re-save entry files as UTF-8"
	case "EN02":
		return "Remove byte order marks from entry files"
	case "PR01":
		return "Bump the manifest version above the changelog head before releasing"
	case "PR02":
		return "Restore the changelog title heading"
	case "PR03":
		return "Pin the supported engine versions in the manifest"
	case "PS01":
		return "Prefix section directories with a numeric sort index"
	case "PS02":
		return "Renumber section directories into a gapless sequence"
	case "PS04":
		return "Merge duplicate entries for the same issue or suffix them with -<nonce>"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header1.Render("Newsroom Project Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Project Summary
	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   Sections: %d | Pending entries: %d | Empty sections: %d\n",
		out.Summary.Sections, out.Summary.PendingEntries, out.Summary.EmptySections)
	r.Printf("   Manifest version: %s | Changelog head: %s | Releases recorded: %d\n",
		valueOrNone(out.Summary.ManifestVersion), valueOrNone(out.Summary.ChangelogVersion), out.Summary.Releases)
	r.Println("")

	// Health Checks grouped by category
	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# Newsroom Project Health Report")
	r.Println("")

	// Project Summary
	r.Println("## Project Summary")
	r.Println("")
	r.Printf("- **Sections**: %d\n", out.Summary.Sections)
	r.Printf("- **Pending Entries**: %d\n", out.Summary.PendingEntries)
	r.Printf("- **Empty Sections**: %d\n", out.Summary.EmptySections)
	r.Printf("- **Manifest Version**: %s\n", valueOrNone(out.Summary.ManifestVersion))
	r.Printf("- **Changelog Head**: %s\n", valueOrNone(out.Summary.ChangelogVersion))
	r.Printf("- **Releases Recorded**: %d\n", out.Summary.Releases)
	r.Println("")

	// Health Checks
	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		status := "PASS"
		switch check.Status {
		case "warn":
			status = "WARN"
		case "error":
			status = "ERROR"
		}

		r.Printf("- **[%s]** %s: %s", status, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	// Health Score
	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

// valueOrNone renders optional summary fields.
func valueOrNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

package lint

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Analyzer runs registered rules against a news project.
type Analyzer struct {
	config      *Config
	concurrency int
}

// NewAnalyzer creates an analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{
		config:      config,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// AnalyzeEntry runs all enabled entry rules against one entry file.
func (a *Analyzer) AnalyzeEntry(ctx EntryContext) []Diagnostic {
	var diagnostics []Diagnostic
	for _, rule := range GetAllEntryRules() {
		if a.config.IsDisabled(rule.ID()) {
			continue
		}

		opts := a.config.GetRuleOptions(rule.ID())
		diags := rule.CheckEntry(ctx, opts)

		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID(), diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics
}

// AnalyzeProject runs all enabled project rules once.
func (a *Analyzer) AnalyzeProject(pctx ProjectContext) []Diagnostic {
	var diagnostics []Diagnostic
	for _, rule := range GetAllProjectRules() {
		if a.config.IsDisabled(rule.ID()) {
			continue
		}

		opts := a.config.GetRuleOptions(rule.ID())
		diags := rule.CheckProject(pctx, opts)

		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID(), diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics
}

// Run lints every entry file (with bounded parallelism) plus the project
// rules, returning combined diagnostics sorted by path, line, and rule.
func (a *Analyzer) Run(ctx context.Context, pctx ProjectContext) ([]Diagnostic, error) {
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.concurrency)

	results := make([][]Diagnostic, len(pctx.Project.Files))
	for i, file := range pctx.Project.Files {
		eg.Go(func() error {
			select {
			case <-egctx.Done():
				return egctx.Err()
			default:
			}
			results[i] = a.AnalyzeEntry(file)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var diagnostics []Diagnostic
	for _, diags := range results {
		diagnostics = append(diagnostics, diags...)
	}
	diagnostics = append(diagnostics, a.AnalyzeProject(pctx)...)

	SortDiagnostics(diagnostics)
	return diagnostics, nil
}

// SortDiagnostics orders diagnostics by path, line, then rule ID.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].RuleID < diags[j].RuleID
	})
}

// FilterBySeverity keeps diagnostics at or above the threshold severity
// (SeverityError is the most severe).
func FilterBySeverity(diags []Diagnostic, threshold Severity) []Diagnostic {
	kept := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity <= threshold {
			kept = append(kept, d)
		}
	}
	return kept
}

// CountBySeverity tallies diagnostics per severity level.
func CountBySeverity(diags []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}

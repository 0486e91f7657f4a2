package lint

import (
	"github.com/leapstack-labs/newsroom/pkg/news"
)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Path is the file or directory the finding refers to.
	Path string `json:"path,omitempty"`
	// Line is the 1-based line within Path, or 0 when the finding applies
	// to the whole file.
	Line int `json:"line,omitempty"`
}

// =============================================================================
// Contexts
// =============================================================================

// EntryContext carries one candidate news entry file through the entry
// rules. Entry is nil when the file name does not parse, and rules that
// need parsed content are expected to skip such files (the naming rule
// reports them).
type EntryContext struct {
	// Path is the file path relative to the project root where possible.
	Path string
	// Name is the base file name.
	Name string
	// Raw is the unmodified file content.
	Raw []byte
	// Entry is the parsed entry, nil for files outside the naming
	// convention.
	Entry *news.Entry
	// Section is the section directory the file lives in.
	Section news.Section
}

// ManifestInfo is the slice of the package manifest that release rules
// inspect.
type ManifestInfo struct {
	Path    string
	Version string
	Engines map[string]string
}

// ChangelogInfo describes the changelog file release rules inspect.
type ChangelogInfo struct {
	Path        string
	Exists      bool
	Title       string
	HeadVersion string
}

// ProjectContext provides project-wide data for project rules.
type ProjectContext struct {
	// Project is the tolerant scan of the news directory.
	Project *Project
	// Manifest is nil when the project has no package manifest.
	Manifest *ManifestInfo
	// Changelog is always set; Exists reports whether the file is there.
	Changelog ChangelogInfo
}

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the base interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "CT01" or "PS01"
	ID() string

	// Name returns the human-readable name, e.g., "content.line-length"
	Name() string

	// Group returns the category, e.g., "content", "sections", "release"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Content showing the anti-pattern
	GoodExample() string // Content showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// EntryRule analyzes individual news entry files.
type EntryRule interface {
	Rule

	// CheckEntry analyzes one entry file and returns diagnostics.
	// The opts parameter contains rule-specific options from configuration.
	CheckEntry(ctx EntryContext, opts map[string]any) []Diagnostic
}

// ProjectRule analyzes news-directory-wide and release concerns.
type ProjectRule interface {
	Rule

	// CheckProject analyzes the project context and returns diagnostics.
	CheckProject(ctx ProjectContext, opts map[string]any) []Diagnostic
}

// =============================================================================
// Rule Definitions
// =============================================================================

// EntryCheckFunc analyzes one entry file and returns diagnostics.
type EntryCheckFunc func(ctx EntryContext, opts map[string]any) []Diagnostic

// ProjectCheckFunc analyzes the project context and returns diagnostics.
type ProjectCheckFunc func(ctx ProjectContext, opts map[string]any) []Diagnostic

// EntryRuleDef is a data-driven definition of an entry rule. Rules are
// stateless; all context comes via the Check function parameters.
type EntryRuleDef struct {
	ID          string         // Unique identifier, e.g., "CT01"
	Name        string         // Human-readable name, e.g., "content.line-length"
	Group       string         // Category, e.g., "content"
	Description string         // Human-readable description
	Severity    Severity       // Default severity
	Check       EntryCheckFunc // The check function
	ConfigKeys  []string       // Configuration keys this rule accepts

	// Documentation fields
	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// ProjectRuleDef is a data-driven definition of a project rule.
type ProjectRuleDef struct {
	ID          string
	Name        string
	Group       string
	Description string
	Severity    Severity
	Check       ProjectCheckFunc
	ConfigKeys  []string

	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// =============================================================================
// Rule Metadata
// =============================================================================

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Type            string   `json:"type"` // "entry" or "project"

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	info := RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}

	if _, ok := r.(EntryRule); ok {
		info.Type = "entry"
	} else if _, ok := r.(ProjectRule); ok {
		info.Type = "project"
	}

	return info
}

// =============================================================================
// Wrapped Rule Definitions
// =============================================================================

type wrappedEntryRuleDef struct {
	def EntryRuleDef
}

// WrapEntryRuleDef wraps an EntryRuleDef to implement EntryRule.
func WrapEntryRuleDef(def EntryRuleDef) EntryRule {
	return &wrappedEntryRuleDef{def: def}
}

func (w *wrappedEntryRuleDef) ID() string                { return w.def.ID }
func (w *wrappedEntryRuleDef) Name() string              { return w.def.Name }
func (w *wrappedEntryRuleDef) Group() string             { return w.def.Group }
func (w *wrappedEntryRuleDef) Description() string       { return w.def.Description }
func (w *wrappedEntryRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedEntryRuleDef) ConfigKeys() []string      { return w.def.ConfigKeys }
func (w *wrappedEntryRuleDef) Rationale() string         { return w.def.Rationale }
func (w *wrappedEntryRuleDef) BadExample() string        { return w.def.BadExample }
func (w *wrappedEntryRuleDef) GoodExample() string       { return w.def.GoodExample }
func (w *wrappedEntryRuleDef) Fix() string               { return w.def.Fix }

func (w *wrappedEntryRuleDef) CheckEntry(ctx EntryContext, opts map[string]any) []Diagnostic {
	return w.def.Check(ctx, opts)
}

type wrappedProjectRuleDef struct {
	def ProjectRuleDef
}

// WrapProjectRuleDef wraps a ProjectRuleDef to implement ProjectRule.
func WrapProjectRuleDef(def ProjectRuleDef) ProjectRule {
	return &wrappedProjectRuleDef{def: def}
}

func (w *wrappedProjectRuleDef) ID() string                { return w.def.ID }
func (w *wrappedProjectRuleDef) Name() string              { return w.def.Name }
func (w *wrappedProjectRuleDef) Group() string             { return w.def.Group }
func (w *wrappedProjectRuleDef) Description() string       { return w.def.Description }
func (w *wrappedProjectRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedProjectRuleDef) ConfigKeys() []string      { return w.def.ConfigKeys }
func (w *wrappedProjectRuleDef) Rationale() string         { return w.def.Rationale }
func (w *wrappedProjectRuleDef) BadExample() string        { return w.def.BadExample }
func (w *wrappedProjectRuleDef) GoodExample() string       { return w.def.GoodExample }
func (w *wrappedProjectRuleDef) Fix() string               { return w.def.Fix }

func (w *wrappedProjectRuleDef) CheckProject(ctx ProjectContext, opts map[string]any) []Diagnostic {
	return w.def.Check(ctx, opts)
}

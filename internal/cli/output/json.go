package output

// JSON document types shared by commands that emit structured lint
// results. Commands with their own document shapes define them locally.

// LintSummary aggregates issue counts across analyzed files.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
}

// LintDiagnostic is one issue in JSON output.
type LintDiagnostic struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// LintFileResult groups diagnostics for one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintOutput is the top-level JSON document for lint results.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// EntryInfo is one pending news entry in JSON output.
type EntryInfo struct {
	Issue       int    `json:"issue"`
	Nonce       string `json:"nonce,omitempty"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// SectionInfo groups pending entries under their changelog section.
type SectionInfo struct {
	Index   int         `json:"index"`
	Title   string      `json:"title"`
	Path    string      `json:"path"`
	Entries []EntryInfo `json:"entries"`
}

// NewsSummary aggregates pending entry counts.
type NewsSummary struct {
	TotalSections int `json:"total_sections"`
	TotalEntries  int `json:"total_entries"`
}

// NewsOutput is the top-level JSON document for pending news entries.
type NewsOutput struct {
	NewsDir  string        `json:"news_dir"`
	Summary  NewsSummary   `json:"summary"`
	Sections []SectionInfo `json:"sections"`
}

// PreviewOutput is the JSON document for the rendered pending release.
type PreviewOutput struct {
	Repository string `json:"repository,omitempty"`
	Entries    int    `json:"entries"`
	Body       string `json:"body"`
}

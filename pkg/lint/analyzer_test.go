package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestEntry(t *testing.T, newsDir, section, name, content string) {
	t.Helper()
	dir := filepath.Join(newsDir, section)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// flagEveryEntry reports one warning per entry file so analyzer plumbing
// can be observed without depending on real rules.
func flagEveryEntry(id string) EntryRuleDef {
	def := testEntryDef(id)
	def.Check = func(ctx EntryContext, opts map[string]any) []Diagnostic {
		msg := "flagged"
		if label := GetStringOption(opts, "label", ""); label != "" {
			msg = label
		}
		return []Diagnostic{{
			RuleID:   id,
			Severity: def.Severity,
			Message:  msg,
			Path:     ctx.Path,
		}}
	}
	return def
}

func flagProject(id string) ProjectRuleDef {
	def := testProjectDef(id)
	def.Check = func(ctx ProjectContext, opts map[string]any) []Diagnostic {
		return []Diagnostic{{
			RuleID:   id,
			Severity: def.Severity,
			Message:  "project flagged",
			Path:     ctx.Project.NewsDir,
		}}
	}
	return def
}

func testProjectContext(paths ...string) ProjectContext {
	project := &Project{NewsDir: "news"}
	for _, p := range paths {
		project.Files = append(project.Files, EntryContext{Path: p, Name: p, Raw: []byte("x")})
	}
	return ProjectContext{Project: project}
}

func TestAnalyzeEntryAppliesConfig(t *testing.T) {
	ClearUnified()
	t.Cleanup(ClearUnified)

	RegisterEntry(flagEveryEntry("T01"))
	RegisterEntry(flagEveryEntry("T02"))

	cfg := NewConfig()
	cfg.Disable("T02")
	cfg.SetSeverity("T01", SeverityError)
	cfg.SetRuleOptions("T01", map[string]any{"label": "custom message"})

	analyzer := NewAnalyzer(cfg)
	diags := analyzer.AnalyzeEntry(EntryContext{Path: "news/1 Fixes/1.md"})

	require.Len(t, diags, 1, "disabled rule must not run")
	assert.Equal(t, "T01", diags[0].RuleID)
	assert.Equal(t, SeverityError, diags[0].Severity, "severity override applies")
	assert.Equal(t, "custom message", diags[0].Message, "options reach the rule")
}

func TestAnalyzerRun(t *testing.T) {
	ClearUnified()
	t.Cleanup(ClearUnified)

	RegisterEntry(flagEveryEntry("T01"))
	RegisterProject(flagProject("P01"))

	analyzer := NewAnalyzer(nil)
	pctx := testProjectContext("news/1 Fixes/2.md", "news/1 Fixes/1.md", "news/2 Misc/3.md")

	diags, err := analyzer.Run(context.Background(), pctx)
	require.NoError(t, err)
	require.Len(t, diags, 4, "one per entry plus the project rule")

	// Sorted by path; the project diagnostic for "news" comes first.
	assert.Equal(t, "P01", diags[0].RuleID)
	assert.Equal(t, "news/1 Fixes/1.md", diags[1].Path)
	assert.Equal(t, "news/1 Fixes/2.md", diags[2].Path)
	assert.Equal(t, "news/2 Misc/3.md", diags[3].Path)
}

func TestAnalyzerRunCanceled(t *testing.T) {
	ClearUnified()
	t.Cleanup(ClearUnified)

	RegisterEntry(flagEveryEntry("T01"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := NewAnalyzer(nil)
	_, err := analyzer.Run(ctx, testProjectContext("news/1 Fixes/1.md"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{RuleID: "B", Path: "a.md", Line: 2},
		{RuleID: "A", Path: "b.md", Line: 1},
		{RuleID: "B", Path: "a.md", Line: 1},
		{RuleID: "A", Path: "a.md", Line: 1},
	}

	SortDiagnostics(diags)

	assert.Equal(t, Diagnostic{RuleID: "A", Path: "a.md", Line: 1}, diags[0])
	assert.Equal(t, Diagnostic{RuleID: "B", Path: "a.md", Line: 1}, diags[1])
	assert.Equal(t, Diagnostic{RuleID: "B", Path: "a.md", Line: 2}, diags[2])
	assert.Equal(t, Diagnostic{RuleID: "A", Path: "b.md", Line: 1}, diags[3])
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	writeTestEntry(t, dir, "1 Enhancements", "10.md", "Added a thing.")
	writeTestEntry(t, dir, "1 Enhancements", "2.md", "Improved a thing.")
	writeTestEntry(t, dir, "2 Fixes", "5-alpha.md", "Fixed a thing.")
	writeTestEntry(t, dir, "2 Fixes", "README.md", "Docs, not an entry.")
	writeTestEntry(t, dir, "2 Fixes", "bunk.md", "Misnamed.")
	writeTestEntry(t, dir, "stray", "9.md", "Not a numbered section.")

	project, err := LoadProject(dir)
	require.NoError(t, err)

	// Two numbered sections; the stray directory is reported, not scanned.
	require.Len(t, project.Sections, 2)
	assert.Equal(t, "Enhancements", project.Sections[0].Section.Title)
	assert.Equal(t, "Fixes", project.Sections[1].Section.Title)
	require.Len(t, project.StrayDirs, 1)
	assert.Contains(t, project.StrayDirs[0], "stray")

	// All candidate files get a context, including the misnamed one.
	require.Len(t, project.Files, 4)
	names := make([]string, 0, len(project.Files))
	for _, f := range project.Files {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"10.md", "2.md", "5-alpha.md", "bunk.md"}, names)

	// Entries sort numerically; the misnamed file has no parsed entry.
	assert.Equal(t, 2, project.Sections[0].Entries[0].Issue)
	assert.Equal(t, 10, project.Sections[0].Entries[1].Issue)
	for _, f := range project.Files {
		if f.Name == "bunk.md" {
			assert.Nil(t, f.Entry)
		}
	}
}

func TestLoadProjectInvalidContent(t *testing.T) {
	dir := t.TempDir()
	writeTestEntry(t, dir, "1 Fixes", "1.md", "\xff\xfeutf-16 junk")

	project, err := LoadProject(dir)
	require.NoError(t, err, "bad content is a diagnostic, not a load failure")

	require.Len(t, project.Files, 1)
	assert.NotNil(t, project.Files[0].Entry, "the name still parses")
	assert.Empty(t, project.Sections[0].Entries, "invalid content stays out of the clean entries")
}

func TestLoadProjectMissingDir(t *testing.T) {
	_, err := LoadProject("does/not/exist")
	assert.Error(t, err)
}

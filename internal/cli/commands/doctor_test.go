package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/newsroom/internal/cli/config"
	"github.com/leapstack-labs/newsroom/internal/cli/testutil"
)

// execDoctor runs the doctor command in dir with the given args.
func execDoctor(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	config.ResetConfig()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewDoctorCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestDoctorCommandMetadata(t *testing.T) {
	cmd := NewDoctorCommand()

	assert.Equal(t, "doctor", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("format"), "--format flag should exist")
}

func TestDoctorCommand_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execDoctor(t, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "# Newsroom Project Health Report")
	assert.Contains(t, out, "## Project Summary")
	assert.Contains(t, out, "- **Sections**: 3")
	assert.Contains(t, out, "- **Pending Entries**: 2")
	assert.Contains(t, out, "- **Manifest Version**: 2019.3.0")
	assert.Contains(t, out, "- **Changelog Head**: 2019.2.0")
	assert.Contains(t, out, "### Content")
	assert.Contains(t, out, "- **[PASS]** CT01: content.line-length")
	assert.Contains(t, out, "- **[WARN]** PS03: sections.empty (1 issues)")
	assert.Contains(t, out, "## Health Score")
	testutil.AssertValidMarkdown(t, out)
}

func TestDoctorCommand_Text(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Setenv("NEWSROOM_OUTPUT", "text")

	out, err := execDoctor(t, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Newsroom Project Health Report")
	assert.Contains(t, out, "Sections: 3 | Pending entries: 2 | Empty sections: 1")
	assert.Contains(t, out, "Manifest version: 2019.3.0 | Changelog head: 2019.2.0 | Releases recorded: 0")
	assert.Contains(t, out, "Health Checks")
	assert.Contains(t, out, "Health Score:")
	testutil.AssertNoANSI(t, out)
}

func TestDoctorCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Setenv("NEWSROOM_OUTPUT", "json")

	out, err := execDoctor(t, dir)
	require.NoError(t, err)

	var doc DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, 3, doc.Summary.Sections)
	assert.Equal(t, 2, doc.Summary.PendingEntries)
	assert.Equal(t, 1, doc.Summary.EmptySections)
	assert.Equal(t, "2019.3.0", doc.Summary.ManifestVersion)
	assert.Equal(t, "2019.2.0", doc.Summary.ChangelogVersion)
	assert.Equal(t, 0, doc.Summary.Releases)

	// The only finding on the fixture is the empty Code Health section.
	assert.Equal(t, 1, doc.IssueCount)
	assert.Equal(t, 95, doc.Score)
	assert.Empty(t, doc.Recommendations)

	byID := make(map[string]HealthCheck, len(doc.HealthChecks))
	for _, check := range doc.HealthChecks {
		byID[check.RuleID] = check
	}
	assert.Equal(t, "warn", byID["PS03"].Status)
	assert.Equal(t, 1, byID["PS03"].IssueCount)
	assert.Equal(t, "pass", byID["CT01"].Status)
}

func TestDoctorCommand_WithIssues(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "2 Fixes", "4099.md", "fixed the thing  \n")
	t.Setenv("NEWSROOM_OUTPUT", "json")

	out, err := execDoctor(t, dir)
	require.NoError(t, err)

	var doc DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Less(t, doc.Score, 95)
	assert.Greater(t, doc.IssueCount, 1)
	assert.Contains(t, doc.Recommendations, "Strip trailing whitespace from entry files")
	assert.Contains(t, doc.Recommendations, "Start entry descriptions with a capital letter")

	byID := make(map[string]HealthCheck, len(doc.HealthChecks))
	for _, check := range doc.HealthChecks {
		byID[check.RuleID] = check
	}
	require.Equal(t, 1, byID["CT02"].IssueCount)
	assert.Contains(t, byID["CT02"].Details[0], "4099.md")
}

func TestDoctorCommand_MissingNewsDir(t *testing.T) {
	dir := t.TempDir()

	_, err := execDoctor(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "news directory")
}

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name       string
		checks     []HealthCheck
		entryCount int
		minScore   int
		maxScore   int
	}{
		{
			name:       "no checks returns 100",
			checks:     nil,
			entryCount: 10,
			minScore:   100,
			maxScore:   100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{RuleID: "CT01", Status: "pass", IssueCount: 0},
				{RuleID: "CT02", Status: "pass", IssueCount: 0},
			},
			entryCount: 10,
			minScore:   100,
			maxScore:   100,
		},
		{
			name: "warnings reduce score",
			checks: []HealthCheck{
				{RuleID: "CT01", Status: "pass", IssueCount: 0},
				{RuleID: "CT02", Status: "warn", IssueCount: 2},
			},
			entryCount: 10,
			minScore:   80,
			maxScore:   100,
		},
		{
			name: "errors reduce score more",
			checks: []HealthCheck{
				{RuleID: "NM01", Status: "error", IssueCount: 2},
			},
			entryCount: 10,
			minScore:   70,
			maxScore:   95,
		},
		{
			name: "more entries means less impact per issue",
			checks: []HealthCheck{
				{RuleID: "CT01", Status: "warn", IssueCount: 5},
			},
			entryCount: 100,
			minScore:   90,
			maxScore:   100,
		},
		{
			name: "many issues can reduce to 0",
			checks: []HealthCheck{
				{RuleID: "NM01", Status: "error", IssueCount: 20},
				{RuleID: "EN01", Status: "error", IssueCount: 20},
			},
			entryCount: 5,
			minScore:   0,
			maxScore:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := calculateHealthScore(tt.checks, tt.entryCount)
			assert.GreaterOrEqual(t, score, tt.minScore, "score should be >= %d", tt.minScore)
			assert.LessOrEqual(t, score, tt.maxScore, "score should be <= %d", tt.maxScore)
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	tests := []struct {
		ruleID   string
		expected bool // whether a recommendation is returned
	}{
		{"CT01", true},
		{"CT02", true},
		{"CT03", true},
		{"CT04", true},
		{"CT05", true},
		{"CT06", true},
		{"CT07", true},
		{"NM01", true},
		{"NM02", true},
		{"EN01", true},
		{"EN02", true},
		{"PR01", true},
		{"PR02", true},
		{"PR03", true},
		{"PS01", true},
		{"PS02", true},
		{"PS04", true},
		// Empty sections between releases are the normal resting state,
		// so telling people to fix them would be noise.
		{"PS03", false},
		{"UNKNOWN", false},
	}

	for _, tt := range tests {
		t.Run(tt.ruleID, func(t *testing.T) {
			rec := getRecommendation(tt.ruleID)
			if tt.expected {
				assert.NotEmpty(t, rec, "expected recommendation for %s", tt.ruleID)
			} else {
				assert.Empty(t, rec, "expected no recommendation for %s", tt.ruleID)
			}
		})
	}
}

func TestGenerateRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "CT02", Status: "warn", IssueCount: 1},
		{RuleID: "NM01", Status: "error", IssueCount: 2},
		{RuleID: "CT04", Status: "pass", IssueCount: 0},
	}

	recommendations := generateRecommendations(checks)

	assert.Len(t, recommendations, 2)
	assert.Contains(t, recommendations[0], "trailing whitespace")
	assert.Contains(t, recommendations[1], "Rename entry files")
}

func TestGenerateRecommendations_LimitTo5(t *testing.T) {
	// Create 10 checks with issues
	ruleIDs := []string{"CT01", "CT02", "CT03", "CT04", "CT05", "CT06", "CT07", "NM01", "NM02", "EN01"}
	checks := make([]HealthCheck, len(ruleIDs))
	for i, ruleID := range ruleIDs {
		checks[i] = HealthCheck{RuleID: ruleID, Status: "warn", IssueCount: 1}
	}

	recommendations := generateRecommendations(checks)

	// Should be limited to 5
	assert.LessOrEqual(t, len(recommendations), 5)
}

func TestValueOrNone(t *testing.T) {
	assert.Equal(t, "none", valueOrNone(""))
	assert.Equal(t, "2019.3.0", valueOrNone("2019.3.0"))
}

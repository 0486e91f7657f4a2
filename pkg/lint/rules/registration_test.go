package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func TestBuiltinRulesRegistered(t *testing.T) {
	assert.Equal(t, 11, lint.CountEntryRules())
	assert.Equal(t, 7, lint.CountProjectRules())

	infos := lint.AllRules()
	seen := make(map[string]bool)
	for _, info := range infos {
		assert.False(t, seen[info.ID], "duplicate rule ID %s", info.ID)
		seen[info.ID] = true

		assert.NotEmpty(t, info.Name, "%s has no name", info.ID)
		assert.NotEmpty(t, info.Group, "%s has no group", info.ID)
		assert.NotEmpty(t, info.Description, "%s has no description", info.ID)
	}

	for _, id := range []string{"EN01", "NM01", "CT01", "PS01", "PR01"} {
		_, ok := lint.GetRuleByID(id)
		assert.True(t, ok, "rule %s not registered", id)
	}
}

func TestRuleGroups(t *testing.T) {
	content := lint.GetRulesByGroup("content")
	require.Len(t, content, 7)

	release := lint.GetRulesByGroup("release")
	require.Len(t, release, 3)
	for _, info := range release {
		assert.Equal(t, "project", info.Type)
	}
}

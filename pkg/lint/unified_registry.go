package lint

import (
	"fmt"
	"sort"
	"sync"
)

// unifiedRegistry stores all rules (both entry and project) for unified access.
var unifiedRegistry = &UnifiedRegistry{
	entryRules:   make(map[string]EntryRule),
	projectRules: make(map[string]ProjectRule),
}

// UnifiedRegistry provides unified access to all rules.
type UnifiedRegistry struct {
	mu           sync.RWMutex
	entryRules   map[string]EntryRule
	projectRules map[string]ProjectRule
}

// RegisterEntryRule adds an entry rule to the unified registry.
// Registering two rules with the same ID is a programming error.
func RegisterEntryRule(rule EntryRule) {
	unifiedRegistry.mu.Lock()
	defer unifiedRegistry.mu.Unlock()
	if _, dup := unifiedRegistry.entryRules[rule.ID()]; dup {
		panic(fmt.Sprintf("lint: duplicate entry rule %s", rule.ID()))
	}
	unifiedRegistry.entryRules[rule.ID()] = rule
}

// RegisterProjectRule adds a project rule to the unified registry.
func RegisterProjectRule(rule ProjectRule) {
	unifiedRegistry.mu.Lock()
	defer unifiedRegistry.mu.Unlock()
	if _, dup := unifiedRegistry.projectRules[rule.ID()]; dup {
		panic(fmt.Sprintf("lint: duplicate project rule %s", rule.ID()))
	}
	unifiedRegistry.projectRules[rule.ID()] = rule
}

// RegisterEntry registers a data-driven entry rule definition.
func RegisterEntry(def EntryRuleDef) {
	RegisterEntryRule(WrapEntryRuleDef(def))
}

// RegisterProject registers a data-driven project rule definition.
func RegisterProject(def ProjectRuleDef) {
	RegisterProjectRule(WrapProjectRuleDef(def))
}

// GetAllEntryRules returns all registered entry rules.
func GetAllEntryRules() []EntryRule {
	unifiedRegistry.mu.RLock()
	defer unifiedRegistry.mu.RUnlock()

	rules := make([]EntryRule, 0, len(unifiedRegistry.entryRules))
	for _, rule := range unifiedRegistry.entryRules {
		rules = append(rules, rule)
	}
	return rules
}

// GetAllProjectRules returns all registered project rules.
func GetAllProjectRules() []ProjectRule {
	unifiedRegistry.mu.RLock()
	defer unifiedRegistry.mu.RUnlock()

	rules := make([]ProjectRule, 0, len(unifiedRegistry.projectRules))
	for _, rule := range unifiedRegistry.projectRules {
		rules = append(rules, rule)
	}
	return rules
}

// GetRuleByID returns any rule by its ID, checking both registries.
func GetRuleByID(id string) (Rule, bool) {
	unifiedRegistry.mu.RLock()
	defer unifiedRegistry.mu.RUnlock()

	if rule, ok := unifiedRegistry.entryRules[id]; ok {
		return rule, true
	}
	if rule, ok := unifiedRegistry.projectRules[id]; ok {
		return rule, true
	}
	return nil, false
}

// AllRules returns metadata for all registered rules, sorted by ID.
func AllRules() []RuleInfo {
	unifiedRegistry.mu.RLock()
	defer unifiedRegistry.mu.RUnlock()

	rules := make([]RuleInfo, 0, len(unifiedRegistry.entryRules)+len(unifiedRegistry.projectRules))
	for _, rule := range unifiedRegistry.entryRules {
		rules = append(rules, GetRuleInfo(rule))
	}
	for _, rule := range unifiedRegistry.projectRules {
		rules = append(rules, GetRuleInfo(rule))
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// GetRulesByGroup returns metadata for all rules in a group.
func GetRulesByGroup(group string) []RuleInfo {
	var rules []RuleInfo
	for _, info := range AllRules() {
		if info.Group == group {
			rules = append(rules, info)
		}
	}
	return rules
}

// CountEntryRules returns the number of registered entry rules.
func CountEntryRules() int {
	unifiedRegistry.mu.RLock()
	defer unifiedRegistry.mu.RUnlock()
	return len(unifiedRegistry.entryRules)
}

// CountProjectRules returns the number of registered project rules.
func CountProjectRules() int {
	unifiedRegistry.mu.RLock()
	defer unifiedRegistry.mu.RUnlock()
	return len(unifiedRegistry.projectRules)
}

// ClearUnified removes all rules from the unified registry. Used for testing.
func ClearUnified() {
	unifiedRegistry.mu.Lock()
	defer unifiedRegistry.mu.Unlock()
	unifiedRegistry.entryRules = make(map[string]EntryRule)
	unifiedRegistry.projectRules = make(map[string]ProjectRule)
}

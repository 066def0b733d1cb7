package domain

import (
	"fmt"
	"sort"
)

// RuleSource identifies which layer supplied a rule value.
type RuleSource string

const (
	SourceDefault  RuleSource = "default"
	SourceRepo     RuleSource = "repo"
	SourceExplicit RuleSource = "explicit"
)

// Provenance maps each top-level rule key to the source that won it.
type Provenance map[string]RuleSource

// RuleSet is the effective configuration for one engine run, produced by
// merging built-in defaults, the repo-local rules file, and an explicit
// CLI-supplied file, field by field. The yaml tags double as the rule-file
// key names, so a marshalled RuleSet resolves back to itself.
type RuleSet struct {
	CanonicalScope      []string `yaml:"canonical_scope"        json:"canonical_scope"`
	Excludes            []string `yaml:"excludes"               json:"excludes"`
	AllowedTopLevelDirs []string `yaml:"allowed_top_level_dirs" json:"allowed_top_level_dirs"`
	RequiredFiles       []string `yaml:"required_files"         json:"required_files"`
	RequiredDirs        []string `yaml:"required_dirs"          json:"required_dirs"`
	RecommendedFiles    []string `yaml:"recommended_files"      json:"recommended_files"`
	ProtectedPaths      []string `yaml:"protected_paths"        json:"protected_paths"`
	StalePathPatterns   []string `yaml:"stale_path_patterns"    json:"stale_path_patterns"`
	AllowedLagCommits   int      `yaml:"allowed_lag_commits"    json:"allowed_lag_commits"`
	SnapshotPath        string   `yaml:"snapshot_path"          json:"snapshot_path"`
	SummaryPath         string   `yaml:"summary_path"           json:"summary_path"`
	MinOrphanAgeDays    int      `yaml:"min_orphan_age_days"    json:"min_orphan_age_days"`
}

// DefaultRules returns the compiled-in universal rule set: minimal, safe
// values with no capability-specific expectations.
func DefaultRules() RuleSet {
	return RuleSet{
		CanonicalScope: []string{
			"README.md",
			"CLAUDE.md",
			"META.yaml",
			"CHANGELOG.md",
			"PROJECT_PRIMER.md",
		},
		Excludes: []string{
			"20_receipts/**",
			"70_evidence/**",
			"90_archive/**",
			".git/**",
			"node_modules/**",
			"vendor/**",
		},
		AllowedTopLevelDirs: []string{
			"00_admin", "00_run", "10_docs", "20_approvals", "20_inbox",
			"20_receipts", "30_config", "40_src", "50_data", "60_tests",
			"70_evidence", "80_reports", "90_archive",
			"schemas", "protocols", "taxonomies", "validators",
			"scripts", "tests", "examples", "registry", "docs", "workspace",
		},
		RequiredFiles:    []string{"README.md", ".gitignore"},
		RequiredDirs:     []string{"20_receipts"},
		RecommendedFiles: []string{"CLAUDE.md", ".gitattributes"},
		ProtectedPaths: []string{
			"20_receipts/**", "70_evidence/**",
			"README.md", "CLAUDE.md", "META.yaml",
			"CHANGELOG.md", "PROJECT_PRIMER.md",
		},
		StalePathPatterns: nil,
		AllowedLagCommits: 1,
		SnapshotPath:      "00_admin/EPOCH.yaml",
		SummaryPath:       "PROJECT_PRIMER.md",
		MinOrphanAgeDays:  90,
	}
}

// ruleAppliers maps each known top-level key to the function that applies
// its value onto a RuleSet. Keys absent here are unknown and only warned.
var ruleAppliers = map[string]func(*RuleSet, any) error{
	"canonical_scope":        func(r *RuleSet, v any) (err error) { r.CanonicalScope, err = asStringSlice(v); return },
	"excludes":               func(r *RuleSet, v any) (err error) { r.Excludes, err = asStringSlice(v); return },
	"allowed_top_level_dirs": func(r *RuleSet, v any) (err error) { r.AllowedTopLevelDirs, err = asStringSlice(v); return },
	"required_files":         func(r *RuleSet, v any) (err error) { r.RequiredFiles, err = asStringSlice(v); return },
	"required_dirs":          func(r *RuleSet, v any) (err error) { r.RequiredDirs, err = asStringSlice(v); return },
	"recommended_files":      func(r *RuleSet, v any) (err error) { r.RecommendedFiles, err = asStringSlice(v); return },
	"protected_paths":        func(r *RuleSet, v any) (err error) { r.ProtectedPaths, err = asStringSlice(v); return },
	"stale_path_patterns":    func(r *RuleSet, v any) (err error) { r.StalePathPatterns, err = asStringSlice(v); return },
	"allowed_lag_commits":    func(r *RuleSet, v any) (err error) { r.AllowedLagCommits, err = asInt(v); return },
	"snapshot_path":          func(r *RuleSet, v any) (err error) { r.SnapshotPath, err = asString(v); return },
	"summary_path":           func(r *RuleSet, v any) (err error) { r.SummaryPath, err = asString(v); return },
	"min_orphan_age_days":    func(r *RuleSet, v any) (err error) { r.MinOrphanAgeDays, err = asInt(v); return },
}

// KnownRuleKeys lists the recognized top-level rule-file keys.
func KnownRuleKeys() []string {
	keys := make([]string, 0, len(ruleAppliers))
	for k := range ruleAppliers {
		keys = append(keys, k)
	}
	return keys
}

// Overlay applies a parsed rule document onto the set, key by key, and
// records source as the winner for every key it consumed. Unknown keys
// are returned as warnings, never errors; forward compatibility is the
// rule file's contract.
func (r *RuleSet) Overlay(doc map[string]any, source RuleSource, prov Provenance) ([]string, error) {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []string
	for _, key := range keys {
		value := doc[key]
		apply, ok := ruleAppliers[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown rule key %q (%s)", key, source))
			continue
		}
		if err := apply(r, value); err != nil {
			return warnings, fmt.Errorf("rule key %q: %w", key, err)
		}
		prov[key] = source
	}
	return warnings, nil
}

func asStringSlice(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
	// An empty list stays nil so a marshal/resolve round trip is lossless.
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected string list item, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

package domain

import "fmt"

// Severity classifies drift findings, ordered from least to most severe.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

var severityOrder = map[Severity]int{
	SeverityInfo:     0,
	SeverityMinor:    1,
	SeverityMajor:    2,
	SeverityCritical: 3,
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return severityOrder[s] >= severityOrder[threshold]
}

// Category identifies the kind of drift a finding describes.
type Category string

const (
	CategoryInventoryMismatch Category = "inventory_mismatch"
	CategoryBrokenLink        Category = "broken_link"
	CategoryStalePath         Category = "stale_path"
	CategoryDocContradiction  Category = "doc_contradiction"
	CategoryStaleSummary      Category = "stale_summary"
	CategoryMetaMismatch      Category = "meta_mismatch"
	CategoryMisplacedArtifact Category = "misplaced_artifact"
	CategoryOrphanCandidate   Category = "orphan_candidate"
	CategoryConfigWarning     Category = "config_warning"
)

// DefaultSeverity is the fixed check-kind to severity table. Checks look
// severities up here instead of choosing ad hoc, so repeated runs over
// unchanged input stay deterministic.
var DefaultSeverity = map[Category]Severity{
	CategoryInventoryMismatch: SeverityCritical,
	CategoryBrokenLink:        SeverityCritical,
	CategoryDocContradiction:  SeverityMajor,
	CategoryStaleSummary:      SeverityMajor,
	CategoryStalePath:         SeverityMinor,
	CategoryMetaMismatch:      SeverityMinor,
	CategoryMisplacedArtifact: SeverityMinor,
	CategoryOrphanCandidate:   SeverityInfo,
	CategoryConfigWarning:     SeverityInfo,
}

// Finding is a single unit of drift detector output.
type Finding struct {
	ID             string         `json:"id"`
	Level          int            `json:"level"`
	Severity       Severity       `json:"severity"`
	Category       Category       `json:"category"`
	Message        string         `json:"message"`
	File           string         `json:"file,omitempty"`
	Line           int            `json:"line,omitempty"`
	Expected       string         `json:"expected,omitempty"`
	Observed       string         `json:"observed,omitempty"`
	SuggestedFix   []string       `json:"suggested_fix,omitempty"`
	Confidence     string         `json:"confidence,omitempty"`
	RequiresReview bool           `json:"requires_review,omitempty"`
	Context        map[string]any `json:"context,omitempty"`
}

// FindingCounter issues stable per-level finding IDs (DRIFT-L1-001, ...).
type FindingCounter struct {
	counts map[int]int
}

func NewFindingCounter() *FindingCounter {
	return &FindingCounter{counts: map[int]int{}}
}

func (c *FindingCounter) NextID(level int) string {
	c.counts[level]++
	return fmt.Sprintf("DRIFT-L%d-%03d", level, c.counts[level])
}

// DriftReport is the complete output of one drift detector invocation.
type DriftReport struct {
	Repo        string    `json:"repo"`
	RepoHead    string    `json:"repo_head"`
	Branch      string    `json:"branch"`
	Level       int       `json:"level"`
	GeneratedAt string    `json:"generated_at"`
	Findings    []Finding `json:"findings"`
	Skipped     []string  `json:"skipped,omitempty"`
}

// CountsBySeverity tallies findings per severity, including zero counts.
func (r *DriftReport) CountsBySeverity() map[Severity]int {
	counts := map[Severity]int{
		SeverityCritical: 0,
		SeverityMajor:    0,
		SeverityMinor:    0,
		SeverityInfo:     0,
	}
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

// HasAtLeast reports whether any finding reaches the given severity.
func (r *DriftReport) HasAtLeast(threshold Severity) bool {
	for _, f := range r.Findings {
		if f.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}

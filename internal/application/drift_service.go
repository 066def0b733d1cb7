package application

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/driftguard/driftguard/internal/domain"
)

// DriftService runs the three-level drift analysis against one target.
// The detector is stateless across runs; each invocation is a fresh,
// deterministic comparison of declared vs. observed state.
type DriftService struct {
	loader    domain.ConfigLoader
	inspector domain.RepoInspector
	scanner   domain.WorkspaceScanner
	revctl    domain.RevisionControl
}

func NewDriftService(
	loader domain.ConfigLoader,
	inspector domain.RepoInspector,
	scanner domain.WorkspaceScanner,
	revctl domain.RevisionControl,
) *DriftService {
	return &DriftService{
		loader: loader, inspector: inspector, scanner: scanner, revctl: revctl,
	}
}

// DriftOptions control one detector run.
type DriftOptions struct {
	// Level selects how deep to go: 1 inventory, 2 consistency, 3 placement.
	Level      int
	RulesPath  string
	StrictKeys bool
	Verbose    bool
}

// driftContext carries the per-run state every level check needs.
type driftContext struct {
	root    string
	rules   domain.RuleSet
	profile domain.RepoProfile
	scan    *domain.ScanResult
	counter *domain.FindingCounter
	report  *domain.DriftReport
	verbose bool
}

// skip records a gated-out check; skips are logged, never silently lost.
func (c *driftContext) skip(check, capability string) {
	c.report.Skipped = append(c.report.Skipped,
		fmt.Sprintf("%s: capability absent (%s)", check, capability))
}

// checkSeverity is the fixed check-kind to severity table for every drift
// check. Severities are looked up here, never chosen inline, so repeated
// runs on unchanged input stay deterministic and the mapping stays
// reviewable in one place.
var checkSeverity = map[string]domain.Severity{
	"canonical_scope_gap":    domain.SeverityInfo,
	"unexpected_top_dir":     domain.SeverityMinor,
	"validator_unregistered": domain.SeverityCritical,
	"validator_missing":      domain.SeverityCritical,
	"capability_dir_empty":   domain.SeverityMinor,
	"stale_path":             domain.SeverityMinor,
	"claims_omission":        domain.SeverityInfo,
	"claims_omission_wide":   domain.SeverityMajor,
	"claims_phantom":         domain.SeverityMajor,
	"broken_link":            domain.SeverityCritical,
	"meta_folder_drift":      domain.SeverityMinor,
	"summary_hash_mismatch":  domain.SeverityMajor,
	"summary_lag_ok":         domain.SeverityInfo,
	"summary_lag_exceeded":   domain.SeverityMajor,
	"misplaced_in_area":      domain.SeverityMinor,
	"stray_validator":        domain.SeverityMinor,
	"root_config_stray":      domain.SeverityInfo,
	"orphan_candidate":       domain.SeverityInfo,
}

// Run executes drift detection up to opts.Level and returns the report.
// Level 1 always runs; levels 2 and 3 stack on top.
func (s *DriftService) Run(target string, opts DriftOptions) (*domain.DriftReport, error) {
	if opts.Level < 1 || opts.Level > 3 {
		return nil, &domain.ConfigError{Msg: fmt.Sprintf("drift level must be 1, 2 or 3, got %d", opts.Level)}
	}

	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		return nil, &domain.NotFoundError{Path: target}
	}

	resolution, err := ResolveRules(s.loader, opts.RulesPath, target, opts.StrictKeys)
	if err != nil {
		return nil, err
	}

	profile := s.inspector.Detect(target)
	scan, err := s.scanner.Scan(target, resolution.Rules.Excludes)
	if err != nil {
		return nil, err
	}

	// The detector probes the conventional summary location; a rule file
	// can move it. The scan inventory settles whether it exists.
	if !profile.HasDerivedSummary {
		for _, rel := range scan.AllFiles {
			if rel == resolution.Rules.SummaryPath {
				profile.HasDerivedSummary = true
				profile.Evidence[domain.CapDerivedSummary] = rel
				break
			}
		}
	}

	report := &domain.DriftReport{
		Repo:        filepath.Base(scan.RootPath),
		Level:       opts.Level,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if s.revctl.IsRepo(target) {
		if head, err := s.revctl.Head(target); err == nil {
			report.RepoHead = head
		}
		if branch, err := s.revctl.Branch(target); err == nil {
			report.Branch = branch
		}
	}

	ctx := &driftContext{
		root:    target,
		rules:   resolution.Rules,
		profile: profile,
		scan:    scan,
		counter: domain.NewFindingCounter(),
		report:  report,
		verbose: opts.Verbose,
	}

	if err := s.runLevel1(ctx); err != nil {
		return nil, err
	}
	if opts.Level >= 2 {
		if err := s.runLevel2(ctx); err != nil {
			return nil, err
		}
	}
	if opts.Level >= 3 {
		s.runLevel3(ctx)
	}

	return report, nil
}

// canonicalDocs returns the existing canonical-scope documents and their
// content, keyed by repo-relative path.
func (c *driftContext) canonicalDocs() map[string]string {
	docs := map[string]string{}
	for _, rel := range c.scan.MarkdownFiles {
		if matchesScope(rel, c.rules.CanonicalScope) {
			if content, err := readRel(c.root, rel); err == nil {
				docs[rel] = content
			}
		}
	}
	return docs
}

// sortedKeys keeps doc iteration deterministic so finding IDs are stable
// across runs on unchanged input.
func sortedKeys(docs map[string]string) []string {
	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func matchesScope(rel string, scope []string) bool {
	for _, pattern := range scope {
		if rel == pattern {
			return true
		}
		if strings.ContainsAny(pattern, "*?") {
			if ok, _ := path.Match(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}

package application

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/drift"
)

// runLevel1 performs the fast inventory pass: declared capability
// inventories against what the filesystem actually contains.
func (s *DriftService) runLevel1(ctx *driftContext) error {
	s.checkCanonicalScope(ctx)
	s.checkTopLevelDirs(ctx)

	if ctx.profile.HasValidators {
		if err := s.checkValidatorInventory(ctx); err != nil {
			return err
		}
	} else {
		ctx.skip("validator inventory", domain.CapValidators)
	}

	s.checkCapabilityDir(ctx, "schemas", ctx.profile.HasSchemas, domain.CapSchemas)
	s.checkCapabilityDir(ctx, "taxonomies", ctx.profile.HasTaxonomies, domain.CapTaxonomies)
	s.checkStalePaths(ctx)
	return nil
}

// checkCanonicalScope flags scope entries that match nothing: a rule
// pointing at nothing is configuration drift worth surfacing, not failing.
func (s *DriftService) checkCanonicalScope(ctx *driftContext) {
	for _, pattern := range ctx.rules.CanonicalScope {
		matched := false
		if strings.ContainsAny(pattern, "*?") {
			for _, rel := range ctx.scan.AllFiles {
				if matchesScope(rel, []string{pattern}) {
					matched = true
					break
				}
			}
		} else {
			_, err := os.Stat(filepath.Join(ctx.root, filepath.FromSlash(pattern)))
			matched = err == nil
		}
		if !matched {
			ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
				ID:       ctx.counter.NextID(1),
				Level:    1,
				Severity: checkSeverity["canonical_scope_gap"],
				Category: domain.CategoryConfigWarning,
				Message:  fmt.Sprintf("canonical scope entry %q matches nothing", pattern),
				SuggestedFix: []string{
					fmt.Sprintf("create %s or remove it from canonical_scope", pattern),
				},
			})
		}
	}
}

func (s *DriftService) checkTopLevelDirs(ctx *driftContext) {
	allowed := map[string]bool{}
	for _, dir := range ctx.rules.AllowedTopLevelDirs {
		allowed[dir] = true
	}
	for _, dir := range ctx.scan.TopLevelDirs {
		if strings.HasPrefix(dir, ".") || allowed[dir] {
			continue
		}
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(1),
			Level:    1,
			Severity: checkSeverity["unexpected_top_dir"],
			Category: domain.CategoryInventoryMismatch,
			Message:  fmt.Sprintf("unexpected top-level directory: %s", dir),
			File:     dir,
			SuggestedFix: []string{
				fmt.Sprintf("move %s/ to an allowed location or add it to allowed_top_level_dirs", dir),
			},
		})
	}
}

// checkValidatorInventory compares the declared validator manifest against
// the check_* files on disk, in both directions.
func (s *DriftService) checkValidatorInventory(ctx *driftContext) error {
	declared, err := s.declaredValidators(ctx)
	if err != nil {
		return err
	}

	var observed []string
	for _, file := range ctx.scan.ValidatorFiles {
		observed = append(observed, drift.ValidatorNameFromFile(file))
	}

	missing, unregistered := drift.CompareInventories(declared, observed)
	if len(missing) > 0 {
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(1),
			Level:    1,
			Severity: checkSeverity["validator_missing"],
			Category: domain.CategoryInventoryMismatch,
			Message:  fmt.Sprintf("validators declared but files missing: %s", strings.Join(missing, ", ")),
			File:     ctx.profile.Evidence[domain.CapValidators],
			SuggestedFix: []string{
				"create the missing validator files",
				"or remove them from the manifest if intentional",
			},
		})
	}
	if len(unregistered) > 0 {
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(1),
			Level:    1,
			Severity: checkSeverity["validator_unregistered"],
			Category: domain.CategoryInventoryMismatch,
			Message:  fmt.Sprintf("validator files exist but are not declared: %s", strings.Join(unregistered, ", ")),
			File:     ctx.profile.Evidence[domain.CapValidators],
			SuggestedFix: []string{
				"add the missing names to validators/manifest.yaml",
			},
		})
	}
	return nil
}

// declaredValidators reads the validator manifest named by the profile.
func (s *DriftService) declaredValidators(ctx *driftContext) ([]string, error) {
	manifestRel := ctx.profile.Evidence[domain.CapValidators]
	doc, err := s.loader.Load(filepath.Join(ctx.root, filepath.FromSlash(manifestRel)))
	if err != nil {
		return nil, err
	}
	raw, ok := doc["validators"].([]any)
	if !ok {
		return nil, &domain.ParseError{
			Path: manifestRel,
			Err:  fmt.Errorf("manifest is missing the validators list"),
		}
	}
	var names []string
	for _, item := range raw {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// checkCapabilityDir flags present-but-empty capability directories.
// Absent directories are skipped, never reported as missing.
func (s *DriftService) checkCapabilityDir(ctx *driftContext, dir string, present bool, capability string) {
	if !present {
		ctx.skip(dir+" inventory", capability)
		return
	}

	for _, rel := range ctx.scan.AllFiles {
		if strings.HasPrefix(rel, dir+"/") {
			return
		}
	}
	ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
		ID:           ctx.counter.NextID(1),
		Level:        1,
		Severity:     checkSeverity["capability_dir_empty"],
		Category:     domain.CategoryInventoryMismatch,
		Message:      fmt.Sprintf("%s/ directory is empty", dir),
		File:         dir,
		SuggestedFix: []string{fmt.Sprintf("add files to %s/ or remove the directory", dir)},
	})
}

// checkStalePaths greps canonical docs for configured stale path patterns.
func (s *DriftService) checkStalePaths(ctx *driftContext) {
	if len(ctx.rules.StalePathPatterns) == 0 {
		return
	}

	var patterns []*regexp.Regexp
	for _, raw := range ctx.rules.StalePathPatterns {
		if re, err := regexp.Compile(raw); err == nil {
			patterns = append(patterns, re)
		}
	}

	docs := ctx.canonicalDocs()
	for _, rel := range sortedKeys(docs) {
		for i, line := range strings.Split(docs[rel], "\n") {
			for _, re := range patterns {
				if re.MatchString(line) {
					ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
						ID:       ctx.counter.NextID(1),
						Level:    1,
						Severity: checkSeverity["stale_path"],
						Category: domain.CategoryStalePath,
						Message:  fmt.Sprintf("stale path reference matching %q", re.String()),
						File:     rel,
						Line:     i + 1,
					})
				}
			}
		}
	}
}

package application

import (
	"fmt"
	"time"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/drift"
)

// runLevel3 performs the placement pass: artifacts living in locations
// inconsistent with the capability they claim, plus orphan candidates.
func (s *DriftService) runLevel3(ctx *driftContext) {
	if ctx.profile.HasValidators {
		s.checkValidatorPlacement(ctx)
	} else {
		ctx.skip("validator placement", domain.CapValidators)
	}

	s.checkRootConfigs(ctx)
	s.checkOrphans(ctx)
}

func (s *DriftService) checkValidatorPlacement(ctx *driftContext) {
	for _, file := range drift.MisplacedInValidators(ctx.scan.AllFiles) {
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(3),
			Level:    3,
			Severity: checkSeverity["misplaced_in_area"],
			Category: domain.CategoryMisplacedArtifact,
			Message:  fmt.Sprintf("non-validator file in validators/: %s", file),
			File:     file,
			SuggestedFix: []string{
				"move the file out of validators/",
			},
		})
	}

	for _, file := range drift.StrayValidators(ctx.scan.AllFiles, ctx.rules.Excludes) {
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(3),
			Level:    3,
			Severity: checkSeverity["stray_validator"],
			Category: domain.CategoryMisplacedArtifact,
			Message:  fmt.Sprintf("validator-like file outside validators/: %s", file),
			File:     file,
			SuggestedFix: []string{
				"move the file into validators/ and declare it in the manifest",
			},
		})
	}
}

func (s *DriftService) checkRootConfigs(ctx *driftContext) {
	for _, file := range drift.RootConfigStrays(ctx.scan.RootFiles) {
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:             ctx.counter.NextID(3),
			Level:          3,
			Severity:       checkSeverity["root_config_stray"],
			Category:       domain.CategoryMisplacedArtifact,
			Message:        fmt.Sprintf("config file at repository root: %s", file),
			File:           file,
			Confidence:     "low",
			RequiresReview: true,
			SuggestedFix: []string{
				fmt.Sprintf("consider moving %s to 30_config/", file),
				"or leave it if root placement is intentional",
			},
		})
	}
}

// checkOrphans flags markdown files no canonical doc references. Young
// files get low confidence; they may simply not be wired up yet.
func (s *DriftService) checkOrphans(ctx *driftContext) {
	graph := drift.BuildReferenceGraph(ctx.canonicalDocs())
	minAge := time.Duration(ctx.rules.MinOrphanAgeDays) * 24 * time.Hour

	for _, rel := range ctx.scan.MarkdownFiles {
		if drift.MatchesAny(rel, ctx.rules.ProtectedPaths) {
			continue
		}
		if matchesScope(rel, ctx.rules.CanonicalScope) {
			continue
		}
		if inbound := graph.Inbound(rel); len(inbound) > 0 {
			continue
		}

		age := time.Duration(0)
		if modTime, ok := ctx.scan.ModTimes[rel]; ok {
			age = time.Since(modTime)
		}
		confidence := "high"
		requiresReview := false
		if age < minAge {
			confidence = "low"
			requiresReview = true
		}

		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:             ctx.counter.NextID(3),
			Level:          3,
			Severity:       checkSeverity["orphan_candidate"],
			Category:       domain.CategoryOrphanCandidate,
			Message:        fmt.Sprintf("orphan candidate: %s", rel),
			File:           rel,
			Confidence:     confidence,
			RequiresReview: requiresReview,
			Context: map[string]any{
				"age_days":     int(age.Hours() / 24),
				"min_age_days": ctx.rules.MinOrphanAgeDays,
			},
			SuggestedFix: []string{
				"reference it from a canonical doc if still needed",
				"or move it to 90_archive/",
			},
		})
	}
}

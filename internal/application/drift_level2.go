package application

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/drift"
)

// runLevel2 performs the consistency pass: generated and derived artifacts
// against their declared source of truth.
func (s *DriftService) runLevel2(ctx *driftContext) error {
	docs := ctx.canonicalDocs()

	if ctx.profile.HasValidators {
		if err := s.checkValidatorClaims(ctx, docs); err != nil {
			return err
		}
	} else {
		ctx.skip("validator claims", domain.CapValidators)
	}

	s.checkInternalLinks(ctx, docs)

	if ctx.profile.HasMetaFile {
		if err := s.checkMetaDrift(ctx); err != nil {
			return err
		}
	} else {
		ctx.skip("meta drift", domain.CapMetaFile)
	}

	if ctx.profile.HasDerivedSummary {
		if err := s.checkSummaryFreshness(ctx); err != nil {
			return err
		}
	} else {
		ctx.skip("summary freshness", domain.CapDerivedSummary)
	}

	return nil
}

// checkValidatorClaims compares what each canonical doc claims about the
// validator inventory against the manifest ground truth. Docs that mention
// no validators at all are not making claims and stay silent.
func (s *DriftService) checkValidatorClaims(ctx *driftContext, docs map[string]string) error {
	groundTruth, err := s.declaredValidators(ctx)
	if err != nil {
		return err
	}

	for _, rel := range sortedKeys(docs) {
		claimed := drift.ExtractValidatorClaims(docs[rel])
		if len(claimed) == 0 {
			continue
		}

		diff := drift.DiffClaims(groundTruth, claimed)

		if len(diff.Missing) > 0 {
			kind := "claims_omission"
			if diff.OmissionRatio > 0.2 {
				kind = "claims_omission_wide"
			}
			ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
				ID:       ctx.counter.NextID(2),
				Level:    2,
				Severity: checkSeverity[kind],
				Category: domain.CategoryDocContradiction,
				Message: fmt.Sprintf("%s omits %d of %d validators: %s",
					rel, len(diff.Missing), len(groundTruth), strings.Join(diff.Missing, ", ")),
				File: rel,
				SuggestedFix: []string{
					"add the missing validators to " + rel,
					"or regenerate it if it is a derived document",
				},
			})
		}

		if len(diff.Phantom) > 0 {
			ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
				ID:       ctx.counter.NextID(2),
				Level:    2,
				Severity: checkSeverity["claims_phantom"],
				Category: domain.CategoryDocContradiction,
				Message: fmt.Sprintf("%s mentions validators that do not exist: %s",
					rel, strings.Join(diff.Phantom, ", ")),
				File: rel,
				SuggestedFix: []string{
					"remove the phantom references or create the validators",
				},
			})
		}
	}
	return nil
}

// checkInternalLinks verifies that relative links in canonical docs point
// at files that exist. A broken reference in a canonical doc breaks
// consumer expectations, hence critical.
func (s *DriftService) checkInternalLinks(ctx *driftContext, docs map[string]string) {
	for _, rel := range sortedKeys(docs) {
		for _, link := range drift.ExtractInternalLinks(rel, docs[rel]) {
			if _, err := os.Stat(filepath.Join(ctx.root, filepath.FromSlash(link.Resolved))); err == nil {
				continue
			}
			ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
				ID:       ctx.counter.NextID(2),
				Level:    2,
				Severity: checkSeverity["broken_link"],
				Category: domain.CategoryBrokenLink,
				Message:  fmt.Sprintf("broken link to %q", link.Target),
				File:     rel,
				Line:     link.Line,
				Observed: link.Resolved,
				SuggestedFix: []string{
					fmt.Sprintf("fix or remove the link to %q", link.Target),
				},
			})
		}
	}
}

// checkMetaDrift compares META-declared folders against the directories
// actually present.
func (s *DriftService) checkMetaDrift(ctx *driftContext) error {
	doc, err := s.loader.Load(filepath.Join(ctx.root, "META.yaml"))
	if err != nil {
		return err
	}

	raw, ok := doc["folders"].([]any)
	if !ok {
		return nil
	}

	dirs := map[string]bool{}
	for _, dir := range ctx.scan.TopLevelDirs {
		dirs[dir] = true
	}

	for _, item := range raw {
		folder, ok := item.(string)
		if !ok {
			continue
		}
		if dirs[strings.TrimSuffix(folder, "/")] {
			continue
		}
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(2),
			Level:    2,
			Severity: checkSeverity["meta_folder_drift"],
			Category: domain.CategoryMetaMismatch,
			Message:  fmt.Sprintf("META.yaml declares folder %q which does not exist", folder),
			File:     "META.yaml",
			SuggestedFix: []string{
				"remove the folder from META.yaml or create it",
			},
		})
	}
	return nil
}

// checkSummaryFreshness verifies the derived summary two ways: its
// recorded content hash in the snapshot document, and its declared
// revision marker against the current head within the configured lag
// tolerance.
func (s *DriftService) checkSummaryFreshness(ctx *driftContext) error {
	summaryRel := ctx.rules.SummaryPath
	content, err := readRel(ctx.root, summaryRel)
	if err != nil {
		return nil
	}

	s.checkRecordedHash(ctx, summaryRel, content)
	s.checkRevisionLag(ctx, summaryRel, content)
	return nil
}

// checkRecordedHash compares the snapshot's recorded summary hash with the
// hash of the file as it exists on disk.
func (s *DriftService) checkRecordedHash(ctx *driftContext, summaryRel, content string) {
	doc, err := s.loader.Load(filepath.Join(ctx.root, filepath.FromSlash(ctx.rules.SnapshotPath)))
	if err != nil {
		return
	}
	primer, ok := doc["primer"].(map[string]any)
	if !ok {
		return
	}
	recorded, _ := primer["sha256"].(string)
	if recorded == "" {
		return
	}

	sum := sha256.Sum256([]byte(content))
	actual := hex.EncodeToString(sum[:])
	if recorded == actual {
		return
	}

	ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
		ID:       ctx.counter.NextID(2),
		Level:    2,
		Severity: checkSeverity["summary_hash_mismatch"],
		Category: domain.CategoryStaleSummary,
		Message:  fmt.Sprintf("%s content does not match the hash recorded in %s", summaryRel, ctx.rules.SnapshotPath),
		File:     summaryRel,
		Expected: shortHash(recorded),
		Observed: shortHash(actual),
		SuggestedFix: []string{
			"regenerate the snapshot document",
		},
	})
}

// shortHash truncates a hash for display. Recorded hashes come from the
// snapshot document and may be arbitrarily short or malformed.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

// checkRevisionLag classifies how far the summary's declared revision
// marker trails the current head. A lag within tolerance is expected and
// informational; beyond it the summary is stale.
func (s *DriftService) checkRevisionLag(ctx *driftContext, summaryRel, content string) {
	marker := drift.ExtractSummaryMarker(content)
	if marker == "" || ctx.report.RepoHead == "" {
		return
	}
	if drift.MarkersEqual(marker, ctx.report.RepoHead) {
		return
	}

	lag, err := s.revctl.LagCommits(ctx.root, marker)
	if err != nil {
		// Marker not in history at all: stale beyond measurement.
		ctx.report.Findings = append(ctx.report.Findings, domain.Finding{
			ID:       ctx.counter.NextID(2),
			Level:    2,
			Severity: checkSeverity["summary_lag_exceeded"],
			Category: domain.CategoryStaleSummary,
			Message:  fmt.Sprintf("%s declares revision %s which is not in the current history", summaryRel, marker),
			File:     summaryRel,
			Expected: ctx.report.RepoHead[:7],
			Observed: marker,
			SuggestedFix: []string{
				"regenerate " + summaryRel,
			},
		})
		return
	}

	severity := drift.LagSeverity(lag, ctx.rules.AllowedLagCommits)
	finding := domain.Finding{
		ID:       ctx.counter.NextID(2),
		Level:    2,
		Severity: severity,
		Category: domain.CategoryStaleSummary,
		File:     summaryRel,
		Expected: ctx.report.RepoHead[:7],
		Observed: marker,
		Context: map[string]any{
			"lag_commits": lag,
			"allowed_lag": ctx.rules.AllowedLagCommits,
		},
	}
	if severity == domain.SeverityInfo {
		finding.Message = fmt.Sprintf("%s is %d commit(s) behind head, within the allowed lag of %d",
			summaryRel, lag, ctx.rules.AllowedLagCommits)
		finding.SuggestedFix = []string{"no action needed; lag is within tolerance"}
	} else {
		finding.Message = fmt.Sprintf("%s is %d commit(s) behind head, beyond the allowed lag of %d",
			summaryRel, lag, ctx.rules.AllowedLagCommits)
		finding.SuggestedFix = []string{"regenerate " + summaryRel}
	}
	ctx.report.Findings = append(ctx.report.Findings, finding)
}

package detector

import (
	"os"
	"path/filepath"

	"github.com/driftguard/driftguard/internal/domain"
)

// ProfileDetector implements domain.RepoInspector with existence checks
// only. Detection never parses content; it only names the file or
// directory that justifies each capability flag.
type ProfileDetector struct{}

func New() *ProfileDetector { return &ProfileDetector{} }

// Well-known capability locations.
const (
	validatorManifest = "validators/manifest.yaml"
	schemasDir        = "schemas"
	taxonomiesDir     = "taxonomies"
	metaFile          = "META.yaml"
	summaryFile       = "PROJECT_PRIMER.md"
	localRulesFile    = "30_config/drift_rules.yaml"
)

func (d *ProfileDetector) Detect(root string) domain.RepoProfile {
	profile := domain.RepoProfile{
		Root:     root,
		Evidence: map[string]string{},
	}

	record := func(cap string, rel string, present *bool, isDir bool) {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || info.IsDir() != isDir {
			return
		}
		*present = true
		profile.Evidence[cap] = rel
	}

	record(domain.CapValidators, validatorManifest, &profile.HasValidators, false)
	record(domain.CapSchemas, schemasDir, &profile.HasSchemas, true)
	record(domain.CapTaxonomies, taxonomiesDir, &profile.HasTaxonomies, true)
	record(domain.CapMetaFile, metaFile, &profile.HasMetaFile, false)
	record(domain.CapDerivedSummary, summaryFile, &profile.HasDerivedSummary, false)
	record(domain.CapLocalRules, localRulesFile, &profile.HasLocalRules, false)

	return profile
}

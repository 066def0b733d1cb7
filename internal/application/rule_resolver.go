package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

// LocalRulesPath is where a repository declares its own rule overrides.
const LocalRulesPath = "30_config/drift_rules.yaml"

// RuleResolution is the outcome of one rule merge: the effective set, the
// per-key provenance record, and any unknown-key warnings.
type RuleResolution struct {
	Rules      domain.RuleSet
	Provenance domain.Provenance
	Warnings   []string
}

// ResolveRules merges built-in defaults, the repo-local rules file, and an
// explicit CLI-supplied file. Precedence is explicit > local > default and
// is applied per top-level key, never per document, so an override file
// only wins the keys it actually sets. strictKeys turns unknown-key
// warnings into a configuration error.
func ResolveRules(loader domain.ConfigLoader, cliRulesPath, root string, strictKeys bool) (*RuleResolution, error) {
	res := &RuleResolution{
		Rules:      domain.DefaultRules(),
		Provenance: domain.Provenance{},
	}
	for _, key := range domain.KnownRuleKeys() {
		res.Provenance[key] = domain.SourceDefault
	}

	localPath := filepath.Join(root, filepath.FromSlash(LocalRulesPath))
	if err := res.overlayFile(loader, localPath, domain.SourceRepo, false); err != nil {
		return nil, err
	}

	if cliRulesPath != "" {
		// An explicitly named file must exist; a missing override is a
		// configuration mistake, not a silent fallback.
		if err := res.overlayFile(loader, cliRulesPath, domain.SourceExplicit, true); err != nil {
			return nil, err
		}
	}

	if strictKeys && len(res.Warnings) > 0 {
		return nil, &domain.ConfigError{
			Msg: "unknown rule keys: " + strings.Join(res.Warnings, "; "),
		}
	}
	return res, nil
}

func (r *RuleResolution) overlayFile(loader domain.ConfigLoader, path string, source domain.RuleSource, required bool) error {
	doc, err := loader.Load(path)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) && !required {
			return nil
		}
		return err
	}

	warnings, err := r.Rules.Overlay(doc, source, r.Provenance)
	r.Warnings = append(r.Warnings, warnings...)
	if err != nil {
		return &domain.ParseError{Path: path, Err: err}
	}
	return nil
}

// ProvenanceLines renders the provenance record as stable, sorted
// "key: source" lines for audit output.
func (r *RuleResolution) ProvenanceLines() []string {
	keys := domain.KnownRuleKeys()
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", key, r.Provenance[key]))
	}
	return lines
}

package application

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

// ValidateService orchestrates the validator registry against one target.
type ValidateService struct {
	loader    domain.ConfigLoader
	inspector domain.RepoInspector
	scanner   domain.WorkspaceScanner
	revctl    domain.RevisionControl
}

func NewValidateService(
	loader domain.ConfigLoader,
	inspector domain.RepoInspector,
	scanner domain.WorkspaceScanner,
	revctl domain.RevisionControl,
) *ValidateService {
	return &ValidateService{
		loader: loader, inspector: inspector, scanner: scanner, revctl: revctl,
	}
}

// RunOptions control one orchestrator run.
type RunOptions struct {
	// Names selects validators to run; empty or ["all"] means all.
	Names []string
	// RulesPath is an explicit rule file supplied on the command line.
	RulesPath string
	// Strict elevates warnings to errors before pass/fail is evaluated
	// and makes the snapshot validator verify the declared head.
	Strict bool
	// StrictKeys turns unknown rule-file keys into configuration errors.
	// Independent of Strict.
	StrictKeys bool
	// KeepGoing collects all failures instead of stopping at the first
	// failing validator.
	KeepGoing bool
	Verbose   bool
}

// validatorFunc runs one registered check. Returned errors are
// configuration or parse failures, not rule violations.
type validatorFunc func(env *validatorEnv) (*domain.ValidationResult, error)

// validatorEnv is the per-run context handed to every validator.
type validatorEnv struct {
	root    string
	rules   domain.RuleSet
	profile domain.RepoProfile
	scan    *domain.ScanResult
	loader  domain.ConfigLoader
	revctl  domain.RevisionControl
	strict  bool
	verbose bool
}

// validatorOrder fixes run order; the registry itself is a static table.
var validatorOrder = []string{
	"structure", "meta", "features", "capsule", "snapshot", "registry",
}

var validatorRegistry = map[string]validatorFunc{
	"structure": runStructureValidator,
	"meta":      runMetaValidator,
	"features":  runFeaturesValidator,
	"capsule":   runCapsuleValidator,
	"snapshot":  runSnapshotValidator,
	"registry":  runRegistryValidator,
}

// RegisteredValidators returns all registry names, sorted.
func RegisteredValidators() []string {
	names := make([]string, 0, len(validatorRegistry))
	for name := range validatorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the requested validators against target. Fail-fast is the
// default, documented policy; KeepGoing overrides it. An unregistered name
// is a configuration error, distinct from a validation failure.
func (s *ValidateService) Run(target string, opts RunOptions) (*domain.RunSummary, error) {
	names, err := resolveNames(opts.Names)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Path: target}
		}
		return nil, err
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

	env := &validatorEnv{
		root:    target,
		rules:   resolution.Rules,
		profile: profile,
		scan:    scan,
		loader:  s.loader,
		revctl:  s.revctl,
		strict:  opts.Strict,
		verbose: opts.Verbose,
	}

	summary := &domain.RunSummary{
		Target:   target,
		Warnings: resolution.Warnings,
	}

	for _, name := range names {
		result, err := validatorRegistry[name](env)
		if err != nil {
			return nil, err
		}
		if opts.Strict {
			result.ElevateWarnings()
		}
		summary.Results = append(summary.Results, result)

		if !result.Passed() && !opts.KeepGoing {
			summary.Stopped = true
			break
		}
	}

	return summary, nil
}

func resolveNames(requested []string) ([]string, error) {
	if len(requested) == 0 || (len(requested) == 1 && requested[0] == "all") {
		return validatorOrder, nil
	}

	var unknown []string
	for _, name := range requested {
		if _, ok := validatorRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, &domain.ConfigError{Msg: fmt.Sprintf(
			"unknown validator(s): %s (available: %s)",
			strings.Join(unknown, ", "),
			strings.Join(RegisteredValidators(), ", "))}
	}

	// Preserve registry order regardless of request order.
	requestedSet := map[string]bool{}
	for _, name := range requested {
		requestedSet[name] = true
	}
	var names []string
	for _, name := range validatorOrder {
		if requestedSet[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

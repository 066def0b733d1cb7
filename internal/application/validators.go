package application

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/validate"
)

// FeaturesConfigPath is where the feature-toggle configuration lives.
const FeaturesConfigPath = "30_config/features.yaml"

// RegistryPath is the project registry document location.
const RegistryPath = "registry/repos.yaml"

func runStructureValidator(env *validatorEnv) (*domain.ValidationResult, error) {
	inv := validate.StructureInventory{
		RootFiles: env.scan.RootFiles,
		RootDirs:  env.scan.TopLevelDirs,
	}
	if content, err := readRel(env.root, "README.md"); err == nil {
		inv.HasReadme = true
		inv.ReadmeContent = content
	}
	return validate.CheckStructure(inv, env.rules), nil
}

func runMetaValidator(env *validatorEnv) (*domain.ValidationResult, error) {
	if !env.profile.HasMetaFile {
		return skipped("meta", domain.CapMetaFile), nil
	}
	doc, err := env.loader.Load(filepath.Join(env.root, "META.yaml"))
	if err != nil {
		return nil, err
	}
	return validate.CheckMeta(doc, env.scan.TopLevelDirs), nil
}

func runFeaturesValidator(env *validatorEnv) (*domain.ValidationResult, error) {
	doc, err := env.loader.Load(filepath.Join(env.root, filepath.FromSlash(FeaturesConfigPath)))
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			result := &domain.ValidationResult{Validator: "features", Skipped: true}
			result.AddTip("no feature configuration present")
			return result, nil
		}
		return nil, err
	}
	return validate.CheckFeatures(doc), nil
}

// runCapsuleValidator checks every markdown file that declares a capsule
// envelope. Files without capsule frontmatter are not capsules and are
// left alone.
func runCapsuleValidator(env *validatorEnv) (*domain.ValidationResult, error) {
	result := &domain.ValidationResult{Validator: "capsule"}
	checked := 0

	for _, rel := range env.scan.MarkdownFiles {
		content, err := readRel(env.root, rel)
		if err != nil {
			continue
		}
		if !validate.HasCapsuleFrontmatter(content) {
			continue
		}
		checked++

		block, _ := validate.Frontmatter(content)
		doc, err := env.loader.Decode(rel, []byte(block))
		if err != nil {
			// A capsule with broken frontmatter is a failing capsule,
			// not a run abort; other files still get checked.
			result.Findings = append(result.Findings, domain.ValidatorFinding{
				Level:   domain.LevelError,
				Message: "malformed capsule frontmatter",
				File:    rel,
			})
			continue
		}
		validate.CheckCapsule(result, doc, rel)
	}

	result.Payload = map[string]any{"capsules_checked": checked}
	return result, nil
}

func runSnapshotValidator(env *validatorEnv) (*domain.ValidationResult, error) {
	snapshotRel := env.rules.SnapshotPath
	doc, err := env.loader.Load(filepath.Join(env.root, filepath.FromSlash(snapshotRel)))
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			result := &domain.ValidationResult{Validator: "snapshot", Skipped: true}
			result.AddTip(fmt.Sprintf("no snapshot document at %s", snapshotRel))
			return result, nil
		}
		return nil, err
	}

	state := validate.SnapshotState{SummaryPath: env.rules.SummaryPath}
	summaryAbs := filepath.Join(env.root, filepath.FromSlash(env.rules.SummaryPath))
	if data, err := os.ReadFile(summaryAbs); err == nil {
		state.SummaryExists = true
		sum := sha256.Sum256(data)
		state.SummaryHash = hex.EncodeToString(sum[:])
	}
	if env.revctl.IsRepo(env.root) {
		if head, err := env.revctl.Head(env.root); err == nil {
			state.Head = head
		}
	}

	return validate.CheckSnapshot(doc, state, env.strict), nil
}

func runRegistryValidator(env *validatorEnv) (*domain.ValidationResult, error) {
	doc, err := env.loader.Load(filepath.Join(env.root, filepath.FromSlash(RegistryPath)))
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			result := &domain.ValidationResult{Validator: "registry", Skipped: true}
			result.AddTip("no project registry present")
			return result, nil
		}
		return nil, err
	}
	return validate.CheckRegistryEntries(doc), nil
}

// skipped marks a validator as gated out by an absent capability. The skip
// is surfaced, never silently omitted.
func skipped(name, capability string) *domain.ValidationResult {
	result := &domain.ValidationResult{Validator: name, Skipped: true}
	result.AddTip("skipped: capability absent (" + capability + ")")
	return result
}

func readRel(root, rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

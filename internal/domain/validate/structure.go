package validate

import (
	"fmt"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

// Repo-card marker tags must appear in balanced start/end pairs in README.
const (
	RepoCardStart = "<!-- repo-card:start -->"
	RepoCardEnd   = "<!-- repo-card:end -->"
)

// StructureInventory is the filesystem evidence the structure validator
// needs: nothing is read inside the check itself.
type StructureInventory struct {
	RootFiles     []string
	RootDirs      []string
	ReadmeContent string
	HasReadme     bool
}

// CheckStructure validates the repository structure contract: required
// files and directories present, recommended files suggested, repo-card
// marker tags balanced.
func CheckStructure(inv StructureInventory, rules domain.RuleSet) *domain.ValidationResult {
	result := &domain.ValidationResult{Validator: "structure"}

	files := toSet(inv.RootFiles)
	dirs := toSet(inv.RootDirs)

	for _, name := range rules.RequiredFiles {
		if !files[name] {
			result.AddError(fmt.Sprintf("missing required file: %s", name))
		}
	}
	for _, name := range rules.RequiredDirs {
		if !dirs[name] {
			result.AddError(fmt.Sprintf("missing required directory: %s", name))
		}
	}
	for _, name := range rules.RecommendedFiles {
		if !files[name] && !dirs[name] {
			result.AddTip(fmt.Sprintf("recommended file missing: %s", name))
		}
	}

	if inv.HasReadme {
		checkRepoCardMarkers(result, inv.ReadmeContent)
	}

	return result
}

// checkRepoCardMarkers verifies start/end tags pair up in order.
func checkRepoCardMarkers(result *domain.ValidationResult, content string) {
	starts := strings.Count(content, RepoCardStart)
	ends := strings.Count(content, RepoCardEnd)

	switch {
	case starts == 0 && ends == 0:
		// No repo card at all: advisory only.
		result.AddTip("README.md has no repo-card block")
	case starts != ends:
		result.AddError(fmt.Sprintf(
			"README.md repo-card markers unbalanced: %d start, %d end", starts, ends))
	case strings.Index(content, RepoCardStart) > strings.Index(content, RepoCardEnd):
		result.AddError("README.md repo-card end marker appears before start marker")
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

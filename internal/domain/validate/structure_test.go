package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/validate"
)

func structureRules() domain.RuleSet {
	rules := domain.DefaultRules()
	rules.RequiredFiles = []string{"README.md", ".gitignore"}
	rules.RequiredDirs = []string{"20_receipts"}
	rules.RecommendedFiles = []string{"CLAUDE.md"}
	return rules
}

func TestCheckStructurePasses(t *testing.T) {
	inv := validate.StructureInventory{
		RootFiles:     []string{"README.md", ".gitignore", "CLAUDE.md"},
		RootDirs:      []string{"20_receipts", "30_config"},
		HasReadme:     true,
		ReadmeContent: "# Workspace\n",
	}

	result := validate.CheckStructure(inv, structureRules())
	assert.True(t, result.Passed())
}

func TestCheckStructureMissingRequired(t *testing.T) {
	inv := validate.StructureInventory{
		RootFiles: []string{"README.md"},
		RootDirs:  nil,
	}

	result := validate.CheckStructure(inv, structureRules())
	require.False(t, result.Passed())

	errs := result.Errors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, ".gitignore")
	assert.Contains(t, errs[1].Message, "20_receipts")
}

func TestCheckStructureRecommendedIsTip(t *testing.T) {
	inv := validate.StructureInventory{
		RootFiles: []string{"README.md", ".gitignore"},
		RootDirs:  []string{"20_receipts"},
	}

	result := validate.CheckStructure(inv, structureRules())
	assert.True(t, result.Passed(), "recommended files are advisory")

	var tips int
	for _, f := range result.Findings {
		if f.Level == domain.LevelTip {
			tips++
		}
	}
	assert.GreaterOrEqual(t, tips, 1)
}

func TestRepoCardMarkers(t *testing.T) {
	base := validate.StructureInventory{
		RootFiles: []string{"README.md", ".gitignore"},
		RootDirs:  []string{"20_receipts"},
		HasReadme: true,
	}

	t.Run("balanced", func(t *testing.T) {
		inv := base
		inv.ReadmeContent = "intro\n" + validate.RepoCardStart + "\ncard\n" + validate.RepoCardEnd + "\n"
		assert.True(t, validate.CheckStructure(inv, structureRules()).Passed())
	})

	t.Run("unbalanced", func(t *testing.T) {
		inv := base
		inv.ReadmeContent = validate.RepoCardStart + "\ncard\n"
		result := validate.CheckStructure(inv, structureRules())
		require.False(t, result.Passed())
		assert.Contains(t, result.Errors()[0].Message, "unbalanced")
	})

	t.Run("end before start", func(t *testing.T) {
		inv := base
		inv.ReadmeContent = validate.RepoCardEnd + "\n" + validate.RepoCardStart + "\n"
		result := validate.CheckStructure(inv, structureRules())
		require.False(t, result.Passed())
		assert.Contains(t, result.Errors()[0].Message, "before start")
	})
}

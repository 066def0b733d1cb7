package drift_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftguard/driftguard/internal/domain/drift"
)

func TestMatchesAnySubtree(t *testing.T) {
	patterns := []string{"20_receipts/**", ".git/**"}

	assert.True(t, drift.MatchesAny("20_receipts/2025/log.md", patterns))
	assert.True(t, drift.MatchesAny("20_receipts", patterns))
	assert.False(t, drift.MatchesAny("20_receipts_other/x.md", patterns))
	assert.False(t, drift.MatchesAny("30_config/rules.yaml", patterns))
}

func TestMatchesAnyGlob(t *testing.T) {
	patterns := []string{"*.tmp", "drafts/*.md"}

	assert.True(t, drift.MatchesAny("scratch.tmp", patterns))
	assert.True(t, drift.MatchesAny("deep/nested/scratch.tmp", patterns), "base-name match applies")
	assert.True(t, drift.MatchesAny("drafts/idea.md", patterns))
	assert.False(t, drift.MatchesAny("drafts/sub/idea.md", patterns))
}

func TestMatchesAnyEmpty(t *testing.T) {
	assert.False(t, drift.MatchesAny("anything.md", nil))
}

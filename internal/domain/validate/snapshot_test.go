package validate_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/domain/validate"
)

func validSnapshotDoc() map[string]any {
	return map[string]any{
		"epoch_schema":     validate.SnapshotSchemaV1,
		"repo_id":          "c010-workspace",
		"repo_head":        "abc1234def5678",
		"generated_at_utc": "2025-01-15T10:30:00Z",
	}
}

func TestCheckSnapshotValid(t *testing.T) {
	state := validate.SnapshotState{SummaryPath: "PROJECT_PRIMER.md"}
	result := validate.CheckSnapshot(validSnapshotDoc(), state, false)
	assert.True(t, result.Passed())
}

func TestCheckSnapshotWrongSchema(t *testing.T) {
	doc := validSnapshotDoc()
	doc["epoch_schema"] = "c010.epoch.v2"

	result := validate.CheckSnapshot(doc, validate.SnapshotState{}, false)
	require.False(t, result.Passed())
	assert.Contains(t, result.Errors()[0].Message, validate.SnapshotSchemaV1)
}

func TestCheckSnapshotBadHead(t *testing.T) {
	doc := validSnapshotDoc()
	doc["repo_head"] = "not-a-hash"

	result := validate.CheckSnapshot(doc, validate.SnapshotState{}, false)
	assert.False(t, result.Passed())
}

func TestCheckSnapshotBadTimestamp(t *testing.T) {
	doc := validSnapshotDoc()
	doc["generated_at_utc"] = "last tuesday"

	result := validate.CheckSnapshot(doc, validate.SnapshotState{}, false)
	assert.False(t, result.Passed())
}

func TestCheckSnapshotParsedTimestamp(t *testing.T) {
	// The YAML parser hands unquoted ISO-8601 scalars over as time.Time.
	doc := validSnapshotDoc()
	doc["generated_at_utc"] = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	state := validate.SnapshotState{SummaryPath: "PROJECT_PRIMER.md"}
	result := validate.CheckSnapshot(doc, state, false)
	assert.True(t, result.Passed())
}

func TestPrimerRequiredWhenSummaryExists(t *testing.T) {
	sum := sha256.Sum256([]byte("# Primer\n"))
	hash := hex.EncodeToString(sum[:])

	state := validate.SnapshotState{
		SummaryExists: true,
		SummaryPath:   "PROJECT_PRIMER.md",
		SummaryHash:   hash,
	}

	t.Run("missing primer block fails", func(t *testing.T) {
		result := validate.CheckSnapshot(validSnapshotDoc(), state, false)
		require.False(t, result.Passed())
		assert.Contains(t, result.Errors()[0].Message, "primer block is missing")
	})

	t.Run("matching hash passes", func(t *testing.T) {
		doc := validSnapshotDoc()
		doc["primer"] = map[string]any{"sha256": hash}
		result := validate.CheckSnapshot(doc, state, false)
		assert.True(t, result.Passed())
	})

	t.Run("mismatched hash fails", func(t *testing.T) {
		doc := validSnapshotDoc()
		doc["primer"] = map[string]any{"sha256": "0000000000000000"}
		result := validate.CheckSnapshot(doc, state, false)
		require.False(t, result.Passed())
		assert.Contains(t, result.Errors()[0].Message, "mismatch")
	})
}

func TestPrimerWithoutSummaryWarns(t *testing.T) {
	doc := validSnapshotDoc()
	doc["primer"] = map[string]any{"sha256": "abc"}

	state := validate.SnapshotState{SummaryPath: "PROJECT_PRIMER.md"}
	result := validate.CheckSnapshot(doc, state, false)
	assert.True(t, result.Passed(), "declared-but-absent summary is only a warning")
	assert.NotEmpty(t, result.Findings)
}

func TestStrictHeadMatch(t *testing.T) {
	doc := validSnapshotDoc()
	doc["repo_head"] = "abc1234"

	t.Run("prefix match passes", func(t *testing.T) {
		state := validate.SnapshotState{Head: "abc1234def5678abc1234def5678abc1234def56"}
		result := validate.CheckSnapshot(doc, state, true)
		assert.True(t, result.Passed())
	})

	t.Run("stale head fails", func(t *testing.T) {
		state := validate.SnapshotState{Head: "fff9999aaa0000fff9999aaa0000fff9999aaa00"}
		result := validate.CheckSnapshot(doc, state, true)
		require.False(t, result.Passed())
		assert.Contains(t, result.Errors()[0].Message, "stale")
	})

	t.Run("non-strict ignores head", func(t *testing.T) {
		state := validate.SnapshotState{Head: "fff9999aaa0000fff9999aaa0000fff9999aaa00"}
		result := validate.CheckSnapshot(doc, state, false)
		assert.True(t, result.Passed())
	})
}

func TestSnapshotUnknownFieldOrderStable(t *testing.T) {
	doc := validSnapshotDoc()
	doc["zeta"] = 1
	doc["alpha"] = 2
	doc["middle"] = 3

	result := validate.CheckSnapshot(doc, validate.SnapshotState{SummaryPath: "PROJECT_PRIMER.md"}, false)

	var unknown []string
	for _, f := range result.Findings {
		if strings.Contains(f.Message, "unknown field") {
			unknown = append(unknown, f.Message)
		}
	}
	require.Len(t, unknown, 3)
	assert.Contains(t, unknown[0], `"alpha"`)
	assert.Contains(t, unknown[1], `"middle"`)
	assert.Contains(t, unknown[2], `"zeta"`)
}

func TestSnapshotUnknownFieldStrict(t *testing.T) {
	doc := validSnapshotDoc()
	doc["surprise"] = true

	relaxed := validate.CheckSnapshot(doc, validate.SnapshotState{}, false)
	assert.True(t, relaxed.Passed())

	strict := validate.CheckSnapshot(doc, validate.SnapshotState{}, true)
	assert.False(t, strict.Passed())
}

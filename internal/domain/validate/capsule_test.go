package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/validate"
)

func validCapsuleDoc() map[string]any {
	return map[string]any{
		"capsule_spec": validate.CapsuleSpecV1,
		"capsule_id":   "2025-01-15-handoff-001",
		"created_at":   "2025-01-15T10:30:00Z",
		"kind":         "handoff",
		"producer":     map[string]any{"tool": "driftguard"},
	}
}

func TestCheckCapsuleValid(t *testing.T) {
	result := &domain.ValidationResult{Validator: "capsule"}
	validate.CheckCapsule(result, validCapsuleDoc(), "20_inbox/handoff.md")
	assert.True(t, result.Passed())
}

func TestCheckCapsuleParsedTimestamp(t *testing.T) {
	doc := validCapsuleDoc()
	doc["created_at"] = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	result := &domain.ValidationResult{Validator: "capsule"}
	validate.CheckCapsule(result, doc, "20_inbox/handoff.md")
	assert.True(t, result.Passed())
}

func TestCheckCapsuleInvalidKind(t *testing.T) {
	doc := validCapsuleDoc()
	doc["kind"] = "snapshot"

	result := &domain.ValidationResult{Validator: "capsule"}
	validate.CheckCapsule(result, doc, "20_inbox/handoff.md")
	require.False(t, result.Passed())
	assert.Equal(t, "20_inbox/handoff.md", result.Errors()[0].File)
}

func TestCheckCapsuleMissingProducerTool(t *testing.T) {
	doc := validCapsuleDoc()
	doc["producer"] = map[string]any{"version": "1.0"}

	result := &domain.ValidationResult{Validator: "capsule"}
	validate.CheckCapsule(result, doc, "a.md")
	require.False(t, result.Passed())
	assert.Contains(t, result.Errors()[0].Message, "producer.tool")
}

func TestCheckCapsuleUnknownFieldWarns(t *testing.T) {
	doc := validCapsuleDoc()
	doc["mood"] = "optimistic"

	result := &domain.ValidationResult{Validator: "capsule"}
	validate.CheckCapsule(result, doc, "a.md")
	assert.True(t, result.Passed())
	require.Len(t, result.Findings, 1)
	assert.Equal(t, domain.LevelWarning, result.Findings[0].Level)
}

func TestHasCapsuleFrontmatter(t *testing.T) {
	capsule := "---\ncapsule_spec: c010.capsule.v1\n---\n\nbody\n"
	assert.True(t, validate.HasCapsuleFrontmatter(capsule))

	plain := "# Just a doc\n\nwith text\n"
	assert.False(t, validate.HasCapsuleFrontmatter(plain))

	otherFrontmatter := "---\ntitle: notes\n---\n\nbody\n"
	assert.False(t, validate.HasCapsuleFrontmatter(otherFrontmatter))
}

func TestFrontmatter(t *testing.T) {
	block, ok := validate.Frontmatter("---\nkey: value\n---\nbody\n")
	require.True(t, ok)
	assert.Equal(t, "key: value", block)

	_, ok = validate.Frontmatter("no fence here\n")
	assert.False(t, ok)

	_, ok = validate.Frontmatter("---\nunterminated: true\n")
	assert.False(t, ok)
}

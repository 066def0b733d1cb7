package validate

import (
	"fmt"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

// CapsuleSpecV1 is the capsule envelope schema identifier.
const CapsuleSpecV1 = "c010.capsule.v1"

// ValidCapsuleKinds enumerates the allowed values of the kind field.
var ValidCapsuleKinds = map[string]bool{
	"handoff":       true,
	"memory_export": true,
	"activity":      true,
	"other":         true,
}

var knownCapsuleFields = map[string]bool{
	"capsule_spec":     true,
	"capsule_id":       true,
	"created_at":       true,
	"kind":             true,
	"producer":         true,
	"title":            true,
	"summary":          true,
	"tags":             true,
	"expires_at":       true,
	"related_capsules": true,
	"provenance":       true,
	"custom":           true,
}

// CheckCapsule validates one capsule envelope (parsed markdown frontmatter)
// and appends findings to result, prefixed with the capsule's file path.
func CheckCapsule(result *domain.ValidationResult, doc map[string]any, file string) {
	addError := func(msg string) {
		result.Findings = append(result.Findings, domain.ValidatorFinding{
			Level: domain.LevelError, Message: msg, File: file,
		})
	}
	addWarning := func(msg string) {
		result.Findings = append(result.Findings, domain.ValidatorFinding{
			Level: domain.LevelWarning, Message: msg, File: file,
		})
	}

	if spec, _ := stringField(doc, "capsule_spec"); spec != CapsuleSpecV1 {
		addError(fmt.Sprintf("capsule_spec must be %q, got %q", CapsuleSpecV1, spec))
	}

	if id, ok := stringField(doc, "capsule_id"); !ok || strings.TrimSpace(id) == "" {
		addError("capsule_id is required and must be a non-empty string")
	}

	if created, ok := stringField(doc, "created_at"); !ok || created == "" {
		addError("created_at is required")
	} else if !IsISO8601(created) {
		addError(fmt.Sprintf("created_at must be ISO-8601, got %q", created))
	}

	if kind, _ := stringField(doc, "kind"); !ValidCapsuleKinds[kind] {
		addError(fmt.Sprintf("kind must be one of handoff, memory_export, activity, other; got %q", kind))
	}

	producer, ok := mapField(doc, "producer")
	if !ok {
		addError("producer block is required")
	} else if tool, ok := stringField(producer, "tool"); !ok || strings.TrimSpace(tool) == "" {
		addError("producer.tool is required and must be non-empty")
	}

	for _, key := range sortedFieldNames(doc) {
		if !knownCapsuleFields[key] {
			addWarning(fmt.Sprintf("unknown field %q", key))
		}
	}
}

// HasCapsuleFrontmatter reports whether markdown content opens with a
// frontmatter fence that declares a capsule_spec. Files without it are not
// capsules and are skipped, not failed.
func HasCapsuleFrontmatter(content string) bool {
	block, ok := Frontmatter(content)
	return ok && strings.Contains(block, "capsule_spec")
}

// Frontmatter extracts the raw YAML frontmatter block from markdown
// content. Returns false when no leading --- fence pair is present.
func Frontmatter(content string) (string, bool) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return "", false
	}
	rest := content[strings.Index(content, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

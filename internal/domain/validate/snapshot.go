package validate

import (
	"fmt"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

// SnapshotSchemaV1 is the only schema identifier snapshot documents may
// declare; the match is exact.
const SnapshotSchemaV1 = "c010.epoch.v1"

var knownSnapshotFields = map[string]bool{
	"epoch_schema":     true,
	"repo_id":          true,
	"repo_head":        true,
	"generated_at_utc": true,
	"primer":           true,
	"generator":        true,
	"custom":           true,
}

// SnapshotState carries the observed repository facts the snapshot
// validator compares the document against.
type SnapshotState struct {
	// SummaryExists reports whether the companion derived summary document
	// is present; the primer block is required only in that case.
	SummaryExists bool
	// SummaryPath is the repo-relative derived summary location.
	SummaryPath string
	// SummaryHash is the sha256 of the summary's current content, empty
	// when it could not be read.
	SummaryHash string
	// Head is the current revision marker, empty when unknown.
	Head string
}

// CheckSnapshot validates a parsed snapshot document against the observed
// repository state. strict additionally requires the declared revision
// marker to prefix-match the current head and turns unknown fields into
// errors.
func CheckSnapshot(doc map[string]any, state SnapshotState, strict bool) *domain.ValidationResult {
	result := &domain.ValidationResult{Validator: "snapshot"}

	if schema, _ := stringField(doc, "epoch_schema"); schema != SnapshotSchemaV1 {
		result.AddError(fmt.Sprintf("epoch_schema must be %q, got %q", SnapshotSchemaV1, schema))
	}

	if id, ok := stringField(doc, "repo_id"); !ok || strings.TrimSpace(id) == "" {
		result.AddError("repo_id is required and must be a non-empty string")
	}

	head, ok := stringField(doc, "repo_head")
	if !ok || head == "" {
		result.AddError("repo_head is required and must be a string")
	} else if !IsRevisionMarker(head) {
		result.AddError(fmt.Sprintf("repo_head must be 7-40 lowercase hex characters, got %q", head))
	}

	if generated, ok := stringField(doc, "generated_at_utc"); !ok || generated == "" {
		result.AddError("generated_at_utc is required")
	} else if !IsISO8601(generated) {
		result.AddError(fmt.Sprintf("generated_at_utc must be ISO-8601, got %q", generated))
	}

	checkPrimerBlock(result, doc, state)

	if strict && head != "" && IsRevisionMarker(head) {
		checkHeadMatch(result, head, state.Head)
	}

	warnUnknownFields(result, doc, knownSnapshotFields, "snapshot")
	if strict {
		result.ElevateWarnings()
	}

	return result
}

// checkPrimerBlock enforces: primer block required iff the derived summary
// exists, and its recorded sha256 must equal the file's actual hash.
func checkPrimerBlock(result *domain.ValidationResult, doc map[string]any, state SnapshotState) {
	primer, hasPrimer := mapField(doc, "primer")

	if !state.SummaryExists {
		if hasPrimer {
			result.AddWarning(fmt.Sprintf(
				"primer block declared but %s does not exist", state.SummaryPath))
		}
		return
	}

	if !hasPrimer {
		if _, present := doc["primer"]; present {
			result.AddError("primer must be a mapping with a sha256 field")
			return
		}
		result.AddError(fmt.Sprintf(
			"%s exists but the primer block is missing", state.SummaryPath))
		return
	}

	recorded, _ := stringField(primer, "sha256")
	if recorded == "" {
		result.AddError("primer.sha256 is required when the primer block exists")
		return
	}

	if state.SummaryHash == "" {
		result.AddError(fmt.Sprintf("could not read %s to verify sha256", state.SummaryPath))
		return
	}

	if recorded != state.SummaryHash {
		result.AddError(fmt.Sprintf(
			"primer.sha256 mismatch for %s: recorded %s..., actual %s...",
			state.SummaryPath, shorten(recorded), shorten(state.SummaryHash)))
	}
}

func checkHeadMatch(result *domain.ValidationResult, declared, current string) {
	if current == "" {
		result.AddError("could not determine current revision marker for strict validation")
		return
	}
	if !strings.HasPrefix(current, declared) && !strings.HasPrefix(declared, current) {
		result.AddError(fmt.Sprintf(
			"repo_head %s does not match current head %s (snapshot is stale)",
			shorten(declared), shorten(current)))
	}
}

func shorten(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

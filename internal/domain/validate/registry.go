package validate

import (
	"fmt"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

var knownRegistryEntryFields = map[string]bool{
	"id":          true,
	"name":        true,
	"path":        true,
	"status":      true,
	"owners":      true,
	"description": true,
	"tags":        true,
}

// CheckRegistryEntries validates the project registry document: every
// entry needs an id, name and path, a status from the allowed set, and
// string-typed list fields. Duplicate ids are errors.
func CheckRegistryEntries(doc map[string]any) *domain.ValidationResult {
	result := &domain.ValidationResult{Validator: "registry"}

	raw, ok := doc["repos"]
	if !ok {
		result.AddError("registry document is missing the repos list")
		return result
	}
	entries, ok := raw.([]any)
	if !ok {
		result.AddError("repos must be a list of entries")
		return result
	}

	seen := map[string]bool{}
	for i, rawEntry := range entries {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			result.AddError(fmt.Sprintf("repos[%d] must be a mapping", i))
			continue
		}
		checkRegistryEntry(result, entry, i, seen)
	}

	return result
}

func checkRegistryEntry(result *domain.ValidationResult, entry map[string]any, index int, seen map[string]bool) {
	label := fmt.Sprintf("repos[%d]", index)
	if id, _ := stringField(entry, "id"); id != "" {
		label = id
		if seen[id] {
			result.AddError(fmt.Sprintf("duplicate registry id: %s", id))
		}
		seen[id] = true
	}

	for _, required := range []string{"id", "name", "path"} {
		if v, ok := stringField(entry, required); !ok || strings.TrimSpace(v) == "" {
			result.AddError(fmt.Sprintf("%s: %s is required and must be a non-empty string", label, required))
		}
	}

	if status, _ := stringField(entry, "status"); !ValidMetaStatuses[status] {
		result.AddError(fmt.Sprintf(
			"%s: status must be one of active, paused, archived, incubating; got %q", label, status))
	}

	if _, err := stringListField(entry, "owners"); err != nil {
		result.AddError(fmt.Sprintf("%s: %v", label, err))
	}
	if _, err := stringListField(entry, "tags"); err != nil {
		result.AddError(fmt.Sprintf("%s: %v", label, err))
	}

	for _, key := range sortedFieldNames(entry) {
		if !knownRegistryEntryFields[key] {
			result.AddWarning(fmt.Sprintf("%s: unknown field %q", label, key))
		}
	}
}

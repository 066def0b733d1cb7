package validate

import (
	"fmt"
	"strings"

	"github.com/driftguard/driftguard/internal/domain"
)

// ValidMetaStatuses enumerates allowed values for the META status field.
var ValidMetaStatuses = map[string]bool{
	"active":     true,
	"paused":     true,
	"archived":   true,
	"incubating": true,
}

var knownMetaFields = map[string]bool{
	"name":          true,
	"status":        true,
	"owners":        true,
	"folders":       true,
	"key_files":     true,
	"last_reviewed": true,
	"description":   true,
	"tags":          true,
}

// CheckMeta validates the repository metadata document: required fields
// present, enumerated fields restricted to their allowed set, declared
// folders actually existing on disk.
func CheckMeta(doc map[string]any, actualTopDirs []string) *domain.ValidationResult {
	result := &domain.ValidationResult{Validator: "meta"}

	if name, ok := stringField(doc, "name"); !ok || strings.TrimSpace(name) == "" {
		result.AddError("name is required and must be a non-empty string")
	}

	if status, _ := stringField(doc, "status"); !ValidMetaStatuses[status] {
		result.AddError(fmt.Sprintf(
			"status must be one of active, paused, archived, incubating; got %q", status))
	}

	if _, err := stringListField(doc, "owners"); err != nil {
		result.AddError(err.Error())
	}

	folders, err := stringListField(doc, "folders")
	if err != nil {
		result.AddError(err.Error())
	} else {
		dirs := toSet(actualTopDirs)
		for _, folder := range folders {
			if !dirs[strings.TrimSuffix(folder, "/")] {
				result.AddWarning(fmt.Sprintf("declared folder does not exist: %s", folder))
			}
		}
	}

	if reviewed, ok := stringField(doc, "last_reviewed"); ok && !IsISO8601(reviewed) {
		result.AddError(fmt.Sprintf("last_reviewed must be an ISO-8601 date, got %q", reviewed))
	}

	warnUnknownFields(result, doc, knownMetaFields, "META.yaml")

	return result
}

// Package validate holds the pure check logic behind each registered
// validator. Functions here operate on parsed documents and inventories;
// all I/O stays in the application and adapter layers.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

var (
	// Simplified ISO-8601: date, optional time, optional fraction and zone.
	iso8601Pattern = regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?)?$`)

	revisionMarkerPattern = regexp.MustCompile(`^[a-f0-9]{7,40}$`)
)

// IsISO8601 reports whether value is an ISO-8601 date or datetime string.
func IsISO8601(value string) bool {
	return iso8601Pattern.MatchString(value)
}

// IsRevisionMarker reports whether value looks like a commit hash
// (7-40 lowercase hex characters).
func IsRevisionMarker(value string) bool {
	return revisionMarkerPattern.MatchString(value)
}

func stringField(doc map[string]any, key string) (string, bool) {
	v, ok := doc[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case time.Time:
		// The YAML parser resolves unquoted ISO-8601 scalars to time.Time.
		return s.Format(time.RFC3339Nano), true
	}
	return "", false
}

func mapField(doc map[string]any, key string) (map[string]any, bool) {
	v, ok := doc[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func stringListField(doc map[string]any, key string) ([]string, error) {
	v, ok := doc[key]
	if !ok {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list of strings", key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must contain only strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

func warnUnknownFields(result interface{ AddWarning(string) }, doc map[string]any, known map[string]bool, context string) {
	for _, key := range sortedFieldNames(doc) {
		if !known[key] {
			result.AddWarning(fmt.Sprintf("%s: unknown field %q", context, key))
		}
	}
}

// sortedFieldNames fixes iteration order so repeated runs over the same
// document emit identical findings.
func sortedFieldNames(doc map[string]any) []string {
	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package drift

import (
	"regexp"

	"github.com/driftguard/driftguard/internal/domain"
)

// Freshness severities come from a fixed table, not ad-hoc choices:
// hash mismatch = major; lag within tolerance = info; beyond = major.

// LagSeverity classifies a derived document's revision lag against the
// configured tolerance. A bounded lag is expected (derived artifacts trail
// the change that triggers their regeneration) and not actionable.
func LagSeverity(lag, allowed int) domain.Severity {
	if lag <= allowed {
		return domain.SeverityInfo
	}
	return domain.SeverityMajor
}

var summaryMarkerPattern = regexp.MustCompile(`\*\*Repo SHA\*\*:\s*([a-f0-9]{7,40})`)

// ExtractSummaryMarker pulls the declared revision marker out of a derived
// summary document. Empty when the document carries none.
func ExtractSummaryMarker(content string) string {
	match := summaryMarkerPattern.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return match[1]
}

// MarkersEqual compares two revision markers, tolerating the short form on
// either side.
func MarkersEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if len(a) < len(b) {
		return b[:len(a)] == a
	}
	return a[:len(b)] == b
}

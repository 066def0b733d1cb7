package drift

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// CompareInventories diffs a declared capability inventory against the
// names observed on disk. Returned slices are sorted for deterministic
// findings.
func CompareInventories(declared, observed []string) (missing, unregistered []string) {
	declaredSet := map[string]bool{}
	for _, name := range declared {
		declaredSet[name] = true
	}
	observedSet := map[string]bool{}
	for _, name := range observed {
		observedSet[name] = true
	}

	for name := range declaredSet {
		if !observedSet[name] {
			missing = append(missing, name)
		}
	}
	for name := range observedSet {
		if !declaredSet[name] {
			unregistered = append(unregistered, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(unregistered)
	return missing, unregistered
}

// ValidatorNameFromFile derives a validator name from its file name:
// validators/check_snapshot.sh -> snapshot.
func ValidatorNameFromFile(file string) string {
	base := path.Base(file)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.TrimPrefix(base, "check_")
}

var validatorClaimPattern = regexp.MustCompile(`check_([a-z0-9_]+)`)

// ExtractValidatorClaims collects validator names a document claims to
// expose, recognized by check_<name> mentions.
func ExtractValidatorClaims(content string) []string {
	seen := map[string]bool{}
	var claims []string
	for _, match := range validatorClaimPattern.FindAllStringSubmatch(content, -1) {
		name := strings.TrimSuffix(match[1], "_py")
		if !seen[name] {
			seen[name] = true
			claims = append(claims, name)
		}
	}
	sort.Strings(claims)
	return claims
}

// ClaimDiff classifies a document's validator claims against ground truth.
type ClaimDiff struct {
	Missing       []string
	Phantom       []string
	OmissionRatio float64
}

// DiffClaims compares claimed names against the ground-truth inventory.
// OmissionRatio is the share of ground truth the document omits; callers
// use it to decide between major and informational severity.
func DiffClaims(groundTruth, claimed []string) ClaimDiff {
	missing, phantom := CompareInventories(groundTruth, claimed)
	// CompareInventories(declared=groundTruth, observed=claimed):
	// missing = in ground truth but not claimed, phantom = claimed only.
	ratio := 0.0
	if len(groundTruth) > 0 {
		ratio = float64(len(missing)) / float64(len(groundTruth))
	}
	return ClaimDiff{Missing: missing, Phantom: phantom, OmissionRatio: ratio}
}

package drift

import (
	"path"
	"strings"

	"github.com/fatih/camelcase"
)

// validatorTokens are the name fragments that mark a file as validator-like.
var validatorTokens = map[string]bool{
	"check":     true,
	"validate":  true,
	"validator": true,
}

// IsValidatorLike reports whether a file name suggests the file implements
// a validator. Both snake_case and CamelCase names are tokenized, so
// check_snapshot.sh and CheckSnapshot.ps1 are both recognized.
func IsValidatorLike(file string) bool {
	base := strings.TrimSuffix(path.Base(file), path.Ext(path.Base(file)))
	for _, part := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	}) {
		for _, token := range camelcase.Split(part) {
			if validatorTokens[strings.ToLower(token)] {
				return true
			}
		}
	}
	return false
}

// validatorAreaAllowed are non-validator files that legitimately live in
// the validators area.
var validatorAreaAllowed = map[string]bool{
	"README.md":     true,
	"manifest.yaml": true,
}

// MisplacedInValidators returns files inside the validators area that are
// neither validators nor allowed support files.
func MisplacedInValidators(files []string) []string {
	var misplaced []string
	for _, file := range files {
		if !strings.HasPrefix(file, "validators/") {
			continue
		}
		if strings.Count(file, "/") != 1 {
			continue
		}
		base := path.Base(file)
		if validatorAreaAllowed[base] || IsValidatorLike(file) {
			continue
		}
		misplaced = append(misplaced, file)
	}
	return misplaced
}

// StrayValidators returns validator-like files sitting outside the
// validators area (and outside excluded paths).
func StrayValidators(files []string, excludes []string) []string {
	var stray []string
	for _, file := range files {
		if strings.HasPrefix(file, "validators/") {
			continue
		}
		if MatchesAny(file, excludes) {
			continue
		}
		if IsValidatorLike(file) {
			stray = append(stray, file)
		}
	}
	return stray
}

var configExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
	".ini":  true,
}

// rootConfigAllowed are config files expected at the repository root.
var rootConfigAllowed = map[string]bool{
	"META.yaml":      true,
	"package.json":   true,
	"pyproject.toml": true,
	"go.mod":         true,
	".golangci.yaml": true,
}

// RootConfigStrays returns root-level configuration files that belong in
// the config area instead.
func RootConfigStrays(rootFiles []string) []string {
	var strays []string
	for _, file := range rootFiles {
		if strings.Contains(file, "/") {
			continue
		}
		if !configExtensions[path.Ext(file)] {
			continue
		}
		if rootConfigAllowed[file] {
			continue
		}
		strays = append(strays, file)
	}
	return strays
}

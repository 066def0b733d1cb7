// Package drift holds the pure comparison logic behind the three drift
// detection levels: link graphs, inventory diffs, freshness classification
// and placement checks. Filesystem and git access stay in the application
// and adapter layers.
package drift

import (
	"path"
	"strings"
)

// MatchesAny reports whether a slash-separated relative path matches any
// of the given patterns. Patterns ending in "/**" match the whole subtree;
// other patterns use path.Match semantics against the full path and, as a
// convenience, the base name.
func MatchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matches(rel, pattern) {
			return true
		}
	}
	return false
}

func matches(rel, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}
	if ok, _ := path.Match(pattern, rel); ok {
		return true
	}
	ok, _ := path.Match(pattern, path.Base(rel))
	return ok
}

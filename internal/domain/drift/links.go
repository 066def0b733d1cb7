package drift

import (
	"path"
	"regexp"
	"strings"
)

// Link is one internal markdown reference found in a document.
type Link struct {
	// Target is the link destination as written.
	Target string
	// Resolved is the repo-relative path the target points at.
	Resolved string
	// Line is the 1-based line the link appears on.
	Line int
}

var markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)

// ExtractInternalLinks finds relative file links in markdown content.
// External URLs, anchors and mailto links are not internal and are
// skipped. docPath is the document's repo-relative path, used to resolve
// relative targets.
func ExtractInternalLinks(docPath, content string) []Link {
	var links []Link

	for i, line := range strings.Split(content, "\n") {
		for _, match := range markdownLinkPattern.FindAllStringSubmatch(line, -1) {
			target := match[1]
			if isExternal(target) {
				continue
			}
			// Strip a trailing anchor; the file part is what must exist.
			if idx := strings.Index(target, "#"); idx >= 0 {
				target = target[:idx]
				if target == "" {
					continue
				}
			}
			links = append(links, Link{
				Target:   match[1],
				Resolved: resolveRelative(docPath, target),
				Line:     i + 1,
			})
		}
	}
	return links
}

func isExternal(target string) bool {
	return strings.Contains(target, "://") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "#")
}

func resolveRelative(docPath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(path.Dir(docPath), target))
}

// ReferenceGraph maps documents to the repo-relative paths they mention.
type ReferenceGraph struct {
	Forward map[string]map[string]bool
	Reverse map[string]map[string]bool
}

// BuildReferenceGraph builds forward and reverse reference maps from a
// set of documents (repo-relative path to content).
func BuildReferenceGraph(docs map[string]string) *ReferenceGraph {
	g := &ReferenceGraph{
		Forward: map[string]map[string]bool{},
		Reverse: map[string]map[string]bool{},
	}
	for docPath, content := range docs {
		g.Forward[docPath] = map[string]bool{}
		for _, link := range ExtractInternalLinks(docPath, content) {
			g.add(docPath, link.Resolved)
		}
		for _, ref := range ExtractPathReferences(content) {
			g.add(docPath, ref)
		}
	}
	return g
}

func (g *ReferenceGraph) add(from, to string) {
	g.Forward[from][to] = true
	if g.Reverse[to] == nil {
		g.Reverse[to] = map[string]bool{}
	}
	g.Reverse[to][from] = true
}

// Inbound returns the documents referencing the given path.
func (g *ReferenceGraph) Inbound(rel string) []string {
	var refs []string
	for from := range g.Reverse[rel] {
		refs = append(refs, from)
	}
	return refs
}

var pathReferencePattern = regexp.MustCompile("`([A-Za-z0-9_./-]+\\.[A-Za-z0-9]+)`")

// ExtractPathReferences finds backticked file paths mentioned in prose,
// e.g. `scripts/verify.sh`. Only path-shaped tokens with an extension
// qualify.
func ExtractPathReferences(content string) []string {
	var refs []string
	for _, match := range pathReferencePattern.FindAllStringSubmatch(content, -1) {
		ref := match[1]
		if strings.Contains(ref, "/") {
			refs = append(refs, path.Clean(ref))
		}
	}
	return refs
}

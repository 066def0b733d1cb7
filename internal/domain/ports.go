package domain

import "time"

// ConfigLoader reads a YAML or JSON document into a generic mapping.
// A missing file yields *NotFoundError, malformed content *ParseError;
// callers must be able to tell the two apart.
type ConfigLoader interface {
	Load(path string) (map[string]any, error)
	// Decode parses in-memory document text (e.g. extracted frontmatter).
	// The path is used only for error reporting.
	Decode(path string, data []byte) (map[string]any, error)
}

// RepoInspector derives a RepoProfile from filesystem state. Detection
// performs existence checks only, never content parsing.
type RepoInspector interface {
	Detect(root string) RepoProfile
}

// WorkspaceScanner walks a target repository and returns file inventory.
type WorkspaceScanner interface {
	Scan(root string, excludes []string) (*ScanResult, error)
}

// ScanResult holds the inventory of one workspace walk. Paths are relative
// to the scanned root and slash-separated.
type ScanResult struct {
	RootPath       string
	TopLevelDirs   []string
	RootFiles      []string
	AllFiles       []string
	MarkdownFiles  []string
	ValidatorFiles []string
	ModTimes       map[string]time.Time
}

// RevisionControl answers version-control queries for a target repository.
type RevisionControl interface {
	IsRepo(root string) bool
	Head(root string) (string, error)
	Branch(root string) (string, error)
	// LagCommits counts how many commits marker is behind head. The marker
	// may be a short (prefix) form of a full commit hash.
	LagCommits(root, marker string) (int, error)
	// LastChange returns the commit hash of the last change to relPath.
	LastChange(root, relPath string) (string, error)
}

// Project is one entry of the shared project registry.
type Project struct {
	ID     string   `yaml:"id"     json:"id"`
	Name   string   `yaml:"name"   json:"name"`
	Path   string   `yaml:"path"   json:"path"`
	Status string   `yaml:"status" json:"status"`
	Owners []string `yaml:"owners" json:"owners,omitempty"`
}

// ProjectRegistry is the immutable, lazily-loaded project metadata table.
// It is passed explicitly into components that need lookups.
type ProjectRegistry interface {
	LookupID(id string) (Project, bool)
	LookupPath(path string) (Project, bool)
	All() []Project
}

// ArtifactWriter persists a structured run artifact for machine consumption.
type ArtifactWriter interface {
	WriteJSON(path string, v any) error
	// EvidenceDir returns the conventional evidence output directory for a
	// target, or "" when the target has none and output should fall back
	// to console only.
	EvidenceDir(root string) string
}

package registry

import (
	"fmt"
	"path/filepath"

	"github.com/driftguard/driftguard/internal/domain"
)

// DefaultPath is the conventional registry location inside a workspace.
const DefaultPath = "registry/repos.yaml"

// FileRegistry is an immutable project table loaded once per invocation
// and passed explicitly into whatever needs lookups.
type FileRegistry struct {
	projects []domain.Project
	byID     map[string]domain.Project
	byPath   map[string]domain.Project
}

// Load reads a registry document via the given loader. A missing registry
// file surfaces as *NotFoundError so callers can treat it as "no registry"
// rather than an error.
func Load(loader domain.ConfigLoader, path string) (*FileRegistry, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	raw, ok := doc["repos"].([]any)
	if !ok {
		return nil, &domain.ParseError{
			Path: path,
			Err:  fmt.Errorf("registry document is missing the repos list"),
		}
	}

	reg := &FileRegistry{
		byID:   map[string]domain.Project{},
		byPath: map[string]domain.Project{},
	}
	for _, rawEntry := range raw {
		entry, ok := rawEntry.(map[string]any)
		if !ok {
			continue
		}
		project := domain.Project{
			ID:     str(entry["id"]),
			Name:   str(entry["name"]),
			Path:   str(entry["path"]),
			Status: str(entry["status"]),
			Owners: strs(entry["owners"]),
		}
		reg.projects = append(reg.projects, project)
		if project.ID != "" {
			reg.byID[project.ID] = project
		}
		if project.Path != "" {
			reg.byPath[filepath.ToSlash(project.Path)] = project
		}
	}
	return reg, nil
}

func (r *FileRegistry) LookupID(id string) (domain.Project, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *FileRegistry) LookupPath(path string) (domain.Project, bool) {
	p, ok := r.byPath[filepath.ToSlash(path)]
	return p, ok
}

func (r *FileRegistry) All() []domain.Project {
	out := make([]domain.Project, len(r.projects))
	copy(out, r.projects)
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strs(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

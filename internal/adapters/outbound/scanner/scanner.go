package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/driftguard/driftguard/internal/domain"
	"github.com/driftguard/driftguard/internal/domain/drift"
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// WorkspaceScanner implements domain.WorkspaceScanner by walking the
// target's filesystem once per run.
type WorkspaceScanner struct{}

func New() *WorkspaceScanner { return &WorkspaceScanner{} }

// Scan walks root and returns the inventory used by validators and drift
// checks. Paths in the result are relative and slash-separated; excludes
// use the rule-file glob convention (dir/** for subtrees).
func (s *WorkspaceScanner) Scan(root string, excludes []string) (*domain.ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Path: root}
		}
		return nil, err
	}

	result := &domain.ScanResult{
		RootPath: absRoot,
		ModTimes: map[string]time.Time{},
	}

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}

		rel := filepath.ToSlash(strings.TrimPrefix(path, absRoot+string(filepath.Separator)))

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			// Excluded directories still exist: record top-level ones so
			// required-dir checks see them, but do not walk their contents.
			if !strings.Contains(rel, "/") {
				result.TopLevelDirs = append(result.TopLevelDirs, rel)
			}
			if drift.MatchesAny(rel, excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if drift.MatchesAny(rel, excludes) {
			return nil
		}

		result.AllFiles = append(result.AllFiles, rel)
		if !strings.Contains(rel, "/") {
			result.RootFiles = append(result.RootFiles, rel)
		}
		if strings.HasSuffix(rel, ".md") {
			result.MarkdownFiles = append(result.MarkdownFiles, rel)
		}
		if strings.HasPrefix(rel, "validators/") && strings.HasPrefix(filepath.Base(rel), "check_") {
			result.ValidatorFiles = append(result.ValidatorFiles, rel)
		}
		if info, err := d.Info(); err == nil {
			result.ModTimes[rel] = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.TopLevelDirs)
	sort.Strings(result.AllFiles)
	sort.Strings(result.RootFiles)
	sort.Strings(result.MarkdownFiles)
	sort.Strings(result.ValidatorFiles)
	return result, nil
}

package application_test

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/adapters/outbound/gitinfo"
	"github.com/driftguard/driftguard/internal/adapters/outbound/scanner"
	"github.com/driftguard/driftguard/internal/application"
)

const primerContent = "# Project Primer\n\nDerived summary of the workspace.\n"

// compliantWorkspace builds a workspace that passes every validator and
// produces no drift findings above info severity.
func compliantWorkspace(t *testing.T) string {
	t.Helper()

	sum := sha256.Sum256([]byte(primerContent))
	primerHash := hex.EncodeToString(sum[:])

	files := map[string]string{
		"README.md":                    "# Workspace\n\nSee [the guide](10_docs/guide.md).\n",
		"CLAUDE.md":                    "# Conventions\n",
		"CHANGELOG.md":                 "# Changelog\n",
		".gitignore":                   "*.tmp\n",
		"20_receipts/.gitkeep":         "",
		"10_docs/guide.md":             "# Guide\n",
		"META.yaml":                    "name: ws\nstatus: active\nfolders:\n  - 10_docs/\n",
		"validators/manifest.yaml":     "validators:\n  - snapshot\n",
		"validators/check_snapshot.sh": "#!/bin/sh\nexit 0\n",
		"PROJECT_PRIMER.md":            primerContent,
		"00_admin/EPOCH.yaml": "epoch_schema: c010.epoch.v1\n" +
			"repo_id: ws\n" +
			"repo_head: abc1234def\n" +
			"generated_at_utc: 2025-01-15T10:30:00Z\n" +
			"primer:\n  sha256: " + primerHash + "\n",
	}
	return writeWorkspace(t, files)
}

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func addFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func removeFile(t *testing.T, root, rel string) {
	t.Helper()
	require.NoError(t, os.Remove(filepath.Join(root, filepath.FromSlash(rel))))
}

func newValidateService() *application.ValidateService {
	return application.NewValidateService(config.New(), detector.New(), scanner.New(), gitinfo.New())
}

func newDriftService() *application.DriftService {
	return application.NewDriftService(config.New(), detector.New(), scanner.New(), gitinfo.New())
}

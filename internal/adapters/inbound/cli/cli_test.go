package cli_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/adapters/inbound/cli"
)

const primerContent = "# Project Primer\n\nDerived summary.\n"

// fixtureWorkspace builds a workspace that passes validation and produces
// no drift above info severity.
func fixtureWorkspace(t *testing.T) string {
	t.Helper()

	sum := sha256.Sum256([]byte(primerContent))
	primerHash := hex.EncodeToString(sum[:])

	files := map[string]string{
		"README.md":                    "# Workspace\n",
		"CLAUDE.md":                    "# Conventions\n",
		"CHANGELOG.md":                 "# Changelog\n",
		".gitignore":                   "*.tmp\n",
		"20_receipts/.gitkeep":         "",
		"META.yaml":                    "name: ws\nstatus: active\n",
		"validators/manifest.yaml":     "validators:\n  - snapshot\n",
		"validators/check_snapshot.sh": "#!/bin/sh\nexit 0\n",
		"PROJECT_PRIMER.md":            primerContent,
		"00_admin/EPOCH.yaml": "epoch_schema: c010.epoch.v1\n" +
			"repo_id: ws\n" +
			"repo_head: abc1234def\n" +
			"generated_at_utc: 2025-01-15T10:30:00Z\n" +
			"primer:\n  sha256: " + primerHash + "\n",
	}
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

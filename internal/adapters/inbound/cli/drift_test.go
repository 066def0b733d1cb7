package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/adapters/inbound/cli"
)

func TestDriftCommandClean(t *testing.T) {
	root := fixtureWorkspace(t)

	out, err := runCommand(t, "drift", "--path", root, "--level", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "No drift detected")
}

func TestDriftCommandBadLevel(t *testing.T) {
	root := fixtureWorkspace(t)

	_, err := runCommand(t, "drift", "--path", root, "--level", "9")
	require.Error(t, err)
	assert.Equal(t, 2, cli.ExitCode(err))
}

func TestDriftCommandCriticalFails(t *testing.T) {
	root := fixtureWorkspace(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "validators", "check_extra.sh"), []byte("#!/bin/sh\n"), 0o644))

	out, err := runCommand(t, "drift", "--path", root, "--level", "1")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCode(err))
	assert.Contains(t, out, "CRITICAL")
}

func TestDriftCommandStrictThreshold(t *testing.T) {
	root := fixtureWorkspace(t)
	// Stale summary: a major finding, which only --strict turns into failure.
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "PROJECT_PRIMER.md"), []byte("# Edited\n"), 0o644))

	_, err := runCommand(t, "drift", "--path", root, "--level", "2")
	assert.NoError(t, err)

	_, err = runCommand(t, "drift", "--path", root, "--level", "2", "--strict")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCode(err))
}

func TestDriftCommandJSON(t *testing.T) {
	root := fixtureWorkspace(t)

	out, err := runCommand(t, "drift", "--path", root, "--json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Contains(t, report, "findings")
	assert.EqualValues(t, 1, report["level"])
}

func TestDriftCommandWritesArtifact(t *testing.T) {
	root := fixtureWorkspace(t)
	outDir := t.TempDir()

	_, err := runCommand(t, "drift", "--path", root, "--level", "2", "--out-dir", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "drift_l2.json"))
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.EqualValues(t, 2, report["level"])
}

func TestDriftCommandEvidenceDirDefault(t *testing.T) {
	root := fixtureWorkspace(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "70_evidence"), 0o755))

	_, err := runCommand(t, "drift", "--path", root, "--level", "1")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(root, "70_evidence", "drift", "drift_l1.json"))
	assert.NoError(t, statErr, "report lands in the evidence area when one exists")
}

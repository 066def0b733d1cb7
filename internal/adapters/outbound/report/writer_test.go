package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/adapters/outbound/report"
	"github.com/driftguard/driftguard/internal/domain"
)

func TestWriteJSONCreatesParents(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "70_evidence", "drift", "drift_l1.json")

	rep := &domain.DriftReport{Repo: "ws", Level: 1}
	require.NoError(t, report.New().WriteJSON(path, rep))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded domain.DriftReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ws", decoded.Repo)
	assert.Equal(t, 1, decoded.Level)
}

func TestEvidenceDir(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, report.New().EvidenceDir(root), "no evidence area means console-only")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "70_evidence"), 0o755))
	assert.Equal(t, filepath.Join(root, "70_evidence", "drift"), report.New().EvidenceDir(root))
}

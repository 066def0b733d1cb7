package detector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/domain"
)

func TestDetectEmptyWorkspace(t *testing.T) {
	profile := detector.New().Detect(t.TempDir())

	assert.False(t, profile.HasValidators)
	assert.False(t, profile.HasSchemas)
	assert.False(t, profile.HasTaxonomies)
	assert.False(t, profile.HasMetaFile)
	assert.False(t, profile.HasDerivedSummary)
	assert.False(t, profile.HasLocalRules)
	assert.Empty(t, profile.Evidence)
}

func TestDetectRecordsEvidence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "validators"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "validators", "manifest.yaml"), []byte("validators: []\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "schemas"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "META.yaml"), []byte("name: x\n"), 0o644))

	profile := detector.New().Detect(root)

	assert.True(t, profile.HasValidators)
	assert.Equal(t, "validators/manifest.yaml", profile.Evidence[domain.CapValidators])
	assert.True(t, profile.HasSchemas)
	assert.Equal(t, "schemas", profile.Evidence[domain.CapSchemas])
	assert.True(t, profile.HasMetaFile)
	assert.False(t, profile.HasTaxonomies)
}

func TestDetectRequiresCorrectKind(t *testing.T) {
	root := t.TempDir()
	// schemas as a file, not a directory: no capability.
	require.NoError(t, os.WriteFile(filepath.Join(root, "schemas"), []byte("x"), 0o644))

	profile := detector.New().Detect(root)
	assert.False(t, profile.HasSchemas)
}

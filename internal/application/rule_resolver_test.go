package application_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/application"
	"github.com/driftguard/driftguard/internal/domain"
)

func TestResolveRulesDefaultsOnly(t *testing.T) {
	root := t.TempDir()

	res, err := application.ResolveRules(config.New(), "", root, false)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRules(), res.Rules)
	for _, key := range domain.KnownRuleKeys() {
		assert.Equal(t, domain.SourceDefault, res.Provenance[key], key)
	}
	assert.Empty(t, res.Warnings)
}

func TestResolveRulesRepoLocalOverride(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		application.LocalRulesPath: "allowed_lag_commits: 3\n",
	})

	res, err := application.ResolveRules(config.New(), "", root, false)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Rules.AllowedLagCommits)
	assert.Equal(t, domain.SourceRepo, res.Provenance["allowed_lag_commits"])
	assert.Equal(t, domain.SourceDefault, res.Provenance["snapshot_path"], "untouched keys keep default provenance")
}

func TestResolveRulesExplicitWinsPerKey(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		application.LocalRulesPath: "allowed_lag_commits: 3\nsummary_path: SUMMARY.md\n",
	})
	explicit := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("allowed_lag_commits: 7\n"), 0o644))

	res, err := application.ResolveRules(config.New(), explicit, root, false)
	require.NoError(t, err)

	assert.Equal(t, 7, res.Rules.AllowedLagCommits)
	assert.Equal(t, domain.SourceExplicit, res.Provenance["allowed_lag_commits"])
	// The explicit file did not set summary_path; the repo layer still wins it.
	assert.Equal(t, "SUMMARY.md", res.Rules.SummaryPath)
	assert.Equal(t, domain.SourceRepo, res.Provenance["summary_path"])
}

func TestResolveRulesExplicitMustExist(t *testing.T) {
	_, err := application.ResolveRules(config.New(), filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir(), false)

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestResolveRulesUnknownKeys(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		application.LocalRulesPath: "mystery_knob: 9\n",
	})

	res, err := application.ResolveRules(config.New(), "", root, false)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "mystery_knob")

	_, err = application.ResolveRules(config.New(), "", root, true)
	var configErr *domain.ConfigError
	require.True(t, errors.As(err, &configErr), "strict-keys turns the warning into an error")
}

func TestResolveRulesMalformedLocalFile(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		application.LocalRulesPath: "key: [broken\n",
	})

	_, err := application.ResolveRules(config.New(), "", root, false)
	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr), "a broken local file never falls back to defaults silently")
}

// Resolving a written-out effective rule set yields the same effective set.
func TestResolveRulesRoundTrip(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		application.LocalRulesPath: "allowed_lag_commits: 4\nrequired_files:\n  - README.md\n",
	})

	first, err := application.ResolveRules(config.New(), "", root, false)
	require.NoError(t, err)

	data, err := yaml.Marshal(first.Rules)
	require.NoError(t, err)
	dumped := filepath.Join(t.TempDir(), "effective.yaml")
	require.NoError(t, os.WriteFile(dumped, data, 0o644))

	second, err := application.ResolveRules(config.New(), dumped, t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, first.Rules, second.Rules)
	assert.Empty(t, second.Warnings)
}

func TestProvenanceLinesSortedAndComplete(t *testing.T) {
	res, err := application.ResolveRules(config.New(), "", t.TempDir(), false)
	require.NoError(t, err)

	lines := res.ProvenanceLines()
	assert.Len(t, lines, len(domain.KnownRuleKeys()))
	assert.IsIncreasing(t, lines)
}

package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftguard/driftguard/internal/adapters/outbound/gitinfo"
)

// initRepo creates a repository with three commits and returns the root
// plus the commit hashes in order.
func initRepo(t *testing.T) (string, []string) {
	t.Helper()
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	var hashes []string
	for i, name := range []string{"README.md", "CLAUDE.md", "PROJECT_PRIMER.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name+"\n"), 0o644))
		_, err := wt.Add(name)
		require.NoError(t, err)

		hash, err := wt.Commit("add "+name, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "test",
				Email: "test@example.com",
				When:  time.Date(2025, 1, 1, 0, 0, i, 0, time.UTC),
			},
		})
		require.NoError(t, err)
		hashes = append(hashes, hash.String())
	}
	return root, hashes
}

func TestIsRepo(t *testing.T) {
	root, _ := initRepo(t)
	adapter := gitinfo.New()

	assert.True(t, adapter.IsRepo(root))
	assert.False(t, adapter.IsRepo(t.TempDir()))
}

func TestHead(t *testing.T) {
	root, hashes := initRepo(t)

	head, err := gitinfo.New().Head(root)
	require.NoError(t, err)
	assert.Equal(t, hashes[2], head)
}

func TestBranch(t *testing.T) {
	root, _ := initRepo(t)

	branch, err := gitinfo.New().Branch(root)
	require.NoError(t, err)
	assert.NotEmpty(t, branch)
}

func TestLagCommits(t *testing.T) {
	root, hashes := initRepo(t)
	adapter := gitinfo.New()

	lag, err := adapter.LagCommits(root, hashes[2])
	require.NoError(t, err)
	assert.Equal(t, 0, lag)

	lag, err = adapter.LagCommits(root, hashes[0])
	require.NoError(t, err)
	assert.Equal(t, 2, lag)

	// Short markers match by prefix.
	lag, err = adapter.LagCommits(root, hashes[1][:7])
	require.NoError(t, err)
	assert.Equal(t, 1, lag)
}

func TestLagCommitsUnknownMarker(t *testing.T) {
	root, _ := initRepo(t)

	_, err := gitinfo.New().LagCommits(root, "deadbeef00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLastChange(t *testing.T) {
	root, hashes := initRepo(t)

	hash, err := gitinfo.New().LastChange(root, "README.md")
	require.NoError(t, err)
	assert.Equal(t, hashes[0], hash)
}

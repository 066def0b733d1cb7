package gitinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// RevisionAdapter implements domain.RevisionControl using go-git.
type RevisionAdapter struct{}

func New() *RevisionAdapter { return &RevisionAdapter{} }

func (g *RevisionAdapter) IsRepo(root string) bool {
	_, err := git.PlainOpen(root)
	return err == nil
}

func (g *RevisionAdapter) Head(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

func (g *RevisionAdapter) Branch(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// LagCommits counts how many commits marker is behind HEAD by walking the
// first-parent history until the marker is found. A short marker matches
// by prefix.
func (g *RevisionAdapter) LagCommits(root, marker string) (int, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return 0, fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return 0, fmt.Errorf("getting HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	lag := 0
	found := false
	err = iter.ForEach(func(c *object.Commit) error {
		if strings.HasPrefix(c.Hash.String(), marker) {
			found = true
			return storer.ErrStop
		}
		lag++
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return 0, fmt.Errorf("walking log: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("revision marker %s not found in history", marker)
	}
	return lag, nil
}

// LastChange returns the hash of the most recent commit touching relPath.
func (g *RevisionAdapter) LastChange(root, relPath string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), FileName: &relPath})
	if err != nil {
		return "", fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		return "", fmt.Errorf("no history for %s: %w", relPath, err)
	}
	return commit.Hash.String(), nil
}

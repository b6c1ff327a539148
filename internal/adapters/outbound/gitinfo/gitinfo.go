package gitinfo

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// GitInfoAdapter implements domain.GitInfo using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// IsTracked reports whether file is present in the index of the repository
// containing projectPath. Unversioned hooks are silently lost on clone.
func (g *GitInfoAdapter) IsTracked(projectPath, file string) (bool, error) {
	repo, err := open(projectPath)
	if err != nil {
		return false, fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return false, err
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return false, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false, err
	}
	rel = filepath.ToSlash(rel)

	idx, err := repo.Storer.Index()
	if err != nil {
		return false, fmt.Errorf("reading index: %w", err)
	}
	for _, e := range idx.Entries {
		if e.Name == rel {
			return true, nil
		}
	}
	return false, nil
}

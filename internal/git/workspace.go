package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Repository wraps a go-git handle on the worktree the tool runs in.
type Repository struct {
	root string
	repo *gogit.Repository
}

// OpenRepository finds the worktree containing start, walking up the tree.
func OpenRepository(start string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, start)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", start, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	return &Repository{root: wt.Filesystem.Root(), repo: repo}, nil
}

// Root returns the top-level directory of the worktree.
func (r *Repository) Root() string {
	return r.root
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repository) HasStagedChanges() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	for _, fs := range status {
		if fs.Staging != gogit.Unmodified && fs.Staging != gogit.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// HasChanges reports whether the worktree differs from HEAD at all,
// staged or not. Ignored files do not count.
func (r *Repository) HasChanges() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	return !status.IsClean(), nil
}

// Refresh re-reads HEAD and returns its abbreviated hash.
func (r *Repository) Refresh() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	hash := ref.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash, nil
}

// Workspace resolves the workspace root: an explicit directory when one is
// configured, otherwise the git worktree enclosing start.
type Workspace struct {
	explicit string
	start    string
}

// NewWorkspace creates a resolver. explicit may be empty.
func NewWorkspace(explicit, start string) *Workspace {
	return &Workspace{explicit: explicit, start: start}
}

// Root implements interfaces.WorkspaceResolver.
func (w *Workspace) Root() (string, bool) {
	if w.explicit != "" {
		abs, err := filepath.Abs(w.explicit)
		if err != nil {
			return "", false
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return "", false
		}
		return abs, true
	}

	repo, err := OpenRepository(w.start)
	if err != nil {
		return "", false
	}
	return repo.Root(), true
}

// Repository opens the worktree at the resolved root.
func (w *Workspace) Repository() (*Repository, error) {
	root, ok := w.Root()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, w.start)
	}
	return OpenRepository(root)
}

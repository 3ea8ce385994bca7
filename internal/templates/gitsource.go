package templates

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// PullPack clones (or updates) a template pack repository and loads every
// template definition from its templates/ directory. Packs are plain git
// repos, so teams can version and share slide layouts the same way they
// version code.
func PullPack(ctx context.Context, url, branch, dest string) ([]Template, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, err
	}

	opts := &git.CloneOptions{URL: url, Depth: 1}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}

	_, err := git.PlainCloneContext(ctx, dest, false, opts)
	switch {
	case err == nil:
	case err == git.ErrRepositoryAlreadyExists:
		repo, openErr := git.PlainOpen(dest)
		if openErr != nil {
			return nil, fmt.Errorf("open template pack: %w", openErr)
		}
		wt, wtErr := repo.Worktree()
		if wtErr != nil {
			return nil, fmt.Errorf("open template pack worktree: %w", wtErr)
		}
		pullErr := wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin", Depth: 1})
		if pullErr != nil && pullErr != git.NoErrAlreadyUpToDate {
			return nil, fmt.Errorf("update template pack: %w", pullErr)
		}
	default:
		return nil, fmt.Errorf("clone template pack: %w", err)
	}

	dir := filepath.Join(dest, "templates")
	if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
		// Packs without a templates/ dir keep definitions at the root.
		dir = dest
	}
	return LoadDir(dir)
}

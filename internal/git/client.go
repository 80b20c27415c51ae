package git

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
	"git.home.luguber.info/inful/profilekit/internal/logfields"
)

// CommitOptions describes the commit created for a changed file.
type CommitOptions struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	// When defaults to the current time.
	When time.Time
}

// Client operates on the repository containing a working directory.
type Client struct {
	repo *git.Repository
	root string
}

// Open finds the repository enclosing dir, searching parent directories.
func Open(dir string) (*Client, error) {
	abs, err := resolve(dir)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ferrors.GitError("document is not inside a git repository").WithContext("path", dir).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "failed to open repository").WithContext("path", dir).Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "repository has no worktree").WithContext("path", dir).Build()
	}
	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &Client{repo: repo, root: root}, nil
}

// Root returns the worktree root directory.
func (c *Client) Root() string { return c.root }

// CommitFile stages path and commits it when it differs from HEAD. It
// returns the new commit hash and whether a commit was made.
func (c *Client) CommitFile(path string, opts CommitOptions) (string, bool, error) {
	abs, err := resolve(path)
	if err != nil {
		return "", false, err
	}
	rel, err := filepath.Rel(c.root, abs)
	if err != nil {
		return "", false, ferrors.WrapError(err, ferrors.CategoryGit, "file is outside the repository").
			WithContext("path", path).Build()
	}
	rel = filepath.ToSlash(rel)

	wt, err := c.repo.Worktree()
	if err != nil {
		return "", false, ferrors.WrapError(err, ferrors.CategoryGit, "repository has no worktree").Build()
	}
	status, err := wt.Status()
	if err != nil {
		return "", false, ferrors.WrapError(err, ferrors.CategoryGit, "failed to read worktree status").Build()
	}
	if fs, ok := status[rel]; !ok || (fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified) {
		slog.Debug("Document unchanged in git; nothing to commit", logfields.Path(rel))
		return "", false, nil
	}

	if _, err := wt.Add(rel); err != nil {
		return "", false, ferrors.WrapError(err, ferrors.CategoryGit, "failed to stage document").
			WithContext("path", rel).Build()
	}

	when := opts.When
	if when.IsZero() {
		when = time.Now()
	}
	hash, err := wt.Commit(opts.Message, &git.CommitOptions{
		Author: &object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: when},
	})
	if err != nil {
		return "", false, ferrors.WrapError(err, ferrors.CategoryGit, "failed to commit document").
			WithContext("path", rel).Build()
	}

	slog.Info("Committed document", logfields.Path(rel), slog.String("commit", hash.String()[:8]))
	return hash.String(), true, nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to resolve path").WithContext("path", path).Build()
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

var opts = CommitOptions{
	Message:     "docs: update profile sections",
	AuthorName:  "profilekit",
	AuthorEmail: "profilekit@example.com",
	When:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
}

func TestCommitFile(t *testing.T) {
	dir, repo := initRepo(t)
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# v1\n"), 0o600))

	c, err := Open(dir)
	require.NoError(t, err)

	hash, committed, err := c.CommitFile(readme, opts)
	require.NoError(t, err)
	require.True(t, committed)

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	assert.Equal(t, opts.Message, commit.Message)
	assert.Equal(t, "profilekit", commit.Author.Name)

	// Unchanged file: nothing to commit.
	_, committed, err = c.CommitFile(readme, opts)
	require.NoError(t, err)
	assert.False(t, committed)

	require.NoError(t, os.WriteFile(readme, []byte("# v2\n"), 0o600))
	second, committed, err := c.CommitFile(readme, opts)
	require.NoError(t, err)
	assert.True(t, committed)
	assert.NotEqual(t, hash, second)
}

func TestOpen_FromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	c, err := Open(sub)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, c.Root())
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
}

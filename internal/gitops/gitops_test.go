package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestInitAndIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	repo := New(dir)

	assert.False(t, repo.IsRepo())
	require.NoError(t, repo.Init())
	assert.True(t, repo.IsRepo())
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	repo := New(dir)
	require.NoError(t, repo.Init())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bookline.yaml"), []byte("business:\n  name: Test\n"), 0o644))

	hash, err := repo.CommitAll("init: Test books", "Bookline", "books@bookline.dev")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

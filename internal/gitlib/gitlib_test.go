package gitlib

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
)

func initRepo(t *testing.T, origins ...string) (string, string) {
	t.Helper()
	root := t.TempDir()

	repo, err := git.PlainInit(root, false)
	assert.NoError(t, err)

	err = os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644)
	assert.NoError(t, err)

	wt, err := repo.Worktree()
	assert.NoError(t, err)

	_, err = wt.Add("main.go")
	assert.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "athos", Email: "athos@example.com", When: time.Now()},
	})
	assert.NoError(t, err)

	if len(origins) > 0 {
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: origins})
		assert.NoError(t, err)
	}

	return root, hash.String()
}

func TestFromDir(t *testing.T) {
	root, sha := initRepo(t, "git@github.com:musketeers/echo.git")

	nested := filepath.Join(root, "functions", "echo")
	assert.NoError(t, os.MkdirAll(nested, os.ModePerm))

	found, err := FromDir(nested)
	assert.NoError(t, err)

	assert.Equal(t, root, found.Root)
	assert.Equal(t, "master", found.Branch)
	assert.Equal(t, sha, found.Sha)
	assert.Equal(t, "https://github.com/musketeers/echo.git", found.Origin.String())
	assert.False(t, found.Dirty)
}

func TestFromDirDirty(t *testing.T) {
	root, _ := initRepo(t, "https://github.com/musketeers/echo.git")

	err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n\nfunc main() {}\n"), 0o644)
	assert.NoError(t, err)

	found, err := FromDir(root)
	assert.NoError(t, err)
	assert.True(t, found.Dirty)
}

func TestFromDirFailures(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
	}{
		{
			name: "no origin",
			dir: func(t *testing.T) string {
				root, _ := initRepo(t)
				return root
			},
		},
		{
			name: "multiple origins",
			dir: func(t *testing.T) string {
				root, _ := initRepo(t, "https://github.com/a/b.git", "https://gitlab.com/a/b.git")
				return root
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromDir(tc.dir(t))
			assert.Error(t, err)
		})
	}
}

func TestParseOrigin(t *testing.T) {
	cases := map[string]string{
		"git@github.com:musketeers/echo.git":     "https://github.com/musketeers/echo.git",
		"https://github.com/musketeers/echo.git": "https://github.com/musketeers/echo.git",
		"https://gitlab.com/group/sub/echo":      "https://gitlab.com/group/sub/echo",
	}

	for raw, expected := range cases {
		origin, err := ParseOrigin(raw)
		assert.NoError(t, err)
		assert.Equal(t, expected, origin.String())
	}
}

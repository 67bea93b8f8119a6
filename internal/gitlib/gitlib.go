package gitlib

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Checkout describes the work tree a function is built from.
type Checkout struct {
	Root   string
	Branch string
	Sha    string
	Origin *url.URL
	Dirty  bool
}

func FromCwd() (Checkout, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Checkout{}, err
	}

	return FromDir(cwd)
}

func FromDir(dir string) (found Checkout, err error) {
	root, repo, err := FindRoot(dir)
	if err != nil {
		return Checkout{}, err
	}

	head, err := repo.Head()
	if err != nil {
		return Checkout{}, fmt.Errorf("failed to resolve HEAD: %v", err)
	}

	found.Root = root
	found.Branch = head.Name().Short()
	found.Sha = head.Hash().String()

	if found.Origin, err = Origin(repo); err != nil {
		return Checkout{}, err
	}

	if found.Dirty, err = Dirty(repo); err != nil {
		return Checkout{}, err
	}

	return found, nil
}

// FindRoot walks up from dir until it finds a .git directory.
func FindRoot(dir string) (string, *git.Repository, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			repo, err := git.PlainOpen(dir)
			if err != nil {
				return "", nil, err
			}
			return dir, repo, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, fmt.Errorf("this does not appear to be a git repository")
		}
		dir = parent
	}
}

func Dirty(repo *git.Repository) (bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return false, err
	}

	status, err := wt.Status()
	if err != nil {
		return false, err
	}

	return !status.IsClean(), nil
}

func Origin(repo *git.Repository) (*url.URL, error) {
	remote, err := repo.Remote("origin")
	if err != nil {
		return nil, fmt.Errorf("failed to find remote origin: %v", err)
	}

	urls := remote.Config().URLs
	switch len(urls) {
	case 0:
		return nil, fmt.Errorf("no remote origin found")
	case 1:
		return ParseOrigin(urls[0])
	default:
		return nil, fmt.Errorf("multiple remote origins found")
	}
}

// ParseOrigin accepts https and scp-like ssh remotes, returning an https URL.
func ParseOrigin(raw string) (*url.URL, error) {
	if strings.HasPrefix(raw, "git@") {
		raw = strings.Replace(raw, ":", "/", 1)
		raw = strings.Replace(raw, "git@", "https://", 1)
	}

	return url.Parse(raw)
}

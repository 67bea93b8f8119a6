package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/LukePeterson/3musketeers/internal/gitlib"
	"github.com/LukePeterson/3musketeers/pkg/echo"
)

// FromCheckout derives the tooling configuration for the function at functionPath.
// ECHO_BRANCH and ECHO_SHA override what git reports, for detached CI checkouts.
func FromCheckout(checkout gitlib.Checkout, functionPath string) (c Config, err error) {
	abs, err := filepath.Abs(functionPath)
	if err != nil {
		return Config{}, err
	}

	if checkout.Origin == nil {
		return Config{}, fmt.Errorf("checkout at %s has no origin", checkout.Root)
	}

	c.Function.Path = abs
	c.Function.Name = filepath.Base(abs)

	c.Git.Origin = checkout.Origin.String()
	c.Git.Branch = checkout.Branch
	c.Git.Sha = checkout.Sha
	c.Git.Root = checkout.Root
	c.Git.Dirty = checkout.Dirty

	if branch, exists := os.LookupEnv(EnvBranch); exists {
		c.Git.Branch = branch
	}

	if sha, exists := os.LookupEnv(EnvSha); exists {
		c.Git.Sha = sha
	}

	c.Repository.Prefix = strings.TrimSuffix(strings.TrimPrefix(checkout.Origin.Path, "/"), ".git")

	if prefix, exists := os.LookupEnv(EnvResourcePrefix); exists {
		c.Resource.Prefix = prefix
	} else {
		c.Resource.Prefix = path.Base(c.Repository.Prefix)
	}

	c.Label.Sha = "org.3musketeers.echo.git-sha"
	c.Label.Origin = "org.3musketeers.echo.git-origin"
	c.Label.Built = "org.3musketeers.echo.built-at"

	c.Echo = echo.ConfigFromEnv()

	return c, nil
}

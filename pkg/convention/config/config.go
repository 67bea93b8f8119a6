package config

import (
	"encoding/json"

	"github.com/LukePeterson/3musketeers/internal/util"
	"github.com/LukePeterson/3musketeers/pkg/echo"
)

const (
	EnvRegistryId     = "AWS_ECR_REGISTRY_ID"
	EnvRegistryRegion = "AWS_ECR_REGION"
	EnvBranch         = "ECHO_BRANCH"
	EnvSha            = "ECHO_SHA"
	EnvResourcePrefix = "ECHO_FUNCTION_PREFIX"
	EnvLogLevel       = "LOG_LEVEL"
	EnvPort           = "AWS_LWA_PORT"
)

type Function struct {
	Name string
	Path string
}

type Caller struct {
	Arn string
}

type Account struct {
	Id     string
	Region string
}

type Git struct {
	Origin string
	Branch string
	Sha    string
	Root   string
	Dirty  bool
}

type Registry struct {
	Id     string
	Region string
	Url    string
}

type Repository struct {
	Prefix string
}

type Resource struct {
	Prefix string
}

// Label holds the image label keys written at build time.
type Label struct {
	Sha    string
	Origin string
	Built  string
}

type Config struct {
	Function   Function
	Caller     Caller
	Account    Account
	Git        Git
	Registry   Registry
	Repository Repository
	Resource   Resource
	Label      Label
	Echo       echo.Config
}

func (c Config) ResourceName(branch string) string {
	return c.Resource.Prefix + "-" + util.DeSlasher(branch) + "-" + c.Function.Name
}

func (c Config) RoleArn(branch string) string {
	return util.RoleArnFromName(c.Account.Id, c.ResourceName(branch))
}

func (c Config) RepositoryName() string {
	return c.Repository.Prefix + "/" + c.Function.Name
}

// RepositoryUrl is the bare repository name until a registry has been discovered.
func (c Config) RepositoryUrl() string {
	if c.Registry.Url == "" {
		return c.RepositoryName()
	}

	return c.Registry.Url + "/" + c.RepositoryName()
}

// Tags returns the branch and sha image references for the current checkout.
func (c Config) Tags() []string {
	return []string{
		c.RepositoryUrl() + ":" + BranchTag(c.Git.Branch),
		c.RepositoryUrl() + ":" + c.Git.Sha,
	}
}

// BranchTag makes a branch name usable as an image tag.
func BranchTag(branch string) string {
	return util.DeSlasher(branch)
}

func (c Config) Json() (string, error) {
	cJson, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	return string(cJson), nil
}

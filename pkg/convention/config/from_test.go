package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/LukePeterson/3musketeers/internal/gitlib"
	"github.com/LukePeterson/3musketeers/pkg/echo"

	"github.com/stretchr/testify/assert"
)

const mockSha = "2e17ab2c190fc5dfff79e66fc972f015da937f05"

func mockCheckout(t *testing.T, rawOrigin string) gitlib.Checkout {
	origin, err := url.Parse(rawOrigin)
	assert.NoError(t, err)

	return gitlib.Checkout{
		Root:   "/src/echo-service",
		Branch: "feature/greeting",
		Sha:    mockSha,
		Origin: origin,
	}
}

func TestFromCheckout(t *testing.T) {
	functionPath := filepath.Join(t.TempDir(), "echo")

	tests := []struct {
		name     string
		setup    func(t *testing.T)
		test     func(t *testing.T, got Config)
		teardown func()
	}{
		{
			name: "derives names from origin and path",
			setup: func(t *testing.T) {
				os.Unsetenv(EnvBranch)
				os.Unsetenv(EnvSha)
				os.Unsetenv(EnvResourcePrefix)
				t.Setenv(echo.EnvMessage, "Thank you for using the 3 Musketeers!")
			},
			test: func(t *testing.T, got Config) {
				assert.Equal(t, Function{Name: "echo", Path: functionPath}, got.Function)
				assert.Equal(t, Git{
					Origin: "https://github.com/musketeers/echo-service.git",
					Branch: "feature/greeting",
					Sha:    mockSha,
					Root:   "/src/echo-service",
				}, got.Git)
				assert.Equal(t, "musketeers/echo-service", got.Repository.Prefix)
				assert.Equal(t, "echo-service", got.Resource.Prefix)
				assert.Equal(t, "Thank you for using the 3 Musketeers!", got.Echo.Message)
				assert.Equal(t, "org.3musketeers.echo.git-sha", got.Label.Sha)
			},
		},
		{
			name: "environment overrides git and prefix",
			setup: func(t *testing.T) {
				t.Setenv(EnvBranch, "main")
				t.Setenv(EnvSha, "0000000000000000000000000000000000000000")
				t.Setenv(EnvResourcePrefix, "athos")
			},
			test: func(t *testing.T, got Config) {
				assert.Equal(t, "main", got.Git.Branch)
				assert.Equal(t, "0000000000000000000000000000000000000000", got.Git.Sha)
				assert.Equal(t, "athos", got.Resource.Prefix)
				assert.Equal(t, "musketeers/echo-service", got.Repository.Prefix)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup(t)
			}

			got, err := FromCheckout(mockCheckout(t, "https://github.com/musketeers/echo-service.git"), functionPath)
			assert.NoError(t, err)
			tc.test(t, got)

			if tc.teardown != nil {
				tc.teardown()
			}
		})
	}
}

func TestFromCheckoutWithoutOrigin(t *testing.T) {
	checkout := mockCheckout(t, "https://github.com/musketeers/echo-service.git")
	checkout.Origin = nil

	_, err := FromCheckout(checkout, ".")
	assert.Error(t, err)
}

func TestDerivedNames(t *testing.T) {
	os.Unsetenv(EnvBranch)
	os.Unsetenv(EnvSha)
	os.Unsetenv(EnvResourcePrefix)

	got, err := FromCheckout(mockCheckout(t, "https://github.com/musketeers/echo-service.git"), filepath.Join(t.TempDir(), "echo"))
	assert.NoError(t, err)

	assert.Equal(t, "musketeers/echo-service/echo", got.RepositoryUrl())

	got.Account.Id = "123456789012"
	got.Registry.Url = RegistryUrl("123456789013", "us-west-2")

	assert.Equal(t, "echo-service-feature-greeting-echo", got.ResourceName(got.Git.Branch))
	assert.Equal(t, "arn:aws:iam::123456789012:role/echo-service-feature-greeting-echo", got.RoleArn(got.Git.Branch))
	assert.Equal(t, "musketeers/echo-service/echo", got.RepositoryName())
	assert.Equal(t, "123456789013.dkr.ecr.us-west-2.amazonaws.com/musketeers/echo-service/echo", got.RepositoryUrl())
	assert.Equal(t, []string{
		"123456789013.dkr.ecr.us-west-2.amazonaws.com/musketeers/echo-service/echo:feature-greeting",
		"123456789013.dkr.ecr.us-west-2.amazonaws.com/musketeers/echo-service/echo:" + mockSha,
	}, got.Tags())

	j, err := got.Json()
	assert.NoError(t, err)
	assert.Contains(t, j, `"Repository":{"Prefix":"musketeers/echo-service"}`)
}

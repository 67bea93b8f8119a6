package mock

import (
	"context"
	"time"

	"github.com/LukePeterson/3musketeers/pkg/convention/config"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/mock"
)

const Digest = "sha256:6c3c624b58dbbcd3c0dd82b4c53f04194d1247c6eebdaab7c610cf7d66709b3b"

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) Token(ctx context.Context, registryId string) (string, error) {
	args := m.Called(ctx, registryId)
	return args.String(0), args.Error(1)
}

func (m *MockRegistryService) InspectByTag(ctx context.Context, registryId, repository, tag string) (dockertypes.ImageInspect, error) {
	args := m.Called(ctx, registryId, repository, tag)
	return args.Get(0).(dockertypes.ImageInspect), args.Error(1)
}

func (m *MockRegistryService) ImageUri(ctx context.Context, registryId, registryUrl, repository, tag string) (string, error) {
	args := m.Called(ctx, registryId, registryUrl, repository, tag)
	return args.String(0), args.Error(1)
}

func (m *MockRegistryService) PutRepository(ctx context.Context, repositoryName string) error {
	args := m.Called(ctx, repositoryName)
	return args.Error(0)
}

// MockImageInspect is an image as the build labels it, built at the given time.
func MockImageInspect(c config.Config, built time.Time, arch string) dockertypes.ImageInspect {
	return dockertypes.ImageInspect{
		ID: Digest,
		RepoTags: []string{
			c.Tags()[0],
			c.Tags()[1],
		},
		RepoDigests: []string{
			c.RepositoryUrl() + "@" + Digest,
		},
		Created:      built.Format(time.RFC3339),
		Architecture: arch,
		Os:           "linux",
		Config: &container.Config{
			Labels: map[string]string{
				c.Label.Sha:    c.Git.Sha,
				c.Label.Origin: c.Git.Origin,
				c.Label.Built:  built.Format(time.RFC3339),
			},
		},
	}
}

package mock

import (
	"context"

	"github.com/LukePeterson/3musketeers/pkg/service/docker"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/stretchr/testify/mock"
)

type MockBuildService struct {
	mock.Mock
}

func (m *MockBuildService) Login(ctx context.Context, registryUrl, username, password string) error {
	args := m.Called(ctx, registryUrl, username, password)
	return args.Error(0)
}

func (m *MockBuildService) InspectByTag(ctx context.Context, image string) (dockertypes.ImageInspect, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(dockertypes.ImageInspect), args.Error(1)
}

func (m *MockBuildService) Build(ctx context.Context, path string, labels map[string]string, tags []string) error {
	args := m.Called(ctx, path, labels, tags)
	return args.Error(0)
}

func (m *MockBuildService) Push(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockBuildService) Run(ctx context.Context, input docker.RunInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

package runtime

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LukePeterson/3musketeers/pkg/convention/release"
	"github.com/LukePeterson/3musketeers/pkg/echo"
	"github.com/LukePeterson/3musketeers/pkg/service/docker"
	fixturemock "github.com/LukePeterson/3musketeers/pkg/mock/fixture"
	servicemock "github.com/LukePeterson/3musketeers/pkg/mock/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEmulate(t *testing.T) {
	ctx := context.Background()
	config := fixturemock.Config()

	inspect := servicemock.MockImageInspect(config, time.Now(), "arm64")
	inspect.ID = "sha256:" + fixturemock.Sha

	tests := []struct {
		name  string
		image release.Image
		port  string
		setup func(*servicemock.MockBuildService)
		test  func(*testing.T, error, *servicemock.MockBuildService)
	}{
		{
			name:  "runs the image with the message in its environment",
			image: release.Image{ImageInspect: inspect},
			port:  "9001",
			setup: func(mbs *servicemock.MockBuildService) {
				mbs.On("Run", mock.Anything, docker.RunInput{
					Image:       inspect.ID,
					Port:        "9001",
					Environment: map[string]string{"ECHO_MESSAGE": fixturemock.Message},
				}).Return(nil)
			},
			test: func(t *testing.T, err error, mbs *servicemock.MockBuildService) {
				assert.NoError(t, err)
				mbs.AssertExpectations(t)
			},
		},
		{
			name:  "falls back to the default port",
			image: release.Image{ImageInspect: inspect},
			setup: func(mbs *servicemock.MockBuildService) {
				mbs.On("Run", mock.Anything, mock.MatchedBy(func(input docker.RunInput) bool {
					return input.Port == DefaultPort
				})).Return(nil)
			},
			test: func(t *testing.T, err error, mbs *servicemock.MockBuildService) {
				assert.NoError(t, err)
				mbs.AssertExpectations(t)
			},
		},
		{
			name:  "refuses images without an id",
			image: release.Image{},
			setup: func(mbs *servicemock.MockBuildService) {},
			test: func(t *testing.T, err error, mbs *servicemock.MockBuildService) {
				assert.Error(t, err)
				mbs.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "reports container failures",
			image: release.Image{ImageInspect: inspect},
			setup: func(mbs *servicemock.MockBuildService) {
				mbs.On("Run", mock.Anything, mock.Anything).Return(fmt.Errorf("exit status 125"))
			},
			test: func(t *testing.T, err error, mbs *servicemock.MockBuildService) {
				assert.ErrorContains(t, err, "exit status 125")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mbs := &servicemock.MockBuildService{}
			tc.setup(mbs)

			err := FromServices(config, mbs).Emulate(ctx, tc.image, tc.port, echo.Config{Message: config.Echo.Message})
			tc.test(t, err, mbs)
		})
	}
}

func TestInvokeUrl(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/2015-03-31/functions/function/invocations", InvokeUrl("9000"))
}

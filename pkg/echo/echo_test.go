package echo

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEcho(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		teardown func()
		expected string
	}{
		{
			name:     "configured message is echoed verbatim",
			setup:    func() { os.Setenv(EnvMessage, "Thank you for using the 3 Musketeers!") },
			teardown: func() { os.Unsetenv(EnvMessage) },
			expected: "Thank you for using the 3 Musketeers!",
		},
		{
			name:     "explicitly empty message yields empty body",
			setup:    func() { os.Setenv(EnvMessage, "") },
			teardown: func() { os.Unsetenv(EnvMessage) },
			expected: "",
		},
		{
			name:     "unset message yields empty body",
			setup:    func() { os.Unsetenv(EnvMessage) },
			expected: "",
		},
		{
			name:     "whitespace is not trimmed",
			setup:    func() { os.Setenv(EnvMessage, "  padded\n") },
			teardown: func() { os.Unsetenv(EnvMessage) },
			expected: "  padded\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup()
			}

			response, err := Echo(context.Background(), events.APIGatewayProxyRequest{})
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, response.Body)
			assert.Equal(t, http.StatusOK, response.StatusCode)

			if tc.teardown != nil {
				tc.teardown()
			}
		})
	}
}

func TestEchoToleratesNilContext(t *testing.T) {
	t.Setenv(EnvMessage, "nil context")

	//lint:ignore SA1012 the handler is total over its inputs
	response, err := Echo(nil, events.APIGatewayProxyRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "nil context", response.Body)
}

func TestHandlerIgnoresEvent(t *testing.T) {
	ctx := context.Background()
	h := New(Config{Message: "hello"})

	requests := []events.APIGatewayProxyRequest{
		{},
		{HTTPMethod: "POST", Path: "/anything", Body: "ignored"},
		{QueryStringParameters: map[string]string{"message": "not me"}},
	}

	for _, request := range requests {
		response, err := h.Handle(ctx, request)
		assert.NoError(t, err)
		assert.Equal(t, "hello", response.Body)
		assert.Equal(t, "text/plain; charset=utf-8", response.Headers["Content-Type"])
	}
}

func TestInvokeAcceptsAnyPayload(t *testing.T) {
	h := New(Config{Message: "raw"})
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})

	payloads := []json.RawMessage{
		nil,
		json.RawMessage(`{}`),
		json.RawMessage(`"a string"`),
		json.RawMessage(`{"version":"2.0","rawPath":"/"}`),
		json.RawMessage(`not even json`),
	}

	for _, payload := range payloads {
		response, err := h.Invoke(ctx, payload)
		assert.NoError(t, err)
		assert.Equal(t, "raw", response.Body)
		assert.Equal(t, http.StatusOK, response.StatusCode)
	}
}

func TestInjectedConfigIgnoresEnvironment(t *testing.T) {
	t.Setenv(EnvMessage, "from env")

	h := New(Config{Message: "injected"})
	response, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "injected", response.Body)
	assert.Equal(t, Config{Message: "injected"}, h.Config())
}

func TestConcurrentInvocations(t *testing.T) {
	h := New(Config{Message: "shared"})

	var wg sync.WaitGroup
	bodies := make([]string, 32)
	for i := range bodies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			response, _ := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
			bodies[i] = response.Body
		}(i)
	}
	wg.Wait()

	for _, body := range bodies {
		assert.Equal(t, "shared", body)
	}
}

package method

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/LukePeterson/3musketeers/cmd/cli/param"
	"github.com/LukePeterson/3musketeers/pkg/sdk"
	fixturemock "github.com/LukePeterson/3musketeers/pkg/mock/fixture"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func TestInvoke(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "prints the configured message", message: fixturemock.Message, expected: fixturemock.Message},
		{name: "prints an empty body without a message", message: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Invoke(context.Background(), &buf, &param.Invoke{MessageOpt: param.MessageOpt{Message: tc.message}})
			assert.NoError(t, err)

			var response events.APIGatewayProxyResponse
			assert.NoError(t, json.Unmarshal(buf.Bytes(), &response))
			assert.Equal(t, http.StatusOK, response.StatusCode)
			assert.Equal(t, tc.expected, response.Body)
		})
	}
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	err := PrintConfig(context.Background(), &buf, sdk.API{Config: fixturemock.Config()})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), fixturemock.Sha)
	assert.Contains(t, buf.String(), "musketeers/echo-service")
}

func TestDeployTarget(t *testing.T) {
	tests := []struct {
		name   string
		tag    string
		wantTag   string
		branch string
	}{
		{name: "defaults to the current branch", tag: "", wantTag: "main", branch: "main"},
		{name: "a sha deploys to the current branch", tag: fixturemock.Sha, wantTag: fixturemock.Sha, branch: "main"},
		{name: "a branch deploys to itself", tag: fixturemock.Branch, wantTag: fixturemock.Branch, branch: fixturemock.Branch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tag, branch := DeployTarget(tc.tag, "main")
			assert.Equal(t, tc.wantTag, tag)
			assert.Equal(t, tc.branch, branch)
		})
	}
}

package util

import (
	"bytes"
	"testing"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDeSlasher(t *testing.T) {
	assert.Equal(t, "feature-branch", DeSlasher("feature/branch"))
	assert.Equal(t, "org-repo", DeSlasher("/org/repo/"))
	assert.Equal(t, "main", DeSlasher("main"))
}

func TestShaLike(t *testing.T) {
	assert.True(t, ShaLike("2e17ab2c190fc5dfff79e66fc972f015da937f05"))
	assert.False(t, ShaLike("main"))
	assert.False(t, ShaLike("2E17AB2C190FC5DFFF79E66FC972F015DA937F05"))
	assert.False(t, ShaLike("2e17ab2"))
}

func TestRoleArns(t *testing.T) {
	arn := RoleArnFromName("123456789012", "repo-main-echo")
	assert.Equal(t, "arn:aws:iam::123456789012:role/repo-main-echo", arn)
	assert.Equal(t, "repo-main-echo", RoleNameFromArn(arn))
	assert.Equal(t, "", RoleNameFromArn("arn:aws:iam::123456789012:user/bob"))
}

func TestLogLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.WarnLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"trace":   zerolog.TraceLevel,
		"error":   zerolog.ErrorLevel,
		"bananas": zerolog.WarnLevel,
	}

	for name, expected := range cases {
		assert.Equalf(t, expected, LogLevel(name), "level for %q", name)
	}
}

func TestInLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "echo")
	assert.True(t, InLambda())
}

func TestRetryLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)
	retry := RetryLogger{Log: &logger}

	retry.Logf(logging.Warn, "throttled %d", 3)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "throttled 3")

	buf.Reset()
	retry.Logf(logging.Debug, "retrying request %s", "GetFunction")
	assert.Contains(t, buf.String(), `"level":"info"`)

	buf.Reset()
	retry.Logf(logging.Debug, "signing")
	assert.Contains(t, buf.String(), `"level":"debug"`)

	buf.Reset()
	retry.Logf(logging.Classification("OTHER"), "boom")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

package router

import (
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
)

func parse(t *testing.T, args ...string) Root {
	var root Root
	p, err := arg.NewParser(arg.Config{}, &root)
	assert.NoError(t, err)
	assert.NoError(t, p.Parse(args))
	return root
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		setup func(*testing.T)
		test  func(*testing.T, Root)
	}{
		{
			name: "invoke takes the message from the environment",
			args: []string{"invoke"},
			setup: func(t *testing.T) {
				t.Setenv("ECHO_MESSAGE", "from env")
			},
			test: func(t *testing.T, r Root) {
				assert.Equal(t, "from env", r.Invoke.Message)
				assert.Equal(t, ScopeNone, r.Scope())
			},
		},
		{
			name: "flags override the environment",
			args: []string{"invoke", "--message", "from flag"},
			setup: func(t *testing.T) {
				t.Setenv("ECHO_MESSAGE", "from env")
			},
			test: func(t *testing.T, r Root) {
				assert.Equal(t, "from flag", r.Invoke.Message)
			},
		},
		{
			name: "serve reads the web adapter port",
			args: []string{"serve"},
			setup: func(t *testing.T) {
				t.Setenv("AWS_LWA_PORT", "8082")
			},
			test: func(t *testing.T, r Root) {
				assert.Equal(t, "8082", r.Serve.Port)
				assert.Equal(t, ScopeNone, r.Scope())
			},
		},
		{
			name: "run defaults path and port",
			args: []string{"run"},
			test: func(t *testing.T, r Root) {
				assert.Equal(t, ".", r.FunctionPath())
				assert.Equal(t, "9000", r.Run.Port)
				assert.Equal(t, ScopeLocal, r.Scope())
			},
		},
		{
			name: "deploy takes a tag and a path",
			args: []string{"deploy", "--tag", "main", "functions/echo"},
			test: func(t *testing.T, r Root) {
				assert.Equal(t, "main", r.Deploy.Tag)
				assert.Equal(t, "functions/echo", r.FunctionPath())
				assert.Equal(t, ScopeAws, r.Scope())
			},
		},
		{
			name: "publish flags",
			args: []string{"--env-file", "ci.env", "publish", "-l", "-e"},
			test: func(t *testing.T, r Root) {
				assert.Equal(t, "ci.env", r.EnvFile)
				assert.True(t, r.Publish.Login)
				assert.True(t, r.Publish.EnsureRepository)
				assert.Equal(t, ScopeAws, r.Scope())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup(t)
			}
			tc.test(t, parse(t, tc.args...))
		})
	}
}

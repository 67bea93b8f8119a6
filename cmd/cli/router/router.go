package router

import (
	"context"
	"fmt"
	"os"

	"github.com/LukePeterson/3musketeers/cmd/cli/method"
	"github.com/LukePeterson/3musketeers/cmd/cli/param"
	"github.com/LukePeterson/3musketeers/pkg/sdk"
)

type Scope int

const (
	// ScopeNone commands only need the environment.
	ScopeNone Scope = iota
	// ScopeLocal commands need a git checkout and docker.
	ScopeLocal
	// ScopeAws commands additionally need AWS credentials.
	ScopeAws
)

type Root struct {
	EnvFile string         `arg:"--env-file" help:"dotenv file to load, defaults to .env when present"`
	Invoke  *param.Invoke  `arg:"subcommand:invoke" help:"Invoke the handler once and print the response"`
	Serve   *param.Serve   `arg:"subcommand:serve" help:"Serve the handler over HTTP"`
	Config  *param.Config  `arg:"subcommand:config" help:"Print configuration"`
	Build   *param.Build   `arg:"subcommand:build" help:"Build the function image"`
	Run     *param.Run     `arg:"subcommand:run" help:"Build and run the function image locally"`
	Publish *param.Publish `arg:"subcommand:publish" help:"Build and push a release"`
	Deploy  *param.Deploy  `arg:"subcommand:deploy" help:"Deploy a release behind a public function URL"`
	Destroy *param.Destroy `arg:"subcommand:destroy" help:"Destroy a deployment"`
	Curl    *param.Curl    `arg:"subcommand:curl" help:"Request a deployment's function URL"`
}

func (r Root) Scope() Scope {
	switch {
	case r.Build != nil, r.Run != nil:
		return ScopeLocal
	case r.Config != nil, r.Publish != nil, r.Deploy != nil, r.Destroy != nil, r.Curl != nil:
		return ScopeAws
	default:
		return ScopeNone
	}
}

// FunctionPath is the function directory named by the subcommand.
func (r Root) FunctionPath() string {
	switch {
	case r.Config != nil:
		return r.Config.Path
	case r.Build != nil:
		return r.Build.Path
	case r.Run != nil:
		return r.Run.Path
	case r.Publish != nil:
		return r.Publish.Path
	case r.Deploy != nil:
		return r.Deploy.Path
	case r.Destroy != nil:
		return r.Destroy.Path
	case r.Curl != nil:
		return r.Curl.Path
	default:
		return "."
	}
}

func (r Root) Route(ctx context.Context, api sdk.API) error {
	switch {
	case r.Invoke != nil:
		return method.Invoke(ctx, os.Stdout, r.Invoke)

	case r.Serve != nil:
		return method.Serve(ctx, r.Serve)

	case r.Config != nil:
		return method.PrintConfig(ctx, os.Stdout, api)

	case r.Build != nil:
		return method.BuildImage(ctx, api)

	case r.Run != nil:
		return method.RunImage(ctx, api, r.Run)

	case r.Publish != nil:
		return method.PublishRelease(ctx, os.Stdout, api, r.Publish)

	case r.Deploy != nil:
		return method.DeployRelease(ctx, os.Stdout, api, r.Deploy)

	case r.Destroy != nil:
		return method.DestroyDeployment(ctx, api, r.Destroy)

	case r.Curl != nil:
		return method.CurlDeployment(ctx, os.Stdout, api, r.Curl)

	default:
		return fmt.Errorf("no subcommand given")
	}
}

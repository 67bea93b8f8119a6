package method

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/LukePeterson/3musketeers/cmd/cli/param"
	"github.com/LukePeterson/3musketeers/cmd/cli/view"
	"github.com/LukePeterson/3musketeers/internal/util"
	"github.com/LukePeterson/3musketeers/pkg/echo"
	"github.com/LukePeterson/3musketeers/pkg/sdk"
	"github.com/LukePeterson/3musketeers/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-module/carbon/v2"
	"github.com/rs/zerolog/log"
)

// Invoke runs the handler once against an empty request and prints the response.
func Invoke(ctx context.Context, w io.Writer, p *param.Invoke) error {
	response, err := echo.New(echo.Config{Message: p.Message}).Handle(ctx, events.APIGatewayProxyRequest{})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %v", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

func Serve(ctx context.Context, p *param.Serve) error {
	return server.Run(echo.New(echo.Config{Message: p.Message}), p.Port)
}

func PrintConfig(ctx context.Context, w io.Writer, api sdk.API) error {
	cJson, err := api.Config.Json()
	if err != nil {
		return fmt.Errorf("failed to print configuration: %v", err)
	}

	_, err = fmt.Fprintln(w, cJson)
	return err
}

func BuildImage(ctx context.Context, api sdk.API) error {
	image, err := api.Release.Build(ctx)
	if err != nil {
		return err
	}

	log.Info().Str("id", image.ID).Strs("tags", image.RepoTags).Msg("built")
	return nil
}

func RunImage(ctx context.Context, api sdk.API, p *param.Run) error {
	image, err := api.Release.Build(ctx)
	if err != nil {
		return err
	}

	return api.Runtime.Emulate(ctx, image, p.Port, echo.Config{Message: p.Message})
}

func PublishRelease(ctx context.Context, w io.Writer, api sdk.API, p *param.Publish) error {
	if p.Login {
		if err := api.Account.LoginToEcr(ctx); err != nil {
			return err
		}
	}

	if p.EnsureRepository {
		if err := api.Release.EnsureRepository(ctx); err != nil {
			return err
		}
	}

	image, err := api.Release.Build(ctx)
	if err != nil {
		return err
	}

	if err := api.Release.Publish(ctx, image); err != nil {
		return err
	}

	release, err := api.Release.Find(ctx, api.Config.Git.Sha)
	if err != nil {
		return fmt.Errorf("failed to find published release: %v", err)
	}

	_, err = fmt.Fprintln(w, view.Release(api.Release.Summarize(release, carbon.Now())))
	return err
}

func DeployRelease(ctx context.Context, w io.Writer, api sdk.API, p *param.Deploy) error {
	tag, branch := DeployTarget(p.Tag, api.Config.Git.Branch)

	release, err := api.Release.Find(ctx, tag)
	if err != nil {
		return fmt.Errorf("failed to find release %s: %v", tag, err)
	}

	deployment, err := api.Deployment.Deploy(ctx, release, branch, echo.Config{Message: p.Message})
	if err != nil {
		return err
	}

	if p.Verify {
		if err := api.Curl.Verify(ctx, deployment.Url, p.Message); err != nil {
			return fmt.Errorf("failed to verify deployment: %v", err)
		}
	}

	_, err = fmt.Fprintln(w, view.Deployment(deployment))
	return err
}

func DestroyDeployment(ctx context.Context, api sdk.API, p *param.Destroy) error {
	branch := p.Branch
	if branch == "" {
		branch = api.Config.Git.Branch
	}

	deployment, err := api.Deployment.Find(ctx, branch)
	if err != nil {
		return fmt.Errorf("failed to find deployment for %s: %v", branch, err)
	}

	return api.Deployment.Destroy(ctx, deployment)
}

func CurlDeployment(ctx context.Context, w io.Writer, api sdk.API, p *param.Curl) error {
	branch := p.Branch
	if branch == "" {
		branch = api.Config.Git.Branch
	}

	deployment, err := api.Deployment.Find(ctx, branch)
	if err != nil {
		return fmt.Errorf("failed to find deployment for %s: %v", branch, err)
	}

	if deployment.Url == "" {
		return fmt.Errorf("deployment for %s has no function url", branch)
	}

	response, err := api.Curl.Get(ctx, deployment.Url)
	if err != nil {
		return err
	}

	log.Info().Int("status", response.Status).Str("url", deployment.Url).Msg("response")

	_, err = fmt.Fprintln(w, response.Body)
	return err
}

// DeployTarget picks the release tag and the branch whose deployment it lands in.
// A sha pins the release but deploys to the current branch.
func DeployTarget(tag, current string) (string, string) {
	switch {
	case tag == "":
		return current, current
	case util.ShaLike(tag):
		return tag, current
	default:
		return tag, tag
	}
}

package release

import (
	"context"
	"fmt"

	"github.com/LukePeterson/3musketeers/pkg/convention/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/docker/docker/api/types"
	"github.com/golang-module/carbon/v2"
)

type RegistryService interface {
	InspectByTag(ctx context.Context, registryId, repositoryName, tag string) (types.ImageInspect, error)
	ImageUri(ctx context.Context, registryId, registryUrl, repositoryName, tag string) (string, error)
	PutRepository(ctx context.Context, repositoryName string) error
}

type BuildService interface {
	InspectByTag(ctx context.Context, image string) (types.ImageInspect, error)
	Build(ctx context.Context, path string, labels map[string]string, tags []string) error
	Push(ctx context.Context, tag string) error
}

type Image struct {
	types.ImageInspect
}

type Release struct {
	Image
	Uri          string
	Architecture lambdatypes.Architecture
}

// Summary is what a human wants to know about a release.
type Summary struct {
	Uri          string
	Architecture string
	Sha          string
	Origin       string
	Built        string
	Age          string
}

type Services struct {
	Registry RegistryService
	Build    BuildService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, r RegistryService, b BuildService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Registry: r,
			Build:    b,
		},
	}
}

func (c Convention) Labels(built carbon.Carbon) map[string]string {
	return map[string]string{
		c.Config.Label.Sha:    c.Config.Git.Sha,
		c.Config.Label.Origin: c.Config.Git.Origin,
		c.Config.Label.Built:  built.ToIso8601String(),
	}
}

func (c Convention) Build(ctx context.Context) (Image, error) {
	ctx, span := otel.Tracer("").Start(ctx, "release.Build")
	defer span.End()

	tags := c.Config.Tags()

	span.SetAttributes(
		attribute.String("build-path", c.Config.Function.Path),
		attribute.String("branch", c.Config.Git.Branch),
		attribute.String("sha", c.Config.Git.Sha),
		attribute.Bool("dirty", c.Config.Git.Dirty),
		attribute.StringSlice("tags", tags),
	)

	if err := c.Service.Build.Build(ctx, c.Config.Function.Path, c.Labels(carbon.Now()), tags); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Image{}, fmt.Errorf("failed to build %s: %v", c.Config.Function.Path, err)
	}

	// the sha tag is unique to this build, the branch tag may still point elsewhere locally.
	inspect, err := c.Service.Build.InspectByTag(ctx, tags[1])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Image{}, err
	}

	return Image{inspect}, nil
}

func (c Convention) Publish(ctx context.Context, i Image) error {
	ctx, span := otel.Tracer("").Start(ctx, "release.Publish")
	defer span.End()

	span.SetAttributes(
		attribute.String("image-id", i.ID),
		attribute.StringSlice("image-tags", i.RepoTags),
	)

	if c.Config.Git.Dirty {
		err := fmt.Errorf("refusing to publish from a dirty work tree, commit or stash first")
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// Catches stale local images still holding one of our tags.
	if len(i.RepoTags) != 2 {
		err := fmt.Errorf("image must have exactly two tags, was given %d, try deleting local images", len(i.RepoTags))
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	for _, tag := range i.RepoTags {
		if err := c.Service.Build.Push(ctx, tag); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to push %s: %v", tag, err)
		}
	}

	return nil
}

// Find resolves a branch or sha to a digest-pinned release.
func (c Convention) Find(ctx context.Context, tag string) (Release, error) {
	ctx, span := otel.Tracer("").Start(ctx, "release.Find")
	defer span.End()

	repositoryName := c.Config.RepositoryName()
	tag = config.BranchTag(tag)

	span.SetAttributes(
		attribute.String("registry-url", c.Config.Registry.Url),
		attribute.String("registry-id", c.Config.Registry.Id),
		attribute.String("repository-name", repositoryName),
		attribute.String("tag", tag),
	)

	inspect, err := c.Service.Registry.InspectByTag(ctx, c.Config.Registry.Id, repositoryName, tag)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Release{}, err
	}

	uri, err := c.Service.Registry.ImageUri(ctx, c.Config.Registry.Id, c.Config.Registry.Url, repositoryName, tag)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Release{}, err
	}

	arch, err := ToArch(inspect.Architecture)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Release{}, err
	}

	span.SetAttributes(
		attribute.String("image-uri", uri),
		attribute.String("architecture", string(arch)),
	)

	return Release{Image{inspect}, uri, arch}, nil
}

func (c Convention) EnsureRepository(ctx context.Context) error {
	ctx, span := otel.Tracer("").Start(ctx, "release.EnsureRepository")
	defer span.End()

	if err := c.Service.Registry.PutRepository(ctx, c.Config.RepositoryName()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to ensure repository %s: %v", c.Config.RepositoryName(), err)
	}

	return nil
}

func (c Convention) Summarize(r Release, now carbon.Carbon) Summary {
	summary := Summary{
		Uri:          r.Uri,
		Architecture: string(r.Architecture),
		Age:          "unknown",
	}

	if r.Config == nil {
		return summary
	}

	summary.Sha = r.Config.Labels[c.Config.Label.Sha]
	summary.Origin = r.Config.Labels[c.Config.Label.Origin]
	summary.Built = r.Config.Labels[c.Config.Label.Built]

	if summary.Built != "" {
		if built := carbon.Parse(summary.Built); !built.IsInvalid() {
			summary.Age = built.DiffForHumans(now)
		}
	}

	return summary
}

func ToArch(arch string) (lambdatypes.Architecture, error) {
	switch arch {
	case "arm64", "aarch64":
		return lambdatypes.ArchitectureArm64, nil
	case "amd64", "x86_64":
		return lambdatypes.ArchitectureX8664, nil
	default:
		return "", fmt.Errorf("unsupported architecture %s", arch)
	}
}

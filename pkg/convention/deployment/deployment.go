package deployment

import (
	"context"
	"fmt"

	"github.com/LukePeterson/3musketeers/internal/util"
	"github.com/LukePeterson/3musketeers/pkg/convention/config"
	"github.com/LukePeterson/3musketeers/pkg/convention/release"
	"github.com/LukePeterson/3musketeers/pkg/echo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/rs/zerolog/log"
)

const (
	MemorySize int32 = 128
	Timeout    int32 = 3
)

type FunctionService interface {
	Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error)
	PutRole(ctx context.Context, name string, tags map[string]string) (*iam.GetRoleOutput, error)
	DeleteRole(ctx context.Context, name string) error
	PutFunction(ctx context.Context, put *lambda.CreateFunctionInput) (*lambda.GetFunctionOutput, error)
	DeleteFunction(ctx context.Context, name string) error
	FunctionUrl(ctx context.Context, name string) (string, error)
	PutFunctionUrl(ctx context.Context, name string) (string, error)
	DeleteFunctionUrl(ctx context.Context, name string) error
}

type Deployment struct {
	lambda.GetFunctionOutput
	Url string
}

// Message is the echo message the deployed function answers with.
func (d Deployment) Message() string {
	if d.Configuration == nil || d.Configuration.Environment == nil {
		return ""
	}
	return d.Configuration.Environment.Variables[echo.EnvMessage]
}

type Services struct {
	Function FunctionService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, f FunctionService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Function: f,
		},
	}
}

func (c Convention) Find(ctx context.Context, branch string) (Deployment, error) {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.Find")
	defer span.End()

	resource := c.Config.ResourceName(branch)
	span.SetAttributes(attribute.String("resource", resource))

	function, err := c.Service.Function.Inspect(ctx, resource)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, err
	}

	url, err := c.Service.Function.FunctionUrl(ctx, resource)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, err
	}

	return Deployment{*function, url}, nil
}

// Deploy converges role, function and public URL for the release on branch.
func (c Convention) Deploy(ctx context.Context, r release.Release, branch string, message echo.Config) (Deployment, error) {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.Deploy")
	defer span.End()

	resource := c.Config.ResourceName(branch)

	sha := ""
	if r.Config != nil {
		sha = r.Config.Labels[c.Config.Label.Sha]
	}

	tags := map[string]string{"Branch": branch, "Function": c.Config.Function.Name, "Sha": sha}

	span.SetAttributes(
		attribute.String("resource", resource),
		attribute.String("image-uri", r.Uri),
		attribute.String("sha", sha),
	)

	role, err := c.Service.Function.PutRole(ctx, resource, tags)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to put role %s: %v", resource, err)
	}

	input := &lambda.CreateFunctionInput{
		FunctionName:  aws.String(resource),
		Role:          role.Role.Arn,
		Tags:          tags,
		Architectures: []types.Architecture{r.Architecture},
		PackageType:   types.PackageTypeImage,
		Timeout:       aws.Int32(Timeout),
		MemorySize:    aws.Int32(MemorySize),
		Environment: &types.Environment{
			Variables: map[string]string{
				echo.EnvMessage: message.Message,
			},
		},
		Code: &types.FunctionCode{
			ImageUri: aws.String(r.Uri),
		},
		Publish: true,
	}

	function, err := c.Service.Function.PutFunction(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to put function %s: %v", resource, err)
	}

	url, err := c.Service.Function.PutFunctionUrl(ctx, resource)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, fmt.Errorf("failed to put function url for %s: %v", resource, err)
	}

	log.Info().Str("function", resource).Str("url", url).Msg("deployed")

	return Deployment{*function, url}, nil
}

// Destroy removes URL, function and role, in that order. Missing pieces are skipped.
func (c Convention) Destroy(ctx context.Context, d Deployment) error {
	ctx, span := otel.Tracer("").Start(ctx, "deployment.Destroy")
	defer span.End()

	if d.Configuration == nil || d.Configuration.FunctionName == nil {
		err := fmt.Errorf("deployment has no function configuration")
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	name := *d.Configuration.FunctionName
	span.SetAttributes(attribute.String("resource", name))

	if err := c.Service.Function.DeleteFunctionUrl(ctx, name); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete function url for %s: %v", name, err)
	}

	if err := c.Service.Function.DeleteFunction(ctx, name); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete function %s: %v", name, err)
	}

	if roleName := util.RoleNameFromArn(aws.ToString(d.Configuration.Role)); roleName != "" {
		if err := c.Service.Function.DeleteRole(ctx, roleName); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("failed to delete role %s: %v", roleName, err)
		}
	}

	return nil
}

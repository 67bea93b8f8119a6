package sdk

import (
	"context"
	"net/http"

	// config
	"github.com/LukePeterson/3musketeers/pkg/convention/config"

	// services
	"github.com/LukePeterson/3musketeers/pkg/service/docker"
	"github.com/LukePeterson/3musketeers/pkg/service/function"
	"github.com/LukePeterson/3musketeers/pkg/service/registry"

	// conventions
	"github.com/LukePeterson/3musketeers/pkg/convention/account"
	"github.com/LukePeterson/3musketeers/pkg/convention/curl"
	"github.com/LukePeterson/3musketeers/pkg/convention/deployment"
	"github.com/LukePeterson/3musketeers/pkg/convention/release"
	"github.com/LukePeterson/3musketeers/pkg/convention/runtime"

	// clients
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type Clients struct {
	StsClient    *sts.Client
	EcrClient    *ecr.Client
	LambdaClient *lambda.Client
	IamClient    *iam.Client
}

type Services struct {
	Docker   docker.Service
	Registry registry.Service
	Function function.Service
}

type Conventions struct {
	Account    account.Convention
	Runtime    runtime.Convention
	Release    release.Convention
	Deployment deployment.Convention
	Curl       curl.Convention
}

type API struct {
	Conventions
	Config config.Config
}

func Init(ctx context.Context, awsConfig aws.Config, config config.Config) (API, error) {
	clients, err := InitClients(ctx, awsConfig)
	if err != nil {
		return API{}, err
	}

	services, err := InitServices(ctx, clients)
	if err != nil {
		return API{}, err
	}

	conventions, err := InitConventions(ctx, config, services)
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Config:      config,
	}, nil
}

// InitLocal wires only what works without AWS credentials: building and running images.
func InitLocal(ctx context.Context, config config.Config) (API, error) {
	docker, err := docker.FromPath(ctx)
	if err != nil {
		return API{}, err
	}

	conventions, err := InitConventions(ctx, config, Services{Docker: docker})
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Config:      config,
	}, nil
}

func InitConventions(ctx context.Context, config config.Config, services Services) (Conventions, error) {
	return Conventions{
		Account:    account.FromServices(config, services.Docker, services.Registry),
		Runtime:    runtime.FromServices(config, services.Docker),
		Release:    release.FromServices(config, services.Registry, services.Docker),
		Deployment: deployment.FromServices(config, services.Function),
		Curl:       curl.FromServices(config, http.DefaultClient),
	}, nil
}

func InitServices(ctx context.Context, clients Clients) (Services, error) {
	docker, err := docker.FromPath(ctx)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Docker:   docker,
		Registry: registry.FromClients(clients.EcrClient),
		Function: function.FromClients(clients.LambdaClient, clients.IamClient),
	}, nil
}

func InitClients(ctx context.Context, awsConfig aws.Config) (Clients, error) {
	return Clients{
		StsClient:    sts.NewFromConfig(awsConfig),
		EcrClient:    ecr.NewFromConfig(awsConfig),
		LambdaClient: lambda.NewFromConfig(awsConfig),
		IamClient:    iam.NewFromConfig(awsConfig),
	}, nil
}

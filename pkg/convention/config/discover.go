package config

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type ECRClient interface {
	DescribeRegistry(ctx context.Context, params *ecr.DescribeRegistryInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRegistryOutput, error)
}

func (c *Config) DiscoverCaller(ctx context.Context, client STSClient, awsConfig aws.Config) error {
	res, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("failed to discover caller: %v", err)
	}

	c.Caller.Arn = aws.ToString(res.Arn)
	c.Account.Id = aws.ToString(res.Account)
	c.Account.Region = awsConfig.Region
	return nil
}

// DiscoverRegistry prefers AWS_ECR_REGISTRY_ID and AWS_ECR_REGION, falling back to the caller's own registry.
func (c *Config) DiscoverRegistry(ctx context.Context, client ECRClient, awsConfig aws.Config) error {
	if region, exists := os.LookupEnv(EnvRegistryRegion); exists {
		c.Registry.Region = region
	} else {
		c.Registry.Region = awsConfig.Region
	}

	if id, exists := os.LookupEnv(EnvRegistryId); exists {
		c.Registry.Id = id
	} else {
		res, err := client.DescribeRegistry(ctx, &ecr.DescribeRegistryInput{})
		if err != nil {
			return fmt.Errorf("failed to discover registry: %v", err)
		}
		c.Registry.Id = aws.ToString(res.RegistryId)
	}

	c.Registry.Url = RegistryUrl(c.Registry.Id, c.Registry.Region)
	return nil
}

func RegistryUrl(id, region string) string {
	return id + ".dkr.ecr." + region + ".amazonaws.com"
}

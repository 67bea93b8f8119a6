package registry

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/smithy-go"
)

func (s Service) PutRepository(ctx context.Context, repositoryName string) error {
	var apiErr smithy.APIError

	_, err := s.Client.Ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{repositoryName},
	})

	if err == nil {
		return nil
	}

	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "RepositoryNotFoundException" {
		return err
	}

	_, err = s.Client.Ecr.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(repositoryName),
	})

	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "RepositoryAlreadyExistsException" {
		return nil
	}

	return err
}

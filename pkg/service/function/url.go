package function

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

const PublicUrlStatementId = "FunctionURLAllowPublicAccess"

// FunctionUrl returns the function's URL, or "" when it has none.
func (s Service) FunctionUrl(ctx context.Context, name string) (string, error) {
	output, err := s.Client.Lambda.GetFunctionUrlConfig(ctx, &lambda.GetFunctionUrlConfigInput{
		FunctionName: aws.String(name),
	})

	if hasErrorCode(err, "ResourceNotFoundException") {
		return "", nil
	}

	if err != nil {
		return "", err
	}

	return aws.ToString(output.FunctionUrl), nil
}

// PutFunctionUrl ensures an unauthenticated URL exists and may be invoked by anyone.
func (s Service) PutFunctionUrl(ctx context.Context, name string) (string, error) {
	url, err := s.FunctionUrl(ctx, name)
	if err != nil {
		return "", err
	}

	if url == "" {
		output, err := s.Client.Lambda.CreateFunctionUrlConfig(ctx, &lambda.CreateFunctionUrlConfigInput{
			FunctionName: aws.String(name),
			AuthType:     types.FunctionUrlAuthTypeNone,
		})

		if err != nil {
			return "", err
		}

		url = aws.ToString(output.FunctionUrl)
	}

	_, err = s.Client.Lambda.AddPermission(ctx, &lambda.AddPermissionInput{
		FunctionName:        aws.String(name),
		StatementId:         aws.String(PublicUrlStatementId),
		Action:              aws.String("lambda:InvokeFunctionUrl"),
		Principal:           aws.String("*"),
		FunctionUrlAuthType: types.FunctionUrlAuthTypeNone,
	})

	if err != nil && !hasErrorCode(err, "ResourceConflictException") {
		return "", err
	}

	return url, nil
}

func (s Service) DeleteFunctionUrl(ctx context.Context, name string) error {
	_, err := s.Client.Lambda.DeleteFunctionUrlConfig(ctx, &lambda.DeleteFunctionUrlConfigInput{
		FunctionName: aws.String(name),
	})

	if hasErrorCode(err, "ResourceNotFoundException") {
		return nil
	}

	return err
}

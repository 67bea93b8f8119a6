package function

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// PutFunction creates the function described by put, or converges an existing one onto it.
func (s Service) PutFunction(ctx context.Context, put *lambda.CreateFunctionInput) (*lambda.GetFunctionOutput, error) {
	getFunctionInput := &lambda.GetFunctionInput{
		FunctionName: put.FunctionName,
	}

	existing, err := s.Client.Lambda.GetFunction(ctx, getFunctionInput)
	if hasErrorCode(err, "ResourceNotFoundException") {
		// freshly created roles take a few seconds before lambda may assume them.
		_, err := s.Client.Lambda.CreateFunction(ctx, put, func(options *lambda.Options) {
			options.Retryer = retry.AddWithErrorCodes(options.Retryer, (*types.InvalidParameterValueException)(nil).ErrorCode())
			options.Retryer = retry.AddWithMaxAttempts(options.Retryer, 10)
		})

		if err != nil {
			return &lambda.GetFunctionOutput{}, err
		}

		return s.Client.Lambda.GetFunction(ctx, getFunctionInput)
	}

	if err != nil {
		return &lambda.GetFunctionOutput{}, err
	}

	updateFunctionConfigurationInput := &lambda.UpdateFunctionConfigurationInput{
		FunctionName: put.FunctionName,
		Role:         put.Role,
		Environment:  put.Environment,
		MemorySize:   put.MemorySize,
		Timeout:      put.Timeout,
	}

	if _, err = s.Client.Lambda.UpdateFunctionConfiguration(ctx, updateFunctionConfigurationInput); err != nil {
		return &lambda.GetFunctionOutput{}, err
	}

	updateFunctionCodeInput := &lambda.UpdateFunctionCodeInput{
		FunctionName:  put.FunctionName,
		ImageUri:      put.Code.ImageUri,
		Architectures: put.Architectures,
		Publish:       put.Publish,
	}

	_, err = s.Client.Lambda.UpdateFunctionCode(ctx, updateFunctionCodeInput, func(options *lambda.Options) {
		options.Retryer = retry.AddWithErrorCodes(options.Retryer, (*types.ResourceConflictException)(nil).ErrorCode())
		options.Retryer = retry.AddWithMaxAttempts(options.Retryer, 10)
	})

	if err != nil {
		return &lambda.GetFunctionOutput{}, err
	}

	if len(put.Tags) > 0 {
		_, err = s.Client.Lambda.TagResource(ctx, &lambda.TagResourceInput{
			Resource: existing.Configuration.FunctionArn,
			Tags:     put.Tags,
		})

		if err != nil {
			return &lambda.GetFunctionOutput{}, err
		}
	}

	return s.Client.Lambda.GetFunction(ctx, getFunctionInput)
}

// DeleteFunction treats an already missing function as deleted.
func (s Service) DeleteFunction(ctx context.Context, name string) error {
	_, err := s.Client.Lambda.DeleteFunction(ctx, &lambda.DeleteFunctionInput{
		FunctionName: aws.String(name),
	})

	if hasErrorCode(err, "ResourceNotFoundException") {
		return nil
	}

	return err
}

package mock

import (
	"context"

	"github.com/LukePeterson/3musketeers/pkg/convention/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/mock"
)

// MockFunctionService is a mock of the deployment FunctionService interface
type MockFunctionService struct {
	mock.Mock
}

func (m *MockFunctionService) Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*lambda.GetFunctionOutput), args.Error(1)
}

func (m *MockFunctionService) PutRole(ctx context.Context, name string, tags map[string]string) (*iam.GetRoleOutput, error) {
	args := m.Called(ctx, name, tags)
	return args.Get(0).(*iam.GetRoleOutput), args.Error(1)
}

func (m *MockFunctionService) DeleteRole(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockFunctionService) PutFunction(ctx context.Context, put *lambda.CreateFunctionInput) (*lambda.GetFunctionOutput, error) {
	args := m.Called(ctx, put)
	return args.Get(0).(*lambda.GetFunctionOutput), args.Error(1)
}

func (m *MockFunctionService) DeleteFunction(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockFunctionService) FunctionUrl(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockFunctionService) PutFunctionUrl(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockFunctionService) DeleteFunctionUrl(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Mock Responses

func MockGetFunctionOutput(c config.Config, branch string) *lambda.GetFunctionOutput {
	resourceName := c.ResourceName(branch)

	return &lambda.GetFunctionOutput{
		Code: &types.FunctionCodeLocation{
			ImageUri: aws.String(c.RepositoryUrl() + "@" + Digest),
		},
		Configuration: &types.FunctionConfiguration{
			Architectures: []types.Architecture{
				types.ArchitectureArm64,
			},
			Role:         aws.String(c.RoleArn(branch)),
			FunctionArn:  aws.String("arn:aws:lambda:us-west-2:123456789012:function:" + resourceName),
			FunctionName: aws.String(resourceName),
			LastModified: aws.String("2024-07-01T00:00:00Z"),
			Environment: &types.EnvironmentResponse{
				Variables: map[string]string{"ECHO_MESSAGE": c.Echo.Message},
			},
		},
		Tags: map[string]string{
			"Branch":   branch,
			"Function": c.Function.Name,
			"Sha":      c.Git.Sha,
		},
	}
}

func MockGetRoleOutput(c config.Config, branch string) *iam.GetRoleOutput {
	resourceName := c.ResourceName(branch)

	return &iam.GetRoleOutput{
		Role: &iamtypes.Role{
			Arn:      aws.String(c.RoleArn(branch)),
			RoleName: aws.String(resourceName),
			Path:     aws.String("/"),
		},
	}
}

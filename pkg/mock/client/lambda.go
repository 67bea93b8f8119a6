package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/stretchr/testify/mock"
)

type MockLambdaClient struct {
	mock.Mock
}

func (m *MockLambdaClient) GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.GetFunctionOutput), args.Error(1)
}

func (m *MockLambdaClient) CreateFunction(ctx context.Context, params *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.CreateFunctionOutput), args.Error(1)
}

func (m *MockLambdaClient) UpdateFunctionConfiguration(ctx context.Context, params *lambda.UpdateFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionConfigurationOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.UpdateFunctionConfigurationOutput), args.Error(1)
}

func (m *MockLambdaClient) UpdateFunctionCode(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.UpdateFunctionCodeOutput), args.Error(1)
}

func (m *MockLambdaClient) TagResource(ctx context.Context, params *lambda.TagResourceInput, optFns ...func(*lambda.Options)) (*lambda.TagResourceOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.TagResourceOutput), args.Error(1)
}

func (m *MockLambdaClient) DeleteFunction(ctx context.Context, params *lambda.DeleteFunctionInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.DeleteFunctionOutput), args.Error(1)
}

func (m *MockLambdaClient) GetFunctionUrlConfig(ctx context.Context, params *lambda.GetFunctionUrlConfigInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionUrlConfigOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.GetFunctionUrlConfigOutput), args.Error(1)
}

func (m *MockLambdaClient) CreateFunctionUrlConfig(ctx context.Context, params *lambda.CreateFunctionUrlConfigInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionUrlConfigOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.CreateFunctionUrlConfigOutput), args.Error(1)
}

func (m *MockLambdaClient) DeleteFunctionUrlConfig(ctx context.Context, params *lambda.DeleteFunctionUrlConfigInput, optFns ...func(*lambda.Options)) (*lambda.DeleteFunctionUrlConfigOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.DeleteFunctionUrlConfigOutput), args.Error(1)
}

func (m *MockLambdaClient) AddPermission(ctx context.Context, params *lambda.AddPermissionInput, optFns ...func(*lambda.Options)) (*lambda.AddPermissionOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*lambda.AddPermissionOutput), args.Error(1)
}

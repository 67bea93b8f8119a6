package function

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	types "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

const (
	BasicExecutionPolicyArn = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"

	AssumeRolePolicyDocument = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "lambda.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`
)

var RoleWaitTimeout = time.Minute

// PutRole ensures an execution role that lambda can assume and that may write logs.
func (s Service) PutRole(ctx context.Context, name string, tags map[string]string) (*iam.GetRoleOutput, error) {
	var iamTags []types.Tag
	for key, value := range tags {
		iamTags = append(iamTags, types.Tag{
			Key:   aws.String(key),
			Value: aws.String(value),
		})
	}

	_, err := s.Client.Iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(AssumeRolePolicyDocument),
		Tags:                     iamTags,
	})

	switch {
	case err == nil:
	case hasErrorCode(err, "EntityAlreadyExists"):
		_, err := s.Client.Iam.UpdateAssumeRolePolicy(ctx, &iam.UpdateAssumeRolePolicyInput{
			RoleName:       aws.String(name),
			PolicyDocument: aws.String(AssumeRolePolicyDocument),
		})
		if err != nil {
			return &iam.GetRoleOutput{}, err
		}

		if len(iamTags) > 0 {
			_, err = s.Client.Iam.TagRole(ctx, &iam.TagRoleInput{
				RoleName: aws.String(name),
				Tags:     iamTags,
			})
			if err != nil {
				return &iam.GetRoleOutput{}, err
			}
		}
	default:
		return &iam.GetRoleOutput{}, err
	}

	_, err = s.Client.Iam.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		PolicyArn: aws.String(BasicExecutionPolicyArn),
		RoleName:  aws.String(name),
	})
	if err != nil {
		return &iam.GetRoleOutput{}, err
	}

	waiter := iam.NewRoleExistsWaiter(s.Client.Iam)
	return waiter.WaitForOutput(ctx, &iam.GetRoleInput{RoleName: aws.String(name)}, RoleWaitTimeout)
}

// DeleteRole detaches the execution policy first, since IAM refuses to delete roles with attachments.
func (s Service) DeleteRole(ctx context.Context, name string) error {
	_, err := s.Client.Iam.DetachRolePolicy(ctx, &iam.DetachRolePolicyInput{
		PolicyArn: aws.String(BasicExecutionPolicyArn),
		RoleName:  aws.String(name),
	})
	if err != nil && !hasErrorCode(err, "NoSuchEntity") {
		return err
	}

	_, err = s.Client.Iam.DeleteRole(ctx, &iam.DeleteRoleInput{
		RoleName: aws.String(name),
	})
	if err != nil && !hasErrorCode(err, "NoSuchEntity") {
		return err
	}

	return nil
}

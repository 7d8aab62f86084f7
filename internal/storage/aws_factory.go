// Where: internal/storage/aws_factory.go
// What: AWS client factory for experiment and artifact storage.
// Why: Encapsulate SDK configuration for custom endpoints.
package storage

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/GeoffNN/xmanager/internal/envutil"
)

const defaultAWSRegion = "us-east-1"

// Settings selects the AWS region and optional endpoint override, used to
// point the store at a local stack during development.
type Settings struct {
	Region   string
	Endpoint string
}

// ClientFactory builds storage APIs from settings.
type ClientFactory interface {
	DynamoDB(ctx context.Context, settings Settings) (DynamoDBAPI, error)
	S3(ctx context.Context, settings Settings) (S3API, error)
}

// AWSClientFactory is the SDK-backed ClientFactory.
type AWSClientFactory struct{}

func (AWSClientFactory) DynamoDB(ctx context.Context, settings Settings) (DynamoDBAPI, error) {
	cfg, err := loadAWSConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	client := dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if settings.Endpoint != "" {
			options.BaseEndpoint = aws.String(settings.Endpoint)
		}
	})
	return awsDynamoClient{client: client}, nil
}

func (AWSClientFactory) S3(ctx context.Context, settings Settings) (S3API, error) {
	cfg, err := loadAWSConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if settings.Endpoint != "" {
			options.BaseEndpoint = aws.String(settings.Endpoint)
			options.UsePathStyle = true
		}
	})
	return awsS3Client{client: client}, nil
}

func loadAWSConfig(ctx context.Context, settings Settings) (aws.Config, error) {
	region := settings.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = defaultAWSRegion
	}

	options := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if settings.Endpoint != "" {
		// Local stacks accept any static credentials.
		creds := credentials.NewStaticCredentialsProvider(accessKey(), secretKey(), "")
		options = append(options, config.WithCredentialsProvider(creds))
	}
	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return aws.Config{}, err
	}
	return cfg, nil
}

func accessKey() string {
	if value := envutil.GetHostEnv("STORAGE_ACCESS_KEY"); value != "" {
		return value
	}
	return "dummy"
}

func secretKey() string {
	if value := envutil.GetHostEnv("STORAGE_SECRET_KEY"); value != "" {
		return value
	}
	return "dummy"
}

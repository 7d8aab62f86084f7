// Where: internal/storage/aws_clients.go
// What: AWS SDK adapters for DynamoDB and S3.
// Why: Map storage interfaces to SDK types.
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type awsDynamoClient struct {
	client *dynamodb.Client
}

func (c awsDynamoClient) ListTables(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	resp, err := c.client.ListTables(ctx, &dynamodb.ListTablesInput{})
	if err != nil {
		return nil, err
	}
	return resp.TableNames, nil
}

func (c awsDynamoClient) CreateExperimentsTable(ctx context.Context, name string) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	return err
}

func (c awsDynamoClient) PutExperiment(ctx context.Context, table string, experiment Experiment) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item: map[string]types.AttributeValue{
			"pk":         &types.AttributeValueMemberS{Value: experiment.ID},
			"sk":         &types.AttributeValueMemberS{Value: "experiment"},
			"title":      &types.AttributeValueMemberS{Value: experiment.Title},
			"created_at": &types.AttributeValueMemberS{Value: experiment.CreatedAt.Format(time.RFC3339)},
		},
	})
	return err
}

func (c awsDynamoClient) PutWorkUnit(ctx context.Context, table string, unit WorkUnit) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item: map[string]types.AttributeValue{
			"pk":     &types.AttributeValueMemberS{Value: unit.ExperimentID},
			"sk":     &types.AttributeValueMemberS{Value: "unit#" + unit.Name},
			"kind":   &types.AttributeValueMemberS{Value: unit.Kind},
			"target": &types.AttributeValueMemberS{Value: unit.Target},
		},
	})
	return err
}

func (c awsDynamoClient) ScanExperiments(ctx context.Context, table string) ([]Experiment, error) {
	if c.client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	resp, err := c.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(table),
		FilterExpression: aws.String("sk = :experiment"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":experiment": &types.AttributeValueMemberS{Value: "experiment"},
		},
	})
	if err != nil {
		return nil, err
	}
	experiments := make([]Experiment, 0, len(resp.Items))
	for _, item := range resp.Items {
		experiment := Experiment{
			ID:    stringAttr(item["pk"]),
			Title: stringAttr(item["title"]),
		}
		if raw := stringAttr(item["created_at"]); raw != "" {
			if at, err := time.Parse(time.RFC3339, raw); err == nil {
				experiment.CreatedAt = at
			}
		}
		experiments = append(experiments, experiment)
	}
	return experiments, nil
}

func stringAttr(value types.AttributeValue) string {
	if s, ok := value.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

type awsS3Client struct {
	client *s3.Client
}

func (c awsS3Client) ListBuckets(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("s3 client is nil")
	}
	resp, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		if bucket.Name == nil {
			continue
		}
		names = append(names, *bucket.Name)
	}
	return names, nil
}

func (c awsS3Client) CreateBucket(ctx context.Context, name string) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	_, err := c.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(name)})
	return err
}

func (c awsS3Client) UploadFile(ctx context.Context, bucket, key, path string) error {
	if c.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	return err
}

// Where: internal/storage/types.go
// What: Experiment metadata records and storage interfaces.
// Why: Keep the store testable without AWS clients.
package storage

import (
	"context"
	"time"
)

// Experiment is one packaging run recorded for later listing.
type Experiment struct {
	ID        string
	Title     string
	CreatedAt time.Time
}

// WorkUnit records one packaged executable within an experiment.
type WorkUnit struct {
	ExperimentID string
	Name         string
	Kind         string
	Target       string
}

// DynamoDBAPI defines the DynamoDB operations used by the experiment
// store. Implementations map these onto the AWS SDK.
type DynamoDBAPI interface {
	ListTables(ctx context.Context) ([]string, error)
	CreateExperimentsTable(ctx context.Context, name string) error
	PutExperiment(ctx context.Context, table string, experiment Experiment) error
	PutWorkUnit(ctx context.Context, table string, unit WorkUnit) error
	ScanExperiments(ctx context.Context, table string) ([]Experiment, error)
}

// S3API defines the object-storage operations used by the artifact store.
type S3API interface {
	ListBuckets(ctx context.Context) ([]string, error)
	CreateBucket(ctx context.Context, name string) error
	UploadFile(ctx context.Context, bucket, key, path string) error
}

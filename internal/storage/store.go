// Where: internal/storage/store.go
// What: Experiment metadata store and artifact store.
// Why: Record what was packaged and where the artifacts went.
package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultTable is the experiments table used when the config names none.
const DefaultTable = "xmanager-experiments"

// DefaultBucket is the artifact bucket used when the config names none.
const DefaultBucket = "xmanager-artifacts"

// ExperimentStore records experiments and their work units.
type ExperimentStore struct {
	db    DynamoDBAPI
	table string
	now   func() time.Time
}

// NewExperimentStore returns a store over the given DynamoDB API.
func NewExperimentStore(db DynamoDBAPI, table string) *ExperimentStore {
	if table == "" {
		table = DefaultTable
	}
	return &ExperimentStore{db: db, table: table, now: time.Now}
}

// EnsureTable creates the experiments table when it does not exist.
func (s *ExperimentStore) EnsureTable(ctx context.Context) error {
	tables, err := s.db.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	for _, name := range tables {
		if name == s.table {
			return nil
		}
	}
	if err := s.db.CreateExperimentsTable(ctx, s.table); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// CreateExperiment records a new experiment and returns it.
func (s *ExperimentStore) CreateExperiment(ctx context.Context, title string) (Experiment, error) {
	if title == "" {
		return Experiment{}, fmt.Errorf("experiment title is required")
	}
	experiment := Experiment{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.PutExperiment(ctx, s.table, experiment); err != nil {
		return Experiment{}, fmt.Errorf("put experiment: %w", err)
	}
	return experiment, nil
}

// RecordWorkUnit attaches a packaged executable to an experiment.
func (s *ExperimentStore) RecordWorkUnit(ctx context.Context, unit WorkUnit) error {
	if unit.ExperimentID == "" {
		return fmt.Errorf("work unit needs an experiment id")
	}
	return s.db.PutWorkUnit(ctx, s.table, unit)
}

// ListExperiments returns stored experiments, newest first.
func (s *ExperimentStore) ListExperiments(ctx context.Context) ([]Experiment, error) {
	experiments, err := s.db.ScanExperiments(ctx, s.table)
	if err != nil {
		return nil, fmt.Errorf("scan experiments: %w", err)
	}
	sort.Slice(experiments, func(i, j int) bool {
		return experiments[i].CreatedAt.After(experiments[j].CreatedAt)
	})
	return experiments, nil
}

// ArtifactStore uploads packaged artifacts to object storage.
type ArtifactStore struct {
	s3     S3API
	bucket string
}

// NewArtifactStore returns a store over the given S3 API.
func NewArtifactStore(s3 S3API, bucket string) *ArtifactStore {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &ArtifactStore{s3: s3, bucket: bucket}
}

// EnsureBucket creates the artifact bucket when it does not exist.
func (s *ArtifactStore) EnsureBucket(ctx context.Context) error {
	buckets, err := s.s3.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	for _, name := range buckets {
		if name == s.bucket {
			return nil
		}
	}
	if err := s.s3.CreateBucket(ctx, s.bucket); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores an artifact under <experiment>/<file> and returns the key.
func (s *ArtifactStore) Upload(ctx context.Context, experimentID, filePath string) (string, error) {
	key := path.Join(experimentID, filepath.Base(filePath))
	if err := s.s3.UploadFile(ctx, s.bucket, key, filePath); err != nil {
		return "", fmt.Errorf("upload %s: %w", filePath, err)
	}
	return key, nil
}

// Where: internal/storage/store_test.go
// What: Tests for experiment and artifact stores.
// Why: Exercise the stores against in-memory fakes.
package storage

import (
	"context"
	"testing"
	"time"
)

type fakeDynamo struct {
	tables      []string
	created     []string
	experiments []Experiment
	units       []WorkUnit
}

func (f *fakeDynamo) ListTables(_ context.Context) ([]string, error) {
	return f.tables, nil
}

func (f *fakeDynamo) CreateExperimentsTable(_ context.Context, name string) error {
	f.created = append(f.created, name)
	f.tables = append(f.tables, name)
	return nil
}

func (f *fakeDynamo) PutExperiment(_ context.Context, _ string, experiment Experiment) error {
	f.experiments = append(f.experiments, experiment)
	return nil
}

func (f *fakeDynamo) PutWorkUnit(_ context.Context, _ string, unit WorkUnit) error {
	f.units = append(f.units, unit)
	return nil
}

func (f *fakeDynamo) ScanExperiments(_ context.Context, _ string) ([]Experiment, error) {
	return f.experiments, nil
}

type fakeS3 struct {
	buckets  []string
	uploads  map[string]string
	creating []string
}

func (f *fakeS3) ListBuckets(_ context.Context) ([]string, error) {
	return f.buckets, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, name string) error {
	f.creating = append(f.creating, name)
	f.buckets = append(f.buckets, name)
	return nil
}

func (f *fakeS3) UploadFile(_ context.Context, bucket, key, path string) error {
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	f.uploads[bucket+"/"+key] = path
	return nil
}

func TestEnsureTableIdempotent(t *testing.T) {
	db := &fakeDynamo{}
	store := NewExperimentStore(db, "")

	if err := store.EnsureTable(context.Background()); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if err := store.EnsureTable(context.Background()); err != nil {
		t.Fatalf("EnsureTable again: %v", err)
	}
	if len(db.created) != 1 || db.created[0] != DefaultTable {
		t.Errorf("created = %v", db.created)
	}
}

func TestCreateExperimentAndList(t *testing.T) {
	db := &fakeDynamo{}
	store := NewExperimentStore(db, "experiments")
	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	store.now = func() time.Time {
		next := times[0]
		times = times[1:]
		return next
	}

	older, err := store.CreateExperiment(context.Background(), "first")
	if err != nil {
		t.Fatalf("CreateExperiment: %v", err)
	}
	newer, err := store.CreateExperiment(context.Background(), "second")
	if err != nil {
		t.Fatalf("CreateExperiment: %v", err)
	}
	if older.ID == newer.ID {
		t.Error("experiment ids must be unique")
	}

	experiments, err := store.ListExperiments(context.Background())
	if err != nil {
		t.Fatalf("ListExperiments: %v", err)
	}
	if len(experiments) != 2 || experiments[0].Title != "second" {
		t.Errorf("experiments = %v, want newest first", experiments)
	}
}

func TestCreateExperimentRequiresTitle(t *testing.T) {
	store := NewExperimentStore(&fakeDynamo{}, "")
	if _, err := store.CreateExperiment(context.Background(), ""); err == nil {
		t.Error("empty title should fail")
	}
}

func TestRecordWorkUnit(t *testing.T) {
	db := &fakeDynamo{}
	store := NewExperimentStore(db, "")
	unit := WorkUnit{ExperimentID: "exp-1", Name: "trainer", Kind: "image", Target: "trainer:latest"}
	if err := store.RecordWorkUnit(context.Background(), unit); err != nil {
		t.Fatalf("RecordWorkUnit: %v", err)
	}
	if len(db.units) != 1 || db.units[0] != unit {
		t.Errorf("units = %v", db.units)
	}
	if err := store.RecordWorkUnit(context.Background(), WorkUnit{Name: "orphan"}); err == nil {
		t.Error("work unit without experiment id should fail")
	}
}

func TestArtifactStoreUpload(t *testing.T) {
	s3 := &fakeS3{}
	store := NewArtifactStore(s3, "")

	if err := store.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket: %v", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket again: %v", err)
	}
	if len(s3.creating) != 1 || s3.creating[0] != DefaultBucket {
		t.Errorf("creating = %v", s3.creating)
	}

	key, err := store.Upload(context.Background(), "exp-1", "/tmp/out/trainer.tar")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if key != "exp-1/trainer.tar" {
		t.Errorf("key = %s", key)
	}
	if s3.uploads[DefaultBucket+"/exp-1/trainer.tar"] != "/tmp/out/trainer.tar" {
		t.Errorf("uploads = %v", s3.uploads)
	}
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"queue-sim-service/internal/domain"
	"queue-sim-service/internal/ports"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Each pool connection would otherwise see its own empty
	// in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func sampleRun(createdAt time.Time, customers int) *domain.QueueRun {
	seed := int64(42)
	return &domain.QueueRun{
		CreatedAt: createdAt,
		Customers: customers,
		Seed:      &seed,
		Mode:      domain.RunModeGenerated,
		Records: []domain.CustomerRecord{
			{Index: 1, RNIAT: 550, RNST: 60, IAT: 5, ST: 4, ArrivalTime: 5, ServiceStart: 5, ServiceEnd: 9, TimeInSystem: 4, IdleBefore: 5},
			{Index: 2, RNIAT: 300, RNST: 80, IAT: 3, ST: 6, ArrivalTime: 8, ServiceStart: 9, ServiceEnd: 15, WaitTime: 1, TimeInSystem: 7},
		},
		Summary: domain.SummaryKPIs{AvgWait: 0.5, MaxWait: 1, TotalIdle: 5, Utilization: 10.0 / 15.0, HorizonEnd: 15},
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitSchema(db); err != nil {
		t.Fatalf("second init schema: %v", err)
	}
}

func TestSaveAndGetRun(t *testing.T) {
	db := openTestDB(t)
	archive := NewSqliteRunArchive(db)
	ctx := context.Background()

	createdAt := time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)
	run := sampleRun(createdAt, 2)

	id, err := archive.SaveQueueRun(ctx, run)
	if err != nil {
		t.Fatalf("save queue run: %v", err)
	}
	if id < 1 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, err := archive.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}

	if got.ID != id {
		t.Errorf("id: got %d, want %d", got.ID, id)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at: got %v, want %v", got.CreatedAt, createdAt)
	}
	if got.Customers != 2 {
		t.Errorf("customers: got %d, want 2", got.Customers)
	}
	if got.Seed == nil || *got.Seed != 42 {
		t.Errorf("seed: got %v, want 42", got.Seed)
	}
	if got.Mode != domain.RunModeGenerated {
		t.Errorf("mode: got %q, want %q", got.Mode, domain.RunModeGenerated)
	}
	if !reflect.DeepEqual(got.Records, run.Records) {
		t.Errorf("records: got %+v, want %+v", got.Records, run.Records)
	}
	if got.Summary != run.Summary {
		t.Errorf("summary: got %+v, want %+v", got.Summary, run.Summary)
	}
}

func TestSaveQueueRunWithoutSeed(t *testing.T) {
	db := openTestDB(t)
	archive := NewSqliteRunArchive(db)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC(), 2)
	run.Seed = nil
	run.Mode = domain.RunModeCustom

	id, err := archive.SaveQueueRun(ctx, run)
	if err != nil {
		t.Fatalf("save queue run: %v", err)
	}

	got, err := archive.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if got.Seed != nil {
		t.Errorf("expected nil seed, got %d", *got.Seed)
	}
	if got.Mode != domain.RunModeCustom {
		t.Errorf("mode: got %q, want %q", got.Mode, domain.RunModeCustom)
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := openTestDB(t)
	archive := NewSqliteRunArchive(db)

	_, err := archive.GetRun(context.Background(), 12345)
	if !errors.Is(err, ports.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	archive := NewSqliteRunArchive(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := archive.SaveQueueRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Minute), i+1))
		if err != nil {
			t.Fatalf("save run %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	runs, err := archive.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	wantOrder := []int64{ids[2], ids[1], ids[0]}
	for i, rs := range runs {
		if rs.ID != wantOrder[i] {
			t.Errorf("position %d: got id %d, want %d", i, rs.ID, wantOrder[i])
		}
	}
	if runs[0].Customers != 3 {
		t.Errorf("newest run customers: got %d, want 3", runs[0].Customers)
	}

	limited, err := archive.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(limited))
	}
	if limited[0].ID != ids[2] || limited[1].ID != ids[1] {
		t.Errorf("limited listing out of order: got %d, %d", limited[0].ID, limited[1].ID)
	}
}

func TestListRunsRejectsNonPositiveLimit(t *testing.T) {
	db := openTestDB(t)
	archive := NewSqliteRunArchive(db)

	if _, err := archive.ListRuns(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func TestSaveQueueRunNilRecords(t *testing.T) {
	db := openTestDB(t)
	archive := NewSqliteRunArchive(db)
	ctx := context.Background()

	run := sampleRun(time.Now().UTC(), 0)
	run.Records = nil

	id, err := archive.SaveQueueRun(ctx, run)
	if err != nil {
		t.Fatalf("save queue run: %v", err)
	}

	got, err := archive.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if len(got.Records) != 0 {
		t.Errorf("expected no records, got %d", len(got.Records))
	}
}

package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"batchcount/infrastructure/sqlite"
	"batchcount/models"
)

func openAuditTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "audit-test.db")
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestWriteRecordsBeforeAndAfter(t *testing.T) {
	db := openAuditTestDB(t)
	svc := NewService()

	before := models.BatchInfo{Product: "Diesel 500ml", Expiration: "01-2026"}
	after := models.BatchInfo{Product: "Gasolina 300ml", Expiration: "02-2026"}

	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return svc.Write(ctx, tx, "", "batch.update", "batch", "123", before, after)
	})
	if err != nil {
		t.Fatalf("write audit: %v", err)
	}

	var row struct {
		Actor      string `bun:"actor"`
		Action     string `bun:"action"`
		BeforeJSON string `bun:"before_json"`
		AfterJSON  string `bun:"after_json"`
	}
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT actor, action, before_json, after_json FROM audit_logs WHERE entity_id = '123'`).Scan(ctx, &row)
	})
	if err != nil {
		t.Fatalf("read audit: %v", err)
	}
	if row.Actor != DefaultActor {
		t.Fatalf("expected default actor, got %q", row.Actor)
	}
	if row.Action != "batch.update" {
		t.Fatalf("unexpected action %q", row.Action)
	}
	if row.BeforeJSON == "" || row.AfterJSON == "" {
		t.Fatalf("expected before/after json, got %q / %q", row.BeforeJSON, row.AfterJSON)
	}
}

func TestWriteNilBeforeProducesEmptyJSON(t *testing.T) {
	db := openAuditTestDB(t)
	svc := NewService()

	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return svc.Write(ctx, tx, "operator", "item.add", "item", "0", nil, models.Item{Batch: "1"})
	})
	if err != nil {
		t.Fatalf("write audit: %v", err)
	}

	var before string
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COALESCE(before_json, '') FROM audit_logs WHERE action = 'item.add'`).Scan(ctx, &before)
	})
	if err != nil {
		t.Fatalf("read audit: %v", err)
	}
	if before != "" {
		t.Fatalf("expected empty before_json, got %q", before)
	}
}

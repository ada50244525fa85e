package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// Blob keys for the two persisted JSON documents.
const (
	BlobItems   = "items"
	BlobBatches = "batches"
)

// GetBlob returns the stored JSON document for key. ok is false when the key
// has never been written.
func GetBlob(ctx context.Context, db *DB, key string) (value string, ok bool, err error) {
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT value FROM blobs WHERE key = ?`, key).Scan(ctx, &value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetBlobTx upserts the JSON document for key inside the caller's write tx.
func SetBlobTx(ctx context.Context, tx bun.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO blobs (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
  value = excluded.value,
  updated_at = CURRENT_TIMESTAMP`, key, value)
	return err
}

// SetBlob upserts the JSON document for key in its own write tx.
func SetBlob(ctx context.Context, db *DB, key, value string) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return SetBlobTx(ctx, tx, key, value)
	})
}

package counting

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/uptrace/bun"

	"batchcount/infrastructure/audit"
	"batchcount/infrastructure/sqlite"
	"batchcount/models"
)

// Store is the item ledger: an ordered sequence of counted-quantity records
// persisted as one JSON array. Every mutation persists the full ledger
// synchronously before returning.
type Store struct {
	mu    sync.Mutex
	db    *sqlite.DB
	audit *audit.Service
	items []models.Item
}

func NewStore(db *sqlite.DB, auditSvc *audit.Service) *Store {
	return &Store{db: db, audit: auditSvc, items: []models.Item{}}
}

// Load reads the persisted ledger. A missing blob is an empty ledger.
func (s *Store) Load(ctx context.Context) error {
	value, ok, err := sqlite.GetBlob(ctx, s.db, sqlite.BlobItems)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	items := []models.Item{}
	if ok {
		if err := json.Unmarshal([]byte(value), &items); err != nil {
			return fmt.Errorf("decode items: %w", err)
		}
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// List returns the current ledger in order.
func (s *Store) List() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the item at index.
func (s *Store) Get(index int) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return models.Item{}, fmt.Errorf("item %d out of range", index)
	}
	return s.items[index], nil
}

// ItemsOfBatch returns every item referencing batch with its stable index.
func (s *Store) ItemsOfBatch(batch string) []IndexedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []IndexedItem
	for i, item := range s.items {
		if item.Batch == batch {
			result = append(result, IndexedItem{Index: i, Item: item})
		}
	}
	return result
}

// Add appends an item. TotalMl must already be computed by the caller from
// current product/unit data.
func (s *Store) Add(ctx context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return s.persistLocked(ctx, "item.add", item.Batch, nil, item)
}

// SetItem replaces the item at index; used for direct edits and for
// batch-rename cascading reassignment.
func (s *Store) SetItem(ctx context.Context, index int, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("item %d out of range", index)
	}
	before := s.items[index]
	s.items[index] = item
	return s.persistLocked(ctx, "item.update", strconv.Itoa(index), before, item)
}

// RemoveItem removes the item at index; the persisted form compacts away the
// gap.
func (s *Store) RemoveItem(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("item %d out of range", index)
	}
	before := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.persistLocked(ctx, "item.remove", strconv.Itoa(index), before, nil)
}

// RemoveItemsOfBatch deletes every item referencing batch in one persisted
// mutation. Used by the batch delete cascade.
func (s *Store) RemoveItemsOfBatch(ctx context.Context, batch string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0:0]
	removed := 0
	for _, item := range s.items {
		if item.Batch == batch {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return 0, nil
	}
	s.items = kept
	return removed, s.persistLocked(ctx, "item.cascade_remove", batch, nil, map[string]any{"removed": removed})
}

// ReassignBatch rewrites every item referencing oldBatch to newBatch in one
// persisted mutation. TotalMl values are left unchanged; the caller decides
// when a recompute is due.
func (s *Store) ReassignBatch(ctx context.Context, oldBatch, newBatch string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved := 0
	for i := range s.items {
		if s.items[i].Batch == oldBatch {
			s.items[i].Batch = newBatch
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	return moved, s.persistLocked(ctx, "item.reassign", oldBatch, nil, map[string]any{"to": newBatch, "moved": moved})
}

// Clear empties the ledger.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.items)
	s.items = []models.Item{}
	return s.persistLocked(ctx, "item.clear", "all", nil, map[string]any{"removed": removed})
}

func (s *Store) persistLocked(ctx context.Context, action, entityID string, before, after any) error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := sqlite.SetBlobTx(ctx, tx, sqlite.BlobItems, string(payload)); err != nil {
			return err
		}
		if s.audit == nil {
			return nil
		}
		return s.audit.Write(ctx, tx, "", action, "item", entityID, before, after)
	})
}

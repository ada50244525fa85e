package batches

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/uptrace/bun"

	"batchcount/infrastructure/audit"
	"batchcount/infrastructure/sqlite"
	"batchcount/models"
)

// Store is the batch registry: batch number to product/expiration, persisted
// as one JSON object. Every mutation persists the full mapping synchronously
// before returning. It is the read side the counting view joins against.
type Store struct {
	mu      sync.Mutex
	db      *sqlite.DB
	audit   *audit.Service
	entries map[string]models.BatchInfo
}

func NewStore(db *sqlite.DB, auditSvc *audit.Service) *Store {
	return &Store{db: db, audit: auditSvc, entries: map[string]models.BatchInfo{}}
}

// Load reads the persisted registry. A missing blob is an empty registry.
func (s *Store) Load(ctx context.Context) error {
	value, ok, err := sqlite.GetBlob(ctx, s.db, sqlite.BlobBatches)
	if err != nil {
		return fmt.Errorf("load batches: %w", err)
	}
	entries := map[string]models.BatchInfo{}
	if ok {
		if err := json.Unmarshal([]byte(value), &entries); err != nil {
			return fmt.Errorf("decode batches: %w", err)
		}
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Exists reports whether batch is registered.
func (s *Store) Exists(batch string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[batch]
	return ok
}

// Product returns the registered product type, or "" for an unknown batch.
func (s *Store) Product(batch string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[batch].Product
}

// Expiration returns the registered "MM-YYYY" token, or "" for an unknown
// batch.
func (s *Store) Expiration(batch string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[batch].Expiration
}

// Get returns the registered info for batch.
func (s *Store) Get(batch string) (models.BatchInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.entries[batch]
	return info, ok
}

// Len returns the number of registered batches.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// All returns every entry sorted by batch number, numeric numbers first in
// ascending order.
func (s *Store) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(s.entries))
	for number, info := range s.entries {
		entries = append(entries, Entry{Number: number, Info: info})
	}
	sort.Slice(entries, func(i, j int) bool {
		return numberLess(entries[i].Number, entries[j].Number)
	})
	return entries
}

// Upsert inserts or replaces one entry.
func (s *Store) Upsert(ctx context.Context, batch string, info models.BatchInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, existed := s.entries[batch]
	s.entries[batch] = info
	action := "batch.add"
	var beforeAny any
	if existed {
		action = "batch.update"
		beforeAny = before
	}
	return s.persistLocked(ctx, action, batch, beforeAny, info)
}

// Remove deletes the registry entry only. Cascading over referencing items is
// the caller's job.
func (s *Store) Remove(ctx context.Context, batch string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, ok := s.entries[batch]
	if !ok {
		return nil
	}
	delete(s.entries, batch)
	return s.persistLocked(ctx, "batch.remove", batch, before, nil)
}

// Clear empties the registry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.entries)
	s.entries = map[string]models.BatchInfo{}
	return s.persistLocked(ctx, "batch.clear", "all", nil, map[string]any{"removed": removed})
}

// Import merges a batch mapping into the registry. Entries missing either
// product or expiration are skipped silently, colliding numbers take the
// imported value, unrelated keys are kept. Returns how many entries were
// merged. The merge persists once.
func (s *Store) Import(ctx context.Context, incoming map[string]models.BatchInfo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := 0
	for number, info := range incoming {
		if number == "" || info.Product == "" || info.Expiration == "" {
			continue
		}
		s.entries[number] = info
		merged++
	}
	if merged == 0 {
		return 0, nil
	}
	return merged, s.persistLocked(ctx, "batch.import", "bulk", nil, map[string]any{"merged": merged})
}

// ExportJSON returns the persisted form of the registry.
func (s *Store) ExportJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(s.entries)
}

func (s *Store) persistLocked(ctx context.Context, action, entityID string, before, after any) error {
	payload, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode batches: %w", err)
	}
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := sqlite.SetBlobTx(ctx, tx, sqlite.BlobBatches, string(payload)); err != nil {
			return err
		}
		if s.audit == nil {
			return nil
		}
		return s.audit.Write(ctx, tx, "", action, "batch", entityID, before, after)
	})
}

func numberLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

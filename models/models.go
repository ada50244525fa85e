package models

import "github.com/uptrace/bun"

// Quantity is a counted amount in a given unit of measure.
type Quantity struct {
	Value   float64 `json:"value"`
	Measure string  `json:"measure"`
}

// Item is one counted-quantity record against a batch.
//
// The batch reference is a bare number with no enforced integrity; an item
// may outlive its batch and then renders with an unknown product. TotalMl is
// a denormalized cache and must be recomputed on every mutation that could
// affect it.
type Item struct {
	Batch    string   `json:"batch"`
	Quantity Quantity `json:"quantity"`
	TotalMl  float64  `json:"totalMl"`
}

// BatchInfo holds the attributes stored per registered batch number.
// Expiration is the literal "MM-YYYY" token.
type BatchInfo struct {
	Product    string `json:"product"`
	Expiration string `json:"expiration"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Actor      string `bun:"actor,notnull"`
	Action     string `bun:"action,notnull"`
	EntityType string `bun:"entity_type,notnull"`
	EntityID   string `bun:"entity_id,notnull"`
	BeforeJSON string `bun:"before_json"`
	AfterJSON  string `bun:"after_json"`
	CreatedAt  string `bun:"created_at,notnull,default:current_timestamp"`
}

// Package table is a generic row-level edit/save/cancel/delete controller
// over an ordered dataset. The same state machine drives the batches,
// counting and summary views; confirmation policy belongs to the callers.
package table

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// Outcome is the commit callback's verdict on an edit.
type Outcome int

const (
	// Success replaces the row with the edited values.
	Success Outcome = iota
	// SuccessNoChange means the callback already mutated the dataset itself
	// (for example because the row's key changed); the table re-renders from
	// whatever dataset it holds without overwriting the row.
	SuccessNoChange
	// Failed abandons the edit and returns the row to viewing.
	Failed
	// WaitForNextResponse keeps the row in editing, pending a follow-up
	// confirmation step.
	WaitForNextResponse
)

// Field describes one edit input rendered for a column.
type Field struct {
	Type        string // "text", "number", "select" or "month"
	Value       string
	Options     []string
	Placeholder string
	Required    bool
}

// Column bundles the display and edit capabilities of one column.
type Column[T any] struct {
	Key   string
	Label string
	Width string

	// Render returns safe HTML for the cell. Required.
	Render func(row T) string
	// Edit returns the edit input seeded from the pending buffer. A nil Edit
	// makes the column read-only while the row is editing.
	Edit func(row T) Field
	// Apply parses and validates a submitted raw value into the buffer.
	// Required when Edit is set.
	Apply func(raw string, buf *T) error
	// Visible is an optional display predicate; rows failing it are omitted
	// from rendering entirely.
	Visible func(row T) bool
}

// FieldError blocks a commit with a message bound to one column's input.
type FieldError struct {
	Column  string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Config wires a table to its owning component.
type Config[T any] struct {
	ID      string
	BaseURL string
	Columns []Column[T]

	// OnEdit commits an edited row. It may suspend on confirmations by
	// returning a confirm.Pending error.
	OnEdit func(ctx context.Context, updated T, index int, original T) (Outcome, error)
	// OnDelete removes the row at index. Confirmation is the callee's job.
	OnDelete func(ctx context.Context, index int) error

	EnableActions bool
}

// Table holds the dataset and per-row edit state.
type Table[T any] struct {
	mu      sync.Mutex
	cfg     Config[T]
	rows    []T
	editing map[int]T // pending-edit buffers by row index
}

func New[T any](cfg Config[T], rows []T) *Table[T] {
	return &Table[T]{
		cfg:     cfg,
		rows:    rows,
		editing: make(map[int]T),
	}
}

// Update replaces the dataset and discards all edit state.
func (t *Table[T]) Update(rows []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.editing = make(map[int]T)
}

// Rows returns the current dataset.
func (t *Table[T]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// Begin moves the row at index into editing, seeding the pending-edit buffer
// with a copy of the row.
func (t *Table[T]) Begin(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.rows) {
		return fmt.Errorf("row %d out of range", index)
	}
	t.editing[index] = t.rows[index]
	return nil
}

// Cancel discards the pending buffer without calling back.
func (t *Table[T]) Cancel(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.editing, index)
}

// Commit applies the submitted form to the pending buffer, validates every
// editable field, and invokes the commit callback. A failing field blocks the
// commit entirely with a *FieldError and the row stays in editing, as does a
// pending confirmation from the callback.
func (t *Table[T]) Commit(ctx context.Context, index int, form url.Values) (Outcome, error) {
	t.mu.Lock()
	buf, ok := t.editing[index]
	if !ok {
		t.mu.Unlock()
		return Failed, fmt.Errorf("row %d is not being edited", index)
	}

	for _, col := range t.cfg.Columns {
		if col.Apply == nil {
			continue
		}
		if err := col.Apply(form.Get(col.Key), &buf); err != nil {
			t.mu.Unlock()
			return WaitForNextResponse, &FieldError{Column: col.Key, Message: err.Error()}
		}
	}
	t.editing[index] = buf
	original := t.rows[index]
	t.mu.Unlock()

	outcome, err := t.cfg.OnEdit(ctx, buf, index, original)
	if err != nil {
		return WaitForNextResponse, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch outcome {
	case Success:
		// Update may have replaced the dataset during the callback.
		if index < len(t.rows) {
			t.rows[index] = buf
		}
		delete(t.editing, index)
	case SuccessNoChange, Failed:
		delete(t.editing, index)
	case WaitForNextResponse:
		// Row stays in editing with the buffer intact.
	}
	return outcome, nil
}

// Delete delegates row removal to the owning component.
func (t *Table[T]) Delete(ctx context.Context, index int) error {
	t.mu.Lock()
	if index < 0 || index >= len(t.rows) {
		t.mu.Unlock()
		return fmt.Errorf("row %d out of range", index)
	}
	fn := t.cfg.OnDelete
	t.mu.Unlock()
	if fn == nil {
		return fmt.Errorf("table %s has no delete action", t.cfg.ID)
	}
	return fn(ctx, index)
}

// IsEditing reports whether the row at index has a pending-edit buffer.
func (t *Table[T]) IsEditing(index int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.editing[index]
	return ok
}

// HasEdits reports whether any row holds a pending-edit buffer.
func (t *Table[T]) HasEdits() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.editing) > 0
}

func (t *Table[T]) buffer(index int) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	buf, ok := t.editing[index]
	return buf, ok
}

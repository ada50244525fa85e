package counting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"batchcount/frontend/shared/confirm"
	sharedhtml "batchcount/frontend/shared/html"
	"batchcount/frontend/shared/table"
	"batchcount/frontend/units"
	"batchcount/models"
)

// Handler owns the counting tab: the add form and the editable item table.
type Handler struct {
	store   *Store
	batches BatchSource
	table   *table.Table[models.Item]
}

func NewHandler(store *Store, batches BatchSource) *Handler {
	h := &Handler{store: store, batches: batches}
	h.table = table.New(table.Config[models.Item]{
		ID:            "counting-table",
		BaseURL:       "/counting",
		Columns:       h.columns(),
		OnEdit:        h.onEdit,
		OnDelete:      h.onDelete,
		EnableActions: true,
	}, store.List())
	return h
}

func (h *Handler) columns() []table.Column[models.Item] {
	return []table.Column[models.Item]{
		{
			Key:    "batch",
			Label:  "Lote",
			Width:  "80px",
			Render: func(item models.Item) string { return templ.EscapeString(item.Batch) },
			Edit: func(item models.Item) table.Field {
				return table.Field{Type: "number", Value: item.Batch, Required: true}
			},
			Apply: func(raw string, buf *models.Item) error {
				if raw == "" {
					return errors.New("Digite o número do lote.")
				}
				buf.Batch = raw
				return nil
			},
		},
		{
			Key:    "type",
			Label:  "Produto",
			Render: func(item models.Item) string { return productBadge(h.batches, item.Batch) },
		},
		{
			Key:    "expiration",
			Label:  "Validade",
			Render: func(item models.Item) string { return expirationText(h.batches, item.Batch) },
		},
		{
			Key:    "quantity",
			Label:  "Quantidade",
			Render: func(item models.Item) string { return templ.EscapeString(quantityText(item.Quantity)) },
			Edit: func(item models.Item) table.Field {
				return table.Field{Type: "text", Value: quantityText(item.Quantity), Required: true}
			},
			Apply: func(raw string, buf *models.Item) error {
				parsed, err := units.ParseQuantity(raw, buf.Quantity.Measure)
				if err != nil {
					return err
				}
				buf.Quantity = parsed
				return nil
			},
		},
		{
			Key:   "totalMl",
			Label: "Total (ml)",
			Render: func(item models.Item) string {
				return `<span class="badge">` + templ.EscapeString(mlText(item.TotalMl)) + `</span>`
			},
		},
	}
}

func (h *Handler) onEdit(ctx context.Context, updated models.Item, index int, _ models.Item) (table.Outcome, error) {
	c := confirm.FromContext(ctx)

	if !h.batches.Exists(updated.Batch) {
		if _, err := c.Confirm(ctx, confirm.Question{
			Key:          "unknown-batch",
			Message:      fmt.Sprintf("Não existe um lote com o número: %s.", updated.Batch),
			ConfirmLabel: "Ok",
		}); err != nil {
			return table.WaitForNextResponse, err
		}
		return table.WaitForNextResponse, nil
	}

	updated.TotalMl = units.Convert(h.batches.Product(updated.Batch), updated.Quantity.Value, updated.Quantity.Measure)
	if err := h.store.SetItem(ctx, index, updated); err != nil {
		return table.Failed, err
	}

	// The recomputed totalMl lives in the store, not in the table's buffer.
	h.table.Update(h.store.List())
	return table.SuccessNoChange, nil
}

func (h *Handler) onDelete(ctx context.Context, index int) error {
	c := confirm.FromContext(ctx)
	item, err := h.store.Get(index)
	if err != nil {
		return err
	}

	ok, err := c.Confirm(ctx, confirm.Question{
		Key:          "remove-item",
		Message:      fmt.Sprintf("Você tem certeza que deseja remover esse registro? Lote: %s, Quantidade: %s.", item.Batch, quantityText(item.Quantity)),
		ConfirmLabel: "Remover",
		CancelLabel:  "Cancelar",
	})
	if err != nil || !ok {
		return err
	}

	if err := h.store.RemoveItem(ctx, index); err != nil {
		return err
	}
	h.table.Update(h.store.List())
	return nil
}

// PageHandler renders the counting tab.
func (h *Handler) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.table.HasEdits() {
			h.table.Update(h.store.List())
		}
		h.renderPage(w, r, r.URL.Query().Get("status"), nil, nil)
	}
}

// AddHandler appends an item from the add form. Adding against an unknown
// batch asks whether to create it; confirming jumps to the batches tab and
// either way no item is written.
func (h *Handler) AddHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/counting?status="+url.QueryEscape("Formulário inválido"), http.StatusSeeOther)
			return
		}
		batch := r.PostForm.Get("batch")
		measure := r.PostForm.Get("measure")
		value, err := strconv.ParseFloat(r.PostForm.Get("quantity"), 64)
		if batch == "" || err != nil || value <= 0 || !units.IsMeasure(measure) {
			http.Redirect(w, r, "/counting?status="+url.QueryEscape("Preencha lote, quantidade e unidade de medida"), http.StatusSeeOther)
			return
		}

		if !h.batches.Exists(batch) {
			responder := confirm.NewFormResponder(r.PostForm)
			ok, err := responder.Confirm(r.Context(), confirm.Question{
				Key:          "create-batch",
				Message:      fmt.Sprintf("Lote %s não existe, deseja criá-lo?", batch),
				ConfirmLabel: "Sim",
				CancelLabel:  "Não",
			})
			var pending *confirm.Pending
			if errors.As(err, &pending) {
				h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/counting/add", confirm.ReplayValues(r.PostForm)))
				return
			}
			if ok {
				http.Redirect(w, r, "/batches", http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/counting", http.StatusSeeOther)
			return
		}

		item := models.Item{
			Batch:    batch,
			Quantity: models.Quantity{Value: value, Measure: measure},
			TotalMl:  units.Convert(h.batches.Product(batch), value, measure),
		}
		if err := h.store.Add(r.Context(), item); err != nil {
			http.Error(w, "failed to save item", http.StatusInternalServerError)
			return
		}
		h.table.Update(h.store.List())
		http.Redirect(w, r, "/counting?status="+url.QueryEscape("Registro adicionado"), http.StatusSeeOther)
	}
}

// EditHandler moves a row into editing.
func (h *Handler) EditHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := formIndex(r)
		if !ok {
			http.Error(w, "invalid row index", http.StatusBadRequest)
			return
		}
		if err := h.table.Begin(index); err != nil {
			http.Error(w, "invalid row index", http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/counting", http.StatusSeeOther)
	}
}

// SaveHandler commits a row edit.
func (h *Handler) SaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := formIndex(r)
		if !ok {
			http.Error(w, "invalid row index", http.StatusBadRequest)
			return
		}
		ctx := confirm.NewContext(r.Context(), confirm.NewFormResponder(r.PostForm))
		_, err := h.table.Commit(ctx, index, r.PostForm)
		if err != nil {
			var ferr *table.FieldError
			if errors.As(err, &ferr) {
				h.renderPage(w, r, "", ferr, nil)
				return
			}
			var pending *confirm.Pending
			if errors.As(err, &pending) {
				h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/counting/save", confirm.ReplayValues(r.PostForm)))
				return
			}
			http.Error(w, "failed to save row", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/counting", http.StatusSeeOther)
	}
}

// CancelHandler discards a row edit.
func (h *Handler) CancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if index, ok := formIndex(r); ok {
			h.table.Cancel(index)
		}
		http.Redirect(w, r, "/counting", http.StatusSeeOther)
	}
}

// DeleteHandler removes a row after confirmation.
func (h *Handler) DeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := formIndex(r)
		if !ok {
			http.Error(w, "invalid row index", http.StatusBadRequest)
			return
		}
		ctx := confirm.NewContext(r.Context(), confirm.NewFormResponder(r.PostForm))
		if err := h.table.Delete(ctx, index); err != nil {
			var pending *confirm.Pending
			if errors.As(err, &pending) {
				h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/counting/delete", confirm.ReplayValues(r.PostForm)))
				return
			}
			http.Error(w, "failed to delete row", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/counting", http.StatusSeeOther)
	}
}

// ClearHandler empties the ledger after confirmation.
func (h *Handler) ClearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/counting", http.StatusSeeOther)
			return
		}
		responder := confirm.NewFormResponder(r.PostForm)
		ok, err := responder.Confirm(r.Context(), confirm.Question{
			Key:          "clear-items",
			Message:      "Tem certeza que deseja limpar a contagem de aditivos?",
			ConfirmLabel: "Confirmar",
			CancelLabel:  "Cancelar",
		})
		var pending *confirm.Pending
		if errors.As(err, &pending) {
			h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/counting/clear", confirm.ReplayValues(r.PostForm)))
			return
		}
		if !ok {
			http.Redirect(w, r, "/counting", http.StatusSeeOther)
			return
		}
		if err := h.store.Clear(r.Context()); err != nil {
			http.Error(w, "failed to clear items", http.StatusInternalServerError)
			return
		}
		h.table.Update(h.store.List())
		http.Redirect(w, r, "/counting?status="+url.QueryEscape("Contagem limpa"), http.StatusSeeOther)
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status string, ferr *table.FieldError, modal templ.Component) {
	data := PageData{Measures: units.Measures(), Message: status}
	body := CountingPage(data, h.table.Render(ferr), modal)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sharedhtml.Layout("Contagem", "counting", status, body).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render counting page", http.StatusInternalServerError)
	}
}

func formIndex(r *http.Request) (int, bool) {
	if err := r.ParseForm(); err != nil {
		return 0, false
	}
	index, err := strconv.Atoi(r.PostForm.Get("index"))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

package batches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"batchcount/frontend/catalog"
	"batchcount/frontend/counting"
	"batchcount/frontend/shared/confirm"
	"batchcount/frontend/shared/format"
	sharedhtml "batchcount/frontend/shared/html"
	"batchcount/frontend/shared/table"
	"batchcount/frontend/units"
	"batchcount/models"
)

const maxImportBytes = 1 << 20

// Handler owns the batches tab: registration form, import/export and the
// editable registry table. Renames and deletes cascade over the item ledger.
type Handler struct {
	store *Store
	items *counting.Store
	table *table.Table[Entry]
}

func NewHandler(store *Store, items *counting.Store) *Handler {
	h := &Handler{store: store, items: items}
	h.table = table.New(table.Config[Entry]{
		ID:            "batches-table",
		BaseURL:       "/batches",
		Columns:       h.columns(),
		OnEdit:        h.onEdit,
		OnDelete:      h.onDelete,
		EnableActions: true,
	}, store.All())
	return h
}

func (h *Handler) columns() []table.Column[Entry] {
	return []table.Column[Entry]{
		{
			Key:    "number",
			Label:  "Lote",
			Width:  "80px",
			Render: func(e Entry) string { return templ.EscapeString(e.Number) },
			Edit: func(e Entry) table.Field {
				return table.Field{Type: "number", Value: e.Number, Required: true}
			},
			Apply: func(raw string, buf *Entry) error {
				if raw == "" {
					return errors.New("Digite o número do lote.")
				}
				buf.Number = raw
				return nil
			},
		},
		{
			Key:    "product",
			Label:  "Produto",
			Render: func(e Entry) string { return productBadge(e.Info.Product) },
			Edit: func(e Entry) table.Field {
				return table.Field{Type: "select", Value: e.Info.Product, Options: catalog.Types(), Required: true}
			},
			Apply: func(raw string, buf *Entry) error {
				if !catalog.Known(raw) {
					return errors.New("Selecione um produto válido.")
				}
				buf.Info.Product = raw
				return nil
			},
		},
		{
			Key:    "expiration",
			Label:  "Validade",
			Render: func(e Entry) string { return templ.EscapeString(format.MonthYear(e.Info.Expiration)) },
			Edit: func(e Entry) table.Field {
				return table.Field{Type: "month", Value: format.TokenToMonthInput(e.Info.Expiration), Required: true}
			},
			Apply: func(raw string, buf *Entry) error {
				token := format.MonthInputToToken(raw)
				if token == "" {
					return errors.New("Informe a validade.")
				}
				buf.Info.Expiration = token
				return nil
			},
		},
	}
}

// onEdit commits a registry row. Renaming over an existing number asks to
// overwrite; declining aborts the whole edit with no partial effect. Renaming
// a batch with dependent items asks whether to move them or remove them, and
// only after that choice is the old entry removed and the new one written.
func (h *Handler) onEdit(ctx context.Context, updated Entry, index int, original Entry) (table.Outcome, error) {
	c := confirm.FromContext(ctx)
	renamed := updated.Number != original.Number

	if renamed && h.store.Exists(updated.Number) {
		ok, err := c.Confirm(ctx, confirm.Question{
			Key:          "overwrite-batch",
			Message:      fmt.Sprintf("Já existe um lote com o número %s. Deseja substituí-lo?", updated.Number),
			ConfirmLabel: "Sim",
			CancelLabel:  "Não",
		})
		if err != nil {
			return table.WaitForNextResponse, err
		}
		if !ok {
			return table.Failed, nil
		}
	}

	if renamed && len(h.items.ItemsOfBatch(original.Number)) > 0 {
		move, err := c.Confirm(ctx, confirm.Question{
			Key:          "move-items",
			Message:      fmt.Sprintf("Existem registros na contagem para o lote %s. Deseja movê-los para o lote %s? Caso contrário eles serão removidos.", original.Number, updated.Number),
			ConfirmLabel: "Mover",
			CancelLabel:  "Remover",
		})
		if err != nil {
			return table.WaitForNextResponse, err
		}
		if move {
			if _, err := h.items.ReassignBatch(ctx, original.Number, updated.Number); err != nil {
				return table.Failed, err
			}
		} else {
			if _, err := h.items.RemoveItemsOfBatch(ctx, original.Number); err != nil {
				return table.Failed, err
			}
		}
	}

	if renamed {
		if err := h.store.Remove(ctx, original.Number); err != nil {
			return table.Failed, err
		}
	}
	if err := h.store.Upsert(ctx, updated.Number, updated.Info); err != nil {
		return table.Failed, err
	}

	// A product change invalidates every dependent item's cached volume.
	if !renamed && updated.Info.Product != original.Info.Product {
		for _, dep := range h.items.ItemsOfBatch(updated.Number) {
			item := dep.Item
			item.TotalMl = units.Convert(updated.Info.Product, item.Quantity.Value, item.Quantity.Measure)
			if err := h.items.SetItem(ctx, dep.Index, item); err != nil {
				return table.Failed, err
			}
		}
	}

	h.table.Update(h.store.All())
	return table.SuccessNoChange, nil
}

// onDelete removes a registry entry after one confirmation, cascading over
// every referencing item first.
func (h *Handler) onDelete(ctx context.Context, index int) error {
	c := confirm.FromContext(ctx)
	entries := h.table.Rows()
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("batch row %d out of range", index)
	}
	entry := entries[index]

	ok, err := c.Confirm(ctx, confirm.Question{
		Key:          "remove-batch",
		Message:      fmt.Sprintf("Tem certeza que deseja remover o lote %s? Todos os registros da contagem desse lote também serão removidos.", entry.Number),
		ConfirmLabel: "Remover",
		CancelLabel:  "Cancelar",
	})
	if err != nil || !ok {
		return err
	}

	if _, err := h.items.RemoveItemsOfBatch(ctx, entry.Number); err != nil {
		return err
	}
	if err := h.store.Remove(ctx, entry.Number); err != nil {
		return err
	}
	h.table.Update(h.store.All())
	return nil
}

// PageHandler renders the batches tab.
func (h *Handler) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.table.HasEdits() {
			h.table.Update(h.store.All())
		}
		h.renderPage(w, r, r.URL.Query().Get("status"), nil, nil)
	}
}

// AddHandler registers a batch from the form. Registering an existing number
// asks to overwrite first.
func (h *Handler) AddHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/batches?status="+url.QueryEscape("Formulário inválido"), http.StatusSeeOther)
			return
		}
		number := r.PostForm.Get("number")
		product := r.PostForm.Get("product")
		expiration := format.MonthInputToToken(r.PostForm.Get("expiration"))
		if number == "" || !catalog.Known(product) || expiration == "" {
			http.Redirect(w, r, "/batches?status="+url.QueryEscape("Preencha lote, produto e validade"), http.StatusSeeOther)
			return
		}

		if h.store.Exists(number) {
			responder := confirm.NewFormResponder(r.PostForm)
			ok, err := responder.Confirm(r.Context(), confirm.Question{
				Key:          "overwrite-batch",
				Message:      fmt.Sprintf("Já existe um lote com o número %s. Deseja substituí-lo?", number),
				ConfirmLabel: "Sim",
				CancelLabel:  "Não",
			})
			var pending *confirm.Pending
			if errors.As(err, &pending) {
				h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/batches/add", confirm.ReplayValues(r.PostForm)))
				return
			}
			if !ok {
				http.Redirect(w, r, "/batches", http.StatusSeeOther)
				return
			}
		}

		if err := h.store.Upsert(r.Context(), number, models.BatchInfo{Product: product, Expiration: expiration}); err != nil {
			http.Error(w, "failed to save batch", http.StatusInternalServerError)
			return
		}
		h.table.Update(h.store.All())
		http.Redirect(w, r, "/batches?status="+url.QueryEscape("Lote registrado"), http.StatusSeeOther)
	}
}

// EditHandler moves a registry row into editing.
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
		http.Redirect(w, r, "/batches", http.StatusSeeOther)
	}
}

// SaveHandler commits a registry row edit.
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
				h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/batches/save", confirm.ReplayValues(r.PostForm)))
				return
			}
			http.Error(w, "failed to save batch", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/batches", http.StatusSeeOther)
	}
}

// CancelHandler discards a registry row edit.
func (h *Handler) CancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if index, ok := formIndex(r); ok {
			h.table.Cancel(index)
		}
		http.Redirect(w, r, "/batches", http.StatusSeeOther)
	}
}

// DeleteHandler removes a registry entry after confirmation.
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
				h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/batches/delete", confirm.ReplayValues(r.PostForm)))
				return
			}
			http.Error(w, "failed to delete batch", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/batches", http.StatusSeeOther)
	}
}

// ImportHandler merges an uploaded batch-map JSON file into the registry.
func (h *Handler) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			http.Redirect(w, r, "/batches?status="+url.QueryEscape("Arquivo de importação inválido"), http.StatusSeeOther)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Redirect(w, r, "/batches?status="+url.QueryEscape("Selecione um arquivo de lotes"), http.StatusSeeOther)
			return
		}
		defer file.Close()

		payload, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
		if err != nil {
			http.Error(w, "failed to read import file", http.StatusInternalServerError)
			return
		}
		var incoming map[string]models.BatchInfo
		if err := json.Unmarshal(payload, &incoming); err != nil {
			http.Redirect(w, r, "/batches?status="+url.QueryEscape("Arquivo de importação inválido"), http.StatusSeeOther)
			return
		}

		merged, err := h.store.Import(r.Context(), incoming)
		if err != nil {
			http.Error(w, "failed to import batches", http.StatusInternalServerError)
			return
		}
		h.table.Update(h.store.All())
		http.Redirect(w, r, "/batches?status="+url.QueryEscape(fmt.Sprintf("%d lotes importados", merged)), http.StatusSeeOther)
	}
}

// ExportHandler downloads the registry as its persisted JSON form.
func (h *Handler) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := h.store.ExportJSON()
		if err != nil {
			http.Error(w, "failed to export batches", http.StatusInternalServerError)
			return
		}
		filename := "lotes - " + time.Now().Format("2006-01-02 15.04.05") + ".json"
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write(payload)
	}
}

// ClearHandler empties the registry after confirmation. Items keep their
// batch references and render as unknown.
func (h *Handler) ClearHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/batches", http.StatusSeeOther)
			return
		}
		responder := confirm.NewFormResponder(r.PostForm)
		ok, err := responder.Confirm(r.Context(), confirm.Question{
			Key:          "clear-batches",
			Message:      "Tem certeza que deseja limpar o registro de lotes?",
			ConfirmLabel: "Confirmar",
			CancelLabel:  "Cancelar",
		})
		var pending *confirm.Pending
		if errors.As(err, &pending) {
			h.renderPage(w, r, "", nil, sharedhtml.ConfirmModal(pending.Question, "/batches/clear", confirm.ReplayValues(r.PostForm)))
			return
		}
		if !ok {
			http.Redirect(w, r, "/batches", http.StatusSeeOther)
			return
		}
		if err := h.store.Clear(r.Context()); err != nil {
			http.Error(w, "failed to clear batches", http.StatusInternalServerError)
			return
		}
		h.table.Update(h.store.All())
		http.Redirect(w, r, "/batches?status="+url.QueryEscape("Registro de lotes limpo"), http.StatusSeeOther)
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

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status string, ferr *table.FieldError, modal templ.Component) {
	data := PageData{Products: catalog.Types(), Message: status}
	body := BatchesPage(data, h.table.Render(ferr), modal)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sharedhtml.Layout("Registro de Lotes", "batches", status, body).Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render batches page", http.StatusInternalServerError)
	}
}

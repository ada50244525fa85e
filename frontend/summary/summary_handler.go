package summary

import (
	"net/http"

	"batchcount/frontend/counting"
	sharedhtml "batchcount/frontend/shared/html"
)

// Handler renders the read-only Resumo tab from the current stores.
type Handler struct {
	items   *counting.Store
	batches counting.BatchSource
}

func NewHandler(items *counting.Store, batches counting.BatchSource) *Handler {
	return &Handler{items: items, batches: batches}
}

func (h *Handler) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := h.items.List()
		data := PageData{
			Batches:  AggregateByBatch(items, h.batches),
			Families: AggregateByProduct(items, h.batches),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		body := SummaryPage(data)
		if err := sharedhtml.Layout("Resumo", "summary", "", body).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render summary page", http.StatusInternalServerError)
		}
	}
}

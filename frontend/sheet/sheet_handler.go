package sheet

import (
	"net/http"
	"time"

	"batchcount/frontend/batches"
	"batchcount/frontend/counting"
	sharedhtml "batchcount/frontend/shared/html"
)

// Handler renders the Planilha tab and its downloadable artifacts.
type Handler struct {
	items    *counting.Store
	registry *batches.Store
}

func NewHandler(items *counting.Store, registry *batches.Store) *Handler {
	return &Handler{items: items, registry: registry}
}

// PageHandler renders the projected grid.
func (h *Handler) PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid := Project(h.items.List(), h.registry)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := sharedhtml.Layout("Planilha", "sheet", "", SheetPage(grid)).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render sheet page", http.StatusInternalServerError)
		}
	}
}

// CSVHandler downloads the grid as CSV.
func (h *Handler) CSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid := Project(h.items.List(), h.registry)
		payload, err := CSV(grid)
		if err != nil {
			http.Error(w, "failed to render csv", http.StatusInternalServerError)
			return
		}
		filename := "Controle de Aditivo - " + time.Now().Format("2006-01-02 15.04.05") + ".csv"
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write(payload)
	}
}

// CountingSheetHandler downloads the printable count sheet.
func (h *Handler) CountingSheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := renderCountingSheetPDF(h.registry.All(), time.Now())
		if err != nil {
			http.Error(w, "failed to render counting sheet", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="folha_contagem.pdf"`)
		_, _ = w.Write(payload)
	}
}

// LabelsHandler downloads one barcode label per registered batch.
func (h *Handler) LabelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := h.registry.All()
		if len(entries) == 0 {
			http.Redirect(w, r, "/batches?status=Nenhum+lote+registrado", http.StatusSeeOther)
			return
		}
		payload, err := renderBatchLabelsPDF(entries, time.Now())
		if err != nil {
			http.Error(w, "failed to render labels", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="etiquetas_lotes.pdf"`)
		_, _ = w.Write(payload)
	}
}

package batches

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"batchcount/frontend/catalog"
)

// BatchesPage renders the batches tab: registration form, import/export
// controls and the registry table, plus an optional confirmation modal.
func BatchesPage(data PageData, registryTable templ.Component, modal templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<section class="tab-pane" id="batches">`)
		sb.WriteString(`<div class="pane-header"><h2>Registro de Lotes</h2><div class="pane-actions">`)
		sb.WriteString(`<form method="post" action="/batches/clear"><button type="submit" class="btn btn-danger">Limpar lotes</button></form>`)
		sb.WriteString(`<a class="btn" href="/batches/export">Exportar lotes</a>`)
		sb.WriteString(`<a class="btn" href="/sheet/labels">Imprimir Etiquetas</a>`)
		sb.WriteString(`</div></div>`)

		sb.WriteString(`<form method="post" action="/batches/add" class="add-form">`)
		sb.WriteString(`<label>Lote<input type="number" name="number" required></label>`)
		sb.WriteString(`<label>Produto<select name="product">`)
		for _, p := range data.Products {
			sb.WriteString(`<option value="` + templ.EscapeString(p) + `">` + templ.EscapeString(p) + `</option>`)
		}
		sb.WriteString(`</select></label>`)
		sb.WriteString(`<label>Validade<input type="month" name="expiration" required></label>`)
		sb.WriteString(`<button type="submit" class="btn btn-primary">Registrar</button>`)
		sb.WriteString(`</form>`)

		sb.WriteString(`<form method="post" action="/batches/import" enctype="multipart/form-data" class="import-form">`)
		sb.WriteString(`<label>Importar lotes<input type="file" name="file" accept="application/json" required></label>`)
		sb.WriteString(`<button type="submit" class="btn">Importar</button>`)
		sb.WriteString(`</form>`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		if err := registryTable.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</section>`); err != nil {
			return err
		}
		if modal != nil {
			return modal.Render(ctx, w)
		}
		return nil
	})
}

func productBadge(product string) string {
	if !catalog.Known(product) {
		return `<span class="badge badge-unknown">Desconhecido</span>`
	}
	return `<span class="badge ` + templ.EscapeString(catalog.BadgeClass(product)) + `">` + templ.EscapeString(product) + `</span>`
}

package counting

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"batchcount/frontend/catalog"
	"batchcount/frontend/shared/format"
	"batchcount/models"
)

// CountingPage renders the counting tab: the add form above the item table,
// plus an optional confirmation modal overlay.
func CountingPage(data PageData, itemTable templ.Component, modal templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<section class="tab-pane" id="counting">`)
		sb.WriteString(`<div class="pane-header"><h2>Contagem</h2><div class="pane-actions">`)
		sb.WriteString(`<form method="post" action="/counting/clear"><button type="submit" class="btn btn-danger">Limpar contagem</button></form>`)
		sb.WriteString(`<a class="btn" href="/sheet/pdf">Imprimir Folha de Contagem</a>`)
		sb.WriteString(`</div></div>`)

		sb.WriteString(`<form method="post" action="/counting/add" class="add-form">`)
		sb.WriteString(`<label>Lote<input type="number" name="batch" required></label>`)
		sb.WriteString(`<label>Quantidade<input type="number" name="quantity" min="0" step="any" required></label>`)
		sb.WriteString(`<label>Unidade<select name="measure">`)
		for _, m := range data.Measures {
			sb.WriteString(`<option value="` + templ.EscapeString(m) + `">` + templ.EscapeString(m) + `</option>`)
		}
		sb.WriteString(`</select></label>`)
		sb.WriteString(`<button type="submit" class="btn btn-primary">Adicionar</button>`)
		sb.WriteString(`</form>`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		if err := itemTable.Render(ctx, w); err != nil {
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

func productBadge(src BatchSource, batch string) string {
	product := src.Product(batch)
	if !catalog.Known(product) {
		return `<span class="badge badge-unknown">Desconhecido</span>`
	}
	class := catalog.BadgeClass(product)
	return `<span class="badge ` + templ.EscapeString(class) + `">` + templ.EscapeString(product) + `</span>`
}

func expirationText(src BatchSource, batch string) string {
	expiration := src.Expiration(batch)
	if expiration == "" {
		return "Desconhecida"
	}
	return templ.EscapeString(format.MonthYear(expiration))
}

// quantityText mirrors the stored value, pluralizing the measure word.
func quantityText(q models.Quantity) string {
	text := strings.ReplaceAll(strconv.FormatFloat(q.Value, 'f', -1, 64), ".", ",")
	suffix := ""
	if q.Value > 1 {
		suffix = "s"
	}
	return text + " " + q.Measure + suffix
}

func mlText(totalMl float64) string {
	return format.Number(totalMl) + " ml"
}

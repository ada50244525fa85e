package summary

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"batchcount/frontend/catalog"
	"batchcount/frontend/shared/format"
)

// PageData feeds the summary page view.
type PageData struct {
	Batches  []BatchSummary
	Families []FamilySummary
}

// SummaryPage renders the per-product rollup above the per-batch breakdown.
func SummaryPage(data PageData) templ.Component {
	var sb strings.Builder
	sb.WriteString(`<section class="tab-pane" id="summary">`)
	sb.WriteString(`<div class="pane-header"><h2>Resumo</h2></div>`)

	sb.WriteString(`<div class="summary-products">`)
	if len(data.Families) == 0 {
		sb.WriteString(`<p class="empty">Nenhum registro na contagem.</p>`)
	}
	for _, family := range data.Families {
		sb.WriteString(`<div class="summary-family"><h3>` + templ.EscapeString(family.Family) + ` · ` + templ.EscapeString(format.Liters(family.TotalMl)) + `</h3>`)
		for _, product := range family.Products {
			sb.WriteString(`<div class="summary-product">`)
			sb.WriteString(`<span class="badge ` + templ.EscapeString(catalog.BadgeClass(product.Product)) + `">` + templ.EscapeString(product.Product) + `</span>`)
			sb.WriteString(`<strong>` + templ.EscapeString(format.Number(product.TotalMl)) + ` ml</strong>`)
			sb.WriteString(`<ul class="unit-breakdown">`)
			for _, unit := range product.Units {
				sb.WriteString(`<li>` + templ.EscapeString(unitText(unit)) + `</li>`)
			}
			sb.WriteString(`</ul></div>`)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)

	sb.WriteString(`<div class="summary-batches"><h3>Por lote</h3><table class="custom-table"><thead><tr>`)
	sb.WriteString(`<th>Lote</th><th>Produto</th><th>Validade</th><th>Quantidades</th><th>Total (ml)</th>`)
	sb.WriteString(`</tr></thead><tbody>`)
	for _, batch := range data.Batches {
		sb.WriteString(`<tr><td>` + templ.EscapeString(batch.Batch) + `</td>`)
		sb.WriteString(`<td>` + productCell(batch.Product) + `</td>`)
		sb.WriteString(`<td>` + expirationCell(batch.Expiration) + `</td>`)
		var parts []string
		for _, q := range batch.Quantities {
			parts = append(parts, quantityPart(q.Value, q.Measure))
		}
		sb.WriteString(`<td>` + templ.EscapeString(strings.Join(parts, " + ")) + `</td>`)
		sb.WriteString(`<td>` + templ.EscapeString(format.Number(batch.TotalMl)) + ` ml</td></tr>`)
	}
	sb.WriteString(`</tbody></table></div></section>`)
	return templ.Raw(sb.String())
}

func unitText(unit UnitTotal) string {
	value := strings.ReplaceAll(strconv.FormatFloat(unit.Total, 'f', -1, 64), ".", ",")
	return value + " " + UnitLabel(unit.Measure, unit.Total)
}

func quantityPart(value float64, measure string) string {
	text := strings.ReplaceAll(strconv.FormatFloat(value, 'f', -1, 64), ".", ",")
	if value > 1 {
		return text + " " + measure + "s"
	}
	return text + " " + measure
}

func productCell(product string) string {
	if !catalog.Known(product) {
		return `<span class="badge badge-unknown">Desconhecido</span>`
	}
	return `<span class="badge ` + templ.EscapeString(catalog.BadgeClass(product)) + `">` + templ.EscapeString(product) + `</span>`
}

func expirationCell(expiration string) string {
	if expiration == "" {
		return "Desconhecida"
	}
	return templ.EscapeString(format.MonthYear(expiration))
}

package sheet

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// SheetPage renders the projected grid as a spreadsheet-shaped table with
// column letters and row numbers.
func SheetPage(grid Grid) templ.Component {
	var sb strings.Builder
	sb.WriteString(`<section class="tab-pane" id="sheet">`)
	sb.WriteString(`<div class="pane-header"><h2>Planilha</h2><div class="pane-actions">`)
	sb.WriteString(`<a class="btn btn-primary" href="/sheet/csv">Baixar CSV</a>`)
	sb.WriteString(`<a class="btn" href="/sheet/pdf">Folha de Contagem</a>`)
	sb.WriteString(`</div></div>`)

	sb.WriteString(`<table class="sheet-grid"><thead><tr><th></th>`)
	for col := 0; col < GridCols; col++ {
		sb.WriteString(`<th>` + string(rune('A'+col)) + `</th>`)
	}
	sb.WriteString(`</tr></thead><tbody>`)
	for row := 0; row < GridRows; row++ {
		sb.WriteString(`<tr><th>` + strconv.Itoa(row+1) + `</th>`)
		for col := 0; col < GridCols; col++ {
			sb.WriteString(`<td>` + templ.EscapeString(grid[row][col]) + `</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table></section>`)
	return templ.Raw(sb.String())
}

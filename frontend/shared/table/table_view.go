package table

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Render builds the table HTML. fieldErr, when set, surfaces a validity
// message under the matching edit input of the row being edited.
func (t *Table[T]) Render(fieldErr *FieldError) templ.Component {
	t.mu.Lock()
	cfg := t.cfg
	rows := t.rows
	t.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(`<table id="` + templ.EscapeString(cfg.ID) + `" class="custom-table"><thead><tr>`)
	for _, col := range cfg.Columns {
		if col.Width != "" {
			sb.WriteString(`<th style="width:` + templ.EscapeString(col.Width) + `">`)
		} else {
			sb.WriteString(`<th>`)
		}
		sb.WriteString(templ.EscapeString(col.Label) + `</th>`)
	}
	if cfg.EnableActions {
		sb.WriteString(`<th>Ações</th>`)
	}
	sb.WriteString(`</tr></thead><tbody>`)

	for index, row := range rows {
		if !t.rowVisible(row) {
			continue
		}
		buf, editing := t.buffer(index)
		sb.WriteString(`<tr>`)
		for _, col := range cfg.Columns {
			sb.WriteString(`<td>`)
			if editing && col.Edit != nil {
				t.writeEditCell(&sb, cfg, col, buf, index, fieldErr)
			} else {
				sb.WriteString(col.Render(row))
			}
			sb.WriteString(`</td>`)
		}
		if cfg.EnableActions {
			t.writeActionsCell(&sb, cfg, index, editing)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody></table>`)
	return templ.Raw(sb.String())
}

func (t *Table[T]) rowVisible(row T) bool {
	for _, col := range t.cfg.Columns {
		if col.Visible != nil && !col.Visible(row) {
			return false
		}
	}
	return true
}

func (t *Table[T]) writeEditCell(sb *strings.Builder, cfg Config[T], col Column[T], buf T, index int, fieldErr *FieldError) {
	field := col.Edit(buf)
	formID := saveFormID(cfg.ID, index)

	required := ""
	if field.Required {
		required = " required"
	}

	switch field.Type {
	case "select":
		sb.WriteString(`<select class="edit-input" name="` + templ.EscapeString(col.Key) + `" form="` + formID + `"` + required + `>`)
		for _, opt := range field.Options {
			selected := ""
			if opt == field.Value {
				selected = ` selected`
			}
			sb.WriteString(`<option` + selected + `>` + templ.EscapeString(opt) + `</option>`)
		}
		sb.WriteString(`</select>`)
	default:
		inputType := field.Type
		if inputType == "" {
			inputType = "text"
		}
		step := ""
		if inputType == "number" {
			step = ` step="any"`
		}
		placeholder := ""
		if field.Placeholder != "" {
			placeholder = ` placeholder="` + templ.EscapeString(field.Placeholder) + `"`
		}
		sb.WriteString(`<input class="edit-input" type="` + inputType + `" name="` + templ.EscapeString(col.Key) +
			`" value="` + templ.EscapeString(field.Value) + `" form="` + formID + `"` + step + placeholder + required + `>`)
	}

	if fieldErr != nil && fieldErr.Column == col.Key {
		sb.WriteString(`<div class="field-error">` + templ.EscapeString(fieldErr.Message) + `</div>`)
	}
}

func (t *Table[T]) writeActionsCell(sb *strings.Builder, cfg Config[T], index int, editing bool) {
	sb.WriteString(`<td class="actions">`)
	if editing {
		sb.WriteString(`<form id="` + saveFormID(cfg.ID, index) + `" method="POST" action="` + cfg.BaseURL + `/save">` +
			hiddenIndex(index) + `<button type="submit" class="btn-save">Salvar</button></form> `)
		sb.WriteString(`<form method="POST" action="` + cfg.BaseURL + `/cancel">` +
			hiddenIndex(index) + `<button type="submit" class="btn-cancel">Cancelar</button></form>`)
	} else {
		sb.WriteString(`<form method="POST" action="` + cfg.BaseURL + `/edit">` +
			hiddenIndex(index) + `<button type="submit" class="btn-edit">Editar</button></form> `)
		sb.WriteString(`<form method="POST" action="` + cfg.BaseURL + `/delete">` +
			hiddenIndex(index) + `<button type="submit" class="btn-danger">Remover</button></form>`)
	}
	sb.WriteString(`</td>`)
}

func saveFormID(tableID string, index int) string {
	return fmt.Sprintf("%s-save-%d", tableID, index)
}

func hiddenIndex(index int) string {
	return fmt.Sprintf(`<input type="hidden" name="index" value="%d">`, index)
}

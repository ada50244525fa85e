package html

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"batchcount/frontend/shared/confirm"
)

// ConfirmModal renders a blocking confirmation prompt that replays the
// triggering form. Answering resubmits the original action with the
// confirm.<key> answer added; an omitted label hides that button.
func ConfirmModal(q confirm.Question, actionURL string, replay url.Values) templ.Component {
	var sb strings.Builder
	sb.WriteString(`<div class="modal active"><div class="modal-content">`)
	sb.WriteString(`<p>` + templ.EscapeString(q.Message) + `</p>`)
	sb.WriteString(`<div class="modal-actions">`)

	if q.ConfirmLabel != "" {
		writeAnswerForm(&sb, q, actionURL, replay, "yes", q.ConfirmLabel, "btn-danger")
	}
	if q.CancelLabel != "" {
		writeAnswerForm(&sb, q, actionURL, replay, "no", q.CancelLabel, "btn-secondary")
	}

	sb.WriteString(`</div></div></div>`)
	return templ.Raw(sb.String())
}

func writeAnswerForm(sb *strings.Builder, q confirm.Question, actionURL string, replay url.Values, answer, label, class string) {
	sb.WriteString(`<form method="POST" action="` + templ.EscapeString(actionURL) + `">`)
	for key, vs := range replay {
		for _, v := range vs {
			sb.WriteString(`<input type="hidden" name="` + templ.EscapeString(key) + `" value="` + templ.EscapeString(v) + `">`)
		}
	}
	sb.WriteString(`<input type="hidden" name="` + confirm.FieldPrefix + templ.EscapeString(q.Key) + `" value="` + answer + `">`)
	sb.WriteString(`<button type="submit" class="` + class + `">` + templ.EscapeString(label) + `</button></form>`)
}

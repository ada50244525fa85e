package html

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"batchcount/frontend/shared/nav"
)

// Layout wraps a page body with the document chrome and the tab bar.
func Layout(title, activeTab string, status string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<!doctype html><html lang="pt-BR"><head><meta charset="utf-8">`)
		sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		sb.WriteString(`<title>` + templ.EscapeString(title) + `</title>`)
		sb.WriteString(`<link rel="stylesheet" href="/assets/app.css"></head><body>`)
		sb.WriteString(`<header><h1>Controle de Aditivos</h1></header>`)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if err := nav.Render(activeTab).Render(ctx, w); err != nil {
			return err
		}
		if status != "" {
			if _, err := io.WriteString(w, `<div class="status">`+templ.EscapeString(status)+`</div>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<main id="tab-content">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`+CSRFFormScript()+`</body></html>`)
		return err
	})
}

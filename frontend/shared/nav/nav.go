// Package nav is the tab orchestrator: it declares the top-level views and
// renders the tab bar with the active tab highlighted. Each tab's GET handler
// re-initializes its view from the stores.
package nav

import (
	"strings"

	"github.com/a-h/templ"
)

// Tab is one top-level view.
type Tab struct {
	ID    string
	Label string
	Path  string
}

// Tabs lists the views in display order. The first tab is the landing view.
var Tabs = []Tab{
	{ID: "counting", Label: "Contagem", Path: "/counting"},
	{ID: "batches", Label: "Registro de Lotes", Path: "/batches"},
	{ID: "summary", Label: "Resumo", Path: "/summary"},
	{ID: "sheet", Label: "Planilha", Path: "/sheet"},
}

// Default returns the landing tab.
func Default() Tab {
	return Tabs[0]
}

// Render builds the tab bar with activeID highlighted.
func Render(activeID string) templ.Component {
	var sb strings.Builder
	sb.WriteString(`<nav class="tabs">`)
	for _, tab := range Tabs {
		class := "tab"
		if tab.ID == activeID {
			class = "tab active"
		}
		sb.WriteString(`<a class="` + class + `" href="` + tab.Path + `">` + templ.EscapeString(tab.Label) + `</a>`)
	}
	sb.WriteString(`</nav>`)
	return templ.Raw(sb.String())
}

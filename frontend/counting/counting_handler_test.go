package counting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"batchcount/models"
)

type fakeBatches map[string]models.BatchInfo

func (f fakeBatches) Exists(batch string) bool { _, ok := f[batch]; return ok }

func (f fakeBatches) Product(batch string) string { return f[batch].Product }

func (f fakeBatches) Expiration(batch string) string { return f[batch].Expiration }

func testBatches() fakeBatches {
	return fakeBatches{
		"123": {Product: "Diesel 500ml", Expiration: "01-2026"},
		"456": {Product: "Gasolina 300ml", Expiration: "06-2027"},
	}
}

func postForm(t *testing.T, handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAddHandlerComputesTotal(t *testing.T) {
	store := openTestStore(t)
	h := NewHandler(store, testBatches())

	rec := postForm(t, h.AddHandler(), "/counting/add", url.Values{
		"batch":    {"123"},
		"quantity": {"2"},
		"measure":  {"Caixa"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	items := store.List()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].TotalMl != 20000 {
		t.Fatalf("expected 2 boxes of Diesel 500ml = 20000 ml, got %v", items[0].TotalMl)
	}
}

func TestAddHandlerUnknownBatchPromptsCreate(t *testing.T) {
	store := openTestStore(t)
	h := NewHandler(store, testBatches())

	form := url.Values{
		"batch":    {"999"},
		"quantity": {"1"},
		"measure":  {"Caixa"},
	}
	rec := postForm(t, h.AddHandler(), "/counting/add", form)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected prompt page, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Lote 999 não existe, deseja criá-lo?") {
		t.Fatalf("expected create-batch prompt, got:\n%s", body)
	}
	if !strings.Contains(body, `name="batch" value="999"`) {
		t.Fatalf("expected replayed batch field in prompt form")
	}
	if store.Len() != 0 {
		t.Fatalf("no item may be written while the prompt is open")
	}

	// Confirming jumps to the batches tab, still without writing an item.
	form.Set("confirm.create-batch", "yes")
	rec = postForm(t, h.AddHandler(), "/counting/add", form)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/batches" {
		t.Fatalf("expected redirect to /batches, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if store.Len() != 0 {
		t.Fatalf("confirming batch creation must not add an item")
	}

	// Declining stays on the counting tab.
	form.Set("confirm.create-batch", "no")
	rec = postForm(t, h.AddHandler(), "/counting/add", form)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/counting" {
		t.Fatalf("expected redirect to /counting, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if store.Len() != 0 {
		t.Fatalf("declining batch creation must not add an item")
	}
}

func TestSaveHandlerRecomputesTotal(t *testing.T) {
	store := openTestStore(t)
	if err := store.Add(context.Background(), testItem("123", 1, "Caixa", 10000)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(store, testBatches())
	h.table.Update(store.List())
	if err := h.table.Begin(0); err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	rec := postForm(t, h.SaveHandler(), "/counting/save", url.Values{
		"index":    {"0"},
		"batch":    {"123"},
		"quantity": {"3 caixas"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after save, got %d", rec.Code)
	}
	item, err := store.Get(0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Quantity.Value != 3 || item.TotalMl != 30000 {
		t.Fatalf("expected recomputed total for 3 boxes, got %+v", item)
	}
	if h.table.IsEditing(0) {
		t.Fatalf("row should leave editing after a committed save")
	}
}

func TestSaveHandlerInvalidQuantityKeepsEditing(t *testing.T) {
	store := openTestStore(t)
	if err := store.Add(context.Background(), testItem("123", 1, "Caixa", 10000)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(store, testBatches())
	h.table.Update(store.List())
	if err := h.table.Begin(0); err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	rec := postForm(t, h.SaveHandler(), "/counting/save", url.Values{
		"index":    {"0"},
		"batch":    {"123"},
		"quantity": {"abc"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected re-rendered page with field error, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Digite um número") {
		t.Fatalf("expected quantity validation message in body")
	}
	if !h.table.IsEditing(0) {
		t.Fatalf("row must stay in editing after a validation failure")
	}
	item, _ := store.Get(0)
	if item.Quantity.Value != 1 {
		t.Fatalf("store must be untouched by a failed validation, got %+v", item)
	}
}

func TestSaveHandlerUnknownBatchNotice(t *testing.T) {
	store := openTestStore(t)
	if err := store.Add(context.Background(), testItem("123", 1, "Caixa", 10000)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(store, testBatches())
	h.table.Update(store.List())
	if err := h.table.Begin(0); err != nil {
		t.Fatalf("begin edit: %v", err)
	}

	form := url.Values{
		"index":    {"0"},
		"batch":    {"777"},
		"quantity": {"1 caixa"},
	}
	rec := postForm(t, h.SaveHandler(), "/counting/save", form)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected notice page, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Não existe um lote com o número: 777.") {
		t.Fatalf("expected unknown-batch notice, got:\n%s", body)
	}
	if !strings.Contains(body, ">Ok<") {
		t.Fatalf("expected acknowledge-only Ok button")
	}
	if !h.table.IsEditing(0) {
		t.Fatalf("row must stay in editing behind the notice")
	}

	// Acknowledging keeps the row editing so the batch can be fixed.
	form.Set("confirm.unknown-batch", "yes")
	rec = postForm(t, h.SaveHandler(), "/counting/save", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after acknowledging, got %d", rec.Code)
	}
	if !h.table.IsEditing(0) {
		t.Fatalf("acknowledged unknown batch must leave the row in editing")
	}
	item, _ := store.Get(0)
	if item.Batch != "123" {
		t.Fatalf("store must be untouched, got %+v", item)
	}
}

func TestDeleteHandlerConfirmFlow(t *testing.T) {
	store := openTestStore(t)
	if err := store.Add(context.Background(), testItem("123", 2, "Caixa", 20000)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(store, testBatches())
	h.table.Update(store.List())

	form := url.Values{"index": {"0"}}
	rec := postForm(t, h.DeleteHandler(), "/counting/delete", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected confirm prompt, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Você tem certeza que deseja remover esse registro?") {
		t.Fatalf("expected removal prompt in body")
	}
	if store.Len() != 1 {
		t.Fatalf("item must survive until the prompt is answered")
	}

	form.Set("confirm.remove-item", "no")
	rec = postForm(t, h.DeleteHandler(), "/counting/delete", form)
	if rec.Code != http.StatusSeeOther || store.Len() != 1 {
		t.Fatalf("declining must keep the item")
	}

	form.Set("confirm.remove-item", "yes")
	rec = postForm(t, h.DeleteHandler(), "/counting/delete", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after delete, got %d", rec.Code)
	}
	if store.Len() != 0 {
		t.Fatalf("expected item removed after confirmation")
	}
}

func TestClearHandlerConfirmFlow(t *testing.T) {
	store := openTestStore(t)
	if err := store.Add(context.Background(), testItem("123", 1, "Caixa", 10000)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(store, testBatches())

	rec := postForm(t, h.ClearHandler(), "/counting/clear", url.Values{})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "limpar a contagem") {
		t.Fatalf("expected clear prompt, got %d", rec.Code)
	}
	if store.Len() != 1 {
		t.Fatalf("ledger must survive until the prompt is answered")
	}

	rec = postForm(t, h.ClearHandler(), "/counting/clear", url.Values{"confirm.clear-items": {"yes"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after clear, got %d", rec.Code)
	}
	if store.Len() != 0 {
		t.Fatalf("expected cleared ledger")
	}
}

func TestPageHandlerRendersUnknownBatchRow(t *testing.T) {
	store := openTestStore(t)
	if err := store.Add(context.Background(), testItem("404", 1, "Unidade", 0)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(store, testBatches())

	req := httptest.NewRequest(http.MethodGet, "/counting", nil)
	rec := httptest.NewRecorder()
	h.PageHandler()(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "Desconhecido") || !strings.Contains(body, "Desconhecida") {
		t.Fatalf("expected unknown product and expiration placeholders, got:\n%s", body)
	}
	if !strings.Contains(body, "1 Unidade") {
		t.Fatalf("expected singular measure text")
	}
}

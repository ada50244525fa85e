package summary

import (
	"context"
	"strings"
	"testing"

	"batchcount/models"
)

type fakeBatches map[string]models.BatchInfo

func (f fakeBatches) Exists(batch string) bool { _, ok := f[batch]; return ok }

func (f fakeBatches) Product(batch string) string { return f[batch].Product }

func (f fakeBatches) Expiration(batch string) string { return f[batch].Expiration }

func item(batch string, value float64, measure string, totalMl float64) models.Item {
	return models.Item{
		Batch:    batch,
		Quantity: models.Quantity{Value: value, Measure: measure},
		TotalMl:  totalMl,
	}
}

func registry() fakeBatches {
	return fakeBatches{
		"1": {Product: "Diesel 500ml", Expiration: "01-2026"},
		"2": {Product: "Gasolina 300ml", Expiration: "06-2027"},
		"3": {Product: "Gasolina 500ml", Expiration: "09-2026"},
	}
}

func TestAggregateByBatchKeepsLedgerOrder(t *testing.T) {
	items := []models.Item{
		item("2", 1, "Caixa", 9000),
		item("1", 2, "Caixa", 20000),
		item("2", 5, "Unidade", 1500),
	}

	summaries := AggregateByBatch(items, registry())
	if len(summaries) != 2 {
		t.Fatalf("expected 2 batch summaries, got %d", len(summaries))
	}
	if summaries[0].Batch != "2" || summaries[1].Batch != "1" {
		t.Fatalf("expected first-appearance order, got %+v", summaries)
	}
	if summaries[0].TotalMl != 10500 {
		t.Fatalf("expected batch 2 total 10500, got %v", summaries[0].TotalMl)
	}
	if len(summaries[0].Quantities) != 2 || summaries[0].Quantities[1].Measure != "Unidade" {
		t.Fatalf("expected quantities in ledger order, got %+v", summaries[0].Quantities)
	}
	if summaries[0].Product != "Gasolina 300ml" || summaries[1].Expiration != "01-2026" {
		t.Fatalf("expected registry join, got %+v", summaries)
	}
}

func TestAggregateByBatchUnknownBatch(t *testing.T) {
	items := []models.Item{item("404", 1, "Unidade", 0)}

	summaries := AggregateByBatch(items, registry())
	if len(summaries) != 1 {
		t.Fatalf("expected unknown batch to aggregate, got %d summaries", len(summaries))
	}
	if summaries[0].Product != "" || summaries[0].Expiration != "" {
		t.Fatalf("expected empty product and expiration for unknown batch, got %+v", summaries[0])
	}
}

func TestAggregateByProductGroupsFamilies(t *testing.T) {
	items := []models.Item{
		item("1", 2, "Caixa", 20000),
		item("2", 30, "Unidade", 9000),
		item("3", 1, "Caixa", 10000),
		item("404", 1, "Caixa", 0), // unknown product stays out of the rollup
	}

	families := AggregateByProduct(items, registry())
	if len(families) != 2 {
		t.Fatalf("expected Diesel and Gasolina families, got %+v", families)
	}
	if families[0].Family != "Diesel" || families[0].TotalMl != 20000 {
		t.Fatalf("unexpected Diesel family: %+v", families[0])
	}
	gasolina := families[1]
	if gasolina.Family != "Gasolina" || gasolina.TotalMl != 19000 {
		t.Fatalf("unexpected Gasolina family: %+v", gasolina)
	}
	if len(gasolina.Products) != 2 {
		t.Fatalf("expected both gasoline types, got %+v", gasolina.Products)
	}
}

func TestAggregateByProductUnitBreakdownOrder(t *testing.T) {
	items := []models.Item{
		item("1", 500, "Mililitro", 500),
		item("1", 2, "Unidade", 1000),
		item("1", 1, "Caixa", 10000),
		item("1", 3, "Caixa", 30000),
	}

	families := AggregateByProduct(items, registry())
	if len(families) != 1 || len(families[0].Products) != 1 {
		t.Fatalf("expected single product summary, got %+v", families)
	}
	units := families[0].Products[0].Units
	if len(units) != 3 {
		t.Fatalf("expected 3 unit lines, got %+v", units)
	}
	if units[0].Measure != "Caixa" || units[0].Total != 4 {
		t.Fatalf("expected Caixa first with summed total, got %+v", units[0])
	}
	if units[1].Measure != "Unidade" || units[2].Measure != "Mililitro" {
		t.Fatalf("expected fixed label order, got %+v", units)
	}
}

func TestSummaryPageRendersFamilyHeadings(t *testing.T) {
	items := []models.Item{
		item("1", 2, "Caixa", 20000),
		item("2", 30, "Unidade", 9000),
	}
	data := PageData{
		Batches:  AggregateByBatch(items, registry()),
		Families: AggregateByProduct(items, registry()),
	}

	var sb strings.Builder
	if err := SummaryPage(data).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render summary page: %v", err)
	}
	body := sb.String()
	if !strings.Contains(body, "<h3>Diesel · 20 Litros</h3>") {
		t.Fatalf("expected Diesel family heading with liters, got:\n%s", body)
	}
	if !strings.Contains(body, "<h3>Gasolina · 9 Litros</h3>") {
		t.Fatalf("expected Gasolina family heading with liters, got:\n%s", body)
	}
	if !strings.Contains(body, "2 caixas") || !strings.Contains(body, "30 frascos") {
		t.Fatalf("expected pluralized unit breakdown, got:\n%s", body)
	}
}

func TestUnitLabelPluralization(t *testing.T) {
	cases := []struct {
		measure string
		total   float64
		want    string
	}{
		{"Caixa", 1, "caixa"},
		{"Caixa", 2, "caixas"},
		{"Unidade", 1, "frasco"},
		{"Unidade", 12, "frascos"},
		{"Litro", 1, "l"},
		{"Litro", 1.5, "ls"},
		{"Mililitro", 1, "ml"},
		{"Mililitro", 500, "mls"},
		{"Outro", 3, "Outro"},
	}
	for _, tc := range cases {
		if got := UnitLabel(tc.measure, tc.total); got != tc.want {
			t.Errorf("UnitLabel(%q, %v) = %q, want %q", tc.measure, tc.total, got, tc.want)
		}
	}
}

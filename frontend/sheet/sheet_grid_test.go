package sheet

import (
	"strconv"
	"strings"
	"testing"

	"batchcount/models"
)

type fakeBatches map[string]models.BatchInfo

func (f fakeBatches) Exists(batch string) bool { _, ok := f[batch]; return ok }

func (f fakeBatches) Product(batch string) string { return f[batch].Product }

func (f fakeBatches) Expiration(batch string) string { return f[batch].Expiration }

func item(batch string, totalMl float64) models.Item {
	return models.Item{
		Batch:    batch,
		Quantity: models.Quantity{Value: 1, Measure: "Caixa"},
		TotalMl:  totalMl,
	}
}

func registry() fakeBatches {
	return fakeBatches{
		"5":  {Product: "Diesel 500ml", Expiration: "01-2026"},
		"9":  {Product: "Gasolina 300ml", Expiration: "06-2027"},
		"12": {Product: "Gasolina 500ml", Expiration: "09-2026"},
	}
}

func TestTotalsSumAndDescendingOrder(t *testing.T) {
	items := []models.Item{
		item("5", 10000),
		item("9", 9000),
		item("5", 20000),
		item("12", 10000),
	}

	totals := Totals(items, registry())
	if len(totals) != 3 {
		t.Fatalf("expected 3 batch totals, got %d", len(totals))
	}
	if totals[0].Number != "12" || totals[1].Number != "9" || totals[2].Number != "5" {
		t.Fatalf("expected descending numeric order, got %+v", totals)
	}
	if totals[2].TotalMl != 30000 {
		t.Fatalf("expected summed total for batch 5, got %v", totals[2].TotalMl)
	}
}

func TestProjectPlacesRowsFromSix(t *testing.T) {
	items := []models.Item{
		item("5", 30000),
		item("9", 9000),
	}

	grid := Project(items, registry())

	// Row 6 holds the highest batch number.
	if grid.Cell(6, "C") != "9" {
		t.Fatalf("expected batch 9 at C6, got %q", grid.Cell(6, "C"))
	}
	if grid.Cell(6, "D") != "jun/2027" {
		t.Fatalf("expected formatted expiration at D6, got %q", grid.Cell(6, "D"))
	}
	// Gasolina 300ml lands in column G, in liters.
	if grid.Cell(6, "G") != "9" {
		t.Fatalf("expected 9 liters at G6, got %q", grid.Cell(6, "G"))
	}

	if grid.Cell(7, "C") != "5" {
		t.Fatalf("expected batch 5 at C7, got %q", grid.Cell(7, "C"))
	}
	// Diesel 500ml lands in column F.
	if grid.Cell(7, "F") != "30" {
		t.Fatalf("expected 30 liters at F7, got %q", grid.Cell(7, "F"))
	}
	if grid.Cell(7, "G") != "" {
		t.Fatalf("other product columns stay empty, got %q", grid.Cell(7, "G"))
	}
}

func TestProjectDropsOverflowBeyondRow17(t *testing.T) {
	reg := fakeBatches{}
	var items []models.Item
	for i := 1; i <= 15; i++ {
		number := strconv.Itoa(i)
		reg[number] = models.BatchInfo{Product: "Diesel 500ml", Expiration: "01-2026"}
		items = append(items, item(number, 10000))
	}

	grid := Project(items, reg)

	// 12 rows fit: batches 15 down to 4; 3, 2 and 1 are dropped.
	if grid.Cell(6, "C") != "15" {
		t.Fatalf("expected batch 15 at C6, got %q", grid.Cell(6, "C"))
	}
	if grid.Cell(17, "C") != "4" {
		t.Fatalf("expected batch 4 at C17, got %q", grid.Cell(17, "C"))
	}
	if grid.Cell(18, "C") != "" {
		t.Fatalf("expected no data past row 17, got %q", grid.Cell(18, "C"))
	}
}

func TestProjectUnknownProductLeavesVolumeColumnsEmpty(t *testing.T) {
	grid := Project([]models.Item{item("404", 5000)}, fakeBatches{})

	if grid.Cell(6, "C") != "404" {
		t.Fatalf("expected unknown batch number placed, got %q", grid.Cell(6, "C"))
	}
	for _, column := range []string{"F", "G", "H"} {
		if grid.Cell(6, column) != "" {
			t.Fatalf("expected empty %s6 for unknown product", column)
		}
	}
}

func TestCSVCoversFullRange(t *testing.T) {
	grid := Project([]models.Item{item("5", 30000)}, registry())
	payload, err := CSV(grid)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	if len(lines) != GridRows {
		t.Fatalf("expected %d csv rows, got %d", GridRows, len(lines))
	}
	if !strings.HasPrefix(lines[0], "Controle de Aditivos") {
		t.Fatalf("expected title in A1, got %q", lines[0])
	}
	if !strings.Contains(lines[5], "5") || !strings.Contains(lines[5], "jan/2026") {
		t.Fatalf("expected batch row at line 6, got %q", lines[5])
	}
}

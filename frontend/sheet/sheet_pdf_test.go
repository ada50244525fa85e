package sheet

import (
	"testing"
	"time"

	"batchcount/frontend/batches"
	"batchcount/models"
)

func labelEntries() []batches.Entry {
	return []batches.Entry{
		{Number: "5", Info: models.BatchInfo{Product: "Diesel 500ml", Expiration: "01-2026"}},
		{Number: "9", Info: models.BatchInfo{Product: "Gasolina 300ml", Expiration: "06-2027"}},
	}
}

func TestRenderCountingSheetPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderCountingSheetPDF(labelEntries(), time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderCountingSheetPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
}

func TestRenderCountingSheetPDF_EmptyRegistryStillRenders(t *testing.T) {
	t.Parallel()

	pdf, err := renderCountingSheetPDF(nil, time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderCountingSheetPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
}

func TestRenderBatchLabelsPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderBatchLabelsPDF(labelEntries(), time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderBatchLabelsPDF returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected non-empty pdf bytes")
	}
}

func TestRenderBatchLabelsPDF_NoEntries(t *testing.T) {
	t.Parallel()

	if _, err := renderBatchLabelsPDF(nil, time.Now()); err == nil {
		t.Fatalf("expected error for empty label set")
	}
}

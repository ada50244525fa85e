package sheet

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"batchcount/frontend/batches"
	"batchcount/frontend/shared/format"
)

// renderCountingSheetPDF builds the printable count sheet: every registered
// batch with blank quantity columns to fill in by hand.
func renderCountingSheetPDF(entries []batches.Entry, printedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Folha de Contagem", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Folha de Contagem de Aditivos"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Impresso em "+printedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colW := []float64{25, 55, 30, 40, 40}
	headers := []string{"Lote", "Produto", "Validade", "Caixas", "Unidades"}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 9, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, entry := range entries {
		pdf.CellFormat(colW[0], 9, entry.Number, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 9, tr(entry.Info.Product), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 9, tr(format.MonthYear(entry.Info.Expiration)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[3], 9, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[4], 9, "", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// renderBatchLabelsPDF builds one label page per registered batch with the
// product, expiration and a Code128 barcode of the batch number.
func renderBatchLabelsPDF(entries []batches.Entry, printedAt time.Time) ([]byte, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no labels to render")
	}

	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetTitle("Etiquetas de Lote", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, entry := range entries {
		barcodePNG, err := renderCode128PNG(entry.Number, 1200, 260)
		if err != nil {
			return nil, err
		}

		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 32)
		pdf.CellFormat(0, 16, tr(entry.Info.Product), "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "B", 40)
		pdf.CellFormat(0, 18, tr("LOTE "+entry.Number), "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 14)
		pdf.CellFormat(0, 8, tr("Validade: "+format.MonthYear(entry.Info.Expiration)), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 8, tr("Impresso: "+printedAt.Format("02/01/2006")), "", 1, "C", false, 0, "")

		opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		imageName := "batch-barcode-" + entry.Number
		pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
		pageW, _ := pdf.GetPageSize()
		imgW := 140.0
		imgH := 34.0
		x := (pageW - imgW) / 2
		y := 88.0
		pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

		pdf.SetY(y + imgH + 4)
		pdf.SetFont("Helvetica", "B", 18)
		pdf.CellFormat(0, 10, entry.Number, "", 1, "C", false, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

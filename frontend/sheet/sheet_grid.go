package sheet

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"batchcount/frontend/catalog"
	"batchcount/frontend/counting"
	"batchcount/frontend/shared/format"
	"batchcount/models"
)

// Grid dimensions mirror the A1:I26 range of the spreadsheet this projection
// replaces. Batch rows occupy rows 6 through 17; overflow is dropped.
const (
	GridRows     = 26
	GridCols     = 9
	firstDataRow = 6
	lastDataRow  = 17
)

// Grid is the projected cell matrix, indexed [row][col] from zero.
type Grid [GridRows][GridCols]string

// Cell returns the value at a 1-indexed row and column letter ("A".."I").
func (g *Grid) Cell(row int, column string) string {
	col := columnIndex(column)
	if row < 1 || row > GridRows || col < 0 {
		return ""
	}
	return g[row-1][col]
}

func columnIndex(column string) int {
	if len(column) != 1 || column[0] < 'A' || column[0] > 'I' {
		return -1
	}
	return int(column[0] - 'A')
}

// BatchTotal is one projected line: a batch with its summed volume.
type BatchTotal struct {
	Number     string
	Product    string
	Expiration string
	TotalMl    float64
}

// Totals groups the ledger by batch, summing volumes, ordered by batch number
// descending.
func Totals(items []models.Item, src counting.BatchSource) []BatchTotal {
	index := make(map[string]int)
	var totals []BatchTotal
	for _, item := range items {
		i, ok := index[item.Batch]
		if !ok {
			i = len(totals)
			index[item.Batch] = i
			totals = append(totals, BatchTotal{
				Number:     item.Batch,
				Product:    src.Product(item.Batch),
				Expiration: src.Expiration(item.Batch),
			})
		}
		totals[i].TotalMl += item.TotalMl
	}
	sort.Slice(totals, func(i, j int) bool {
		return numberGreater(totals[i].Number, totals[j].Number)
	})
	return totals
}

func numberGreater(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na > nb
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a > b
}

// Project places the batch totals into the grid: column C carries the batch
// number, column D the formatted expiration, and each product's liters land
// in its catalog sheet column. Rows beyond row 17 are dropped.
func Project(items []models.Item, src counting.BatchSource) Grid {
	var grid Grid
	grid[0][0] = "Controle de Aditivos"
	grid[firstDataRow-2][columnIndex("C")] = "Lote"
	grid[firstDataRow-2][columnIndex("D")] = "Validade"
	for _, name := range catalog.Types() {
		grid[firstDataRow-2][columnIndex(catalog.SheetColumn(name))] = name
	}

	row := firstDataRow
	for _, total := range Totals(items, src) {
		if row > lastDataRow {
			break
		}
		grid[row-1][columnIndex("C")] = total.Number
		grid[row-1][columnIndex("D")] = format.MonthYear(total.Expiration)
		if column := catalog.SheetColumn(total.Product); column != "" {
			grid[row-1][columnIndex(column)] = litersCell(total.TotalMl)
		}
		row++
	}
	return grid
}

func litersCell(totalMl float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(totalMl/1000, 'f', -1, 64), ".", ",")
}

// CSV renders the full A1:I26 range.
func CSV(grid Grid) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range grid {
		if err := w.Write(row[:]); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

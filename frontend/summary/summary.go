// Package summary aggregates the item ledger into per-batch and per-product
// totals for the Resumo tab. Aggregation is pure; unknown products degrade to
// an unknown row instead of failing.
package summary

import (
	"batchcount/frontend/catalog"
	"batchcount/frontend/counting"
	"batchcount/models"
)

// BatchSummary is one row of the per-batch rollup.
type BatchSummary struct {
	Batch      string
	Product    string
	Expiration string
	TotalMl    float64
	Quantities []models.Quantity
}

// UnitTotal is one line of a product's unit-of-measure breakdown.
type UnitTotal struct {
	Measure string
	Total   float64
}

// ProductSummary totals one product type across the ledger.
type ProductSummary struct {
	Product string
	TotalMl float64
	Units   []UnitTotal
}

// FamilySummary groups product summaries that roll up together.
type FamilySummary struct {
	Family   string
	TotalMl  float64
	Products []ProductSummary
}

// AggregateByBatch produces one summary per distinct batch number, in ledger
// order of first appearance. Quantities are collected in ledger order and
// totalMl is summed as stored.
func AggregateByBatch(items []models.Item, src counting.BatchSource) []BatchSummary {
	var summaries []BatchSummary
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Batch]
		if !ok {
			i = len(summaries)
			index[item.Batch] = i
			summaries = append(summaries, BatchSummary{
				Batch:      item.Batch,
				Product:    src.Product(item.Batch),
				Expiration: src.Expiration(item.Batch),
			})
		}
		summaries[i].TotalMl += item.TotalMl
		summaries[i].Quantities = append(summaries[i].Quantities, item.Quantity)
	}
	return summaries
}

// unitOrder fixes the breakdown line order.
var unitOrder = []string{"Caixa", "Unidade", "Litro", "Mililitro"}

var unitLabels = map[string][2]string{
	"Caixa":     {"caixa", "caixas"},
	"Unidade":   {"frasco", "frascos"},
	"Litro":     {"l", "ls"},
	"Mililitro": {"ml", "mls"},
}

// UnitLabel returns the pt-BR display word for a measure total, pluralized
// when the total exceeds one.
func UnitLabel(measure string, total float64) string {
	labels, ok := unitLabels[measure]
	if !ok {
		return measure
	}
	if total > 1 {
		return labels[1]
	}
	return labels[0]
}

// AggregateByProduct totals the ledger per catalog family and product type.
// Items whose batch resolves to an unknown product are left out; the per-batch
// rollup still shows them.
func AggregateByProduct(items []models.Item, src counting.BatchSource) []FamilySummary {
	byProduct := make(map[string]*ProductSummary)
	unitTotals := make(map[string]map[string]float64)
	for _, item := range items {
		product := src.Product(item.Batch)
		if !catalog.Known(product) {
			continue
		}
		summary, ok := byProduct[product]
		if !ok {
			summary = &ProductSummary{Product: product}
			byProduct[product] = summary
			unitTotals[product] = make(map[string]float64)
		}
		summary.TotalMl += item.TotalMl
		unitTotals[product][item.Quantity.Measure] += item.Quantity.Value
	}

	var families []FamilySummary
	for _, family := range catalog.Families() {
		fs := FamilySummary{Family: family.Name}
		for _, product := range family.Types {
			summary, ok := byProduct[product]
			if !ok {
				continue
			}
			for _, measure := range unitOrder {
				if total, ok := unitTotals[product][measure]; ok {
					summary.Units = append(summary.Units, UnitTotal{Measure: measure, Total: total})
				}
			}
			fs.TotalMl += summary.TotalMl
			fs.Products = append(fs.Products, *summary)
		}
		if len(fs.Products) > 0 {
			families = append(families, fs)
		}
	}
	return families
}

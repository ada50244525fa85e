package catalog

import "strings"

// ProductType is a static registry entry. Defined at process start, never
// mutated.
type ProductType struct {
	Name        string
	BoxUnits    int
	UnitMl      float64
	BadgeClass  string
	SheetColumn string
}

// Family groups product types that roll up together on the summary view.
type Family struct {
	Name  string
	Types []string
}

var productTypes = []ProductType{
	{Name: "Diesel 500ml", BoxUnits: 20, UnitMl: 500, BadgeClass: "badge-product-diesel", SheetColumn: "F"},
	{Name: "Gasolina 500ml", BoxUnits: 20, UnitMl: 500, BadgeClass: "badge-product-gasoline", SheetColumn: "H"},
	{Name: "Gasolina 300ml", BoxUnits: 30, UnitMl: 300, BadgeClass: "badge-product-gasoline", SheetColumn: "G"},
}

var byName = func() map[string]ProductType {
	m := make(map[string]ProductType, len(productTypes))
	for _, p := range productTypes {
		m[p.Name] = p
	}
	return m
}()

// Types returns the product type names in registry order.
func Types() []string {
	names := make([]string, 0, len(productTypes))
	for _, p := range productTypes {
		names = append(names, p.Name)
	}
	return names
}

// Known reports whether name is a registered product type.
func Known(name string) bool {
	_, ok := byName[name]
	return ok
}

// UnitMl returns the unit volume in milliliters, or 0 for an unknown type.
func UnitMl(name string) float64 {
	return byName[name].UnitMl
}

// BoxUnits returns the units per box, or 0 for an unknown type.
func BoxUnits(name string) int {
	return byName[name].BoxUnits
}

// BadgeClass returns the display badge class, or "" for an unknown type.
func BadgeClass(name string) string {
	return byName[name].BadgeClass
}

// SheetColumn returns the spreadsheet column letter where the type's total is
// recorded, or "" for an unknown type.
func SheetColumn(name string) string {
	return byName[name].SheetColumn
}

// Families groups the registry by the leading word of each type name, in
// registry order. "Diesel 500ml" and "Diesel 300ml" share the "Diesel" family.
func Families() []Family {
	var families []Family
	index := make(map[string]int)
	for _, p := range productTypes {
		name := familyName(p.Name)
		if i, ok := index[name]; ok {
			families[i].Types = append(families[i].Types, p.Name)
			continue
		}
		index[name] = len(families)
		families = append(families, Family{Name: name, Types: []string{p.Name}})
	}
	return families
}

func familyName(typeName string) string {
	if i := strings.IndexByte(typeName, ' '); i > 0 {
		return typeName[:i]
	}
	return typeName
}

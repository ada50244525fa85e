package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"batchcount/frontend/catalog"
	"batchcount/models"
)

// ValidationError reports a quantity parse failure with a message suitable
// for inline display at the offending input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type measure struct {
	name    string
	aliases []string
	toMl    func(product string, value float64) float64
}

// Canonical measure order is also the display order in forms.
var measures = []measure{
	{
		name:    "Unidade",
		aliases: []string{"uni", "und", "un"},
		toMl:    func(product string, value float64) float64 { return value * catalog.UnitMl(product) },
	},
	{
		name:    "Caixa",
		aliases: []string{"box", "cx"},
		toMl: func(product string, value float64) float64 {
			return value * float64(catalog.BoxUnits(product)) * catalog.UnitMl(product)
		},
	},
	{
		name:    "Mililitro",
		aliases: []string{"ml"},
		toMl:    func(product string, value float64) float64 { return value },
	},
	{
		name:    "Litro",
		aliases: []string{"l"},
		toMl:    func(product string, value float64) float64 { return value * 1000 },
	},
}

// Measures returns the canonical unit-of-measure names in form order.
func Measures() []string {
	names := make([]string, 0, len(measures))
	for _, m := range measures {
		names = append(names, m.name)
	}
	return names
}

// IsMeasure reports whether name is a canonical unit of measure.
func IsMeasure(name string) bool {
	for _, m := range measures {
		if m.name == name {
			return true
		}
	}
	return false
}

// Convert maps (product type, value, measure) to milliliters.
//
// An unknown product type yields 0 for every measure rather than an error, so
// a dangling batch reference never blocks data entry. An unknown measure also
// yields 0.
func Convert(product string, value float64, measureName string) float64 {
	if !catalog.Known(product) {
		return 0
	}
	for _, m := range measures {
		if m.name == measureName {
			return m.toMl(product, value)
		}
	}
	return 0
}

var quantityPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)(?:\s*([a-zçA-ZÇ]+))?$`)

// ParseQuantity parses free text of the form "<number>[ <unit-word>]".
//
// The number accepts "." or "," as decimal separator. The unit word matches a
// canonical measure name, its plural (name+"s") or an alias, case
// insensitively; when absent, fallbackMeasure is kept.
func ParseQuantity(text, fallbackMeasure string) (models.Quantity, error) {
	match := quantityPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return models.Quantity{}, &ValidationError{Message: "Digite um número, com unidade opcional. Ex: 1, 1 unidade, 2 caixas."}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil {
		return models.Quantity{}, &ValidationError{Message: "Número inválido."}
	}

	if match[2] == "" {
		return models.Quantity{Value: value, Measure: fallbackMeasure}, nil
	}

	word := strings.ToLower(match[2])
	for _, m := range measures {
		singular := strings.ToLower(m.name)
		if word == singular || word == singular+"s" {
			return models.Quantity{Value: value, Measure: m.name}, nil
		}
		for _, alias := range m.aliases {
			if word == alias {
				return models.Quantity{Value: value, Measure: m.name}, nil
			}
		}
	}
	return models.Quantity{}, &ValidationError{Message: fmt.Sprintf("Unidade de medida '%s' inválida.", match[2])}
}

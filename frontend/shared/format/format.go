package format

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Number renders v as a pt-BR grouped integer ("12.345").
func Number(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// Liters renders a milliliter total as whole liters with the unit word.
func Liters(totalMl float64) string {
	return Number(totalMl/1000) + " Litros"
}

var monthAbbrev = []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// MonthYear formats a "MM-YYYY" token as "mmm/YYYY" with pt-BR month
// abbreviations. A token that does not parse is returned unchanged.
func MonthYear(token string) string {
	month, year, err := SplitMonthYear(token)
	if err != nil {
		return token
	}
	return monthAbbrev[month-1] + "/" + strconv.Itoa(year)
}

// SplitMonthYear parses the "MM-YYYY" token.
func SplitMonthYear(token string) (month, year int, err error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid month-year token %q", token)
	}
	month, err = strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month in token %q", token)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, fmt.Errorf("invalid year in token %q", token)
	}
	return month, year, nil
}

// MonthYearToken builds the stored "MM-YYYY" token.
func MonthYearToken(month, year int) string {
	return fmt.Sprintf("%02d-%04d", month, year)
}

// MonthInputToToken converts the "YYYY-MM" value produced by a month input
// widget into the stored token. Empty or malformed values return "".
func MonthInputToToken(value string) string {
	parts := strings.SplitN(strings.TrimSpace(value), "-", 2)
	if len(parts) != 2 {
		return ""
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return MonthYearToken(month, year)
}

// TokenToMonthInput converts the stored token into the "YYYY-MM" widget value.
func TokenToMonthInput(token string) string {
	month, year, err := SplitMonthYear(token)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", year, month)
}

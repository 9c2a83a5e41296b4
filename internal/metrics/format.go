package metrics

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/plantmetrics/backend-go/internal/domain"
)

// Formatter renders a numeric KPI value for display.
type Formatter func(value float64) string

// Registry maps formatter tags to their implementations.
type Registry map[domain.FormatterTag]Formatter

var printer = message.NewPrinter(language.English)

// NewRegistry builds the default formatter registry.
func NewRegistry() Registry {
	return Registry{
		domain.FormatCurrency: FormatCurrency,
		domain.FormatPercent:  FormatPercent,
		domain.FormatNumber:   FormatNumber,
		domain.FormatCompact:  FormatCompact,
	}
}

// Lookup resolves a formatter tag. Unknown tags degrade to plain number
// formatting rather than failing.
func (r Registry) Lookup(tag domain.FormatterTag) Formatter {
	if f, ok := r[tag]; ok {
		return f
	}

	return FormatNumber
}

// FormatCurrency renders a value as grouped dollars, e.g. "$2,500".
func FormatCurrency(value float64) string {
	return "$" + printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(0)))
}

// FormatPercent renders a value as a percentage with one decimal, e.g. "87.5%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatNumber renders a value as a grouped integer, e.g. "1,234".
func FormatNumber(value float64) string {
	return printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(0)))
}

// FormatCompact abbreviates large values, e.g. "1.2K" or "3.4M".
func FormatCompact(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", value/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", value/1_000)
	default:
		return FormatNumber(value)
	}
}

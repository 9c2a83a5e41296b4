package domain

import "strings"

// IndustryType identifies the vertical a tenant operates in. It selects
// which KPI profile the dashboard resolves against.
type IndustryType string

const (
	IndustryManufacturing IndustryType = "manufacturing"
	IndustryDistribution  IndustryType = "distribution"
	IndustryRetail        IndustryType = "retail"
	IndustryFoodBeverage  IndustryType = "food_beverage"
	IndustryPharma        IndustryType = "pharma"
)

// DefaultIndustry is the fallback vertical for unrecognized industry keys.
const DefaultIndustry = IndustryManufacturing

var industryLabels = map[IndustryType]string{
	IndustryManufacturing: "Manufacturing",
	IndustryDistribution:  "Distribution & Wholesale",
	IndustryRetail:        "Retail",
	IndustryFoodBeverage:  "Food & Beverage",
	IndustryPharma:        "Pharmaceutical",
}

// IndustryLabel returns a human-readable label for an industry type.
func IndustryLabel(industry IndustryType) string {
	if label, ok := industryLabels[industry]; ok {
		return label
	}

	return industryLabels[DefaultIndustry]
}

// ParseIndustry normalizes a raw industry string. Unknown values fall back
// to the default vertical rather than failing.
func ParseIndustry(raw string) IndustryType {
	industry := IndustryType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := industryLabels[industry]; ok {
		return industry
	}

	return DefaultIndustry
}

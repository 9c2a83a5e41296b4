package metrics

import "github.com/plantmetrics/backend-go/internal/domain"

// Profile is the per-vertical dashboard configuration: which KPIs to show,
// in which order, and how to present them.
type Profile struct {
	Industry domain.IndustryType   `json:"industry"`
	Label    string                `json:"label"`
	Kpis     []domain.KpiDefinition `json:"kpis"`
}

// Profiles maps industry types to their KPI profiles. Built once at startup
// and treated as immutable so concurrent resolution needs no locking.
type Profiles map[domain.IndustryType]Profile

// Get returns the profile for an industry, falling back to the default
// vertical for unrecognized types. It never fails.
func (p Profiles) Get(industry domain.IndustryType) Profile {
	if profile, ok := p[industry]; ok {
		return profile
	}

	return p[domain.DefaultIndustry]
}

// DefaultProfiles returns the built-in KPI profiles per vertical.
func DefaultProfiles() Profiles {
	return Profiles{
		domain.IndustryManufacturing: {
			Industry: domain.IndustryManufacturing,
			Label:    domain.IndustryLabel(domain.IndustryManufacturing),
			Kpis: []domain.KpiDefinition{
				{Key: "revenue", Label: "Revenue", Formatter: domain.FormatCurrency},
				{Key: "active_orders", Label: "Active Orders", Formatter: domain.FormatNumber},
				{Key: "oee", Label: "OEE", Formatter: domain.FormatPercent},
				{Key: "on_time_delivery", Label: "On-Time Delivery", Formatter: domain.FormatPercent},
				{Key: "scrap_rate", Label: "Scrap Rate", Formatter: domain.FormatPercent, InvertTrend: true},
				{Key: "inventory_alerts", Label: "Inventory Alerts", Formatter: domain.FormatNumber, InvertTrend: true},
			},
		},
		domain.IndustryDistribution: {
			Industry: domain.IndustryDistribution,
			Label:    domain.IndustryLabel(domain.IndustryDistribution),
			Kpis: []domain.KpiDefinition{
				{Key: "revenue", Label: "Revenue", Formatter: domain.FormatCurrency},
				{Key: "order_fill_rate", Label: "Order Fill Rate", Formatter: domain.FormatPercent},
				{Key: "inventory_turnover", Label: "Inventory Turnover", Formatter: domain.FormatNumber},
				{Key: "avg_lead_time", Label: "Avg Lead Time (days)", Formatter: domain.FormatNumber, InvertTrend: true},
				{Key: "stockouts", Label: "Stockouts", Formatter: domain.FormatNumber, InvertTrend: true},
			},
		},
		domain.IndustryRetail: {
			Industry: domain.IndustryRetail,
			Label:    domain.IndustryLabel(domain.IndustryRetail),
			Kpis: []domain.KpiDefinition{
				{Key: "revenue", Label: "Revenue", Formatter: domain.FormatCurrency},
				{Key: "transactions", Label: "Transactions", Formatter: domain.FormatCompact},
				{Key: "avg_basket", Label: "Avg Basket", Formatter: domain.FormatCurrency},
				{Key: "sell_through", Label: "Sell-Through", Formatter: domain.FormatPercent},
				{Key: "shrinkage_rate", Label: "Shrinkage Rate", Formatter: domain.FormatPercent, InvertTrend: true},
			},
		},
		domain.IndustryFoodBeverage: {
			Industry: domain.IndustryFoodBeverage,
			Label:    domain.IndustryLabel(domain.IndustryFoodBeverage),
			Kpis: []domain.KpiDefinition{
				{Key: "revenue", Label: "Revenue", Formatter: domain.FormatCurrency},
				{Key: "production_volume", Label: "Production Volume", Formatter: domain.FormatCompact},
				{Key: "yield_rate", Label: "Yield Rate", Formatter: domain.FormatPercent},
				{Key: "waste_rate", Label: "Waste Rate", Formatter: domain.FormatPercent, InvertTrend: true},
				{Key: "expiring_lots", Label: "Expiring Lots", Formatter: domain.FormatNumber, InvertTrend: true},
			},
		},
		domain.IndustryPharma: {
			Industry: domain.IndustryPharma,
			Label:    domain.IndustryLabel(domain.IndustryPharma),
			Kpis: []domain.KpiDefinition{
				{Key: "revenue", Label: "Revenue", Formatter: domain.FormatCurrency},
				{Key: "batches_released", Label: "Batches Released", Formatter: domain.FormatNumber},
				{Key: "right_first_time", Label: "Right First Time", Formatter: domain.FormatPercent},
				{Key: "quality_deviations", Label: "Quality Deviations", Formatter: domain.FormatNumber, InvertTrend: true},
				{Key: "batch_release_days", Label: "Batch Release (days)", Formatter: domain.FormatNumber, InvertTrend: true},
			},
		},
	}
}

package domain

import "time"

// StockoutRisk is a four-level severity classification derived solely from
// months-of-supply thresholds.
type StockoutRisk string

const (
	RiskLow      StockoutRisk = "low"
	RiskMedium   StockoutRisk = "medium"
	RiskHigh     StockoutRisk = "high"
	RiskCritical StockoutRisk = "critical"
)

// ForecastItem is the derived demand plan for one item. It is recomputed on
// every request and never persisted.
type ForecastItem struct {
	ItemID          string       `json:"item_id"`
	SKU             string       `json:"sku"`
	Name            string       `json:"name"`
	CurrentStock    float64      `json:"current_stock"`
	AvgMonthlyUsage float64      `json:"avg_monthly_usage"`
	MonthsOfSupply  float64      `json:"months_of_supply"`
	ReorderPoint    float64      `json:"reorder_point"`
	SuggestedOrder  float64      `json:"suggested_order"`
	LeadTimeDays    int          `json:"lead_time_days"`
	StockoutRisk    StockoutRisk `json:"stockout_risk"`
	UnitCost        float64      `json:"unit_cost"`
}

// DemandTrendPoint is one month of the projected demand trend.
type DemandTrendPoint struct {
	Month     string  `json:"month"`
	Demand    float64 `json:"demand"`
	Fulfilled float64 `json:"fulfilled"`
}

// DemandPlan bundles the per-item forecasts with the aggregate trend
// projection for a tenant.
type DemandPlan struct {
	Items       []ForecastItem     `json:"items"`
	Trend       []DemandTrendPoint `json:"trend"`
	GeneratedAt time.Time          `json:"generated_at"`
}

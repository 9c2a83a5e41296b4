package forecast

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantmetrics/backend-go/internal/domain"
)

const (
	// defaultMonthlyUsage is the flat usage estimate for items with no
	// reorder configuration at all.
	defaultMonthlyUsage = 50

	// supplySentinel stands in for "effectively infinite supply" when no
	// usage can be estimated. It is not a real months count.
	supplySentinel = 99

	// targetMonths is the buffer horizon an order suggestion restores.
	targetMonths = 3
)

// Config holds the planner's fixed projection constants. The seasonal
// factors and fulfillment curve are illustrative placeholders, not a model
// derived from historical data; they are kept as configuration so tenants
// can be planned concurrently without shared state.
type Config struct {
	LeadTimeDays    int
	SeasonalFactors []float64
	FulfillmentBase float64
	FulfillmentStep float64
}

// DefaultConfig returns the standard planning constants.
func DefaultConfig() Config {
	return Config{
		LeadTimeDays:    7,
		SeasonalFactors: []float64{0.85, 0.92, 1.00, 1.15, 1.05, 0.95},
		FulfillmentBase: 0.88,
		FulfillmentStep: 0.02,
	}
}

// Planner derives per-item demand forecasts and the aggregate demand-trend
// projection. All methods are pure; a single planner is safe for concurrent
// use.
type Planner struct {
	cfg Config
}

// NewPlanner creates a planner, filling zero-value config fields from the
// defaults.
func NewPlanner(cfg Config) *Planner {
	def := DefaultConfig()
	if cfg.LeadTimeDays <= 0 {
		cfg.LeadTimeDays = def.LeadTimeDays
	}
	if len(cfg.SeasonalFactors) == 0 {
		cfg.SeasonalFactors = def.SeasonalFactors
	}
	if cfg.FulfillmentBase <= 0 {
		cfg.FulfillmentBase = def.FulfillmentBase
	}
	if cfg.FulfillmentStep <= 0 {
		cfg.FulfillmentStep = def.FulfillmentStep
	}
	return &Planner{cfg: cfg}
}

// ForecastItem computes the demand plan for one item.
//
// Monthly usage is a heuristic over static reorder configuration: 1.5x the
// reorder point when one is set, else the reorder quantity, else a flat 50
// units. There is no consumption-history input; the estimate deliberately
// mirrors the reorder setup rather than measured demand.
func (p *Planner) ForecastItem(item domain.Item, currentStock float64) domain.ForecastItem {
	var usage float64
	switch {
	case item.ReorderPoint > 0:
		usage = math.Round(item.ReorderPoint * 1.5)
	case item.ReorderQuantity > 0:
		usage = math.Round(item.ReorderQuantity)
	default:
		usage = defaultMonthlyUsage
	}

	months := float64(supplySentinel)
	if usage > 0 {
		months = currentStock / usage
	}

	// First match wins.
	risk := domain.RiskLow
	switch {
	case months < 0.5:
		risk = domain.RiskCritical
	case months < 1:
		risk = domain.RiskHigh
	case months < 2:
		risk = domain.RiskMedium
	}

	// Below the target horizon, order back up to exactly targetMonths of
	// projected supply, never a negative quantity.
	var suggested float64
	if months < targetMonths {
		suggested = math.Max(0, math.Ceil(targetMonths*usage-currentStock))
	}

	return domain.ForecastItem{
		ItemID:          item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
		CurrentStock:    currentStock,
		AvgMonthlyUsage: usage,
		MonthsOfSupply:  months,
		ReorderPoint:    item.ReorderPoint,
		SuggestedOrder:  suggested,
		LeadTimeDays:    p.cfg.LeadTimeDays,
		StockoutRisk:    risk,
		UnitCost:        item.UnitCost,
	}
}

// DemandTrend projects total demand value over the configured seasonal
// window, labeled oldest to current month ending at now. Points are emitted
// oldest first, not most-recent first, so the linearly improving fulfillment
// rate peaks at the current month.
func (p *Planner) DemandTrend(items []domain.ForecastItem, now time.Time) []domain.DemandTrendPoint {
	total := decimal.Zero
	for _, item := range items {
		usage := decimal.NewFromFloat(item.AvgMonthlyUsage)
		cost := decimal.NewFromFloat(item.UnitCost)
		total = total.Add(usage.Mul(cost))
	}

	slots := len(p.cfg.SeasonalFactors)
	points := make([]domain.DemandTrendPoint, 0, slots)
	for i, factor := range p.cfg.SeasonalFactors {
		month := now.AddDate(0, -(slots - 1 - i), 0)
		demand, _ := total.Mul(decimal.NewFromFloat(factor)).Round(0).Float64()
		fulfillRate := p.cfg.FulfillmentBase + float64(i)*p.cfg.FulfillmentStep

		points = append(points, domain.DemandTrendPoint{
			Month:     month.Format("Jan"),
			Demand:    demand,
			Fulfilled: math.Round(demand * fulfillRate),
		})
	}

	return points
}

// Plan forecasts every item against the given stock levels and bundles the
// aggregate trend projection. Items missing from stockByItem plan as zero
// stock.
func (p *Planner) Plan(items []domain.Item, stockByItem map[string]float64, now time.Time) domain.DemandPlan {
	forecasts := make([]domain.ForecastItem, 0, len(items))
	for _, item := range items {
		forecasts = append(forecasts, p.ForecastItem(item, stockByItem[item.ID]))
	}

	return domain.DemandPlan{
		Items:       forecasts,
		Trend:       p.DemandTrend(forecasts, now),
		GeneratedAt: now,
	}
}

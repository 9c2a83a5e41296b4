package metrics

import (
	"math"

	"github.com/plantmetrics/backend-go/internal/domain"
)

// trendDeadZonePct is the change-percent band around zero treated as flat.
// It suppresses trend noise on near-unchanged metrics.
const trendDeadZonePct = 0.5

// Calculate derives a KPI record from a current/previous value pair.
//
// A zero previous value short-circuits the change percent to 0 so a first
// reporting period never yields NaN or Inf. A nil formatter falls back to
// compact formatting. Inputs are passed through unvalidated; the function
// never fails.
func Calculate(label string, current, previous float64, formatter Formatter, invertTrend bool) domain.Kpi {
	if formatter == nil {
		formatter = FormatCompact
	}

	changePercent := 0.0
	if previous != 0 {
		changePercent = roundTo((current-previous)/previous*100, 1)
	}

	trend := domain.TrendFlat
	switch {
	case changePercent > trendDeadZonePct:
		trend = domain.TrendUp
	case changePercent < -trendDeadZonePct:
		trend = domain.TrendDown
	}

	// A flat trend is never favorable, with or without inversion.
	positive := trend == domain.TrendUp
	if invertTrend {
		positive = trend == domain.TrendDown
	}

	return domain.Kpi{
		Label:           label,
		Value:           current,
		FormattedValue:  formatter(current),
		PreviousValue:   previous,
		ChangePercent:   changePercent,
		Trend:           trend,
		TrendIsPositive: positive,
	}
}

// Calculator bundles the formatter registry and sparkline generator used by
// the pre-bound dashboard KPIs.
type Calculator struct {
	sparkline *Sparkline
}

// NewCalculator creates a calculator for the standard dashboard KPIs.
func NewCalculator(sparkline *Sparkline) *Calculator {
	if sparkline == nil {
		sparkline = NewSparkline(nil)
	}
	return &Calculator{sparkline: sparkline}
}

// sparklinePoints is the fixed length of decorative KPI sparklines.
const sparklinePoints = 12

// Revenue builds the revenue KPI with currency formatting and sparkline.
func (c *Calculator) Revenue(current, previous float64) domain.Kpi {
	kpi := Calculate("Revenue", current, previous, FormatCurrency, false)
	kpi.SparklineData = c.sparkline.Generate(current, sparklinePoints, DefaultVariancePct)
	return kpi
}

// ActiveOrders builds the active-orders KPI with sparkline.
func (c *Calculator) ActiveOrders(current, previous float64) domain.Kpi {
	kpi := Calculate("Active Orders", current, previous, FormatNumber, false)
	kpi.SparklineData = c.sparkline.Generate(current, sparklinePoints, DefaultVariancePct)
	return kpi
}

// InventoryAlerts builds the inventory-alerts KPI. Fewer alerts is the
// favorable direction, so the trend is inverted. No sparkline.
func (c *Calculator) InventoryAlerts(current, previous float64) domain.Kpi {
	return Calculate("Inventory Alerts", current, previous, FormatNumber, true)
}

// OEE builds the overall-equipment-effectiveness KPI with sparkline.
func (c *Calculator) OEE(current, previous float64) domain.Kpi {
	kpi := Calculate("OEE", current, previous, FormatPercent, false)
	kpi.SparklineData = c.sparkline.Generate(current, sparklinePoints, DefaultVariancePct)
	return kpi
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

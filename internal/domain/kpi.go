package domain

// Trend classifies a period-over-period movement of a metric.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Kpi is the uniform record every metric computation produces. Records are
// constructed once and never mutated afterwards.
type Kpi struct {
	Label           string    `json:"label"`
	Value           float64   `json:"value"`
	FormattedValue  string    `json:"formatted_value"`
	PreviousValue   float64   `json:"previous_value"`
	ChangePercent   float64   `json:"change_percent"`
	Trend           Trend     `json:"trend"`
	TrendIsPositive bool      `json:"trend_is_positive"`
	SparklineData   []float64 `json:"sparkline_data,omitempty"`
}

// FormatterTag names one of the supported display formatters for a KPI
// definition. Unknown tags degrade to plain number formatting.
type FormatterTag string

const (
	FormatCurrency FormatterTag = "currency"
	FormatPercent  FormatterTag = "percent"
	FormatNumber   FormatterTag = "number"
	FormatCompact  FormatterTag = "compact"
)

// KpiDefinition is one entry of an industry profile: which raw metric to
// surface, how to label and format it, and whether a decrease is favorable.
type KpiDefinition struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	Formatter   FormatterTag `json:"formatter"`
	InvertTrend bool         `json:"invert_trend"`
}

// RawMetricPair is the source-of-truth snapshot of one metric for a single
// reporting period.
type RawMetricPair struct {
	Current  float64 `json:"current" db:"current_value"`
	Previous float64 `json:"previous" db:"previous_value"`
}

// MetricSnapshot maps metric keys to their raw period pair. A key missing
// from the snapshot means the corresponding KPI is omitted, not an error.
type MetricSnapshot map[string]RawMetricPair

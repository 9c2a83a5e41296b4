package metrics

import (
	"math/rand"
	"time"
)

// DefaultVariancePct is the walk amplitude used by the dashboard KPIs.
const DefaultVariancePct = 15

// RandSource is the random draw a sparkline walk consumes. *rand.Rand
// satisfies it; tests inject a seeded source.
type RandSource interface {
	Float64() float64
}

// Sparkline generates synthetic bounded random walks for chart decoration.
// Output is non-deterministic; only the final point is guaranteed to equal
// the base value.
type Sparkline struct {
	rand RandSource
}

// NewSparkline creates a generator. A nil source gets a time-seeded one.
func NewSparkline(src RandSource) *Sparkline {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sparkline{rand: src}
}

// Generate walks points steps from base*(1-variancePct/100) toward base.
// Each step is bounded by ±(base*variancePct/100/points) with its mean
// nudged toward the endpoint. Values are rounded to 2 decimals and the last
// element is forcibly set to the base value.
func (s *Sparkline) Generate(base float64, points int, variancePct float64) []float64 {
	if points <= 0 {
		return nil
	}

	amplitude := base * variancePct / 100
	maxStep := amplitude / float64(points)

	value := base - amplitude
	data := make([]float64, points)
	for i := range data {
		if i > 0 {
			value += (s.rand.Float64() - 0.45) * maxStep
		}
		data[i] = roundTo(value, 2)
	}

	data[points-1] = roundTo(base, 2)
	return data
}

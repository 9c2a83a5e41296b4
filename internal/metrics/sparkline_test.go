package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparklineEndpointLaw(t *testing.T) {
	gen := NewSparkline(rand.New(rand.NewSource(42)))

	bases := []float64{0, 1, 99.99, 2500, 1234.567, 1e6}
	for _, base := range bases {
		for points := 1; points <= 24; points++ {
			data := gen.Generate(base, points, DefaultVariancePct)

			require.Len(t, data, points)
			assert.Equal(t, roundTo(base, 2), data[points-1])
		}
	}
}

func TestSparklineSeedValue(t *testing.T) {
	gen := NewSparkline(rand.New(rand.NewSource(1)))

	data := gen.Generate(1000, 12, 15)
	assert.Equal(t, 850.0, data[0])
}

func TestSparklineStepBounds(t *testing.T) {
	const (
		base     = 1000.0
		points   = 20
		variance = 15.0
	)
	maxStep := base * variance / 100 / points

	gen := NewSparkline(rand.New(rand.NewSource(3)))
	for run := 0; run < 50; run++ {
		data := gen.Generate(base, points, variance)

		// The forced endpoint is exempt from the step bound.
		for i := 1; i < points-1; i++ {
			step := math.Abs(data[i] - data[i-1])
			assert.LessOrEqual(t, step, maxStep+0.01, "step %d out of bounds", i)
		}
	}
}

func TestSparklineNoPoints(t *testing.T) {
	gen := NewSparkline(rand.New(rand.NewSource(5)))

	assert.Nil(t, gen.Generate(100, 0, 15))
	assert.Nil(t, gen.Generate(100, -3, 15))
}

func TestSparklineDefaultSource(t *testing.T) {
	gen := NewSparkline(nil)

	data := gen.Generate(500, 8, DefaultVariancePct)
	require.Len(t, data, 8)
	assert.Equal(t, 500.0, data[7])
}

package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReturnSentinel/internal/model"
)

func TestCalculateVolatility(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mode   model.VarianceMode
		want   float64
	}{
		{name: "population", values: []float64{1, 2, 3, 4}, mode: model.VariancePopulation, want: math.Sqrt(1.25)},
		{name: "sample", values: []float64{1, 2, 3, 4}, mode: model.VarianceSample, want: math.Sqrt(5.0 / 3.0)},
		{name: "population single value", values: []float64{0.3}, mode: model.VariancePopulation, want: 0},
		{name: "population returns", values: []float64{0.05, -3.0 / 105, 6.0 / 102, -1.0 / 108}, mode: model.VariancePopulation, want: 0.0374242},
		{name: "sample returns", values: []float64{0.05, -3.0 / 105, 6.0 / 102, -1.0 / 108}, mode: model.VarianceSample, want: 0.0432137},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateVolatility(tt.values, tt.mode)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCalculateVolatility_IdenticalValues(t *testing.T) {
	values := []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	for _, mode := range []model.VarianceMode{model.VariancePopulation, model.VarianceSample} {
		got, err := CalculateVolatility(values, mode)
		require.NoError(t, err)
		assert.False(t, math.IsNaN(got))
		assert.InDelta(t, 0, got, 1e-12, "mode %s", mode)
	}

	got, err := CalculateVolatility([]float64{2.5, 2.5, 2.5}, model.VariancePopulation)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCalculateVolatility_Undersized(t *testing.T) {
	_, err := CalculateVolatility(nil, model.VariancePopulation)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateVolatility([]float64{}, model.VarianceSample)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateVolatility([]float64{0.01}, model.VarianceSample)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateVolatility_UnknownMode(t *testing.T) {
	_, err := CalculateVolatility([]float64{1, 2}, model.VarianceMode("weekly"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnnualizeVolatility(t *testing.T) {
	got, err := AnnualizeVolatility(0.01, 252)
	require.NoError(t, err)
	assert.InDelta(t, 0.01*math.Sqrt(252), got, 1e-12)

	_, err = AnnualizeVolatility(0.01, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"ReturnSentinel/internal/model"
)

// CalculateVolatility computes the standard deviation of values around their mean.
// VariancePopulation divides by M, VarianceSample by M-1.
func CalculateVolatility(values []float64, mode model.VarianceMode) (float64, error) {
	switch mode {
	case model.VariancePopulation, model.VarianceSample:
	default:
		return 0, fmt.Errorf("%w: unknown variance mode %q", ErrInvalidInput, mode)
	}
	if len(values) < mode.MinSamples() {
		return 0, fmt.Errorf("%w: %s volatility needs at least %d values, got %d",
			ErrInvalidInput, mode, mode.MinSamples(), len(values))
	}
	if err := checkFinite(values); err != nil {
		return 0, err
	}

	var variance float64
	if mode == model.VarianceSample {
		variance = stat.Variance(values, nil)
	} else {
		variance = stat.PopVariance(values, nil)
	}
	// rounding on identical values can leave a tiny negative variance
	if variance <= 0 {
		return 0, nil
	}
	return math.Sqrt(variance), nil
}

// AnnualizeVolatility scales a per-period volatility by sqrt(periodsPerYear).
func AnnualizeVolatility(vol float64, periodsPerYear int) (float64, error) {
	if periodsPerYear <= 0 {
		return 0, fmt.Errorf("%w: periods per year must be positive", ErrInvalidInput)
	}
	return vol * math.Sqrt(float64(periodsPerYear)), nil
}

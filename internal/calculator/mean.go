package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// CalculateMean returns the arithmetic mean of values.
func CalculateMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: mean of empty sequence", ErrInvalidInput)
	}
	if err := checkFinite(values); err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("%w: period must be positive", ErrInvalidInput)
	}
	if len(values) < period {
		return 0, fmt.Errorf("%w: not enough data for SMA(%d), got %d", ErrInvalidInput, period, len(values))
	}
	return CalculateMean(values[len(values)-period:])
}

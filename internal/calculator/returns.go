package calculator

import (
	"fmt"
	"math"
)

// CalculateReturn computes the fractional change from previous to current.
func CalculateReturn(current, previous float64) (float64, error) {
	if !isFinite(current) || !isFinite(previous) {
		return 0, fmt.Errorf("%w: non-finite price (current=%v, previous=%v)", ErrInvalidInput, current, previous)
	}
	if previous == 0 {
		return 0, fmt.Errorf("%w: previous price is zero", ErrDivisionByZero)
	}
	return (current - previous) / previous, nil
}

// CalculateReturns derives the N-1 step returns of a chronological price sequence.
func CalculateReturns(prices []float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInvalidInput, len(prices))
	}
	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		r, err := CalculateReturn(prices[i], prices[i-1])
		if err != nil {
			return nil, fmt.Errorf("price %d: %w", i-1, err)
		}
		returns[i-1] = r
	}
	return returns, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkFinite(values []float64) error {
	for i, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("%w: element %d is %v", ErrInvalidInput, i, v)
		}
	}
	return nil
}

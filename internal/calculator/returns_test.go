package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateReturn(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "gain", current: 105, previous: 100, want: 0.05},
		{name: "loss", current: 102, previous: 105, want: -3.0 / 105.0},
		{name: "unchanged", current: 42.5, previous: 42.5, want: 0},
		{name: "negative previous", current: -2, previous: -4, want: -0.5},
		{name: "to zero", current: 0, previous: 10, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateReturn(tt.current, tt.previous)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.Equal(t, (tt.current-tt.previous)/tt.previous, got)
		})
	}
}

func TestCalculateReturn_SamePriceIsZero(t *testing.T) {
	for _, p := range []float64{0.01, 1, 99.99, 1e9, -3} {
		got, err := CalculateReturn(p, p)
		require.NoError(t, err)
		assert.Zero(t, got, "price %v", p)
	}
}

func TestCalculateReturn_ZeroPrevious(t *testing.T) {
	_, err := CalculateReturn(10, 0)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCalculateReturn_NonFinite(t *testing.T) {
	_, err := CalculateReturn(math.NaN(), 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = CalculateReturn(1, math.Inf(1))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateReturns(t *testing.T) {
	got, err := CalculateReturns([]float64{100.0, 105.0, 102.0, 108.0, 107.0})
	require.NoError(t, err)
	require.Len(t, got, 4)

	want := []float64{0.05, -0.028571, 0.058824, -0.009259}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "return %d", i)
	}
}

func TestCalculateReturns_Undersized(t *testing.T) {
	for _, prices := range [][]float64{nil, {}, {100}} {
		_, err := CalculateReturns(prices)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCalculateReturns_ZeroPriceInside(t *testing.T) {
	_, err := CalculateReturns([]float64{100, 0, 50})
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.Contains(t, err.Error(), "price 1")
}

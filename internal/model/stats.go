package model

import (
	"fmt"
	"strings"
)

// VarianceMode selects the divisor used for volatility.
type VarianceMode string

const (
	// VariancePopulation divides the squared deviations by M.
	VariancePopulation VarianceMode = "population"
	// VarianceSample divides by M-1 (Bessel's correction).
	VarianceSample VarianceMode = "sample"
)

// ParseVarianceMode maps a config string onto a VarianceMode. Empty means population.
func ParseVarianceMode(s string) (VarianceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "population", "pop":
		return VariancePopulation, nil
	case "sample":
		return VarianceSample, nil
	default:
		return "", fmt.Errorf("unknown variance mode %q", s)
	}
}

// MinSamples is the smallest return count the mode can measure.
func (m VarianceMode) MinSamples() int {
	if m == VarianceSample {
		return 2
	}
	return 1
}

// ReturnStats holds the per-step returns and the statistics derived from them.
type ReturnStats struct {
	Returns    []float64
	Count      int
	Mean       float64
	Volatility float64
	Mode       VarianceMode
}

// Valid reports whether both mean and volatility are strictly positive.
func (s *ReturnStats) Valid() bool {
	return s.Mean > 0 && s.Volatility > 0
}

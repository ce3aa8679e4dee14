package model

import "time"

// PricePoint is a single observed closing price.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds an ordered (oldest first) sequence of prices for analysis.
type PriceSeries struct {
	Symbol    string
	Source    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Closes extracts the closing prices in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Len returns the number of prices in the series.
func (s *PriceSeries) Len() int { return len(s.Points) }

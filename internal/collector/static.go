package collector

import (
	"time"

	"ReturnSentinel/internal/model"
)

// StaticFetcher serves a fixed price list, typically from the config file.
// Timestamps are synthesized one Interval apart, ending at Now.
type StaticFetcher struct {
	Prices   []float64
	Interval time.Duration
	Now      func() time.Time
}

// NewStaticFetcher creates a fetcher over daily prices.
func NewStaticFetcher(prices []float64) *StaticFetcher {
	return &StaticFetcher{Prices: prices, Interval: 24 * time.Hour, Now: time.Now}
}

func (f *StaticFetcher) Name() string { return "static" }

func (f *StaticFetcher) FetchCloses(_ string, limit int) ([]model.PricePoint, error) {
	prices := f.Prices
	if limit > 0 && len(prices) > limit {
		prices = prices[len(prices)-limit:]
	}
	end := f.Now()
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{
			Time:  end.Add(-time.Duration(len(prices)-1-i) * f.Interval),
			Close: p,
		}
	}
	return points, nil
}

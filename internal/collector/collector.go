package collector

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"ReturnSentinel/internal/calculator"
	"ReturnSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Points []model.PricePoint
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloses(_ string, limit int) ([]model.PricePoint, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	points := m.Points
	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	return points, nil
}

// MockPoints builds daily points ending today from a plain price list.
func MockPoints(prices ...float64) []model.PricePoint {
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.PricePoint{
			Time:  time.Now().AddDate(0, 0, -(len(prices) - 1 - i)),
			Close: p,
		}
	}
	return points
}

// Collector orchestrates price fetching and return statistics.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Limit   int
	Mode    model.VarianceMode
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, limit int, mode model.VarianceMode) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Limit: limit, Mode: mode}
}

// Collect fetches the price series.
func (c *Collector) Collect() (*model.PriceSeries, error) {
	points, err := c.Fetcher.FetchCloses(c.Symbol, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch closes: %w", err)
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: %s returned %d prices for %s, need at least 2",
			calculator.ErrInvalidInput, c.Fetcher.Name(), len(points), c.Symbol)
	}
	return &model.PriceSeries{
		Symbol:    c.Symbol,
		Source:    c.Fetcher.Name(),
		Points:    points,
		FetchedAt: time.Now(),
	}, nil
}

// Analyze fetches the price series and computes its return statistics.
func (c *Collector) Analyze() (*model.PriceSeries, *model.ReturnStats, error) {
	series, err := c.Collect()
	if err != nil {
		return nil, nil, err
	}
	stats, err := calculator.Analyze(series.Closes(), c.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("analyze %s: %w", c.Symbol, err)
	}
	log.WithFields(log.Fields{
		"symbol":     c.Symbol,
		"source":     series.Source,
		"prices":     series.Len(),
		"mean":       stats.Mean,
		"volatility": stats.Volatility,
	}).Info("return statistics computed")
	return series, stats, nil
}

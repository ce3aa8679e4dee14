package collector

import "ReturnSentinel/internal/model"

// Fetcher defines the interface for fetching closing prices.
// Implementations return points in chronological order, at most limit of them.
type Fetcher interface {
	FetchCloses(symbol string, limit int) ([]model.PricePoint, error)
	Name() string
}

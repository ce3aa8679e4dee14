package calculator

import (
	"fmt"

	"ReturnSentinel/internal/model"
)

// Analyze derives returns from prices and computes their mean and volatility.
// Either every statistic is produced or an error is returned.
func Analyze(prices []float64, mode model.VarianceMode) (*model.ReturnStats, error) {
	returns, err := CalculateReturns(prices)
	if err != nil {
		return nil, fmt.Errorf("returns: %w", err)
	}
	mean, err := CalculateMean(returns)
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	vol, err := CalculateVolatility(returns, mode)
	if err != nil {
		return nil, fmt.Errorf("volatility: %w", err)
	}
	return &model.ReturnStats{
		Returns:    returns,
		Count:      len(returns),
		Mean:       mean,
		Volatility: vol,
		Mode:       mode,
	}, nil
}

package recorder

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"ReturnSentinel/internal/model"
)

// Snapshot is one recorded analysis run.
type Snapshot struct {
	ID         string
	Time       time.Time
	Symbol     string
	Source     string
	PriceCount int
	Stats      *model.ReturnStats
}

// NewSnapshot stamps a fresh ID and time onto an analysis result.
func NewSnapshot(series *model.PriceSeries, stats *model.ReturnStats) *Snapshot {
	return &Snapshot{
		ID:         uuid.NewString(),
		Time:       time.Now(),
		Symbol:     series.Symbol,
		Source:     series.Source,
		PriceCount: series.Len(),
		Stats:      stats,
	}
}

// Recorder persists analysis history.
type Recorder interface {
	RecordStats(snap *Snapshot) error
	Close() error
}

// MultiRecorder fans every snapshot out to several recorders.
type MultiRecorder []Recorder

func (m MultiRecorder) RecordStats(snap *Snapshot) error {
	var errs []error
	for _, r := range m {
		if err := r.RecordStats(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiRecorder) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

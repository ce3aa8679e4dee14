package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"ReturnSentinel/internal/collector"
	"ReturnSentinel/internal/model"
	"ReturnSentinel/internal/notifier"
	"ReturnSentinel/internal/recorder"
)

// Sender delivers a formatted report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// HistoryReader lists recently recorded snapshots.
type HistoryReader interface {
	Recent(limit int) ([]recorder.Snapshot, error)
}

// Result is the outcome of one analysis run.
type Result struct {
	Series *model.PriceSeries
	Stats  *model.ReturnStats
}

// Scheduler runs analyses on a cron schedule and on demand.
type Scheduler struct {
	Cron           *cron.Cron
	Collector      *collector.Collector
	Recorder       recorder.Recorder
	Notifier       Sender        // optional
	History        HistoryReader // optional
	PeriodsPerYear int
	Ctx            context.Context
}

// NewScheduler creates a new Scheduler. Notifier and History may be nil.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, n Sender, h HistoryReader, periodsPerYear int) *Scheduler {
	return &Scheduler{
		Cron:           cron.New(cron.WithSeconds()),
		Collector:      col,
		Recorder:       rec,
		Notifier:       n,
		History:        h,
		PeriodsPerYear: periodsPerYear,
		Ctx:            ctx,
	}
}

// Register adds the analysis task under the given cron spec (with seconds).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.statsTask); err != nil {
		return fmt.Errorf("register stats task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow analyzes, records and notifies once, returning the result.
func (s *Scheduler) RunNow() (*Result, error) {
	series, stats, err := s.Collector.Analyze()
	if err != nil {
		return nil, err
	}

	if err := s.Recorder.RecordStats(recorder.NewSnapshot(series, stats)); err != nil {
		log.Errorf("record stats: %v", err)
	}
	s.trySend(notifier.FormatTelegramReport(series, stats, s.PeriodsPerYear))

	if !stats.Valid() {
		log.Warnf("validity check failed for %s: mean=%.6f volatility=%.6f", series.Symbol, stats.Mean, stats.Volatility)
	}
	return &Result{Series: series, Stats: stats}, nil
}

func (s *Scheduler) statsTask() {
	log.Info("running stats task")
	if _, err := s.RunNow(); err != nil {
		log.Errorf("stats task: %v", err)
		s.trySend(fmt.Sprintf("❌ Return statistics failed: %v", err))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/stats":
		res, err := s.RunNow()
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		// RunNow already pushed the report when a notifier is set
		if s.Notifier != nil {
			return ""
		}
		return notifier.FormatTelegramReport(res.Series, res.Stats, s.PeriodsPerYear)
	case "/history":
		if s.History == nil {
			return "History is not enabled."
		}
		snaps, err := s.History.Recent(10)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatHistory(snaps)
	default:
		return "Available commands:\n• /stats\n• /history"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Errorf("send notification: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"ReturnSentinel/internal/collector"
	"ReturnSentinel/internal/config"
	"ReturnSentinel/internal/notifier"
	"ReturnSentinel/internal/recorder"
	"ReturnSentinel/internal/scheduler"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("ReturnSentinel starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warnf("unknown log level %q, keeping info", cfg.Log.Level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Exit(run(ctx, cfg, os.Stdout))
}

// run performs one analysis and, when a schedule is configured, keeps running under cron.
// The returned value is the process exit status.
func run(ctx context.Context, cfg *config.Config, out io.Writer) int {
	mode, err := cfg.VarianceMode()
	if err != nil {
		log.Errorf("variance mode: %v", err)
		return 1
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		log.Errorf("init fetcher: %v", err)
		return 1
	}
	log.Infof("data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Limit, mode)

	rec, history := newRecorder(cfg)
	defer rec.Close()

	var sender scheduler.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		if tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy); err != nil {
			log.Warnf("init telegram notifier failed, notifications disabled: %v", err)
		} else {
			sender = tn
		}
	}

	sched := scheduler.NewScheduler(ctx, col, rec, sender, history, cfg.Analysis.PeriodsPerYear)

	res, err := sched.RunNow()
	if err != nil {
		fmt.Fprintf(out, "Analysis FAILED: %v\n", err)
		return 1
	}
	fmt.Fprint(out, notifier.FormatConsoleReport(res.Series, res.Stats, cfg.Analysis.PeriodsPerYear))

	status := 0
	if !res.Stats.Valid() {
		status = 1
	}

	if cfg.Schedule.Cron == "" && os.Getenv("DAEMON") != "true" {
		return status
	}
	if cfg.Schedule.Cron != "" {
		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			log.Errorf("register cron task: %v", err)
			return 1
		}
	}
	sched.Start()
	defer sched.Stop()

	if sender != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	log.Info("ReturnSentinel is running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	return 0
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Type {
	case config.SourceStatic:
		return collector.NewStaticFetcher(cfg.Analysis.Prices), nil
	case config.SourceYahoo:
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case config.SourceREST:
		return collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy), nil
	default:
		return nil, errors.New("unknown data source " + cfg.DataSource.Type)
	}
}

// newRecorder builds the configured sinks. Failing sinks are skipped with a warning.
func newRecorder(cfg *config.Config) (recorder.Recorder, scheduler.HistoryReader) {
	var recs recorder.MultiRecorder
	var history scheduler.HistoryReader

	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, sr)
			history = sr
		}
	}
	if cfg.Redis.Addr != "" {
		rr, err := recorder.NewRedisRecorder(cfg.Redis.Addr, cfg.Redis.Stream)
		if err != nil {
			log.Warnf("init redis recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, rr)
		}
	}

	if len(recs) == 0 {
		return recorder.NewNoopRecorder(), history
	}
	return recs, history
}

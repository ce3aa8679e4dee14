package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReturnSentinel/internal/config"
	"ReturnSentinel/internal/recorder"
)

func staticConfig(t *testing.T, prices ...float64) *config.Config {
	t.Helper()
	t.Setenv("DAEMON", "")
	cfg := &config.Config{}
	cfg.DataSource.Type = config.SourceStatic
	cfg.DataSource.Symbol = "DEMO"
	cfg.DataSource.Limit = 30
	cfg.Analysis.Prices = prices
	cfg.Analysis.Variance = "population"
	return cfg
}

func TestRun_Functional(t *testing.T) {
	cfg := staticConfig(t, 100.0, 105.0, 102.0, 108.0, 107.0)
	var out bytes.Buffer

	assert.Equal(t, 0, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Check OK. Mean: 0.017748")
}

func TestRun_Integration(t *testing.T) {
	cfg := staticConfig(t, 100.0, 108.0, 103.0, 112.0, 109.0)
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "stats.db")
	var out bytes.Buffer

	require.Equal(t, 0, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Mean:        0.023574")

	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	require.NoError(t, err)
	defer sr.Close()
	snaps, err := sr.Recent(5)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "DEMO", snaps[0].Symbol)
}

func TestRun_FailedCheck(t *testing.T) {
	cfg := staticConfig(t, 110, 105, 100)
	var out bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Check FAILED")
}

func TestRun_InvalidInput(t *testing.T) {
	cfg := staticConfig(t, 100, 0, 100)
	var out bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "division by zero")
}

func TestNewFetcher(t *testing.T) {
	cfg := staticConfig(t, 1, 2)
	for typ, name := range map[string]string{
		config.SourceStatic: "static",
		config.SourceYahoo:  "yahoo",
		config.SourceREST:   "rest",
	} {
		cfg.DataSource.Type = typ
		f, err := newFetcher(cfg)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	cfg.DataSource.Type = "ftp"
	_, err := newFetcher(cfg)
	assert.Error(t, err)
}

func TestNewRecorder_Noop(t *testing.T) {
	rec, history := newRecorder(staticConfig(t))
	assert.IsType(t, &recorder.NoopRecorder{}, rec)
	assert.Nil(t, history)
}

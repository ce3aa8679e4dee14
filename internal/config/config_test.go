package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReturnSentinel/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
data_source:
  type: static
  symbol: ACME
analysis:
  prices: [100, 108, 103, 112, 109]
  variance: sample
database:
  sqlite_path: /tmp/x.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "ACME", cfg.DataSource.Symbol)
	assert.Equal(t, []float64{100, 108, 103, 112, 109}, cfg.Analysis.Prices)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30, cfg.DataSource.Limit)

	mode, err := cfg.VarianceMode()
	require.NoError(t, err)
	assert.Equal(t, model.VarianceSample, mode)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, SourceStatic, cfg.DataSource.Type)
	assert.Equal(t, "SPX500", cfg.DataSource.Symbol)
	assert.Equal(t, "population", cfg.Analysis.Variance)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.Stream)

	// no prices for the static source
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PRICES", "10, 11 12")
	t.Setenv("VARIANCE_MODE", "sample")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(writeConfig(t, "analysis:\n  prices: [1, 2]\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []float64{10, 11, 12}, cfg.Analysis.Prices)
	assert.Equal(t, "sample", cfg.Analysis.Variance)
	assert.Equal(t, int64(-1001), cfg.Telegram.ChatID)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "return_stats", cfg.Redis.Stream)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("PRICES", "10,abc")
	_, err := Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "analysis: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.DataSource.Type = "ftp" }, wantErr: true},
		{name: "rest without url", mutate: func(c *Config) { c.DataSource.Type = SourceREST }, wantErr: true},
		{name: "rest with url", mutate: func(c *Config) {
			c.DataSource.Type = SourceREST
			c.DataSource.BaseURL = "http://localhost"
		}},
		{name: "yahoo", mutate: func(c *Config) { c.DataSource.Type = SourceYahoo; c.Analysis.Prices = nil }},
		{name: "bad variance", mutate: func(c *Config) { c.Analysis.Variance = "daily" }, wantErr: true},
		{name: "limit too small", mutate: func(c *Config) { c.DataSource.Limit = 1 }, wantErr: true},
		{name: "token without chat", mutate: func(c *Config) { c.Telegram.BotToken = "x" }, wantErr: true},
		{name: "negative periods", mutate: func(c *Config) { c.Analysis.PeriodsPerYear = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Analysis.Prices = []float64{1, 2, 3}
			cfg.applyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePrices(t *testing.T) {
	got, err := ParsePrices("100.0,105.0\t102 108\n107")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 105, 102, 108, 107}, got)

	got, err = ParsePrices("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

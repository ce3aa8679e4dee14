package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ReturnSentinel/internal/model"
)

// Data source types.
const (
	SourceStatic = "static"
	SourceYahoo  = "yahoo"
	SourceREST   = "rest"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Type    string `yaml:"type"`
		Symbol  string `yaml:"symbol"`
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Limit   int    `yaml:"limit"`
	} `yaml:"data_source"`
	Analysis struct {
		Prices         []float64 `yaml:"prices"`
		Variance       string    `yaml:"variance"`
		PeriodsPerYear int       `yaml:"periods_per_year"`
	} `yaml:"analysis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Redis struct {
		Addr   string `yaml:"addr"`
		Stream string `yaml:"stream"`
	} `yaml:"redis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error; defaults and the environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// .env is optional; real environment variables take precedence over it
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		c.DataSource.Type = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.DataSource.Symbol = v
	}
	if v := os.Getenv("REST_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("REST_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("PRICES"); v != "" {
		prices, err := ParsePrices(v)
		if err != nil {
			return fmt.Errorf("PRICES: %w", err)
		}
		c.Analysis.Prices = prices
	}
	if v := os.Getenv("VARIANCE_MODE"); v != "" {
		c.Analysis.Variance = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}
	if v := os.Getenv("SCHEDULE_CRON"); v != "" {
		c.Schedule.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Type == "" {
		c.DataSource.Type = SourceStatic
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "SPX500"
	}
	if c.DataSource.Limit == 0 {
		c.DataSource.Limit = 30
	}
	if c.Analysis.Variance == "" {
		c.Analysis.Variance = string(model.VariancePopulation)
	}
	if c.Redis.Addr != "" && c.Redis.Stream == "" {
		c.Redis.Stream = "return_stats"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Type {
	case SourceStatic:
		if len(c.Analysis.Prices) < 2 {
			return fmt.Errorf("analysis.prices needs at least 2 prices for the static source")
		}
	case SourceYahoo:
	case SourceREST:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest source")
		}
	default:
		return fmt.Errorf("unknown data_source.type %q", c.DataSource.Type)
	}
	if c.DataSource.Limit < 2 {
		return fmt.Errorf("data_source.limit must be at least 2")
	}
	if _, err := c.VarianceMode(); err != nil {
		return fmt.Errorf("analysis.variance: %w", err)
	}
	if c.Analysis.PeriodsPerYear < 0 {
		return fmt.Errorf("analysis.periods_per_year must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// VarianceMode returns the parsed analysis.variance setting.
func (c *Config) VarianceMode() (model.VarianceMode, error) {
	return model.ParseVarianceMode(c.Analysis.Variance)
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != 0
}

// ParsePrices parses a comma or whitespace separated list of prices.
func ParsePrices(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	prices := make([]float64, 0, len(fields))
	for _, f := range fields {
		p, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", f, err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

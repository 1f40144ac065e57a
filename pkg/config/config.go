package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/questdb"
)

// Config represents the application configuration.
type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	QuestDB   questdb.Config  `envPrefix:"QUESTDB_"`
	Feed      FeedConfig      `envPrefix:"FEED_"`
	Analytics AnalyticsConfig `envPrefix:"ANALYTICS_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"pair-analytics-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9100"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// FeedConfig represents the upstream trade stream configuration.
type FeedConfig struct {
	URL            string        `env:"URL" envDefault:"wss://fstream.binance.com/stream"`
	Symbols        []string      `env:"SYMBOLS" envSeparator:"," envDefault:"BTCUSDT,ETHUSDT,SOLUSDT"`
	BufferSize     int           `env:"BUFFER_SIZE" envDefault:"2048"`
	FlushBatchSize int           `env:"FLUSH_BATCH_SIZE" envDefault:"200"`
	FlushInterval  time.Duration `env:"FLUSH_INTERVAL" envDefault:"1s"`
	InitialBackoff time.Duration `env:"INITIAL_BACKOFF" envDefault:"1s"`
	MaxBackoff     time.Duration `env:"MAX_BACKOFF" envDefault:"30s"`
}

// AnalyticsConfig represents the query pipeline configuration.
type AnalyticsConfig struct {
	DefaultBucketWidth   string  `env:"DEFAULT_BUCKET_WIDTH" envDefault:"1m"`
	DefaultRollingWindow int     `env:"DEFAULT_ROLLING_WINDOW" envDefault:"20"`
	SignificanceLevel    float64 `env:"SIGNIFICANCE_LEVEL" envDefault:"0.05"`
	MaxRowsPerSymbol     int     `env:"MAX_ROWS_PER_SYMBOL" envDefault:"50000"`
	MaxBuckets           int     `env:"MAX_BUCKETS" envDefault:"10000"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

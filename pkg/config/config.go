package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dotan-Peleh/currency-convertor/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Exchange struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"exchange"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Pricing struct {
		FeePercent           float64       `yaml:"fee_percent"`
		FixedFee             float64       `yaml:"fixed_fee"`
		ReferenceFeePercent  float64       `yaml:"reference_fee_percent"`
		SmallSeller          bool          `yaml:"small_seller"`
		SnapMode             string        `yaml:"snap_mode"`
		PriceChangeThreshold float64       `yaml:"price_change_threshold"`
		ExcludedCountries    []string      `yaml:"excluded_countries"`
		RunInterval          time.Duration `yaml:"run_interval"`
		Workers              int           `yaml:"workers"`
	} `yaml:"pricing"`
	SKUs []struct {
		AppleSKU  string `yaml:"apple_sku"`
		GoogleSKU string `yaml:"google_sku"`
		USDCost   string `yaml:"usd_cost"`
	} `yaml:"skus"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("EXCHANGE_API_URL"); v != "" {
		c.Exchange.BaseURL = v
	}
	if v := os.Getenv("EXCHANGE_API_KEY"); v != "" {
		c.Exchange.APIKey = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port := splitHostPort(v)
		c.Redis.Host = host
		if port != 0 {
			c.Redis.Port = port
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Pricing.SnapMode == "" {
		c.Pricing.SnapMode = "up"
	}
	if c.Pricing.PriceChangeThreshold == 0 {
		c.Pricing.PriceChangeThreshold = 0.05
	}
	if c.Pricing.ReferenceFeePercent == 0 {
		c.Pricing.ReferenceFeePercent = 0.30
	}
	if c.Pricing.Workers == 0 {
		c.Pricing.Workers = 8
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if len(c.SKUs) == 0 {
		return fmt.Errorf("skus cannot be empty")
	}
	switch c.Pricing.SnapMode {
	case "up", "nearest", "down":
	default:
		return fmt.Errorf("pricing.snap_mode must be 'up', 'nearest' or 'down', got '%s'", c.Pricing.SnapMode)
	}
	if c.Pricing.PriceChangeThreshold < 0 {
		return fmt.Errorf("pricing.price_change_threshold cannot be negative")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	return nil
}

func splitHostPort(addr string) (string, int) {
	if i := strings.LastIndex(addr, ":"); i > 0 {
		return addr[:i], util.ParseIntDefault(addr[i+1:], 0)
	}
	return addr, 0
}

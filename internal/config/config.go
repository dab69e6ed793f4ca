// Package config loads the command line tool's settings from the
// environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/smsactivate/email-go/internal/logger"
)

// EnvPrefix prefixes every environment variable, e.g. SMSACTIVATE_API_KEY.
const EnvPrefix = "smsactivate"

// ClientConfig holds the API client settings.
type ClientConfig struct {
	APIKey    string
	BaseURL   string
	Protocol  string        // "json" or "text"
	Timeout   time.Duration // per request
	Retries   int           // 0 disables HTTP retries
	RateLimit float64       // requests per second, 0 for unlimited
	RateBurst int
}

// PollConfig holds the defaults for waiting on a message.
type PollConfig struct {
	Period   time.Duration
	Attempts int
}

// Config is the root configuration.
type Config struct {
	Client      ClientConfig
	Poll        PollConfig
	Log         logger.Config
	MetricsFile string // Prometheus text file written on exit, if set
}

// Load reads the configuration. Precedence, highest first:
//  1. environment variables (SMSACTIVATE_API_KEY, SMSACTIVATE_POLL_PERIOD, ...)
//  2. envFile, if it exists
//  3. defaults
//
// An empty envFile means ".env" in the working directory.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "https://api.sms-activate.org/stubs/handler_api.php")
	v.SetDefault("protocol", "json")
	v.SetDefault("timeout", "30s")
	v.SetDefault("retries", 0)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_burst", 1)
	v.SetDefault("poll.period", "5s")
	v.SetDefault("poll.attempts", 10)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("metrics_file", "")

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}
	period, err := time.ParseDuration(v.GetString("poll.period"))
	if err != nil {
		return nil, fmt.Errorf("invalid poll.period: %w", err)
	}

	cfg := &Config{
		Client: ClientConfig{
			APIKey:    strings.TrimSpace(v.GetString("api_key")),
			BaseURL:   v.GetString("base_url"),
			Protocol:  strings.ToLower(v.GetString("protocol")),
			Timeout:   timeout,
			Retries:   v.GetInt("retries"),
			RateLimit: v.GetFloat64("rate_limit"),
			RateBurst: v.GetInt("rate_burst"),
		},
		Poll: PollConfig{
			Period:   period,
			Attempts: v.GetInt("poll.attempts"),
		},
		Log: logger.Config{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
			LogFile:     v.GetString("log.file"),
			MaxSize:     v.GetInt("log.max_size"),
			MaxBackups:  v.GetInt("log.max_backups"),
			MaxAge:      v.GetInt("log.max_age"),
		},
		MetricsFile: v.GetString("metrics_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Client.APIKey == "" {
		return fmt.Errorf("api key is required: set SMSACTIVATE_API_KEY")
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("base url must not be empty")
	}
	if c.Client.Protocol != "json" && c.Client.Protocol != "text" {
		return fmt.Errorf("protocol must be json or text, got %q", c.Client.Protocol)
	}
	if c.Client.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Client.Timeout)
	}
	if c.Client.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Client.Retries)
	}
	if c.Client.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %v", c.Client.RateLimit)
	}
	if c.Poll.Period < 0 {
		return fmt.Errorf("poll period must not be negative, got %v", c.Poll.Period)
	}
	if c.Poll.Attempts < 1 {
		return fmt.Errorf("poll attempts must be at least 1, got %d", c.Poll.Attempts)
	}
	return nil
}

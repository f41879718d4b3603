package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the tour configuration
type Config struct {
	Fetch FetchConfig
	Log   LogConfig
}

// FetchConfig holds the simulated latencies and the retry budget
type FetchConfig struct {
	Delay      time.Duration `validate:"gte=0"`
	RetryDelay time.Duration `validate:"gte=0"`
	APIDelay   time.Duration `validate:"gte=0"`
	MaxRetries int           `validate:"gte=1"`
	RateLimit  float64       `validate:"gte=0"` // calls per second, 0 disables the limiter
	RateBurst  int           `validate:"gte=1"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"oneof=text json"`
}

// findProjectRoot finds the project root directory by looking for go.mod
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

// InitConfig initializes viper configuration
// env: environment name (dev, test, prod)
func InitConfig(env string) error {
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	// The binary may run outside a checkout; fall back to the working directory.
	if root, err := findProjectRoot(); err == nil {
		viper.AddConfigPath(root)
	}
	viper.AddConfigPath(".")

	// Read config file (optional)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Environment variables take precedence over config file
	viper.SetEnvPrefix("LANGTOUR")
	viper.AutomaticEnv()

	viper.SetDefault("FETCH_DELAY", "2s")
	viper.SetDefault("RETRY_DELAY", "1s")
	viper.SetDefault("API_DELAY", "1s")
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("FETCH_RATE_LIMIT", 0)
	viper.SetDefault("FETCH_RATE_BURST", 1)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	return nil
}

// Load loads configuration from viper
func Load() (*Config, error) {
	config := &Config{
		Fetch: FetchConfig{
			Delay:      viper.GetDuration("FETCH_DELAY"),
			RetryDelay: viper.GetDuration("RETRY_DELAY"),
			APIDelay:   viper.GetDuration("API_DELAY"),
			MaxRetries: viper.GetInt("MAX_RETRIES"),
			RateLimit:  viper.GetFloat64("FETCH_RATE_LIMIT"),
			RateBurst:  viper.GetInt("FETCH_RATE_BURST"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// NoDelays zeroes every simulated latency, for quick runs.
func (c *Config) NoDelays() {
	c.Fetch.Delay = 0
	c.Fetch.RetryDelay = 0
	c.Fetch.APIDelay = 0
}

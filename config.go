package gdl

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds every tunable of the downloader.
type Config struct {
	OutputDir      string        `mapstructure:"output_dir"`
	ChunkSize      int           `mapstructure:"chunk_size"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryWaitMin   time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax   time.Duration `mapstructure:"retry_wait_max"`
	Timeout        time.Duration `mapstructure:"timeout"`
	VerifySSL      bool          `mapstructure:"verify_ssl"`
	AutoCreateDirs bool          `mapstructure:"auto_create_dirs"`
	LogLevel       string        `mapstructure:"log_level"`
	UserAgent      string        `mapstructure:"user_agent"`
	APIKey         string        `mapstructure:"api_key"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "./downloads",
		ChunkSize:      32 * 1024,
		MaxRetries:     3,
		RetryWaitMin:   time.Second,
		RetryWaitMax:   30 * time.Second,
		Timeout:        30 * time.Second,
		VerifySSL:      true,
		AutoCreateDirs: true,
		LogLevel:       "info",
		UserAgent:      defaultUserAgent,
	}
}

// LoadConfig loads configuration in increasing priority: built-in
// defaults, a JSON config file, then GDL_* environment variables.
//
// When path is empty the file is searched as gdl_config.json in the
// working directory, then ~/.gdl/config.json and ~/.config/gdl/config.json.
// A missing file is not an error in that case.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("chunk_size", def.ChunkSize)
	v.SetDefault("max_retries", def.MaxRetries)
	v.SetDefault("retry_wait_min", def.RetryWaitMin.String())
	v.SetDefault("retry_wait_max", def.RetryWaitMax.String())
	v.SetDefault("timeout", def.Timeout.String())
	v.SetDefault("verify_ssl", def.VerifySSL)
	v.SetDefault("auto_create_dirs", def.AutoCreateDirs)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("user_agent", def.UserAgent)
	v.SetDefault("api_key", "")

	v.SetConfigType("json")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("gdl_config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gdl")
		v.AddConfigPath("$HOME/.config/gdl")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("GDL")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the downloader cannot
// work with.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if c.RetryWaitMin <= 0 {
		return fmt.Errorf("retry_wait_min must be positive")
	}
	if c.RetryWaitMax < c.RetryWaitMin {
		return fmt.Errorf("retry_wait_max must not be below retry_wait_min")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Content  ContentConfig  `mapstructure:"content"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Learner  LearnerConfig  `mapstructure:"learner"`
	App      AppConfig      `mapstructure:"app"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig is optional; when URI is empty the SQLite store is used.
type RedisConfig struct {
	URI string `mapstructure:"uri"`
}

type ContentConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type ScoringConfig struct {
	// PassThreshold is the minimum recitation accuracy, in percent,
	// that counts as a passed recall test.
	PassThreshold float64 `mapstructure:"pass_threshold"`
}

type LearnerConfig struct {
	DailyGoal int `mapstructure:"daily_goal"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty filename skips the file and uses defaults plus environment only.
func Load(filename string) (*Config, error) {
	v := viper.New()

	v.SetDefault("content.base_url", "https://api.alquran.cloud/v1")
	v.SetDefault("scoring.pass_threshold", 80.0)
	v.SetDefault("learner.daily_goal", 50)
	v.SetDefault("app.env", "production")

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("HIFZI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Scoring.PassThreshold < 0 || cfg.Scoring.PassThreshold > 100 {
		return nil, fmt.Errorf("pass threshold %.1f out of range [0, 100]", cfg.Scoring.PassThreshold)
	}
	if cfg.Learner.DailyGoal <= 0 {
		return nil, fmt.Errorf("daily goal must be positive, got %d", cfg.Learner.DailyGoal)
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the commands need beyond their own flags.
// Precedence: defaults < config.yaml < .env < environment < flags.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Chart    ChartConfig    `mapstructure:"chart"`
}

// GitHubConfig covers the collector's API access.
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	TokenFile  string `mapstructure:"token_file"`
	APIURL     string `mapstructure:"api_url"` // GitHub Enterprise base URL, empty for github.com
	Days       int    `mapstructure:"days"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// TelegramConfig is only consulted when chart delivery is requested.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// ChartConfig sets the default canvas; the render command's --aspect flag
// overrides the height.
type ChartConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Aspect string `mapstructure:"aspect"` // "W:H", empty means unconstrained
}

func LoadConfig() (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // optional file

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.ReadInConfig() // optional file

	v.AutomaticEnv()
	setupEnvAliases(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.token_file", "GITHUB_TOKEN_FILE")
	v.BindEnv("github.api_url", "GITHUB_API_URL")
	v.BindEnv("github.days", "GITHUB_DAYS")
	v.BindEnv("github.max_retries", "GITHUB_MAX_RETRIES")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("chart.width", "CHART_WIDTH")
	v.BindEnv("chart.height", "CHART_HEIGHT")
	v.BindEnv("chart.aspect", "CHART_ASPECT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.token", "")
	v.SetDefault("github.token_file", "")
	v.SetDefault("github.api_url", "")
	v.SetDefault("github.days", 30)
	v.SetDefault("github.max_retries", 3)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetDefault("chart.width", 1200)
	v.SetDefault("chart.height", 800)
	v.SetDefault("chart.aspect", "")
}

func validateConfig(cfg *Config) error {
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return fmt.Errorf("chart.width and chart.height must be positive, got %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.GitHub.Days <= 0 {
		return fmt.Errorf("github.days must be positive, got %d", cfg.GitHub.Days)
	}
	if a := strings.TrimSpace(cfg.Chart.Aspect); a != "" {
		if _, _, err := ParseAspect(a); err != nil {
			return err
		}
	}
	return nil
}

// ParseAspect parses a "W:H" ratio such as "3:1" or "16:9".
func ParseAspect(s string) (w, h float64, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q, expected W:H", s)
	}
	w, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q: %w", s, err)
	}
	h, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid aspect ratio %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("aspect ratio %q must have positive terms", s)
	}
	return w, h, nil
}

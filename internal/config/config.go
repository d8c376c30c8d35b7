// Package config loads the command line settings using Viper
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raykavin/tradeplot/pkg/plot"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding file settings,
// chart.extra_rows becomes TRADEPLOT_CHART_EXTRA_ROWS
const EnvPrefix = "TRADEPLOT"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration
type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	Chart      ChartConfig      `mapstructure:"chart"`
	Indicators IndicatorsConfig `mapstructure:"indicators"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Server     ServerConfig     `mapstructure:"server"`
}

// ChartConfig holds the panel layout of the candles chart
type ChartConfig struct {
	Volume       bool   `mapstructure:"volume"`
	ExtraRows    int    `mapstructure:"extra_rows"`
	InventoryRow int    `mapstructure:"inventory_row"`
	TradePnLRow  int    `mapstructure:"trade_pnl_row"`
	Window       string `mapstructure:"window"`
	Timeframe    string `mapstructure:"timeframe"`
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
}

// IndicatorsConfig holds the overlays drawn on the price row
type IndicatorsConfig struct {
	Bollinger BollingerConfig `mapstructure:"bollinger"`
	EMA       EMAConfig       `mapstructure:"ema"`
}

type BollingerConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Length  int     `mapstructure:"length"`
	Std     float64 `mapstructure:"std"`
}

type EMAConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Length  int  `mapstructure:"length"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Token   string  `mapstructure:"token"`
	Users   []int64 `mapstructure:"users"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("chart.volume", true)
	v.SetDefault("chart.extra_rows", 2)
	v.SetDefault("chart.inventory_row", plot.DefaultInventoryRow)
	v.SetDefault("chart.trade_pnl_row", plot.DefaultTradePnLRow)
	v.SetDefault("chart.window", "")
	v.SetDefault("chart.timeframe", "")
	v.SetDefault("chart.width", 1600)
	v.SetDefault("chart.height", 800)

	v.SetDefault("indicators.bollinger.enabled", true)
	v.SetDefault("indicators.bollinger.length", plot.DefaultBollingerLength)
	v.SetDefault("indicators.bollinger.std", plot.DefaultBollingerStd)
	v.SetDefault("indicators.ema.enabled", true)
	v.SetDefault("indicators.ema.length", plot.DefaultEMALength)

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.users", []int64{})

	v.SetDefault("server.port", 8080)
}

// Load reads the configuration file at path, when given, over the defaults.
// Environment variables take precedence over both.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	if c.Chart.ExtraRows < 0 {
		return fmt.Errorf("%w: chart.extra_rows must not be negative", ErrInvalidConfig)
	}
	if c.Indicators.Bollinger.Enabled && c.Indicators.Bollinger.Length < 1 {
		return fmt.Errorf("%w: indicators.bollinger.length must be positive", ErrInvalidConfig)
	}
	if c.Indicators.EMA.Enabled && c.Indicators.EMA.Length < 1 {
		return fmt.Errorf("%w: indicators.ema.length must be positive", ErrInvalidConfig)
	}
	if c.Telegram.Enabled && (c.Telegram.Token == "" || len(c.Telegram.Users) == 0) {
		return fmt.Errorf("%w: telegram needs a token and at least one user", ErrInvalidConfig)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	}
	return nil
}

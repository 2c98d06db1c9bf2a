// Package config loads and validates scan configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/JakeFAU/careerscan/internal/crawler"
)

// EnvPrefix is prepended to every environment override, e.g. CAREERSCAN_SCAN_MODE.
const EnvPrefix = "CAREERSCAN"

// Config captures all scan configuration knobs loaded via Viper.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ScanConfig controls the worker pool and the report mode.
type ScanConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Mode        string `mapstructure:"mode"`
}

// HTTPConfig configures the per-request timeout.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// CrawlerConfig governs request identity and per-host pacing.
type CrawlerConfig struct {
	UserAgent    string  `mapstructure:"user_agent"`
	PerHostQPS   float64 `mapstructure:"per_host_qps"`
	PerHostBurst int     `mapstructure:"per_host_burst"`
}

// ReportConfig controls where and how results are written.
type ReportConfig struct {
	OutputPath   string `mapstructure:"output_path"`
	StatusFormat string `mapstructure:"status_format"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// MetricsConfig enables the Prometheus endpoint when ListenAddr is set.
type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"mode":         "scan.mode",
	"workers":      "scan.concurrency",
	"output":       "report.output_path",
	"metrics-addr": "metrics.listen_addr",
}

// Load builds a Config from defaults, an optional file, the environment and
// any flags in flags that were set explicitly. Precedence follows Viper:
// flag > env > file > default.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.concurrency", 8)
	v.SetDefault("scan.mode", string(crawler.ModeItemized))
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("crawler.user_agent", "Mozilla/5.0")
	v.SetDefault("crawler.per_host_qps", 0)
	v.SetDefault("crawler.per_host_burst", 1)
	v.SetDefault("report.output_path", "openings.csv")
	v.SetDefault("report.status_format", "lines")
	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("metrics.listen_addr", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Scan.Concurrency <= 0 {
		return fmt.Errorf("scan.concurrency must be > 0")
	}
	if _, ok := crawler.ParseMode(c.Scan.Mode); !ok {
		return fmt.Errorf("scan.mode must be %q or %q, got %q", crawler.ModeStatus, crawler.ModeItemized, c.Scan.Mode)
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if strings.TrimSpace(c.Crawler.UserAgent) == "" {
		return fmt.Errorf("crawler.user_agent must be set")
	}
	if c.Crawler.PerHostQPS < 0 {
		return fmt.Errorf("crawler.per_host_qps must be >= 0")
	}
	switch c.Report.StatusFormat {
	case "lines", "table":
	default:
		return fmt.Errorf("report.status_format must be \"lines\" or \"table\", got %q", c.Report.StatusFormat)
	}
	if strings.TrimSpace(c.Report.OutputPath) == "" {
		return fmt.Errorf("report.output_path must be set")
	}
	return nil
}

// Mode returns the parsed scan mode. Validate guarantees it is known.
func (c Config) Mode() crawler.Mode {
	m, _ := crawler.ParseMode(c.Scan.Mode)
	return m
}

// RequestTimeout converts the HTTP timeout into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

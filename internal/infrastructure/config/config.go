package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	Ingest    IngestConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string `validate:"required"`
	Version string
	Env     string `validate:"oneof=development test staging production"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error fatal"` // debug, info, warn, error
	Format string `validate:"oneof=json console"`
	Output string `validate:"required"` // stdout, stderr, or file path
}

// IngestConfig holds spreadsheet ingest settings
type IngestConfig struct {
	MaxFileSize     int64  `validate:"gt=0"` // bytes
	MaxIssues       int    `validate:"gt=0"` // warnings kept per file
	DefaultPlatform string // SHOPEE, TIKTOK or LAZADA; empty means the caller must choose
	LookupFile      string // code names and province aliases, optional
}

// TelemetryConfig holds OpenTelemetry settings
type TelemetryConfig struct {
	Enabled               bool
	CollectorEndpoint     string  `validate:"required_if=Enabled true"`
	SamplingRatio         float64 `validate:"gte=0,lte=1"`
	ServiceName           string  `validate:"required"`
	Insecure              bool
	MetricsExportInterval time.Duration
}

// Load reads configuration from file and environment.
// Priority (highest to lowest):
// 1. Environment variables with SALESNORM_ prefix (e.g., SALESNORM_INGEST_MAX_FILE_SIZE)
// 2. configFile when given, otherwise config.toml from ., ./config or /app
// 3. Built-in defaults
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SALESNORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Version: v.GetString("app.version"),
			Env:     v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Ingest: IngestConfig{
			MaxFileSize:     v.GetInt64("ingest.max_file_size"),
			MaxIssues:       v.GetInt("ingest.max_issues"),
			DefaultPlatform: v.GetString("ingest.default_platform"),
			LookupFile:      v.GetString("ingest.lookup_file"),
		},
		Telemetry: TelemetryConfig{
			Enabled:               v.GetBool("telemetry.enabled"),
			CollectorEndpoint:     v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:         v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:           v.GetString("telemetry.service_name"),
			Insecure:              v.GetBool("telemetry.insecure"),
			MetricsExportInterval: v.GetDuration("telemetry.metrics_export_interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "salesnorm"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Ingest.MaxFileSize == 0 {
		cfg.Ingest.MaxFileSize = 50 << 20 // 50MB
	}
	if cfg.Ingest.MaxIssues == 0 {
		cfg.Ingest.MaxIssues = 100
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "salesnorm"
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validate performs validation on the configuration
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed %q validation (value %v)", strings.ToLower(fe.Namespace()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}

	if c.Ingest.DefaultPlatform != "" {
		p, err := marketplace.ParsePlatform(c.Ingest.DefaultPlatform)
		if err != nil {
			return fmt.Errorf("ingest.default_platform: %w", err)
		}
		c.Ingest.DefaultPlatform = p.String()
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Log.Format != "json" {
			return fmt.Errorf("log.format must be json in production")
		}
		if c.Telemetry.Enabled && c.Telemetry.Insecure {
			return fmt.Errorf("telemetry.insecure must be false in production")
		}
	}

	return nil
}

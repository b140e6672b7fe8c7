package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables or config files.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	// StoreDriver selects the resource/alert store backend.
	StoreDriver string `mapstructure:"STORE_DRIVER" validate:"required,oneof=memory postgres"`
	DatabaseURL string `mapstructure:"DATABASE_URL" validate:"required_if=StoreDriver postgres,omitempty,uri"`

	// CommuneAPIURL is the base URL of the commune reverse-geocoding service.
	CommuneAPIURL string `mapstructure:"COMMUNE_API_URL" validate:"required,url"`
	// BoundaryFilesURL is the base URL the commune boundary .shp/.dbf pairs are served from.
	BoundaryFilesURL string `mapstructure:"BOUNDARY_FILES_URL" validate:"required,url"`
	// ShapefilesDir is the local directory the geocoder loads boundary shapefiles from.
	ShapefilesDir string `mapstructure:"SHAPEFILES_DIR"`

	// Reference point for the radius filter, WGS84 degrees. Defaults to Warsaw city centre.
	ReferenceLat float64 `mapstructure:"REFERENCE_LAT" validate:"gte=-90,lte=90"`
	ReferenceLon float64 `mapstructure:"REFERENCE_LON" validate:"gte=-180,lte=180"`

	// TelemetryScanCron is the cron spec for the alert telemetry monitor.
	TelemetryScanCron string `mapstructure:"TELEMETRY_SCAN_CRON" validate:"required"`

	GoMaxProcs int `mapstructure:"GOMAXPROCS" validate:"gte=0,lte=4096"`
}

var (
	cfg      *Config
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Load initializes configuration using Viper. It loads from .env if present,
// applies defaults, binds env vars, and validates the result.
func Load() (*Config, error) {
	// Load .env if present (non-fatal)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("COMMUNE_API_URL", "http://127.0.0.1:8000")
	v.SetDefault("BOUNDARY_FILES_URL", "http://127.0.0.1:8080/files")
	v.SetDefault("SHAPEFILES_DIR", "./files")
	v.SetDefault("REFERENCE_LAT", 52.2297)
	v.SetDefault("REFERENCE_LON", 21.0122)
	v.SetDefault("TELEMETRY_SCAN_CRON", "@every 5m")
	v.SetDefault("GOMAXPROCS", 0)

	// Optional config file
	_ = v.ReadInConfig()

	// Bind env without prefix for convenience
	keys := []string{
		"APP_ENV",
		"HTTP_ADDR",
		"SHUTDOWN_TIMEOUT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"STORE_DRIVER",
		"DATABASE_URL",
		"COMMUNE_API_URL",
		"BOUNDARY_FILES_URL",
		"SHAPEFILES_DIR",
		"REFERENCE_LAT",
		"REFERENCE_LON",
		"TELEMETRY_SCAN_CRON",
		"GOMAXPROCS",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	// Parse duration types that may come as string
	if s := v.GetString("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if c.GoMaxProcs > 0 {
		runtime.GOMAXPROCS(c.GoMaxProcs)
	}

	cfg = &c
	return cfg, nil
}

// MustLoad loads configuration or exits the process on failure.
func MustLoad() *Config {
	c, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// Get returns the loaded configuration. Panics if not loaded.
func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call config.Load or config.MustLoad first")
	}
	return cfg
}

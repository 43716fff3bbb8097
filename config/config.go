package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const VENUES_SEED_RESOURCE = "venues_seed.json"
const MATCHES_SEED_RESOURCE = "matches_seed.json"

// ENV_PREFIX prefixes environment overrides: XNOVA_REDIS_ADDR, XNOVA_CATALOG_SEED...
const ENV_PREFIX = "XNOVA"

type Config struct {
	Env     string        `mapstructure:"env"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Booking BookingConfig `mapstructure:"booking"`
	Payment PaymentConfig `mapstructure:"payment"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig selects the store. With Enabled=false the in-memory client is used.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CatalogConfig struct {
	SeedFile        string        `mapstructure:"seed_file"`
	MatchesSeedFile string        `mapstructure:"matches_seed_file"`
	Days            int           `mapstructure:"days"`
	Seed            int64         `mapstructure:"seed"`
	Probability     float64       `mapstructure:"probability"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Timezone        string        `mapstructure:"timezone"`
	PeakStart       string        `mapstructure:"peak_start"`
	PeakEnd         string        `mapstructure:"peak_end"`
	PeakMultiplier  float64       `mapstructure:"peak_multiplier"`
}

type BookingConfig struct {
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
	AutoSelectResource bool          `mapstructure:"auto_select_resource"`
}

// PaymentConfig points at a remote payment backend. An empty Endpoint keeps
// confirmation local.
type PaymentConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("catalog.seed_file", VENUES_SEED_RESOURCE)
	v.SetDefault("catalog.matches_seed_file", MATCHES_SEED_RESOURCE)
	v.SetDefault("catalog.days", 30)
	v.SetDefault("catalog.seed", 0)
	v.SetDefault("catalog.probability", 0.8)
	v.SetDefault("catalog.refresh_interval", 24*time.Hour)
	v.SetDefault("catalog.timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("catalog.peak_start", "17:00")
	v.SetDefault("catalog.peak_end", "21:00")
	v.SetDefault("catalog.peak_multiplier", 1.0)

	v.SetDefault("booking.session_ttl", 30*time.Minute)
	v.SetDefault("booking.auto_select_resource", true)

	v.SetDefault("payment.endpoint", "")
	v.SetDefault("payment.api_key", "")
	v.SetDefault("payment.timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration from path, or from ./config/config.yaml when path
// is empty, then applies XNOVA_* environment overrides. A missing default
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	} else {
		v.AddConfigPath(filepath.Join(BaseDir(), "config"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Catalog.Days <= 0 {
		return fmt.Errorf("catalog.days must be positive, got %d", c.Catalog.Days)
	}
	if c.Catalog.RefreshInterval <= 0 {
		return fmt.Errorf("catalog.refresh_interval must be positive, got %v", c.Catalog.RefreshInterval)
	}
	if c.Catalog.Probability < 0 || c.Catalog.Probability > 1 {
		return fmt.Errorf("catalog.probability must be within [0, 1], got %v", c.Catalog.Probability)
	}
	if c.Booking.SessionTTL <= 0 {
		return fmt.Errorf("booking.session_ttl must be positive, got %v", c.Booking.SessionTTL)
	}
	if _, err := time.LoadLocation(c.Catalog.Timezone); err != nil {
		return fmt.Errorf("catalog.timezone: %w", err)
	}
	return nil
}

// Location resolves the catalogue timezone. validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Catalog.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

// GetResourcePath resolves a resource file name; absolute paths pass through.
func GetResourcePath(resourceFile string) string {
	if filepath.IsAbs(resourceFile) {
		return resourceFile
	}
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

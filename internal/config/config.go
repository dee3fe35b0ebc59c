package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/username/tool-rental/internal/calendar"
	"github.com/username/tool-rental/pkg/dateutil"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. TOOL_RENTAL_CATALOG_SOURCE for catalog.source
const EnvPrefix = "TOOL_RENTAL"

// Config represents application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// CatalogConfig represents tool inventory configuration
type CatalogConfig struct {
	Source          string `mapstructure:"source"` // "builtin", "file" or "postgres"
	File            string `mapstructure:"file"`
	PostgresDSN     string `mapstructure:"postgres_dsn"`
	PostgresTable   string `mapstructure:"postgres_table"`
	FallbackBuiltin bool   `mapstructure:"fallback_builtin"` // Serve built-in tools missing from the configured source
}

// CalendarConfig represents rental calendar configuration
type CalendarConfig struct {
	Observance   string `mapstructure:"observance"`    // "actual" or "nearest-weekday"
	CenturyPivot int    `mapstructure:"century_pivot"` // Two-digit years below the pivot are 20YY
}

// ServerConfig represents HTTP service configuration
type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is not an
// error: defaults and environment variables are used instead.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.tool-rental")
		v.AddConfigPath("/etc/tool-rental")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.source", "builtin")
	v.SetDefault("catalog.file", "")
	v.SetDefault("catalog.postgres_dsn", "")
	v.SetDefault("catalog.postgres_table", "tools")
	v.SetDefault("catalog.fallback_builtin", false)
	v.SetDefault("calendar.observance", calendar.ObserveActualDate.String())
	v.SetDefault("calendar.century_pivot", dateutil.DefaultCenturyPivot)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// loadDotEnv loads variables from a .env file if it exists
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Catalog config
	switch c.Catalog.Source {
	case "builtin":
	case "file":
		if c.Catalog.File == "" {
			return fmt.Errorf("catalog.file is required for file source")
		}
	case "postgres":
		if c.Catalog.PostgresDSN == "" {
			return fmt.Errorf("catalog.postgres_dsn is required for postgres source")
		}
	default:
		return fmt.Errorf("catalog.source must be 'builtin', 'file' or 'postgres', got '%s'", c.Catalog.Source)
	}

	// Validate Calendar config
	if _, err := calendar.ParseObservance(c.Calendar.Observance); err != nil {
		return fmt.Errorf("calendar.observance: %w", err)
	}
	if c.Calendar.CenturyPivot < 0 || c.Calendar.CenturyPivot > 100 {
		return fmt.Errorf("calendar.century_pivot must be between 0 and 100")
	}

	// Validate Server config
	if c.Server.ShutdownTimeout != "" {
		if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
			return fmt.Errorf("server.shutdown_timeout: %w", err)
		}
	}

	return nil
}

// GetObservance returns the holiday observance policy
func (c *CalendarConfig) GetObservance() calendar.Observance {
	observance, err := calendar.ParseObservance(c.Observance)
	if err != nil {
		return calendar.ObserveActualDate
	}
	return observance
}

// GetShutdownTimeout returns graceful shutdown timeout duration
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == "" {
		return 10 * time.Second
	}
	duration, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Catalog.File = os.ExpandEnv(c.Catalog.File)
	c.Catalog.PostgresDSN = os.ExpandEnv(c.Catalog.PostgresDSN)
}

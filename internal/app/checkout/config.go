package checkout

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	checkoutapp "github.com/Apurer/go-gin-checkout/internal/domains/checkout/application"
	platformobservability "github.com/Apurer/go-gin-checkout/internal/platform/observability"
)

// EnvPrefix scopes environment overrides, e.g. CHECKOUT_STORAGE_DRIVER.
const EnvPrefix = "CHECKOUT"

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config carries the process settings.
type Config struct {
	Port             string
	Environment      string
	LogLevel         string
	Storage          StorageConfig
	SQLite           SQLiteConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Telemetry        TelemetryConfig
	DeliveryStrategy checkoutapp.DeliveryStrategy
}

type StorageConfig struct {
	Driver string
	Key    string
}

type SQLiteConfig struct {
	Path string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// TelemetryConfig selects the span exporter.
type TelemetryConfig struct {
	Exporter string
	Endpoint string
	Insecure bool
}

// LoadOptions points LoadConfig at explicit files. Zero values use the
// defaults: ".env" in the working directory and checkout.{toml,yaml} in "."
// or /etc/checkout.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// LoadConfig merges defaults, the optional config file, and the environment
// (after .env is loaded), then validates the result.
func LoadConfig(opts LoadOptions) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("checkout")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/checkout")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Port:        strings.TrimSpace(v.GetString("port")),
		Environment: strings.TrimSpace(v.GetString("environment")),
		LogLevel:    strings.TrimSpace(v.GetString("log.level")),
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
			Key:    strings.TrimSpace(v.GetString("storage.key")),
		},
		SQLite:   SQLiteConfig{Path: strings.TrimSpace(v.GetString("sqlite.path"))},
		Postgres: PostgresConfig{DSN: strings.TrimSpace(v.GetString("postgres.dsn"))},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("redis.addr")),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Telemetry: TelemetryConfig{
			Endpoint: strings.TrimSpace(v.GetString("otel.endpoint")),
			Insecure: v.GetBool("otel.insecure"),
		},
	}
	exporter, err := platformobservability.ParseExporter(v.GetString("otel.exporter"))
	if err != nil {
		return Config{}, err
	}
	cfg.Telemetry.Exporter = exporter
	strategy, err := checkoutapp.ParseDeliveryStrategy(strings.ToLower(strings.TrimSpace(v.GetString("checkout.delivery_strategy"))))
	if err != nil {
		return Config{}, err
	}
	cfg.DeliveryStrategy = strategy
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "local")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.key", "cart")
	v.SetDefault("sqlite.path", "checkout.db")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "checkout:")
	v.SetDefault("otel.exporter", platformobservability.ExporterOTLP)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.insecure", true)
	v.SetDefault("checkout.delivery_strategy", string(checkoutapp.StrategyPatch))
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %q", c.Port)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required for the postgres driver")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

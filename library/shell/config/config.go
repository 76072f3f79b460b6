package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"

	NotifierRedis = "redis"
	NotifierLog   = "log"
	NotifierNone  = "none"
)

var (
	ErrReadingConfigFailed = errors.New("reading config failed")
	ErrParsingConfigFailed = errors.New("parsing config failed")
	ErrInvalidConfig       = errors.New("invalid config")
)

// FileConfig is the YAML document read by Load.
type FileConfig struct {
	Store         string              `yaml:"store"`
	LogLevel      string              `yaml:"logLevel"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	SQLite        SQLiteConfig        `yaml:"sqlite"`
	Notifier      NotifierConfig      `yaml:"notifier"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type PostgresConfig struct {
	DSN        string `yaml:"dsn"`
	ReplicaDSN string `yaml:"replicaDSN"`
	Driver     string `yaml:"driver"`
	TableName  string `yaml:"tableName"`
	MaxConns   int32  `yaml:"maxConns"`
	MinConns   int32  `yaml:"minConns"`
}

type SQLiteConfig struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busyTimeout"`
	TableName   string        `yaml:"tableName"`
}

type NotifierConfig struct {
	Kind          string `yaml:"kind"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	Stream        string `yaml:"stream"`
	MaxLen        int64  `yaml:"maxLen"`
}

// ObservabilityConfig points the OTLP gRPC exporters at a collector. An empty endpoint disables that signal's exporter.
type ObservabilityConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ServiceName    string        `yaml:"serviceName"`
	ServiceVersion string        `yaml:"serviceVersion"`
	TraceEndpoint  string        `yaml:"traceEndpoint"`
	MetricEndpoint string        `yaml:"metricEndpoint"`
	Insecure       bool          `yaml:"insecure"`
	MetricInterval time.Duration `yaml:"metricInterval"`
}

// Default is used when no config file is given: an in-memory store that logs notifications.
func Default() FileConfig {
	return FileConfig{
		Store:    StoreMemory,
		LogLevel: "info",
		Postgres: PostgresConfig{
			Driver:   DriverPGX,
			MaxConns: 8,
			MinConns: 2,
		},
		SQLite: SQLiteConfig{
			Path:        "lms.db",
			BusyTimeout: 5 * time.Second,
		},
		Notifier: NotifierConfig{
			Kind: NotifierLog,
		},
		Observability: ObservabilityConfig{
			ServiceName:    "lmsctl",
			ServiceVersion: "dev",
			TraceEndpoint:  "localhost:4317",
			MetricEndpoint: "localhost:4317",
			Insecure:       true,
			MetricInterval: 15 * time.Second,
		},
	}
}

// Load reads the YAML file at path over Default and applies environment overrides.
// An empty path skips the file.
func Load(path string) (FileConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Join(ErrReadingConfigFailed, err)
		}

		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	applyEnv(&cfg)

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *FileConfig) {
	if v := os.Getenv("LMS_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("LMS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("LMS_POSTGRES_DRIVER"); v != "" {
		cfg.Postgres.Driver = v
	}
	if v := os.Getenv("LMS_SQLITE_PATH"); v != "" {
		cfg.SQLite.Path = v
	}
	if v := os.Getenv("LMS_NOTIFIER"); v != "" {
		cfg.Notifier.Kind = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Notifier.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Notifier.RedisPassword = v
	}
	if v := os.Getenv("LMS_OBSERVABILITY_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Observability.Enabled = enabled
		}
	}
	if v := os.Getenv("LMS_OTLP_ENDPOINT"); v != "" {
		cfg.Observability.TraceEndpoint = v
		cfg.Observability.MetricEndpoint = v
	}
}

func validateConfig(cfg FileConfig) error {
	switch cfg.Store {
	case StorePostgres:
		if strings.TrimSpace(cfg.Postgres.DSN) == "" {
			return fmt.Errorf("%w: postgres.dsn is required for store %q (set in config or DATABASE_URL)", ErrInvalidConfig, cfg.Store)
		}
		switch cfg.Postgres.Driver {
		case DriverPGX, DriverSQL, DriverSQLX:
		default:
			return fmt.Errorf("%w: unknown postgres.driver %q", ErrInvalidConfig, cfg.Postgres.Driver)
		}
		if cfg.Postgres.ReplicaDSN != "" && cfg.Postgres.Driver != DriverPGX {
			return fmt.Errorf("%w: postgres.replicaDSN requires driver %q", ErrInvalidConfig, DriverPGX)
		}
	case StoreSQLite:
		if strings.TrimSpace(cfg.SQLite.Path) == "" {
			return fmt.Errorf("%w: sqlite.path is required for store %q", ErrInvalidConfig, cfg.Store)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, cfg.Store)
	}

	switch cfg.Notifier.Kind {
	case NotifierRedis:
		if cfg.Notifier.RedisAddr == "" {
			return fmt.Errorf("%w: notifier.redisAddr is required for notifier %q (set in config or REDIS_ADDR)", ErrInvalidConfig, NotifierRedis)
		}
	case NotifierLog, NotifierNone:
	default:
		return fmt.Errorf("%w: unknown notifier.kind %q", ErrInvalidConfig, cfg.Notifier.Kind)
	}

	if cfg.Observability.Enabled && cfg.Observability.MetricEndpoint != "" && cfg.Observability.MetricInterval <= 0 {
		return fmt.Errorf("%w: observability.metricInterval must be positive", ErrInvalidConfig)
	}

	return nil
}

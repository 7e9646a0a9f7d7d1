package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Storage drivers selectable via database.driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Cache     CacheConfig     `json:"cache"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Seed      SeedConfig      `json:"seed"`
	Client    ClientConfig    `json:"client"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int `json:"port"`
}

// DatabaseConfig selects and configures the storage driver
type DatabaseConfig struct {
	Driver     string         `json:"driver"`
	SQLitePath string         `json:"sqlite_path"`
	Postgres   PostgresConfig `json:"postgres"`
}

// PostgresConfig represents PostgreSQL configuration
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

// CacheConfig represents Redis configuration
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Password   string `json:"password"`
	Database   int    `json:"database"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// SchedulerConfig configures the snapshot refresh job
type SchedulerConfig struct {
	RefreshCron string `json:"refresh_cron"`
}

// SeedConfig locates the CSV seed data
type SeedConfig struct {
	StocksDir    string `json:"stocks_dir"`
	ETFsDir      string `json:"etfs_dir"`
	HeadlinesDir string `json:"headlines_dir"`
}

// ClientConfig configures the browser front-end
type ClientConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	GridWorkers    int    `json:"grid_workers"`
	GridLimit      int    `json:"grid_limit"`
}

// Load loads configuration from file, applies environment overrides and
// fills defaults.
func Load() (*Config, error) {
	configFile := "configs/config.json"
	if envFile := os.Getenv("CONFIG_FILE"); envFile != "" {
		configFile = envFile
	}

	var config Config
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		config.Database.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		config.Database.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		config.Database.Postgres.Host = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		config.Database.Postgres.Password = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		config.Cache.Host = v
		config.Cache.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Cache.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/tickerboard.db"
	}
	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = 5432
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = "disable"
	}
	if c.Cache.Port == 0 {
		c.Cache.Port = 6379
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 3600
	}
	if c.Scheduler.RefreshCron == "" {
		c.Scheduler.RefreshCron = "0 0 * * * *" // hourly, matches the cache TTL
	}
	if c.Seed.StocksDir == "" {
		c.Seed.StocksDir = "data/stocks"
	}
	if c.Seed.ETFsDir == "" {
		c.Seed.ETFsDir = "data/etfs"
	}
	if c.Seed.HeadlinesDir == "" {
		c.Seed.HeadlinesDir = "data"
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = fmt.Sprintf("http://localhost:%d", c.Server.Port)
	}
	if c.Client.TimeoutSeconds == 0 {
		c.Client.TimeoutSeconds = 10
	}
	if c.Client.GridWorkers == 0 {
		c.Client.GridWorkers = 8
	}
	if c.Client.GridLimit == 0 {
		c.Client.GridLimit = 50
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q",
			DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if c.Database.Driver == DriverPostgres {
		if c.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if c.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

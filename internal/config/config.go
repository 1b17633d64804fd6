package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Location roles
const (
	RoleWarehouse = "warehouse"
	RoleOutlet    = "outlet"
)

// Store drivers
const (
	StorePostgres = "postgres"
	StoreWorkbook = "workbook"
	StoreMemory   = "memory"
)

// Duplicate item registration policies
const (
	DuplicateReject    = "reject"
	DuplicateOverwrite = "overwrite"
)

// Config is everything one location process needs.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	Location     string `env:"LOCATION" envDefault:"Warehouse"`
	LocationRole string `env:"LOCATION_ROLE" envDefault:"warehouse"`

	StoreDriver  string `env:"STORE_DRIVER" envDefault:"postgres"`
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string `env:"DB_PORT" envDefault:"5432"`
	DBUser       string `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName       string `env:"DB_NAME" envDefault:"postgres"`
	DBSslMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	WorkbookPath string `env:"WORKBOOK_PATH" envDefault:"./stock.xlsx"`

	RedisAddress  string        `env:"REDIS_ADDRESS"`
	QueueLockKey  string        `env:"QUEUE_LOCK_KEY" envDefault:"lock:order-queue"`
	QueueLockTTL  time.Duration `env:"QUEUE_LOCK_TTL" envDefault:"30s"`
	QueueLockWait time.Duration `env:"QUEUE_LOCK_WAIT" envDefault:"10s"`

	DuplicateItemPolicy string `env:"DUPLICATE_ITEM_POLICY" envDefault:"reject"`

	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"json"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

// Load reads configs/.env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Location == "" {
		return fmt.Errorf("LOCATION must not be empty")
	}
	switch c.LocationRole {
	case RoleWarehouse, RoleOutlet:
	default:
		return fmt.Errorf("LOCATION_ROLE must be %q or %q, got %q", RoleWarehouse, RoleOutlet, c.LocationRole)
	}
	switch c.StoreDriver {
	case StorePostgres, StoreWorkbook, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.DuplicateItemPolicy {
	case DuplicateReject, DuplicateOverwrite:
	default:
		return fmt.Errorf("DUPLICATE_ITEM_POLICY must be %q or %q", DuplicateReject, DuplicateOverwrite)
	}
	return nil
}

// DSN assembles the postgres connection string.
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSslMode
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied to every configuration variable.
const EnvPrefix = "STOREMGMT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREMGMT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREMGMT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREMGMT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type DBConfig struct {
	Driver string `envconfig:"STOREMGMT_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"STOREMGMT_DB_DSN" default:"file:store-management.db?mode=memory&cache=shared"`

	MaxOpenConns    int           `envconfig:"STOREMGMT_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"STOREMGMT_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"STOREMGMT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREMGMT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("%s_DB_DSN is required", EnvPrefix)
	}
	return nil
}

type CheckoutConfig struct {
	// DefaultCashbackPercent seeds new customers that do not carry an explicit
	// percent. Must stay within 0..100; Load rejects nothing here because the
	// customer constructor enforces the range.
	DefaultCashbackPercent int `envconfig:"STOREMGMT_DEFAULT_CASHBACK_PERCENT" default:"1"`
}

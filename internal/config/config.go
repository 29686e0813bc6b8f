package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// FixedCategories are seeded in this order, so their ids are 1..5 on a fresh store.
var FixedCategories = []string{
	"축제",
	"팝업 스토어",
	"할인 행사",
	"전시",
	"공연",
}

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBDSN    string

	SeedManifest string
	SeedOnStart  bool

	Timezone string
	Location *time.Location

	LogLevel  string
	LogFormat string
}

// Load reads configuration from, in order of precedence, the environment,
// a .env file and an optional config file named by CONFIG_FILE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("app_port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_dsn", "event_db.sqlite")
	v.SetDefault("seed_manifest", "seed/sources.yaml")
	v.SetDefault("seed_on_start", true)
	v.SetDefault("app_timezone", "Asia/Seoul")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("app_port"),
		GinMode:      v.GetString("gin_mode"),
		DBDriver:     strings.ToLower(v.GetString("db_driver")),
		DBDSN:        v.GetString("db_dsn"),
		SeedManifest: v.GetString("seed_manifest"),
		SeedOnStart:  v.GetBool("seed_on_start"),
		Timezone:     v.GetString("app_timezone"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q (want debug, release or test)", c.GinMode)
	}

	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN must not be empty")
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	c.Location = loc
	return nil
}

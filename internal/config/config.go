package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mauv0809/bgstats/internal/database"
)

const (
	envPrefix     = "BGSTATS_"
	envConfigFile = "BGSTATS_CONFIG"
)

// New returns the defaults.
func New() Config {
	return Config{
		LogLevel:  "info",
		Port:      "8080",
		ServerURL: "http://localhost:8080",
		Database: DatabaseConfig{
			Driver: database.DriverSQLite,
			Path:   "bgstats.db",
		},
	}
}

// Load builds a Config by layering defaults, an optional YAML file named by
// BGSTATS_CONFIG, and BGSTATS_ environment variables, in that order. A .env
// file in the working directory is loaded into the environment first.
// Nested keys use a double underscore: BGSTATS_DATABASE__DRIVER.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, invalid("failed to read %s: %v", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, invalid("failed to read environment: %v", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, invalid("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the store can be located.
func (c Config) Validate() error {
	if c.Port == "" {
		return invalid("port must not be empty")
	}
	if c.DefaultEnvironment < 0 {
		return invalid("default_environment must not be negative")
	}
	db := c.Database
	switch strings.ToLower(db.Driver) {
	case database.DriverSQLite, database.DriverSQLite3:
		if db.Path == "" {
			return invalid("database.path is required for %s", db.Driver)
		}
	case database.DriverLibSQL:
		if db.Path == "" && db.Turso.PrimaryURL == "" {
			return invalid("database.path or database.turso.primary_url is required for libsql")
		}
	case database.DriverPostgres:
		if db.DSN == "" {
			return invalid("database.dsn is required for postgres")
		}
	default:
		return invalid("unknown database driver %q", db.Driver)
	}
	if (c.Slack.Token == "") != (c.Slack.ChannelID == "") {
		return invalid("slack.token and slack.channel_id must be set together")
	}
	return nil
}

// DatabaseOptions maps the database section onto database.Options.
func (c Config) DatabaseOptions() database.Options {
	return database.Options{
		Driver:     c.Database.Driver,
		Path:       c.Database.Path,
		DSN:        c.Database.DSN,
		PrimaryURL: c.Database.Turso.PrimaryURL,
		AuthToken:  c.Database.Turso.AuthToken,
	}
}

// Level parses the configured level, falling back to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", c.LogLevel)
		return log.InfoLevel
	}
	return level
}

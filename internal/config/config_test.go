package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/bgstats/internal/config"
	"github.com/mauv0809/bgstats/internal/database"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"BGSTATS_CONFIG",
	"BGSTATS_PORT",
	"BGSTATS_LOG_LEVEL",
	"BGSTATS_DEFAULT_ENVIRONMENT",
	"BGSTATS_DATABASE__DRIVER",
	"BGSTATS_DATABASE__PATH",
	"BGSTATS_DATABASE__DSN",
	"BGSTATS_DATABASE__TURSO__PRIMARY_URL",
	"BGSTATS_SLACK__TOKEN",
	"BGSTATS_SLACK__CHANNEL_ID",
	"BGSTATS_PUBSUB__PROJECT_ID",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "bgstats.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then it uses a local sqlite database", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, "8080")
				convey.So(cfg.Database.Driver, convey.ShouldEqual, database.DriverSQLite)
				convey.So(cfg.Database.Path, convey.ShouldEqual, "bgstats.db")
				convey.So(cfg.DefaultEnvironment, convey.ShouldEqual, 0)
				convey.So(cfg.Level(), convey.ShouldEqual, log.InfoLevel)
			})
		})

		convey.Convey("When loading with environment variables", func() {
			_ = os.Setenv("BGSTATS_PORT", "9090")
			_ = os.Setenv("BGSTATS_LOG_LEVEL", "debug")
			_ = os.Setenv("BGSTATS_DEFAULT_ENVIRONMENT", "2")
			_ = os.Setenv("BGSTATS_DATABASE__DRIVER", "postgres")
			_ = os.Setenv("BGSTATS_DATABASE__DSN", "postgres://bg:bg@localhost/bg")
			_ = os.Setenv("BGSTATS_PUBSUB__PROJECT_ID", "bg-project")

			cfg, err := config.Load()

			convey.Convey("Then nested keys are mapped", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, "9090")
				convey.So(cfg.Level(), convey.ShouldEqual, log.DebugLevel)
				convey.So(cfg.DefaultEnvironment, convey.ShouldEqual, 2)
				convey.So(cfg.Database.Driver, convey.ShouldEqual, "postgres")
				convey.So(cfg.DatabaseOptions().DSN, convey.ShouldEqual, "postgres://bg:bg@localhost/bg")
				convey.So(cfg.PubSub.ProjectID, convey.ShouldEqual, "bg-project")
			})
		})

		convey.Convey("When loading a YAML file overridden by the environment", func() {
			path := writeConfigFile(t, `
port: "7070"
database:
  driver: libsql
  path: replica.db
  turso:
    primary_url: libsql://bg.turso.io
    auth_token: secret
slack:
  token: xoxb-1
  channel_id: C123
`)
			_ = os.Setenv("BGSTATS_CONFIG", path)
			_ = os.Setenv("BGSTATS_PORT", "6060")

			cfg, err := config.Load()

			convey.Convey("Then file values are used and env wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, "6060")
				convey.So(cfg.Database.Driver, convey.ShouldEqual, database.DriverLibSQL)
				opts := cfg.DatabaseOptions()
				convey.So(opts.PrimaryURL, convey.ShouldEqual, "libsql://bg.turso.io")
				convey.So(opts.AuthToken, convey.ShouldEqual, "secret")
				convey.So(opts.Path, convey.ShouldEqual, "replica.db")
				convey.So(cfg.Slack.ChannelID, convey.ShouldEqual, "C123")
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("BGSTATS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.Convey("Then it fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the driver is unknown", func() {
			_ = os.Setenv("BGSTATS_DATABASE__DRIVER", "oracle")

			_, err := config.Load()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When postgres has no DSN", func() {
			_ = os.Setenv("BGSTATS_DATABASE__DRIVER", "postgres")

			_, err := config.Load()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When only half of the slack settings are present", func() {
			_ = os.Setenv("BGSTATS_SLACK__TOKEN", "xoxb-1")

			_, err := config.Load()

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

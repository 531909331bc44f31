package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/steady/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STEADY_CONFIG", "")

	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults come back", func() {
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Timezone, ShouldEqual, "UTC")
			So(cfg.HistoryLimit, ShouldEqual, 20)
		})
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STEADY_CONFIG", "")
	t.Setenv("STEADY_LOG_LEVEL", "debug")
	t.Setenv("STEADY_TIMEZONE", "America/New_York")
	t.Setenv("STEADY_EVENT_LOG", "/tmp/steady-test/events.yaml")

	Convey("Given STEADY_* environment variables", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.Timezone, ShouldEqual, "America/New_York")
			So(cfg.EventLog, ShouldEqual, "/tmp/steady-test/events.yaml")
		})
	})
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "steady.yaml")
	body := []byte("log_level: warn\nhistory_limit: 5\nmetrics_file: /tmp/steady.prom\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STEADY_CONFIG", path)
	t.Setenv("STEADY_LOG_LEVEL", "error")

	Convey("Given a config file plus an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file beats defaults and env beats file", func() {
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "error")
			So(cfg.HistoryLimit, ShouldEqual, 5)
			So(cfg.MetricsFile, ShouldEqual, "/tmp/steady.prom")
		})
	})
}

func TestLoad_Validation(t *testing.T) {
	Convey("Given invalid settings", t, func() {
		Convey("When the history limit is not positive", func() {
			t.Setenv("STEADY_CONFIG", "")
			t.Setenv("STEADY_HISTORY_LIMIT", "0")

			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the timezone does not resolve", func() {
			t.Setenv("STEADY_CONFIG", "")
			t.Setenv("STEADY_HISTORY_LIMIT", "")
			t.Setenv("STEADY_TIMEZONE", "Nowhere/AtAll")

			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the config file is missing", func() {
			t.Setenv("STEADY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			t.Setenv("STEADY_TIMEZONE", "")

			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

package config_test

import (
	"testing"

	"github.com/okian/steady/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New()

		Convey("Then defaults are sensible", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Timezone, ShouldEqual, "UTC")
			So(cfg.HistoryLimit, ShouldEqual, 20)
			So(cfg.EventLog, ShouldNotBeEmpty)
			So(cfg.MetricsFile, ShouldBeEmpty)
		})

		Convey("Then the default timezone resolves", func() {
			loc, err := cfg.Location()
			So(err, ShouldBeNil)
			So(loc.String(), ShouldEqual, "UTC")
		})
	})
}

func TestLocation(t *testing.T) {
	Convey("Given a config with a named zone", t, func() {
		cfg := config.New()
		cfg.Timezone = "America/New_York"

		Convey("Then it resolves", func() {
			loc, err := cfg.Location()
			So(err, ShouldBeNil)
			So(loc.String(), ShouldEqual, "America/New_York")
		})
	})

	Convey("Given a config with a bogus zone", t, func() {
		cfg := config.New()
		cfg.Timezone = "Mars/Olympus_Mons"

		Convey("Then the invalid-config kind is reported", func() {
			_, err := cfg.Location()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid config")
		})
	})
}

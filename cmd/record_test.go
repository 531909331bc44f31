package main

import (
	"testing"
	"time"

	"github.com/okian/steady/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEventType(t *testing.T) {
	Convey("Given user-entered event types", t, func() {
		Convey("Then the four known types parse", func() {
			for _, s := range []string{"success", "failure", "exercise", "sleep"} {
				et, err := parseEventType(s)
				So(err, ShouldBeNil)
				So(string(et), ShouldEqual, s)
			}
		})

		Convey("Then anything else is rejected", func() {
			_, err := parseEventType("nap")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseAt(t *testing.T) {
	Convey("Given user-entered timestamps", t, func() {
		loc := time.UTC

		Convey("Then now and empty mean the present", func() {
			for _, s := range []string{"now", ""} {
				ts, err := parseAt(s, loc)
				So(err, ShouldBeNil)
				So(time.Since(ts), ShouldBeLessThan, time.Minute)
			}
		})

		Convey("Then RFC3339 parses", func() {
			ts, err := parseAt("2024-03-01T21:30:00Z", loc)
			So(err, ShouldBeNil)
			So(ts.Equal(time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("Then date with minutes parses in the given zone", func() {
			zone := time.FixedZone("UTC+2", 2*3600)
			ts, err := parseAt("2024-03-01 21:30", zone)
			So(err, ShouldBeNil)
			So(ts.Equal(time.Date(2024, 3, 1, 21, 30, 0, 0, zone)), ShouldBeTrue)
		})

		Convey("Then a bare date lands at local midnight", func() {
			ts, err := parseAt("2024-03-01", loc)
			So(err, ShouldBeNil)
			So(ts.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("Then garbage is rejected", func() {
			_, err := parseAt("yesterday-ish", loc)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValidateQuality(t *testing.T) {
	Convey("Given sleep quality input", t, func() {
		Convey("Then in-range values pass", func() {
			q, err := validateQuality(model.EventSleep, 85, true)
			So(err, ShouldBeNil)
			So(q, ShouldEqual, 85)
		})

		Convey("Then the bounds are inclusive", func() {
			_, err := validateQuality(model.EventSleep, 0, true)
			So(err, ShouldBeNil)
			_, err = validateQuality(model.EventSleep, 100, true)
			So(err, ShouldBeNil)
		})

		Convey("Then out-of-range values are rejected before an event exists", func() {
			_, err := validateQuality(model.EventSleep, 101, true)
			So(err, ShouldNotBeNil)
			_, err = validateQuality(model.EventSleep, -1, true)
			So(err, ShouldNotBeNil)
		})

		Convey("Then sleep without a quality is rejected", func() {
			_, err := validateQuality(model.EventSleep, -1, false)
			So(err, ShouldNotBeNil)
		})

		Convey("Then quality on a non-sleep event is rejected", func() {
			_, err := validateQuality(model.EventExercise, 50, true)
			So(err, ShouldNotBeNil)
		})

		Convey("Then non-sleep events default to zero", func() {
			q, err := validateQuality(model.EventFailure, -1, false)
			So(err, ShouldBeNil)
			So(q, ShouldEqual, 0)
		})
	})
}

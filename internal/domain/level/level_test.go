package level_test

import (
	"testing"

	"github.com/okian/steady/internal/domain/level"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given the six severity bands", t, func() {
		Convey("Then every floor maps to its own band", func() {
			So(level.Classify(0), ShouldEqual, level.SevereAddiction)
			So(level.Classify(20), ShouldEqual, level.HeavyAddiction)
			So(level.Classify(40), ShouldEqual, level.ModerateAddiction)
			So(level.Classify(60), ShouldEqual, level.MildAddiction)
			So(level.Classify(80), ShouldEqual, level.NearRecovered)
			So(level.Classify(95), ShouldEqual, level.Recovered)
		})

		Convey("Then values just under a floor stay in the band below", func() {
			So(level.Classify(19.99), ShouldEqual, level.SevereAddiction)
			So(level.Classify(39.99), ShouldEqual, level.HeavyAddiction)
			So(level.Classify(59.99), ShouldEqual, level.ModerateAddiction)
			So(level.Classify(79.99), ShouldEqual, level.MildAddiction)
			So(level.Classify(94.99), ShouldEqual, level.NearRecovered)
		})

		Convey("Then the top of the range is included", func() {
			So(level.Classify(100), ShouldEqual, level.Recovered)
		})

		Convey("Then the empty-history score is mild addiction", func() {
			So(level.Classify(60.00), ShouldEqual, level.MildAddiction)
		})
	})
}

func TestLabel(t *testing.T) {
	Convey("Given each level", t, func() {
		Convey("Then labels are human readable", func() {
			So(level.SevereAddiction.Label(), ShouldEqual, "severe addiction")
			So(level.HeavyAddiction.Label(), ShouldEqual, "heavy addiction")
			So(level.ModerateAddiction.Label(), ShouldEqual, "moderate addiction")
			So(level.MildAddiction.Label(), ShouldEqual, "mild addiction")
			So(level.NearRecovered.Label(), ShouldEqual, "near-recovered")
			So(level.Recovered.Label(), ShouldEqual, "recovered")
		})

		Convey("Then an out-of-range level is unknown", func() {
			So(level.Level(0).Label(), ShouldEqual, "unknown")
		})
	})
}

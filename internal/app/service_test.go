package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/okian/steady/internal/adapters/repository"
	app "github.com/okian/steady/internal/app"
	"github.com/okian/steady/internal/domain/model"
	"github.com/okian/steady/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var noon = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(ctx context.Context, t *testing.T) *app.Service {
	t.Helper()
	if err := logger.Init(io.Discard); err != nil {
		t.Fatalf("init logger: %v", err)
	}
	svc, err := app.New(ctx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestService_Record(t *testing.T) {
	Convey("Given a fresh service", t, func() {
		ctx := context.Background()
		svc := newService(ctx, t)

		Convey("Then the empty summary is the base score at mild addiction", func() {
			sum := svc.Summary(ctx)
			So(sum.Score, ShouldAlmostEqual, 60.00)
			So(sum.Level, ShouldEqual, 4)
			So(sum.Label, ShouldEqual, "mild addiction")
			So(sum.Events, ShouldEqual, 0)
		})

		Convey("When a failure is recorded", func() {
			ev, err := svc.Record(ctx, model.EventFailure, noon, 0)
			So(err, ShouldBeNil)

			Convey("Then the delta is attached immediately", func() {
				So(ev.ID, ShouldEqual, 1)
				So(ev.ScoreDelta, ShouldAlmostEqual, -0.10)
				So(svc.Summary(ctx).Score, ShouldAlmostEqual, 59.90)
			})
		})

		Convey("When an unknown type is recorded", func() {
			_, err := svc.Record(ctx, model.EventType("nap"), noon, 0)
			So(errors.Is(err, app.ErrUnknownEventType), ShouldBeTrue)
		})

		Convey("When a backdated event changes an earlier prefix", func() {
			_, err := svc.Record(ctx, model.EventFailure, noon, 0)
			So(err, ShouldBeNil)

			// Same calendar day, one hour before the relapse.
			ex, err := svc.Record(ctx, model.EventExercise, noon.Add(-time.Hour), 0)
			So(err, ShouldBeNil)

			Convey("Then the whole history is replayed", func() {
				So(ex.ScoreDelta, ShouldAlmostEqual, 0.10)

				relapse, getErr := svc.Get(ctx, 1)
				So(getErr, ShouldBeNil)
				So(relapse.ScoreDelta, ShouldAlmostEqual, -0.20)
				So(svc.Summary(ctx).Score, ShouldAlmostEqual, 59.90)
			})
		})
	})
}

func TestService_EditAndRemove(t *testing.T) {
	Convey("Given a service with an exercise and a relapse on one day", t, func() {
		ctx := context.Background()
		svc := newService(ctx, t)

		ex, err := svc.Record(ctx, model.EventExercise, noon, 0)
		So(err, ShouldBeNil)
		fail, err := svc.Record(ctx, model.EventFailure, noon.Add(time.Second), 0)
		So(err, ShouldBeNil)

		So(ex.ScoreDelta, ShouldAlmostEqual, 0.10)
		So(fail.ScoreDelta, ShouldAlmostEqual, -0.20)

		Convey("When the exercise becomes a bad night's sleep", func() {
			edited := ex
			edited.Type = model.EventSleep
			edited.Value = 40

			edited, err := svc.Edit(ctx, edited)
			So(err, ShouldBeNil)

			Convey("Then every delta is re-derived", func() {
				So(edited.ScoreDelta, ShouldAlmostEqual, -0.20)

				relapse, getErr := svc.Get(ctx, fail.ID)
				So(getErr, ShouldBeNil)
				So(relapse.ScoreDelta, ShouldAlmostEqual, -0.10)
				So(svc.Summary(ctx).Score, ShouldAlmostEqual, 59.70)
			})
		})

		Convey("When the relapse is removed", func() {
			So(svc.Remove(ctx, fail.ID), ShouldBeNil)

			Convey("Then the exercise gain is restored", func() {
				restored, getErr := svc.Get(ctx, ex.ID)
				So(getErr, ShouldBeNil)
				So(restored.ScoreDelta, ShouldAlmostEqual, 0.10)
				So(svc.Summary(ctx).Score, ShouldAlmostEqual, 60.10)
				So(svc.Summary(ctx).Events, ShouldEqual, 1)
			})
		})

		Convey("When an unknown id is removed", func() {
			err := svc.Remove(ctx, 99)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Consistency(t *testing.T) {
	Convey("Given a service with a mixed week of events", t, func() {
		ctx := context.Background()
		svc := newService(ctx, t)

		for d := 0; d < 7; d++ {
			day := noon.Add(time.Duration(d) * 24 * time.Hour)
			_, err := svc.Record(ctx, model.EventSleep, day, 50+d*10)
			So(err, ShouldBeNil)
			if d%2 == 0 {
				_, err = svc.Record(ctx, model.EventExercise, day.Add(time.Hour), 0)
				So(err, ShouldBeNil)
			}
			if d == 3 {
				_, err = svc.Record(ctx, model.EventFailure, day.Add(2*time.Hour), 0)
				So(err, ShouldBeNil)
			}
		}

		sumDeltas := func() float64 {
			total := 60.0
			for _, e := range svc.Events(ctx) {
				total += e.ScoreDelta
			}
			return total
		}

		Convey("Then stored deltas sum to the aggregate score", func() {
			So(svc.Summary(ctx).Score, ShouldAlmostEqual, sumDeltas())
		})

		Convey("When an explicit recompute runs twice", func() {
			So(svc.Recompute(ctx), ShouldBeNil)
			first := svc.Events(ctx)
			So(svc.Recompute(ctx), ShouldBeNil)
			second := svc.Events(ctx)

			Convey("Then deltas are unchanged", func() {
				So(len(second), ShouldEqual, len(first))
				for i := range first {
					So(second[i].ScoreDelta, ShouldAlmostEqual, first[i].ScoreDelta)
				}
				So(svc.Summary(ctx).Score, ShouldAlmostEqual, sumDeltas())
			})
		})

		Convey("When the recent history is read", func() {
			entries, err := svc.History(ctx, 3)
			So(err, ShouldBeNil)

			Convey("Then it is bounded and oldest first", func() {
				So(len(entries), ShouldEqual, 3)
				So(entries[0].Timestamp.Before(entries[1].Timestamp), ShouldBeTrue)
				So(entries[1].Timestamp.Before(entries[2].Timestamp), ShouldBeTrue)
			})
		})

		Convey("When the history limit falls back to the default", func() {
			entries, err := svc.History(ctx, 0)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, svc.Summary(ctx).Events)
		})
	})
}

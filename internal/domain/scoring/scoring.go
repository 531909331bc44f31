// Package scoring folds an ordered activity history into a bounded
// recovery score and per-event score deltas.
//
// All three entry points (ComputeTotal, ComputeDelta, RecomputeAll) are
// built on one internal fold step, so the sum of deltas over a correctly
// ordered history, plus the base score and final clamp, always equals the
// total of the same history.
package scoring

import (
	"context"
	"math"
	"time"

	"github.com/okian/steady/internal/domain/model"
)

// Scoring constants. Every formula is a total function over its domain;
// out-of-range input is clamped, never rejected.
const (
	// BaseScore is the score of an empty history.
	BaseScore = 60.0

	// MinScore and MaxScore bound the aggregate score.
	MinScore = 0.0
	MaxScore = 100.0

	successHourlyGain = 0.01 // per whole hour since the last motivation event
	successGainCap    = 0.5  // per-event cap on success gains

	failureBasePenalty  = 0.10                // single relapse with an empty window
	failureGrowthFactor = 1.5                 // exponential growth per windowed relapse
	failureCountWindow  = 30 * 24 * time.Hour // trailing window for the relapse count
	failureRecencySpan  = 7 * 24 * time.Hour  // a prior relapse this close doubles down
	failureRecencyScale = 24.0                // hours; decay constant of the recency multiplier
	failurePenaltyCap   = 3.0                 // per-event cap on relapse penalties

	exerciseGain = 0.1 // flat gain per exercise session

	sleepBaseline = 60.0 // quality score that is worth exactly zero
	sleepScale    = 0.01 // score points per quality point above/below baseline
	sleepDeltaCap = 0.5  // sleep deltas are clamped to [-cap, +cap]
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLocation pins the calendar-day grouping to the given timezone.
// Same-day offset cancellation compares (year, day-of-year) in this
// location; the default is UTC so results are stable across hosts.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// Engine is the deterministic scoring engine. It is pure and carries no
// mutable state across calls, so a single Engine is safe for concurrent
// use as long as each call gets its own event snapshot.
type Engine struct {
	loc *time.Location
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		loc: time.UTC, // deterministic default
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// dayKey identifies one calendar day in the engine's location.
type dayKey struct {
	year int
	yday int
}

func (e *Engine) day(ts time.Time) dayKey {
	local := ts.In(e.loc)
	return dayKey{year: local.Year(), yday: local.YearDay()}
}

// foldState is the accumulator carried through a left-to-right fold over
// a chronologically ordered history.
type foldState struct {
	lastMotivation time.Time // most recent success or failure
	hasMotivation  bool
	failureTimes   []time.Time          // ascending, all failures seen so far
	failureDays    map[dayKey]struct{}  // calendar days containing a failure
	dayOffsets     map[dayKey]float64   // would-be positive exercise/sleep deltas per day
}

func newFoldState() *foldState {
	return &foldState{
		failureDays: make(map[dayKey]struct{}),
		dayOffsets:  make(map[dayKey]float64),
	}
}

// step advances the fold by one event and returns the event's delta.
func (e *Engine) step(st *foldState, ev model.ActivityEvent) float64 {
	switch ev.Type {
	case model.EventSuccess:
		return e.stepSuccess(st, ev)
	case model.EventFailure:
		return e.stepFailure(st, ev)
	case model.EventExercise:
		return e.stepExercise(st, ev)
	case model.EventSleep:
		return e.stepSleep(st, ev)
	}
	// Unknown types contribute nothing; upstream validation rejects them
	// before an event is constructed.
	return 0
}

func (e *Engine) stepSuccess(st *foldState, ev model.ActivityEvent) float64 {
	delta := successHourlyGain
	if st.hasMotivation {
		hours := float64(ev.TS.Sub(st.lastMotivation) / time.Hour)
		delta = math.Min(hours*successHourlyGain, successGainCap)
	}
	st.lastMotivation = ev.TS
	st.hasMotivation = true
	return delta
}

func (e *Engine) stepFailure(st *foldState, ev model.ActivityEvent) float64 {
	day := e.day(ev.TS)

	st.failureTimes = append(st.failureTimes, ev.TS)

	// Count relapses inside the trailing window, this one included.
	windowCount := 0
	for _, ts := range st.failureTimes {
		if ev.TS.Sub(ts) <= failureCountWindow {
			windowCount++
		}
	}

	penalty := failureBasePenalty
	if windowCount > 1 {
		penalty = failureBasePenalty * math.Pow(failureGrowthFactor, float64(windowCount-1))
	}

	// A relapse shortly after the previous one is penalized harder.
	if n := len(st.failureTimes); n > 1 {
		since := ev.TS.Sub(st.failureTimes[n-2])
		if since <= failureRecencySpan {
			penalty *= 1 + math.Exp(-since.Hours()/failureRecencyScale)
		}
	}

	// Claw back every positive exercise/sleep delta banked on this
	// calendar day, whether or not it was actually applied.
	penalty += st.dayOffsets[day]

	penalty = math.Min(penalty, failurePenaltyCap)

	st.failureDays[day] = struct{}{}
	st.lastMotivation = ev.TS
	st.hasMotivation = true
	return -penalty
}

func (e *Engine) stepExercise(st *foldState, ev model.ActivityEvent) float64 {
	day := e.day(ev.TS)
	st.dayOffsets[day] += exerciseGain
	if _, failed := st.failureDays[day]; failed {
		return 0 // recorded, but contributes nothing on a relapse day
	}
	return exerciseGain
}

func (e *Engine) stepSleep(st *foldState, ev model.ActivityEvent) float64 {
	day := e.day(ev.TS)
	raw := (float64(ev.Value) - sleepBaseline) * sleepScale
	raw = math.Max(-sleepDeltaCap, math.Min(sleepDeltaCap, raw))

	if raw <= 0 {
		// Sleep deductions are never waived.
		return raw
	}

	st.dayOffsets[day] += raw
	if _, failed := st.failureDays[day]; failed {
		return 0
	}
	return raw
}

// ComputeTotal folds the whole history into the aggregate score. Events
// are sorted into processing order first; the result is clamped to
// [MinScore, MaxScore]. An empty history scores BaseScore.
func (e *Engine) ComputeTotal(ctx context.Context, events []model.ActivityEvent) float64 {
	ordered := make([]model.ActivityEvent, len(events))
	copy(ordered, events)
	model.SortChronological(ordered)

	st := newFoldState()
	score := BaseScore
	for _, ev := range ordered {
		score += e.step(st, ev)
	}
	return math.Max(MinScore, math.Min(MaxScore, score))
}

// ComputeDelta returns the contribution one event would make given only
// the strictly earlier part of prior (timestamp asc, id asc) as context.
func (e *Engine) ComputeDelta(ctx context.Context, ev model.ActivityEvent, prior []model.ActivityEvent) float64 {
	earlier := make([]model.ActivityEvent, 0, len(prior))
	for _, p := range prior {
		if p.Before(ev) {
			earlier = append(earlier, p)
		}
	}
	model.SortChronological(earlier)

	st := newFoldState()
	for _, p := range earlier {
		e.step(st, p)
	}
	return e.step(st, ev)
}

// RecomputeAll re-derives every event's delta from scratch and returns
// the refreshed history in processing order. The input slice is not
// modified. Recomputing an unchanged history is idempotent.
func (e *Engine) RecomputeAll(ctx context.Context, events []model.ActivityEvent) []model.ActivityEvent {
	ordered := make([]model.ActivityEvent, len(events))
	copy(ordered, events)
	model.SortChronological(ordered)

	st := newFoldState()
	for i := range ordered {
		ordered[i].ScoreDelta = e.step(st, ordered[i])
	}
	return ordered
}

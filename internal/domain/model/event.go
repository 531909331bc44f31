// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"time"
)

// EventType identifies the kind of activity a user recorded.
type EventType string

// Known event types.
const (
	EventSuccess  EventType = "success"  // abstinence success check-in
	EventFailure  EventType = "failure"  // relapse
	EventExercise EventType = "exercise" // exercise session
	EventSleep    EventType = "sleep"    // sleep quality entry
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventSuccess, EventFailure, EventExercise, EventSleep:
		return true
	}
	return false
}

// ActivityEvent is a single timestamped user-recorded action. Events are
// immutable once created; an edit is a replace-by-id in the store.
type ActivityEvent struct {
	ID         int64     // unique, monotonically assigned by the store
	Type       EventType // success, failure, exercise or sleep
	TS         time.Time // the event's effective moment
	Value      int       // sleep quality score in [0,100]; unused otherwise
	ScoreDelta float64   // derived signed contribution, kept for audit
}

// Before reports whether e orders strictly before other in the engine's
// processing order: ascending timestamp, ties broken by ascending id.
func (e ActivityEvent) Before(other ActivityEvent) bool {
	if !e.TS.Equal(other.TS) {
		return e.TS.Before(other.TS)
	}
	return e.ID < other.ID
}

// SortChronological sorts events in place into the engine's processing
// order (timestamp asc, id asc).
func SortChronological(events []ActivityEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Before(events[j])
	})
}

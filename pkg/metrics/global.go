package metrics

import "github.com/prometheus/client_golang/prometheus"

// Package-level helpers delegating to the global manager, mirroring how
// call sites use metrics throughout the codebase.

// RecordEventRecorded counts one recorded activity event by type.
func RecordEventRecorded(eventType string) { globalManager.RecordEventRecorded(eventType) }

// RecordMutation counts one history mutation (append, update, delete, replay).
func RecordMutation(op string) { globalManager.RecordMutation(op) }

// RecordRecomputePass counts one full delta recompute pass.
func RecordRecomputePass() { globalManager.RecordRecomputePass() }

// ObserveRecomputeDuration records the duration of a recompute pass.
func ObserveRecomputeDuration(ms float64) { globalManager.ObserveRecomputeDuration(ms) }

// RecordStoreUpdateLatency records an event store mutation latency.
func RecordStoreUpdateLatency(ms float64) { globalManager.RecordStoreUpdateLatency(ms) }

// RecordStoreQueryLatency records an event store read latency.
func RecordStoreQueryLatency(ms float64) { globalManager.RecordStoreQueryLatency(ms) }

// UpdateEventsStored sets the stored-event gauge.
func UpdateEventsStored(n int) { globalManager.UpdateEventsStored(n) }

// UpdateScore sets the current aggregate score gauge.
func UpdateScore(score float64) { globalManager.UpdateScore(score) }

// UpdateLevel sets the current severity level gauge.
func UpdateLevel(level int) { globalManager.UpdateLevel(level) }

// Registry exposes the global registry, e.g. for tests.
func Registry() *prometheus.Registry { return globalManager.Registry() }

// WriteToFile exports the global registry in textfile collector format.
// Suited to short-lived processes with no scrape endpoint.
func WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, globalManager.Registry())
}

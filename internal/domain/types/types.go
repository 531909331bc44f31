// Package types contains common types used across the application
package types

import "time"

// Summary is the headline view handed to the presentation layer.
type Summary struct {
	Score  float64 `json:"score"`
	Level  int     `json:"level"`
	Label  string  `json:"label"`
	Events int     `json:"events"`
}

// HistoryEntry is one event in the recent-history view, carrying the
// stored delta so display needs no recomputation.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value,omitempty"`
	Delta     float64   `json:"delta"`
}

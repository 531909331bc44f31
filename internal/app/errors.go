package service

import "errors"

// Sentinel kinds for service-boundary validation. Store-layer errors
// (unknown id, duplicate id) pass through wrapped and remain matchable
// with errors.Is against the repository sentinels.
var (
	ErrUnknownEventType = errors.New("unknown event type")
)

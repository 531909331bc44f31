package eventlog

import "errors"

// Sentinel kinds for event-log errors.
var (
	ErrLoad   = errors.New("read event log failed")
	ErrDecode = errors.New("decode event log failed")
	ErrEncode = errors.New("encode event log failed")
	ErrSave   = errors.New("write event log failed")
)

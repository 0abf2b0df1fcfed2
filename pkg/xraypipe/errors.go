package xraypipe

import "errors"

// Sentinel errors for degenerate per-event geometry. Per-event errors are
// logged and the event skipped; sibling events in the cycle are unaffected.
var (
	// ErrDetectorCoincident indicates an event positioned exactly at the
	// detector point, which has no defined solid angle.
	ErrDetectorCoincident = errors.New("event position coincides with detector")
)

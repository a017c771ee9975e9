package monitor

// FeedStatus summarizes the health of the last refresh cycle.
type FeedStatus int

const (
	// StatusWaiting means no sample has been applied yet.
	StatusWaiting FeedStatus = iota
	// StatusOK means the last refresh applied a complete sample.
	StatusOK
	// StatusPartial means the last refresh applied a sample but skipped
	// malformed records.
	StatusPartial
	// StatusStale means the last refresh failed and the dashboard is
	// showing the previous sample.
	StatusStale
)

// String returns a human-readable status string.
func (s FeedStatus) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusOK:
		return "ok"
	case StatusPartial:
		return "partial"
	case StatusStale:
		return "stale"
	default:
		return "unknown"
	}
}

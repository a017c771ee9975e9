package epc

import (
	"sort"
	"time"
)

// SortColumn selects the enclave table column used for ordering.
type SortColumn int

const (
	SortByID SortColumn = iota
	SortByPID
	SortByAdmit
	SortByResident
	SortBySwapped
	SortByUptime
)

// String returns a human-readable label for the sort column.
func (c SortColumn) String() string {
	switch c {
	case SortByID:
		return "id"
	case SortByPID:
		return "pid"
	case SortByAdmit:
		return "admit"
	case SortByResident:
		return "resident"
	case SortBySwapped:
		return "swapped"
	case SortByUptime:
		return "uptime"
	default:
		return "id"
	}
}

// SortDirection is the ordering direction for the selected column.
type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
)

// Toggle flips the direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// String returns a human-readable label for the direction.
func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// trackedEnclave is the tracker's private per-id state.
type trackedEnclave struct {
	firstSeen time.Time
	lastIndex uint64
}

// Delta reports enclave births and deaths between two consecutive samples.
// Both slices are in ascending id order.
type Delta struct {
	New  []uint64
	Gone []uint64
}

// EnclaveTracker maintains the set of known enclaves across ticks. The feed
// is an authoritative snapshot, so a single missing sample means the enclave
// is gone; there is no grace period. A dropped id never reappears with carried-over
// state: if the id shows up again it is treated as a fresh enclave.
type EnclaveTracker struct {
	tracked map[uint64]*trackedEnclave
	index   uint64
}

// NewEnclaveTracker creates an empty tracker.
func NewEnclaveTracker() *EnclaveTracker {
	return &EnclaveTracker{tracked: make(map[uint64]*trackedEnclave)}
}

// Update reconciles the tracker against the ids present in the current
// sample. New ids are recorded with first_seen = at; ids absent from the
// sample are dropped immediately.
func (t *EnclaveTracker) Update(ids []uint64, at time.Time) Delta {
	t.index++

	var delta Delta
	for _, id := range ids {
		entry, ok := t.tracked[id]
		if !ok {
			t.tracked[id] = &trackedEnclave{firstSeen: at, lastIndex: t.index}
			delta.New = append(delta.New, id)
			continue
		}
		entry.lastIndex = t.index
	}

	for id, entry := range t.tracked {
		if entry.lastIndex != t.index {
			delete(t.tracked, id)
			delta.Gone = append(delta.Gone, id)
		}
	}

	sortIDs(delta.New)
	sortIDs(delta.Gone)
	return delta
}

// Uptime returns how long the enclave has been tracked, measured from the
// sample in which it first appeared. This is independent of any uptime field
// the feed itself may report.
func (t *EnclaveTracker) Uptime(id uint64, at time.Time) (time.Duration, bool) {
	entry, ok := t.tracked[id]
	if !ok {
		return 0, false
	}
	return at.Sub(entry.firstSeen), true
}

// Len returns the number of currently tracked enclaves.
func (t *EnclaveTracker) Len() int {
	return len(t.tracked)
}

// SortedView returns the records ordered by the requested column and
// direction. Equal values tie-break by ascending enclave id so the table
// stays visually stable across ticks.
func (t *EnclaveTracker) SortedView(records []EnclaveRecord, col SortColumn, dir SortDirection, at time.Time) []EnclaveRecord {
	view := make([]EnclaveRecord, len(records))
	copy(view, records)

	key := t.sortKey(col, at)

	sort.SliceStable(view, func(i, j int) bool {
		ki, kj := key(view[i]), key(view[j])
		if ki == kj {
			return view[i].ID < view[j].ID
		}
		if dir == Ascending {
			return ki < kj
		}
		return ki > kj
	})

	return view
}

// sortKey maps a record to the numeric value for the selected column.
func (t *EnclaveTracker) sortKey(col SortColumn, at time.Time) func(EnclaveRecord) uint64 {
	switch col {
	case SortByPID:
		return func(r EnclaveRecord) uint64 { return uint64(r.PID) }
	case SortByAdmit:
		return func(r EnclaveRecord) uint64 { return r.AdmitPages }
	case SortByResident:
		return func(r EnclaveRecord) uint64 { return r.ResidentBytes }
	case SortBySwapped:
		return func(r EnclaveRecord) uint64 { return r.SwappedBytes }
	case SortByUptime:
		return func(r EnclaveRecord) uint64 {
			uptime, ok := t.Uptime(r.ID, at)
			if !ok || uptime < 0 {
				return 0
			}
			return uint64(uptime)
		}
	default:
		return func(r EnclaveRecord) uint64 { return r.ID }
	}
}

func sortIDs(ids []uint64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// ParseSortColumn maps a configuration token to a sort column.
func ParseSortColumn(token string) (SortColumn, bool) {
	switch token {
	case "id":
		return SortByID, true
	case "pid":
		return SortByPID, true
	case "admit":
		return SortByAdmit, true
	case "resident":
		return SortByResident, true
	case "swapped":
		return SortBySwapped, true
	case "uptime":
		return SortByUptime, true
	default:
		return SortByID, false
	}
}

// ParseSortDirection maps a configuration token to a direction.
func ParseSortDirection(token string) (SortDirection, bool) {
	switch token {
	case "asc":
		return Ascending, true
	case "desc":
		return Descending, true
	default:
		return Descending, false
	}
}

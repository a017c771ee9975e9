package epc

import "time"

// PageSize is the EPC page granularity. Counter fields in the feeds count
// pages; byte fields are already in bytes.
const PageSize = 4096

// GlobalStats contains the subsystem-wide counters from the global feed.
// All counter fields are cumulative and monotonically non-decreasing except
// across a subsystem reset.
type GlobalStats struct {
	// Page lifecycle operation counts (cumulative pages).
	AdmitPages     uint64
	EvictPages     uint64
	WritebackPages uint64
	LoadPages      uint64

	// EPC memory accounting (bytes).
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64

	// Version-array pages currently in use.
	VAPages uint64

	// Enclave lifetime totals (cumulative).
	EnclavesCreated  uint64
	EnclavesReleased uint64
}

// LiveEnclaves returns the number of currently live enclaves derived from
// the created/released totals.
func (g GlobalStats) LiveEnclaves() uint64 {
	if g.EnclavesReleased > g.EnclavesCreated {
		return 0
	}
	return g.EnclavesCreated - g.EnclavesReleased
}

// SwapBytes estimates the memory currently evicted to regular memory:
// pages written back minus pages loaded back, in bytes.
func (g GlobalStats) SwapBytes() uint64 {
	if g.LoadPages > g.WritebackPages {
		return 0
	}
	return (g.WritebackPages - g.LoadPages) * PageSize
}

// State is the lifecycle state of an enclave as reported by the feed.
type State int

const (
	StateUnknown State = iota
	StateLoading
	StateInitialized
	StateRunning
	StateTerminating
)

// String returns the feed token for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// ParseState maps a feed token to a State. Unknown tokens map to
// StateUnknown with ok=false; the record itself is still usable.
func ParseState(token string) (State, bool) {
	switch token {
	case "loading":
		return StateLoading, true
	case "initialized":
		return StateInitialized, true
	case "running":
		return StateRunning, true
	case "terminating":
		return StateTerminating, true
	default:
		return StateUnknown, false
	}
}

// EnclaveRecord describes one live enclave as captured from the enclave feed.
// ID is globally unique and immutable for the enclave's lifetime; an enclave
// absent from the feed is torn down.
type EnclaveRecord struct {
	ID      uint64
	PID     int
	Command string

	// AdmitPages is the cumulative page admission count for this enclave.
	AdmitPages uint64

	// ResidentBytes is memory currently backed by physical EPC.
	ResidentBytes uint64

	// SwappedBytes is memory evicted to regular memory.
	SwappedBytes uint64

	// VirtBytes is the enclave's reserved virtual range.
	VirtBytes uint64

	// VAPages is the number of version-array pages allocated for this enclave.
	VAPages uint64

	State State
}

// Sample is one full capture of both feeds at a point in time.
type Sample struct {
	Timestamp time.Time
	Stats     GlobalStats
	Enclaves  map[uint64]EnclaveRecord
}

// NewSample builds a Sample from parsed records. Enclave ids are unique
// within a parse, so the slice maps cleanly onto the id-keyed map.
func NewSample(at time.Time, stats GlobalStats, records []EnclaveRecord) Sample {
	enclaves := make(map[uint64]EnclaveRecord, len(records))
	for _, rec := range records {
		enclaves[rec.ID] = rec
	}
	return Sample{Timestamp: at, Stats: stats, Enclaves: enclaves}
}

// IDs returns the set of enclave ids present in the sample.
func (s Sample) IDs() []uint64 {
	ids := make([]uint64, 0, len(s.Enclaves))
	for id := range s.Enclaves {
		ids = append(ids, id)
	}
	return ids
}

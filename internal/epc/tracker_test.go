package epc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnclaveTracker_NewAndGone(t *testing.T) {
	tracker := NewEnclaveTracker()
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	delta := tracker.Update([]uint64{1, 2, 3}, t0)
	assert.Equal(t, []uint64{1, 2, 3}, delta.New)
	assert.Empty(t, delta.Gone)
	assert.Equal(t, 3, tracker.Len())

	// enclave 2 disappears, enclave 4 is born
	delta = tracker.Update([]uint64{1, 3, 4}, t0.Add(time.Second))
	assert.Equal(t, []uint64{4}, delta.New)
	assert.Equal(t, []uint64{2}, delta.Gone)
	assert.Equal(t, 3, tracker.Len())
}

func TestEnclaveTracker_GoneImmediately(t *testing.T) {
	tracker := NewEnclaveTracker()
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tracker.Update([]uint64{10}, t0)

	// a single missing sample means dead, no grace period
	delta := tracker.Update(nil, t0.Add(time.Second))
	assert.Equal(t, []uint64{10}, delta.Gone)

	_, ok := tracker.Uptime(10, t0.Add(2*time.Second))
	assert.False(t, ok, "dropped enclave must not linger in tracker state")
}

func TestEnclaveTracker_ReappearanceIsFresh(t *testing.T) {
	tracker := NewEnclaveTracker()
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tracker.Update([]uint64{5}, t0)
	tracker.Update(nil, t0.Add(time.Second))

	// same id comes back two ticks later: it is a new enclave, uptime
	// restarts from the reappearance
	delta := tracker.Update([]uint64{5}, t0.Add(2*time.Second))
	assert.Equal(t, []uint64{5}, delta.New)

	uptime, ok := tracker.Uptime(5, t0.Add(7*time.Second))
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, uptime)
}

func TestEnclaveTracker_Uptime(t *testing.T) {
	tracker := NewEnclaveTracker()
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tracker.Update([]uint64{1}, t0)
	tracker.Update([]uint64{1, 2}, t0.Add(2*time.Second))

	uptime, ok := tracker.Uptime(1, t0.Add(5*time.Second))
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, uptime)

	uptime, ok = tracker.Uptime(2, t0.Add(5*time.Second))
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, uptime)

	_, ok = tracker.Uptime(99, t0)
	assert.False(t, ok)
}

func TestEnclaveTracker_SortedView(t *testing.T) {
	tracker := NewEnclaveTracker()
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	records := []EnclaveRecord{
		{ID: 1, PID: 300, ResidentBytes: 4096, SwappedBytes: 100},
		{ID: 2, PID: 100, ResidentBytes: 8192, SwappedBytes: 100},
		{ID: 3, PID: 200, ResidentBytes: 2048, SwappedBytes: 300},
	}
	ids := make([]uint64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	tracker.Update(ids, t0)

	tests := []struct {
		name string
		col  SortColumn
		dir  SortDirection
		want []uint64
	}{
		{name: "resident descending", col: SortByResident, dir: Descending, want: []uint64{2, 1, 3}},
		{name: "resident ascending", col: SortByResident, dir: Ascending, want: []uint64{3, 1, 2}},
		{name: "pid ascending", col: SortByPID, dir: Ascending, want: []uint64{2, 3, 1}},
		{name: "id descending", col: SortByID, dir: Descending, want: []uint64{3, 2, 1}},
		// swapped has a tie between ids 1 and 2: ascending id breaks it
		{name: "swapped descending tie-break", col: SortBySwapped, dir: Descending, want: []uint64{3, 1, 2}},
		{name: "swapped ascending tie-break", col: SortBySwapped, dir: Ascending, want: []uint64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tracker.SortedView(records, tt.col, tt.dir, t0)
			got := make([]uint64, len(view))
			for i, r := range view {
				got[i] = r.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}

	// input slice is not mutated
	assert.Equal(t, uint64(1), records[0].ID)
}

func TestEnclaveTracker_SortedViewByUptime(t *testing.T) {
	tracker := NewEnclaveTracker()
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tracker.Update([]uint64{1}, t0)
	tracker.Update([]uint64{1, 2}, t0.Add(time.Second))
	tracker.Update([]uint64{1, 2, 3}, t0.Add(2*time.Second))

	records := []EnclaveRecord{{ID: 2}, {ID: 3}, {ID: 1}}

	view := tracker.SortedView(records, SortByUptime, Descending, t0.Add(3*time.Second))
	got := make([]uint64, len(view))
	for i, r := range view {
		got[i] = r.ID
	}
	assert.Equal(t, []uint64{1, 2, 3}, got)
}

func TestSortColumnString(t *testing.T) {
	tests := []struct {
		col    SortColumn
		expect string
	}{
		{SortByID, "id"},
		{SortByPID, "pid"},
		{SortByAdmit, "admit"},
		{SortByResident, "resident"},
		{SortBySwapped, "swapped"},
		{SortByUptime, "uptime"},
		{SortColumn(99), "id"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.col.String())
		})
	}
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, Ascending, Descending.Toggle())
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, "asc", Ascending.String())
	assert.Equal(t, "desc", Descending.String())
}

func TestNewSample(t *testing.T) {
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	records := []EnclaveRecord{
		{ID: 1, PID: 100},
		{ID: 2, PID: 200},
	}

	sample := NewSample(t0, GlobalStats{AdmitPages: 5}, records)

	assert.Equal(t, t0, sample.Timestamp)
	assert.Equal(t, uint64(5), sample.Stats.AdmitPages)
	require.Len(t, sample.Enclaves, 2)
	assert.Equal(t, 100, sample.Enclaves[1].PID)
	assert.ElementsMatch(t, []uint64{1, 2}, sample.IDs())
}

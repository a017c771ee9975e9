package monitor

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveops/epctop/internal/epc"
	apperrors "github.com/enclaveops/epctop/internal/errors"
	"github.com/enclaveops/epctop/internal/feed"
	feedtesting "github.com/enclaveops/epctop/internal/feed/testing"
	"github.com/enclaveops/epctop/internal/logger"
)

func applyMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

func sampleAt(at time.Time, stats epc.GlobalStats, records []epc.EnclaveRecord) sampleMsg {
	return sampleMsg{at: at, stats: stats, records: records}
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(feedtesting.NewStaticReader(nil, nil), Options{})
	assert.Equal(t, time.Second, m.interval)
	assert.Equal(t, DefaultFailureThreshold, m.failureThreshold)
	assert.Equal(t, StatusWaiting, m.status)
	assert.NotNil(t, m.engine)
	assert.NotNil(t, m.tracker)
	assert.NotNil(t, m.history)
}

func TestModel_Init(t *testing.T) {
	m := testModel(t)
	assert.NotNil(t, m.Init(), "Init should trigger the first sample")
}

func TestModel_ApplySample_Success(t *testing.T) {
	m := testModel(t)
	now := time.Now()
	stats := epc.GlobalStats{AdmitPages: 100, TotalBytes: 1000, UsedBytes: 400}

	m, cmd := applyMsg(t, m, sampleAt(now, stats, nil))

	assert.NotNil(t, cmd, "next tick should be scheduled")
	assert.Equal(t, StatusOK, m.status)
	assert.True(t, m.hasStats)
	assert.Equal(t, stats, m.stats)
	assert.False(t, m.hasRate, "first sample has no rate baseline")
}

func TestModel_ApplySample_RatesAfterBaseline(t *testing.T) {
	m := testModel(t)
	t0 := time.Now()

	m, _ = applyMsg(t, m, sampleAt(t0, epc.GlobalStats{AdmitPages: 100}, nil))
	m, _ = applyMsg(t, m, sampleAt(t0.Add(time.Second), epc.GlobalStats{AdmitPages: 150}, nil))

	assert.True(t, m.hasRate)
	assert.InDelta(t, 50.0, m.rate.AdmitPerSec, 0.001)
}

func TestModel_ApplySample_Partial(t *testing.T) {
	m := testModel(t)
	msg := sampleAt(time.Now(), epc.GlobalStats{}, nil)
	msg.skipped = 2

	m, _ = applyMsg(t, m, msg)
	assert.Equal(t, StatusPartial, m.status)
	assert.Equal(t, 2, m.skipped)
}

func TestModel_ApplySample_TracksEnclaves(t *testing.T) {
	m := testModel(t)
	t0 := time.Now()
	records := []epc.EnclaveRecord{
		{ID: 1, PID: 100, ResidentBytes: 500},
		{ID: 2, PID: 200, ResidentBytes: 900},
	}

	m, _ = applyMsg(t, m, sampleAt(t0, epc.GlobalStats{}, records))
	assert.Equal(t, 2, m.tracker.Len())

	// Enclave 1 disappears and is dropped on the very next sample.
	m, _ = applyMsg(t, m, sampleAt(t0.Add(time.Second), epc.GlobalStats{}, records[1:]))
	assert.Equal(t, 1, m.tracker.Len())

	sorted := m.SortedRecords(t0.Add(time.Second))
	require.Len(t, sorted, 1)
	assert.Equal(t, uint64(2), sorted[0].ID)
}

func TestModel_ApplySample_ReadErrorKeepsLastSample(t *testing.T) {
	m := testModel(t)
	t0 := time.Now()
	stats := epc.GlobalStats{AdmitPages: 100, TotalBytes: 1000}

	m, _ = applyMsg(t, m, sampleAt(t0, stats, nil))

	msg := sampleMsg{at: t0.Add(time.Second), statsErr: fmt.Errorf("read stats: permission denied")}
	msg.enclavesErr = fmt.Errorf("read enclaves: permission denied")
	m, cmd := applyMsg(t, m, msg)

	assert.NotNil(t, cmd, "dashboard keeps ticking on transient errors")
	assert.Equal(t, StatusStale, m.status)
	assert.Equal(t, stats, m.stats, "previous sample retained")
	assert.Zero(t, m.unavailStreak, "permission errors do not count toward the missing-feed streak")
	assert.NoError(t, m.Err())
}

func TestModel_ApplySample_MissingFeedIsFatalAfterThreshold(t *testing.T) {
	m := NewModel(feedtesting.NewStaticReader(nil, nil), Options{
		FailureThreshold: 3,
		Logger:           logger.Noop(),
	})
	unavail := fmt.Errorf("open /proc/sgx_stats: %w", feed.ErrFeedUnavailable)

	for i := 0; i < 2; i++ {
		m, _ = applyMsg(t, m, sampleMsg{at: time.Now(), statsErr: unavail})
		assert.NoError(t, m.Err())
		assert.False(t, m.quitting)
	}

	m, cmd := applyMsg(t, m, sampleMsg{at: time.Now(), statsErr: unavail})
	require.Error(t, m.Err())
	assert.True(t, apperrors.IsCode(m.Err(), apperrors.ErrFeed))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd(), "fatal failure should quit the program")
}

func TestModel_ApplySample_SuccessResetsStreak(t *testing.T) {
	m := testModel(t)
	unavail := fmt.Errorf("open: %w", feed.ErrFeedUnavailable)

	m, _ = applyMsg(t, m, sampleMsg{at: time.Now(), statsErr: unavail})
	m, _ = applyMsg(t, m, sampleMsg{at: time.Now(), statsErr: unavail})
	m, _ = applyMsg(t, m, sampleAt(time.Now(), epc.GlobalStats{}, nil))
	m, _ = applyMsg(t, m, sampleMsg{at: time.Now(), statsErr: unavail})

	assert.NoError(t, m.Err(), "streak restarts after a successful read")
}

func TestModel_WindowSize(t *testing.T) {
	m := testModel(t)
	m, _ = applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestModel_View_Quitting(t *testing.T) {
	m := testModel(t)
	m.quitting = true
	assert.Empty(t, m.View())
}

func TestModel_SampleCmd_ReadsFeeds(t *testing.T) {
	global := []byte("admit=100 evict=5 writeback=2 load=1 total_bytes=1000 free_bytes=600")
	enclaves := []byte("id=1 pid=42 admit=10 resident_bytes=500\n")
	m := NewModel(feedtesting.NewStaticReader(global, enclaves), Options{Logger: logger.Noop()})

	msg := m.sampleCmd()()
	sm, ok := msg.(sampleMsg)
	require.True(t, ok)
	require.NoError(t, sm.statsErr)
	require.NoError(t, sm.enclavesErr)

	assert.Equal(t, uint64(100), sm.stats.AdmitPages)
	assert.Equal(t, uint64(400), sm.stats.UsedBytes, "used derived from total-free")
	require.Len(t, sm.records, 1)
	assert.Equal(t, uint64(1), sm.records[0].ID)
	assert.Equal(t, 42, sm.records[0].PID)
}

func TestModel_SampleCmd_PropagatesErrors(t *testing.T) {
	reader := &feedtesting.StaticReader{Frames: []feedtesting.Frame{
		{GlobalErr: feed.ErrFeedUnavailable, EnclavesErr: feed.ErrFeedUnavailable},
	}}
	m := NewModel(reader, Options{Logger: logger.Noop()})

	sm, ok := m.sampleCmd()().(sampleMsg)
	require.True(t, ok)
	assert.True(t, feed.IsUnavailable(sm.statsErr))
	assert.True(t, feed.IsUnavailable(sm.enclavesErr))
}

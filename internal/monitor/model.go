package monitor

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/enclaveops/epctop/internal/epc"
	apperrors "github.com/enclaveops/epctop/internal/errors"
	"github.com/enclaveops/epctop/internal/feed"
	"github.com/enclaveops/epctop/internal/logger"
)

// DefaultFailureThreshold is how many consecutive ticks the global feed may
// be missing before the dashboard gives up.
const DefaultFailureThreshold = 3

// Options configures a dashboard model.
type Options struct {
	Interval         time.Duration // Refresh cadence (default 1s)
	FailureThreshold int           // Consecutive missing-feed ticks before exit (default 3)
	SortColumn       epc.SortColumn
	SortDirection    epc.SortDirection
	HistorySize      int
	Resolver         *feed.CommandResolver // nil disables /proc command lookup
	Logger           logger.Logger
}

// Model is the Bubble Tea model for the EPC dashboard.
type Model struct {
	reader   feed.Reader
	resolver *feed.CommandResolver
	engine   *epc.RateEngine
	tracker  *epc.EnclaveTracker
	history  *History
	log      logger.Logger

	interval         time.Duration
	failureThreshold int

	// Last known good data. A failed refresh leaves these in place so the
	// dashboard keeps showing something useful.
	stats    epc.GlobalStats
	hasStats bool
	records  []epc.EnclaveRecord
	rate     epc.RateSample
	hasRate  bool
	skipped  int

	status        FeedStatus
	statusDetail  string // last read/parse error, for the status line
	unavailStreak int

	sortColumn    epc.SortColumn
	sortDirection epc.SortDirection

	width      int
	height     int
	lastUpdate time.Time
	showHelp   bool
	quitting   bool
	fatalErr   error
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// sampleMsg carries one refresh cycle's worth of feed data.
// A nil statsErr means stats is valid; a nil enclavesErr means records and
// skipped are valid. The two feeds fail independently.
type sampleMsg struct {
	at          time.Time
	stats       epc.GlobalStats
	statsErr    error
	records     []epc.EnclaveRecord
	skipped     int
	enclavesErr error
}

// NewModel creates a new dashboard model reading from the given feed.
func NewModel(reader feed.Reader, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = DefaultFailureThreshold
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[monitor]")
	}

	return Model{
		reader:           reader,
		resolver:         opts.Resolver,
		engine:           epc.NewRateEngine(),
		tracker:          epc.NewEnclaveTracker(),
		history:          NewHistory(opts.HistorySize),
		log:              opts.Logger,
		interval:         opts.Interval,
		failureThreshold: opts.FailureThreshold,
		sortColumn:       opts.SortColumn,
		sortDirection:    opts.SortDirection,
		status:           StatusWaiting,
	}
}

// Init triggers the first sample immediately; the tick cadence starts once
// that sample has been applied.
func (m Model) Init() tea.Cmd {
	return m.sampleCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, m.sampleCmd()

	case sampleMsg:
		cmd := m.applySample(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// Err returns the fatal error that ended the session, if any.
// The CLI maps this to a non-zero exit code after the program finishes.
func (m Model) Err() error {
	return m.fatalErr
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sampleCmd reads and parses both feeds off the UI goroutine.
func (m Model) sampleCmd() tea.Cmd {
	reader := m.reader
	resolver := m.resolver
	timeout := m.interval

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		msg := sampleMsg{at: time.Now()}

		raw, err := reader.ReadGlobal(ctx)
		if err != nil {
			msg.statsErr = err
		} else {
			stats, perr := epc.ParseGlobalStats(raw)
			if perr != nil {
				msg.statsErr = perr
			} else {
				msg.stats = stats
			}
		}

		rawEnc, err := reader.ReadEnclaves(ctx)
		if err != nil {
			msg.enclavesErr = err
		} else {
			msg.records, msg.skipped = epc.ParseEnclaves(rawEnc)
			if resolver != nil {
				for i := range msg.records {
					if msg.records[i].Command == "" {
						msg.records[i].Command = resolver.Lookup(msg.records[i].PID)
					}
				}
			}
		}

		return msg
	}
}

// applySample folds one refresh cycle into the model and schedules the next
// tick. Returns tea.Quit when the feed has been missing for too long.
func (m *Model) applySample(msg sampleMsg) tea.Cmd {
	m.lastUpdate = msg.at

	if msg.statsErr != nil {
		if cmd := m.applyStatsFailure(msg.statsErr); cmd != nil {
			return cmd
		}
	} else {
		m.unavailStreak = 0
		m.stats = msg.stats
		m.hasStats = true
		m.rate, m.hasRate = m.engine.Observe(msg.stats, msg.at)
		m.history.Record(m.rate, m.hasRate, msg.stats)
	}

	if msg.enclavesErr != nil {
		m.log.Warn("enclave feed read failed: %v", msg.enclavesErr)
	} else {
		m.records = msg.records
		m.skipped = msg.skipped
		delta := m.tracker.Update(recordIDs(msg.records), msg.at)
		if len(delta.New) > 0 || len(delta.Gone) > 0 {
			m.log.Debug("enclaves: %d new, %d gone", len(delta.New), len(delta.Gone))
		}
		if len(delta.Gone) > 0 && m.resolver != nil {
			// PIDs can be recycled; drop cached command names once any
			// enclave disappears.
			m.resolver.Flush()
		}
	}

	m.status = m.statusAfter(msg)

	return m.tickCmd()
}

// applyStatsFailure handles a failed global feed read. Returns a non-nil
// command only when the failure is fatal.
func (m *Model) applyStatsFailure(err error) tea.Cmd {
	m.statusDetail = err.Error()
	m.log.Warn("stats feed read failed: %v", err)

	if !feed.IsUnavailable(err) {
		// Transient or permission error. Keep showing the last sample.
		m.unavailStreak = 0
		if errors.Is(err, os.ErrPermission) {
			m.statusDetail = err.Error() + "; try running as root"
		}
		return nil
	}

	m.unavailStreak++
	if m.unavailStreak < m.failureThreshold {
		return nil
	}

	m.fatalErr = apperrors.WrapWithCode(err, apperrors.ErrFeed,
		"EPC stats feed is not available",
		"Check that the SGX driver is loaded and exposes its /proc interface")
	m.quitting = true
	return tea.Quit
}

// statusAfter computes the feed status for the cycle that msg completed.
func (m *Model) statusAfter(msg sampleMsg) FeedStatus {
	switch {
	case msg.statsErr == nil && msg.enclavesErr == nil:
		if msg.skipped > 0 {
			return StatusPartial
		}
		return StatusOK
	case m.hasStats:
		return StatusStale
	default:
		return StatusWaiting
	}
}

// SortedRecords returns the current enclave records in display order.
func (m Model) SortedRecords(at time.Time) []epc.EnclaveRecord {
	return m.tracker.SortedView(m.records, m.sortColumn, m.sortDirection, at)
}

func recordIDs(records []epc.EnclaveRecord) []uint64 {
	ids := make([]uint64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

// Package monitor implements the real-time TUI dashboard for EPC usage.
//
// The dashboard displays global EPC counters, per-interval event rates, and
// a live table of enclaves, refreshed on a fixed tick from the kernel feeds.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: Holds dashboard state (last sample, rates, sort order, layout)
//   - Update: Processes messages (keystrokes, tick events, new samples)
//   - View: Renders the current state to a string for display
//
// # Key Components
//
//	Model    - The Bubble Tea model containing all dashboard state
//	History  - Ring buffer storage for historical values (sparkline graphs)
//
// # Message Flow
//
// The dashboard operates on a tick-based refresh cycle:
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. sampleCmd() reads and parses both feeds off the UI goroutine
//  3. sampleMsg arrives with the parsed sample, updating rates and the
//     enclave set
//  4. View() re-renders the dashboard with new data
//  5. The next tick is scheduled only after the sample has been applied,
//     so a slow feed read delays the cadence instead of stacking reads
//
// Keyboard input arrives as tea.KeyMsg out of band with the tick cycle and
// takes effect on the next render.
//
// # Failure Handling
//
// A failed feed read keeps the previous sample on screen and marks the
// status line stale. When the global feed is missing (driver not loaded, or
// removed mid-session) for a configured number of consecutive ticks, the
// dashboard exits with an error carrying a non-zero exit code.
package monitor

package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/enclaveops/epctop/internal/epc"
)

// Key bindings as constants for consistency.
const (
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"

	KeySortID       = "e"
	KeySortPID      = "p"
	KeySortAdmit    = "a"
	KeySortResident = "r"
	KeySortSwapped  = "w"
	KeySortUptime   = "u"

	KeyToggleDir  = "d"
	KeyToggleHelp = "?"
	KeyCollapse   = "esc"
)

// HandleKeyMsg processes keyboard input and returns updated model state and
// command. Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeySortID:
		m.setSortColumn(epc.SortByID)
		return true, nil

	case KeySortPID:
		m.setSortColumn(epc.SortByPID)
		return true, nil

	case KeySortAdmit:
		m.setSortColumn(epc.SortByAdmit)
		return true, nil

	case KeySortResident:
		m.setSortColumn(epc.SortByResident)
		return true, nil

	case KeySortSwapped:
		m.setSortColumn(epc.SortBySwapped)
		return true, nil

	case KeySortUptime:
		m.setSortColumn(epc.SortByUptime)
		return true, nil

	case KeyToggleDir:
		m.sortDirection = m.sortDirection.Toggle()
		return true, nil
	}

	return false, nil
}

// setSortColumn switches the active sort column. Selecting the column that
// is already active flips the direction instead, matching top conventions.
func (m *Model) setSortColumn(col epc.SortColumn) {
	if m.sortColumn == col {
		m.sortDirection = m.sortDirection.Toggle()
		return
	}
	m.sortColumn = col
}

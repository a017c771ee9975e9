package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/enclaveops/epctop/internal/epc"
	feedtesting "github.com/enclaveops/epctop/internal/feed/testing"
	"github.com/enclaveops/epctop/internal/logger"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func testModel(t *testing.T) Model {
	t.Helper()
	reader := feedtesting.NewStaticReader(nil, nil)
	return NewModel(reader, Options{
		SortColumn:    epc.SortByResident,
		SortDirection: epc.Descending,
		Logger:        logger.Noop(),
	})
}

func TestHandleKeyMsg_Quit(t *testing.T) {
	for _, key := range []string{KeyQuit, KeyQuitAlt} {
		t.Run(key, func(t *testing.T) {
			m := testModel(t)
			handled, cmd := m.HandleKeyMsg(keyMsg(key))
			assert.True(t, handled)
			assert.NotNil(t, cmd, "quit should produce a command")
			assert.True(t, m.quitting)
		})
	}
}

func TestHandleKeyMsg_SortKeys(t *testing.T) {
	tests := []struct {
		key  string
		want epc.SortColumn
	}{
		{KeySortID, epc.SortByID},
		{KeySortPID, epc.SortByPID},
		{KeySortAdmit, epc.SortByAdmit},
		{KeySortSwapped, epc.SortBySwapped},
		{KeySortUptime, epc.SortByUptime},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := testModel(t)
			handled, _ := m.HandleKeyMsg(keyMsg(tt.key))
			assert.True(t, handled)
			assert.Equal(t, tt.want, m.sortColumn)
			assert.Equal(t, epc.Descending, m.sortDirection, "direction unchanged on column switch")
		})
	}
}

func TestHandleKeyMsg_SameColumnTogglesDirection(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, epc.SortByResident, m.sortColumn)

	m.HandleKeyMsg(keyMsg(KeySortResident))
	assert.Equal(t, epc.Ascending, m.sortDirection)

	m.HandleKeyMsg(keyMsg(KeySortResident))
	assert.Equal(t, epc.Descending, m.sortDirection)
}

func TestHandleKeyMsg_ToggleDirection(t *testing.T) {
	m := testModel(t)
	m.HandleKeyMsg(keyMsg(KeyToggleDir))
	assert.Equal(t, epc.Ascending, m.sortDirection)
	m.HandleKeyMsg(keyMsg(KeyToggleDir))
	assert.Equal(t, epc.Descending, m.sortDirection)
}

func TestHandleKeyMsg_HelpToggle(t *testing.T) {
	m := testModel(t)

	m.HandleKeyMsg(keyMsg(KeyToggleHelp))
	assert.True(t, m.showHelp)

	// Esc closes help without quitting
	handled, _ := m.HandleKeyMsg(keyMsg(KeyCollapse))
	assert.True(t, handled)
	assert.False(t, m.showHelp)
	assert.False(t, m.quitting)

	m.HandleKeyMsg(keyMsg(KeyToggleHelp))
	m.HandleKeyMsg(keyMsg(KeyToggleHelp))
	assert.False(t, m.showHelp)
}

func TestHandleKeyMsg_Unhandled(t *testing.T) {
	m := testModel(t)
	handled, cmd := m.HandleKeyMsg(keyMsg("z"))
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

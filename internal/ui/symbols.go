package ui

// Unicode symbols for dashboard status indicators.
const (
	SymbolOK      = "✓" // Feed healthy, data current
	SymbolFail    = "✗" // Feed read failed
	SymbolWarning = "⚠" // Partial data (records skipped)
	SymbolStale   = "○" // Showing last known good sample
	SymbolReset   = "↺" // Counter reset detected this interval
)

// Sort direction indicators for table headers.
const (
	SymbolSortDesc = "▼"
	SymbolSortAsc  = "▲"
)

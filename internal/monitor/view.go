package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/enclaveops/epctop/internal/epc"
	"github.com/enclaveops/epctop/internal/ui"
)

// Width below which the sparkline graphs are dropped from the layout.
const graphBreakpoint = 80

// Width of one sparkline graph in characters.
const graphWidth = 30

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderRates())
	b.WriteString("\n")
	b.WriteString(m.renderMemory())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with feed status and enclave totals.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("epctop")

	symbol, style := statusIndicator(m.status)
	status := style.Render(fmt.Sprintf("%s %s", symbol, m.status))
	if m.status == StatusStale && m.statusDetail != "" {
		status += MutedStyle.Render(" (" + m.statusDetail + ")")
	}

	var counts string
	if m.hasStats {
		counts = fmt.Sprintf(" | %d enclaves | %d created | %d released",
			m.tracker.Len(), m.stats.EnclavesCreated, m.stats.EnclavesReleased)
	}

	update := ""
	if !m.lastUpdate.IsZero() {
		update = " | updated " + formatAgo(time.Since(m.lastUpdate))
	}

	stats := MutedStyle.Render(counts + update)
	return HeaderStyle.Render(title + "  " + status + stats)
}

// renderRates renders the per-second event rates with sparkline graphs.
func (m Model) renderRates() string {
	labels := []string{"ADMIT", "EVICT", "WB", "LOAD"}
	values := []string{
		formatRate(m.rate.AdmitPerSec, m.hasRate),
		formatRate(m.rate.EvictPerSec, m.hasRate),
		formatRate(m.rate.WritebackPerSec, m.hasRate),
		formatRate(m.rate.LoadPerSec, m.hasRate),
	}

	var b strings.Builder
	for i, label := range labels {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(values[i]))
	}

	if m.rate.ResetDetected {
		b.WriteString("   ")
		b.WriteString(WarnStyle.Render(ui.SymbolReset + " counters reset"))
	}

	if m.width >= graphBreakpoint {
		spark := ui.RenderSparkline(m.history.Last(SeriesAdmit, graphWidth), graphWidth, ui.ColorInfo)
		if spark != "" {
			b.WriteString("   ")
			b.WriteString(spark)
		}
	}

	return " " + b.String()
}

// renderMemory renders the EPC usage gauge and swap summary.
func (m Model) renderMemory() string {
	if !m.hasStats {
		return " " + MutedStyle.Render("waiting for first sample...")
	}

	var b strings.Builder
	b.WriteString(LabelStyle.Render("EPC"))
	b.WriteString(" ")

	var usage float64
	if m.stats.TotalBytes > 0 {
		usage = float64(m.stats.UsedBytes) / float64(m.stats.TotalBytes) * 100
	}
	b.WriteString(ui.RenderGauge(usage, ui.DefaultGaugeConfig(20)))
	b.WriteString("  ")
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%s / %s",
		formatBytes(m.stats.UsedBytes), formatBytes(m.stats.TotalBytes))))

	b.WriteString("   ")
	b.WriteString(LabelStyle.Render("SWAP"))
	b.WriteString(" ")
	b.WriteString(ValueStyle.Render(formatBytes(m.stats.SwapBytes())))

	b.WriteString("   ")
	b.WriteString(LabelStyle.Render("VA"))
	b.WriteString(" ")
	b.WriteString(ValueStyle.Render(fmt.Sprintf("%d pages", m.stats.VAPages)))

	if m.width >= graphBreakpoint {
		spark := ui.RenderUsageSparkline(m.history.Last(SeriesUsage, graphWidth), graphWidth)
		if spark != "" {
			b.WriteString("   ")
			b.WriteString(spark)
		}
	}

	return " " + b.String()
}

// renderTable renders the per-enclave table in the current sort order.
func (m Model) renderTable() string {
	records := m.SortedRecords(m.lastUpdate)
	if len(records) == 0 {
		return " " + MutedStyle.Render("no enclaves")
	}

	columns := m.tableColumns()
	rows := make([][]string, len(records))
	for i, rec := range records {
		uptime := "-"
		if d, ok := m.tracker.Uptime(rec.ID, m.lastUpdate); ok {
			uptime = formatUptime(d)
		}
		rows[i] = []string{
			fmt.Sprintf("%d", rec.ID),
			fmt.Sprintf("%d", rec.PID),
			fmt.Sprintf("%d", rec.AdmitPages),
			formatBytes(rec.ResidentBytes),
			formatBytes(rec.SwappedBytes),
			formatBytes(rec.VirtBytes),
			fmt.Sprintf("%d", rec.VAPages),
			rec.State.String(),
			uptime,
			rec.Command,
		}
	}

	return ui.RenderSimpleTable(columns, rows)
}

// tableColumns returns the table layout with the sort indicator on the
// active column.
func (m Model) tableColumns() []ui.TableColumn {
	indicator := ui.SymbolSortDesc
	if m.sortDirection == epc.Ascending {
		indicator = ui.SymbolSortAsc
	}

	mark := func(col epc.SortColumn, title string) string {
		if m.sortColumn == col {
			return title + " " + indicator
		}
		return title
	}

	commandWidth := 24
	if m.width > 0 {
		used := 8 + 8 + 8 + 10 + 10 + 10 + 8 + 12 + 9 // fixed columns plus padding
		if w := m.width - used - 6; w > commandWidth {
			commandWidth = w
		}
	}

	return []ui.TableColumn{
		{Title: mark(epc.SortByID, "EID"), Width: 8},
		{Title: mark(epc.SortByPID, "PID"), Width: 8},
		{Title: mark(epc.SortByAdmit, "ADMIT"), Width: 8},
		{Title: mark(epc.SortByResident, "RSS"), Width: 10},
		{Title: mark(epc.SortBySwapped, "SWAP"), Width: 10},
		{Title: "VIRT", Width: 10},
		{Title: "VA", Width: 8},
		{Title: "STATE", Width: 12},
		{Title: mark(epc.SortByUptime, "UPTIME"), Width: 9},
		{Title: "COMMAND", Width: commandWidth},
	}
}

// renderFooter renders the sort state, key hints, and any warning line.
func (m Model) renderFooter() string {
	hints := []string{
		fmt.Sprintf("sort: %s %s", m.sortColumn, m.sortDirection),
		"e/p/a/r/w/u sort",
		"d direction",
		"q quit",
		"? help",
	}
	footer := FooterStyle.Render(strings.Join(hints, " | "))

	if m.skipped > 0 {
		warn := WarnStyle.Render(fmt.Sprintf(" %s %d malformed records skipped",
			ui.SymbolWarning, m.skipped))
		footer += "\n" + warn
	}

	return footer
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

// formatRate formats a pages-per-second rate, or "n/a" before the rate
// engine has a baseline.
func formatRate(pagesPerSec float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f/s", pagesPerSec)
}

// formatUptime formats an enclave uptime compactly: "42s", "5m12s", "2h05m".
func formatUptime(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
	}
}

// formatAgo formats a time-since-update duration for the header.
func formatAgo(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs <= 0:
		return "just now"
	case secs == 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}

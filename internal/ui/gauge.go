package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gauge bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// GaugeConfig configures usage gauge rendering.
type GaugeConfig struct {
	Width       int  // Width of the bar in characters
	Brackets    bool // Whether to wrap the bar in [ ]
	ShowPercent bool // Whether to append the percentage
}

// DefaultGaugeConfig returns a config for resource monitoring gauges.
func DefaultGaugeConfig(width int) GaugeConfig {
	return GaugeConfig{
		Width:       width,
		Brackets:    true,
		ShowPercent: true,
	}
}

// ClampPercent restricts a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// gaugeBarCounts computes the filled and empty character counts for a bar.
func gaugeBarCounts(percent float64, width int) (filled, empty int) {
	filled = int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return filled, width - filled
}

// RenderGauge renders a usage gauge bar for a percentage value.
// The bar is colored by resource-pressure thresholds: green below 60%,
// yellow from 60%, red from 80%.
//
//	[████████████░░░░░░░░]  62%
func RenderGauge(percent float64, config GaugeConfig) string {
	percent = ClampPercent(percent)
	filled, empty := gaugeBarCounts(percent, config.Width)

	var sb strings.Builder
	if config.Brackets {
		sb.WriteByte('[')
	}
	for i := 0; i < filled; i++ {
		sb.WriteRune(BarFilled)
	}
	for i := 0; i < empty; i++ {
		sb.WriteRune(BarEmpty)
	}
	if config.Brackets {
		sb.WriteByte(']')
	}

	style := lipgloss.NewStyle().Foreground(ThresholdColor(percent))
	bar := style.Render(sb.String())

	if config.ShowPercent {
		bar += fmt.Sprintf(" %3.0f%%", percent)
	}
	return bar
}

// Package ui provides terminal rendering primitives for the epctop dashboard.
//
// The package includes sparklines, usage gauges, table helpers, and the
// shared color palette used across all screens, built on the Lip Gloss
// library for consistent styling.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy state, low resource pressure
//	ColorError     (red)    - Failures and high resource pressure
//	ColorWarning   (yellow) - Warnings, skipped records, medium pressure
//	ColorInfo      (cyan)   - Informational accents, rate graphs
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - Labels and headings
//
// # Sparklines
//
// Sparklines render a history of samples as 8-level block characters:
//
//	ui.RenderSparkline(rates, 30, ui.ColorInfo)      // ▁▂▃▅▇█▅▃
//	ui.RenderUsageSparkline(usagePercents, 30)       // threshold colored
//
// # Gauges
//
// Usage gauges use block characters with color thresholds:
//
//	ui.RenderGauge(67.5, ui.DefaultGaugeConfig(20))  // [████████████░░░░░░░░]  68%
//
// Colors change based on percentage: green (0-60%), yellow (60-80%),
// red (80-100%).
package ui

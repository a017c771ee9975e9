package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/enclaveops/epctop/internal/config"
	"github.com/enclaveops/epctop/internal/epc"
	"github.com/enclaveops/epctop/internal/errors"
	"github.com/enclaveops/epctop/internal/feed"
	"github.com/enclaveops/epctop/internal/logger"
	"github.com/enclaveops/epctop/internal/monitor"
)

// Root command flags
var (
	configFlag       string
	intervalFlag     time.Duration
	statsFeedFlag    string
	enclavesFeedFlag string
	noColorFlag      bool
)

// rootCmd runs the dashboard directly; epctop has no default subcommand.
var rootCmd = &cobra.Command{
	Use:   "epctop",
	Short: "Live dashboard for SGX enclave page cache usage",
	Long: `epctop is a top-style terminal dashboard for the SGX enclave page
cache (EPC). It samples the kernel's EPC feeds on a fixed interval and shows
global paging rates, memory pressure, and a live table of running enclaves.

Examples:
  epctop
  epctop --interval 500ms
  epctop --stats-feed /tmp/fake_stats --enclaves-feed /tmp/fake_enclaves`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path")
	rootCmd.Flags().DurationVar(&intervalFlag, "interval", time.Second, "refresh interval (e.g., 500ms, 1s, 5s)")
	rootCmd.Flags().StringVar(&statsFeedFlag, "stats-feed", "", "override the global stats feed path")
	rootCmd.Flags().StringVar(&enclavesFeedFlag, "enclaves-feed", "", "override the enclave list feed path")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		os.Exit(1)
	}
}

// runDashboard loads configuration, applies flag overrides, and runs the
// TUI program until quit or fatal feed failure.
func runDashboard(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"Standard output is not a terminal",
			"Run epctop from an interactive terminal")
	}

	applyColorProfile(cfg.Color)

	reader := feed.NewFileReader(cfg.Feeds.Global, cfg.Feeds.Enclaves)
	reader.SetTimeout(cfg.Feeds.ReadTimeout)
	reader.SetLogger(logger.NewEnvLogger("[feed]"))

	sortCol, _ := epc.ParseSortColumn(cfg.Sort.Column)
	sortDir, _ := epc.ParseSortDirection(cfg.Sort.Direction)

	model := monitor.NewModel(reader, monitor.Options{
		Interval:         cfg.Interval,
		FailureThreshold: cfg.FailureThreshold,
		SortColumn:       sortCol,
		SortDirection:    sortDir,
		Resolver:         feed.NewCommandResolver(),
		Logger:           logger.NewEnvLogger("[monitor]"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard terminated unexpectedly",
			"Check the terminal supports the alternate screen")
	}

	if m, ok := final.(monitor.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// applyOverrides folds command-line flags into the loaded config.
// Flags win over config file values.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("interval") {
		cfg.Interval = intervalFlag
	}
	if statsFeedFlag != "" {
		cfg.Feeds.Global = statsFeedFlag
	}
	if enclavesFeedFlag != "" {
		cfg.Feeds.Enclaves = enclavesFeedFlag
	}
	if noColorFlag {
		cfg.Color = "never"
	}

	if cfg.Interval < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"Refresh interval too short",
			"Minimum interval is 100ms; use something like 1s")
	}
	return nil
}

// applyColorProfile configures lipgloss rendering for the color mode.
func applyColorProfile(mode string) {
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI)
	default:
		lipgloss.SetColorProfile(termenv.ColorProfile())
	}
}

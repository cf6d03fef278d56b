package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"meetsched/config"
	"meetsched/internal/i18n"
	"meetsched/internal/notify"
	"meetsched/internal/sink"
	"meetsched/internal/suggest"
	"meetsched/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "meetsched",
	Short: "Schedule meetings from your terminal",
	Long:  "meetsched - fill in a meeting, pick a suggested time, and schedule it",
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// main prints returned errors
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := i18n.Init(cfg.Language); err != nil {
		// Non-fatal: messages fall back to English
		fmt.Printf("Warning: i18n initialization failed: %v\n", err)
	}

	// The TUI owns the terminal, so logs go to a file
	logPath, err := cfg.LogPath()
	if err != nil {
		fmt.Printf("Error resolving log file: %v\n", err)
		os.Exit(1)
	}
	closeLog, err := setupLogFile(logPath)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	checkNotifier(cfg.Notify)
	out, closeOut, err := tuiSink(cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer closeOut()

	p := tea.NewProgram(
		ui.NewSchedulerApp(ui.Options{
			Suggester:  suggest.NewClient(cfg.SuggestURL, cfg.Timeout()),
			Sink:       out,
			HourlyRate: cfg.HourlyRate,
			DarkMode:   cfg.Dark(),
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile points the standard logger at path until the returned func
// is called
func setupLogFile(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)

	return func() {
		log.SetOutput(os.Stderr)
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
		}
	}, nil
}

// tuiSink builds the record sink for the TUI. json and ics records are
// appended to a file in the config dir since stdout belongs to the TUI.
func tuiSink(cfg config.Config) (sink.Sink, func(), error) {
	if cfg.Output == "" || cfg.Output == sink.OutputLog {
		s, err := sink.New(cfg.Output, io.Discard, nil, cfg.Notify)
		return s, func() {}, err
	}

	path, err := config.RecordsPath(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}

	s, err := sink.New(cfg.Output, f, nil, cfg.Notify)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return s, func() { f.Close() }, nil
}

// checkNotifier logs when notifications are on but no notifier is installed
func checkNotifier(enabled bool) {
	if enabled && !notify.Available() {
		log.Printf("notifications enabled but no notifier found (osascript or notify-send)")
	}
}

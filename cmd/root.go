package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/termtable/internal/config"
	"github.com/KaramelBytes/termtable/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
	// runID tags every log entry of one invocation.
	runID string
)

var rootCmd = &cobra.Command{
	Use:   "termtable",
	Short: "termtable: render validated templates as annotated HTML tables",
	Long: `termtable renders a CSV/TSV/XLSX template as an HTML table. Cells flagged by
validation messages are highlighted with a tooltip, and cells naming a known
terminology label link to that term.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.termtable/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

func loadConfig() {
	runID = uuid.NewString()
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		d := cfgpkg.Defaults()
		c = &d
	}
	cfg = c

	level, format := cfg.LogLevel, cfg.LogFormat
	if debug {
		level = "debug"
	}
	if logFormat != "" {
		format = logFormat
	}
	logging.Setup(level, format, os.Stderr)
	slog.Debug("config loaded", "run_id", runID, "file", cfgFile, "target_table", cfg.TargetTable)
}

// settings returns the loaded configuration, or defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		d := cfgpkg.Defaults()
		return &d
	}
	return cfg
}

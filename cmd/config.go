package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/termtable/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set termtable configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "target_table: %s\n", c.TargetTable)
		if c.Terminology != "" {
			fmt.Fprintf(out, "terminology: %s\n", c.Terminology)
		}
		fmt.Fprintf(out, "instructions_path: %s\n", c.InstructionsPath)
		fmt.Fprintf(out, "terminology_path: %s\n", c.TerminologyPath)
		fmt.Fprintf(out, "escape_cell_text: %t\n", c.EscapeCellText)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		cfg = settings()
		switch key {
		case "target_table":
			if val == "" {
				return fmt.Errorf("target_table must not be empty")
			}
			cfg.TargetTable = val
		case "terminology":
			cfg.Terminology = val
		case "instructions_path":
			cfg.InstructionsPath = val
		case "terminology_path":
			cfg.TerminologyPath = val
		case "escape_cell_text":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for escape_cell_text: %w", err)
			}
			cfg.EscapeCellText = b
		case "log_level":
			switch val {
			case "debug", "info", "warn", "error":
				cfg.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "log_format":
			switch val {
			case "text", "json":
				cfg.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

package cmd

import (
	"fmt"

	"github.com/KaramelBytes/termtable/internal/dataset"
	"github.com/KaramelBytes/termtable/internal/logging"
	"github.com/KaramelBytes/termtable/internal/messages"
	"github.com/KaramelBytes/termtable/internal/render"
	"github.com/KaramelBytes/termtable/internal/source"
	"github.com/KaramelBytes/termtable/internal/terms"
	"github.com/spf13/cobra"
)

var (
	renTerminology    string
	renOutputPath     string
	renTableName      string
	renFormat         string
	renSheet          string
	renMessagesFormat string
	renReport         bool
	renEscape         bool
)

var renderCmd = &cobra.Command{
	Use:   "render <table> [messages]",
	Short: "Render a template table as HTML, annotated with validation messages",
	Long: `Render a CSV/TSV/XLSX template as an HTML table.

The optional messages source is a findings table (columns: table, cell, rule ID,
rule, message, suggestion, level) or a YAML/JSON list of messages. Only messages
addressed to --table-name are shown.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := settings()
		tableName := c.TargetTable
		if cmd.Flags().Changed("table-name") {
			tableName = renTableName
		}
		termPath := c.Terminology
		if renTerminology != "" {
			termPath = renTerminology
		}
		opt := render.Options{
			InstructionsPath: c.InstructionsPath,
			TerminologyPath:  c.TerminologyPath,
			EscapeText:       c.EscapeCellText,
		}
		if cmd.Flags().Changed("escape") {
			opt.EscapeText = renEscape
		}
		logger := logging.WithRun(runID, "table", tableName)

		labels := terms.LabelMap{}
		if termPath != "" {
			m, err := terms.Load(ctx, termPath, dataset.Options{})
			if err != nil {
				return err
			}
			labels = m
		} else {
			logger.Warn("no terminology source; cells will not be linked")
		}

		ds, err := dataset.Load(ctx, args[0], dataset.Options{Format: renFormat, Sheet: renSheet})
		if err != nil {
			return fmt.Errorf("load table: %w", err)
		}

		var msgs []messages.CellMessage
		if len(args) == 2 {
			msgs, err = messages.Load(ctx, args[1], dataset.Options{Format: renMessagesFormat})
			if err != nil {
				return err
			}
		}

		r := render.New(opt)
		var out string
		if renReport {
			out, err = r.Report(ds, labels, msgs, tableName)
		} else {
			var idx messages.Index
			idx, err = messages.BuildIndex(msgs, tableName)
			if err != nil {
				return fmt.Errorf("index messages: %w", err)
			}
			out, err = r.Render(ds, labels, idx)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", args[0], err)
		}

		summary := messages.Summarize(msgs, tableName)
		attrs := []any{"rows", ds.Len(), "columns", len(ds.Header()), "labels", len(labels), "messages", summary.Total}
		for _, level := range summary.Levels() {
			attrs = append(attrs, "level_"+level, summary.ByLevel[level])
		}
		logger.Info("table rendered", attrs...)

		if renOutputPath != "" {
			if err := source.Write(ctx, renOutputPath, []byte(out)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote table to %s\n", renOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renTerminology, "terminology", "t", "", "terminology table with Label and ID columns (overrides config)")
	renderCmd.Flags().StringVarP(&renOutputPath, "output", "o", "", "output path or URL (default: stdout)")
	renderCmd.Flags().StringVar(&renTableName, "table-name", "", "table name messages must target (default from config: exposure)")
	renderCmd.Flags().StringVar(&renFormat, "format", "", "table format: csv|tsv|xlsx (default: from extension)")
	renderCmd.Flags().StringVar(&renSheet, "sheet", "", "XLSX: sheet name to render (default: first sheet)")
	renderCmd.Flags().StringVar(&renMessagesFormat, "messages-format", "", "messages format: csv|tsv|yaml|json (default: from extension)")
	renderCmd.Flags().BoolVar(&renReport, "report", false, "prefix the table with a valid/invalid status banner")
	renderCmd.Flags().BoolVar(&renEscape, "escape", true, "HTML-escape cell text (overrides config)")
}

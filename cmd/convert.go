package cmd

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/termtable/internal/convert"
	"github.com/KaramelBytes/termtable/internal/logging"
	"github.com/KaramelBytes/termtable/internal/source"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.tsv> <output.csv>",
	Short: "Convert a TSV file to CSV",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in, out := args[0], args[1]
		data, err := source.Read(ctx, in)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		rows, err := convert.TSVToCSV(bytes.NewReader(data), &buf)
		if err != nil {
			return fmt.Errorf("convert %s: %w", in, err)
		}
		if err := source.Write(ctx, out, buf.Bytes()); err != nil {
			return err
		}
		logging.WithRun(runID).Info("converted", "input", in, "output", out, "rows", rows)
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d rows to %s\n", rows, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

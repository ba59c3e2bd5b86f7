// Package convert re-encodes delimited tables.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// TSVToCSV copies a tab-separated table from r to w as Excel-dialect CSV
// (comma separated, minimal quoting, CRLF line endings). Rows may vary in width.
func TSVToCSV(r io.Reader, w io.Writer) (int, error) {
	in := csv.NewReader(r)
	in.Comma = '\t'
	in.FieldsPerRecord = -1
	in.LazyQuotes = true
	out := csv.NewWriter(w)
	out.UseCRLF = true

	rows := 0
	for {
		rec, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		if err := out.Write(rec); err != nil {
			return rows, fmt.Errorf("write row %d: %w", rows+1, err)
		}
		rows++
	}
	out.Flush()
	if err := out.Error(); err != nil {
		return rows, fmt.Errorf("flush: %w", err)
	}
	return rows, nil
}

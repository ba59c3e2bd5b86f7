package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/termtable/internal/source"
	"github.com/xuri/excelize/v2"
)

// ErrUnrecognizedFormat indicates no reader handles the given format hint.
var ErrUnrecognizedFormat = errors.New("unrecognized table format")

// Reader decodes raw table content into a Dataset.
type Reader interface {
	// CanRead reports whether the reader handles a format hint, usually a
	// lower-cased file extension such as ".tsv".
	CanRead(format string) bool
	Read(content []byte, opt Options) (Dataset, error)
}

// Options tunes how a source is decoded.
type Options struct {
	// Format overrides the hint derived from the source extension.
	Format string
	// Sheet selects the worksheet of a workbook; empty means the first sheet.
	Sheet string
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(delimitedReader{formats: []string{".tsv", ".tab", ".txt"}, comma: '\t'})
	Register(delimitedReader{formats: []string{".csv"}, comma: ','})
	Register(xlsxReader{})
}

// ReaderFor returns the registered reader for a format hint.
func ReaderFor(format string) (Reader, error) {
	format = normalizeFormat(format)
	for _, r := range registry {
		if r.CanRead(format) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (use .csv, .tsv or .xlsx)", ErrUnrecognizedFormat, format)
}

// Parse decodes content using the reader selected by format.
func Parse(format string, content []byte, opt Options) (Dataset, error) {
	r, err := ReaderFor(format)
	if err != nil {
		return Dataset{}, err
	}
	return r.Read(content, opt)
}

// Load reads location and decodes it. The format defaults to the location's extension.
func Load(ctx context.Context, location string, opt Options) (Dataset, error) {
	format := opt.Format
	if format == "" {
		format = source.Ext(location)
	}
	r, err := ReaderFor(format)
	if err != nil {
		return Dataset{}, err
	}
	content, err := source.Read(ctx, location)
	if err != nil {
		return Dataset{}, err
	}
	ds, err := r.Read(content, opt)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse %s: %w", location, err)
	}
	slog.Debug("dataset loaded", "url", location, "records", ds.Len(), "columns", len(ds.Header()))
	return ds, nil
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "tab", "\t":
		return ".tsv"
	case ",":
		return ".csv"
	}
	if format != "" && !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	return format
}

type delimitedReader struct {
	formats []string
	comma   rune
}

func (d delimitedReader) CanRead(format string) bool {
	for _, f := range d.formats {
		if f == format {
			return true
		}
	}
	return false
}

func (d delimitedReader) Read(content []byte, _ Options) (Dataset, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = d.comma
	r.FieldsPerRecord = -1
	// Findings text often quotes the offending value mid-field.
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read rows: %w", err)
	}
	return FromRows(header, rows)
}

type xlsxReader struct{}

func (xlsxReader) CanRead(format string) bool {
	return format == ".xlsx" || format == ".xlsm"
}

func (xlsxReader) Read(content []byte, opt Options) (Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Dataset{}, nil
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return Dataset{}, fmt.Errorf("sheet %q not found; available sheets: %s",
			sheet, strings.Join(f.GetSheetList(), ", "))
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	// Blank lines are dropped the same way the delimited readers drop them.
	var body [][]string
	for _, row := range rows {
		if len(row) > 0 {
			body = append(body, row)
		}
	}
	if len(body) == 0 {
		return Dataset{}, nil
	}
	return FromRows(body[0], body[1:])
}

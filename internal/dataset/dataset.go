// Package dataset holds row-oriented tables whose records share one ordered column set.
package dataset

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInconsistentColumns indicates a record whose columns differ from the header.
	ErrInconsistentColumns = errors.New("inconsistent columns")
	// ErrDuplicateColumn indicates a header that names the same column twice.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Field is one named cell of a record.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered mapping from column name to cell text.
type Record []Field

// Get returns the value stored under name.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Columns returns the column names in record order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}

// Dataset is an ordered sequence of records. The first record fixes the header.
// The zero value is an empty dataset.
type Dataset struct {
	header  []string
	records []Record
}

// New builds a dataset from pre-built records. Every record must carry the
// same columns, in the same order, as the first one.
func New(records ...Record) (Dataset, error) {
	if len(records) == 0 {
		return Dataset{}, nil
	}
	header := records[0].Columns()
	if err := checkHeader(header); err != nil {
		return Dataset{}, err
	}
	for i, rec := range records[1:] {
		if !slices.Equal(rec.Columns(), header) {
			return Dataset{}, fmt.Errorf("%w: record %d has columns %q, header is %q",
				ErrInconsistentColumns, i+2, rec.Columns(), header)
		}
	}
	return Dataset{header: header, records: records}, nil
}

// FromRows builds a dataset from a header and positional rows. Short rows are
// padded with empty cells; rows longer than the header are rejected.
func FromRows(header []string, rows [][]string) (Dataset, error) {
	if err := checkHeader(header); err != nil {
		return Dataset{}, err
	}
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if len(row) > len(header) {
			return Dataset{}, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrInconsistentColumns, i+2, len(row), len(header))
		}
		rec := make(Record, len(header))
		for c, name := range header {
			rec[c].Name = name
			if c < len(row) {
				rec[c].Value = row[c]
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return Dataset{header: slices.Clone(header)}, nil
	}
	return Dataset{header: slices.Clone(header), records: records}, nil
}

// Header returns the column names in rendering order.
func (d Dataset) Header() []string {
	return d.header
}

// Records returns the records in dataset order.
func (d Dataset) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// Column returns the values stored under name, one per record.
func (d Dataset) Column(name string) ([]string, bool) {
	if !slices.Contains(d.header, name) {
		return nil, false
	}
	out := make([]string, len(d.records))
	for i, rec := range d.records {
		out[i], _ = rec.Get(name)
	}
	return out, true
}

func checkHeader(header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

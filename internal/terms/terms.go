// Package terms maps controlled-vocabulary labels to their stable identifiers.
package terms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/KaramelBytes/termtable/internal/dataset"
)

// Required columns of a terminology table.
const (
	LabelColumn = "Label"
	IDColumn    = "ID"
)

// ErrMissingColumn indicates a terminology table without a Label or ID column.
var ErrMissingColumn = errors.New("terminology table missing column")

// LabelMap maps a term label to its identifier, e.g. "Antigen" -> "ONT:0001".
type LabelMap map[string]string

// Lookup returns the identifier for label.
func (m LabelMap) Lookup(label string) (string, bool) {
	id, ok := m[label]
	return id, ok
}

// FromDataset builds a LabelMap from a table with "Label" and "ID" columns.
// Later rows overwrite earlier rows with the same label.
func FromDataset(ds dataset.Dataset) (LabelMap, error) {
	labels, ok := ds.Column(LabelColumn)
	if !ok && ds.Len() > 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, LabelColumn)
	}
	ids, ok := ds.Column(IDColumn)
	if !ok && ds.Len() > 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, IDColumn)
	}
	m := make(LabelMap, len(labels))
	for i, label := range labels {
		m[label] = ids[i]
	}
	return m, nil
}

// Load reads a terminology table from location. Tab-separated unless the
// extension says otherwise.
func Load(ctx context.Context, location string, opt dataset.Options) (LabelMap, error) {
	ds, err := dataset.Load(ctx, location, opt)
	if err != nil {
		return nil, fmt.Errorf("load terminology: %w", err)
	}
	m, err := FromDataset(ds)
	if err != nil {
		return nil, fmt.Errorf("load terminology %s: %w", location, err)
	}
	slog.Debug("terminology loaded", "url", location, "labels", len(m))
	return m, nil
}

package messages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/termtable/internal/dataset"
	"github.com/KaramelBytes/termtable/internal/source"
	"gopkg.in/yaml.v3"
)

// Column names of a tabular findings report.
const (
	TableColumn      = "table"
	CellColumn       = "cell"
	RuleIDColumn     = "rule ID"
	RuleColumn       = "rule"
	MessageColumn    = "message"
	SuggestionColumn = "suggestion"
	LevelColumn      = "level"
)

// ErrMissingColumn indicates a findings table without a "table" or "cell" column.
var ErrMissingColumn = errors.New("messages table missing column")

// FromDataset converts a tabular findings report into messages. Only the
// "table" and "cell" columns are required.
func FromDataset(ds dataset.Dataset) ([]CellMessage, error) {
	if ds.Len() == 0 {
		return nil, nil
	}
	for _, col := range []string{TableColumn, CellColumn} {
		if _, ok := ds.Column(col); !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	out := make([]CellMessage, 0, ds.Len())
	for _, rec := range ds.Records() {
		var m CellMessage
		m.Table, _ = rec.Get(TableColumn)
		m.Cell, _ = rec.Get(CellColumn)
		m.RuleID, _ = rec.Get(RuleIDColumn)
		m.Rule, _ = rec.Get(RuleColumn)
		m.Message, _ = rec.Get(MessageColumn)
		m.Suggestion, _ = rec.Get(SuggestionColumn)
		m.Level, _ = rec.Get(LevelColumn)
		out = append(out, m)
	}
	return out, nil
}

// Load reads findings from location. YAML and JSON documents hold a list of
// messages; any other extension is read as a findings table.
func Load(ctx context.Context, location string, opt dataset.Options) ([]CellMessage, error) {
	format := strings.ToLower(opt.Format)
	if format == "" {
		format = source.Ext(location)
	}
	var (
		msgs []CellMessage
		err  error
	)
	switch format {
	case ".yaml", ".yml", ".json", "yaml", "yml", "json":
		msgs, err = loadDocument(ctx, location)
	default:
		var ds dataset.Dataset
		ds, err = dataset.Load(ctx, location, opt)
		if err == nil {
			msgs, err = FromDataset(ds)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	slog.Debug("messages loaded", "url", location, "messages", len(msgs))
	return msgs, nil
}

func loadDocument(ctx context.Context, location string) ([]CellMessage, error) {
	content, err := source.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	var msgs []CellMessage
	if err := yaml.Unmarshal(content, &msgs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	return msgs, nil
}

// Package messages indexes per-cell validation findings by spreadsheet coordinate.
package messages

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/termtable/internal/cellref"
)

// DefaultTable is the table name findings are filtered on when the caller names none.
const DefaultTable = "exposure"

// DefaultLevel is the severity of a finding that does not carry one.
const DefaultLevel = "error"

// CellMessage is one validation finding for a single cell.
type CellMessage struct {
	Table      string `yaml:"table" json:"table"`
	Cell       string `yaml:"cell" json:"cell"`
	RuleID     string `yaml:"rule_id,omitempty" json:"rule_id,omitempty"`
	Rule       string `yaml:"rule,omitempty" json:"rule,omitempty"`
	Message    string `yaml:"message,omitempty" json:"message,omitempty"`
	Suggestion string `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`
}

// Severity returns the lower-cased level, defaulting to "error".
func (m CellMessage) Severity() string {
	if m.Level == "" {
		return DefaultLevel
	}
	return strings.ToLower(m.Level)
}

// Index maps row -> column -> finding. Rows and columns are 1-based and row 1
// is the header row. A cell holds at most one finding.
type Index map[int]map[int]CellMessage

// BuildIndex keeps the findings addressed to table and indexes them by cell.
// When several findings target the same cell the last one wins. A finding
// whose cell reference cannot be decoded fails the whole build.
func BuildIndex(msgs []CellMessage, table string) (Index, error) {
	idx := make(Index)
	for i, m := range msgs {
		if m.Table != table {
			continue
		}
		c, err := cellref.Decode(m.Cell)
		if err != nil {
			return nil, fmt.Errorf("message %d (rule %q): %w", i+1, m.RuleID, err)
		}
		idx.Put(c, m)
	}
	return idx, nil
}

// Put stores m at c, replacing any earlier finding for that cell.
func (idx Index) Put(c cellref.Coordinate, m CellMessage) {
	cols, ok := idx[c.Row]
	if !ok {
		cols = make(map[int]CellMessage)
		idx[c.Row] = cols
	}
	cols[c.Col] = m
}

// Lookup returns the finding for a cell.
func (idx Index) Lookup(row, col int) (CellMessage, bool) {
	m, ok := idx[row][col]
	return m, ok
}

// Len returns the number of indexed cells.
func (idx Index) Len() int {
	n := 0
	for _, cols := range idx {
		n += len(cols)
	}
	return n
}

// Filter returns the findings addressed to table, in input order.
func Filter(msgs []CellMessage, table string) []CellMessage {
	var out []CellMessage
	for _, m := range msgs {
		if m.Table == table {
			out = append(out, m)
		}
	}
	return out
}

// Summary counts the findings of one table.
type Summary struct {
	Table   string
	Total   int
	ByLevel map[string]int
}

// Summarize counts the findings addressed to table per severity level.
func Summarize(msgs []CellMessage, table string) Summary {
	s := Summary{Table: table, ByLevel: map[string]int{}}
	for _, m := range Filter(msgs, table) {
		s.Total++
		s.ByLevel[m.Severity()]++
	}
	return s
}

// Levels returns the severity levels present, sorted.
func (s Summary) Levels() []string {
	levels := make([]string, 0, len(s.ByLevel))
	for l := range s.ByLevel {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	return levels
}

// Package render turns a dataset, its terminology and its validation findings
// into an HTML table.
//
// Every body cell is styled from its "required"/"optional" prefix, flagged
// with a tooltip when a finding targets it, and linked to the terminology page
// when its text names a known term. Output is deterministic: the same inputs
// always produce byte-identical markup.
package render

import (
	"errors"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/KaramelBytes/termtable/internal/dataset"
	"github.com/KaramelBytes/termtable/internal/messages"
	"github.com/KaramelBytes/termtable/internal/terms"
)

// ErrEmptyDataset indicates a dataset without records, whose header cannot be derived.
var ErrEmptyDataset = errors.New("dataset has no records")

// Bootstrap contextual classes applied to body cells.
const (
	ClassRequired = "table-success"
	ClassOptional = "table-warning"
	ClassFinding  = "table-danger"
)

// Prefixes that mark a term as required or optional in a template cell.
const (
	RequiredPrefix = "required: "
	OptionalPrefix = "optional: "
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Options configures link targets and escaping.
type Options struct {
	// InstructionsPath is the page header cells link into, e.g. "/instructions".
	InstructionsPath string
	// TerminologyPath prefixes term identifiers in cell links, e.g. "/terminology/".
	TerminologyPath string
	// EscapeText HTML-escapes cell and header text. When false, text is
	// emitted verbatim and callers must guarantee it holds no markup.
	EscapeText bool
}

// DefaultOptions returns the link layout of the exposure validator site.
func DefaultOptions() Options {
	return Options{
		InstructionsPath: "/instructions",
		TerminologyPath:  "/terminology/",
		EscapeText:       true,
	}
}

// Renderer builds HTML tables. It holds no mutable state and is safe for
// concurrent use as long as the inputs are not modified during a call.
type Renderer struct {
	opt Options
}

// New returns a Renderer using opt.
func New(opt Options) Renderer {
	return Renderer{opt: opt}
}

// Render renders ds with DefaultOptions.
func Render(ds dataset.Dataset, labels terms.LabelMap, idx messages.Index) (string, error) {
	return New(DefaultOptions()).Render(ds, labels, idx)
}

// Render returns the table element for ds. Body rows are numbered from 2 and
// columns from 1, matching the coordinates findings are indexed by.
func (r Renderer) Render(ds dataset.Dataset, labels terms.LabelMap, idx messages.Index) (string, error) {
	if ds.Len() == 0 {
		return "", ErrEmptyDataset
	}
	header := ds.Header()

	lines := []string{"<table class='table'>"}
	lines = append(lines, "  <thead>", "    <tr>")
	for _, name := range header {
		lines = append(lines, "      <th><a href='"+r.opt.InstructionsPath+"#"+HeaderAnchor(name)+"'>"+r.text(name)+"</a></th>")
	}
	lines = append(lines, "    </tr>", "  </thead>")

	lines = append(lines, "  <tbody>")
	for i, rec := range ds.Records() {
		row := i + 2
		lines = append(lines, "    <tr>")
		for j, name := range header {
			value, _ := rec.Get(name)
			lines = append(lines, r.cell(value, row, j+1, labels, idx))
		}
		lines = append(lines, "    </tr>")
	}
	lines = append(lines, "  </tbody>", "</table>")
	return strings.Join(lines, "\n"), nil
}

func (r Renderer) cell(value string, row, col int, labels terms.LabelMap, idx messages.Index) string {
	var classes []string
	switch {
	case strings.HasPrefix(value, "required"):
		classes = append(classes, ClassRequired)
	case strings.HasPrefix(value, "optional"):
		classes = append(classes, ClassOptional)
	}

	var tooltip string
	if m, ok := idx.Lookup(row, col); ok {
		classes = append(classes, ClassFinding)
		tooltip = ` data-toggle="tooltip" data-placement="bottom" data-html="true" title="` +
			strings.ReplaceAll(Tooltip(m), `"`, "&quot;") + `"`
	}

	var attrs string
	if len(classes) > 0 {
		attrs = " class='" + strings.Join(classes, " ") + "'"
	}
	attrs += tooltip

	prefix, term := SplitPrefix(value)
	content := r.text(value)
	if id, ok := labels.Lookup(term); ok {
		content = prefix + "<a href='" + r.opt.TerminologyPath + url.PathEscape(id) + "'>" + r.text(term) + "</a>"
	}
	return "      <td" + attrs + ">" + content + "</td>"
}

func (r Renderer) text(s string) string {
	if r.opt.EscapeText {
		return html.EscapeString(s)
	}
	return s
}

// HeaderAnchor derives the instructions anchor for a column name: lower-cased,
// with every run of non-word characters collapsed to one hyphen.
// "Rule ID" -> "rule-id", "Term(s)" -> "term-s-".
func HeaderAnchor(name string) string {
	return nonWord.ReplaceAllString(strings.ToLower(name), "-")
}

// SplitPrefix separates a leading "required: " or "optional: " from the term
// that follows it. Values without either prefix are returned whole as the term.
func SplitPrefix(value string) (prefix, term string) {
	for _, p := range []string{RequiredPrefix, OptionalPrefix} {
		if strings.HasPrefix(value, p) {
			return p, strings.TrimPrefix(value, p)
		}
	}
	return "", value
}

// Tooltip assembles the tooltip body for a finding: "ruleID: rule" (or
// whichever of the two is set), then the message, then the suggestion, each
// on its own line. The result is HTML; quotes are not yet escaped.
func Tooltip(m messages.CellMessage) string {
	var parts []string
	switch {
	case m.RuleID != "" && m.Rule != "":
		parts = append(parts, m.RuleID+": "+m.Rule)
	case m.RuleID != "":
		parts = append(parts, m.RuleID)
	case m.Rule != "":
		parts = append(parts, m.Rule)
	}
	if m.Message != "" {
		parts = append(parts, m.Message)
	}
	if m.Suggestion != "" {
		parts = append(parts, "Suggestion: '"+m.Suggestion+"'")
	}
	return strings.Join(parts, "<br>")
}

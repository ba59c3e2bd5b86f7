package render

import (
	"fmt"

	"github.com/KaramelBytes/termtable/internal/dataset"
	"github.com/KaramelBytes/termtable/internal/messages"
	"github.com/KaramelBytes/termtable/internal/terms"
)

// Banner returns the status alert shown above a validated table.
func Banner(s messages.Summary) string {
	if s.Total > 0 {
		return "<p class='alert alert-danger'>This template contains errors.</p>"
	}
	return "<p class='alert alert-success'>This template is valid.</p>"
}

// Report renders the validation result for one table: the status banner, a
// blank line, then the annotated table. Findings for other tables are ignored.
func (r Renderer) Report(ds dataset.Dataset, labels terms.LabelMap, msgs []messages.CellMessage, table string) (string, error) {
	idx, err := messages.BuildIndex(msgs, table)
	if err != nil {
		return "", fmt.Errorf("index messages: %w", err)
	}
	body, err := r.Render(ds, labels, idx)
	if err != nil {
		return "", err
	}
	return Banner(messages.Summarize(msgs, table)) + "\n\n" + body, nil
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"github.com/gitspread/gitspread/internal/plan"
)

// JSONExporter emits a declarative document; any rewriter that can read the
// hash→timestamp pairs back out can consume it.
type JSONExporter struct {
	RunID string
}

type jsonDocument struct {
	RunID       string       `json:"run_id,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	Entries     []plan.Entry `json:"entries"`
}

func (e *JSONExporter) Ext() string { return ".json" }

func (e *JSONExporter) Export(a *plan.Assignment, w io.Writer) error {
	doc := jsonDocument{
		RunID:       e.RunID,
		GeneratedAt: time.Now().UTC(),
		Entries:     a.Entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// CSVExporter emits hash,repo,old,new rows with an RFC 3339 timestamp pair.
type CSVExporter struct{}

func (e *CSVExporter) Ext() string { return ".csv" }

func (e *CSVExporter) Export(a *plan.Assignment, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hash", "repo", "old", "new"}); err != nil {
		return err
	}
	for _, entry := range a.Entries {
		record := []string{
			entry.Hash,
			entry.Repo,
			entry.Old.Format(time.RFC3339),
			entry.New.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

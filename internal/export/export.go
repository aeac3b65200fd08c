// Package export renders a finished assignment into artifacts an external
// history rewriter consumes. Nothing here touches a repository; emitting the
// artifact is the last thing this tool does before handing off.
package export

import (
	"fmt"
	"io"

	"github.com/gitspread/gitspread/internal/plan"
)

// Format selects an artifact format.
type Format string

const (
	FormatScript Format = "script"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
)

// Exporter writes a hash→timestamp mapping in one concrete format.
type Exporter interface {
	Export(a *plan.Assignment, w io.Writer) error
	// Ext is the conventional file extension for the format, dot included.
	Ext() string
}

// New returns the exporter for a format.
func New(format Format, runID string) (Exporter, error) {
	switch format {
	case FormatScript:
		return &ScriptExporter{}, nil
	case FormatJSON:
		return &JSONExporter{RunID: runID}, nil
	case FormatCSV:
		return &CSVExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

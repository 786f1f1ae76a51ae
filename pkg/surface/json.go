package surface

import (
	"encoding/json"
	"io"

	"github.com/chargescope/chargescope/internal/analysis"
)

// JSONRenderer marshals the report to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

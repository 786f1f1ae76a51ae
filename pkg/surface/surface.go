// Package surface defines output rendering for ChargeScope analysis
// reports. Implementations handle different output targets: terminal, JSON.
package surface

import (
	"io"

	"github.com/chargescope/chargescope/internal/analysis"
)

// Renderer produces formatted output from an analysis report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *analysis.Report) error
}

// ForFormat returns the renderer for an output format name. Anything other
// than "json" renders for the terminal.
func ForFormat(format string) Renderer {
	if format == "json" {
		return &JSONRenderer{}
	}
	return &TerminalRenderer{}
}

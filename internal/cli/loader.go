package cli

import (
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/parser"
)

// loadGraphs parses one assembly file, mapping parse failures onto the
// command-error exit code. Parse errors are syntactic; the caller
// decides what verification failures mean for its exit code.
func loadGraphs(formatter *OutputFormatter, path string) ([]*ir.Graph, error) {
	graphs, diag := parser.ParseFile(path)
	if diag != nil {
		if err := formatter.Error(diag.Code, diag.Error(), nil); err != nil {
			return nil, err
		}
		return nil, NewExitError(ExitCommandError, diag.Error())
	}
	formatter.VerboseLog("Parsed %d graph(s) from %s", len(graphs), path)
	return graphs, nil
}

// diagPayload converts diagnostics into the JSON-friendly detail shape
// shared by the verify and canon commands.
type diagPayload struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

func toPayload(diags []*ir.Diagnostic) []diagPayload {
	out := make([]diagPayload, len(diags))
	for i, d := range diags {
		out[i] = diagPayload{
			Code:     d.Code,
			Severity: string(d.Severity),
			Message:  d.Message,
			File:     d.Loc.File,
			Line:     d.Loc.Line,
		}
	}
	return out
}

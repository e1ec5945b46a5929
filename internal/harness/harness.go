// Package harness provides end-to-end fixture testing for the full
// pipeline.
//
// A fixture is one assembly file under testdata/fixtures. The harness
// runs parse, verify, canonicalize and print over it, and the snapshot
// of each phase is compared against a golden file. Fixtures exercise
// the pipeline the way the CLI drives it, without going through cobra.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/sigil/internal/canon"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/parser"
	"github.com/roach88/sigil/internal/printer"
	"github.com/roach88/sigil/internal/verify"
)

// Result captures every observable phase outcome for one fixture.
type Result struct {
	Parsed      string // canonical print straight after parsing
	Diagnostics []*ir.Diagnostic
	Canonical   string // print after canonicalization; empty if verify failed
	Steps       int
}

// Run executes the pipeline over one fixture file. A verification
// failure is part of the result, not an error; Run only fails on
// unreadable or unparseable input and on canonicalizer aborts.
func Run(path string, cfg canon.Config) (*Result, error) {
	graphs, diag := parser.ParseFile(path)
	if diag != nil {
		return nil, fmt.Errorf("parse %s: %w", path, diag)
	}

	res := &Result{Parsed: printer.PrintAll(graphs)}
	for _, g := range graphs {
		res.Diagnostics = append(res.Diagnostics, verify.Graph(g)...)
	}
	if len(res.Diagnostics) > 0 {
		return res, nil
	}

	for _, g := range graphs {
		cres, err := canon.Canonicalize(g, cfg)
		if err != nil {
			return nil, fmt.Errorf("canonicalize @%s: %w", g.Name, err)
		}
		res.Steps += cres.Steps
	}
	res.Canonical = printer.PrintAll(graphs)
	return res, nil
}

// Snapshot renders a result as the golden file payload: the canonical
// parse, then either the diagnostics or the canonicalized form, in a
// stable textual layout.
func (r *Result) Snapshot() []byte {
	var b strings.Builder
	b.WriteString("== parsed ==\n")
	b.WriteString(r.Parsed)
	if len(r.Diagnostics) > 0 {
		b.WriteString("== diagnostics ==\n")
		for _, d := range r.Diagnostics {
			b.WriteString(d.Error())
			b.WriteByte('\n')
		}
		return []byte(b.String())
	}
	b.WriteString("== canonical ==\n")
	b.WriteString(r.Canonical)
	return []byte(b.String())
}

// Package verify checks type consistency after construction.
//
// The verifier recomputes inference for every node from its current
// operand types and attributes and compares the outcome against the
// stored result types. It only rejects; it never repairs a graph.
// Verification is read-only and idempotent: running it twice on the
// same graph yields the same diagnostics in the same order.
package verify

import (
	"github.com/roach88/sigil/internal/infer"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// Node checks a single node. It returns nil when the stored result
// types match what inference computes from the node's current operands
// and attributes, and the first diagnostic otherwise.
func Node(n *ir.Node) *ir.Diagnostic {
	want, diag := infer.ResultTypes(n.Kind, n.OperandTypes(), n.Attrs)
	if diag != nil {
		return diag.At(n.Loc)
	}
	got := n.ResultTypes()
	if len(got) != len(want) {
		return ir.Errorf(ir.ErrTypeMismatch,
			"%s: node stores %d results, inference computes %d",
			n.Kind, len(got), len(want)).At(n.Loc)
	}
	for i := range want {
		if !types.Equal(got[i], want[i]) {
			return ir.Errorf(ir.ErrTypeMismatch,
				"%s: result %d has type %s, inference computes %s",
				n.Kind, i, got[i], want[i]).At(n.Loc)
		}
	}
	return nil
}

// Graph checks every node in order and collects all violations rather
// than stopping at the first. Diagnostics appear in graph order, so
// fixing the graph and re-running shrinks the list monotonically.
func Graph(g *ir.Graph) []*ir.Diagnostic {
	var diags []*ir.Diagnostic
	seen := make(map[string]*ir.Value, len(g.Args))
	for _, a := range g.Args {
		seen[a.Name] = a
	}
	for _, n := range g.Nodes {
		for _, op := range n.Operands {
			if !defined(seen, op) {
				diags = append(diags, ir.Errorf(ir.ErrUseBeforeDef,
					"%s: operand %%%s used before definition", n.Kind, op.Name).At(n.Loc))
			}
		}
		if d := Node(n); d != nil {
			diags = append(diags, d)
		}
		for _, r := range n.Results {
			seen[r.Name] = r
		}
	}
	return diags
}

func defined(seen map[string]*ir.Value, v *ir.Value) bool {
	got, ok := seen[v.Name]
	return ok && got == v
}

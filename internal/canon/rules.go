package canon

import (
	"github.com/roach88/sigil/internal/infer"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// flattenCat splices the operands of nested concatenations into the
// outer concatenation. Concatenation is associative over bit patterns,
// so the result type is unchanged; inference re-checks the spliced
// operand list before commit.
func flattenCat(g *ir.Graph, n *ir.Node) bool {
	if n.Kind != ir.KindCat {
		return false
	}
	nested := false
	var flat []*ir.Value
	for _, op := range n.Operands {
		if op.Def != nil && op.Def.Kind == ir.KindCat && len(g.UsesOf(op)) == 1 {
			flat = append(flat, op.Def.Operands...)
			nested = true
			continue
		}
		flat = append(flat, op)
	}
	if !nested {
		return false
	}
	tys := make([]types.Type, len(flat))
	for i, v := range flat {
		tys[i] = v.Type
	}
	got, diag := infer.ResultTypes(ir.KindCat, tys, nil)
	if diag != nil || len(got) != 1 || !types.Equal(got[0], n.Result().Type) {
		return false
	}
	inner := n.Operands
	n.Operands = flat
	for _, op := range inner {
		if op.Def != nil && op.Def.Kind == ir.KindCat && len(g.UsesOf(op)) == 0 {
			g.Remove(op.Def)
		}
	}
	return true
}

// identityKinds are the ops where an equal input and result type proves
// the op is a no-op on the bit pattern.
var identityKinds = map[ir.OpKind]bool{
	ir.KindBits: true,
	ir.KindHead: true,
	ir.KindTail: true,
	ir.KindPad:  true,
	ir.KindShr:  true,
	ir.KindShl:  true,
}

// dropIdentity replaces a slice, pad or shift whose result type equals
// its input type with the input value. The type equality is the guard:
// bits(x, w-1, 0) on uint<w> is an identity, bits on sint is not
// (the result is always unsigned), and shr<0> on uint<w> is.
func dropIdentity(g *ir.Graph, n *ir.Node) bool {
	if !identityKinds[n.Kind] || len(n.Operands) != 1 || len(n.Results) != 1 {
		return false
	}
	in := n.Operands[0]
	if !types.Equal(in.Type, n.Result().Type) {
		return false
	}
	g.ReplaceAllUses(n.Result(), in)
	g.Remove(n)
	return true
}

// forwardWires forwards the value driven onto a wire to every read of
// that wire, when the wire has exactly one unconditional driver and is
// otherwise only read. A wire that is indexed, exploded into other
// inout ops, or multiply driven is left alone.
func forwardWires(g *ir.Graph, q *quota) (bool, error) {
	changed := false
	for _, n := range snapshot(g) {
		if n.Kind != ir.KindWire {
			continue
		}
		if forwardWire(g, n) {
			changed = true
			if err := q.check(g.Name); err != nil {
				return changed, err
			}
		}
	}
	return changed, nil
}

func forwardWire(g *ir.Graph, wire *ir.Node) bool {
	if len(wire.Results) != 1 {
		return false
	}
	w := wire.Result()

	var drive *ir.Node
	var reads []*ir.Node
	for _, use := range g.UsesOf(w) {
		switch {
		case use.Kind == ir.KindConnect && len(use.Operands) == 2 && use.Operands[0] == w:
			if drive != nil {
				return false // multiply driven
			}
			drive = use
		case use.Kind == ir.KindReadInOut:
			reads = append(reads, use)
		default:
			return false // indexed or escapes into another inout op
		}
	}
	if drive == nil || len(reads) == 0 {
		return false
	}

	driven := drive.Operands[1]
	for _, r := range reads {
		if !types.Equal(r.Result().Type, driven.Type) {
			return false
		}
	}
	// Rewiring a read to the driven value must not move a use in front
	// of that value's definition: the wire may be read before the
	// connect that drives it, and graph order is def-before-use.
	if driven.Def != nil {
		pos := make(map[*ir.Node]int, len(g.Nodes))
		for i, n := range g.Nodes {
			pos[n] = i
		}
		defAt := pos[driven.Def]
		for _, r := range reads {
			for _, use := range g.UsesOf(r.Result()) {
				if pos[use] <= defAt {
					return false
				}
			}
		}
	}
	for _, r := range reads {
		g.ReplaceAllUses(r.Result(), driven)
		g.Remove(r)
	}
	// The wire and its driver survive; the stored value may still be
	// observed by a later lowering. Remove them only when nothing else
	// reads the wire.
	if len(g.UsesOf(w)) == 1 {
		g.Remove(drive)
		g.Remove(wire)
	}
	return true
}

func snapshot(g *ir.Graph) []*ir.Node {
	return append([]*ir.Node(nil), g.Nodes...)
}

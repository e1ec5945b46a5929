package canon

import (
	"math/big"

	"github.com/roach88/sigil/internal/infer"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// constOf returns the constant value feeding v, if its defining node is
// a constant op.
func constOf(v *ir.Value) (*big.Int, bool) {
	if v.Def == nil || v.Def.Kind != ir.KindConstant {
		return nil, false
	}
	return v.Def.Attrs.BigInt("value")
}

// toBits returns the two's-complement bit pattern of v at the given
// width, as a non-negative integer.
func toBits(v *big.Int, width int) *big.Int {
	if width <= 0 {
		return big.NewInt(0)
	}
	mask := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Mod(v, mask)
}

// fromBits reinterprets a bit pattern at the given width and signedness,
// producing the canonical stored value for a constant of that type.
func fromBits(bits *big.Int, signed bool, width int) *big.Int {
	if width <= 0 {
		return big.NewInt(0)
	}
	out := toBits(bits, width)
	if signed && out.Bit(width-1) == 1 {
		out.Sub(out, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}
	return out
}

// truncate wraps v into the representable range of an integer type.
func truncate(v *big.Int, t types.Type) (*big.Int, bool) {
	w, ok := types.WidthOf(t)
	if !ok || w == types.WidthUnknown {
		return nil, false
	}
	return fromBits(v, types.IsSigned(t), w), true
}

// foldNode evaluates n when all of its operands are constants, rewriting
// it in place into a constant (or aggregate_constant) of the same result
// type. Mux with a constant selector forwards the chosen branch instead.
// Returns true when the graph changed.
func foldNode(g *ir.Graph, n *ir.Node) bool {
	switch n.Kind {
	case ir.KindMux:
		return foldMux(g, n)
	case ir.KindArrayCreate:
		return foldArrayCreate(n)
	case ir.KindDiv:
		// A non-constant divisor never folds, even against a constant
		// dividend: runtime division semantics stay with the backend.
		return foldDivRem(n, true)
	case ir.KindRem:
		return foldDivRem(n, false)
	}

	vals, ok := operandConstants(n)
	if !ok || len(n.Results) != 1 {
		return false
	}

	raw, ok := evalScalar(n, vals)
	if !ok {
		return false
	}
	wrapped, ok := truncate(raw, n.Result().Type)
	if !ok {
		return false
	}
	return commitConstant(n, wrapped)
}

func operandConstants(n *ir.Node) ([]*big.Int, bool) {
	if len(n.Operands) == 0 {
		return nil, false
	}
	vals := make([]*big.Int, len(n.Operands))
	for i, op := range n.Operands {
		v, ok := constOf(op)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// evalScalar computes the arbitrary-precision result for a single-result
// integer operation. The caller truncates into the result type.
func evalScalar(n *ir.Node, vals []*big.Int) (*big.Int, bool) {
	widths := make([]int, len(n.Operands))
	for i, op := range n.Operands {
		w, ok := types.WidthOf(op.Type)
		if !ok || w == types.WidthUnknown {
			return nil, false
		}
		widths[i] = w
	}

	switch n.Kind {
	case ir.KindAdd, ir.KindSub, ir.KindMul, ir.KindAnd, ir.KindOr, ir.KindXor,
		ir.KindEq, ir.KindNeq, ir.KindLt, ir.KindLeq, ir.KindGt, ir.KindGeq:
		if len(vals) != 2 {
			return nil, false
		}
	}

	switch n.Kind {
	case ir.KindAdd:
		return new(big.Int).Add(vals[0], vals[1]), true
	case ir.KindSub:
		return new(big.Int).Sub(vals[0], vals[1]), true
	case ir.KindMul:
		return new(big.Int).Mul(vals[0], vals[1]), true

	case ir.KindAnd, ir.KindOr, ir.KindXor:
		w := widths[0]
		if widths[1] > w {
			w = widths[1]
		}
		a, b := toBits(vals[0], w), toBits(vals[1], w)
		switch n.Kind {
		case ir.KindAnd:
			return new(big.Int).And(a, b), true
		case ir.KindOr:
			return new(big.Int).Or(a, b), true
		default:
			return new(big.Int).Xor(a, b), true
		}

	case ir.KindEq, ir.KindNeq, ir.KindLt, ir.KindLeq, ir.KindGt, ir.KindGeq:
		return boolInt(compare(n.Kind, vals[0].Cmp(vals[1]))), true

	case ir.KindCat:
		acc := big.NewInt(0)
		for i, v := range vals {
			acc.Lsh(acc, uint(widths[i]))
			acc.Or(acc, toBits(v, widths[i]))
		}
		return acc, true

	case ir.KindBits:
		hi, _ := n.Attrs.Int("hi")
		lo, _ := n.Attrs.Int("lo")
		return new(big.Int).Rsh(toBits(vals[0], widths[0]), uint(lo)), hi >= lo

	case ir.KindHead:
		amt, _ := n.Attrs.Int("amount")
		return new(big.Int).Rsh(toBits(vals[0], widths[0]), uint(widths[0])-uint(amt)), true
	case ir.KindTail:
		return toBits(vals[0], widths[0]), true // truncate masks below
	case ir.KindPad:
		return vals[0], true // widening preserves the value
	case ir.KindShl:
		amt, _ := n.Attrs.Int("amount")
		return new(big.Int).Lsh(vals[0], uint(amt)), true
	case ir.KindShr:
		// big.Int Rsh on a negative value floors, which is exactly the
		// arithmetic shift on the signed interpretation.
		amt, _ := n.Attrs.Int("amount")
		return new(big.Int).Rsh(vals[0], uint(amt)), true

	case ir.KindAsUInt, ir.KindAsSInt, ir.KindStdIntCast:
		return vals[0], true // reinterpretation; truncate re-wraps the bits

	default:
		return nil, false
	}
}

func compare(kind ir.OpKind, cmp int) bool {
	switch kind {
	case ir.KindEq:
		return cmp == 0
	case ir.KindNeq:
		return cmp != 0
	case ir.KindLt:
		return cmp < 0
	case ir.KindLeq:
		return cmp <= 0
	case ir.KindGt:
		return cmp > 0
	default:
		return cmp >= 0
	}
}

func boolInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

// foldDivRem folds division and remainder when BOTH operands are
// constant. Division by a constant zero folds to 1 and remainder by
// zero to 0; the zero divisor is a value-domain gap, never an error.
func foldDivRem(n *ir.Node, isDiv bool) bool {
	vals, ok := operandConstants(n)
	if !ok || len(vals) != 2 {
		return false
	}
	var raw *big.Int
	switch {
	case vals[1].Sign() == 0 && isDiv:
		raw = big.NewInt(1)
	case vals[1].Sign() == 0:
		raw = big.NewInt(0)
	case isDiv:
		raw = new(big.Int).Quo(vals[0], vals[1])
	default:
		raw = new(big.Int).Rem(vals[0], vals[1])
	}
	wrapped, ok := truncate(raw, n.Result().Type)
	if !ok {
		return false
	}
	return commitConstant(n, wrapped)
}

// foldMux forwards the branch selected by a constant selector. The
// branch type must equal the result type; otherwise the widening mux
// stays in place.
func foldMux(g *ir.Graph, n *ir.Node) bool {
	if len(n.Operands) != 3 || len(n.Results) != 1 {
		return false
	}
	sel, ok := constOf(n.Operands[0])
	if !ok {
		return false
	}
	chosen := n.Operands[2]
	if sel.Sign() != 0 {
		chosen = n.Operands[1]
	}
	if !types.Equal(chosen.Type, n.Result().Type) {
		return false
	}
	g.ReplaceAllUses(n.Result(), chosen)
	g.Remove(n)
	return true
}

// foldArrayCreate turns an array_create of all-constant elements into a
// single aggregate_constant.
func foldArrayCreate(n *ir.Node) bool {
	vals, ok := operandConstants(n)
	if !ok || len(n.Results) != 1 {
		return false
	}
	vec, ok := n.Result().Type.(types.Vector)
	if !ok {
		return false
	}
	list := make(ir.ListAttr, len(vals))
	for i, v := range vals {
		wrapped, ok := truncate(v, vec.Elem)
		if !ok {
			return false
		}
		list[i] = ir.BigIntAttr{Value: wrapped}
	}
	attrs := ir.AttrSet{
		{Name: "value", Value: list},
		{Name: "type", Value: ir.TypeAttr{Type: vec}},
	}
	got, diag := infer.ResultTypes(ir.KindAggregateConstant, nil, attrs)
	if diag != nil || len(got) != 1 || !types.Equal(got[0], vec) {
		return false
	}
	n.Kind = ir.KindAggregateConstant
	n.Operands = nil
	n.Attrs = attrs
	return true
}

// commitConstant rewrites n in place into a constant of its existing
// result type. The candidate is checked against inference first, so an
// out-of-range value refuses the rewrite instead of corrupting the
// graph.
func commitConstant(n *ir.Node, val *big.Int) bool {
	rt := n.Result().Type
	attrs := ir.AttrSet{
		{Name: "value", Value: ir.BigIntAttr{Value: val}},
		{Name: "type", Value: ir.TypeAttr{Type: rt}},
	}
	got, diag := infer.ResultTypes(ir.KindConstant, nil, attrs)
	if diag != nil || len(got) != 1 || !types.Equal(got[0], rt) {
		return false
	}
	n.Kind = ir.KindConstant
	n.Operands = nil
	n.Attrs = attrs
	return true
}

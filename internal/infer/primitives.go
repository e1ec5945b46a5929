package infer

import (
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// Width laws for the two-operand arithmetic primitives. Called only when
// both widths are known.
func addWidth(w1, w2 int) int { return maxInt(w1, w2) + 1 }
func mulWidth(w1, w2 int) int { return w1 + w2 }

// binaryArith covers add/sub/mul. Operands may mix signedness; the
// result is signed only when both operands are signed. Unknown operand
// widths propagate to an unknown result width.
func binaryArith(width func(w1, w2 int) int) rule {
	return func(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
		if d := wantArity(in, 2, "binary arithmetic"); d != nil {
			return nil, d
		}
		for _, t := range in {
			if d := wantHWInt(t, "binary arithmetic"); d != nil {
				return nil, d
			}
		}
		w1, _ := types.WidthOf(in[0])
		w2, _ := types.WidthOf(in[1])
		signed := types.IsSigned(in[0]) && types.IsSigned(in[1])
		if w1 == types.WidthUnknown || w2 == types.WidthUnknown {
			return one(makeInt(signed, types.WidthUnknown)), nil
		}
		return one(makeInt(signed, width(w1, w2))), nil
	}
}

// inferDiv: the result takes the dividend's width, plus one when the
// result is signed (two's complement minimum value divided by -1
// overflows otherwise). Signed only when both operands are signed.
func inferDiv(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "div"); d != nil {
		return nil, d
	}
	for _, t := range in {
		if d := wantHWInt(t, "div"); d != nil {
			return nil, d
		}
	}
	w1, _ := types.WidthOf(in[0])
	signed := types.IsSigned(in[0]) && types.IsSigned(in[1])
	if w1 == types.WidthUnknown {
		return one(makeInt(signed, types.WidthUnknown)), nil
	}
	if signed {
		return one(makeInt(true, w1+1)), nil
	}
	return one(makeInt(false, w1)), nil
}

// inferRem: result width is min(w1, w2); signed only when both operands
// are signed.
func inferRem(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "rem"); d != nil {
		return nil, d
	}
	for _, t := range in {
		if d := wantHWInt(t, "rem"); d != nil {
			return nil, d
		}
	}
	w1, _ := types.WidthOf(in[0])
	w2, _ := types.WidthOf(in[1])
	signed := types.IsSigned(in[0]) && types.IsSigned(in[1])
	if w1 == types.WidthUnknown || w2 == types.WidthUnknown {
		return one(makeInt(signed, types.WidthUnknown)), nil
	}
	return one(makeInt(signed, minInt(w1, w2))), nil
}

// bitwise and/or/xor always yield UInt of the wider operand width,
// regardless of operand signedness.
func bitwise(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "bitwise logic"); d != nil {
		return nil, d
	}
	for _, t := range in {
		if d := wantHWInt(t, "bitwise logic"); d != nil {
			return nil, d
		}
	}
	w1, _ := types.WidthOf(in[0])
	w2, _ := types.WidthOf(in[1])
	if w1 == types.WidthUnknown || w2 == types.WidthUnknown {
		return one(types.UInt{Width: types.WidthUnknown}), nil
	}
	return one(types.UInt{Width: maxInt(w1, w2)}), nil
}

// comparison accepts any signedness mix and always yields UInt<1>.
func comparison(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "comparison"); d != nil {
		return nil, d
	}
	for _, t := range in {
		if d := wantHWInt(t, "comparison"); d != nil {
			return nil, d
		}
	}
	return one(types.UInt{Width: 1}), nil
}

// inferMux: the selector must be exactly UInt<1>; both branches must be
// passive with the same base kind. For integer branches the result takes
// the wider known width, or unknown when either side is unresolved. For
// all other passive types the branches must match exactly.
func inferMux(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 3, "mux"); d != nil {
		return nil, d
	}
	if !types.Equal(in[0], types.UInt{Width: 1}) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "mux selector must be uint<1>, got %s", in[0])
	}
	a, b := in[1], in[2]
	if !types.IsPassive(a) || !types.IsPassive(b) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "mux branches must be passive, got %s and %s", a, b)
	}
	if types.IsHWInt(a) || types.IsHWInt(b) {
		if !types.SameBaseKind(a, b) {
			return nil, ir.Errorf(ir.ErrKindMismatch, "mux branches disagree on base kind: %s vs %s", a, b)
		}
		wa, _ := types.WidthOf(a)
		wb, _ := types.WidthOf(b)
		signed := types.IsSigned(a)
		if wa == types.WidthUnknown || wb == types.WidthUnknown {
			return one(makeInt(signed, types.WidthUnknown)), nil
		}
		return one(makeInt(signed, maxInt(wa, wb))), nil
	}
	if !types.Equal(a, b) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "mux branches have mismatched types: %s vs %s", a, b)
	}
	return one(a), nil
}

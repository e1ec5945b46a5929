package infer

import (
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// inferCat: variadic concatenation of two or more integer operands.
// The result is always unsigned; concatenation never preserves
// signedness. Any unknown operand width makes the result width unknown.
func inferCat(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if len(in) < 2 {
		return nil, ir.Errorf(ir.ErrArityMismatch, "cat expects at least 2 operands, got %d", len(in))
	}
	total := 0
	unknown := false
	for _, t := range in {
		if d := wantHWInt(t, "cat"); d != nil {
			return nil, d
		}
		w, _ := types.WidthOf(t)
		if w == types.WidthUnknown {
			unknown = true
			continue
		}
		total += w
	}
	if unknown {
		return one(types.UInt{Width: types.WidthUnknown}), nil
	}
	return one(types.UInt{Width: total}), nil
}

// inferBits: extract bits hi..lo inclusive. Requires 0 <= lo <= hi and,
// when the input width is known, hi < width. An unknown input width
// defers the upper-bound check; boundary verification rejects graphs
// whose widths never resolve.
func inferBits(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "bits"); d != nil {
		return nil, d
	}
	if d := wantHWInt(in[0], "bits"); d != nil {
		return nil, d
	}
	hi, ok := attrs.Int("hi")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "bits requires an integer %q attribute", "hi")
	}
	lo, ok := attrs.Int("lo")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "bits requires an integer %q attribute", "lo")
	}
	if lo < 0 || hi < lo {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "bits range [%d, %d] is malformed: need 0 <= lo <= hi", hi, lo)
	}
	if w, _ := types.WidthOf(in[0]); w != types.WidthUnknown && hi >= int64(w) {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "bits hi %d exceeds input width %d", hi, w)
	}
	return one(types.UInt{Width: int(hi - lo + 1)}), nil
}

// inferHead: keep the top n bits. Requires 0 <= n <= width.
func inferHead(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	n, d := sliceAmount(in, attrs, "head")
	if d != nil {
		return nil, d
	}
	return one(types.UInt{Width: int(n)}), nil
}

// inferTail: drop the top n bits. Requires 0 <= n <= width; the result
// keeps the remaining width, unknown when the input width is unknown.
func inferTail(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	n, d := sliceAmount(in, attrs, "tail")
	if d != nil {
		return nil, d
	}
	w, _ := types.WidthOf(in[0])
	if w == types.WidthUnknown {
		return one(types.UInt{Width: types.WidthUnknown}), nil
	}
	return one(types.UInt{Width: w - int(n)}), nil
}

// sliceAmount validates the shared shape of head/tail: one integer
// operand and an "amount" attribute with 0 <= amount <= width when the
// width is known.
func sliceAmount(in []types.Type, attrs ir.AttrSet, what string) (int64, *ir.Diagnostic) {
	if d := wantArity(in, 1, what); d != nil {
		return 0, d
	}
	if d := wantHWInt(in[0], what); d != nil {
		return 0, d
	}
	n, ok := attrs.Int("amount")
	if !ok {
		return 0, ir.Errorf(ir.ErrAttrMissing, "%s requires an integer %q attribute", what, "amount")
	}
	if n < 0 {
		return 0, ir.Errorf(ir.ErrWidthOutOfRange, "%s amount %d is negative", what, n)
	}
	if w, _ := types.WidthOf(in[0]); w != types.WidthUnknown && n > int64(w) {
		return 0, ir.Errorf(ir.ErrWidthOutOfRange, "%s amount %d exceeds input width %d", what, n, w)
	}
	return n, nil
}

// inferPad: identity when n <= width, otherwise widens to n bits.
// Sign-extends SInt, zero-extends UInt; signedness is retained either
// way.
func inferPad(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "pad"); d != nil {
		return nil, d
	}
	if d := wantHWInt(in[0], "pad"); d != nil {
		return nil, d
	}
	n, ok := attrs.Int("amount")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "pad requires an integer %q attribute", "amount")
	}
	if n < 0 {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "pad amount %d is negative", n)
	}
	signed := types.IsSigned(in[0])
	w, _ := types.WidthOf(in[0])
	if w == types.WidthUnknown {
		return one(makeInt(signed, types.WidthUnknown)), nil
	}
	if int64(w) >= n {
		return one(in[0]), nil
	}
	return one(makeInt(signed, int(n))), nil
}

// inferShl: widens by n, zero bits appended at the low end, signedness
// preserved.
func inferShl(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	n, d := shiftAmount(in, attrs, "shl")
	if d != nil {
		return nil, d
	}
	signed := types.IsSigned(in[0])
	w, _ := types.WidthOf(in[0])
	if w == types.WidthUnknown {
		return one(makeInt(signed, types.WidthUnknown)), nil
	}
	return one(makeInt(signed, w+int(n))), nil
}

// inferShr: narrows by min(n, width), signedness preserved. Shifting a
// signed value past its width leaves the 1-bit sign; shifting an
// unsigned value past its width leaves a 1-bit zero. Either way the
// result never narrows below one bit.
func inferShr(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	n, d := shiftAmount(in, attrs, "shr")
	if d != nil {
		return nil, d
	}
	signed := types.IsSigned(in[0])
	w, _ := types.WidthOf(in[0])
	if w == types.WidthUnknown {
		return one(makeInt(signed, types.WidthUnknown)), nil
	}
	return one(makeInt(signed, maxInt(w-int(n), 1))), nil
}

func shiftAmount(in []types.Type, attrs ir.AttrSet, what string) (int64, *ir.Diagnostic) {
	if d := wantArity(in, 1, what); d != nil {
		return 0, d
	}
	if d := wantHWInt(in[0], what); d != nil {
		return 0, d
	}
	n, ok := attrs.Int("amount")
	if !ok {
		return 0, ir.Errorf(ir.ErrAttrMissing, "%s requires an integer %q attribute", what, "amount")
	}
	if n < 0 {
		return 0, ir.Errorf(ir.ErrWidthOutOfRange, "%s amount %d is negative", what, n)
	}
	return n, nil
}

// maxDynamicShiftWidth bounds the shift-amount operand width for dshl:
// the result grows by 2^amountWidth - 1 bits, which stops being a
// representable hardware width long before the int64 limit.
const maxDynamicShiftWidth = 30

// inferDshl: dynamic left shift with worst-case growth. The result
// width is width + 2^amountWidth - 1.
func inferDshl(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	amtW, d := dynamicShiftOperands(in, "dshl")
	if d != nil {
		return nil, d
	}
	signed := types.IsSigned(in[0])
	w, _ := types.WidthOf(in[0])
	if w == types.WidthUnknown || amtW == types.WidthUnknown {
		return one(makeInt(signed, types.WidthUnknown)), nil
	}
	if amtW > maxDynamicShiftWidth {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "dshl amount width %d grows the result beyond any representable width", amtW)
	}
	return one(makeInt(signed, w+(1<<amtW)-1)), nil
}

// inferDshlw: dynamic left shift with growth capped at the input width
// (high bits truncate).
func inferDshlw(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if _, d := dynamicShiftOperands(in, "dshlw"); d != nil {
		return nil, d
	}
	return one(in[0]), nil
}

// inferDshr: dynamic right shift; the result keeps the input type.
func inferDshr(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if _, d := dynamicShiftOperands(in, "dshr"); d != nil {
		return nil, d
	}
	return one(in[0]), nil
}

func dynamicShiftOperands(in []types.Type, what string) (amountWidth int, d *ir.Diagnostic) {
	if d := wantArity(in, 2, what); d != nil {
		return 0, d
	}
	if d := wantHWInt(in[0], what); d != nil {
		return 0, d
	}
	amt, ok := in[1].(types.UInt)
	if !ok {
		return 0, ir.Errorf(ir.ErrKindMismatch, "%s shift amount must be unsigned, got %s", what, in[1])
	}
	return amt.Width, nil
}

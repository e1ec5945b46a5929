package infer

import (
	"math/big"

	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// inferConstant: a literal of a declared integer type with a known
// width. The value must fit the type's two's-complement range.
func inferConstant(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 0, "constant"); d != nil {
		return nil, d
	}
	declared, ok := attrs.Type("type")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "constant requires a %q type attribute", "type")
	}
	v, ok := attrs.BigInt("value")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "constant requires an integer %q attribute", "value")
	}
	switch declared.(type) {
	case types.UInt, types.SInt, types.Int:
	default:
		return nil, ir.Errorf(ir.ErrKindMismatch, "constant type must be an integer, got %s", declared)
	}
	w, _ := types.WidthOf(declared)
	if w == types.WidthUnknown {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "constant requires a known width, got %s", declared)
	}
	if d := checkConstantRange(v, declared, w); d != nil {
		return nil, d
	}
	return one(declared), nil
}

// checkConstantRange validates v against the representable range of an
// integer type of width w. Signless Int accepts any bit pattern: either
// the unsigned or the signed reading.
func checkConstantRange(v *big.Int, declared types.Type, w int) *ir.Diagnostic {
	lo := new(big.Int)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(w)) // 2^w
	switch declared.(type) {
	case types.UInt:
		// [0, 2^w)
	case types.SInt:
		half := new(big.Int).Rsh(hi, 1)
		lo.Neg(half) // -2^(w-1)
		hi = half    // 2^(w-1)
	case types.Int:
		half := new(big.Int).Rsh(hi, 1)
		lo.Neg(half) // accept either reading of the pattern
	}
	if v.Cmp(lo) < 0 || v.Cmp(hi) >= 0 {
		return ir.Errorf(ir.ErrWidthOutOfRange, "constant %s does not fit %s", v, declared)
	}
	return nil
}

// inferAggregateConstant: a vector literal with one integer element per
// slot.
func inferAggregateConstant(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 0, "aggregate_constant"); d != nil {
		return nil, d
	}
	declared, ok := attrs.Type("type")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "aggregate_constant requires a %q type attribute", "type")
	}
	v, ok := declared.(types.Vector)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "aggregate_constant type must be a vector, got %s", declared)
	}
	ew, ok := types.WidthOf(v.Elem)
	if !ok || ew == types.WidthUnknown {
		return nil, ir.Errorf(ir.ErrKindMismatch, "aggregate_constant element type must be an integer of known width, got %s", v.Elem)
	}
	elems, ok := attrs.List("value")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "aggregate_constant requires a list %q attribute", "value")
	}
	if len(elems) != v.Size {
		return nil, ir.Errorf(ir.ErrArityMismatch, "aggregate_constant has %d elements for %s", len(elems), v)
	}
	for i, e := range elems {
		bi, ok := e.(ir.BigIntAttr)
		if !ok || bi.Value == nil {
			return nil, ir.Errorf(ir.ErrAttrMissing, "aggregate_constant element %d is not an integer", i)
		}
		if d := checkConstantRange(bi.Value, v.Elem, ew); d != nil {
			return nil, d
		}
	}
	return one(v), nil
}

// inferInvalidValue: a poison value of any declared type, usable
// wherever that type is expected. Never a type error.
func inferInvalidValue(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 0, "invalid_value"); d != nil {
		return nil, d
	}
	declared, ok := attrs.Type("type")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "invalid_value requires a %q type attribute", "type")
	}
	return one(declared), nil
}

// inferWire: declares a storage location of the element type named by
// the "type" attribute. Wrapping storage in storage is rejected.
func inferWire(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 0, "wire"); d != nil {
		return nil, d
	}
	declared, ok := attrs.Type("type")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "wire requires a %q type attribute", "type")
	}
	if _, isInOut := declared.(types.InOut); isInOut {
		return nil, ir.Errorf(ir.ErrKindMismatch, "wire element type may not itself be an inout: %s", declared)
	}
	return one(types.InOut{Elem: declared}), nil
}

// inferReadInOut: reads the current value out of a storage location.
func inferReadInOut(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "read_inout"); d != nil {
		return nil, d
	}
	io, ok := in[0].(types.InOut)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "read_inout requires an inout operand, got %s", in[0])
	}
	return one(io.Elem), nil
}

// inferConnect: drives a storage location. The source type must exactly
// equal the destination's element type; no per-field coercion. Produces
// no results.
func inferConnect(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "connect"); d != nil {
		return nil, d
	}
	if _, ok := in[0].(types.InOut); !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "connect destination must be an inout, got %s", in[0])
	}
	if !types.InOutCompatible(in[0], in[1]) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "connect source %s does not match destination %s", in[1], in[0])
	}
	return nil, nil
}

// inferIndexInOut: projects a storage location for one element of a
// stored vector. Same index discipline as subaccess.
func inferIndexInOut(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "index_inout"); d != nil {
		return nil, d
	}
	io, ok := in[0].(types.InOut)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "index_inout requires an inout operand, got %s", in[0])
	}
	v, ok := io.Elem.(types.Vector)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "index_inout requires a stored vector, got %s", in[0])
	}
	idx, ok := in[1].(types.UInt)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "index_inout index must be unsigned, got %s", in[1])
	}
	if want := types.Log2Ceil(v.Size); idx.Width != want {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "index_inout index width must be exactly %d for %s, got %s", want, v, in[1])
	}
	return one(types.InOut{Elem: v.Elem}), nil
}

// inferLatency: annotates a value with a static delay; the type passes
// through unchanged.
func inferLatency(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "latency"); d != nil {
		return nil, d
	}
	if !types.IsPassive(in[0]) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "latency requires a passive operand, got %s", in[0])
	}
	cycles, ok := attrs.Int("cycles")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "latency requires an integer %q attribute", "cycles")
	}
	if cycles < 0 {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "latency cycles %d is negative", cycles)
	}
	return one(in[0]), nil
}

// inferStage: a staged register. Operands are clock, 1-bit enable, and
// the staged value; the result keeps the value's type.
func inferStage(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 3, "stage"); d != nil {
		return nil, d
	}
	if _, ok := in[0].(types.Clock); !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "stage clock operand must be a clock, got %s", in[0])
	}
	if !types.Equal(in[1], types.UInt{Width: 1}) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "stage enable must be uint<1>, got %s", in[1])
	}
	if !types.IsPassive(in[2]) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "stage value must be passive, got %s", in[2])
	}
	return one(in[2]), nil
}

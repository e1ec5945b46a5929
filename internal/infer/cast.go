package infer

import (
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// Casts are bit reinterpretations: none of them may alter the bit
// pattern's width. Sources whose width is unknown are accepted
// optimistically where the rule permits and re-checked once widths
// resolve.

// castSourceWidth returns the bit width a ground type contributes to a
// reinterpreting cast. Clock and the reset kinds are 1-bit castable.
func castSourceWidth(t types.Type) (int, bool) {
	switch t.(type) {
	case types.UInt, types.SInt, types.Int:
		w, _ := types.WidthOf(t)
		return w, true
	case types.Clock, types.Reset, types.AsyncReset:
		return 1, true
	default:
		return 0, false
	}
}

func inferAsSInt(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	w, d := reinterpretWidth(in, "as_sint")
	if d != nil {
		return nil, d
	}
	return one(types.SInt{Width: w}), nil
}

func inferAsUInt(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	w, d := reinterpretWidth(in, "as_uint")
	if d != nil {
		return nil, d
	}
	return one(types.UInt{Width: w}), nil
}

func reinterpretWidth(in []types.Type, what string) (int, *ir.Diagnostic) {
	if d := wantArity(in, 1, what); d != nil {
		return 0, d
	}
	w, ok := castSourceWidth(in[0])
	if !ok {
		return 0, ir.Errorf(ir.ErrKindMismatch, "%s cannot reinterpret %s", what, in[0])
	}
	return w, nil
}

// oneBitCast builds the as_clock / as_async_reset rules: the source must
// be 1-bit castable. An unknown source width is accepted optimistically.
func oneBitCast(result types.Type) rule {
	what := result.String()
	return func(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
		if d := wantArity(in, 1, "as_"+what); d != nil {
			return nil, d
		}
		w, ok := castSourceWidth(in[0])
		if !ok {
			return nil, ir.Errorf(ir.ErrKindMismatch, "as_%s cannot reinterpret %s", what, in[0])
		}
		if w != types.WidthUnknown && w != 1 {
			return nil, ir.Errorf(ir.ErrWidthOutOfRange, "as_%s requires a 1-bit source, got %s", what, in[0])
		}
		return one(result), nil
	}
}

// inferStdIntCast crosses the hardware/standard integer boundary.
// uint<w>/sint<w> becomes int<w>; int<w> becomes the uint/sint named by
// the "to" attribute. Both directions require a known, matching width.
func inferStdIntCast(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "std_int_cast"); d != nil {
		return nil, d
	}
	switch src := in[0].(type) {
	case types.UInt, types.SInt:
		w, _ := types.WidthOf(src)
		if w == types.WidthUnknown {
			return nil, ir.Errorf(ir.ErrWidthOutOfRange, "std_int_cast requires a known source width, got %s", src)
		}
		return one(types.Int{Width: w}), nil
	case types.Int:
		to, ok := attrs.Type("to")
		if !ok {
			return nil, ir.Errorf(ir.ErrAttrMissing, "std_int_cast from %s requires a %q type attribute", src, "to")
		}
		if !types.IsHWInt(to) {
			return nil, ir.Errorf(ir.ErrKindMismatch, "std_int_cast target must be uint or sint, got %s", to)
		}
		tw, _ := types.WidthOf(to)
		if tw != src.Width {
			return nil, ir.Errorf(ir.ErrWidthOutOfRange, "std_int_cast must preserve width: %s to %s", src, to)
		}
		return one(to), nil
	default:
		return nil, ir.Errorf(ir.ErrKindMismatch, "std_int_cast cannot reinterpret %s", in[0])
	}
}

// inferAnalogInOutCast crosses the analog/inout boundary. An inout
// source collapses to analog of the element width; an analog source
// becomes the inout type named by "to", width preserved.
func inferAnalogInOutCast(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "analog_inout_cast"); d != nil {
		return nil, d
	}
	switch src := in[0].(type) {
	case types.InOut:
		w, ok := castSourceWidth(src.Elem)
		if !ok {
			return nil, ir.Errorf(ir.ErrKindMismatch, "analog_inout_cast cannot reinterpret %s", src)
		}
		return one(types.Analog{Width: w}), nil
	case types.Analog:
		to, ok := attrs.Type("to")
		if !ok {
			return nil, ir.Errorf(ir.ErrAttrMissing, "analog_inout_cast from %s requires a %q type attribute", src, "to")
		}
		io, ok := to.(types.InOut)
		if !ok {
			return nil, ir.Errorf(ir.ErrKindMismatch, "analog_inout_cast target must be an inout, got %s", to)
		}
		tw, ok := castSourceWidth(io.Elem)
		if !ok {
			return nil, ir.Errorf(ir.ErrKindMismatch, "analog_inout_cast target element %s is not bit-castable", io.Elem)
		}
		if src.Width != tw {
			return nil, ir.Errorf(ir.ErrWidthOutOfRange, "analog_inout_cast must preserve width: %s to %s", src, to)
		}
		return one(to), nil
	default:
		return nil, ir.Errorf(ir.ErrKindMismatch, "analog_inout_cast cannot reinterpret %s", in[0])
	}
}

// inferBitcast reinterprets one passive type as another of the same
// total bit count.
func inferBitcast(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "bitcast"); d != nil {
		return nil, d
	}
	srcBits, ok := types.BitWidth(in[0])
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "bitcast source %s has no known bit width", in[0])
	}
	to, ok := attrs.Type("to")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "bitcast requires a %q type attribute", "to")
	}
	dstBits, ok := types.BitWidth(to)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "bitcast target %s has no known bit width", to)
	}
	if srcBits != dstBits {
		return nil, ir.Errorf(ir.ErrWidthOutOfRange, "bitcast must preserve bit count: %s (%d bits) to %s (%d bits)", in[0], srcBits, to, dstBits)
	}
	return one(to), nil
}

// inferAsPassive strips flips: the result is the passive equivalent of
// the source. Storage wrappers cannot be made passive.
func inferAsPassive(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "as_passive"); d != nil {
		return nil, d
	}
	if !types.IsPassive(types.PassiveEquivalent(in[0])) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "as_passive cannot strip storage from %s", in[0])
	}
	return one(types.PassiveEquivalent(in[0])), nil
}

// inferAsNonPassive reintroduces flips: the "to" attribute names the
// directed type, whose passive equivalent must match the source exactly.
func inferAsNonPassive(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "as_non_passive"); d != nil {
		return nil, d
	}
	if !types.IsPassive(in[0]) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "as_non_passive requires a passive source, got %s", in[0])
	}
	to, ok := attrs.Type("to")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "as_non_passive requires a %q type attribute", "to")
	}
	if !types.Equal(types.PassiveEquivalent(to), in[0]) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "as_non_passive target %s does not project to source %s", to, in[0])
	}
	return one(to), nil
}

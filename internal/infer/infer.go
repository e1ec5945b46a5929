// Package infer computes operation result types from operand types and
// attributes.
//
// One pure rule per operation kind, selected through a dispatch table
// (no open-ended subclassing; extending the IR means registering a
// rule). Every rule either returns concrete result types or an
// ir.Diagnostic explaining why the combination is ill-typed. Rules read
// only their explicit inputs and are safe to invoke concurrently.
package infer

import (
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// rule maps operand types and attributes to result types, or fails with
// a typed diagnostic.
type rule func(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic)

var rules = map[ir.OpKind]rule{
	ir.KindAdd: binaryArith(addWidth),
	ir.KindSub: binaryArith(addWidth),
	ir.KindMul: binaryArith(mulWidth),
	ir.KindDiv: inferDiv,
	ir.KindRem: inferRem,
	ir.KindAnd: bitwise,
	ir.KindOr:  bitwise,
	ir.KindXor: bitwise,

	ir.KindLeq: comparison,
	ir.KindLt:  comparison,
	ir.KindGeq: comparison,
	ir.KindGt:  comparison,
	ir.KindEq:  comparison,
	ir.KindNeq: comparison,

	ir.KindCat:   inferCat,
	ir.KindBits:  inferBits,
	ir.KindHead:  inferHead,
	ir.KindTail:  inferTail,
	ir.KindPad:   inferPad,
	ir.KindShl:   inferShl,
	ir.KindShr:   inferShr,
	ir.KindDshl:  inferDshl,
	ir.KindDshlw: inferDshlw,
	ir.KindDshr:  inferDshr,
	ir.KindMux:   inferMux,

	ir.KindAsSInt:          inferAsSInt,
	ir.KindAsUInt:          inferAsUInt,
	ir.KindAsClock:         oneBitCast(types.Clock{}),
	ir.KindAsAsyncReset:    oneBitCast(types.AsyncReset{}),
	ir.KindStdIntCast:      inferStdIntCast,
	ir.KindAnalogInOutCast: inferAnalogInOutCast,
	ir.KindAsPassive:       inferAsPassive,
	ir.KindAsNonPassive:    inferAsNonPassive,

	ir.KindSubfield:  inferSubfield,
	ir.KindSubindex:  inferSubindex,
	ir.KindSubaccess: inferSubaccess,

	ir.KindConstant:     inferConstant,
	ir.KindInvalidValue: inferInvalidValue,

	ir.KindStructCreate:  inferStructCreate,
	ir.KindStructExtract: inferStructExtract,
	ir.KindStructInject:  inferStructInject,
	ir.KindStructExplode: inferStructExplode,

	ir.KindArrayCreate: inferArrayCreate,
	ir.KindArrayGet:    inferArrayGet,
	ir.KindArraySlice:  inferArraySlice,
	ir.KindArrayConcat: inferArrayConcat,

	ir.KindBitcast:           inferBitcast,
	ir.KindAggregateConstant: inferAggregateConstant,

	ir.KindWire:       inferWire,
	ir.KindReadInOut:  inferReadInOut,
	ir.KindConnect:    inferConnect,
	ir.KindIndexInOut: inferIndexInOut,

	ir.KindLatency: inferLatency,
	ir.KindStage:   inferStage,
}

// ResultTypes computes the result types for an operation of the given
// kind from its operand types and attributes. On failure it returns a
// diagnostic and construction must be refused; it never returns partial
// results.
func ResultTypes(kind ir.OpKind, in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	r, ok := rules[kind]
	if !ok {
		return nil, ir.Errorf(ir.ErrUnknownOp, "no inference rule registered for %q", kind)
	}
	return r(in, attrs)
}

// HasRule reports whether the kind has a registered inference rule.
func HasRule(kind ir.OpKind) bool {
	_, ok := rules[kind]
	return ok
}

func one(t types.Type) []types.Type { return []types.Type{t} }

func wantArity(in []types.Type, n int, what string) *ir.Diagnostic {
	if len(in) != n {
		return ir.Errorf(ir.ErrArityMismatch, "%s expects %d operand(s), got %d", what, n, len(in))
	}
	return nil
}

func wantHWInt(t types.Type, what string) *ir.Diagnostic {
	if !types.IsHWInt(t) {
		return ir.Errorf(ir.ErrKindMismatch, "%s requires a uint or sint operand, got %s", what, t)
	}
	return nil
}

// makeInt builds a UInt or SInt of the given width.
func makeInt(signed bool, width int) types.Type {
	if signed {
		return types.SInt{Width: width}
	}
	return types.UInt{Width: width}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

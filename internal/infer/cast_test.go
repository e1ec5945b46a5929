package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

func TestAsSIntAsUInt(t *testing.T) {
	// Bit reinterpretation: width never changes.
	got := inferOne(t, ir.KindAsSInt, []types.Type{u(8)}, nil)
	assert.True(t, types.Equal(s(8), got))

	got = inferOne(t, ir.KindAsUInt, []types.Type{s(8)}, nil)
	assert.True(t, types.Equal(u(8), got))

	// Clock and reset kinds reinterpret as 1-bit integers.
	got = inferOne(t, ir.KindAsUInt, []types.Type{types.Clock{}}, nil)
	assert.True(t, types.Equal(u(1), got))
	got = inferOne(t, ir.KindAsSInt, []types.Type{types.AsyncReset{}}, nil)
	assert.True(t, types.Equal(s(1), got))

	// Unknown widths pass through.
	got = inferOne(t, ir.KindAsUInt, []types.Type{s(types.WidthUnknown)}, nil)
	assert.True(t, types.Equal(u(types.WidthUnknown), got))

	inferFail(t, ir.KindAsSInt, []types.Type{types.Vector{Elem: u(1), Size: 2}}, nil, ir.ErrKindMismatch)
}

func TestAsClockAsAsyncReset(t *testing.T) {
	got := inferOne(t, ir.KindAsClock, []types.Type{u(1)}, nil)
	assert.True(t, types.Equal(types.Clock{}, got))

	got = inferOne(t, ir.KindAsAsyncReset, []types.Type{types.Reset{}}, nil)
	assert.True(t, types.Equal(types.AsyncReset{}, got))

	// Requires a 1-bit-castable source.
	inferFail(t, ir.KindAsClock, []types.Type{u(2)}, nil, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindAsAsyncReset, []types.Type{handshake}, nil, ir.ErrKindMismatch)

	// Unknown width is accepted optimistically.
	got = inferOne(t, ir.KindAsClock, []types.Type{u(types.WidthUnknown)}, nil)
	assert.True(t, types.Equal(types.Clock{}, got))
}

func TestStdIntCast(t *testing.T) {
	// Hardware to standard: width carries over.
	got := inferOne(t, ir.KindStdIntCast, []types.Type{u(8)}, nil)
	assert.True(t, types.Equal(types.Int{Width: 8}, got))
	got = inferOne(t, ir.KindStdIntCast, []types.Type{s(4)}, nil)
	assert.True(t, types.Equal(types.Int{Width: 4}, got))

	// Standard to hardware: the target comes from the "to" attribute
	// and must preserve width.
	got = inferOne(t, ir.KindStdIntCast, []types.Type{types.Int{Width: 8}}, ir.AttrSet{typeAttr("to", s(8))})
	assert.True(t, types.Equal(s(8), got))

	inferFail(t, ir.KindStdIntCast, []types.Type{types.Int{Width: 8}}, ir.AttrSet{typeAttr("to", s(4))}, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindStdIntCast, []types.Type{types.Int{Width: 8}}, nil, ir.ErrAttrMissing)
	inferFail(t, ir.KindStdIntCast, []types.Type{u(types.WidthUnknown)}, nil, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindStdIntCast, []types.Type{types.Clock{}}, nil, ir.ErrKindMismatch)
}

func TestAnalogInOutCast(t *testing.T) {
	// inout<uint<8>> collapses to analog<8>.
	got := inferOne(t, ir.KindAnalogInOutCast, []types.Type{types.InOut{Elem: u(8)}}, nil)
	assert.True(t, types.Equal(types.Analog{Width: 8}, got))

	// analog<8> becomes the declared inout, width preserved.
	got = inferOne(t, ir.KindAnalogInOutCast,
		[]types.Type{types.Analog{Width: 8}},
		ir.AttrSet{typeAttr("to", types.InOut{Elem: u(8)})})
	assert.True(t, types.Equal(types.InOut{Elem: u(8)}, got))

	inferFail(t, ir.KindAnalogInOutCast,
		[]types.Type{types.Analog{Width: 8}},
		ir.AttrSet{typeAttr("to", types.InOut{Elem: u(4)})}, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindAnalogInOutCast, []types.Type{u(8)}, nil, ir.ErrKindMismatch)
}

func TestBitcast(t *testing.T) {
	vec := types.Vector{Elem: u(4), Size: 4}

	got := inferOne(t, ir.KindBitcast, []types.Type{vec}, ir.AttrSet{typeAttr("to", u(16))})
	assert.True(t, types.Equal(u(16), got))

	pair := types.Bundle{Fields: []types.Field{
		{Name: "hi", Type: u(8)},
		{Name: "lo", Type: u(8)},
	}}
	got = inferOne(t, ir.KindBitcast, []types.Type{u(16)}, ir.AttrSet{typeAttr("to", pair)})
	assert.True(t, types.Equal(pair, got))

	// Bit counts must match exactly.
	inferFail(t, ir.KindBitcast, []types.Type{vec}, ir.AttrSet{typeAttr("to", u(15))}, ir.ErrWidthOutOfRange)
	// Unknown widths cannot be bitcast.
	inferFail(t, ir.KindBitcast, []types.Type{u(types.WidthUnknown)}, ir.AttrSet{typeAttr("to", u(8))}, ir.ErrKindMismatch)
}

func TestAsPassiveAsNonPassive(t *testing.T) {
	passive := types.PassiveEquivalent(handshake)

	got := inferOne(t, ir.KindAsPassive, []types.Type{handshake}, nil)
	assert.True(t, types.Equal(passive, got))
	assert.True(t, types.IsPassive(got))

	// Round back: the directed target must project to the source.
	got = inferOne(t, ir.KindAsNonPassive, []types.Type{passive}, ir.AttrSet{typeAttr("to", handshake)})
	assert.True(t, types.Equal(handshake, got))

	inferFail(t, ir.KindAsNonPassive, []types.Type{u(8)}, ir.AttrSet{typeAttr("to", handshake)}, ir.ErrKindMismatch)
	inferFail(t, ir.KindAsPassive, []types.Type{types.InOut{Elem: u(1)}}, nil, ir.ErrKindMismatch)
}

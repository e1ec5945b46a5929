package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

func intAttr(name string, v int64) ir.Attr {
	return ir.Attr{Name: name, Value: ir.IntAttr(v)}
}

func TestCat(t *testing.T) {
	got := inferOne(t, ir.KindCat, []types.Type{u(4), u(8)}, nil)
	assert.True(t, types.Equal(u(12), got))

	// Concatenation never preserves signedness.
	got = inferOne(t, ir.KindCat, []types.Type{s(4), s(8)}, nil)
	assert.True(t, types.Equal(u(12), got))

	// Variadic: three or more operands are accepted.
	got = inferOne(t, ir.KindCat, []types.Type{u(1), u(2), u(3)}, nil)
	assert.True(t, types.Equal(u(6), got))

	// Unknown operand width makes the sum unknown.
	got = inferOne(t, ir.KindCat, []types.Type{u(4), u(types.WidthUnknown)}, nil)
	assert.True(t, types.Equal(u(types.WidthUnknown), got))

	inferFail(t, ir.KindCat, []types.Type{u(4)}, nil, ir.ErrArityMismatch)
	inferFail(t, ir.KindCat, []types.Type{u(4), types.Clock{}}, nil, ir.ErrKindMismatch)
}

func TestBits(t *testing.T) {
	// bits(uint<8>, 7, 0) succeeds with type uint<8>.
	got := inferOne(t, ir.KindBits, []types.Type{u(8)}, ir.AttrSet{intAttr("hi", 7), intAttr("lo", 0)})
	assert.True(t, types.Equal(u(8), got))

	// bits(uint<8>, 3, 1) -> uint<3>, diagnostic-free.
	got = inferOne(t, ir.KindBits, []types.Type{u(8)}, ir.AttrSet{intAttr("hi", 3), intAttr("lo", 1)})
	assert.True(t, types.Equal(u(3), got))

	// Signed input still produces an unsigned slice.
	got = inferOne(t, ir.KindBits, []types.Type{s(8)}, ir.AttrSet{intAttr("hi", 4), intAttr("lo", 4)})
	assert.True(t, types.Equal(u(1), got))

	// bits(uint<8>, 8, 0) fails: hi must be < width.
	inferFail(t, ir.KindBits, []types.Type{u(8)}, ir.AttrSet{intAttr("hi", 8), intAttr("lo", 0)}, ir.ErrWidthOutOfRange)
	// lo > hi is malformed.
	inferFail(t, ir.KindBits, []types.Type{u(8)}, ir.AttrSet{intAttr("hi", 2), intAttr("lo", 3)}, ir.ErrWidthOutOfRange)
	// Negative lo is malformed.
	inferFail(t, ir.KindBits, []types.Type{u(8)}, ir.AttrSet{intAttr("hi", 2), intAttr("lo", -1)}, ir.ErrWidthOutOfRange)
	// Missing attributes are rejected.
	inferFail(t, ir.KindBits, []types.Type{u(8)}, ir.AttrSet{intAttr("hi", 2)}, ir.ErrAttrMissing)

	// Unknown input width defers the upper-bound check.
	got = inferOne(t, ir.KindBits, []types.Type{u(types.WidthUnknown)}, ir.AttrSet{intAttr("hi", 100), intAttr("lo", 10)})
	assert.True(t, types.Equal(u(91), got))
}

func TestHeadTail(t *testing.T) {
	got := inferOne(t, ir.KindHead, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 3)})
	assert.True(t, types.Equal(u(3), got))

	got = inferOne(t, ir.KindTail, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 3)})
	assert.True(t, types.Equal(u(5), got))

	// n == width is legal for both; tail leaves a zero-width result.
	got = inferOne(t, ir.KindHead, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 8)})
	assert.True(t, types.Equal(u(8), got))
	got = inferOne(t, ir.KindTail, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 8)})
	assert.True(t, types.Equal(u(0), got))

	inferFail(t, ir.KindHead, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 9)}, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindTail, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", -1)}, ir.ErrWidthOutOfRange)
}

func TestPad(t *testing.T) {
	// n <= width: identity.
	got := inferOne(t, ir.KindPad, []types.Type{s(8)}, ir.AttrSet{intAttr("amount", 4)})
	assert.True(t, types.Equal(s(8), got))

	// n > width: widen, signedness retained.
	got = inferOne(t, ir.KindPad, []types.Type{s(8)}, ir.AttrSet{intAttr("amount", 12)})
	assert.True(t, types.Equal(s(12), got))
	got = inferOne(t, ir.KindPad, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 12)})
	assert.True(t, types.Equal(u(12), got))
}

func TestShlShr(t *testing.T) {
	got := inferOne(t, ir.KindShl, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 3)})
	assert.True(t, types.Equal(u(11), got))
	got = inferOne(t, ir.KindShl, []types.Type{s(8)}, ir.AttrSet{intAttr("amount", 3)})
	assert.True(t, types.Equal(s(11), got))

	got = inferOne(t, ir.KindShr, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 3)})
	assert.True(t, types.Equal(u(5), got))

	// Shifting past the width leaves a single bit: the sign for sint,
	// zero for uint.
	got = inferOne(t, ir.KindShr, []types.Type{s(8)}, ir.AttrSet{intAttr("amount", 20)})
	assert.True(t, types.Equal(s(1), got))
	got = inferOne(t, ir.KindShr, []types.Type{u(8)}, ir.AttrSet{intAttr("amount", 20)})
	assert.True(t, types.Equal(u(1), got))
}

func TestDynamicShifts(t *testing.T) {
	// dshl grows by the worst case: 2^amountWidth - 1.
	got := inferOne(t, ir.KindDshl, []types.Type{u(8), u(3)}, nil)
	assert.True(t, types.Equal(u(15), got), "got %s", got)

	got = inferOne(t, ir.KindDshl, []types.Type{s(8), u(2)}, nil)
	assert.True(t, types.Equal(s(11), got))

	// dshlw caps growth at the input width.
	got = inferOne(t, ir.KindDshlw, []types.Type{s(8), u(3)}, nil)
	assert.True(t, types.Equal(s(8), got))

	// dshr preserves the input type.
	got = inferOne(t, ir.KindDshr, []types.Type{s(8), u(3)}, nil)
	assert.True(t, types.Equal(s(8), got))

	// The shift amount must be unsigned.
	inferFail(t, ir.KindDshl, []types.Type{u(8), s(3)}, nil, ir.ErrKindMismatch)
	inferFail(t, ir.KindDshr, []types.Type{u(8), s(3)}, nil, ir.ErrKindMismatch)

	// Absurd amount widths are rejected rather than overflowing.
	inferFail(t, ir.KindDshl, []types.Type{u(8), u(40)}, nil, ir.ErrWidthOutOfRange)
}

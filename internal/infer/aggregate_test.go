package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

func strAttr(name, v string) ir.Attr {
	return ir.Attr{Name: name, Value: ir.StringAttr(v)}
}

func typeAttr(name string, t types.Type) ir.Attr {
	return ir.Attr{Name: name, Value: ir.TypeAttr{Type: t}}
}

var handshake = types.Bundle{Fields: []types.Field{
	{Name: "data", Type: types.UInt{Width: 8}},
	{Name: "valid", Type: types.UInt{Width: 1}},
	{Name: "ready", Type: types.UInt{Width: 1}, Flip: true},
}}

func TestSubfield(t *testing.T) {
	got := inferOne(t, ir.KindSubfield, []types.Type{handshake}, ir.AttrSet{strAttr("field", "data")})
	assert.True(t, types.Equal(u(8), got))

	// A flipped field returns its declared type; the flip adjusts the
	// access site, not the value type.
	got = inferOne(t, ir.KindSubfield, []types.Type{handshake}, ir.AttrSet{strAttr("field", "ready")})
	assert.True(t, types.Equal(u(1), got))

	inferFail(t, ir.KindSubfield, []types.Type{handshake}, ir.AttrSet{strAttr("field", "missing")}, ir.ErrFieldNotFound)
	inferFail(t, ir.KindSubfield, []types.Type{u(8)}, ir.AttrSet{strAttr("field", "data")}, ir.ErrKindMismatch)
}

func TestSubindex(t *testing.T) {
	vec := types.Vector{Elem: u(4), Size: 4}

	got := inferOne(t, ir.KindSubindex, []types.Type{vec}, ir.AttrSet{intAttr("index", 3)})
	assert.True(t, types.Equal(u(4), got))

	// subindex on vector<uint<4>, 4> with index 5: rejected.
	inferFail(t, ir.KindSubindex, []types.Type{vec}, ir.AttrSet{intAttr("index", 5)}, ir.ErrIndexOutOfRange)
	inferFail(t, ir.KindSubindex, []types.Type{vec}, ir.AttrSet{intAttr("index", -1)}, ir.ErrIndexOutOfRange)
}

func TestSubaccess(t *testing.T) {
	vec := types.Vector{Elem: u(4), Size: 4}

	// Dynamic index width must equal log2ceil(4) == 2 exactly.
	got := inferOne(t, ir.KindSubaccess, []types.Type{vec, u(2)}, nil)
	assert.True(t, types.Equal(u(4), got))

	// A mismatch is rejected, not coerced.
	inferFail(t, ir.KindSubaccess, []types.Type{vec, u(3)}, nil, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindSubaccess, []types.Type{vec, u(1)}, nil, ir.ErrWidthOutOfRange)
	inferFail(t, ir.KindSubaccess, []types.Type{vec, s(2)}, nil, ir.ErrKindMismatch)

	// Single-element vectors take a zero-width index.
	one := types.Vector{Elem: u(4), Size: 1}
	got = inferOne(t, ir.KindSubaccess, []types.Type{one, u(0)}, nil)
	assert.True(t, types.Equal(u(4), got))
}

func TestStructCreate(t *testing.T) {
	pair := types.Bundle{Fields: []types.Field{
		{Name: "a", Type: u(4)},
		{Name: "b", Type: s(2)},
	}}

	got := inferOne(t, ir.KindStructCreate, []types.Type{u(4), s(2)}, ir.AttrSet{typeAttr("type", pair)})
	assert.True(t, types.Equal(pair, got))

	inferFail(t, ir.KindStructCreate, []types.Type{u(4)}, ir.AttrSet{typeAttr("type", pair)}, ir.ErrArityMismatch)
	inferFail(t, ir.KindStructCreate, []types.Type{u(4), u(2)}, ir.AttrSet{typeAttr("type", pair)}, ir.ErrKindMismatch)
	// Flipped bundles are not hw structs.
	inferFail(t, ir.KindStructCreate, []types.Type{u(8), u(1), u(1)}, ir.AttrSet{typeAttr("type", handshake)}, ir.ErrKindMismatch)
}

func TestStructInject(t *testing.T) {
	// The injected value must exactly match the field type; the result
	// is the struct's own type, unchanged.
	got := inferOne(t, ir.KindStructInject, []types.Type{handshake, u(8)}, ir.AttrSet{strAttr("field", "data")})
	assert.True(t, types.Equal(handshake, got))

	inferFail(t, ir.KindStructInject, []types.Type{handshake, u(4)}, ir.AttrSet{strAttr("field", "data")}, ir.ErrKindMismatch)
	inferFail(t, ir.KindStructInject, []types.Type{handshake, u(8)}, ir.AttrSet{strAttr("field", "missing")}, ir.ErrFieldNotFound)
}

func TestStructExplode(t *testing.T) {
	out, diag := ResultTypes(ir.KindStructExplode, []types.Type{handshake}, nil)
	require.Nil(t, diag)
	require.Len(t, out, 3)
	assert.True(t, types.Equal(u(8), out[0]))
	assert.True(t, types.Equal(u(1), out[1]))
	assert.True(t, types.Equal(u(1), out[2]))

	inferFail(t, ir.KindStructExplode, []types.Type{types.Bundle{}}, nil, ir.ErrKindMismatch)
}

func TestArrayCreate(t *testing.T) {
	got := inferOne(t, ir.KindArrayCreate, []types.Type{u(4), u(4), u(4)}, nil)
	assert.True(t, types.Equal(types.Vector{Elem: u(4), Size: 3}, got))

	inferFail(t, ir.KindArrayCreate, []types.Type{}, nil, ir.ErrArityMismatch)
	inferFail(t, ir.KindArrayCreate, []types.Type{u(4), u(8)}, nil, ir.ErrKindMismatch)
}

func TestArrayGet(t *testing.T) {
	vec := types.Vector{Elem: s(4), Size: 8}
	got := inferOne(t, ir.KindArrayGet, []types.Type{vec, u(3)}, nil)
	assert.True(t, types.Equal(s(4), got))

	inferFail(t, ir.KindArrayGet, []types.Type{vec, u(4)}, nil, ir.ErrWidthOutOfRange)
}

func TestArraySlice(t *testing.T) {
	vec := types.Vector{Elem: u(4), Size: 8}

	got := inferOne(t, ir.KindArraySlice, []types.Type{vec, u(3)}, ir.AttrSet{intAttr("size", 4)})
	assert.True(t, types.Equal(types.Vector{Elem: u(4), Size: 4}, got))

	// Declared size may not exceed the input size.
	inferFail(t, ir.KindArraySlice, []types.Type{vec, u(3)}, ir.AttrSet{intAttr("size", 9)}, ir.ErrIndexOutOfRange)
	// Low-index width must be exactly log2ceil(8) == 3.
	inferFail(t, ir.KindArraySlice, []types.Type{vec, u(2)}, ir.AttrSet{intAttr("size", 4)}, ir.ErrWidthOutOfRange)
}

func TestArrayConcat(t *testing.T) {
	a := types.Vector{Elem: u(4), Size: 3}
	b := types.Vector{Elem: u(4), Size: 5}
	got := inferOne(t, ir.KindArrayConcat, []types.Type{a, b}, nil)
	assert.True(t, types.Equal(types.Vector{Elem: u(4), Size: 8}, got))

	c := types.Vector{Elem: u(8), Size: 5}
	inferFail(t, ir.KindArrayConcat, []types.Type{a, c}, nil, ir.ErrKindMismatch)
}

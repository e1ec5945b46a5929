package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sigil/internal/builder"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

func TestNode_AcceptsCheckedConstruction(t *testing.T) {
	g := ir.NewGraph("adder")
	a := g.AddArg("a", types.UInt{Width: 8})
	b := g.AddArg("b", types.UInt{Width: 8})
	bld := builder.New(g)

	n, diag := bld.Build(ir.KindAdd, []*ir.Value{a, b}, nil, ir.Loc{})
	require.Nil(t, diag)
	assert.Nil(t, Node(n))
}

func TestNode_RejectsStaleResultType(t *testing.T) {
	g := ir.NewGraph("stale")
	a := g.AddArg("a", types.UInt{Width: 8})
	b := g.AddArg("b", types.UInt{Width: 8})
	bld := builder.New(g)

	n := bld.BuildUnchecked(ir.KindAdd, []*ir.Value{a, b}, nil,
		[]builder.DeclaredResult{{Name: "sum", Type: types.UInt{Width: 4}}},
		ir.Loc{File: "t.sigil", Line: 2})

	diag := Node(n)
	require.NotNil(t, diag)
	assert.Equal(t, ir.ErrTypeMismatch, diag.Code)
	assert.Equal(t, 2, diag.Loc.Line)
	assert.Contains(t, diag.Message, "uint<4>")
	assert.Contains(t, diag.Message, "uint<9>")
}

func TestNode_SurfacesInferenceFailure(t *testing.T) {
	g := ir.NewGraph("bad")
	a := g.AddArg("a", types.UInt{Width: 8})
	clk := g.AddArg("clk", types.Clock{})
	bld := builder.New(g)

	n := bld.BuildUnchecked(ir.KindAdd, []*ir.Value{a, clk}, nil,
		[]builder.DeclaredResult{{Name: "x", Type: types.UInt{Width: 9}}}, ir.Loc{})

	diag := Node(n)
	require.NotNil(t, diag)
	assert.Equal(t, ir.ErrKindMismatch, diag.Code)
}

func TestNode_ResultCountMismatch(t *testing.T) {
	bundle := types.Bundle{Fields: []types.Field{
		{Name: "x", Type: types.UInt{Width: 4}},
		{Name: "y", Type: types.UInt{Width: 4}},
	}}
	g := ir.NewGraph("explode")
	v := g.AddArg("v", bundle)
	bld := builder.New(g)

	n := bld.BuildUnchecked(ir.KindStructExplode, []*ir.Value{v}, nil,
		[]builder.DeclaredResult{{Name: "only", Type: types.UInt{Width: 4}}}, ir.Loc{})

	diag := Node(n)
	require.NotNil(t, diag)
	assert.Equal(t, ir.ErrTypeMismatch, diag.Code)
	assert.Contains(t, diag.Message, "1 results")
	assert.Contains(t, diag.Message, "computes 2")
}

func TestGraph_CollectsAllViolations(t *testing.T) {
	g := ir.NewGraph("broken")
	a := g.AddArg("a", types.UInt{Width: 8})
	b := g.AddArg("b", types.UInt{Width: 8})
	bld := builder.New(g)

	bld.BuildUnchecked(ir.KindAdd, []*ir.Value{a, b}, nil,
		[]builder.DeclaredResult{{Name: "s0", Type: types.UInt{Width: 4}}},
		ir.Loc{File: "t.sigil", Line: 2})
	good, diag := bld.Build(ir.KindSub, []*ir.Value{a, b}, nil, ir.Loc{File: "t.sigil", Line: 3})
	require.Nil(t, diag)
	bld.BuildUnchecked(ir.KindMul, []*ir.Value{good.Result(), b}, nil,
		[]builder.DeclaredResult{{Name: "p", Type: types.UInt{Width: 3}}},
		ir.Loc{File: "t.sigil", Line: 4})

	diags := Graph(g)
	require.Len(t, diags, 2, "collects every violation, not just the first")
	assert.Equal(t, 2, diags[0].Loc.Line)
	assert.Equal(t, 4, diags[1].Loc.Line)
}

func TestGraph_Idempotent(t *testing.T) {
	g := ir.NewGraph("broken")
	a := g.AddArg("a", types.UInt{Width: 8})
	bld := builder.New(g)
	bld.BuildUnchecked(ir.KindTail, []*ir.Value{a},
		ir.AttrSet{{Name: "amount", Value: ir.IntAttr(2)}},
		[]builder.DeclaredResult{{Name: "x", Type: types.UInt{Width: 5}}}, ir.Loc{})

	first := Graph(g)
	second := Graph(g)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0], "verification never mutates the graph")
}

func TestGraph_UseBeforeDefinition(t *testing.T) {
	g := ir.NewGraph("ooo")
	a := g.AddArg("a", types.UInt{Width: 8})
	bld := builder.New(g)

	// Build the second node first against a value defined later.
	phantom := ir.NewValue("late", types.UInt{Width: 8}, nil)
	bld.BuildUnchecked(ir.KindAdd, []*ir.Value{a, phantom}, nil,
		[]builder.DeclaredResult{{Name: "x", Type: types.UInt{Width: 9}}}, ir.Loc{})

	diags := Graph(g)
	require.NotEmpty(t, diags)
	assert.Equal(t, ir.ErrUseBeforeDef, diags[0].Code)
	assert.Contains(t, diags[0].Message, "%late")
}

func TestGraph_CleanGraphHasNoDiagnostics(t *testing.T) {
	g := ir.NewGraph("ok")
	a := g.AddArg("a", types.UInt{Width: 8})
	b := g.AddArg("b", types.UInt{Width: 8})
	bld := builder.New(g)
	sum, diag := bld.Build(ir.KindAdd, []*ir.Value{a, b}, nil, ir.Loc{})
	require.Nil(t, diag)
	_, diag = bld.Build(ir.KindBits, []*ir.Value{sum.Result()},
		ir.AttrSet{{Name: "hi", Value: ir.IntAttr(3)}, {Name: "lo", Value: ir.IntAttr(0)}}, ir.Loc{})
	require.Nil(t, diag)

	assert.Empty(t, Graph(g))
}

// Package builder constructs operation nodes.
//
// Construction is two-phase. Build is the checked path: it
// runs inference and refuses construction when the operand/attribute
// combination is ill-typed, so nodes it produces are well-typed by
// construction. BuildUnchecked is the explicit escape hatch for callers
// that already carry declared result types (the parser, graph
// transformations): it stores whatever it is given, and the verifier is
// the documented boundary that re-establishes the invariant.
package builder

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/roach88/sigil/internal/infer"
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// DeclaredResult is a result slot for the unchecked path: the name the
// source text bound and the type it declared. An empty Name takes the
// next auto-generated one.
type DeclaredResult struct {
	Name string
	Type types.Type
}

func newNodeID() uuid.UUID { return uuid.New() }

// Builder appends nodes to a single graph and hands out sequential
// result names. Not safe for concurrent use on one graph.
type Builder struct {
	g    *ir.Graph
	next int
}

// New creates a builder over g. Auto-generated result names continue
// after any values the graph already holds.
func New(g *ir.Graph) *Builder {
	count := 0
	for _, n := range g.Nodes {
		count += len(n.Results)
	}
	return &Builder{g: g, next: count}
}

// Graph returns the graph under construction.
func (b *Builder) Graph() *ir.Graph { return b.g }

// Build constructs a node on the checked path: inference computes the
// result types, and an inference failure refuses construction and
// returns the diagnostic tied to loc. The node is appended to the graph
// only on success.
func (b *Builder) Build(kind ir.OpKind, operands []*ir.Value, attrs ir.AttrSet, loc ir.Loc) (*ir.Node, *ir.Diagnostic) {
	n := &ir.Node{ID: newNodeID(), Kind: kind, Operands: operands, Attrs: attrs, Loc: loc}
	resultTypes, diag := infer.ResultTypes(kind, n.OperandTypes(), attrs)
	if diag != nil {
		return nil, diag.At(loc)
	}
	n.Results = make([]*ir.Value, len(resultTypes))
	for i, t := range resultTypes {
		n.Results[i] = ir.NewValue(b.nextName(), t, n)
	}
	b.g.Append(n)
	return n, nil
}

// BuildUnchecked constructs a node with caller-declared result names
// and types, bypassing inference. The result may be transiently
// inconsistent; run verify before trusting it.
func (b *Builder) BuildUnchecked(kind ir.OpKind, operands []*ir.Value, attrs ir.AttrSet, results []DeclaredResult, loc ir.Loc) *ir.Node {
	n := &ir.Node{ID: newNodeID(), Kind: kind, Operands: operands, Attrs: attrs, Loc: loc}
	n.Results = make([]*ir.Value, len(results))
	for i, r := range results {
		name := r.Name
		if name == "" {
			name = b.nextName()
		}
		n.Results[i] = ir.NewValue(name, r.Type, n)
	}
	b.g.Append(n)
	return n
}

func (b *Builder) nextName() string {
	name := strconv.Itoa(b.next)
	b.next++
	return name
}

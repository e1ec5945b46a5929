package ir

import (
	"github.com/google/uuid"

	"github.com/roach88/sigil/internal/types"
)

// Value is the typed result of exactly one operation, or a graph
// argument. The ID is stable for the value's lifetime; the type is fixed
// at creation and never mutated.
type Value struct {
	ID   uuid.UUID
	Name string // assembly name without the leading %
	Type types.Type
	Def  *Node // nil for graph arguments
}

// NewValue creates a value with a fresh identity.
func NewValue(name string, t types.Type, def *Node) *Value {
	return &Value{ID: uuid.New(), Name: name, Type: t, Def: def}
}

// Node is an operation in the graph. It owns its result values and its
// attribute list, and holds non-owning references to its operands.
type Node struct {
	ID       uuid.UUID
	Kind     OpKind
	Operands []*Value
	Attrs    AttrSet
	Results  []*Value
	Loc      Loc
}

// OperandTypes returns the types of the node's operands in order.
func (n *Node) OperandTypes() []types.Type {
	out := make([]types.Type, len(n.Operands))
	for i, v := range n.Operands {
		out[i] = v.Type
	}
	return out
}

// ResultTypes returns the stored types of the node's results in order.
func (n *Node) ResultTypes() []types.Type {
	out := make([]types.Type, len(n.Results))
	for i, v := range n.Results {
		out[i] = v.Type
	}
	return out
}

// Result returns the node's single result. Panics if the node does not
// have exactly one result; callers dispatch on kind first.
func (n *Node) Result() *Value {
	if len(n.Results) != 1 {
		panic("ir: Result called on node without exactly one result")
	}
	return n.Results[0]
}

// Graph is an ordered list of operation nodes over a set of block
// arguments. Nodes appear in def-before-use order.
type Graph struct {
	Name  string
	Args  []*Value
	Nodes []*Node
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{Name: name}
}

// AddArg appends a block argument and returns its value.
func (g *Graph) AddArg(name string, t types.Type) *Value {
	v := NewValue(name, t, nil)
	g.Args = append(g.Args, v)
	return v
}

// Append adds a node at the end of the graph.
func (g *Graph) Append(n *Node) {
	g.Nodes = append(g.Nodes, n)
}

// UsesOf returns every node that references v as an operand, in graph
// order. Use lists are computed on demand rather than maintained
// incrementally; graphs in this layer are small.
func (g *Graph) UsesOf(v *Value) []*Node {
	var uses []*Node
	for _, n := range g.Nodes {
		for _, op := range n.Operands {
			if op == v {
				uses = append(uses, n)
				break
			}
		}
	}
	return uses
}

// ReplaceAllUses rewires every operand reference from old to new.
// Returns the number of operand slots rewritten.
func (g *Graph) ReplaceAllUses(old, new *Value) int {
	count := 0
	for _, n := range g.Nodes {
		for i, op := range n.Operands {
			if op == old {
				n.Operands[i] = new
				count++
			}
		}
	}
	return count
}

// Remove deletes a node from the graph. The caller is responsible for
// ensuring no remaining node references its results.
func (g *Graph) Remove(target *Node) {
	for i, n := range g.Nodes {
		if n == target {
			g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
			return
		}
	}
}

// ValueByName finds an argument or node result by assembly name.
func (g *Graph) ValueByName(name string) (*Value, bool) {
	for _, a := range g.Args {
		if a.Name == name {
			return a, true
		}
	}
	for _, n := range g.Nodes {
		for _, r := range n.Results {
			if r.Name == name {
				return r, true
			}
		}
	}
	return nil, false
}

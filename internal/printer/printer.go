// Package printer renders graphs back into assembly text.
//
// The printed form is deterministic: the same graph always prints to
// the same bytes, and the output of the parser round-trips. The
// content fingerprint of a graph is defined over this printed form.
package printer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/roach88/sigil/internal/ir"
)

// DomainGraph is the domain-separation tag for graph fingerprints, so
// a graph hash can never collide with a type hash of the same bytes.
const DomainGraph = "sigil/graph/v1"

// Print renders one graph.
func Print(g *ir.Graph) string {
	var b strings.Builder
	printGraph(&b, g)
	return b.String()
}

// PrintAll renders multiple graphs separated by blank lines, matching
// the accepted file layout.
func PrintAll(graphs []*ir.Graph) string {
	var b strings.Builder
	for i, g := range graphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		printGraph(&b, g)
	}
	return b.String()
}

// Fingerprint returns the domain-separated content hash of a graph's
// printed form, in hex. Graphs that print identically are identical.
func Fingerprint(g *ir.Graph) string {
	h := sha256.New()
	h.Write([]byte(DomainGraph))
	h.Write([]byte{0})
	h.Write([]byte(Print(g)))
	return hex.EncodeToString(h.Sum(nil))
}

func printGraph(b *strings.Builder, g *ir.Graph) {
	fmt.Fprintf(b, "graph @%s(", g.Name)
	for i, a := range g.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%%%s: %s", a.Name, a.Type)
	}
	b.WriteString(") {\n")
	for _, n := range g.Nodes {
		b.WriteString("  ")
		printNode(b, n)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
}

func printNode(b *strings.Builder, n *ir.Node) {
	for i, r := range n.Results {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%%%s", r.Name)
	}
	if len(n.Results) > 0 {
		b.WriteString(" = ")
	}
	b.WriteString(string(n.Kind))
	for i, op := range n.Operands {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(b, " %%%s", op.Name)
	}
	if len(n.Attrs) > 0 {
		b.WriteString(" {")
		for i, a := range n.Attrs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s = %s", a.Name, attrText(a.Value))
		}
		b.WriteString("}")
	}
	if len(n.Results) > 0 {
		b.WriteString(" : ")
		for i, r := range n.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.Type.String())
		}
	}
}

func attrText(v ir.AttrValue) string {
	switch v := v.(type) {
	case ir.IntAttr:
		return fmt.Sprintf("%d", int64(v))
	case ir.BigIntAttr:
		return v.Value.String()
	case ir.StringAttr:
		return `"` + string(v) + `"`
	case ir.TypeAttr:
		return v.Type.String()
	case ir.ListAttr:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = attrText(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<?>"
	}
}

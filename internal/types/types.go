package types

import (
	"fmt"
	"strings"
)

// WidthUnknown marks an integer width that has not been resolved yet.
// It is distinct from zero: zero-width signals are legal and meaningful.
const WidthUnknown = -1

// Type is a sealed interface over the sigil type lattice.
//
// Only types in this package implement it. The marker method pattern
// prevents external implementations and enables exhaustive type switches
// in the inference, verification and canonicalization layers.
//
// Type variants:
//   - UInt, SInt: hardware integers with optional known width
//   - Int: signless standard integer (width always known), used at the
//     std-int cast boundary
//   - Analog: bidirectional analog wire with optional known width
//   - Clock, Reset, AsyncReset: control signals
//   - Vector: homogeneous fixed-size array
//   - Bundle: ordered named fields, each optionally flipped
//   - InOut: wrapper denoting a connectable storage location
type Type interface {
	typeNode() // Marker method - seals interface to this package

	// String renders the type in assembly syntax, e.g. "uint<8>",
	// "vector<sint<4>, 3>", "bundle<a: uint<1>, flip b: clock>".
	String() string
}

// UInt is an unsigned hardware integer.
type UInt struct {
	Width int // known non-negative width, or WidthUnknown
}

func (UInt) typeNode() {}

func (t UInt) String() string { return intString("uint", t.Width) }

// SInt is a signed (two's complement) hardware integer.
type SInt struct {
	Width int // known non-negative width, or WidthUnknown
}

func (SInt) typeNode() {}

func (t SInt) String() string { return intString("sint", t.Width) }

// Int is a signless standard integer. Unlike UInt/SInt its width is
// always known; it exists only on the far side of std_int_cast.
type Int struct {
	Width int
}

func (Int) typeNode() {}

func (t Int) String() string { return intString("int", t.Width) }

// Analog is a bidirectional analog wire.
type Analog struct {
	Width int // known non-negative width, or WidthUnknown
}

func (Analog) typeNode() {}

func (t Analog) String() string { return intString("analog", t.Width) }

// Clock is the clock signal type.
type Clock struct{}

func (Clock) typeNode() {}

func (Clock) String() string { return "clock" }

// Reset is the synchronous reset signal type.
type Reset struct{}

func (Reset) typeNode() {}

func (Reset) String() string { return "reset" }

// AsyncReset is the asynchronous reset signal type.
type AsyncReset struct{}

func (AsyncReset) typeNode() {}

func (AsyncReset) String() string { return "asyncreset" }

// Vector is a homogeneous fixed-size array type.
type Vector struct {
	Elem Type
	Size int
}

func (Vector) typeNode() {}

func (t Vector) String() string {
	return fmt.Sprintf("vector<%s, %d>", t.Elem, t.Size)
}

// Field is a named bundle member. Flip inverts connect-direction
// semantics for this field only.
type Field struct {
	Name string
	Type Type
	Flip bool
}

// Bundle is an ordered collection of named, optionally flipped fields.
type Bundle struct {
	Fields []Field
}

func (Bundle) typeNode() {}

func (t Bundle) String() string {
	var b strings.Builder
	b.WriteString("bundle<")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		if f.Flip {
			b.WriteString("flip ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
	}
	b.WriteString(">")
	return b.String()
}

// InOut wraps a type to denote a mutable, connectable storage location
// (e.g. a wire) rather than a value.
type InOut struct {
	Elem Type
}

func (InOut) typeNode() {}

func (t InOut) String() string { return fmt.Sprintf("inout<%s>", t.Elem) }

func intString(kind string, width int) string {
	if width == WidthUnknown {
		return kind
	}
	return fmt.Sprintf("%s<%d>", kind, width)
}

// Equal reports structural equality of two types. Widths must match
// exactly; WidthUnknown only equals WidthUnknown.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case UInt:
		bt, ok := b.(UInt)
		return ok && at.Width == bt.Width
	case SInt:
		bt, ok := b.(SInt)
		return ok && at.Width == bt.Width
	case Int:
		bt, ok := b.(Int)
		return ok && at.Width == bt.Width
	case Analog:
		bt, ok := b.(Analog)
		return ok && at.Width == bt.Width
	case Clock:
		_, ok := b.(Clock)
		return ok
	case Reset:
		_, ok := b.(Reset)
		return ok
	case AsyncReset:
		_, ok := b.(AsyncReset)
		return ok
	case Vector:
		bt, ok := b.(Vector)
		return ok && at.Size == bt.Size && Equal(at.Elem, bt.Elem)
	case Bundle:
		bt, ok := b.(Bundle)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for i, f := range at.Fields {
			g := bt.Fields[i]
			if f.Name != g.Name || f.Flip != g.Flip || !Equal(f.Type, g.Type) {
				return false
			}
		}
		return true
	case InOut:
		bt, ok := b.(InOut)
		return ok && Equal(at.Elem, bt.Elem)
	default:
		return false
	}
}

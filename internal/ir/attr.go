package ir

import (
	"math/big"

	"github.com/roach88/sigil/internal/types"
)

// AttrValue is a sealed interface over the attribute value types.
// Only IntAttr, StringAttr, BigIntAttr, TypeAttr and ListAttr implement
// it. No floats - nondeterministic rounding has no place in an IR.
type AttrValue interface {
	attrValue() // Sealed - only these types implement it
}

// IntAttr is a small integer attribute (indices, widths, shift amounts).
type IntAttr int64

func (IntAttr) attrValue() {}

// StringAttr is a string attribute (field names, wire names).
type StringAttr string

func (StringAttr) attrValue() {}

// BigIntAttr is an arbitrary-precision integer attribute, used for
// constant values of any bit width.
type BigIntAttr struct {
	Value *big.Int
}

func (BigIntAttr) attrValue() {}

// TypeAttr carries a type from the algebra, used for declared result
// types on constants, wires, and reinterpreting casts.
type TypeAttr struct {
	Type types.Type
}

func (TypeAttr) attrValue() {}

// ListAttr is an ordered homogeneous list of attribute values, used for
// aggregate constants.
type ListAttr []AttrValue

func (ListAttr) attrValue() {}

// Attr is a named attribute on an operation node. The order of a node's
// attributes is part of its printed form and is preserved by the parser.
type Attr struct {
	Name  string
	Value AttrValue
}

// AttrSet wraps a node's attribute list with typed lookups. Lookups are
// linear; attribute lists are tiny (at most three entries).
type AttrSet []Attr

// Int returns the named IntAttr.
func (as AttrSet) Int(name string) (int64, bool) {
	for _, a := range as {
		if a.Name == name {
			v, ok := a.Value.(IntAttr)
			return int64(v), ok
		}
	}
	return 0, false
}

// String returns the named StringAttr.
func (as AttrSet) String(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			v, ok := a.Value.(StringAttr)
			return string(v), ok
		}
	}
	return "", false
}

// BigInt returns the named BigIntAttr value.
func (as AttrSet) BigInt(name string) (*big.Int, bool) {
	for _, a := range as {
		if a.Name == name {
			v, ok := a.Value.(BigIntAttr)
			if !ok || v.Value == nil {
				return nil, false
			}
			return v.Value, true
		}
	}
	return nil, false
}

// Type returns the named TypeAttr value.
func (as AttrSet) Type(name string) (types.Type, bool) {
	for _, a := range as {
		if a.Name == name {
			v, ok := a.Value.(TypeAttr)
			if !ok || v.Type == nil {
				return nil, false
			}
			return v.Type, true
		}
	}
	return nil, false
}

// List returns the named ListAttr.
func (as AttrSet) List(name string) (ListAttr, bool) {
	for _, a := range as {
		if a.Name == name {
			v, ok := a.Value.(ListAttr)
			return v, ok
		}
	}
	return nil, false
}

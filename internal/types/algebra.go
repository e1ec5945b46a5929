package types

// IsPassive reports whether t contains no InOut wrapper and no flipped
// bundle field anywhere in its structure. Connect semantics require
// passive sources; mux branches must be passive.
func IsPassive(t Type) bool {
	switch tt := t.(type) {
	case InOut:
		return false
	case Vector:
		return IsPassive(tt.Elem)
	case Bundle:
		for _, f := range tt.Fields {
			if f.Flip || !IsPassive(f.Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// WidthOf returns the bit width of an integer-like ground type
// (UInt, SInt, Int, Analog). ok is false for every other kind.
// The returned width may be WidthUnknown.
func WidthOf(t Type) (width int, ok bool) {
	switch tt := t.(type) {
	case UInt:
		return tt.Width, true
	case SInt:
		return tt.Width, true
	case Int:
		return tt.Width, true
	case Analog:
		return tt.Width, true
	default:
		return 0, false
	}
}

// BitWidth returns the total number of bits occupied by t, recursing
// through vectors and bundles. ok is false if any leaf has an unknown
// width or is not representable as bits (InOut).
func BitWidth(t Type) (bits int, ok bool) {
	switch tt := t.(type) {
	case UInt, SInt, Int, Analog:
		w, _ := WidthOf(t)
		if w == WidthUnknown {
			return 0, false
		}
		return w, true
	case Clock, Reset, AsyncReset:
		return 1, true
	case Vector:
		ew, ok := BitWidth(tt.Elem)
		if !ok {
			return 0, false
		}
		return ew * tt.Size, true
	case Bundle:
		total := 0
		for _, f := range tt.Fields {
			fw, ok := BitWidth(f.Type)
			if !ok {
				return 0, false
			}
			total += fw
		}
		return total, true
	default:
		return 0, false
	}
}

// IsSigned reports whether t is a signed hardware integer.
func IsSigned(t Type) bool {
	_, ok := t.(SInt)
	return ok
}

// IsHWInt reports whether t is a signed or unsigned hardware integer
// (the operand domain of the arithmetic and logic primitives).
func IsHWInt(t Type) bool {
	switch t.(type) {
	case UInt, SInt:
		return true
	default:
		return false
	}
}

// SameBaseKind reports whether a and b are both UInt or both SInt,
// ignoring widths. Used by arithmetic-result inference.
func SameBaseKind(a, b Type) bool {
	switch a.(type) {
	case UInt:
		_, ok := b.(UInt)
		return ok
	case SInt:
		_, ok := b.(SInt)
		return ok
	default:
		return false
	}
}

// ElemType returns the element type of a Vector or InOut.
func ElemType(t Type) (Type, bool) {
	switch tt := t.(type) {
	case Vector:
		return tt.Elem, true
	case InOut:
		return tt.Elem, true
	default:
		return nil, false
	}
}

// FieldType looks up a bundle field by name and returns its declared
// type and flip. ok is false when the field does not exist.
func FieldType(b Bundle, name string) (f Field, ok bool) {
	for _, fld := range b.Fields {
		if fld.Name == name {
			return fld, true
		}
	}
	return Field{}, false
}

// InOutCompatible reports whether src may drive dest through a connect:
// dest must be InOut(E) and src must be exactly E. Per-field coercion is
// deliberately not implemented; exact match is the safe default.
func InOutCompatible(dest, src Type) bool {
	io, ok := dest.(InOut)
	if !ok {
		return false
	}
	return Equal(io.Elem, src)
}

// PassiveEquivalent returns t with every flip stripped, recursively.
// InOut is preserved: passivity conversion applies to directed
// aggregates, not storage wrappers.
func PassiveEquivalent(t Type) Type {
	switch tt := t.(type) {
	case Vector:
		return Vector{Elem: PassiveEquivalent(tt.Elem), Size: tt.Size}
	case Bundle:
		fields := make([]Field, len(tt.Fields))
		for i, f := range tt.Fields {
			fields[i] = Field{Name: f.Name, Type: PassiveEquivalent(f.Type), Flip: false}
		}
		return Bundle{Fields: fields}
	default:
		return t
	}
}

// Log2Ceil returns the number of bits needed to index n distinct
// elements. Log2Ceil(1) == 0; Log2Ceil(0) == 0.
func Log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}

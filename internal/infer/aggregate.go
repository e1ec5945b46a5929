package infer

import (
	"github.com/roach88/sigil/internal/ir"
	"github.com/roach88/sigil/internal/types"
)

// inferSubfield: looks up the named field and returns its declared type.
// The flip is a property of the access path, not the value; the field
// type is returned unmodified.
func inferSubfield(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	b, name, d := bundleField(in, attrs, "subfield")
	if d != nil {
		return nil, d
	}
	f, ok := types.FieldType(b, name)
	if !ok {
		return nil, ir.Errorf(ir.ErrFieldNotFound, "subfield: bundle %s has no field %q", b, name)
	}
	return one(f.Type), nil
}

// inferSubindex: static vector access, bound-checked at construction.
func inferSubindex(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "subindex"); d != nil {
		return nil, d
	}
	v, ok := in[0].(types.Vector)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "subindex requires a vector operand, got %s", in[0])
	}
	idx, ok := attrs.Int("index")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "subindex requires an integer %q attribute", "index")
	}
	if idx < 0 || idx >= int64(v.Size) {
		return nil, ir.Errorf(ir.ErrIndexOutOfRange, "subindex %d out of range for %s", idx, v)
	}
	return one(v.Elem), nil
}

// inferSubaccess: dynamic vector access. The index operand width must
// equal log2ceil(size) exactly; a mismatch is rejected, never coerced.
func inferSubaccess(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	v, d := dynamicIndex(in, "subaccess")
	if d != nil {
		return nil, d
	}
	return one(v.Elem), nil
}

// inferStructCreate: packs one operand per field of the declared bundle.
func inferStructCreate(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	declared, ok := attrs.Type("type")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "struct_create requires a %q type attribute", "type")
	}
	b, ok := declared.(types.Bundle)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "struct_create type must be a bundle, got %s", declared)
	}
	if !types.IsPassive(b) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "struct_create bundle must be passive, got %s", b)
	}
	if len(in) != len(b.Fields) {
		return nil, ir.Errorf(ir.ErrArityMismatch, "struct_create expects %d operands for %s, got %d", len(b.Fields), b, len(in))
	}
	for i, f := range b.Fields {
		if !types.Equal(in[i], f.Type) {
			return nil, ir.Errorf(ir.ErrKindMismatch, "struct_create operand %d has type %s, field %q wants %s", i, in[i], f.Name, f.Type)
		}
	}
	return one(b), nil
}

// inferStructExtract: reads one field out of a struct value.
func inferStructExtract(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	b, name, d := bundleField(in, attrs, "struct_extract")
	if d != nil {
		return nil, d
	}
	f, ok := types.FieldType(b, name)
	if !ok {
		return nil, ir.Errorf(ir.ErrFieldNotFound, "struct_extract: bundle %s has no field %q", b, name)
	}
	return one(f.Type), nil
}

// inferStructInject: functional field update. The injected value must
// exactly match the field's declared type; the result is a new value of
// the struct's original type, never an in-place mutation.
func inferStructInject(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "struct_inject"); d != nil {
		return nil, d
	}
	b, ok := in[0].(types.Bundle)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "struct_inject requires a bundle operand, got %s", in[0])
	}
	name, ok := attrs.String("field")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "struct_inject requires a string %q attribute", "field")
	}
	f, ok := types.FieldType(b, name)
	if !ok {
		return nil, ir.Errorf(ir.ErrFieldNotFound, "struct_inject: bundle %s has no field %q", b, name)
	}
	if !types.Equal(in[1], f.Type) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "struct_inject value type %s does not match field %q type %s", in[1], name, f.Type)
	}
	return one(b), nil
}

// inferStructExplode: unpacks every field of a struct into one result
// per field, in declaration order.
func inferStructExplode(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 1, "struct_explode"); d != nil {
		return nil, d
	}
	b, ok := in[0].(types.Bundle)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "struct_explode requires a bundle operand, got %s", in[0])
	}
	if len(b.Fields) == 0 {
		return nil, ir.Errorf(ir.ErrKindMismatch, "struct_explode requires a non-empty bundle")
	}
	out := make([]types.Type, len(b.Fields))
	for i, f := range b.Fields {
		out[i] = f.Type
	}
	return out, nil
}

// inferArrayCreate: all operands must share one element type.
func inferArrayCreate(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if len(in) == 0 {
		return nil, ir.Errorf(ir.ErrArityMismatch, "array_create expects at least 1 operand")
	}
	for i := 1; i < len(in); i++ {
		if !types.Equal(in[0], in[i]) {
			return nil, ir.Errorf(ir.ErrKindMismatch, "array_create operand %d has type %s, want %s", i, in[i], in[0])
		}
	}
	return one(types.Vector{Elem: in[0], Size: len(in)}), nil
}

// inferArrayGet: dynamic element read; same index discipline as
// subaccess.
func inferArrayGet(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	v, d := dynamicIndex(in, "array_get")
	if d != nil {
		return nil, d
	}
	return one(v.Elem), nil
}

// inferArraySlice: the result size comes from the declared "size"
// attribute, not from computation, but may not exceed the input size.
// The low-index operand width must equal log2ceil(input size).
func inferArraySlice(in []types.Type, attrs ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	v, d := dynamicIndex(in, "array_slice")
	if d != nil {
		return nil, d
	}
	size, ok := attrs.Int("size")
	if !ok {
		return nil, ir.Errorf(ir.ErrAttrMissing, "array_slice requires an integer %q attribute", "size")
	}
	if size < 0 || size > int64(v.Size) {
		return nil, ir.Errorf(ir.ErrIndexOutOfRange, "array_slice size %d out of range for %s", size, v)
	}
	return one(types.Vector{Elem: v.Elem, Size: int(size)}), nil
}

// inferArrayConcat: joins two vectors of the same element type.
func inferArrayConcat(in []types.Type, _ ir.AttrSet) ([]types.Type, *ir.Diagnostic) {
	if d := wantArity(in, 2, "array_concat"); d != nil {
		return nil, d
	}
	a, ok := in[0].(types.Vector)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "array_concat requires vector operands, got %s", in[0])
	}
	b, ok := in[1].(types.Vector)
	if !ok {
		return nil, ir.Errorf(ir.ErrKindMismatch, "array_concat requires vector operands, got %s", in[1])
	}
	if !types.Equal(a.Elem, b.Elem) {
		return nil, ir.Errorf(ir.ErrKindMismatch, "array_concat element types differ: %s vs %s", a.Elem, b.Elem)
	}
	return one(types.Vector{Elem: a.Elem, Size: a.Size + b.Size}), nil
}

// bundleField validates the shared shape of subfield/struct_extract: one
// bundle operand and a string "field" attribute.
func bundleField(in []types.Type, attrs ir.AttrSet, what string) (types.Bundle, string, *ir.Diagnostic) {
	if d := wantArity(in, 1, what); d != nil {
		return types.Bundle{}, "", d
	}
	b, ok := in[0].(types.Bundle)
	if !ok {
		return types.Bundle{}, "", ir.Errorf(ir.ErrKindMismatch, "%s requires a bundle operand, got %s", what, in[0])
	}
	name, ok := attrs.String("field")
	if !ok {
		return types.Bundle{}, "", ir.Errorf(ir.ErrAttrMissing, "%s requires a string %q attribute", what, "field")
	}
	return b, name, nil
}

// dynamicIndex validates the shared shape of subaccess/array_get/
// array_slice: a vector operand and an unsigned index operand whose
// width equals log2ceil(size) exactly.
func dynamicIndex(in []types.Type, what string) (types.Vector, *ir.Diagnostic) {
	if d := wantArity(in, 2, what); d != nil {
		return types.Vector{}, d
	}
	v, ok := in[0].(types.Vector)
	if !ok {
		return types.Vector{}, ir.Errorf(ir.ErrKindMismatch, "%s requires a vector operand, got %s", what, in[0])
	}
	idx, ok := in[1].(types.UInt)
	if !ok {
		return types.Vector{}, ir.Errorf(ir.ErrKindMismatch, "%s index must be unsigned, got %s", what, in[1])
	}
	if want := types.Log2Ceil(v.Size); idx.Width != want {
		return types.Vector{}, ir.Errorf(ir.ErrWidthOutOfRange, "%s index width must be exactly %d for %s, got %s", what, want, v, in[1])
	}
	return v, nil
}

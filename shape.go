package lattice

import "reflect"

// Shape is the static description driving encode and decode: field names and
// types for records, variant names and payloads for unions, element shapes
// for sequences and optionals. Shapes are built once (usually via ShapeOf)
// and shared freely; they are immutable after construction.
//
// The shape set is closed: Primitive, ID, Record, OptionShape, List, Union.
type Shape interface {
	isShape()
}

// PrimType identifies a primitive shape.
type PrimType uint8

const (
	// PrimString is a UTF-8 string.
	PrimString PrimType = iota

	// PrimInt is a signed integer.
	PrimInt

	// PrimFloat is a floating-point number.
	PrimFloat

	// PrimBool is a boolean.
	PrimBool
)

// String returns the lowercase name of the primitive type.
func (p PrimType) String() string {
	switch p {
	case PrimString:
		return "string"
	case PrimInt:
		return "int"
	case PrimFloat:
		return "float"
	case PrimBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Primitive describes a string, integer, float, or bool value. Nullable
// primitives map to pointer fields in the Go value model; a nil pointer is
// an explicit null, which is distinct from an absent optional.
type Primitive struct {
	Type     PrimType
	Nullable bool
}

func (Primitive) isShape() {}

// ID describes a 128-bit globally-unique identifier (uuid.UUID in the value
// model). The codec treats it as opaque beyond canonical string round-trip.
type ID struct{}

func (ID) isShape() {}

// Record describes an ordered, fixed set of named fields bound to a Go
// struct type. Unknown keys in an incoming tree are ignored; missing
// required fields are a decode error.
type Record struct {
	Name   string
	GoType reflect.Type
	Fields []RecordField
}

func (*Record) isShape() {}

// RecordField is one named field of a record. Index is the struct field
// access path for reflect.Value.FieldByIndex.
type RecordField struct {
	Name  string
	Shape Shape
	Index []int
}

// OptionShape describes a present-or-absent value. The Go representation is
// Option[T]; absence is distinct from explicit null and from the zero value.
type OptionShape struct {
	Elem Shape
}

func (OptionShape) isShape() {}

// List describes an ordered, possibly-empty sequence of homogeneous
// elements. Empty round-trips to empty, never to null or absent.
type List struct {
	Elem Shape
}

func (List) isShape() {}

// Union describes a closed set of named variants. Each variant carries
// either no payload or exactly one record payload. Decode selects variants
// by tag only, never by structural guessing.
type Union struct {
	Name     string
	GoType   reflect.Type // the Go interface type
	Variants []Variant
}

func (*Union) isShape() {}

// Variant is one named case of a union. Payload is nil for payload-free
// variants.
type Variant struct {
	Tag     string
	GoType  reflect.Type
	Payload *Record
}

// variantByTag resolves a tag against the variant set. Exact string match,
// case-sensitive.
func (u *Union) variantByTag(tag string) (Variant, bool) {
	for _, v := range u.Variants {
		if v.Tag == tag {
			return v, true
		}
	}
	return Variant{}, false
}

// variantByType resolves the dynamic type of a union value.
func (u *Union) variantByType(rt reflect.Type) (Variant, bool) {
	for _, v := range u.Variants {
		if v.GoType == rt {
			return v, true
		}
	}
	return Variant{}, false
}

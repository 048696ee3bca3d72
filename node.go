package lattice

// Kind identifies the node type of an interchange tree vertex.
type Kind uint8

const (
	// KindNull is the explicit null node.
	KindNull Kind = iota

	// KindBool is a boolean node.
	KindBool

	// KindNumber is a numeric node (integer or floating).
	KindNumber

	// KindString is a string node.
	KindString

	// KindArray is an ordered sequence of nodes.
	KindArray

	// KindObject is an ordered mapping of string keys to nodes.
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Node is one vertex of the generic interchange tree the codec produces and
// consumes. Trees are immutable by convention: nothing in this package
// mutates a node after handing it to a caller.
//
// Equality is structural. Object equality is order-sensitive because objects
// are ordered mappings; two objects with the same entries in different order
// are not equal.
type Node interface {
	Kind() Kind
	Equal(other Node) bool
}

// Null is the explicit null node. Distinct from an absent object key.
type Null struct{}

// Kind returns KindNull.
func (Null) Kind() Kind { return KindNull }

// Equal reports whether other is also null.
func (Null) Equal(other Node) bool {
	_, ok := other.(Null)
	return ok
}

// Bool is a boolean node.
type Bool bool

// Kind returns KindBool.
func (Bool) Kind() Kind { return KindBool }

// Equal reports structural equality.
func (b Bool) Equal(other Node) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// String is a string node.
type String string

// Kind returns KindString.
func (String) Kind() Kind { return KindString }

// Equal reports structural equality.
func (s String) Equal(other Node) bool {
	o, ok := other.(String)
	return ok && s == o
}

// Number is a numeric node. Integers and floats are distinct: Int(5) is not
// equal to Float(5.0), and each round-trips through every transport without
// crossing into the other.
type Number struct {
	float bool
	i     int64
	f     float64
}

// Int returns an integer number node.
func Int(v int64) Number { return Number{i: v} }

// Float returns a floating number node.
func Float(v float64) Number { return Number{float: true, f: v} }

// Kind returns KindNumber.
func (Number) Kind() Kind { return KindNumber }

// IsFloat reports whether the node carries a floating value.
func (n Number) IsFloat() bool { return n.float }

// Int64 returns the integer value. Zero for floating nodes.
func (n Number) Int64() int64 { return n.i }

// Float64 returns the floating value. For integer nodes it returns the
// integer converted to float64.
func (n Number) Float64() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

// Equal reports structural equality. Integer and floating nodes never
// compare equal to each other.
func (n Number) Equal(other Node) bool {
	o, ok := other.(Number)
	return ok && n == o
}

// Array is an ordered sequence of nodes.
type Array []Node

// Kind returns KindArray.
func (Array) Kind() Kind { return KindArray }

// Equal reports element-wise structural equality. A nil and an empty array
// are equal: both are the empty sequence.
func (a Array) Equal(other Node) bool {
	o, ok := other.(Array)
	if !ok || len(a) != len(o) {
		return false
	}
	for i := range a {
		if !a[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Object is an ordered mapping of string keys to nodes. Key order is
// significant: it is preserved through every transport and checked by the
// stricter decode configurations (tag-first layouts).
type Object struct {
	keys  []string
	index map[string]int
	vals  []Node
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set appends the entry, or replaces the value in place when the key already
// exists. Returns the object for chaining.
func (o *Object) Set(key string, val Node) *Object {
	if i, ok := o.index[key]; ok {
		o.vals[i] = val
		return o
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, val)
	return o
}

// Get returns the value for key and whether it exists.
func (o *Object) Get(key string) (Node, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

// KeyIndex returns the position of key in entry order, or -1.
func (o *Object) KeyIndex(key string) int {
	if i, ok := o.index[key]; ok {
		return i
	}
	return -1
}

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in entry order. The slice is shared; do not mutate.
func (o *Object) Keys() []string { return o.keys }

// Entry returns the key and value at position i.
func (o *Object) Entry(i int) (string, Node) { return o.keys[i], o.vals[i] }

// Kind returns KindObject.
func (*Object) Kind() Kind { return KindObject }

// Equal reports entry-wise structural equality, order included.
func (o *Object) Equal(other Node) bool {
	t, ok := other.(*Object)
	if !ok || len(o.keys) != len(t.keys) {
		return false
	}
	for i := range o.keys {
		if o.keys[i] != t.keys[i] || !o.vals[i].Equal(t.vals[i]) {
			return false
		}
	}
	return true
}

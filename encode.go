package lattice

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Encode converts a typed value into an interchange tree under the given
// shape and options. It never fails for well-formed input matching the
// shape; a value that does not match the shape (wrong field type, union
// value outside the declared variant set) returns a ShapeError.
//
// Encode is a pure function: no state is held between calls and it is safe
// for unbounded concurrent use.
func Encode(v any, shape Shape, opts Options) (Node, error) {
	start := time.Now()
	ctx := context.Background()
	emitEncodeStart(ctx, shapeName(shape))

	node, err := encodeValue(reflect.ValueOf(v), shape, opts, "")
	emitEncodeComplete(ctx, shapeName(shape), time.Since(start), err)
	return node, err
}

// EncodeAs infers the shape for T and encodes v with it. Shapes are cached
// per type, so repeated calls are cheap.
func EncodeAs[T any](v T, opts Options) (Node, error) {
	shape, err := ShapeOf[T]()
	if err != nil {
		return nil, err
	}
	return Encode(v, shape, opts)
}

func encodeValue(rv reflect.Value, shape Shape, opts Options, path string) (Node, error) {
	if !rv.IsValid() {
		return nil, newShapeError(path, "nil value")
	}
	switch s := shape.(type) {
	case Primitive:
		return encodePrimitive(rv, s, path)
	case ID:
		return encodeID(rv, path)
	case *Record:
		return encodeRecord(rv, s, opts, path)
	case OptionShape:
		return encodeOption(rv, s, opts, path)
	case List:
		return encodeList(rv, s, opts, path)
	case *Union:
		return encodeUnion(rv, s, opts, path)
	default:
		return nil, newShapeError(path, "unknown shape %T", shape)
	}
}

func encodePrimitive(rv reflect.Value, s Primitive, path string) (Node, error) {
	if s.Nullable {
		if rv.Kind() != reflect.Pointer {
			return nil, newShapeError(path, "nullable %s requires a pointer, got %s", s.Type, rv.Kind())
		}
		if rv.IsNil() {
			return Null{}, nil
		}
		rv = rv.Elem()
	}

	switch s.Type {
	case PrimString:
		if rv.Kind() != reflect.String {
			return nil, newShapeError(path, "expected string, got %s", rv.Kind())
		}
		return String(rv.String()), nil
	case PrimInt:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return Int(rv.Int()), nil
		default:
			return nil, newShapeError(path, "expected integer, got %s", rv.Kind())
		}
	case PrimFloat:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return Float(rv.Float()), nil
		default:
			return nil, newShapeError(path, "expected float, got %s", rv.Kind())
		}
	case PrimBool:
		if rv.Kind() != reflect.Bool {
			return nil, newShapeError(path, "expected bool, got %s", rv.Kind())
		}
		return Bool(rv.Bool()), nil
	default:
		return nil, newShapeError(path, "unknown primitive type %d", s.Type)
	}
}

func encodeID(rv reflect.Value, path string) (Node, error) {
	id, ok := rv.Interface().(uuid.UUID)
	if !ok {
		return nil, newShapeError(path, "expected uuid.UUID, got %s", rv.Type())
	}
	return String(id.String()), nil
}

func encodeRecord(rv reflect.Value, s *Record, opts Options, path string) (Node, error) {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, newShapeError(path, "nil record %s", s.Name)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, newShapeError(path, "expected struct for record %s, got %s", s.Name, rv.Kind())
	}

	obj := NewObject()
	for _, f := range s.Fields {
		node, err := encodeValue(rv.FieldByIndex(f.Index), f.Shape, opts, joinPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		obj.Set(f.Name, node)
	}
	return obj, nil
}

func encodeOption(rv reflect.Value, s OptionShape, opts Options, path string) (Node, error) {
	if rv.Kind() != reflect.Struct || !isOptionType(rv.Type()) {
		return nil, newShapeError(path, "expected Option, got %s", rv.Type())
	}
	valid := rv.FieldByName("Valid").Bool()
	value := rv.FieldByName("Value")

	if opts.Optionals == OptionUnwrap {
		if !valid {
			return Null{}, nil
		}
		// A present payload that itself encodes to null is indistinguishable
		// from absence under this layout. See the package documentation.
		return encodeValue(value, s.Elem, opts, path)
	}

	if !valid {
		return NewObject().Set(opts.tagKey(), String(someNoneAbsent)), nil
	}
	payload, err := encodeValue(value, s.Elem, opts, path)
	if err != nil {
		return nil, err
	}
	return NewObject().
		Set(opts.tagKey(), String(someNonePresent)).
		Set(optionValueKey, payload), nil
}

func encodeList(rv reflect.Value, s List, opts Options, path string) (Node, error) {
	if rv.Kind() != reflect.Slice {
		return nil, newShapeError(path, "expected slice, got %s", rv.Kind())
	}
	// Nil and empty slices both encode to the empty sequence.
	arr := make(Array, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		node, err := encodeValue(rv.Index(i), s.Elem, opts, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, node)
	}
	return arr, nil
}

func encodeUnion(rv reflect.Value, s *Union, opts Options, path string) (Node, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, newShapeError(path, "nil value for union %s", s.Name)
		}
		rv = rv.Elem()
	}

	variant, ok := s.variantByType(rv.Type())
	if !ok {
		return nil, newShapeError(path, "type %s is not a declared variant of union %s", rv.Type(), s.Name)
	}

	if variant.Payload == nil {
		if opts.Unions == UnionUnwrapSingleCase {
			return String(variant.Tag), nil
		}
		return NewObject().Set(opts.tagKey(), String(variant.Tag)), nil
	}

	payload, err := encodeRecord(rv, variant.Payload, opts, joinPath(path, variant.Tag))
	if err != nil {
		return nil, err
	}
	payloadObj := payload.(*Object)

	obj := NewObject().Set(opts.tagKey(), String(variant.Tag))
	if opts.UnwrapRecordCases {
		for i := 0; i < payloadObj.Len(); i++ {
			k, v := payloadObj.Entry(i)
			obj.Set(k, v)
		}
		return obj, nil
	}
	return obj.Set(opts.payloadKey(), payloadObj), nil
}

// Wrapper tags for the explicit some/none optional layout, and the key the
// present payload nests under.
const (
	someNonePresent = "Some"
	someNoneAbsent  = "None"
	optionValueKey  = "Value"
)

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

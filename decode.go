package lattice

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Decode converts an interchange tree back into a typed value. out must be
// a non-nil pointer to a value matching the shape. Decode never partially
// applies: either out is fully populated or it is left untouched and a
// DecodeError is returned.
//
// The error wraps one of the decode sentinels: ErrMissingField,
// ErrUnknownTag, ErrTypeMismatch, or ErrMalformed.
func Decode(node Node, shape Shape, opts Options, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newDecodeError(ErrTypeMismatch, "", "decode target must be a non-nil pointer, got %T", out)
	}

	start := time.Now()
	ctx := context.Background()
	emitDecodeStart(ctx, shapeName(shape))

	// Decode into a fresh value so a mid-tree failure never leaves the
	// caller's value half-filled.
	tmp := reflect.New(rv.Type().Elem()).Elem()
	err := decodeValue(node, shape, opts, tmp, "")
	if err == nil {
		rv.Elem().Set(tmp)
	}
	emitDecodeComplete(ctx, shapeName(shape), time.Since(start), err)
	return err
}

// DecodeAs infers the shape for T and decodes the tree into a new T.
func DecodeAs[T any](node Node, opts Options) (T, error) {
	var out T
	shape, err := ShapeOf[T]()
	if err != nil {
		return out, err
	}
	err = Decode(node, shape, opts, &out)
	return out, err
}

func decodeValue(node Node, shape Shape, opts Options, rv reflect.Value, path string) error {
	switch s := shape.(type) {
	case Primitive:
		return decodePrimitive(node, s, opts, rv, path)
	case ID:
		return decodeID(node, rv, path)
	case *Record:
		return decodeRecord(node, s, opts, rv, path)
	case OptionShape:
		return decodeOption(node, s, opts, rv, path)
	case List:
		return decodeList(node, s, opts, rv, path)
	case *Union:
		return decodeUnion(node, s, opts, rv, path)
	default:
		return newDecodeError(ErrTypeMismatch, path, "unknown shape %T", shape)
	}
}

func decodePrimitive(node Node, s Primitive, opts Options, rv reflect.Value, path string) error {
	if _, isNull := node.(Null); isNull {
		if s.Nullable {
			// Explicit null, not absence: the pointer stays nil.
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if opts.AllowNullFields {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		return newDecodeError(ErrTypeMismatch, path, "null for non-nullable %s", s.Type)
	}

	if s.Nullable {
		elem := reflect.New(rv.Type().Elem())
		if err := decodePrimitive(node, Primitive{Type: s.Type}, opts, elem.Elem(), path); err != nil {
			return err
		}
		rv.Set(elem)
		return nil
	}

	switch s.Type {
	case PrimString:
		str, ok := node.(String)
		if !ok {
			return newDecodeError(ErrTypeMismatch, path, "expected string, got %s", node.Kind())
		}
		rv.SetString(string(str))
	case PrimInt:
		num, ok := node.(Number)
		if !ok || num.IsFloat() {
			return newDecodeError(ErrTypeMismatch, path, "expected integer, got %s", nodeDetail(node))
		}
		if rv.OverflowInt(num.Int64()) {
			return newDecodeError(ErrTypeMismatch, path, "integer %d overflows %s", num.Int64(), rv.Type())
		}
		rv.SetInt(num.Int64())
	case PrimFloat:
		num, ok := node.(Number)
		if !ok {
			return newDecodeError(ErrTypeMismatch, path, "expected number, got %s", node.Kind())
		}
		rv.SetFloat(num.Float64())
	case PrimBool:
		b, ok := node.(Bool)
		if !ok {
			return newDecodeError(ErrTypeMismatch, path, "expected bool, got %s", node.Kind())
		}
		rv.SetBool(bool(b))
	default:
		return newDecodeError(ErrTypeMismatch, path, "unknown primitive type %d", s.Type)
	}
	return nil
}

func decodeID(node Node, rv reflect.Value, path string) error {
	str, ok := node.(String)
	if !ok {
		return newDecodeError(ErrTypeMismatch, path, "expected identifier string, got %s", node.Kind())
	}
	id, err := uuid.Parse(string(str))
	if err != nil {
		return newDecodeError(ErrTypeMismatch, path, "invalid identifier %q: %v", string(str), err)
	}
	rv.Set(reflect.ValueOf(id))
	return nil
}

func decodeRecord(node Node, s *Record, opts Options, rv reflect.Value, path string) error {
	obj, ok := node.(*Object)
	if !ok {
		return newDecodeError(ErrTypeMismatch, path, "expected object for record %s, got %s", s.Name, node.Kind())
	}

	for _, f := range s.Fields {
		fieldNode, present := obj.Get(f.Name)
		target := rv.FieldByIndex(f.Index)
		if !present {
			// An omitted key is valid absence for an optional field, and an
			// error for everything else.
			if _, isOpt := f.Shape.(OptionShape); isOpt {
				continue
			}
			return newDecodeError(ErrMissingField, joinPath(path, f.Name), "record %s requires field %q", s.Name, f.Name)
		}
		if err := decodeValue(fieldNode, f.Shape, opts, target, joinPath(path, f.Name)); err != nil {
			return err
		}
	}
	// Unknown keys are ignored.
	return nil
}

func decodeOption(node Node, s OptionShape, opts Options, rv reflect.Value, path string) error {
	if !isOptionType(rv.Type()) {
		return newDecodeError(ErrTypeMismatch, path, "decode target %s is not an Option", rv.Type())
	}
	value := rv.FieldByName("Value")
	valid := rv.FieldByName("Valid")

	if opts.Optionals == OptionUnwrap {
		if _, isNull := node.(Null); isNull {
			valid.SetBool(false)
			return nil
		}
		if err := decodeValue(node, s.Elem, opts, value, path); err != nil {
			return err
		}
		valid.SetBool(true)
		return nil
	}

	obj, ok := node.(*Object)
	if !ok {
		return newDecodeError(ErrMalformed, path, "expected optional wrapper object, got %s", node.Kind())
	}
	tagNode, ok := obj.Get(opts.tagKey())
	if !ok {
		return newDecodeError(ErrMalformed, path, "optional wrapper missing %q", opts.tagKey())
	}
	if !opts.AllowUnorderedTag && obj.KeyIndex(opts.tagKey()) != 0 {
		return newDecodeError(ErrMalformed, path, "optional wrapper tag %q must be the first field", opts.tagKey())
	}
	tag, ok := tagNode.(String)
	if !ok {
		return newDecodeError(ErrMalformed, path, "optional wrapper tag must be a string, got %s", tagNode.Kind())
	}

	switch string(tag) {
	case someNoneAbsent:
		valid.SetBool(false)
		return nil
	case someNonePresent:
		payload, ok := obj.Get(optionValueKey)
		if !ok {
			return newDecodeError(ErrMalformed, path, "optional wrapper missing %q payload", optionValueKey)
		}
		if err := decodeValue(payload, s.Elem, opts, value, path); err != nil {
			return err
		}
		valid.SetBool(true)
		return nil
	default:
		return newDecodeError(ErrMalformed, path, "optional wrapper tag %q is neither %q nor %q", string(tag), someNonePresent, someNoneAbsent)
	}
}

func decodeList(node Node, s List, opts Options, rv reflect.Value, path string) error {
	arr, ok := node.(Array)
	if !ok {
		return newDecodeError(ErrTypeMismatch, path, "expected array, got %s", node.Kind())
	}
	out := reflect.MakeSlice(rv.Type(), len(arr), len(arr))
	for i, elem := range arr {
		if err := decodeValue(elem, s.Elem, opts, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// decodeUnion reads the sibling fields of the node, locates the tag by the
// declared tag key, and resolves it against the variant set. Tags resolve by
// exact, case-sensitive match; structural guessing is never attempted.
func decodeUnion(node Node, s *Union, opts Options, rv reflect.Value, path string) error {
	switch n := node.(type) {
	case String:
		if opts.Unions != UnionUnwrapSingleCase {
			return newDecodeError(ErrTypeMismatch, path, "expected union object for %s, got bare tag", s.Name)
		}
		variant, ok := s.variantByTag(string(n))
		if !ok {
			return newDecodeError(ErrUnknownTag, path, "union %s has no variant %q", s.Name, string(n))
		}
		if variant.Payload != nil {
			return newDecodeError(ErrMalformed, path, "variant %q of union %s carries a payload and cannot be a bare tag", variant.Tag, s.Name)
		}
		rv.Set(reflect.New(variant.GoType).Elem())
		return nil

	case *Object:
		tagNode, ok := n.Get(opts.tagKey())
		if !ok {
			return newDecodeError(ErrMalformed, path, "union %s object missing tag %q", s.Name, opts.tagKey())
		}
		if !opts.AllowUnorderedTag && n.KeyIndex(opts.tagKey()) != 0 {
			return newDecodeError(ErrMalformed, path, "union %s tag %q must be the first field", s.Name, opts.tagKey())
		}
		tag, ok := tagNode.(String)
		if !ok {
			return newDecodeError(ErrMalformed, path, "union %s tag must be a string, got %s", s.Name, tagNode.Kind())
		}
		variant, ok := s.variantByTag(string(tag))
		if !ok {
			return newDecodeError(ErrUnknownTag, path, "union %s has no variant %q", s.Name, string(tag))
		}

		concrete := reflect.New(variant.GoType).Elem()
		if variant.Payload != nil {
			payloadNode := Node(n)
			if !opts.UnwrapRecordCases {
				nested, ok := n.Get(opts.payloadKey())
				if !ok {
					return newDecodeError(ErrMalformed, path, "variant %q of union %s missing payload %q", variant.Tag, s.Name, opts.payloadKey())
				}
				payloadNode = nested
			}
			if err := decodeRecord(payloadNode, variant.Payload, opts, concrete, joinPath(path, variant.Tag)); err != nil {
				return err
			}
		}
		rv.Set(concrete)
		return nil

	default:
		return newDecodeError(ErrTypeMismatch, path, "expected union encoding for %s, got %s", s.Name, node.Kind())
	}
}

func nodeDetail(node Node) string {
	if num, ok := node.(Number); ok && num.IsFloat() {
		return "float"
	}
	return node.Kind().String()
}

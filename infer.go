package lattice

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/zoobzio/sentinel"
)

// ShapeTag is the struct tag carrying a field's interchange name.
// Untagged exported fields use their Go name; a value of "-" skips the
// field entirely.
const ShapeTag = "lattice"

func init() {
	// Register the shape tag with sentinel
	sentinel.Tag(ShapeTag)
}

var (
	uuidType = reflect.TypeFor[uuid.UUID]()
)

// ShapeOf derives the shape for T. Struct types become records via sentinel
// metadata scanning; primitives, pointers, slices, Option[T], uuid.UUID, and
// registered union interfaces are recognized recursively. Results are cached
// per type.
//
// Union interfaces must be registered with RegisterUnion before the first
// ShapeOf call that reaches them.
func ShapeOf[T any]() (Shape, error) {
	rt := reflect.TypeFor[T]()
	if s, ok := lookupShape(rt); ok {
		return s, nil
	}

	b := &shapeBuilder{visiting: make(map[reflect.Type]bool)}
	var s Shape
	var err error
	if rt.Kind() == reflect.Struct && !isOptionType(rt) && rt != uuidType {
		s, err = b.record(rt, sentinel.Scan[T]())
	} else {
		s, err = b.shape(rt)
	}
	if err != nil {
		return nil, err
	}
	return storeShape(rt, s), nil
}

// shapeBuilder walks Go types into shapes, tracking in-progress records to
// reject recursive definitions.
type shapeBuilder struct {
	visiting map[reflect.Type]bool
}

func (b *shapeBuilder) shape(rt reflect.Type) (Shape, error) {
	if s, ok := lookupShape(rt); ok {
		return s, nil
	}
	if rt == uuidType {
		return ID{}, nil
	}
	if isOptionType(rt) {
		valueField, _ := rt.FieldByName("Value")
		elem, err := b.shape(valueField.Type)
		if err != nil {
			return nil, err
		}
		return OptionShape{Elem: elem}, nil
	}

	switch rt.Kind() {
	case reflect.String:
		return Primitive{Type: PrimString}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Primitive{Type: PrimInt}, nil
	case reflect.Float32, reflect.Float64:
		return Primitive{Type: PrimFloat}, nil
	case reflect.Bool:
		return Primitive{Type: PrimBool}, nil
	case reflect.Pointer:
		prim, err := b.shape(rt.Elem())
		if err != nil {
			return nil, err
		}
		p, ok := prim.(Primitive)
		if !ok {
			return nil, fmt.Errorf("%w: pointer fields carry nullable primitives only, %s does not qualify", ErrUnsupportedType, rt)
		}
		p.Nullable = true
		return p, nil
	case reflect.Slice:
		elem, err := b.shape(rt.Elem())
		if err != nil {
			return nil, err
		}
		return List{Elem: elem}, nil
	case reflect.Interface:
		if u, ok := lookupUnion(rt); ok {
			return u, nil
		}
		return nil, fmt.Errorf("%w: interface %s has no registered union", ErrUnsupportedType, rt)
	case reflect.Struct:
		return b.record(rt, nestedMetadata(rt))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, rt)
	}
}

func (b *shapeBuilder) record(rt reflect.Type, spec sentinel.Metadata) (*Record, error) {
	if b.visiting[rt] {
		return nil, fmt.Errorf("%w: recursive record %s", ErrUnsupportedType, rt)
	}
	b.visiting[rt] = true
	defer delete(b.visiting, rt)

	rec := &Record{
		Name:   spec.TypeName,
		GoType: rt,
		Fields: make([]RecordField, 0, len(spec.Fields)),
	}
	for _, field := range spec.Fields {
		name := field.Name
		if tagged, ok := field.Tags[ShapeTag]; ok {
			if tagged == "-" {
				continue
			}
			name = tagged
		}
		shape, err := b.shape(field.ReflectType)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", field.Name, spec.TypeName, err)
		}
		rec.Fields = append(rec.Fields, RecordField{
			Name:  name,
			Shape: shape,
			Index: field.Index,
		})
	}
	return rec, nil
}

// nestedMetadata scans a nested struct type and returns its metadata,
// preferring sentinel's cache when the type was scanned before.
func nestedMetadata(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        shapeTags(sf.Tag),
		}
		spec.Fields = append(spec.Fields, fm)
	}
	return spec
}

// shapeTags extracts the lattice tag from a struct tag.
func shapeTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup(ShapeTag); ok {
		tags[ShapeTag] = val
	}
	return tags
}

// isOptionType reports whether rt is an instantiation of Option[T].
func isOptionType(rt reflect.Type) bool {
	if rt.Kind() != reflect.Struct || rt.PkgPath() != optionPkgPath {
		return false
	}
	if len(rt.Name()) < len("Option[") || rt.Name()[:len("Option[")] != "Option[" {
		return false
	}
	_, hasValue := rt.FieldByName("Value")
	_, hasValid := rt.FieldByName("Valid")
	return hasValue && hasValid
}

var optionPkgPath = reflect.TypeFor[Option[int]]().PkgPath()

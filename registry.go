package lattice

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	shapeCache   = make(map[reflect.Type]Shape)
	shapeCacheMu sync.RWMutex

	unionRegistry   = make(map[reflect.Type]*Union)
	unionRegistryMu sync.RWMutex
)

// lookupShape returns a cached shape for the type.
func lookupShape(rt reflect.Type) (Shape, bool) {
	shapeCacheMu.RLock()
	defer shapeCacheMu.RUnlock()
	s, ok := shapeCache[rt]
	return s, ok
}

// storeShape caches a shape, returning the winner if another goroutine
// cached one first.
func storeShape(rt reflect.Type, s Shape) Shape {
	shapeCacheMu.Lock()
	defer shapeCacheMu.Unlock()
	if cached, ok := shapeCache[rt]; ok {
		return cached
	}
	shapeCache[rt] = s
	return s
}

// lookupUnion returns the registered union for an interface type.
func lookupUnion(rt reflect.Type) (*Union, bool) {
	unionRegistryMu.RLock()
	defer unionRegistryMu.RUnlock()
	u, ok := unionRegistry[rt]
	return u, ok
}

// Case declares a payload-bearing or payload-free variant of a union. The
// payload record is inferred from V at registration time; a V with no
// exported fields is payload-free.
func Case[V any](tag string) Variant {
	return Variant{Tag: tag, GoType: reflect.TypeFor[V]()}
}

// RegisterUnion declares the closed variant set for the interface type I.
// Every variant type must be a struct implementing I with value receivers,
// and tags must be unique within the set. Registration must happen before
// the first ShapeOf call that reaches I, typically in an init function via
// MustRegisterUnion.
func RegisterUnion[I any](name string, variants ...Variant) error {
	it := reflect.TypeFor[I]()
	if it.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s is not an interface", ErrUnionRegistration, it)
	}
	if len(variants) == 0 {
		return fmt.Errorf("%w: union %s declares no variants", ErrUnionRegistration, name)
	}

	u := &Union{Name: name, GoType: it, Variants: make([]Variant, 0, len(variants))}
	seen := make(map[string]bool, len(variants))
	b := &shapeBuilder{visiting: make(map[reflect.Type]bool)}

	for _, v := range variants {
		if v.Tag == "" {
			return fmt.Errorf("%w: union %s has a variant with an empty tag", ErrUnionRegistration, name)
		}
		if seen[v.Tag] {
			return fmt.Errorf("%w: union %s declares tag %q twice", ErrUnionRegistration, name, v.Tag)
		}
		seen[v.Tag] = true
		if v.GoType.Kind() != reflect.Struct {
			return fmt.Errorf("%w: variant %q of union %s must be a struct, got %s", ErrUnionRegistration, v.Tag, name, v.GoType.Kind())
		}
		if !v.GoType.Implements(it) {
			return fmt.Errorf("%w: variant %q type %s does not implement %s with value receivers", ErrUnionRegistration, v.Tag, v.GoType, it)
		}

		if hasExportedFields(v.GoType) {
			payload, err := b.record(v.GoType, nestedMetadata(v.GoType))
			if err != nil {
				return fmt.Errorf("%w: variant %q of union %s: %v", ErrUnionRegistration, v.Tag, name, err)
			}
			v.Payload = payload
		}
		u.Variants = append(u.Variants, v)
	}

	unionRegistryMu.Lock()
	defer unionRegistryMu.Unlock()
	if _, ok := unionRegistry[it]; ok {
		return fmt.Errorf("%w: union for %s already registered", ErrUnionRegistration, it)
	}
	unionRegistry[it] = u
	return nil
}

// MustRegisterUnion is RegisterUnion that panics on error, for use in init
// functions.
func MustRegisterUnion[I any](name string, variants ...Variant) {
	if err := RegisterUnion[I](name, variants...); err != nil {
		panic(err)
	}
}

// ResetShapes clears the shape cache and the union registry.
// This is primarily useful for test isolation.
func ResetShapes() {
	shapeCacheMu.Lock()
	shapeCache = make(map[reflect.Type]Shape)
	shapeCacheMu.Unlock()

	unionRegistryMu.Lock()
	unionRegistry = make(map[reflect.Type]*Union)
	unionRegistryMu.Unlock()
}

func hasExportedFields(rt reflect.Type) bool {
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			return true
		}
	}
	return false
}

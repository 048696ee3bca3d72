package wire

import (
	"fmt"

	"github.com/zoobzio/lattice"
)

// envelope is the self-describing carrier the non-JSON transports marshal.
// It exists so object key order survives transports whose native maps are
// unordered, and so the integer/float distinction never depends on a
// library's number heuristics.
//
// Kind disambiguates absent-vs-zero for every omitempty field: an array
// envelope with no items is the empty sequence, a float envelope with no
// value is 0.0.
type envelope struct {
	Kind  byte       `msgpack:"k" cbor:"k" yaml:"k"`
	Bool  bool       `msgpack:"b,omitempty" cbor:"b,omitempty" yaml:"b,omitempty"`
	Int   int64      `msgpack:"i,omitempty" cbor:"i,omitempty" yaml:"i,omitempty"`
	Float float64    `msgpack:"f,omitempty" cbor:"f,omitempty" yaml:"f,omitempty"`
	Str   string     `msgpack:"s,omitempty" cbor:"s,omitempty" yaml:"s,omitempty"`
	Items []envelope `msgpack:"a,omitempty" cbor:"a,omitempty" yaml:"a,omitempty"`
	Keys  []string   `msgpack:"n,omitempty" cbor:"n,omitempty" yaml:"n,omitempty"`
	Vals  []envelope `msgpack:"v,omitempty" cbor:"v,omitempty" yaml:"v,omitempty"`
}

// Envelope kind codes. Persisted: do not renumber.
const (
	envNull byte = iota
	envBool
	envInt
	envFloat
	envString
	envArray
	envObject
)

func toEnvelope(node lattice.Node) (envelope, error) {
	switch n := node.(type) {
	case lattice.Null:
		return envelope{Kind: envNull}, nil
	case lattice.Bool:
		return envelope{Kind: envBool, Bool: bool(n)}, nil
	case lattice.Number:
		if n.IsFloat() {
			return envelope{Kind: envFloat, Float: n.Float64()}, nil
		}
		return envelope{Kind: envInt, Int: n.Int64()}, nil
	case lattice.String:
		return envelope{Kind: envString, Str: string(n)}, nil
	case lattice.Array:
		env := envelope{Kind: envArray}
		for _, item := range n {
			e, err := toEnvelope(item)
			if err != nil {
				return envelope{}, err
			}
			env.Items = append(env.Items, e)
		}
		return env, nil
	case *lattice.Object:
		env := envelope{Kind: envObject}
		for i := 0; i < n.Len(); i++ {
			key, val := n.Entry(i)
			e, err := toEnvelope(val)
			if err != nil {
				return envelope{}, err
			}
			env.Keys = append(env.Keys, key)
			env.Vals = append(env.Vals, e)
		}
		return env, nil
	default:
		return envelope{}, fmt.Errorf("unknown node type %T", node)
	}
}

func fromEnvelope(env envelope) (lattice.Node, error) {
	switch env.Kind {
	case envNull:
		return lattice.Null{}, nil
	case envBool:
		return lattice.Bool(env.Bool), nil
	case envInt:
		return lattice.Int(env.Int), nil
	case envFloat:
		return lattice.Float(env.Float), nil
	case envString:
		return lattice.String(env.Str), nil
	case envArray:
		arr := lattice.Array{}
		for _, item := range env.Items {
			n, err := fromEnvelope(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, n)
		}
		return arr, nil
	case envObject:
		if len(env.Keys) != len(env.Vals) {
			return nil, fmt.Errorf("corrupt object envelope: %d keys, %d values", len(env.Keys), len(env.Vals))
		}
		obj := lattice.NewObject()
		for i, key := range env.Keys {
			n, err := fromEnvelope(env.Vals[i])
			if err != nil {
				return nil, err
			}
			obj.Set(key, n)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("corrupt envelope kind %d", env.Kind)
	}
}

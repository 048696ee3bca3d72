// Package lattice provides lossless structural serialization between typed
// Go values and a generic, self-describing interchange tree.
//
// The codec round-trips a value model of records, optional values,
// homogeneous sequences, and tagged unions: decode(encode(v)) == v for every
// supported shape, under every configuration, except the documented
// unwrap-optional collision below.
//
// # Value Model
//
// Values map to shapes as follows:
//
//   - record: exported struct fields, named via the `lattice` tag
//   - nullable primitive: pointer field (nil is explicit null)
//   - optional: Option[T] (Some/None, distinct from null and zero)
//   - sequence: slice (empty round-trips to empty, never null)
//   - tagged union: interface with variants declared via RegisterUnion
//   - identifier: uuid.UUID, canonical string round-trip
//
// # Basic Usage
//
//	type Gizmo struct {
//	    ID     uuid.UUID `lattice:"id"`
//	    Name   string    `lattice:"name"`
//	    Number int       `lattice:"number"`
//	}
//
//	node, _ := lattice.EncodeAs(g, lattice.Compact)
//	back, _ := lattice.DecodeAs[Gizmo](node, lattice.Compact)
//
// Unions are closed sets registered up front:
//
//	type Event interface{ isEvent() }
//
//	func init() {
//	    lattice.MustRegisterUnion[Event]("Event",
//	        lattice.Case[Created]("Created"),
//	        lattice.Case[Archived]("Archived"),
//	    )
//	}
//
// # Configurations
//
// Options holds five layout knobs (union encoding, optional encoding, record
// case flattening, tag ordering tolerance, null field tolerance). The four
// presets Strict, Lenient, Compact, and Interop are pinned layouts; the
// round-trip acceptance suite asserts their exact JSON bytes.
//
// # Known Limitation
//
// Under OptionUnwrap, a present optional whose payload legitimately encodes
// to null is indistinguishable at the tree level from an absent optional and
// decodes as absent. This information loss is inherent to the unwrapped
// layout, not a defect; callers needing full fidelity for such payloads
// should use OptionSomeNone.
//
// # Errors
//
// Encode fails only with ShapeError (value/shape mismatch, a programmer
// error). Decode fails with DecodeError wrapping one of ErrMissingField,
// ErrUnknownTag, ErrTypeMismatch, or ErrMalformed; a DecodeError is fatal to
// that single decode only. Neither operation ever partially applies.
//
// # Transports and Storage
//
// The wire subpackage moves trees through JSON, MessagePack, CBOR, and YAML
// byte transports. The docstore subpackage is the document-store
// collaborator: store(key, tree) / load(key) over pluggable backends with
// optional at-rest compression and encryption.
package lattice

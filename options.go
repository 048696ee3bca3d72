package lattice

// UnionEncoding selects how a union's tag and payload are laid out.
type UnionEncoding uint8

const (
	// UnionAdjacentTag writes the tag and payload as sibling fields of one
	// object, for every variant.
	UnionAdjacentTag UnionEncoding = iota

	// UnionUnwrapSingleCase collapses payload-free variants to the bare tag
	// string, with no wrapper object. Payload-bearing variants still use the
	// adjacent-tag object layout.
	UnionUnwrapSingleCase
)

// OptionEncoding selects how optional values are laid out.
type OptionEncoding uint8

const (
	// OptionSomeNone writes an explicit wrapper object distinguishing
	// present from absent. Lossless for every element shape.
	OptionSomeNone OptionEncoding = iota

	// OptionUnwrap writes a present payload identically to the bare payload
	// and an absent option as null. Compact, but an optional whose payload
	// legitimately encodes to null collides with absence; see the package
	// documentation.
	OptionUnwrap
)

// Options is the immutable codec configuration. The four preset values
// (Strict, Lenient, Compact, Interop) are pinned layouts used by the
// round-trip acceptance suite; custom combinations are equally valid.
type Options struct {
	// Unions selects the tag+payload layout.
	Unions UnionEncoding

	// Optionals selects the optional-value layout.
	Optionals OptionEncoding

	// UnwrapRecordCases flattens a variant's single record payload so its
	// fields sit directly next to the tag, instead of nesting them under
	// PayloadKey.
	UnwrapRecordCases bool

	// AllowUnorderedTag lets decode accept the tag field at any position in
	// the object. When false the tag must be the first entry, and any other
	// position is a structural decode error.
	AllowUnorderedTag bool

	// AllowNullFields lets decode accept an explicit null for a non-nullable
	// primitive field, coercing it to the zero value. When false such a null
	// is a type-mismatch error.
	AllowNullFields bool

	// TagKey is the object key holding a union's discriminator.
	// Defaults to "Case".
	TagKey string

	// PayloadKey is the object key holding a variant's nested payload when
	// UnwrapRecordCases is false. Defaults to "Fields".
	PayloadKey string
}

// Presets. Each is a pinned interchange-tree layout; tests assert the exact
// bytes these produce through the JSON transport.
var (
	// Strict uses explicit wrappers everywhere, requires the tag to be the
	// first object entry, and rejects null in non-nullable fields.
	Strict = Options{
		Unions:    UnionAdjacentTag,
		Optionals: OptionSomeNone,
	}

	// Lenient keeps the explicit wrapper layouts of Strict but tolerates
	// unordered tags and nulls in non-nullable fields on decode.
	Lenient = Options{
		Unions:            UnionAdjacentTag,
		Optionals:         OptionSomeNone,
		AllowUnorderedTag: true,
		AllowNullFields:   true,
	}

	// Compact unwraps aggressively: bare tags for payload-free variants,
	// bare payloads for present options, and record-case fields flattened
	// next to the tag. Decode is lenient.
	Compact = Options{
		Unions:            UnionUnwrapSingleCase,
		Optionals:         OptionUnwrap,
		UnwrapRecordCases: true,
		AllowUnorderedTag: true,
		AllowNullFields:   true,
	}

	// Interop unwraps tags and options but keeps record payloads nested,
	// and decodes as strictly as Strict.
	Interop = Options{
		Unions:    UnionUnwrapSingleCase,
		Optionals: OptionUnwrap,
	}
)

// DefaultTagKey is the discriminator key used when Options.TagKey is empty.
const DefaultTagKey = "Case"

// DefaultPayloadKey is the nested-payload key used when Options.PayloadKey
// is empty.
const DefaultPayloadKey = "Fields"

// tagKey returns the effective discriminator key.
func (o Options) tagKey() string {
	if o.TagKey == "" {
		return DefaultTagKey
	}
	return o.TagKey
}

// payloadKey returns the effective nested-payload key.
func (o Options) payloadKey() string {
	if o.PayloadKey == "" {
		return DefaultPayloadKey
	}
	return o.PayloadKey
}

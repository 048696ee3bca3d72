// Package wire moves interchange trees through byte-level transports.
//
// The JSON transport is the interchange-native one: its bytes are the pinned
// layouts the codec configurations describe, with object key order and the
// integer/float distinction preserved exactly. The MessagePack, CBOR, and
// YAML transports carry trees inside a self-describing envelope so field
// order survives libraries whose native map types are unordered.
//
// Transport selection is a breaking-change boundary: bytes written by one
// transport do not decode with another. Persisted data should record the
// transport name (see ByName) the way the docstore framing does.
package wire

import (
	"github.com/zoobzio/lattice"
)

// Codec is a byte transport for interchange trees.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Name returns the stable transport name (e.g. "json").
	Name() string

	// Marshal encodes the tree into bytes.
	Marshal(node lattice.Node) ([]byte, error)

	// Unmarshal decodes bytes back into a tree.
	Unmarshal(data []byte) (lattice.Node, error)
}

// ByName returns a built-in transport by its stable name.
//
// This is used by self-describing storage framing that records the transport
// name alongside the payload.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "msgpack":
		return Msgpack{}, true
	case "cbor":
		return CBOR{}, true
	case "yaml":
		return YAML{}, true
	default:
		return nil, false
	}
}

// Default is the transport used when none is configured.
var Default Codec = JSON{}

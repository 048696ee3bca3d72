package wire

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/zoobzio/lattice"
)

// CBOR is a CBOR transport.
type CBOR struct{}

// Name returns "cbor".
func (CBOR) Name() string { return "cbor" }

// Marshal encodes the tree as CBOR.
func (CBOR) Marshal(node lattice.Node) ([]byte, error) {
	env, err := toEnvelope(node)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(env)
}

// Unmarshal decodes CBOR data back into a tree.
func (CBOR) Unmarshal(data []byte) (lattice.Node, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return fromEnvelope(env)
}

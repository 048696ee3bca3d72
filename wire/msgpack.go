package wire

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/lattice"
)

// Msgpack is a MessagePack transport.
type Msgpack struct{}

// Name returns "msgpack".
func (Msgpack) Name() string { return "msgpack" }

// Marshal encodes the tree as MessagePack.
func (Msgpack) Marshal(node lattice.Node) ([]byte, error) {
	env, err := toEnvelope(node)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(env)
}

// Unmarshal decodes MessagePack data back into a tree.
func (Msgpack) Unmarshal(data []byte) (lattice.Node, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return fromEnvelope(env)
}

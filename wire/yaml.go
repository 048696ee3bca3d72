package wire

import (
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/lattice"
)

// YAML is a YAML transport.
type YAML struct{}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }

// Marshal encodes the tree as YAML.
func (YAML) Marshal(node lattice.Node) ([]byte, error) {
	env, err := toEnvelope(node)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(env)
}

// Unmarshal decodes YAML data back into a tree.
func (YAML) Unmarshal(data []byte) (lattice.Node, error) {
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return fromEnvelope(env)
}

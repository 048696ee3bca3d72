package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/zoobzio/lattice"
)

// JSON is the interchange-native transport. Object key order is preserved on
// both sides, and integers stay integers: 5 and 5.0 are different bytes and
// different nodes.
type JSON struct{}

// Name returns "json".
func (JSON) Name() string { return "json" }

// Marshal encodes the tree as JSON text.
func (JSON) Marshal(node lattice.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses JSON text into a tree.
func (JSON) Unmarshal(data []byte) (lattice.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := readJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after JSON value")
	}
	return node, nil
}

func writeJSON(buf *bytes.Buffer, node lattice.Node) error {
	switch n := node.(type) {
	case lattice.Null:
		buf.WriteString("null")
	case lattice.Bool:
		if n {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case lattice.Number:
		if !n.IsFloat() {
			buf.WriteString(strconv.FormatInt(n.Int64(), 10))
			return nil
		}
		f := n.Float64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cannot encode %v as JSON", f)
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		// Keep floats recognizable as floats on the way back in.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	case lattice.String:
		return writeJSONString(buf, string(n))
	case lattice.Array:
		buf.WriteByte('[')
		for i, item := range n {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *lattice.Object:
		buf.WriteByte('{')
		for i := 0; i < n.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, val := n.Entry(i)
			if err := writeJSONString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown node type %T", node)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func readJSON(dec *json.Decoder) (lattice.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return nodeFromToken(dec, tok)
}

func nodeFromToken(dec *json.Decoder, tok json.Token) (lattice.Node, error) {
	switch t := tok.(type) {
	case nil:
		return lattice.Null{}, nil
	case bool:
		return lattice.Bool(t), nil
	case string:
		return lattice.String(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return lattice.Int(i), nil
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", string(t))
		}
		return lattice.Float(f), nil
	case json.Delim:
		switch t {
		case '[':
			arr := lattice.Array{}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := lattice.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

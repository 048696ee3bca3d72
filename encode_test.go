package lattice

import (
	"errors"
	"testing"
)

func TestEncodeRecord(t *testing.T) {
	ensureFixtureUnions()

	node, err := EncodeAs(gizmo{ID: gizmoID, Name: "Hello World", Number: 5}, Compact)
	if err != nil {
		t.Fatalf("EncodeAs() error: %v", err)
	}

	want := NewObject().
		Set("id", String(gizmoID.String())).
		Set("name", String("Hello World")).
		Set("number", Int(5))
	if !node.Equal(want) {
		t.Errorf("encoded %v, want %v", node, want)
	}
}

func TestEncodeNullableField(t *testing.T) {
	node, err := EncodeAs(widget{Name: "w"}, Strict)
	if err != nil {
		t.Fatalf("EncodeAs() error: %v", err)
	}
	obj := node.(*Object)
	note, _ := obj.Get("note")
	if !note.Equal(Null{}) {
		t.Errorf("nil pointer field encoded as %v, want null", note)
	}

	s := "hi"
	node, err = EncodeAs(widget{Name: "w", Note: &s}, Strict)
	if err != nil {
		t.Fatalf("EncodeAs() error: %v", err)
	}
	note, _ = node.(*Object).Get("note")
	if !note.Equal(String("hi")) {
		t.Errorf("present pointer field encoded as %v, want %q", note, "hi")
	}
}

func TestEncodeEmptyAndNilList(t *testing.T) {
	for _, list := range [][]Option[gizmo]{nil, {}} {
		node, err := EncodeAs(crate{ID: crateID, List: list}, Compact)
		if err != nil {
			t.Fatalf("EncodeAs() error: %v", err)
		}
		got, _ := node.(*Object).Get("list")
		if !got.Equal(Array{}) {
			t.Errorf("list %v encoded as %v, want empty array", list, got)
		}
	}
}

func TestEncodeOptionLayouts(t *testing.T) {
	type holder struct {
		V Option[int] `lattice:"v"`
	}

	tests := []struct {
		name string
		opts Options
		in   holder
		want Node
	}{
		{
			name: "explicit some",
			opts: Strict,
			in:   holder{V: Some(7)},
			want: NewObject().Set("Case", String("Some")).Set("Value", Int(7)),
		},
		{
			name: "explicit none",
			opts: Strict,
			in:   holder{},
			want: NewObject().Set("Case", String("None")),
		},
		{
			name: "unwrap some",
			opts: Compact,
			in:   holder{V: Some(7)},
			want: Int(7),
		},
		{
			name: "unwrap none",
			opts: Compact,
			in:   holder{},
			want: Null{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := EncodeAs(tt.in, tt.opts)
			if err != nil {
				t.Fatalf("EncodeAs() error: %v", err)
			}
			got, _ := node.(*Object).Get("v")
			if !got.Equal(tt.want) {
				t.Errorf("encoded %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeUnionLayouts(t *testing.T) {
	ensureFixtureUnions()

	tests := []struct {
		name string
		opts Options
		in   command
		want Node
	}{
		{
			name: "adjacent tag nested payload",
			opts: Strict,
			in:   createCmd{Name: "x", Number: 1},
			want: NewObject().
				Set("Case", String("Create")).
				Set("Fields", NewObject().Set("name", String("x")).Set("number", Int(1))),
		},
		{
			name: "flattened payload",
			opts: Compact,
			in:   createCmd{Name: "x", Number: 1},
			want: NewObject().
				Set("Case", String("Create")).
				Set("name", String("x")).
				Set("number", Int(1)),
		},
		{
			name: "payload-free adjacent",
			opts: Strict,
			in:   archiveCmd{},
			want: NewObject().Set("Case", String("Archive")),
		},
		{
			name: "payload-free unwrapped",
			opts: Compact,
			in:   archiveCmd{},
			want: String("Archive"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := EncodeAs(tt.in, tt.opts)
			if err != nil {
				t.Fatalf("EncodeAs() error: %v", err)
			}
			if !node.Equal(tt.want) {
				t.Errorf("encoded %v, want %v", node, tt.want)
			}
		})
	}
}

func TestEncodeSingleCaseUnion(t *testing.T) {
	ensureFixtureUnions()

	node, err := EncodeAs[marker](secondCase{}, Compact)
	if err != nil {
		t.Fatalf("EncodeAs() error: %v", err)
	}
	if !node.Equal(String("SecondCase")) {
		t.Errorf("encoded %v, want bare tag", node)
	}

	node, err = EncodeAs[marker](secondCase{}, Strict)
	if err != nil {
		t.Fatalf("EncodeAs() error: %v", err)
	}
	if !node.Equal(NewObject().Set("Case", String("SecondCase"))) {
		t.Errorf("encoded %v, want tag object", node)
	}

	got, err := DecodeAs[marker](String("SecondCase"), Compact)
	if err != nil {
		t.Fatalf("DecodeAs() error: %v", err)
	}
	if got != (secondCase{}) {
		t.Errorf("decoded %+v, want secondCase", got)
	}
}

func TestEncodeShapeMismatch(t *testing.T) {
	ensureFixtureUnions()

	shape, err := ShapeOf[gizmo]()
	if err != nil {
		t.Fatalf("ShapeOf() error: %v", err)
	}

	_, err = Encode(widget{Name: "not a gizmo"}, shape, Strict)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Encode(wrong type) error = %v, want ErrShapeMismatch", err)
	}

	unionShape, err := ShapeOf[command]()
	if err != nil {
		t.Fatalf("ShapeOf() error: %v", err)
	}
	_, err = Encode(gizmo{}, unionShape, Strict)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Encode(undeclared variant) error = %v, want ErrShapeMismatch", err)
	}

	var nilCmd command
	_, err = Encode(nilCmd, unionShape, Strict)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Encode(nil union) error = %v, want ErrShapeMismatch", err)
	}
}

func TestEncodeCustomTagKey(t *testing.T) {
	ensureFixtureUnions()

	opts := Strict
	opts.TagKey = "kind"
	opts.PayloadKey = "payload"

	node, err := EncodeAs[command](createCmd{Name: "x", Number: 1}, opts)
	if err != nil {
		t.Fatalf("EncodeAs() error: %v", err)
	}
	want := NewObject().
		Set("kind", String("Create")).
		Set("payload", NewObject().Set("name", String("x")).Set("number", Int(1)))
	if !node.Equal(want) {
		t.Errorf("encoded %v, want %v", node, want)
	}
}

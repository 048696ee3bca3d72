package lattice

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestDecodeRecord(t *testing.T) {
	node := NewObject().
		Set("id", String(gizmoID.String())).
		Set("name", String("Hello World")).
		Set("number", Int(5))

	got, err := DecodeAs[gizmo](node, Strict)
	if err != nil {
		t.Fatalf("DecodeAs() error: %v", err)
	}
	want := gizmo{ID: gizmoID, Name: "Hello World", Number: 5}
	if got != want {
		t.Errorf("decoded %+v, want %+v", got, want)
	}
}

func TestDecodeMissingField(t *testing.T) {
	node := NewObject().
		Set("id", String(gizmoID.String())).
		Set("name", String("Hello World"))

	_, err := DecodeAs[gizmo](node, Strict)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("DecodeAs() error = %v, want ErrMissingField", err)
	}
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Path != "number" {
		t.Errorf("error path = %q, want %q", derr.Path, "number")
	}
}

func TestDecodeMissingOptionalFieldIsNone(t *testing.T) {
	type holder struct {
		Name string      `lattice:"name"`
		V    Option[int] `lattice:"v"`
	}

	got, err := DecodeAs[holder](NewObject().Set("name", String("x")), Strict)
	if err != nil {
		t.Fatalf("DecodeAs() error: %v", err)
	}
	if got.V.Valid {
		t.Errorf("omitted optional decoded as Some(%v), want None", got.V.Value)
	}
}

func TestDecodeUnknownFieldsIgnored(t *testing.T) {
	node := NewObject().
		Set("id", String(gizmoID.String())).
		Set("name", String("n")).
		Set("number", Int(1)).
		Set("extra", Bool(true))

	if _, err := DecodeAs[gizmo](node, Strict); err != nil {
		t.Errorf("DecodeAs() with unknown field error: %v", err)
	}
}

func TestDecodeNullIntoNonNullable(t *testing.T) {
	node := NewObject().
		Set("id", String(gizmoID.String())).
		Set("name", Null{}).
		Set("number", Int(1))

	_, err := DecodeAs[gizmo](node, Strict)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("strict DecodeAs(null field) error = %v, want ErrTypeMismatch", err)
	}

	got, err := DecodeAs[gizmo](node, Lenient)
	if err != nil {
		t.Fatalf("lenient DecodeAs(null field) error: %v", err)
	}
	if got.Name != "" {
		t.Errorf("lenient null decoded as %q, want zero value", got.Name)
	}
}

func TestDecodeNullableField(t *testing.T) {
	node := NewObject().Set("name", String("w")).Set("note", Null{})
	got, err := DecodeAs[widget](node, Strict)
	if err != nil {
		t.Fatalf("DecodeAs() error: %v", err)
	}
	if got.Note != nil {
		t.Errorf("null nullable decoded as %q, want nil", *got.Note)
	}

	node = NewObject().Set("name", String("w")).Set("note", String("hi"))
	got, err = DecodeAs[widget](node, Strict)
	if err != nil {
		t.Fatalf("DecodeAs() error: %v", err)
	}
	if got.Note == nil || *got.Note != "hi" {
		t.Errorf("present nullable decoded as %v, want %q", got.Note, "hi")
	}
}

func TestDecodePrimitiveMismatches(t *testing.T) {
	shape, err := ShapeOf[gizmo]()
	if err != nil {
		t.Fatalf("ShapeOf() error: %v", err)
	}

	tests := []struct {
		name string
		node Node
	}{
		{"float for int", NewObject().Set("id", String(gizmoID.String())).Set("name", String("n")).Set("number", Float(1.5))},
		{"string for int", NewObject().Set("id", String(gizmoID.String())).Set("name", String("n")).Set("number", String("1"))},
		{"bool for string", NewObject().Set("id", String(gizmoID.String())).Set("name", Bool(true)).Set("number", Int(1))},
		{"invalid identifier", NewObject().Set("id", String("not-a-uuid")).Set("name", String("n")).Set("number", Int(1))},
		{"array for record", Array{Int(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out gizmo
			err := Decode(tt.node, shape, Strict, &out)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("Decode() error = %v, want ErrTypeMismatch", err)
			}
		})
	}
}

func TestDecodeNullForSequence(t *testing.T) {
	node := NewObject().
		Set("id", String(crateID.String())).
		Set("list", Null{})

	_, err := DecodeAs[crate](node, Strict)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("DecodeAs(null sequence) error = %v, want ErrTypeMismatch", err)
	}
}

func TestDecodeOptionWrapper(t *testing.T) {
	type holder struct {
		V Option[int] `lattice:"v"`
	}
	wrap := func(v Node) Node { return NewObject().Set("v", v) }

	tests := []struct {
		name    string
		opts    Options
		node    Node
		want    Option[int]
		wantErr error
	}{
		{
			name: "some",
			opts: Strict,
			node: wrap(NewObject().Set("Case", String("Some")).Set("Value", Int(7))),
			want: Some(7),
		},
		{
			name: "none",
			opts: Strict,
			node: wrap(NewObject().Set("Case", String("None"))),
			want: None[int](),
		},
		{
			name:    "bare value under explicit layout",
			opts:    Strict,
			node:    wrap(Int(7)),
			wantErr: ErrMalformed,
		},
		{
			name:    "unknown wrapper tag",
			opts:    Strict,
			node:    wrap(NewObject().Set("Case", String("Maybe"))),
			wantErr: ErrMalformed,
		},
		{
			name:    "some without payload",
			opts:    Strict,
			node:    wrap(NewObject().Set("Case", String("Some"))),
			wantErr: ErrMalformed,
		},
		{
			name:    "tag not first strict",
			opts:    Strict,
			node:    wrap(NewObject().Set("Value", Int(7)).Set("Case", String("Some"))),
			wantErr: ErrMalformed,
		},
		{
			name: "tag not first lenient",
			opts: Lenient,
			node: wrap(NewObject().Set("Value", Int(7)).Set("Case", String("Some"))),
			want: Some(7),
		},
		{
			name: "unwrap value",
			opts: Compact,
			node: wrap(Int(7)),
			want: Some(7),
		},
		{
			name: "unwrap null",
			opts: Compact,
			node: wrap(Null{}),
			want: None[int](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAs[holder](tt.node, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeAs() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeAs() error: %v", err)
			}
			if got.V != tt.want {
				t.Errorf("decoded %+v, want %+v", got.V, tt.want)
			}
		})
	}
}

func TestDecodeUnion(t *testing.T) {
	ensureFixtureUnions()

	tests := []struct {
		name    string
		opts    Options
		node    Node
		want    command
		wantErr error
	}{
		{
			name: "adjacent nested payload",
			opts: Strict,
			node: NewObject().
				Set("Case", String("Create")).
				Set("Fields", NewObject().Set("name", String("x")).Set("number", Int(1))),
			want: createCmd{Name: "x", Number: 1},
		},
		{
			name: "flattened payload",
			opts: Compact,
			node: NewObject().
				Set("Case", String("Create")).
				Set("name", String("x")).
				Set("number", Int(1)),
			want: createCmd{Name: "x", Number: 1},
		},
		{
			name: "payload-free object",
			opts: Strict,
			node: NewObject().Set("Case", String("Archive")),
			want: archiveCmd{},
		},
		{
			name: "payload-free bare tag",
			opts: Compact,
			node: String("Archive"),
			want: archiveCmd{},
		},
		{
			name:    "bare tag under adjacent layout",
			opts:    Strict,
			node:    String("Archive"),
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "bare tag for payload-bearing variant",
			opts:    Compact,
			node:    String("Create"),
			wantErr: ErrMalformed,
		},
		{
			name:    "unknown tag",
			opts:    Strict,
			node:    NewObject().Set("Case", String("Destroy")),
			wantErr: ErrUnknownTag,
		},
		{
			name:    "unknown bare tag",
			opts:    Compact,
			node:    String("Destroy"),
			wantErr: ErrUnknownTag,
		},
		{
			name:    "missing tag key",
			opts:    Strict,
			node:    NewObject().Set("name", String("x")),
			wantErr: ErrMalformed,
		},
		{
			name: "tag not first strict",
			opts: Strict,
			node: NewObject().
				Set("Fields", NewObject().Set("name", String("x")).Set("number", Int(1))).
				Set("Case", String("Create")),
			wantErr: ErrMalformed,
		},
		{
			name: "tag not first lenient",
			opts: Lenient,
			node: NewObject().
				Set("Fields", NewObject().Set("name", String("x")).Set("number", Int(1))).
				Set("Case", String("Create")),
			want: createCmd{Name: "x", Number: 1},
		},
		{
			name:    "missing payload key",
			opts:    Strict,
			node:    NewObject().Set("Case", String("Create")),
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAs[command](tt.node, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeAs() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeAs() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("decoded %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeTagCaseSensitive(t *testing.T) {
	ensureFixtureUnions()

	node := NewObject().Set("Case", String("archive"))
	_, err := DecodeAs[command](node, Strict)
	if !errors.Is(err, ErrUnknownTag) {
		t.Errorf("DecodeAs(lowercase tag) error = %v, want ErrUnknownTag", err)
	}
}

func TestDecodeNeverPartiallyApplies(t *testing.T) {
	node := NewObject().
		Set("id", String(gizmoID.String())).
		Set("name", String("fresh")).
		Set("number", String("boom"))

	out := gizmo{ID: uuid.Nil, Name: "original", Number: 42}
	shape, err := ShapeOf[gizmo]()
	if err != nil {
		t.Fatalf("ShapeOf() error: %v", err)
	}
	if err := Decode(node, shape, Strict, &out); err == nil {
		t.Fatal("Decode() succeeded, want error")
	}
	if out.Name != "original" || out.Number != 42 {
		t.Errorf("failed decode mutated target: %+v", out)
	}
}

func TestDecodeTargetMustBePointer(t *testing.T) {
	shape, err := ShapeOf[gizmo]()
	if err != nil {
		t.Fatalf("ShapeOf() error: %v", err)
	}

	var out gizmo
	if err := Decode(NewObject(), shape, Strict, out); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Decode(non-pointer) error = %v, want ErrTypeMismatch", err)
	}
	if err := Decode(NewObject(), shape, Strict, (*gizmo)(nil)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Decode(nil pointer) error = %v, want ErrTypeMismatch", err)
	}
}

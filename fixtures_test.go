package lattice

import (
	"github.com/google/uuid"
)

// Shared fixture types for codec tests. Unions are registered through
// ensureFixtureUnions so tests stay independent of file ordering and of
// ResetShapes calls in other tests.

type gizmo struct {
	ID     uuid.UUID `lattice:"id"`
	Name   string    `lattice:"name"`
	Number int       `lattice:"number"`
}

type widget struct {
	Name string  `lattice:"name"`
	Note *string `lattice:"note"`
}

type crate struct {
	ID   uuid.UUID       `lattice:"id"`
	List []Option[gizmo] `lattice:"list"`
}

type command interface{ isCommand() }

type createCmd struct {
	Name   string `lattice:"name"`
	Number int    `lattice:"number"`
}

func (createCmd) isCommand() {}

type archiveCmd struct{}

func (archiveCmd) isCommand() {}

type marker interface{ isMarker() }

type secondCase struct{}

func (secondCase) isMarker() {}

func ensureFixtureUnions() {
	// Ignore already-registered errors: fixtures may be re-registered after
	// a ResetShapes.
	_ = RegisterUnion[command]("command",
		Case[createCmd]("Create"),
		Case[archiveCmd]("Archive"),
	)
	_ = RegisterUnion[marker]("marker",
		Case[secondCase]("SecondCase"),
	)
}

var (
	gizmoID = uuid.MustParse("6f1b24ae-97d3-4a0c-8f1d-2b9f6f3f9f01")
	crateID = uuid.MustParse("0d3c1a52-74f9-4b0e-9a4f-5d2e8c7b6a10")
)

package lattice

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalEncodeStart    = capitan.NewSignal("lattice.encode.start", "Encode operation beginning")
	SignalEncodeComplete = capitan.NewSignal("lattice.encode.complete", "Encode operation finished")
	SignalDecodeStart    = capitan.NewSignal("lattice.decode.start", "Decode operation beginning")
	SignalDecodeComplete = capitan.NewSignal("lattice.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyShape    = capitan.NewStringKey("shape")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, shape string) {
	capitan.Emit(ctx, SignalEncodeStart, KeyShape.Field(shape))
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, shape string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyShape.Field(shape),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, shape string) {
	capitan.Emit(ctx, SignalDecodeStart, KeyShape.Field(shape))
}

// emitDecodeComplete emits an event when decode finishes.
func emitDecodeComplete(ctx context.Context, shape string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyShape.Field(shape),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// shapeName returns a short label for a shape, used in event fields.
func shapeName(s Shape) string {
	switch t := s.(type) {
	case Primitive:
		return t.Type.String()
	case ID:
		return "id"
	case *Record:
		return t.Name
	case OptionShape:
		return "option"
	case List:
		return "list"
	case *Union:
		return t.Name
	default:
		return "unknown"
	}
}

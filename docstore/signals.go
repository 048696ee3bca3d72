package docstore

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for store events.
var (
	SignalPutStart       = capitan.NewSignal("docstore.put.start", "Store operation beginning")
	SignalPutComplete    = capitan.NewSignal("docstore.put.complete", "Store operation finished")
	SignalGetStart       = capitan.NewSignal("docstore.get.start", "Load operation beginning")
	SignalGetComplete    = capitan.NewSignal("docstore.get.complete", "Load operation finished")
	SignalDeleteStart    = capitan.NewSignal("docstore.delete.start", "Delete operation beginning")
	SignalDeleteComplete = capitan.NewSignal("docstore.delete.complete", "Delete operation finished")
	SignalListStart      = capitan.NewSignal("docstore.list.start", "List operation beginning")
	SignalListComplete   = capitan.NewSignal("docstore.list.complete", "List operation finished")
)

// Keys for typed event data.
var (
	KeyDocKey   = capitan.NewStringKey("key")
	KeyPrefix   = capitan.NewStringKey("prefix")
	KeySize     = capitan.NewIntKey("size")
	KeyCount    = capitan.NewIntKey("count")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// emitPutStart emits an event when a store begins.
func emitPutStart(ctx context.Context, key string) {
	capitan.Emit(ctx, SignalPutStart, KeyDocKey.Field(key))
}

// emitPutComplete emits an event when a store finishes.
func emitPutComplete(ctx context.Context, key string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDocKey.Field(key),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalPutComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalPutComplete, fields...)
	}
}

// emitGetStart emits an event when a load begins.
func emitGetStart(ctx context.Context, key string) {
	capitan.Emit(ctx, SignalGetStart, KeyDocKey.Field(key))
}

// emitGetComplete emits an event when a load finishes.
func emitGetComplete(ctx context.Context, key string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDocKey.Field(key),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalGetComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalGetComplete, fields...)
	}
}

// emitDeleteStart emits an event when a delete begins.
func emitDeleteStart(ctx context.Context, key string) {
	capitan.Emit(ctx, SignalDeleteStart, KeyDocKey.Field(key))
}

// emitDeleteComplete emits an event when a delete finishes.
func emitDeleteComplete(ctx context.Context, key string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDocKey.Field(key),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDeleteComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDeleteComplete, fields...)
	}
}

// emitListStart emits an event when a key listing begins.
func emitListStart(ctx context.Context, prefix string) {
	capitan.Emit(ctx, SignalListStart, KeyPrefix.Field(prefix))
}

// emitListComplete emits an event when a key listing finishes.
func emitListComplete(ctx context.Context, prefix string, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyPrefix.Field(prefix),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalListComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalListComplete, fields...)
	}
}

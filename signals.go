package serializable

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serialization events.
var (
	SignalRegistered          = capitan.NewSignal("serializable.registered", "Serializer registered")
	SignalSerializeComplete   = capitan.NewSignal("serializable.serialize.complete", "Serialize operation finished")
	SignalUnserializeComplete = capitan.NewSignal("serializable.unserialize.complete", "Unserialize operation finished")
	SignalCloneComplete       = capitan.NewSignal("serializable.clone.complete", "Clone operation finished")
	SignalProcessorCreated    = capitan.NewSignal("serializable.processor.created", "Processor instantiated")
	SignalStoreComplete       = capitan.NewSignal("serializable.store.complete", "Store operation finished")
	SignalLoadComplete        = capitan.NewSignal("serializable.load.complete", "Load operation finished")
)

// Keys for typed event data.
var (
	KeyTag         = capitan.NewStringKey("tag")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyFieldCount  = capitan.NewIntKey("field_count")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitRegistered emits an event when a serializer is registered.
func emitRegistered(tag string) {
	capitan.Emit(context.Background(), SignalRegistered,
		KeyTag.Field(tag),
	)
}

// emitSerializeComplete emits an event when a top-level serialize finishes.
func emitSerializeComplete(tag string, duration time.Duration, count int, err error) {
	fields := []capitan.Field{
		KeyTag.Field(tag),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(count),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(context.Background(), SignalSerializeComplete, fields...)
	}
}

// emitUnserializeComplete emits an event when a top-level unserialize finishes.
func emitUnserializeComplete(tag string, duration time.Duration, count int, err error) {
	fields := []capitan.Field{
		KeyTag.Field(tag),
		KeyDuration.Field(duration),
		KeyFieldCount.Field(count),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalUnserializeComplete, fields...)
	} else {
		capitan.Emit(context.Background(), SignalUnserializeComplete, fields...)
	}
}

// emitCloneComplete emits an event when a clone finishes.
func emitCloneComplete(tag string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTag.Field(tag),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalCloneComplete, fields...)
	} else {
		capitan.Emit(context.Background(), SignalCloneComplete, fields...)
	}
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitStoreComplete emits an event when store finishes.
func emitStoreComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalStoreComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalStoreComplete, fields...)
	}
}

// emitLoadComplete emits an event when load finishes.
func emitLoadComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalLoadComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalLoadComplete, fields...)
	}
}

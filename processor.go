package serializable

import (
	"context"
	"errors"
	"time"
)

// ErrNilCodec is returned by NewProcessor when no codec is given.
var ErrNilCodec = errors.New("nil codec")

// Processor stores and loads instances of T through a codec.
//
// Store serializes, marshals and optionally seals; Load reverses the
// steps. Processors are safe for concurrent use once every type they
// may meet is registered. Concurrent Stores of the same instance are safe
// as long as nothing writes to it meanwhile.
type Processor[T Serializable] struct {
	codec     Codec
	registry  *Registry
	encryptor Encryptor
	typeName  string
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*processorConfig)

type processorConfig struct {
	registry  *Registry
	encryptor Encryptor
}

// WithRegistry dispatches through r instead of the Default registry.
func WithRegistry(r *Registry) ProcessorOption {
	return func(c *processorConfig) {
		c.registry = r
	}
}

// WithEncryptor seals stored payloads with enc.
func WithEncryptor(enc Encryptor) ProcessorOption {
	return func(c *processorConfig) {
		c.encryptor = enc
	}
}

// NewProcessor creates a new Processor for T.
func NewProcessor[T Serializable](codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	if codec == nil {
		return nil, ErrNilCodec
	}

	cfg := processorConfig{registry: defaultRegistry}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Processor[T]{
		codec:     codec,
		registry:  cfg.registry,
		encryptor: cfg.encryptor,
		typeName:  typeName[T](),
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), p.typeName)
	return p, nil
}

// ContentType returns the content type of the processor's codec.
func (p *Processor[T]) ContentType() string {
	return p.codec.ContentType()
}

// Store serializes obj and marshals the record.
func (p *Processor[T]) Store(ctx context.Context, obj T) (data []byte, err error) {
	start := time.Now()
	defer func() {
		emitStoreComplete(ctx, p.codec.ContentType(), p.typeName, len(data), time.Since(start), err)
	}()

	rec, err := p.registry.Serialize(obj)
	if err != nil {
		return nil, err
	}

	data, err = p.codec.Marshal(rec)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}

	if p.encryptor != nil {
		data, err = p.encryptor.Encrypt(data)
		if err != nil {
			return nil, newCodecError(ErrEncrypt, err)
		}
	}
	return data, nil
}

// Load unmarshals data and rebuilds the instance it holds. The record must
// resolve to a T.
func (p *Processor[T]) Load(ctx context.Context, data []byte) (obj T, err error) {
	start := time.Now()
	defer func() {
		emitLoadComplete(ctx, p.codec.ContentType(), p.typeName, len(data), time.Since(start), err)
	}()

	var zero T
	if p.encryptor != nil {
		data, err = p.encryptor.Decrypt(data)
		if err != nil {
			return zero, newCodecError(ErrDecrypt, err)
		}
	}

	var m map[string]any
	if err := p.codec.Unmarshal(data, &m); err != nil {
		return zero, newCodecError(ErrUnmarshal, err)
	}

	out, err := p.registry.Unserialize(Record(m))
	if err != nil {
		return zero, err
	}
	obj, ok := out.(T)
	if !ok {
		return zero, newTypeError(p.typeName, typeOf(out))
	}
	return obj, nil
}

package serializable

import (
	"sync"
	"time"
)

// Serializer converts instances of one registered type to and from records.
type Serializer interface {
	// Tag returns the tag the serializer is registered under.
	Tag() string

	// Matches reports whether obj is an instance of the serializer's type.
	// Used when obj's own tag is not registered.
	Matches(obj Serializable) bool

	// Serialize returns the record form of obj. Nested values are
	// dispatched through reg.
	Serialize(reg *Registry, obj Serializable) (Record, error)

	// Unserialize rebuilds an instance from rec. Nested records are
	// dispatched through reg.
	Unserialize(reg *Registry, rec Record) (Serializable, error)
}

// Registry maps tags to serializers.
//
// Registration takes a write lock and lookups a read lock; no lock is held
// while a serializer runs, so serializers may dispatch back into the
// registry.
type Registry struct {
	mu          sync.RWMutex
	serializers map[string]Serializer
	order       []string
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// functions and by objects with no registry of their own.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{serializers: make(map[string]Serializer)}
}

// Register adds s under s.Tag(). A later registration for the same tag
// replaces the earlier one and keeps its position in the fallback scan.
func (r *Registry) Register(s Serializer) {
	tag := s.Tag()

	r.mu.Lock()
	if _, ok := r.serializers[tag]; !ok {
		r.order = append(r.order, tag)
	}
	r.serializers[tag] = s
	r.mu.Unlock()

	emitRegistered(tag)
}

// Lookup returns the serializer registered for tag.
func (r *Registry) Lookup(tag string) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[tag]
	return s, ok
}

// Resolve returns the serializer for a live instance or a record.
//
// A value whose tag is registered resolves to that serializer. Otherwise a
// live instance resolves to the first registered serializer, in
// registration order, that Matches it.
func (r *Registry) Resolve(v any) (Serializer, bool) {
	switch x := v.(type) {
	case Serializable:
		if isUndefined(x) {
			return nil, false
		}
		if s, ok := r.Lookup(x.Base().Tag()); ok {
			return s, true
		}
		for _, s := range r.ordered() {
			if s.Matches(x) {
				return s, true
			}
		}
	default:
		if rec, ok := asRecord(v); ok {
			if tag := rec.Tag(); tag != "" {
				return r.Lookup(tag)
			}
		}
	}
	return nil, false
}

// ordered snapshots the serializers in registration order.
func (r *Registry) ordered() []Serializer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Serializer, len(r.order))
	for i, tag := range r.order {
		out[i] = r.serializers[tag]
	}
	return out
}

// Tags returns the registered tags in registration order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Reset removes every registration.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers = make(map[string]Serializer)
	r.order = nil
}

// Serialize returns the record form of obj.
// Fails with ErrMissingSerializer when obj cannot be resolved.
func (r *Registry) Serialize(obj Serializable) (rec Record, err error) {
	start := time.Now()
	tag := tagOf(obj)
	defer func() {
		emitSerializeComplete(tag, time.Since(start), len(rec), err)
	}()

	s, ok := r.Resolve(obj)
	if !ok {
		return nil, newDispatchError(tag)
	}
	return s.Serialize(r, obj)
}

// Unserialize rebuilds an instance from rec.
// Fails with ErrMissingSerializer when rec's tag is not registered.
func (r *Registry) Unserialize(rec Record) (obj Serializable, err error) {
	start := time.Now()
	tag := rec.Tag()
	defer func() {
		emitUnserializeComplete(tag, time.Since(start), len(rec), err)
	}()

	s, ok := r.Resolve(rec)
	if !ok {
		return nil, newDispatchError(tag)
	}
	return s.Unserialize(r, rec)
}

// Clone serializes obj, drops the identity from the record and rebuilds
// it, so the copy shares no containers with obj and gets a fresh identity.
// Nested registered values keep their identities.
func (r *Registry) Clone(obj Serializable) (clone Serializable, err error) {
	start := time.Now()
	tag := tagOf(obj)
	defer func() {
		emitCloneComplete(tag, time.Since(start), err)
	}()

	rec, err := r.Serialize(obj)
	if err != nil {
		return nil, err
	}
	delete(rec, KeyID)
	return r.Unserialize(rec)
}

// SerializeValue deep-copies v, replacing every nested live instance with
// its record. A nested instance with no serializer is an error.
func (r *Registry) SerializeValue(v any) (any, error) {
	return Walk(v, r.serializeNode)
}

// UnserializeValue deep-copies v, replacing every nested record whose tag
// is registered with a live instance. Records with unknown tags are copied
// as plain maps.
func (r *Registry) UnserializeValue(v any) (any, error) {
	return Walk(v, r.unserializeNode)
}

func (r *Registry) serializeNode(v any) (any, bool, error) {
	obj, ok := v.(Serializable)
	if !ok {
		return nil, false, nil
	}
	if isUndefined(obj) {
		return nil, true, nil
	}
	s, ok := r.Resolve(obj)
	if !ok {
		return nil, false, newDispatchError(obj.Base().Tag())
	}
	rec, err := s.Serialize(r, obj)
	if err != nil {
		return nil, false, err
	}
	if _, ok := rec[KeyName]; !ok {
		rec[KeyName] = s.Tag()
	}
	return rec, true, nil
}

func (r *Registry) unserializeNode(v any) (any, bool, error) {
	rec, ok := asRecord(v)
	if !ok || rec.Tag() == "" {
		return nil, false, nil
	}
	s, ok := r.Lookup(rec.Tag())
	if !ok {
		return nil, false, nil
	}
	obj, err := s.Unserialize(r, rec)
	if err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

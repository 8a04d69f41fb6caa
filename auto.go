package serializable

// AutoSerializer serializes instances of T through the property table of
// their type. It is bound to a tag and a constructor returning a fresh,
// initialized instance.
type AutoSerializer[T Serializable] struct {
	tag   string
	newFn func() T
	typ   *Type
}

// NewAutoSerializer returns a serializer for T registered under tag.
// newFn is called once here to learn T's type.
func NewAutoSerializer[T Serializable](tag string, newFn func() T) *AutoSerializer[T] {
	return &AutoSerializer[T]{
		tag:   tag,
		newFn: newFn,
		typ:   newFn().Base().Type(),
	}
}

// Tag implements Serializer.
func (s *AutoSerializer[T]) Tag() string {
	return s.tag
}

// Type returns the type instances are constructed with.
func (s *AutoSerializer[T]) Type() *Type {
	return s.typ
}

// Matches implements Serializer. obj matches when it is a T or its type
// descends from the serializer's type.
func (s *AutoSerializer[T]) Matches(obj Serializable) bool {
	if isUndefined(obj) {
		return false
	}
	if _, ok := obj.(T); ok {
		return true
	}
	return obj.Base().Type().Is(s.typ)
}

// Serialize implements Serializer. The record holds the serializer's tag,
// obj's identity and every serializable property with a defined value.
// A nil reg means obj's own registry.
func (s *AutoSerializer[T]) Serialize(reg *Registry, obj Serializable) (Record, error) {
	if isUndefined(obj) {
		return nil, newDispatchError(s.tag)
	}
	base := obj.Base()
	if reg == nil {
		reg = base.Registry()
	}

	rec := Record{
		KeyName: s.tag,
		KeyID:   base.ID(),
	}
	for _, p := range base.Type().props {
		if !p.IsSerializable() {
			continue
		}
		v := p.Get(obj)
		if isUndefined(v) {
			continue
		}
		out, err := reg.SerializeValue(v)
		if err != nil {
			return nil, err
		}
		rec[p.Name] = out
	}
	return rec, nil
}

// Unserialize implements Serializer.
func (s *AutoSerializer[T]) Unserialize(reg *Registry, rec Record) (Serializable, error) {
	obj, err := s.Decode(reg, rec)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Decode rebuilds a T from rec. rec must carry the serializer's tag.
// Properties missing from rec keep their constructed values; keys that are
// not serializable properties are ignored. A nil reg means the new
// instance's registry.
func (s *AutoSerializer[T]) Decode(reg *Registry, rec Record) (T, error) {
	var zero T
	if tag := rec.Tag(); tag != s.tag {
		return zero, newTypeError(s.tag, tag)
	}

	obj := s.newFn()
	base := obj.Base()
	if reg != nil {
		base.UseRegistry(reg)
	} else {
		reg = base.Registry()
	}
	if id := rec.ID(); id != "" {
		base.setID(id)
	}

	for _, p := range base.Type().props {
		if !p.IsSerializable() {
			continue
		}
		raw, ok := rec[p.Name]
		if !ok || isUndefined(raw) {
			continue
		}
		v, err := reg.UnserializeValue(raw)
		if err != nil {
			return zero, err
		}
		if err := p.Set(obj, v); err != nil {
			return zero, err
		}
	}
	return obj, nil
}

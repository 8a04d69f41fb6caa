package serializable

import "fmt"

// Property describes one named property of a type.
//
// A property with both Get and Set is an accessor pair. Only accessor pairs
// that are not Excluded are serialized.
type Property struct {
	Name string

	// Get reads the property from an instance. Nil for write-only properties.
	Get func(obj Serializable) any

	// Set writes the property on an instance. Nil for read-only properties.
	Set func(obj Serializable, v any) error

	// Excluded opts the pair out of serialization in both directions.
	Excluded bool
}

// IsAccessor reports whether p has both a reader and a writer.
func (p Property) IsAccessor() bool {
	return p.Get != nil && p.Set != nil
}

// IsSerializable reports whether p takes part in serialization.
func (p Property) IsSerializable() bool {
	return p.IsAccessor() && !p.Excluded
}

// Field returns an accessor pair stored in the instance's private data
// store under name. Values are stored as given.
func Field(name string) Property {
	return Property{
		Name: name,
		Get: func(obj Serializable) any {
			return obj.Base().Data()[name]
		},
		Set: func(obj Serializable, v any) error {
			obj.Base().Data()[name] = v
			return nil
		},
	}
}

// Accessor returns a typed accessor pair for instances of T.
//
// Values written through the pair are converted to V: numeric values convert
// when no precision is lost, and slices and maps convert member-wise.
// Anything else fails with ErrPropertyType.
func Accessor[T Serializable, V any](name string, get func(T) V, set func(T, V)) Property {
	p := Reader(name, get)
	p.Set = func(obj Serializable, v any) error {
		target, ok := obj.(T)
		if !ok {
			return newPropertyError(ErrPropertyType, tagOf(obj), name,
				fmt.Errorf("receiver is %s, want %s", typeOf(obj), typeName[T]()))
		}
		val, err := as[V](v)
		if err != nil {
			return newPropertyError(ErrPropertyType, tagOf(obj), name, err)
		}
		set(target, val)
		return nil
	}
	return p
}

// Reader returns a read-only property for instances of T. Read-only
// properties are never serialized.
func Reader[T Serializable, V any](name string, get func(T) V) Property {
	return Property{
		Name: name,
		Get: func(obj Serializable) any {
			target, ok := obj.(T)
			if !ok {
				return nil
			}
			return get(target)
		},
	}
}

// Exclude marks p as opted out of serialization. An excluded pair is never
// written to a record and never assigned from one.
func Exclude(p Property) Property {
	p.Excluded = true
	return p
}

// Package serializable provides polymorphic serialization and cloning of
// registered object types.
//
// A serializable type embeds Object, declares a Type carrying its tag and
// its accessor-pair properties, and registers a Serializer. Any instance can
// then be turned into a Record (a plain nested map holding scalars, slices,
// maps and nested records) and rebuilt from one, including nested values of
// other registered types.
//
// # Declaring a type
//
//	type Point struct {
//	    serializable.Object
//	    X, Y int
//	}
//
//	var PointType = serializable.NewType("Point", nil,
//	    serializable.Accessor("x",
//	        func(p *Point) int { return p.X },
//	        func(p *Point, v int) { p.X = v }),
//	    serializable.Accessor("y",
//	        func(p *Point) int { return p.Y },
//	        func(p *Point, v int) { p.Y = v }),
//	)
//
//	func NewPoint() *Point {
//	    p := &Point{}
//	    p.Init(p, PointType)
//	    return p
//	}
//
//	serializable.Register(serializable.NewAutoSerializer("Point", NewPoint))
//
// # Records
//
// A record always carries the reserved keys "__name__" (the type tag used
// for dispatch) and "id" (the instance identity), plus one entry per
// serializable property:
//
//	{"__name__": "Point", "id": "6f1c...", "x": 1, "y": 2}
//
// # Properties
//
// Only accessor pairs (a reader and a writer) take part in serialization.
// Exclude marks a pair as opted out of both directions. Subtypes created with
// Type.Extend replace inherited descriptors wholesale: redefining only the
// reader of an inherited pair drops its writer.
//
// # Registries
//
// Dispatch goes through a Registry. The package-level functions use the
// process-wide Default registry. Registration takes a write lock, lookups a
// read lock; register every type during startup before concurrent use.
package serializable

// Reserved record keys.
const (
	// KeyName holds the type tag of a record.
	KeyName = "__name__"

	// KeyID holds the identity of a record.
	KeyID = "id"
)

// Record is the plain, storage-safe form of a serialized instance.
type Record map[string]any

// Tag returns the record's type tag, or "" when it carries none.
func (r Record) Tag() string {
	tag, _ := r[KeyName].(string)
	return tag
}

// ID returns the record's identity, or "" when it carries none.
func (r Record) ID() string {
	id, _ := r[KeyID].(string)
	return id
}

// asRecord reports whether v is a keyed structure that may carry a tag.
func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, m != nil
	case map[string]any:
		return Record(m), m != nil
	}
	return nil, false
}

// Register adds s to the Default registry.
func Register(s Serializer) {
	defaultRegistry.Register(s)
}

// Serialize serializes obj through the Default registry.
func Serialize(obj Serializable) (Record, error) {
	return defaultRegistry.Serialize(obj)
}

// Unserialize rebuilds an instance from rec through the Default registry.
func Unserialize(rec Record) (Serializable, error) {
	return defaultRegistry.Unserialize(rec)
}

// Clone returns a copy of obj with a fresh identity, dispatched through the
// Default registry.
func Clone[T Serializable](obj T) (T, error) {
	var zero T
	out, err := defaultRegistry.Clone(obj)
	if err != nil {
		return zero, err
	}
	clone, ok := out.(T)
	if !ok {
		return zero, newTypeError(typeName[T](), typeOf(out))
	}
	return clone, nil
}

// Reset clears the Default registry.
// This is primarily useful for test isolation.
func Reset() {
	defaultRegistry.Reset()
}

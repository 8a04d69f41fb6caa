package serializable

import (
	"sync"

	"github.com/google/uuid"
)

// Serializable is implemented by every instance of a serializable type,
// usually by embedding Object.
type Serializable interface {
	Base() *Object
}

// Object is the embeddable base of serializable types. It holds the
// instance's identity, its type, a private data store and the registry
// used by its Serialize and Clone methods.
//
// Call Init before use. An Object must not be copied after Init.
//
// Reading the identity and the data store is safe for concurrent use; the
// first read of each is synchronized. Writes (Apply, property setters) are
// not.
type Object struct {
	mu   sync.Mutex
	self Serializable
	typ  *Type
	reg  *Registry
	data Record
	id   string
}

// Base implements Serializable.
func (o *Object) Base() *Object {
	return o
}

// Init binds the object to the value embedding it and to its type.
func (o *Object) Init(self Serializable, typ *Type) {
	o.self = self
	o.typ = typ
}

// Type returns the object's type, ObjectType if Init was never called.
func (o *Object) Type() *Type {
	if o.typ == nil {
		return ObjectType
	}
	return o.typ
}

// Tag returns the object's type tag.
func (o *Object) Tag() string {
	return o.Type().Tag()
}

// ID returns the object's identity, minting a UUID on first read.
func (o *Object) ID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return o.id
}

// Data returns the private data store backing Field properties.
func (o *Object) Data() Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.data == nil {
		o.data = make(Record)
	}
	return o.data
}

// Registry returns the registry used by Serialize and Clone.
func (o *Object) Registry() *Registry {
	if o.reg == nil {
		return defaultRegistry
	}
	return o.reg
}

// UseRegistry routes the object's Serialize and Clone through r.
func (o *Object) UseRegistry(r *Registry) {
	o.reg = r
}

// Apply writes data onto the object. A string "id" sets the identity; every
// accessor pair with a defined value in data is written. Unknown keys are
// ignored. A nil map is a no-op.
func (o *Object) Apply(data Record) error {
	if data == nil {
		return nil
	}
	if id := data.ID(); id != "" {
		o.setID(id)
	}
	self := o.instance()
	for _, p := range o.Type().props {
		if !p.IsAccessor() {
			continue
		}
		v, ok := data[p.Name]
		if !ok || isUndefined(v) {
			continue
		}
		if err := p.Set(self, v); err != nil {
			return err
		}
	}
	return nil
}

// Serialize returns the record form of the object.
func (o *Object) Serialize() (Record, error) {
	return o.Registry().Serialize(o.instance())
}

// Clone returns a copy of the object with a fresh identity.
func (o *Object) Clone() (Serializable, error) {
	return o.Registry().Clone(o.instance())
}

func (o *Object) setID(id string) {
	o.mu.Lock()
	o.id = id
	o.mu.Unlock()
}

func (o *Object) instance() Serializable {
	if o.self != nil {
		return o.self
	}
	return o
}

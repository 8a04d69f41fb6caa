package serializable

// DefaultTag is the tag of the root type every other type descends from.
const DefaultTag = "LavaSerializableClass"

// ObjectType is the universal root type. It declares no properties.
var ObjectType = &Type{tag: DefaultTag, index: map[string]int{}}

// Type is the property table and tag of a serializable type.
//
// Types are immutable after construction; the merged property table is
// computed once by NewType.
type Type struct {
	tag    string
	parent *Type
	own    []Property

	props []Property
	index map[string]int
}

// NewType declares a type with the given tag, parent and own properties.
// A nil parent means ObjectType. An empty tag inherits the parent's tag.
func NewType(tag string, parent *Type, props ...Property) *Type {
	if parent == nil {
		parent = ObjectType
	}
	if tag == "" {
		tag = parent.tag
	}
	t := &Type{
		tag:    tag,
		parent: parent,
		own:    append([]Property(nil), props...),
	}
	t.merge()
	return t
}

// Extend declares a subtype of t.
func (t *Type) Extend(tag string, props ...Property) *Type {
	return NewType(tag, t, props...)
}

// merge composes the property tables of the ancestor chain, root-most
// first. A redefined name replaces the inherited descriptor in place.
func (t *Type) merge() {
	var chain []*Type
	for c := t; c != nil && c != ObjectType; c = c.parent {
		chain = append(chain, c)
	}

	t.index = make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, p := range chain[i].own {
			if at, ok := t.index[p.Name]; ok {
				t.props[at] = p
				continue
			}
			t.index[p.Name] = len(t.props)
			t.props = append(t.props, p)
		}
	}
}

// Tag returns the type tag.
func (t *Type) Tag() string {
	return t.tag
}

// Parent returns the parent type, or nil for ObjectType.
func (t *Type) Parent() *Type {
	return t.parent
}

// Properties returns the merged property table in declaration order.
func (t *Type) Properties() []Property {
	return append([]Property(nil), t.props...)
}

// Property returns the merged descriptor for name.
func (t *Type) Property(name string) (Property, bool) {
	at, ok := t.index[name]
	if !ok {
		return Property{}, false
	}
	return t.props[at], true
}

// Is reports whether t is other or descends from it.
func (t *Type) Is(other *Type) bool {
	for c := t; c != nil; c = c.parent {
		if c == other {
			return true
		}
	}
	return false
}

// Properties returns the merged property table of obj's type.
func Properties(obj Serializable) []Property {
	return obj.Base().Type().Properties()
}

package serializable

import "reflect"

// Substitute is consulted at every node of a Walk. Returning ok replaces the
// node with replacement, which may be nil, and stops descent into it.
type Substitute func(v any) (replacement any, ok bool, err error)

// Walk returns a deep copy of v in which nodes are replaced as directed by
// sub. Slices, arrays, maps and structs are copied member by member, and a
// pointer that is not a Serializable is copied into a new allocation.
// Serializable instances sub leaves alone, and every other value, are
// returned as is.
//
// A copied container keeps its type when all of its walked members still
// fit it. Otherwise slices and arrays widen to []any, maps to map[K]any and
// structs to a map[string]any of their exported fields. Unexported struct
// fields are copied shallowly and dropped on widening. A pointer whose
// target no longer fits is replaced by the walked target.
// Walk does not detect cycles.
func Walk(v any, sub Substitute) (any, error) {
	if sub != nil {
		replacement, ok, err := sub(v)
		if err != nil {
			return nil, err
		}
		if ok {
			return replacement, nil
		}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v, nil
		}
		return walkList(rv, sub)
	case reflect.Array:
		return walkList(rv, sub)
	case reflect.Map:
		if rv.IsNil() {
			return v, nil
		}
		return walkMap(rv, sub)
	case reflect.Struct:
		return walkStruct(rv, sub)
	case reflect.Pointer:
		if _, ok := v.(Serializable); ok || rv.IsNil() {
			return v, nil
		}
		return walkPointer(rv, sub)
	}
	return v, nil
}

func walkList(rv reflect.Value, sub Substitute) (any, error) {
	n := rv.Len()
	elem := rv.Type().Elem()
	items := make([]any, n)
	fits := true
	for i := 0; i < n; i++ {
		item, err := Walk(rv.Index(i).Interface(), sub)
		if err != nil {
			return nil, err
		}
		items[i] = item
		fits = fits && fitsType(item, elem)
	}
	if !fits || rv.Type() == reflect.TypeOf(items) {
		return items, nil
	}

	var out reflect.Value
	if rv.Kind() == reflect.Array {
		out = reflect.New(rv.Type()).Elem()
	} else {
		out = reflect.MakeSlice(rv.Type(), n, n)
	}
	for i, item := range items {
		out.Index(i).Set(valueOf(item, elem))
	}
	return out.Interface(), nil
}

func walkMap(rv reflect.Value, sub Substitute) (any, error) {
	typ := rv.Type()
	keys := make([]reflect.Value, 0, rv.Len())
	items := make([]any, 0, rv.Len())
	fits := true

	iter := rv.MapRange()
	for iter.Next() {
		item, err := Walk(iter.Value().Interface(), sub)
		if err != nil {
			return nil, err
		}
		keys = append(keys, iter.Key())
		items = append(items, item)
		fits = fits && fitsType(item, typ.Elem())
	}

	if !fits {
		typ = reflect.MapOf(typ.Key(), anyType)
	}
	out := reflect.MakeMapWithSize(typ, len(keys))
	for i, k := range keys {
		out.SetMapIndex(k, valueOf(items[i], typ.Elem()))
	}
	return out.Interface(), nil
}

func walkStruct(rv reflect.Value, sub Substitute) (any, error) {
	typ := rv.Type()
	var fields []int
	items := make(map[string]any)
	fits := true
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		item, err := Walk(rv.Field(i).Interface(), sub)
		if err != nil {
			return nil, err
		}
		fields = append(fields, i)
		items[f.Name] = item
		fits = fits && fitsType(item, f.Type)
	}
	if !fits {
		return items, nil
	}

	out := reflect.New(typ).Elem()
	out.Set(rv)
	for _, i := range fields {
		f := typ.Field(i)
		out.Field(i).Set(valueOf(items[f.Name], f.Type))
	}
	return out.Interface(), nil
}

func walkPointer(rv reflect.Value, sub Substitute) (any, error) {
	elem := rv.Type().Elem()
	item, err := Walk(rv.Elem().Interface(), sub)
	if err != nil {
		return nil, err
	}
	if !fitsType(item, elem) {
		return item, nil
	}
	out := reflect.New(elem)
	out.Elem().Set(valueOf(item, elem))
	return out.Interface(), nil
}

func fitsType(v any, t reflect.Type) bool {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	out := reflect.New(t).Elem()
	out.Set(reflect.ValueOf(v))
	return out
}

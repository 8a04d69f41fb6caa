package serializable

import (
	"fmt"
	"reflect"
)

var anyType = reflect.TypeFor[any]()

// as converts v for assignment to a V-typed property.
func as[V any](v any) (V, error) {
	if val, ok := v.(V); ok {
		return val, nil
	}
	var zero V
	out, err := convert(v, reflect.TypeFor[V]())
	if err != nil {
		return zero, err
	}
	val, _ := out.Interface().(V)
	return val, nil
}

// convert builds a value of type target from v.
// Records decoded by a codec lose their Go types (float64 numbers, []any
// lists), so numbers, slices and maps are rebuilt member-wise.
func convert(v any, target reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return reflect.Zero(target), nil
	}
	if rv.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(rv)
		return out, nil
	}

	switch {
	case isNumber(rv.Kind()) && isNumber(target.Kind()):
		out := rv.Convert(target)
		if isFloat(rv.Kind()) && isFloat(target.Kind()) {
			return out, nil
		}
		if !out.Convert(rv.Type()).Equal(rv) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", v, target)
		}
		return out, nil

	case rv.Kind() == target.Kind() && (rv.Kind() == reflect.String || rv.Kind() == reflect.Bool):
		return rv.Convert(target), nil

	case isList(rv.Kind()) && target.Kind() == reflect.Slice:
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		if err := convertList(rv, out); err != nil {
			return reflect.Value{}, err
		}
		return out, nil

	case isList(rv.Kind()) && target.Kind() == reflect.Array:
		if rv.Len() != target.Len() {
			return reflect.Value{}, fmt.Errorf("cannot use %d items as %s", rv.Len(), target)
		}
		out := reflect.New(target).Elem()
		if err := convertList(rv, out); err != nil {
			return reflect.Value{}, err
		}
		return out, nil

	case rv.Kind() == reflect.Map && target.Kind() == reflect.Map:
		out := reflect.MakeMapWithSize(target, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := convert(iter.Key().Interface(), target.Key())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
			}
			e, err := convert(iter.Value().Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("[%v]: %w", iter.Key().Interface(), err)
			}
			out.SetMapIndex(k, e)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), target)
}

func convertList(src, dst reflect.Value) error {
	for i := 0; i < src.Len(); i++ {
		e, err := convert(src.Index(i).Interface(), dst.Type().Elem())
		if err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
		dst.Index(i).Set(e)
	}
	return nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isList(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array
}

// isUndefined reports whether v holds no value: a nil interface or a nil
// pointer, map, slice, func or channel. Undefined values are never written
// to records and never assigned from them.
func isUndefined(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func typeOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

// tagOf returns obj's tag, or "" for a nil instance.
func tagOf(obj Serializable) string {
	if isUndefined(obj) {
		return ""
	}
	return obj.Base().Tag()
}

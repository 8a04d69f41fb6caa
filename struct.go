package serializable

import (
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// structTag is the struct tag read by Struct.
const structTag = "serializable"

func init() {
	sentinel.Tag(structTag)
}

// Struct derives accessor pairs from the exported fields of S tagged
// `serializable:"name"`. The option "exclude" opts a field out of
// serialization, "-" skips the field entirely and an empty name falls back
// to the Go field name:
//
//	type Account struct {
//	    serializable.Object
//	    Owner  string `serializable:"owner"`
//	    Secret string `serializable:"secret,exclude"`
//	}
//
//	var AccountType = serializable.NewType("Account", nil,
//	    serializable.Struct[Account, *Account]()...)
func Struct[S any, T interface {
	*S
	Serializable
}]() []Property {
	metadata := sentinel.Scan[S]()
	props := make([]Property, 0, len(metadata.Fields))

	for _, field := range metadata.Fields {
		val, ok := field.Tags[structTag]
		if !ok {
			continue
		}
		name, opts, _ := strings.Cut(val, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}

		p := structField[S, T](name, field.Index, field.ReflectType)
		for _, opt := range strings.Split(opts, ",") {
			if opt == "exclude" {
				p.Excluded = true
			}
		}
		props = append(props, p)
	}
	return props
}

// structField builds an accessor pair over the field of S at index.
func structField[S any, T interface {
	*S
	Serializable
}](name string, index []int, typ reflect.Type) Property {
	field := func(obj Serializable) (reflect.Value, bool) {
		target, ok := obj.(T)
		if !ok {
			return reflect.Value{}, false
		}
		ptr := (*S)(target)
		if ptr == nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(ptr).Elem().FieldByIndex(index), true
	}

	return Property{
		Name: name,
		Get: func(obj Serializable) any {
			fv, ok := field(obj)
			if !ok {
				return nil
			}
			return fv.Interface()
		},
		Set: func(obj Serializable, v any) error {
			fv, ok := field(obj)
			if !ok {
				return newPropertyError(ErrPropertyType, tagOf(obj), name, nil)
			}
			out, err := convert(v, typ)
			if err != nil {
				return newPropertyError(ErrPropertyType, tagOf(obj), name, err)
			}
			fv.Set(out)
			return nil
		},
	}
}

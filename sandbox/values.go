package sandbox

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// ToValue converts a Go value, typically a scanned column or a summary, to
// a Starlark value. Structs become dicts keyed by their json names.
func ToValue(v any) (starlark.Value, error) {
	switch v := v.(type) {

	case nil:
		return starlark.None, nil
	case starlark.Value:
		return v, nil

	case bool:
		return starlark.Bool(v), nil
	case string:
		return starlark.String(v), nil
	case []byte:
		return starlark.Bytes(v), nil
	case time.Time:
		return starlark.String(v.UTC().Format(time.DateTime)), nil

	case int:
		return starlark.MakeInt(v), nil
	case int64:
		return starlark.MakeInt64(v), nil
	case uint64:
		return starlark.MakeUint64(v), nil
	case float64:
		return starlark.Float(v), nil

	case []any:
		return listOf(len(v), func(i int) any {
			return v[i]
		})

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			value, err := ToValue(val)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), value); err != nil {
				return nil, err
			}
		}
		return d, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool()), nil
	case reflect.String:
		return starlark.String(value.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float()), nil

	case reflect.Slice, reflect.Array:
		return listOf(value.Len(), func(i int) any {
			return value.Index(i).Interface()
		})

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			k, err := ToValue(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			val, err := ToValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(k, val); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag == "-" {
				continue
			} else if tag != "" {
				name = tag
			}
			val, err := ToValue(value.Field(i).Interface())
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(name), val); err != nil {
				return nil, err
			}
		}
		return d, nil

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return starlark.None, nil
		}
		return ToValue(value.Elem().Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface()), nil

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}

func listOf(n int, get func(int) any) (starlark.Value, error) {
	elems := make([]starlark.Value, n)
	for i := range n {
		elem, err := ToValue(get(i))
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return starlark.NewList(elems), nil
}

// FromValue converts a Starlark query argument to a driver value.
func FromValue(v starlark.Value) (any, error) {
	switch v := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(v), nil
	case starlark.String:
		return string(v), nil
	case starlark.Bytes:
		return []byte(v), nil
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of range: %s", v)
		}
		return i, nil
	case starlark.Float:
		return float64(v), nil
	}
	return nil, fmt.Errorf("unsupported query argument type: %s", v.Type())
}

package record

import (
	"fmt"
	"reflect"
)

// deepCopy copies maps, slices and arrays recursively. Other values, including
// pointers and structs, are copied by value.
func deepCopy(value any) any {
	if value == nil {
		return nil
	}

	return copyValue(reflect.ValueOf(value)).Interface()
}

// isNil reports whether value is nil or a nil pointer, map, slice or interface.
func isNil(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

func copyValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(copyValue(rv.Elem()))

		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}

		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copyValue(rv.Index(i)))
		}

		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(copyValue(rv.Index(i)))
		}

		return out
	}

	return rv
}

// mergeContainers merges a default container with an input container.
//
// Sequences yield the default elements followed by the input elements.
// Mappings yield the default entries overlaid by the input entries.
// ok is false when the two values are not containers of a compatible kind.
func mergeContainers(def, input any) (any, bool) {
	dv, iv := reflect.ValueOf(def), reflect.ValueOf(input)

	switch {
	case isSequence(dv) && isSequence(iv):
		if dv.Kind() == reflect.Slice && dv.Type() == iv.Type() {
			out := reflect.MakeSlice(dv.Type(), 0, dv.Len()+iv.Len())
			out = reflect.AppendSlice(out, copyValue(dv))

			return reflect.AppendSlice(out, iv).Interface(), true
		}
		out := make([]any, 0, dv.Len()+iv.Len())
		for _, v := range []reflect.Value{dv, iv} {
			for i := 0; i < v.Len(); i++ {
				out = append(out, copyValue(v.Index(i)).Interface())
			}
		}

		return out, true
	case dv.Kind() == reflect.Map && iv.Kind() == reflect.Map:
		if dv.Type() == iv.Type() {
			out := copyValue(dv)
			iter := iv.MapRange()
			for iter.Next() {
				out.SetMapIndex(iter.Key(), iter.Value())
			}

			return out.Interface(), true
		}
		out := make(map[string]any, dv.Len()+iv.Len())
		for _, v := range []reflect.Value{dv, iv} {
			iter := v.MapRange()
			for iter.Next() {
				out[fmt.Sprint(iter.Key().Interface())] = copyValue(iter.Value()).Interface()
			}
		}

		return out, true
	}

	return nil, false
}

func isSequence(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

func isContainer(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}

	return false
}

// normalize converts nested containers to map[string]any and []any.
func normalize(value any) any {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}

		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any(nil)
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}

		return out
	}

	return value
}

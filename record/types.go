package record

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// TypeTag names the type constraint of a field.
//
// A tag may carry a sub-condition after ':' (for example "array:int"); the
// built-in checks dispatch on the part before ':'.
type TypeTag string

// Built-in type tags. Any other tag is resolved through CustomType predicates.
const (
	TypeNumeric TypeTag = "numeric"
	TypeFloat   TypeTag = "float"
	TypeString  TypeTag = "string"
	TypeArray   TypeTag = "array"
	TypeAssoc   TypeTag = "assoc"
	TypeObject  TypeTag = "object"
	TypeBoolean TypeTag = "boolean"
)

// Base returns the tag without its sub-condition.
func (t TypeTag) Base() TypeTag {
	base, _, _ := strings.Cut(string(t), ":")
	return TypeTag(base)
}

// Sub returns the sub-condition after ':', or "".
func (t TypeTag) Sub() string {
	_, sub, _ := strings.Cut(string(t), ":")
	return sub
}

// Builtin reports whether the base tag is one of the built-in tags.
func (t TypeTag) Builtin() bool {
	switch t.Base() {
	case TypeNumeric, TypeFloat, TypeString, TypeArray, TypeAssoc, TypeObject, TypeBoolean:
		return true
	}

	return false
}

// Predicate checks a value against a custom type tag.
//
// It receives the full tag including any sub-condition. A returned error that
// does not already match ErrValidation is wrapped in a BadTypeError.
type Predicate func(tag TypeTag, field string, value any) error

// coerce checks value against a built-in tag and returns the normalized value.
// ok is false when the value does not satisfy the tag.
func coerce(tag TypeTag, value any) (any, bool) {
	switch tag.Base() {
	case TypeNumeric:
		n, ok := toInt64(value)
		return n, ok
	case TypeFloat:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Float32 && rv.Kind() != reflect.Float64 {
			return nil, false
		}

		return rv.Float(), true
	case TypeString:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.String {
			return nil, false
		}

		return rv.String(), true
	case TypeBoolean:
		return truthy(value), true
	case TypeArray:
		rv := reflect.ValueOf(value)
		if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Len() == 0 {
			return nil, false
		}

		return value, true
	case TypeAssoc:
		return value, isAssoc(value)
	case TypeObject:
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Pointer && !rv.IsNil() {
			rv = rv.Elem()
		}

		return value, rv.Kind() == reflect.Struct
	}

	return value, true
}

// toInt64 accepts any numeric kind or numeric string and truncates it to an integer.
func toInt64(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}

		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return floatToInt64(rv.Float())
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" || strings.ContainsAny(s, "xX_") {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}

		return floatToInt64(f)
	}

	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}

	return int64(f), true
}

// truthy converts a value to a boolean: nil, false, zero numbers, "", "0"
// and empty containers are false.
func truthy(value any) bool {
	if value == nil {
		return false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String:
		s := rv.String()
		return s != "" && s != "0"
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}

	return true
}

// isAssoc reports whether value is a non-empty map whose keys are not exactly 0..n-1.
func isAssoc(value any) bool {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Len() == 0 {
		return false
	}

	n := rv.Len()
	seen := make([]bool, n)
	iter := rv.MapRange()
	for iter.Next() {
		idx, ok := sequentialIndex(iter.Key())
		if !ok || idx < 0 || idx >= n || seen[idx] {
			return true
		}
		seen[idx] = true
	}

	return false
}

func sequentialIndex(key reflect.Value) (int, bool) {
	if key.Kind() == reflect.Interface {
		key = key.Elem()
	}

	switch key.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(key.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if key.Uint() > math.MaxInt32 {
			return 0, false
		}

		return int(key.Uint()), true
	case reflect.String:
		s := key.String()
		n, err := strconv.Atoi(s)
		if err != nil || strconv.Itoa(n) != s {
			return 0, false
		}

		return n, true
	}

	return 0, false
}

// looseEqual compares values, treating all numeric kinds as numbers.
// Two integers are compared exactly; a float on either side compares as float64.
func looseEqual(a, b any) bool {
	na, okA := numberOf(a)
	nb, okB := numberOf(b)
	if !okA || !okB {
		return reflect.DeepEqual(a, b)
	}

	switch {
	case na.kind == numFloat || nb.kind == numFloat:
		return na.float() == nb.float()
	case na.kind == nb.kind:
		return na.i == nb.i && na.u == nb.u
	case na.kind == numInt:
		return na.i >= 0 && uint64(na.i) == nb.u
	default:
		return nb.i >= 0 && uint64(nb.i) == na.u
	}
}

type numKind int

const (
	numInt numKind = iota
	numUint
	numFloat
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n number) float() float64 {
	switch n.kind {
	case numInt:
		return float64(n.i)
	case numUint:
		return float64(n.u)
	}

	return n.f
}

func numberOf(v any) (number, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: numInt, i: rv.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: numUint, u: rv.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{kind: numFloat, f: rv.Float()}, true
	}

	return number{}, false
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", value)
}

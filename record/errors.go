package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is matched by every validation failure via errors.Is.
var ErrValidation = errors.New("record: validation failed")

// ErrLookup is matched by LookupError via errors.Is.
var ErrLookup = errors.New("record: unknown field")

// ErrNotValidated is returned by validation-sensitive operations on a record
// that was changed, or created with Deferred, and not validated since.
var ErrNotValidated = fmt.Errorf("%w: record is not validated", ErrValidation)

// ErrUnknownType is the cause of a BadTypeError raised for a type tag that is
// neither built in nor registered, when the schema is strict.
var ErrUnknownType = errors.New("record: unknown type tag")

// MissingFieldError lists every required field that is absent or nil.
type MissingFieldError struct {
	Schema string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return "record: " + schemaPrefix(e.Schema) + "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is reports whether target is ErrValidation.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrValidation
}

// BadTypeError reports a field whose value does not match its type tag.
type BadTypeError struct {
	Field    string
	Expected TypeTag
	Actual   string
	Value    any
	Cause    error
}

func (e *BadTypeError) Error() string {
	msg := fmt.Sprintf("record: field %q must be %s, %s [%v] given", e.Field, e.Expected, e.Actual, e.Value)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Is reports whether target is ErrValidation.
func (e *BadTypeError) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap returns the cause, such as ErrUnknownType or a predicate error.
func (e *BadTypeError) Unwrap() error {
	return e.Cause
}

// BadValueError reports a field whose value is outside its allowed set.
type BadValueError struct {
	Field   string
	Value   any
	Allowed []any
}

func (e *BadValueError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, v := range e.Allowed {
		allowed[i] = fmt.Sprint(v)
	}

	return fmt.Sprintf("record: field %q has a value [%v] that is not allowed, only {%s} are allowed",
		e.Field, e.Value, strings.Join(allowed, ", "))
}

// Is reports whether target is ErrValidation.
func (e *BadValueError) Is(target error) bool {
	return target == ErrValidation
}

// LookupError reports access to a field the record does not have.
type LookupError struct {
	Schema string
	Field  string
}

func (e *LookupError) Error() string {
	return "record: " + schemaPrefix(e.Schema) + "field \"" + e.Field + "\" not found"
}

// Is reports whether target is ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

func schemaPrefix(name string) string {
	if name == "" {
		return ""
	}

	return name + ": "
}

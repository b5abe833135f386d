package record

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// UUIDPredicate accepts a uuid.UUID, a [16]byte or a string in any form
// accepted by uuid.Parse.
//
// Example:
//
//	record.NewSchema("session",
//	    record.Type("id", "uuid"),
//	    record.CustomType("uuid", record.UUIDPredicate),
//	)
func UUIDPredicate(tag TypeTag, field string, value any) error {
	switch v := value.(type) {
	case uuid.UUID, [16]byte:
		return nil
	case string:
		if _, err := uuid.Parse(v); err != nil {
			return &BadTypeError{Field: field, Expected: tag, Actual: typeName(value), Value: value, Cause: err}
		}

		return nil
	}

	return &BadTypeError{Field: field, Expected: tag, Actual: typeName(value), Value: value}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	return validate
}

// ValidatorPredicate returns a predicate that checks values with a
// go-playground/validator tag such as "email", "url" or "ip".
//
// The tag is applied to the value itself, so it must be a field-level tag.
//
// Example:
//
//	record.CustomType("email", record.ValidatorPredicate("required,email"))
func ValidatorPredicate(rule string) Predicate {
	return func(tag TypeTag, field string, value any) error {
		if err := fieldValidator().Var(value, rule); err != nil {
			return &BadTypeError{
				Field:    field,
				Expected: tag,
				Actual:   typeName(value),
				Value:    value,
				Cause:    fmt.Errorf("failed %q check: %w", rule, err),
			}
		}

		return nil
	}
}

// ElementsPredicate returns a predicate for "array:<tag>" sub-conditions that
// checks every element of a sequence against a built-in tag.
//
// Example:
//
//	record.NewSchema("post",
//	    record.Type("scores", "array:numeric"),
//	    record.CustomType("array:numeric", record.ElementsPredicate(record.TypeNumeric)),
//	)
func ElementsPredicate(elem TypeTag) Predicate {
	return func(tag TypeTag, field string, value any) error {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return &BadTypeError{Field: field, Expected: tag, Actual: typeName(value), Value: value}
		}

		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i).Interface()
			if _, ok := coerce(elem, item); !ok {
				return &BadTypeError{
					Field:    fmt.Sprintf("%s[%d]", field, i),
					Expected: elem,
					Actual:   typeName(item),
					Value:    item,
				}
			}
		}

		return nil
	}
}

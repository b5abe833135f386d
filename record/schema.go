package record

import (
	"maps"
	"slices"
)

// Schema is the validation rule set of one record kind.
//
// A Schema is immutable once built and safe to share between goroutines and
// records. Use With to derive a schema with extra rules.
type Schema struct {
	name string

	required []string
	optional []string

	defaults     map[string]any
	defaultOrder []string

	types     map[string]TypeTag
	typeOrder []string

	allowed      map[string][]any
	allowedOrder []string

	custom map[TypeTag]Predicate
	strict bool
}

// SchemaOption adds a rule to a Schema under construction.
type SchemaOption func(*Schema)

// NewSchema builds a schema from rules.
//
// Example:
//
//	var UserSchema = record.NewSchema("user",
//	    record.Required("id", "email"),
//	    record.Optional("nickname"),
//	    record.Default("tags", []string{"new"}),
//	    record.Type("id", record.TypeNumeric),
//	    record.Type("email", "email"),
//	    record.Allowed("status", "active", "inactive"),
//	    record.CustomType("email", record.ValidatorPredicate("email")),
//	)
func NewSchema(name string, opts ...SchemaOption) *Schema {
	s := &Schema{
		name:     name,
		defaults: make(map[string]any),
		types:    make(map[string]TypeTag),
		allowed:  make(map[string][]any),
		custom:   make(map[TypeTag]Predicate),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// With returns a copy of s with more rules applied. s is not modified.
func (s *Schema) With(opts ...SchemaOption) *Schema {
	out := s.clone()
	for _, opt := range opts {
		opt(out)
	}

	return out
}

func (s *Schema) clone() *Schema {
	if s == nil {
		return NewSchema("")
	}

	return &Schema{
		name:         s.name,
		required:     slices.Clone(s.required),
		optional:     slices.Clone(s.optional),
		defaults:     maps.Clone(s.defaults),
		defaultOrder: slices.Clone(s.defaultOrder),
		types:        maps.Clone(s.types),
		typeOrder:    slices.Clone(s.typeOrder),
		allowed:      maps.Clone(s.allowed),
		allowedOrder: slices.Clone(s.allowedOrder),
		custom:       maps.Clone(s.custom),
		strict:       s.strict,
	}
}

// Required marks fields that must be present and non-nil.
func Required(fields ...string) SchemaOption {
	return func(s *Schema) {
		s.required = appendUnique(s.required, fields...)
	}
}

// Optional marks fields that are set to nil when absent from the input.
func Optional(fields ...string) SchemaOption {
	return func(s *Schema) {
		s.optional = appendUnique(s.optional, fields...)
	}
}

// Default sets the value used when field is absent or nil.
//
// When both the default and the input are containers they are merged:
// sequences become the default elements followed by the input elements, and
// mappings take the default entries overlaid by the input entries.
func Default(field string, value any) SchemaOption {
	return func(s *Schema) {
		if _, ok := s.defaults[field]; !ok {
			s.defaultOrder = append(s.defaultOrder, field)
		}
		s.defaults[field] = deepCopy(value)
	}
}

// Type constrains field to a type tag.
func Type(field string, tag TypeTag) SchemaOption {
	return func(s *Schema) {
		if _, ok := s.types[field]; !ok {
			s.typeOrder = append(s.typeOrder, field)
		}
		s.types[field] = tag
	}
}

// Allowed restricts field to a set of values. Numbers compare by value
// regardless of their Go type.
func Allowed(field string, values ...any) SchemaOption {
	return func(s *Schema) {
		if _, ok := s.allowed[field]; !ok {
			s.allowedOrder = append(s.allowedOrder, field)
		}
		s.allowed[field] = deepCopy(values).([]any)
	}
}

// CustomType registers the predicate for a custom type tag.
//
// A predicate registered for "tag" also serves "tag:sub" unless "tag:sub"
// has its own predicate.
func CustomType(tag TypeTag, predicate Predicate) SchemaOption {
	return func(s *Schema) {
		s.custom[tag] = predicate
	}
}

// Strict makes type tags without a built-in check or predicate fail
// validation with ErrUnknownType instead of being skipped.
func Strict() SchemaOption {
	return func(s *Schema) {
		s.strict = true
	}
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// RequiredFields returns the required fields in declaration order.
func (s *Schema) RequiredFields() []string { return slices.Clone(s.required) }

// OptionalFields returns the optional fields in declaration order.
func (s *Schema) OptionalFields() []string { return slices.Clone(s.optional) }

// DefaultValue returns a copy of the default for field.
func (s *Schema) DefaultValue(field string) (any, bool) {
	v, ok := s.defaults[field]
	if !ok {
		return nil, false
	}

	return deepCopy(v), true
}

// TypeOf returns the type tag of field.
func (s *Schema) TypeOf(field string) (TypeTag, bool) {
	tag, ok := s.types[field]
	return tag, ok
}

// AllowedValues returns the allowed set of field, or nil.
func (s *Schema) AllowedValues(field string) []any {
	values, ok := s.allowed[field]
	if !ok {
		return nil
	}

	return deepCopy(values).([]any)
}

// IsStrict reports whether unknown type tags fail validation.
func (s *Schema) IsStrict() bool { return s.strict }

func (s *Schema) predicate(tag TypeTag) (Predicate, bool) {
	if p, ok := s.custom[tag]; ok {
		return p, true
	}
	p, ok := s.custom[tag.Base()]

	return p, ok
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}

	return dst
}

package record

import (
	"errors"
	"slices"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Record is a field map normalized and validated against a Schema.
//
// A Record owns deep copies of its input. It is not safe for concurrent
// mutation. Setters clear the validated flag; call Validate again before
// validation-sensitive reads such as Decode.
type Record struct {
	schema    *Schema
	data      map[string]any
	fields    []string
	validated bool
}

type options struct {
	deferred bool
}

// Option configures New.
type Option func(*options)

// Deferred skips validation in New. The record is returned unvalidated.
func Deferred() Option {
	return func(o *options) {
		o.deferred = true
	}
}

// New builds a record from raw input and validates it.
//
// Parameters:
//   - schema: Rules to apply (shared, never modified)
//   - raw: Input fields (deep-copied)
//   - opts: Deferred to skip validation
//
// Returns:
//   - *Record: The record, validated unless Deferred was given
//   - error: MissingFieldError, BadTypeError or BadValueError; no record is returned on error
func New(schema *Schema, raw map[string]any, opts ...Option) (*Record, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if schema == nil {
		schema = NewSchema("")
	}

	r := &Record{schema: schema}
	r.SetData(raw)

	if o.deferred {
		return r, nil
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// MustNew is like New but panics on error. It is intended for fixtures.
func MustNew(schema *Schema, raw map[string]any, opts ...Option) *Record {
	r, err := New(schema, raw, opts...)
	if err != nil {
		panic(err)
	}

	return r
}

// SetData replaces the record's fields with a copy of raw.
//
// Absent optional fields are set to nil, absent or nil fields with a default
// receive a copy of it, and container defaults are merged with container
// input. Fields are ordered by sorted input key, then optional fields, then
// defaulted fields. The validated flag is cleared.
func (r *Record) SetData(raw map[string]any) {
	r.data = make(map[string]any, len(raw))
	r.fields = r.fields[:0]
	r.validated = false

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		r.put(k, deepCopy(raw[k]))
	}

	for _, field := range r.schema.optional {
		if _, ok := r.data[field]; !ok {
			r.put(field, nil)
		}
	}

	for _, field := range r.schema.defaultOrder {
		def := r.schema.defaults[field]
		current := r.data[field]

		switch {
		case isNil(current):
			r.put(field, deepCopy(def))
		case isContainer(def):
			if merged, ok := mergeContainers(def, current); ok {
				r.data[field] = merged
			}
		}
	}
}

func (r *Record) put(field string, value any) {
	if _, ok := r.data[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.data[field] = value
}

// Validate checks presence, then types, then allowed values, and stores the
// coerced values. The first failing pass is reported.
//
// Returns:
//   - error: *MissingFieldError listing every missing field, *BadTypeError or
//     *BadValueError; all match ErrValidation
func (r *Record) Validate() error {
	if err := r.validateRequired(); err != nil {
		return err
	}
	if err := r.validateTypes(); err != nil {
		return err
	}
	if err := r.validateAllowed(); err != nil {
		return err
	}

	r.validated = true

	return nil
}

func (r *Record) validateRequired() error {
	var missing []string
	for _, field := range r.schema.required {
		if isNil(r.data[field]) {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldError{Schema: r.schema.name, Fields: missing}
	}

	return nil
}

func (r *Record) validateTypes() error {
	for _, field := range r.schema.typeOrder {
		value := r.data[field]
		if isNil(value) {
			continue
		}

		tag := r.schema.types[field]
		if tag.Builtin() {
			coerced, ok := coerce(tag, value)
			if !ok {
				return &BadTypeError{Field: field, Expected: tag, Actual: typeName(value), Value: value}
			}
			r.data[field] = coerced

			if tag.Sub() == "" {
				continue
			}
			if p, ok := r.schema.custom[tag]; ok {
				if err := runPredicate(p, tag, field, coerced); err != nil {
					return err
				}
			}

			continue
		}

		p, ok := r.schema.predicate(tag)
		if !ok {
			if r.schema.strict {
				return &BadTypeError{Field: field, Expected: tag, Actual: typeName(value), Value: value, Cause: ErrUnknownType}
			}

			continue
		}
		if err := runPredicate(p, tag, field, value); err != nil {
			return err
		}
	}

	return nil
}

func runPredicate(p Predicate, tag TypeTag, field string, value any) error {
	err := p(tag, field, value)
	if err == nil || errors.Is(err, ErrValidation) {
		return err
	}

	return &BadTypeError{Field: field, Expected: tag, Actual: typeName(value), Value: value, Cause: err}
}

func (r *Record) validateAllowed() error {
	for _, field := range r.schema.allowedOrder {
		value := r.data[field]
		if isNil(value) {
			continue
		}

		allowed := r.schema.allowed[field]
		if !slices.ContainsFunc(allowed, func(a any) bool { return looseEqual(value, a) }) {
			return &BadValueError{Field: field, Value: value, Allowed: deepCopy(allowed).([]any)}
		}
	}

	return nil
}

// Validated reports whether the record passed Validate since its last change.
func (r *Record) Validated() bool {
	return r.validated
}

// Schema returns the schema the record is checked against.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Fields returns the field names in order.
func (r *Record) Fields() []string {
	return slices.Clone(r.fields)
}

// Get returns a copy of the value of field, or nil if it is absent.
// Use Set to change a field.
func (r *Record) Get(field string) any {
	return deepCopy(r.data[field])
}

// GetOr returns a copy of the value of field, or def if it is absent or nil.
func (r *Record) GetOr(field string, def any) any {
	if v := r.data[field]; !isNil(v) {
		return deepCopy(v)
	}

	return def
}

// Has reports whether field is present with a non-nil value. Nil slices,
// maps and pointers count as nil.
func (r *Record) Has(field string) bool {
	return !isNil(r.data[field])
}

// Lookup returns the value of a known field, which may be nil.
//
// Returns:
//   - any: The value
//   - error: *LookupError if the record has no such field
func (r *Record) Lookup(field string) (any, error) {
	v, ok := r.data[field]
	if !ok {
		return nil, &LookupError{Schema: r.schema.name, Field: field}
	}

	return deepCopy(v), nil
}

// ToMap returns a deep copy of the field map.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, len(r.data))
	for k, v := range r.data {
		out[k] = deepCopy(v)
	}

	return out
}

// ToObject returns a nested view of the record in which every mapping is a
// map[string]any and every sequence is a []any. The view is a copy.
func (r *Record) ToObject() map[string]any {
	out := make(map[string]any, len(r.data))
	for k, v := range r.data {
		out[k] = normalize(v)
	}

	return out
}

// Decode copies the record into dst, a pointer to a struct or map, using
// "record" struct tags.
//
// Example:
//
//	var user struct {
//	    ID    int64  `record:"id"`
//	    Email string `record:"email"`
//	}
//	err := rec.Decode(&user)
//
// Returns:
//   - error: ErrNotValidated if the record changed since its last validation,
//     or a decoding error
func (r *Record) Decode(dst any) error {
	if !r.validated {
		return ErrNotValidated
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  dst,
		TagName: "record",
	})
	if err != nil {
		return err
	}

	return dec.Decode(r.ToMap())
}

// Set stores a copy of value in field and clears the validated flag.
func (r *Record) Set(field string, value any) {
	r.put(field, deepCopy(value))
	r.validated = false
}

// AddRequired adds required fields to this record's rules only.
// The shared schema is not modified. The validated flag is cleared.
func (r *Record) AddRequired(fields ...string) {
	r.schema = r.schema.With(Required(fields...))
	r.validated = false
}

// AddOptional adds optional fields to this record's rules only.
// The field data is not re-derived until SetData. The validated flag is cleared.
func (r *Record) AddOptional(fields ...string) {
	r.schema = r.schema.With(Optional(fields...))
	r.validated = false
}

// AddDefault adds a default to this record's rules only.
// The field data is not re-derived until SetData. The validated flag is cleared.
func (r *Record) AddDefault(field string, value any) {
	r.schema = r.schema.With(Default(field, value))
	r.validated = false
}

// AddCustomType registers a predicate for this record's rules only.
// The validated flag is cleared.
func (r *Record) AddCustomType(tag TypeTag, predicate Predicate) {
	r.schema = r.schema.With(CustomType(tag, predicate))
	r.validated = false
}

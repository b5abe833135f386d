// Package record validates field maps against declarative schemas.
//
// A Schema lists required fields, optional fields, defaults, type tags and
// allowed values. It is built once per record kind and shared:
//
//	var UserSchema = record.NewSchema("user",
//	    record.Required("id", "email"),
//	    record.Optional("nickname"),
//	    record.Default("tags", []string{"new"}),
//	    record.Type("id", record.TypeNumeric),
//	    record.Allowed("status", "active", "inactive"),
//	)
//
// New copies the input, applies optional and default rules and validates in
// three passes: presence, type, then allowed values.
//
//	rec, err := record.New(UserSchema, map[string]any{"id": "42", "email": "a@b.c"})
//	if err != nil {
//	    var missing *record.MissingFieldError
//	    if errors.As(err, &missing) {
//	        log.Printf("missing: %v", missing.Fields)
//	    }
//	}
//	id := rec.Get("id") // int64(42)
//
// # Type Tags
//
//   - numeric: any number or numeric string, stored as int64 (truncated)
//   - float: a float32 or float64, stored as float64
//   - string: a string
//   - boolean: any value, stored as its truthiness
//   - array: a non-empty slice or array
//   - assoc: a non-empty map whose keys are not exactly 0..n-1
//   - object: a struct or a non-nil pointer to a struct
//
// Other tags are checked by predicates registered with CustomType. A tag
// without a predicate is skipped unless the schema is Strict.
//
// # Errors
//
// All validation errors match ErrValidation with errors.Is. LookupError
// matches ErrLookup.
package record

package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFieldsAreAllListed(t *testing.T) {
	schema := NewSchema("user", Required("id", "email"))

	rec, err := New(schema, map[string]any{})
	require.Error(t, err)
	assert.Nil(t, rec)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"id", "email"}, missing.Fields)
	assert.Contains(t, err.Error(), "id")
	assert.Contains(t, err.Error(), "email")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNilRequiredFieldIsMissing(t *testing.T) {
	schema := NewSchema("user", Required("id"))

	_, err := New(schema, map[string]any{"id": nil})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"id"}, missing.Fields)
}

func TestNumericCoercion(t *testing.T) {
	schema := NewSchema("person", Type("age", TypeNumeric))

	tests := []struct {
		name  string
		input any
		want  int64
	}{
		{"numeric string", "42", 42},
		{"padded string", " 42 ", 42},
		{"float string", "42.9", 42},
		{"exponent string", "4.2e1", 42},
		{"int", 42, 42},
		{"uint8", uint8(42), 42},
		{"float truncates", 42.9, 42},
		{"negative", "-7", -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := New(schema, map[string]any{"age": tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Get("age"))
		})
	}
}

func TestNumericRejectsNonNumbers(t *testing.T) {
	schema := NewSchema("person", Type("age", TypeNumeric))

	for _, input := range []any{"abc", "", "0x1A", true, []int{1}, "NaN"} {
		_, err := New(schema, map[string]any{"age": input})

		var badType *BadTypeError
		require.ErrorAs(t, err, &badType, "input %#v", input)
		assert.Equal(t, "age", badType.Field)
		assert.Equal(t, TypeNumeric, badType.Expected)
	}
}

func TestBadTypeErrorDetails(t *testing.T) {
	schema := NewSchema("person", Type("name", TypeString))

	_, err := New(schema, map[string]any{"name": 12})

	var badType *BadTypeError
	require.ErrorAs(t, err, &badType)
	assert.Equal(t, "name", badType.Field)
	assert.Equal(t, TypeString, badType.Expected)
	assert.Equal(t, "int", badType.Actual)
	assert.Equal(t, 12, badType.Value)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFloatRequiresFloatingValue(t *testing.T) {
	schema := NewSchema("point", Type("x", TypeFloat))

	rec, err := New(schema, map[string]any{"x": float32(1.5)})
	require.NoError(t, err)
	assert.Equal(t, 1.5, rec.Get("x"))

	_, err = New(schema, map[string]any{"x": 1})
	require.ErrorIs(t, err, ErrValidation)

	_, err = New(schema, map[string]any{"x": "1.5"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestBooleanTruthiness(t *testing.T) {
	schema := NewSchema("flags", Type("on", TypeBoolean))

	tests := []struct {
		input any
		want  bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{0.0, false},
		{"yes", true},
		{"0", false},
		{"", false},
		{[]string{}, false},
		{[]string{"x"}, true},
		{map[string]any{}, false},
	}

	for _, tt := range tests {
		rec, err := New(schema, map[string]any{"on": tt.input})
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.Get("on"), "input %#v", tt.input)
	}
}

func TestArrayAssocObjectTags(t *testing.T) {
	type point struct{ X, Y int }

	schema := NewSchema("shapes",
		Type("list", TypeArray),
		Type("attrs", TypeAssoc),
		Type("origin", TypeObject),
	)

	_, err := New(schema, map[string]any{
		"list":   []int{1, 2},
		"attrs":  map[string]any{"color": "red"},
		"origin": &point{},
	})
	require.NoError(t, err)

	bad := []map[string]any{
		{"list": []int{}},
		{"list": "1,2"},
		{"attrs": map[string]any{}},
		{"attrs": map[int]string{0: "a", 1: "b"}},
		{"attrs": map[string]any{"0": "a", "1": "b"}},
		{"attrs": []string{"a"}},
		{"origin": "point"},
		{"origin": map[string]int{"X": 1}},
	}
	for _, input := range bad {
		_, err := New(schema, input)
		assert.ErrorIs(t, err, ErrValidation, "input %#v", input)
	}

	_, err = New(schema, map[string]any{"attrs": map[int]string{0: "a", 2: "b"}})
	require.NoError(t, err)
}

func TestAllowedValueRejection(t *testing.T) {
	schema := NewSchema("account", Allowed("status", "active", "inactive"))

	_, err := New(schema, map[string]any{"status": "pending"})

	var badValue *BadValueError
	require.ErrorAs(t, err, &badValue)
	assert.Equal(t, "status", badValue.Field)
	assert.Equal(t, "pending", badValue.Value)
	assert.Equal(t, []any{"active", "inactive"}, badValue.Allowed)
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "{active, inactive}")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAllowedValuesCompareNumbersLoosely(t *testing.T) {
	schema := NewSchema("level",
		Type("level", TypeNumeric),
		Allowed("level", 1, 2, 3),
	)

	rec, err := New(schema, map[string]any{"level": "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Get("level"))

	_, err = New(schema, map[string]any{"level": "4"})
	var badValue *BadValueError
	require.ErrorAs(t, err, &badValue)
}

func TestAllowedValuesCompareLargeIntegersExactly(t *testing.T) {
	schema := NewSchema("account",
		Type("id", TypeNumeric),
		Allowed("id", int64(9007199254740993), uint64(1<<63)),
	)

	_, err := New(schema, map[string]any{"id": int64(9007199254740992)})
	var badValue *BadValueError
	require.ErrorAs(t, err, &badValue)

	rec, err := New(schema, map[string]any{"id": int64(9007199254740993)})
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), rec.Get("id"))

	assert.True(t, looseEqual(uint64(1<<63), uint64(1<<63)))
	assert.False(t, looseEqual(int64(-1), uint64(1<<64-1)))
	assert.True(t, looseEqual(int64(7), uint32(7)))
	assert.True(t, looseEqual(2.0, 2))
	assert.False(t, looseEqual(2.5, 2))
}

func TestTypedNilCountsAsAbsent(t *testing.T) {
	type profile struct{ Bio string }

	schema := NewSchema("user", Required("tags", "profile", "meta"))

	_, err := New(schema, map[string]any{
		"tags":    []string(nil),
		"profile": (*profile)(nil),
		"meta":    map[string]any(nil),
	})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"tags", "profile", "meta"}, missing.Fields)

	rec := MustNew(NewSchema("user"), map[string]any{"tags": []string(nil)})
	assert.False(t, rec.Has("tags"))
	assert.Equal(t, "none", rec.GetOr("tags", "none"))

	defaulted := MustNew(NewSchema("user", Default("tags", []string{"new"})), map[string]any{"tags": []string(nil)})
	assert.Equal(t, []string{"new"}, defaulted.Get("tags"))
}

func TestGetDoesNotExposeStoredContainers(t *testing.T) {
	rec := MustNew(NewSchema("post", Required("tags")), map[string]any{
		"tags": []any{"go"},
		"meta": map[string]any{"lang": "en"},
	})

	rec.Get("tags").([]any)[0] = nil
	rec.GetOr("meta", nil).(map[string]any)["lang"] = "fr"
	looked, err := rec.Lookup("tags")
	require.NoError(t, err)
	looked.([]any)[0] = "changed"

	assert.True(t, rec.Validated())
	assert.Equal(t, []any{"go"}, rec.Get("tags"))
	assert.Equal(t, map[string]any{"lang": "en"}, rec.Get("meta"))

	rec.Set("tags", []any{"rust"})
	assert.False(t, rec.Validated())
	assert.Equal(t, []any{"rust"}, rec.Get("tags"))
}

func TestValidationPassOrder(t *testing.T) {
	schema := NewSchema("user",
		Required("id"),
		Type("age", TypeNumeric),
		Allowed("status", "active"),
	)

	_, err := New(schema, map[string]any{"age": "x", "status": "gone"})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)

	_, err = New(schema, map[string]any{"id": 1, "age": "x", "status": "gone"})
	var badType *BadTypeError
	require.ErrorAs(t, err, &badType)

	_, err = New(schema, map[string]any{"id": 1, "age": "3", "status": "gone"})
	var badValue *BadValueError
	require.ErrorAs(t, err, &badValue)
}

func TestNullValuesSkipTypeAndValueChecks(t *testing.T) {
	schema := NewSchema("user",
		Optional("age", "status"),
		Type("age", TypeNumeric),
		Allowed("status", "active"),
	)

	rec, err := New(schema, map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, rec.Get("age"))
	assert.Nil(t, rec.Get("status"))
}

func TestDefaultMergeForContainers(t *testing.T) {
	schema := NewSchema("post", Default("tags", []string{"a", "b"}))

	rec, err := New(schema, map[string]any{"tags": []string{"c"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, rec.Get("tags"))

	rec, err = New(schema, map[string]any{"tags": []any{"c"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, rec.Get("tags"))
}

func TestDefaultMergeForMappings(t *testing.T) {
	schema := NewSchema("settings", Default("opts", map[string]any{"lang": "en", "theme": "light"}))

	rec, err := New(schema, map[string]any{"opts": map[string]any{"theme": "dark", "tz": "UTC"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"lang": "en", "theme": "dark", "tz": "UTC"}, rec.Get("opts"))
}

func TestScalarDefaults(t *testing.T) {
	schema := NewSchema("user",
		Default("role", "member"),
		Default("tags", []string{"new"}),
	)

	rec, err := New(schema, map[string]any{"role": nil})
	require.NoError(t, err)
	assert.Equal(t, "member", rec.Get("role"))
	assert.Equal(t, []string{"new"}, rec.Get("tags"))

	rec, err = New(schema, map[string]any{"role": "admin", "tags": "x"})
	require.NoError(t, err)
	assert.Equal(t, "admin", rec.Get("role"))
	assert.Equal(t, "x", rec.Get("tags"), "non-container input is kept")
}

func TestDefaultsAreNotShared(t *testing.T) {
	schema := NewSchema("post", Default("tags", []string{"a"}))

	first := MustNew(schema, nil)
	first.Get("tags").([]string)[0] = "changed"

	second := MustNew(schema, nil)
	assert.Equal(t, []string{"a"}, second.Get("tags"))
}

func TestInputIsDeepCopied(t *testing.T) {
	nested := map[string]any{"k": []any{1, 2}}
	raw := map[string]any{"meta": nested}

	rec := MustNew(NewSchema("doc"), raw)
	nested["k"].([]any)[0] = 99
	nested["added"] = true

	assert.Equal(t, map[string]any{"k": []any{1, 2}}, rec.Get("meta"))

	out := rec.ToMap()
	out["meta"].(map[string]any)["k"] = "replaced"
	assert.Equal(t, map[string]any{"k": []any{1, 2}}, rec.Get("meta"))
}

func TestFieldOrder(t *testing.T) {
	schema := NewSchema("doc",
		Optional("c", "a"),
		Default("d", 1),
	)

	rec := MustNew(schema, map[string]any{"b": 1, "a": 2})
	assert.Equal(t, []string{"a", "b", "c", "d"}, rec.Fields())
}

func TestAccessors(t *testing.T) {
	schema := NewSchema("user", Optional("nickname"))
	rec := MustNew(schema, map[string]any{"name": "ada"})

	assert.Equal(t, "ada", rec.Get("name"))
	assert.Nil(t, rec.Get("unknown"))
	assert.Equal(t, "anon", rec.GetOr("nickname", "anon"))
	assert.Equal(t, "ada", rec.GetOr("name", "anon"))

	assert.True(t, rec.Has("name"))
	assert.False(t, rec.Has("nickname"), "nil values are not set")
	assert.False(t, rec.Has("unknown"))

	v, err := rec.Lookup("nickname")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = rec.Lookup("unknown")
	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "unknown", lookupErr.Field)
	assert.ErrorIs(t, err, ErrLookup)
	assert.False(t, errors.Is(err, ErrValidation))

	assert.Same(t, schema, rec.Schema())
}

func TestToObjectNormalizesContainers(t *testing.T) {
	rec := MustNew(NewSchema("doc"), map[string]any{
		"ids":  []int{1, 2},
		"meta": map[string]string{"a": "b"},
		"n":    3,
	})

	assert.Equal(t, map[string]any{
		"ids":  []any{1, 2},
		"meta": map[string]any{"a": "b"},
		"n":    3,
	}, rec.ToObject())
}

func TestDeferredValidation(t *testing.T) {
	schema := NewSchema("user", Required("id"))

	rec, err := New(schema, map[string]any{}, Deferred())
	require.NoError(t, err)
	assert.False(t, rec.Validated())

	require.Error(t, rec.Validate())
	assert.False(t, rec.Validated())

	rec.Set("id", 7)
	require.NoError(t, rec.Validate())
	assert.True(t, rec.Validated())
}

func TestSettersClearValidated(t *testing.T) {
	schema := NewSchema("user", Required("id"))
	rec := MustNew(schema, map[string]any{"id": 1})
	require.True(t, rec.Validated())

	rec.Set("name", "ada")
	assert.False(t, rec.Validated())
	require.NoError(t, rec.Validate())

	rec.AddRequired("email")
	assert.False(t, rec.Validated())
	var missing *MissingFieldError
	require.ErrorAs(t, rec.Validate(), &missing)
	assert.Equal(t, []string{"email"}, missing.Fields)

	assert.Equal(t, []string{"id"}, schema.RequiredFields(), "shared schema must not change")
	assert.Equal(t, []string{"id", "email"}, rec.Schema().RequiredFields())
}

func TestAddOptionalAndDefaultApplyOnSetData(t *testing.T) {
	schema := NewSchema("user")
	rec := MustNew(schema, map[string]any{"id": 1})

	rec.AddOptional("nickname")
	rec.AddDefault("role", "member")
	assert.False(t, rec.Validated())
	assert.False(t, rec.Has("role"))

	rec.SetData(map[string]any{"id": 2})
	require.NoError(t, rec.Validate())
	assert.Equal(t, "member", rec.Get("role"))
	_, err := rec.Lookup("nickname")
	assert.NoError(t, err)

	_, ok := schema.DefaultValue("role")
	assert.False(t, ok)
}

func TestAddCustomType(t *testing.T) {
	rec := MustNew(NewSchema("doc", Type("code", "upper")), map[string]any{"code": "abc"})

	rec.AddCustomType("upper", func(tag TypeTag, field string, value any) error {
		if s, _ := value.(string); s != "ABC" {
			return errors.New("not upper case")
		}

		return nil
	})
	assert.False(t, rec.Validated())

	err := rec.Validate()
	var badType *BadTypeError
	require.ErrorAs(t, err, &badType)
	assert.Equal(t, TypeTag("upper"), badType.Expected)
	assert.EqualError(t, badType.Cause, "not upper case")
}

func TestCustomPredicates(t *testing.T) {
	var gotTag TypeTag
	var gotField string
	even := func(tag TypeTag, field string, value any) error {
		gotTag, gotField = tag, field
		if n, ok := value.(int); ok && n%2 == 0 {
			return nil
		}

		return &BadValueError{Field: field, Value: value}
	}

	schema := NewSchema("doc",
		Type("n", "even:strict"),
		CustomType("even", even),
	)

	_, err := New(schema, map[string]any{"n": 4})
	require.NoError(t, err)
	assert.Equal(t, TypeTag("even:strict"), gotTag)
	assert.Equal(t, "n", gotField)

	_, err = New(schema, map[string]any{"n": 3})
	var badValue *BadValueError
	require.ErrorAs(t, err, &badValue, "validation errors from predicates pass through")
}

func TestUnknownTags(t *testing.T) {
	schema := NewSchema("doc", Type("x", "mystery"))

	_, err := New(schema, map[string]any{"x": 1})
	require.NoError(t, err)

	_, err = New(schema.With(Strict()), map[string]any{"x": 1})
	require.ErrorIs(t, err, ErrUnknownType)
	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, schema.IsStrict())
}

func TestDecode(t *testing.T) {
	schema := NewSchema("user",
		Required("id", "email"),
		Type("id", TypeNumeric),
		Default("tags", []string{"new"}),
	)

	rec := MustNew(schema, map[string]any{"id": "42", "email": "user@example.com"})

	var user struct {
		ID    int64    `record:"id"`
		Email string   `record:"email"`
		Tags  []string `record:"tags"`
	}
	require.NoError(t, rec.Decode(&user))
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, []string{"new"}, user.Tags)

	rec.Set("id", "43")
	require.ErrorIs(t, rec.Decode(&user), ErrNotValidated)
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(NewSchema("user", Required("id")), nil)
	})
}

func TestNilSchema(t *testing.T) {
	rec, err := New(nil, map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Get("a"))
}

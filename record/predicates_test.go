package record

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDPredicate(t *testing.T) {
	schema := NewSchema("session",
		Type("id", "uuid"),
		CustomType("uuid", UUIDPredicate),
	)

	for _, input := range []any{uuid.New(), uuid.NewString(), [16]byte{}} {
		_, err := New(schema, map[string]any{"id": input})
		require.NoError(t, err, "input %#v", input)
	}

	_, err := New(schema, map[string]any{"id": "not-a-uuid"})
	var badType *BadTypeError
	require.ErrorAs(t, err, &badType)
	assert.Equal(t, TypeTag("uuid"), badType.Expected)
	assert.Error(t, badType.Cause)

	_, err = New(schema, map[string]any{"id": 12})
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidatorPredicate(t *testing.T) {
	schema := NewSchema("contact",
		Type("email", "email"),
		Type("site", "url"),
		CustomType("email", ValidatorPredicate("email")),
		CustomType("url", ValidatorPredicate("url")),
	)

	_, err := New(schema, map[string]any{"email": "user@example.com", "site": "https://example.com"})
	require.NoError(t, err)

	_, err = New(schema, map[string]any{"email": "nope"})
	var badType *BadTypeError
	require.ErrorAs(t, err, &badType)
	assert.Equal(t, "email", badType.Field)
	assert.Contains(t, err.Error(), `"email" check`)
}

func TestElementsPredicate(t *testing.T) {
	schema := NewSchema("post",
		Type("scores", "array:numeric"),
		CustomType("array:numeric", ElementsPredicate(TypeNumeric)),
	)

	_, err := New(schema, map[string]any{"scores": []any{1, "2", 3.5}})
	require.NoError(t, err)

	_, err = New(schema, map[string]any{"scores": []any{1, "two"}})
	var badType *BadTypeError
	require.ErrorAs(t, err, &badType)
	assert.Equal(t, "scores[1]", badType.Field)
	assert.Equal(t, TypeNumeric, badType.Expected)

	_, err = New(schema, map[string]any{"scores": []any{}})
	require.ErrorAs(t, err, &badType)
	assert.Equal(t, "scores", badType.Field, "the built-in array check runs first")
}

func TestTypeTagParts(t *testing.T) {
	tag := TypeTag("array:int")
	assert.Equal(t, TypeArray, tag.Base())
	assert.Equal(t, "int", tag.Sub())
	assert.True(t, tag.Builtin())

	assert.Equal(t, TypeTag("uuid"), TypeTag("uuid").Base())
	assert.Empty(t, TypeTag("uuid").Sub())
	assert.False(t, TypeTag("uuid").Builtin())
}

func TestSchemaWithDoesNotModifyBase(t *testing.T) {
	base := NewSchema("user",
		Required("id"),
		Allowed("status", "active"),
	)
	derived := base.With(
		Required("email", "id"),
		Allowed("status", "active", "inactive"),
		Default("role", "member"),
	)

	assert.Equal(t, []string{"id"}, base.RequiredFields())
	assert.Equal(t, []any{"active"}, base.AllowedValues("status"))
	_, ok := base.DefaultValue("role")
	assert.False(t, ok)

	assert.Equal(t, "user", derived.Name())
	assert.Equal(t, []string{"id", "email"}, derived.RequiredFields())
	assert.Equal(t, []any{"active", "inactive"}, derived.AllowedValues("status"))
	role, ok := derived.DefaultValue("role")
	require.True(t, ok)
	assert.Equal(t, "member", role)

	tag, ok := derived.TypeOf("id")
	assert.False(t, ok)
	assert.Empty(t, tag)
}

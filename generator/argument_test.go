package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustArgument(t *testing.T, d *Definition, pos int, name string, opts ...ArgumentOption) {
	t.Helper()
	require.NoError(t, d.Argument(pos, name, opts...))
}

func TestArgument_Accessors(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey")

	inst, err := New(def, "/tmp", nil)
	require.NoError(t, err)

	require.NoError(t, inst.Set("monkey", "a test"))
	assert.Equal(t, "a test", inst.Get("monkey"))
}

func TestArgument_InitialValues(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey")
	mustArgument(t, def, 1, "llama")
	mustArgument(t, def, 2, "herd")

	inst, err := New(def, "/tmp", nil, "a monkey", "a llama", "a herd")
	require.NoError(t, err)

	assert.Equal(t, "a monkey", inst.Get("monkey"))
	assert.Equal(t, "a llama", inst.Get("llama"))
	assert.Equal(t, "a herd", inst.Get("herd"))

	bound := inst.Arguments()
	require.Len(t, bound, 3)
	for i, b := range bound {
		assert.Equal(t, i, b.Position)
	}
}

func TestArgument_DeclarationOrderDoesNotMatter(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 2, "herd")
	mustArgument(t, def, 0, "monkey")
	mustArgument(t, def, 1, "llama")

	inst, err := New(def, "/tmp", nil, "m", "l", "h")
	require.NoError(t, err)

	assert.Equal(t, "m", inst.Get("monkey"))
	assert.Equal(t, "h", inst.Get("herd"))
	assert.Equal(t, []string{"monkey", "llama", "herd"}, argumentNames(def))
}

func TestArgument_Default(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", WithDefault("a revision"))

	inst, err := New(def, "/tmp", nil)
	require.NoError(t, err)
	assert.Equal(t, "a revision", inst.Get("monkey"))

	inst, err = New(def, "/tmp", nil, "given")
	require.NoError(t, err)
	assert.Equal(t, "given", inst.Get("monkey"))
}

func TestArgument_Sugar(t *testing.T) {
	def := NewDefinition("zoo")
	require.NoError(t, def.FirstArgument("monkey"))
	require.NoError(t, def.SecondArgument("llama"))
	require.NoError(t, def.ThirdArgument("herd"))
	require.NoError(t, def.FourthArgument("elephant"))

	inst, err := New(def, "/tmp", nil, "a monkey", "a llama", "a herd", "an elephant")
	require.NoError(t, err)

	assert.Equal(t, "a monkey", inst.Get("monkey"))
	assert.Equal(t, "a llama", inst.Get("llama"))
	assert.Equal(t, "a herd", inst.Get("herd"))
	assert.Equal(t, "an elephant", inst.Get("elephant"))
}

func TestArgument_TooMany(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey")
	mustArgument(t, def, 1, "llama")

	_, err := New(def, "/tmp", nil, "a monkey", "a llama", "a herd")

	var tooMany *TooManyArgumentsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 2, tooMany.Max)
	assert.Equal(t, 3, tooMany.Given)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestArgument_TooManyUsesHighestPosition(t *testing.T) {
	def := NewDefinition("sparse")
	mustArgument(t, def, 3, "last")

	inst, err := New(def, "/tmp", nil, "a", "b", "c", "d")
	require.NoError(t, err)
	assert.Equal(t, "d", inst.Get("last"))

	_, err = New(def, "/tmp", nil, "a", "b", "c", "d", "e")
	assert.ErrorAs(t, err, new(*TooManyArgumentsError))
}

func TestArgument_NoDeclarationsRejectsAnyValue(t *testing.T) {
	_, err := New(NewDefinition("empty"), "/tmp", nil, "x")
	assert.ErrorAs(t, err, new(*TooManyArgumentsError))
}

func TestArgument_RequiredFulfilled(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", Required())
	mustArgument(t, def, 1, "elephant", Required())
	mustArgument(t, def, 2, "llama")

	inst, err := New(def, "/tmp", nil, "enough", "arguments")
	require.NoError(t, err)

	assert.Equal(t, "enough", inst.Get("monkey"))
	assert.Equal(t, "arguments", inst.Get("elephant"))
	assert.Nil(t, inst.Get("llama"))
}

func TestArgument_RequiredMissing(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", Required())
	mustArgument(t, def, 1, "elephant", Required())
	mustArgument(t, def, 2, "llama")

	_, err := New(def, "/tmp", nil, "too few arguments")

	var tooFew *TooFewArgumentsError
	require.ErrorAs(t, err, &tooFew)
	assert.Equal(t, "elephant", tooFew.Argument)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestArgument_RequiredSatisfiedByDefault(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", Required(), WithDefault("fallback"))

	inst, err := New(def, "/tmp", nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", inst.Get("monkey"))
}

func TestArgument_AssignNilToRequired(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", Required())

	inst, err := New(def, "/tmp", nil, "test")
	require.NoError(t, err)

	err = inst.Set("monkey", nil)
	assert.ErrorAs(t, err, new(*TooFewArgumentsError))
	assert.Equal(t, "test", inst.Get("monkey"), "failed assignment must not change the value")
}

func TestArgument_ValidatorAccepts(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", WithValidator(func(v any) Outcome { return Accept(v) }))
	mustArgument(t, def, 1, "elephant", WithValidator(Transform(func(v any) any { return v })))
	mustArgument(t, def, 2, "llama")

	inst, err := New(def, "/tmp", nil, "blah", "urgh")
	require.NoError(t, err)
	assert.Equal(t, "blah", inst.Get("monkey"))
	assert.Equal(t, "urgh", inst.Get("elephant"))

	require.NoError(t, inst.Set("monkey", "harr"))
	assert.Equal(t, "harr", inst.Get("monkey"))
}

func TestArgument_ValidatorTransforms(t *testing.T) {
	upper := Transform(func(v any) any { return strings.ToUpper(v.(string)) })

	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", WithValidator(upper))

	inst, err := New(def, "/tmp", nil, "blah")
	require.NoError(t, err)
	assert.Equal(t, "BLAH", inst.Get("monkey"))

	require.NoError(t, inst.Set("monkey", "harr"))
	assert.Equal(t, "HARR", inst.Get("monkey"))
}

func TestArgument_ValidatorRejects(t *testing.T) {
	const msg = "this is not a valid monkey, bad monkey!"

	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", WithValidator(func(any) Outcome { return Reject(msg) }))

	_, err := New(def, "/tmp", nil, "blah")
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, msg, err.Error())
	assert.Equal(t, "monkey", argErr.Argument)

	inst, err := New(def, "/tmp", nil)
	require.NoError(t, err, "validators never see nil")

	err = inst.Set("monkey", "anything")
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, msg, argErr.Message)
	assert.True(t, errors.Is(err, ErrArgument))
}

func TestArgument_ValidatorRunsOnDefault(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey",
		WithDefault("bad"),
		WithValidator(func(v any) Outcome {
			if v == "bad" {
				return Reject("default rejected")
			}
			return Accept(v)
		}))

	_, err := New(def, "/tmp", nil)
	assert.EqualError(t, err, "default rejected")

	_, err = New(def, "/tmp", nil, "good")
	assert.NoError(t, err)
}

func TestArgument_ValidatorReturningNilForRequired(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", Required(), WithValidator(Transform(func(any) any { return nil })))

	_, err := New(def, "/tmp", nil, "x")
	assert.ErrorAs(t, err, new(*TooFewArgumentsError))
}

func TestArgument_RejectionWinsOverMissingRequired(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", Required())
	mustArgument(t, def, 1, "elephant", WithValidator(func(any) Outcome { return Reject("no elephants") }))

	_, err := New(def, "/tmp", nil, nil, "dumbo")

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "elephant", argErr.Argument)
	assert.EqualError(t, err, "no elephants")

	_, err = New(def, "/tmp", nil)
	assert.ErrorAs(t, err, new(*TooFewArgumentsError), "required still fails once every position is valid")
}

func TestChain(t *testing.T) {
	trim := Transform(func(v any) any { return strings.TrimSpace(v.(string)) })
	nonEmpty := func(v any) Outcome {
		if v == "" {
			return Reject("must not be blank")
		}
		return Accept(v)
	}
	v := Chain(trim, nil, nonEmpty)

	assert.Equal(t, "x", v("  x ").Value())
	out := v("   ")
	assert.True(t, out.Rejected())
	assert.Equal(t, "must not be blank", out.Message())
}

func TestSet_UnknownArgument(t *testing.T) {
	inst, err := New(NewDefinition("zoo"), "/tmp", nil)
	require.NoError(t, err)
	assert.Error(t, inst.Set("ghost", "boo"))
}

func TestArgument_DeclarationErrors(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey")

	assert.Error(t, def.Argument(0, "other"), "duplicate position")
	assert.Error(t, def.Argument(1, "monkey"), "duplicate name")
	assert.Error(t, def.Argument(-1, "negative"))
	assert.Error(t, def.Argument(2, "not-an-identifier"))
	assert.Len(t, def.Arguments(), 1)
}

func TestBinding_IsDeterministic(t *testing.T) {
	def := NewDefinition("zoo")
	mustArgument(t, def, 0, "monkey", WithDefault("d"))
	mustArgument(t, def, 1, "llama")

	a, err := New(def, "/tmp", nil, "x")
	require.NoError(t, err)
	b, err := New(def, "/tmp", nil, "x")
	require.NoError(t, err)

	assert.Equal(t, a.Arguments(), b.Arguments())
	assert.Equal(t, a.Bindings(), b.Bindings())
}

func argumentNames(d *Definition) []string {
	var names []string
	for _, a := range d.Arguments() {
		names = append(names, a.Name)
	}
	return names
}

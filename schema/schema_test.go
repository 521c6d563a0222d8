package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/valobj/schema"
)

func TestToggles(t *testing.T) {
	t.Run("canonical vocabulary", func(t *testing.T) {
		var names []schema.Toggle
		for _, ti := range schema.Toggles() {
			names = append(names, ti.Toggle)
			assert.NotEmpty(t, ti.Description)
		}
		assert.Equal(t, []schema.Toggle{
			schema.ExcludeEquals,
			schema.ExcludeGetHashCode,
			schema.IncludeOperatorEquals,
			schema.ExcludeToString,
			schema.ExcludeWith,
			schema.ExcludeConstructor,
			schema.AllowCustomConstructors,
			schema.ExcludeBuilder,
			schema.ExcludeToBuilder,
		}, names)
	})

	t.Run("all toggles default off", func(t *testing.T) {
		for _, ti := range schema.Toggles() {
			assert.False(t, ti.Default, ti.Toggle)
			assert.False(t, schema.Default(ti.Toggle), ti.Toggle)
		}
	})

	t.Run("Toggles returns a copy", func(t *testing.T) {
		ts := schema.Toggles()
		ts[0].Default = true
		assert.False(t, schema.Default(schema.ExcludeEquals))
	})
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		in      string
		want    schema.Toggle
		wantErr bool
	}{
		{"ExcludeEquals", schema.ExcludeEquals, false},
		{"exclude-with", schema.ExcludeWith, false},
		{"exclude_to_builder", schema.ExcludeToBuilder, false},
		{" INCLUDEOPERATOREQUALS ", schema.IncludeOperatorEquals, false},
		{"ExcludeEverything", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schema.ParseToggle(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestOptions(t *testing.T) {
	t.Run("zero value is empty", func(t *testing.T) {
		var o schema.Options
		assert.Equal(t, 0, o.Len())
		assert.False(t, o.Has(schema.ExcludeEquals))
		assert.Equal(t, "None", o.String())
		assert.Empty(t, o.Slice())
	})

	t.Run("With does not mutate the receiver", func(t *testing.T) {
		a := schema.NewOptions(schema.ExcludeWith)
		b := a.With(schema.ExcludeBuilder)
		assert.False(t, a.Has(schema.ExcludeBuilder))
		assert.True(t, b.Has(schema.ExcludeBuilder))
		assert.True(t, b.Has(schema.ExcludeWith))
	})

	t.Run("Without does not mutate the receiver", func(t *testing.T) {
		a := schema.NewOptions(schema.ExcludeWith, schema.ExcludeBuilder)
		b := a.Without(schema.ExcludeWith)
		assert.True(t, a.Has(schema.ExcludeWith))
		assert.False(t, b.Has(schema.ExcludeWith))
	})

	t.Run("Slice is in canonical order regardless of insertion", func(t *testing.T) {
		o := schema.NewOptions(schema.ExcludeToBuilder, schema.ExcludeEquals, schema.ExcludeWith)
		assert.Equal(t, []schema.Toggle{schema.ExcludeEquals, schema.ExcludeWith, schema.ExcludeToBuilder}, o.Slice())
		assert.Equal(t, "ExcludeEquals|ExcludeWith|ExcludeToBuilder", o.String())
	})

	t.Run("Equal ignores order", func(t *testing.T) {
		a := schema.NewOptions(schema.ExcludeWith, schema.ExcludeEquals)
		b := schema.NewOptions(schema.ExcludeEquals, schema.ExcludeWith)
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(b.With(schema.ExcludeBuilder)))
	})

	t.Run("text round trip", func(t *testing.T) {
		o := schema.NewOptions(schema.IncludeOperatorEquals, schema.ExcludeWith)
		buf, err := json.Marshal(o)
		require.NoError(t, err)
		assert.Equal(t, `"IncludeOperatorEquals|ExcludeWith"`, string(buf))

		var got schema.Options
		require.NoError(t, json.Unmarshal(buf, &got))
		assert.True(t, o.Equal(got))
	})
}

func TestParseOptions(t *testing.T) {
	o, err := schema.ParseOptions("exclude-with, ExcludeBuilder|None")
	require.NoError(t, err)
	assert.Equal(t, []schema.Toggle{schema.ExcludeWith, schema.ExcludeBuilder}, o.Slice())

	o, err = schema.ParseOptions("")
	require.NoError(t, err)
	assert.Equal(t, 0, o.Len())

	_, err = schema.ParseOptions("ExcludeWith|Bogus")
	require.Error(t, err)
}

func TestAccessLevelUnmarshalText(t *testing.T) {
	var c struct {
		Ctor    schema.AccessLevel `json:"ctor"`
		Builder schema.AccessLevel `json:"builder"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ctor": "protected-internal", "builder": "friend"}`), &c))
	assert.Equal(t, schema.ProtectedInternal, c.Ctor)
	assert.Equal(t, schema.AccessLevel("friend"), c.Builder)
	assert.False(t, c.Builder.Valid())
}

func TestAccessLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    schema.AccessLevel
		wantErr bool
	}{
		{"Public", schema.Public, false},
		{"protected", schema.Protected, false},
		{"internal", schema.Internal, false},
		{"PRIVATE", schema.Private, false},
		{"protected_internal", schema.ProtectedInternal, false},
		{"protected-internal", schema.ProtectedInternal, false},
		{"friend", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schema.ParseAccessLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Len(t, schema.AccessLevels(), 5)
}

func TestDefaults(t *testing.T) {
	d := schema.Defaults()
	assert.Equal(t, schema.Public, d.ConstructorAccess)
	assert.Equal(t, schema.Public, d.BuilderAccess)
	assert.Equal(t, 0, d.Options.Len())

	// Mutating the returned copy never leaks into the table.
	d.Options = d.Options.With(schema.ExcludeWith)
	d.BuilderAccess = schema.Private
	again := schema.Defaults()
	assert.Equal(t, 0, again.Options.Len())
	assert.Equal(t, schema.Public, again.BuilderAccess)
}

func TestNullCheckString(t *testing.T) {
	assert.Equal(t, "None", schema.NoNullCheck.String())
	assert.Equal(t, "Pre", schema.PreNullCheck.String())
	assert.Equal(t, "Post", schema.PostNullCheck.String())
}

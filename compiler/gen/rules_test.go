package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/valobj/schema"
)

func TestNormalizeImplications(t *testing.T) {
	t.Run("ExcludeBuilder implies ExcludeToBuilder", func(t *testing.T) {
		opts, diags, err := Normalize("Point", schema.NewOptions(schema.ExcludeBuilder))
		require.NoError(t, err)
		assert.Empty(t, diags)
		assert.True(t, opts.Has(schema.ExcludeBuilder))
		assert.True(t, opts.Has(schema.ExcludeToBuilder))
	})

	t.Run("ExcludeToBuilder does not imply ExcludeBuilder", func(t *testing.T) {
		opts, _, err := Normalize("Point", schema.NewOptions(schema.ExcludeToBuilder))
		require.NoError(t, err)
		assert.False(t, opts.Has(schema.ExcludeBuilder))
		assert.True(t, opts.Has(schema.ExcludeToBuilder))
	})

	t.Run("input set is not modified", func(t *testing.T) {
		in := schema.NewOptions(schema.ExcludeBuilder)
		_, _, err := Normalize("Point", in)
		require.NoError(t, err)
		assert.False(t, in.Has(schema.ExcludeToBuilder))
	})

	t.Run("fixed point is idempotent", func(t *testing.T) {
		once, _, err := Normalize("Point", schema.NewOptions(schema.ExcludeBuilder, schema.ExcludeWith))
		require.NoError(t, err)
		twice, _, err := Normalize("Point", once)
		require.NoError(t, err)
		assert.True(t, once.Equal(twice))
	})
}

func TestNormalizeDeadOption(t *testing.T) {
	// AllowCustomConstructors with ExcludeConstructor could be read as a hard
	// error. It is a reported no-op instead, and never fails generation.
	opts, diags, err := Normalize("Point", schema.NewOptions(schema.AllowCustomConstructors, schema.ExcludeConstructor))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, RuleDeadOption, diags[0].Rule)
	assert.Equal(t, string(schema.AllowCustomConstructors), diags[0].Option)
	assert.NotEmpty(t, diags[0].Message)
	assert.True(t, opts.Has(schema.AllowCustomConstructors))

	_, diags, err = Normalize("Point", schema.NewOptions(schema.AllowCustomConstructors))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestNormalizeExclusions(t *testing.T) {
	t.Run("operators require equals", func(t *testing.T) {
		_, _, err := Normalize("Point", schema.NewOptions(schema.IncludeOperatorEquals, schema.ExcludeEquals))
		require.Error(t, err)
		assert.True(t, IsRuleViolation(err, RuleOperatorsRequireEquals))

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Point", cfgErr.Class)
		assert.Equal(t, string(schema.IncludeOperatorEquals), cfgErr.Offending)
	})

	t.Run("operators with equals", func(t *testing.T) {
		_, _, err := Normalize("Point", schema.NewOptions(schema.IncludeOperatorEquals))
		require.NoError(t, err)
	})

	t.Run("operators without hash code is allowed", func(t *testing.T) {
		_, _, err := Normalize("Point", schema.NewOptions(schema.IncludeOperatorEquals, schema.ExcludeGetHashCode))
		require.NoError(t, err)
	})
}

func TestNormalizeEveryToggleAlone(t *testing.T) {
	for _, ti := range schema.Toggles() {
		t.Run(string(ti.Toggle), func(t *testing.T) {
			opts, diags, err := Normalize("Point", schema.NewOptions(ti.Toggle))
			require.NoError(t, err)
			assert.Empty(t, diags)
			assert.True(t, opts.Has(ti.Toggle))
		})
	}
}

package gen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/valobj/compiler/load"
	"github.com/syssam/valobj/schema"
)

func ptr[T any](v T) *T { return &v }

func TestResolveProperty(t *testing.T) {
	tests := []struct {
		name      string
		in        *load.Property
		nullCheck schema.NullCheck
		notNull   bool
	}{
		{
			name:      "no modifiers",
			in:        &load.Property{Name: "x", Type: "int"},
			nullCheck: schema.NoNullCheck,
		},
		{
			name:      "pre check",
			in:        &load.Property{Name: "x", Type: "string", PreNullCheck: true},
			nullCheck: schema.PreNullCheck,
		},
		{
			name:      "post check",
			in:        &load.Property{Name: "x", Type: "string", PostNullCheck: true},
			nullCheck: schema.PostNullCheck,
		},
		{
			name:      "not null implies pre",
			in:        &load.Property{Name: "x", Type: "string", NotNull: true},
			nullCheck: schema.PreNullCheck,
			notNull:   true,
		},
		{
			name:      "explicit post wins over the not null implication",
			in:        &load.Property{Name: "x", Type: "string", NotNull: true, PostNullCheck: true},
			nullCheck: schema.PostNullCheck,
			notNull:   true,
		},
		{
			name:      "not null with explicit pre",
			in:        &load.Property{Name: "x", Type: "string", NotNull: true, PreNullCheck: true},
			nullCheck: schema.PreNullCheck,
			notNull:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolveProperty("Point", 3, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.in.Name, p.Name)
			assert.Equal(t, tt.in.Type, p.Type)
			assert.Equal(t, 3, p.Position)
			assert.Equal(t, tt.nullCheck, p.NullCheck)
			assert.Equal(t, tt.notNull, p.NotNull)
			assert.Equal(t, tt.nullCheck != schema.NoNullCheck, p.HasNullCheck())
			assert.False(t, p.Computed)
		})
	}
}

func TestResolvePropertyConflict(t *testing.T) {
	t.Run("both placements", func(t *testing.T) {
		p, err := ResolveProperty("Point", 0, &load.Property{Name: "x", Type: "string", PreNullCheck: true, PostNullCheck: true})
		require.Error(t, err)
		assert.Nil(t, p)
		assert.True(t, IsRuleViolation(err, RuleConflictingNullCheckPlacement))

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Point", cfgErr.Class)
		assert.Equal(t, "x", cfgErr.Offending)
	})

	t.Run("computed property is not exempt", func(t *testing.T) {
		_, err := ResolveProperty("Point", 0, &load.Property{Name: "x", Type: "string", Computed: true, PreNullCheck: true, PostNullCheck: true})
		assert.True(t, IsRuleViolation(err, RuleConflictingNullCheckPlacement))
	})
}

func TestResolvePropertyComputed(t *testing.T) {
	p, err := ResolveProperty("Node", 0, &load.Property{
		Name:                "id",
		Type:                "int",
		Computed:            true,
		NotNull:             true,
		PreNullCheck:        true,
		PreConstructorParam: ptr("[Key]"),
	})
	require.NoError(t, err)
	assert.True(t, p.Computed)
	assert.False(t, p.NotNull)
	assert.Equal(t, schema.NoNullCheck, p.NullCheck)
	assert.Nil(t, p.PreParam)
	assert.Equal(t, "int", p.Type)
}

func TestResolvePropertyPreParam(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		p, err := ResolveProperty("Point", 0, &load.Property{Name: "x", Type: "int"})
		require.NoError(t, err)
		assert.Nil(t, p.PreParam)
	})

	t.Run("present but empty", func(t *testing.T) {
		p, err := ResolveProperty("Point", 0, &load.Property{Name: "x", Type: "int", PreConstructorParam: ptr("")})
		require.NoError(t, err)
		require.NotNil(t, p.PreParam)
		assert.Equal(t, "", *p.PreParam)
	})

	t.Run("text is copied verbatim", func(t *testing.T) {
		in := &load.Property{Name: "x", Type: "int", PreConstructorParam: ptr(`[Range(0, 10)] /* "raw" */`)}
		p, err := ResolveProperty("Point", 0, in)
		require.NoError(t, err)
		require.NotNil(t, p.PreParam)
		assert.Equal(t, `[Range(0, 10)] /* "raw" */`, *p.PreParam)

		// The resolved record does not alias the input.
		*in.PreConstructorParam = "changed"
		assert.Equal(t, `[Range(0, 10)] /* "raw" */`, *p.PreParam)
	})
}

func TestResolvePropertyMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   *load.Property
		want string
	}{
		{"nil", nil, "nil property"},
		{"missing type", &load.Property{Name: "x"}, "missing type"},
		{"missing name", &load.Property{Type: "int"}, "missing name"},
		{"computed missing type", &load.Property{Name: "x", Computed: true}, "missing type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolveProperty("Point", 1, tt.in)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, IsMalformedInput(err))
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "class Point")
		})
	}
}

func TestResolveProperties(t *testing.T) {
	lps := []*load.Property{
		{Name: "a", Type: "int"},
		{Name: "b", Type: "string", NotNull: true},
		{Name: "c", Type: "int", Computed: true},
		{Name: "d", Type: "[]byte", PostNullCheck: true},
	}
	for _, workers := range []int{1, 4} {
		cfg := MustNewConfig(WithWorkers(workers))
		props, err := ResolveProperties(context.Background(), cfg, "Point", lps)
		require.NoError(t, err)
		require.Len(t, props, 4)
		for i, p := range props {
			assert.Equal(t, lps[i].Name, p.Name)
			assert.Equal(t, i, p.Position)
		}
		assert.Equal(t, schema.PreNullCheck, props[1].NullCheck)
		assert.True(t, props[2].Computed)
		assert.Equal(t, schema.PostNullCheck, props[3].NullCheck)
	}
}

func TestResolvePropertiesFirstErrorInOrder(t *testing.T) {
	lps := []*load.Property{
		{Name: "a", Type: "int"},
		{Name: "b", Type: "int", PreNullCheck: true, PostNullCheck: true},
		{Name: "c"},
	}
	for _, workers := range []int{1, 8} {
		cfg := MustNewConfig(WithWorkers(workers))
		props, err := ResolveProperties(context.Background(), cfg, "Point", lps)
		require.Error(t, err)
		assert.Nil(t, props)
		assert.True(t, IsRuleViolation(err, RuleConflictingNullCheckPlacement), "workers=%d", workers)
	}
}

func TestResolvePropertiesEmpty(t *testing.T) {
	props, err := ResolveProperties(context.Background(), MustNewConfig(), "Empty", nil)
	require.NoError(t, err)
	assert.NotNil(t, props)
	assert.Empty(t, props)
}

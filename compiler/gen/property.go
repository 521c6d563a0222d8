package gen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/valobj/compiler/load"
	"github.com/syssam/valobj/schema"
)

// Property is a resolved property of a value class.
type Property struct {
	// Name of the property.
	Name string `json:"name" yaml:"name" msgpack:"name"`
	// Type is the opaque type token, passed through untouched.
	Type string `json:"type" yaml:"type" msgpack:"type"`
	// PkgPath is the import path the type token refers to, if any.
	PkgPath string `json:"pkg_path,omitempty" yaml:"pkg_path,omitempty" msgpack:"pkg_path,omitempty"`
	// Position is the declaration index of the property in its class,
	// counting computed properties.
	Position int `json:"position" yaml:"position" msgpack:"position"`
	// Computed properties take part in no generated member.
	Computed bool `json:"computed,omitempty" yaml:"computed,omitempty" msgpack:"computed,omitempty"`
	// NotNull requests a not-null annotation on the constructor parameter.
	NotNull bool `json:"not_null,omitempty" yaml:"not_null,omitempty" msgpack:"not_null,omitempty"`
	// NullCheck is the placement of the not-null check.
	NullCheck schema.NullCheck `json:"null_check,omitempty" yaml:"null_check,omitempty" msgpack:"null_check,omitempty"`
	// PreParam is inserted verbatim before the constructor parameter.
	// nil is absent, a pointer to "" is a present-but-empty injection point.
	PreParam *string `json:"pre_param,omitempty" yaml:"pre_param,omitempty" msgpack:"pre_param,omitempty"`
	// Comment of the property.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
}

// HasNullCheck reports whether a not-null check is generated for p.
func (p *Property) HasNullCheck() bool {
	return p.NullCheck != schema.NoNullCheck
}

// clone returns a copy of p that shares no memory with it.
func (p *Property) clone() *Property {
	c := *p
	if p.PreParam != nil {
		text := *p.PreParam
		c.PreParam = &text
	}
	return &c
}

// ResolveProperty normalizes the modifiers of one declared property.
// It has no dependency on the other properties of the class.
func ResolveProperty(class string, pos int, lp *load.Property) (*Property, error) {
	if err := validateProperty(class, pos, lp); err != nil {
		return nil, err
	}
	// A property asking for both placements is an authoring mistake, even if
	// it is computed and the checks would never be emitted.
	if lp.PreNullCheck && lp.PostNullCheck {
		return nil, NewConfigurationError(class, RuleConflictingNullCheckPlacement, lp.Name,
			"a property cannot have both a Pre and a Post null check")
	}
	p := &Property{
		Name:     lp.Name,
		Type:     lp.Type,
		PkgPath:  lp.PkgPath,
		Position: pos,
		Comment:  lp.Comment,
	}
	if lp.Computed {
		// Checks and parameter text are cleared, not carried: nothing
		// downstream may observe them for a computed property.
		p.Computed = true
		return p, nil
	}
	p.NotNull = lp.NotNull
	switch {
	case lp.PreNullCheck:
		p.NullCheck = schema.PreNullCheck
	case lp.PostNullCheck:
		p.NullCheck = schema.PostNullCheck
	case lp.NotNull:
		p.NullCheck = schema.PreNullCheck
	}
	if lp.PreConstructorParam != nil {
		text := *lp.PreConstructorParam
		p.PreParam = &text
	}
	return p, nil
}

// ResolveProperties resolves the properties of a class, keeping declaration
// order. Properties are resolved concurrently when more than one worker is
// configured. When several properties fail, the error of the first one in
// declaration order is returned.
func ResolveProperties(ctx context.Context, cfg *Config, class string, lps []*load.Property) ([]*Property, error) {
	props := make([]*Property, len(lps))
	if cfg.workers() == 1 || len(lps) < 2 {
		for i, lp := range lps {
			p, err := ResolveProperty(class, i, lp)
			if err != nil {
				return nil, err
			}
			props[i] = p
		}
		return props, nil
	}
	errs := make([]error, len(lps))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers())
	for i, lp := range lps {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			props[i], errs[i] = ResolveProperty(class, i, lp)
			return nil
		})
	}
	_ = eg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return props, nil
}

// Package load decodes value class declarations into plain-data records.
//
// The records carry no behavior; they are what the discovery step hands to
// the generation engine. A record may be built from the property builders,
// decoded from a YAML or JSON file, or assembled by hand.
package load

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/syssam/valobj/schema"
	"github.com/syssam/valobj/schema/property"
)

// Class represents a value class declaration.
type Class struct {
	Name              string              `json:"name" yaml:"name" validate:"required"`
	Access            schema.AccessLevel  `json:"access,omitempty" yaml:"access,omitempty"`
	Options           Toggles             `json:"options,omitempty" yaml:"options,omitempty"`
	ConstructorAccess *schema.AccessLevel `json:"constructor_access,omitempty" yaml:"constructor_access,omitempty"`
	BuilderAccess     *schema.AccessLevel `json:"builder_access,omitempty" yaml:"builder_access,omitempty"`
	PreConstructor    *string             `json:"pre_constructor,omitempty" yaml:"pre_constructor,omitempty"`
	Properties        []*Property         `json:"properties,omitempty" yaml:"properties,omitempty"`
	Comment           string              `json:"comment,omitempty" yaml:"comment,omitempty"`
	// Source is the file the class was decoded from, if any.
	Source string `json:"-" yaml:"-"`
}

// Property represents a declared property of a value class.
type Property struct {
	Name                string  `json:"name" yaml:"name" validate:"required"`
	Type                string  `json:"type" yaml:"type" validate:"required"`
	PkgPath             string  `json:"pkg_path,omitempty" yaml:"pkg_path,omitempty"`
	Computed            bool    `json:"computed,omitempty" yaml:"computed,omitempty"`
	NotNull             bool    `json:"not_null,omitempty" yaml:"not_null,omitempty"`
	PreNullCheck        bool    `json:"pre_null_check,omitempty" yaml:"pre_null_check,omitempty"`
	PostNullCheck       bool    `json:"post_null_check,omitempty" yaml:"post_null_check,omitempty"`
	PreConstructorParam *string `json:"pre_constructor_param,omitempty" yaml:"pre_constructor_param,omitempty"`
	Comment             string  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Toggles is the raw toggle configuration of a class. A nil field means
// "not configured" and falls back to the default.
type Toggles struct {
	ExcludeEquals           *bool `json:"exclude_equals,omitempty" yaml:"exclude_equals,omitempty"`
	ExcludeGetHashCode      *bool `json:"exclude_get_hash_code,omitempty" yaml:"exclude_get_hash_code,omitempty"`
	IncludeOperatorEquals   *bool `json:"include_operator_equals,omitempty" yaml:"include_operator_equals,omitempty"`
	ExcludeToString         *bool `json:"exclude_to_string,omitempty" yaml:"exclude_to_string,omitempty"`
	ExcludeWith             *bool `json:"exclude_with,omitempty" yaml:"exclude_with,omitempty"`
	ExcludeConstructor      *bool `json:"exclude_constructor,omitempty" yaml:"exclude_constructor,omitempty"`
	AllowCustomConstructors *bool `json:"allow_custom_constructors,omitempty" yaml:"allow_custom_constructors,omitempty"`
	ExcludeBuilder          *bool `json:"exclude_builder,omitempty" yaml:"exclude_builder,omitempty"`
	ExcludeToBuilder        *bool `json:"exclude_to_builder,omitempty" yaml:"exclude_to_builder,omitempty"`
}

// slot returns the field holding the given toggle.
func (t *Toggles) slot(tg schema.Toggle) **bool {
	switch tg {
	case schema.ExcludeEquals:
		return &t.ExcludeEquals
	case schema.ExcludeGetHashCode:
		return &t.ExcludeGetHashCode
	case schema.IncludeOperatorEquals:
		return &t.IncludeOperatorEquals
	case schema.ExcludeToString:
		return &t.ExcludeToString
	case schema.ExcludeWith:
		return &t.ExcludeWith
	case schema.ExcludeConstructor:
		return &t.ExcludeConstructor
	case schema.AllowCustomConstructors:
		return &t.AllowCustomConstructors
	case schema.ExcludeBuilder:
		return &t.ExcludeBuilder
	case schema.ExcludeToBuilder:
		return &t.ExcludeToBuilder
	default:
		return nil
	}
}

// Set configures a toggle explicitly.
func (t *Toggles) Set(tg schema.Toggle, on bool) *Toggles {
	if p := t.slot(tg); p != nil {
		*p = &on
	}
	return t
}

// Enable configures the given toggles as on.
func (t *Toggles) Enable(ts ...schema.Toggle) *Toggles {
	for _, tg := range ts {
		t.Set(tg, true)
	}
	return t
}

// TogglesOf returns a fully configured Toggles value mirroring opts.
func TogglesOf(opts schema.Options) Toggles {
	var t Toggles
	for _, ti := range schema.Toggles() {
		t.Set(ti.Toggle, opts.Has(ti.Toggle))
	}
	return t
}

// Options returns the set of toggles configured as on.
func (t Toggles) Options() schema.Options {
	var o schema.Options
	for _, ti := range schema.Toggles() {
		if p := t.slot(ti.Toggle); *p != nil && **p {
			o = o.With(ti.Toggle)
		}
	}
	return o
}

// settings is the mergeable part of a class declaration.
type settings struct {
	Toggles
	ConstructorAccess *schema.AccessLevel
	BuilderAccess     *schema.AccessLevel
}

// Merge overlays the explicit configuration of c on top of d and returns the
// result. Every configured field replaces its default as a whole; fields that
// are not configured keep the default.
func (c *Class) Merge(d schema.ClassDefaults) (schema.ClassDefaults, error) {
	ca, ba := d.ConstructorAccess, d.BuilderAccess
	dst := settings{
		Toggles:           TogglesOf(d.Options),
		ConstructorAccess: &ca,
		BuilderAccess:     &ba,
	}
	src := settings{
		Toggles:           c.Options,
		ConstructorAccess: c.ConstructorAccess,
		BuilderAccess:     c.BuilderAccess,
	}
	if err := mergo.Merge(&dst, src, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return schema.ClassDefaults{}, fmt.Errorf("class %q: merge options: %w", c.Name, err)
	}
	return schema.ClassDefaults{
		Options:           dst.Options(),
		ConstructorAccess: *dst.ConstructorAccess,
		BuilderAccess:     *dst.BuilderAccess,
	}, nil
}

// NewProperty creates a loaded property from a property descriptor.
// It returns an error if the descriptor contains an error.
func NewProperty(pd *property.Descriptor) (*Property, error) {
	if pd.Err != nil {
		return nil, fmt.Errorf("property %q: %w", pd.Name, pd.Err)
	}
	return &Property{
		Name:                pd.Name,
		Type:                pd.Type,
		PkgPath:             pd.PkgPath,
		Computed:            pd.Computed,
		NotNull:             pd.NotNull,
		PreNullCheck:        pd.PreNullCheck,
		PostNullCheck:       pd.PostNullCheck,
		PreConstructorParam: pd.PreConstructorParam,
		Comment:             pd.Comment,
	}, nil
}

// Descriptor is implemented by the property builders.
type Descriptor interface {
	Descriptor() *property.Descriptor
}

// NewClass creates a loaded class with the given name and properties, in
// declaration order.
func NewClass(name string, props ...Descriptor) (*Class, error) {
	c := &Class{Name: name}
	for _, p := range props {
		lp, err := NewProperty(p.Descriptor())
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", name, err)
		}
		c.Properties = append(c.Properties, lp)
	}
	return c, nil
}

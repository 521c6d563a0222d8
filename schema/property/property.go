package property

import (
	"errors"
	"reflect"
)

// Descriptor is the raw, unresolved declaration of a property.
type Descriptor struct {
	// Name of the property.
	Name string
	// Type is the opaque type token.
	Type string
	// PkgPath is the import path the type token refers to, if any.
	PkgPath string
	// Computed excludes the property from every generated member.
	Computed bool
	// NotNull requests a not-null annotation on the constructor parameter.
	NotNull bool
	// PreNullCheck requests a not-null check at the start of the constructor.
	PreNullCheck bool
	// PostNullCheck requests a not-null check at the end of the constructor.
	PostNullCheck bool
	// PreConstructorParam is inserted verbatim before the constructor
	// parameter. nil means absent, a pointer to "" is a present-but-empty
	// injection point.
	PreConstructorParam *string
	// Comment of the property.
	Comment string
	// Err holds the first error recorded by the builder.
	Err error
}

// Builder is a fluent property builder.
type Builder struct {
	desc *Descriptor
}

// Of returns a builder for a property with the given name and type token.
func Of(name, typ string) *Builder {
	b := &Builder{desc: &Descriptor{Name: name, Type: typ}}
	if name == "" {
		b.desc.Err = errors.New("property: missing name")
	}
	return b
}

// GoType returns a builder for a property whose type token is derived from
// the Go type of v. For example, GoType("at", time.Time{}) yields the token
// "time.Time" with package path "time".
func GoType(name string, v any) *Builder {
	b := Of(name, "")
	if v == nil {
		b.desc.Err = errors.Join(b.desc.Err, errors.New("property: nil GoType value"))
		return b
	}
	t := reflect.TypeOf(v)
	b.desc.Type = t.String()
	b.desc.PkgPath = pkgPath(t)
	return b
}

// pkgPath returns the import path of the named type at the core of t.
func pkgPath(t reflect.Type) string {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Map:
			if p := t.Elem().PkgPath(); p != "" {
				return p
			}
			t = t.Key()
		default:
			return t.PkgPath()
		}
	}
}

// Computed marks the property as computed.
func (b *Builder) Computed() *Builder {
	b.desc.Computed = true
	return b
}

// NotNull adds a not-null annotation to the constructor parameter. Unless a
// placement is set explicitly, it also implies a Pre null check.
func (b *Builder) NotNull() *Builder {
	b.desc.NotNull = true
	return b
}

// PreNullCheck adds a not-null check at the start of the constructor.
func (b *Builder) PreNullCheck() *Builder {
	b.desc.PreNullCheck = true
	return b
}

// PostNullCheck adds a not-null check at the end of the constructor.
func (b *Builder) PostNullCheck() *Builder {
	b.desc.PostNullCheck = true
	return b
}

// PreConstructorParam sets the text inserted before the constructor parameter.
func (b *Builder) PreConstructorParam(text string) *Builder {
	b.desc.PreConstructorParam = &text
	return b
}

// Comment sets the comment of the property.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the property descriptor interface.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

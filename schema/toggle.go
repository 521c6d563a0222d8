package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Toggle is a single class-level generation option.
type Toggle string

const (
	// ExcludeEquals disables the Equals member.
	ExcludeEquals Toggle = "ExcludeEquals"
	// ExcludeGetHashCode disables the HashCode member.
	ExcludeGetHashCode Toggle = "ExcludeGetHashCode"
	// IncludeOperatorEquals enables the == and != operators.
	IncludeOperatorEquals Toggle = "IncludeOperatorEquals"
	// ExcludeToString disables the ToString member.
	ExcludeToString Toggle = "ExcludeToString"
	// ExcludeWith disables the With mutators.
	ExcludeWith Toggle = "ExcludeWith"
	// ExcludeConstructor disables the generated constructor.
	ExcludeConstructor Toggle = "ExcludeConstructor"
	// AllowCustomConstructors lets a user-authored constructor coexist with
	// the generated one.
	AllowCustomConstructors Toggle = "AllowCustomConstructors"
	// ExcludeBuilder disables the builder type. It implies ExcludeToBuilder.
	ExcludeBuilder Toggle = "ExcludeBuilder"
	// ExcludeToBuilder disables the instance to builder conversion.
	ExcludeToBuilder Toggle = "ExcludeToBuilder"
)

// ToggleInfo describes a toggle of the option vocabulary.
type ToggleInfo struct {
	// Toggle is the toggle being described.
	Toggle Toggle
	// Default reports whether the toggle is on when not configured.
	Default bool
	// Description of the toggle.
	Description string
}

// toggles is the canonical toggle table. Its order is the canonical order
// used by Options.Slice and by every encoding of an option set.
var toggles = []ToggleInfo{
	{Toggle: ExcludeEquals, Description: "Do not generate Equals or the equatable contract"},
	{Toggle: ExcludeGetHashCode, Description: "Do not generate a hash code implementation"},
	{Toggle: IncludeOperatorEquals, Description: "Generate the == and != operators"},
	{Toggle: ExcludeToString, Description: "Do not generate a string representation"},
	{Toggle: ExcludeWith, Description: "Do not generate With copy-mutators"},
	{Toggle: ExcludeConstructor, Description: "Do not generate a constructor"},
	{Toggle: AllowCustomConstructors, Description: "Tolerate user-authored constructors next to the generated one"},
	{Toggle: ExcludeBuilder, Description: "Do not generate a builder type (implies ExcludeToBuilder)"},
	{Toggle: ExcludeToBuilder, Description: "Do not generate the instance to builder conversion"},
}

// Toggles returns the toggle vocabulary in canonical order.
func Toggles() []ToggleInfo {
	return slices.Clone(toggles)
}

// index returns the canonical position of t, or -1 if t is unknown.
func (t Toggle) index() int {
	return slices.IndexFunc(toggles, func(ti ToggleInfo) bool { return ti.Toggle == t })
}

// Valid reports whether t belongs to the vocabulary.
func (t Toggle) Valid() bool {
	return t.index() >= 0
}

// String implements fmt.Stringer.
func (t Toggle) String() string {
	return string(t)
}

// ParseToggle parses a toggle name. Matching is case-insensitive and ignores
// '-' and '_' separators, so "exclude-with" and "ExcludeWith" are the same.
func ParseToggle(s string) (Toggle, error) {
	key := normalizeName(s)
	for _, ti := range toggles {
		if normalizeName(string(ti.Toggle)) == key {
			return ti.Toggle, nil
		}
	}
	return "", fmt.Errorf("schema: unknown toggle %q", s)
}

func normalizeName(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ToLower(strings.TrimSpace(s))
}

// Options is a set of toggles. The zero value is an empty set and ready to
// use. Options values are copied on write, so a value handed to another
// component is never changed behind its back.
type Options struct {
	set map[Toggle]struct{}
}

// NewOptions returns a set holding the given toggles.
func NewOptions(ts ...Toggle) Options {
	var o Options
	for _, t := range ts {
		o = o.With(t)
	}
	return o
}

// Has reports whether t is on.
func (o Options) Has(t Toggle) bool {
	_, ok := o.set[t]
	return ok
}

// With returns a copy of o with t turned on.
func (o Options) With(t Toggle) Options {
	if o.Has(t) {
		return o
	}
	c := o.clone()
	c.set[t] = struct{}{}
	return c
}

// Without returns a copy of o with t turned off.
func (o Options) Without(t Toggle) Options {
	if !o.Has(t) {
		return o
	}
	c := o.clone()
	delete(c.set, t)
	return c
}

// Len returns the number of toggles that are on.
func (o Options) Len() int {
	return len(o.set)
}

// Slice returns the toggles that are on, in canonical order.
func (o Options) Slice() []Toggle {
	ts := make([]Toggle, 0, len(o.set))
	for _, ti := range toggles {
		if o.Has(ti.Toggle) {
			ts = append(ts, ti.Toggle)
		}
	}
	return ts
}

// Equal reports whether o and other hold the same toggles.
func (o Options) Equal(other Options) bool {
	if o.Len() != other.Len() {
		return false
	}
	for t := range o.set {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// String returns the toggles in canonical order, joined with '|'.
func (o Options) String() string {
	if o.Len() == 0 {
		return "None"
	}
	names := make([]string, 0, o.Len())
	for _, t := range o.Slice() {
		names = append(names, string(t))
	}
	return strings.Join(names, "|")
}

func (o Options) clone() Options {
	c := Options{set: make(map[Toggle]struct{}, len(o.set)+1)}
	for t := range o.set {
		c.set[t] = struct{}{}
	}
	return c
}

// MarshalText encodes the set in canonical order.
func (o Options) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes a '|' or ',' separated list of toggle names.
func (o *Options) UnmarshalText(text []byte) error {
	parsed, err := ParseOptions(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOptions parses a '|' or ',' separated list of toggle names.
// "None" and the empty string yield an empty set.
func ParseOptions(s string) (Options, error) {
	var o Options
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	for _, f := range fields {
		if strings.EqualFold(strings.TrimSpace(f), "none") {
			continue
		}
		t, err := ParseToggle(f)
		if err != nil {
			return Options{}, err
		}
		o = o.With(t)
	}
	return o, nil
}

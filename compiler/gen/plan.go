package gen

import (
	"strings"

	"github.com/syssam/valobj/schema"
)

// MemberKind identifies a generated member.
type MemberKind string

// Member kinds, in canonical order.
const (
	KindConstructor    MemberKind = "Constructor"
	KindEquals         MemberKind = "Equals"
	KindOperatorEquals MemberKind = "OperatorEquals"
	KindHashCode       MemberKind = "HashCode"
	KindToString       MemberKind = "ToString"
	KindWith           MemberKind = "With"
	KindBuilder        MemberKind = "Builder"
	KindToBuilder      MemberKind = "ToBuilder"
)

// MemberKinds returns all member kinds in canonical order.
func MemberKinds() []MemberKind {
	kinds := make([]MemberKind, len(planners))
	for i, p := range planners {
		kinds[i] = p.kind
	}
	return kinds
}

// MemberPlan is the fully resolved description of one generated member.
// Fields are always in declaration order and never contain computed
// properties; renderers must not re-sort them.
type MemberPlan struct {
	Kind MemberKind `json:"kind" yaml:"kind" msgpack:"kind"`
	// Access is set for members that carry an access modifier.
	Access schema.AccessLevel `json:"access,omitempty" yaml:"access,omitempty" msgpack:"access,omitempty"`
	// Fields taking part in the member: constructor parameters, equality
	// and hash fields, string form fields, mutators or builder slots.
	Fields []*Property `json:"fields" yaml:"fields" msgpack:"fields"`
	// PreConstructor is inserted verbatim before the constructor statements.
	PreConstructor *string `json:"pre_constructor,omitempty" yaml:"pre_constructor,omitempty" msgpack:"pre_constructor,omitempty"`
	// Checks lists the null checks of the constructor and of Build.
	Checks *NullChecks `json:"checks,omitempty" yaml:"checks,omitempty" msgpack:"checks,omitempty"`
	// AllowCustom tells the renderer to tolerate a user-authored
	// constructor next to the generated one.
	AllowCustom bool `json:"allow_custom,omitempty" yaml:"allow_custom,omitempty" msgpack:"allow_custom,omitempty"`
	// Operators reports whether == and != are emitted next to Equals.
	Operators bool `json:"operators,omitempty" yaml:"operators,omitempty" msgpack:"operators,omitempty"`
	// Format is the string form template, for example "Point(x=<x>, y=<y>)".
	Format string `json:"format,omitempty" yaml:"format,omitempty" msgpack:"format,omitempty"`
	// Mutators holds one With operation per field.
	Mutators []*Mutator `json:"mutators,omitempty" yaml:"mutators,omitempty" msgpack:"mutators,omitempty"`
	// ToBuilder reports whether the builder offers an instance conversion.
	ToBuilder bool `json:"to_builder,omitempty" yaml:"to_builder,omitempty" msgpack:"to_builder,omitempty"`
}

// FieldNames returns the names of the plan fields, in order.
func (m *MemberPlan) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

// NullChecks holds the not-null checks of a constructor, grouped by
// placement. Each group keeps declaration order.
type NullChecks struct {
	// Pre checks run before any other constructor statement.
	Pre []string `json:"pre" yaml:"pre" msgpack:"pre"`
	// Post checks run right before the constructor returns.
	Post []string `json:"post" yaml:"post" msgpack:"post"`
}

// Empty reports whether no check is generated.
func (n *NullChecks) Empty() bool {
	return n == nil || len(n.Pre)+len(n.Post) == 0
}

// Mutator is a With operation: a copy of the receiver with one field replaced.
type Mutator struct {
	// Field is the replaced property.
	Field string `json:"field" yaml:"field" msgpack:"field"`
	// Index is the position of the field in the plan field sequence, used
	// for parameter defaulting.
	Index int `json:"index" yaml:"index" msgpack:"index"`
}

// planInput is everything a planner may look at.
type planInput struct {
	class          string
	opts           schema.Options
	fields         []*Property
	preConstructor *string
	ctorAccess     schema.AccessLevel
	builderAccess  schema.AccessLevel
}

// planner builds the plan of one member kind.
type planner struct {
	kind  MemberKind
	emit  func(schema.Options) bool
	build func(*planInput) *MemberPlan
}

// planners are run in canonical order.
var planners = []planner{
	{
		kind:  KindConstructor,
		emit:  not(schema.ExcludeConstructor),
		build: constructorPlan,
	},
	{
		kind:  KindEquals,
		emit:  not(schema.ExcludeEquals),
		build: equalsPlan,
	},
	{
		kind: KindOperatorEquals,
		emit: func(o schema.Options) bool {
			return o.Has(schema.IncludeOperatorEquals) && !o.Has(schema.ExcludeEquals)
		},
		build: fieldsPlan(KindOperatorEquals),
	},
	{
		kind:  KindHashCode,
		emit:  not(schema.ExcludeGetHashCode),
		build: fieldsPlan(KindHashCode),
	},
	{
		kind:  KindToString,
		emit:  not(schema.ExcludeToString),
		build: toStringPlan,
	},
	{
		kind:  KindWith,
		emit:  not(schema.ExcludeWith),
		build: withPlan,
	},
	{
		kind:  KindBuilder,
		emit:  not(schema.ExcludeBuilder),
		build: builderPlan,
	},
	{
		kind: KindToBuilder,
		emit: func(o schema.Options) bool {
			return !o.Has(schema.ExcludeBuilder) && !o.Has(schema.ExcludeToBuilder)
		},
		build: fieldsPlan(KindToBuilder),
	},
}

// fieldSeq returns a deep copy of the field sequence. Each plan owns its
// fields, so changing one plan never changes another or the contract
// properties.
func (in *planInput) fieldSeq() []*Property {
	fields := make([]*Property, len(in.fields))
	for i, f := range in.fields {
		fields[i] = f.clone()
	}
	return fields
}

// preConstructorText returns a copy of the class pre-constructor text.
func (in *planInput) preConstructorText() *string {
	if in.preConstructor == nil {
		return nil
	}
	text := *in.preConstructor
	return &text
}

func not(t schema.Toggle) func(schema.Options) bool {
	return func(o schema.Options) bool { return !o.Has(t) }
}

// buildPlans runs every planner whose member is not excluded.
func buildPlans(in *planInput) Members {
	plans := make(Members, len(planners))
	for _, p := range planners {
		if p.emit(in.opts) {
			plans[p.kind] = p.build(in)
		}
	}
	return plans
}

// planFields returns the non-computed properties in declaration order.
// The slice is never nil, so an empty class still encodes its fields.
func planFields(props []*Property) []*Property {
	fields := make([]*Property, 0, len(props))
	for _, p := range props {
		if !p.Computed {
			fields = append(fields, p)
		}
	}
	return fields
}

func fieldsPlan(kind MemberKind) func(*planInput) *MemberPlan {
	return func(in *planInput) *MemberPlan {
		return &MemberPlan{Kind: kind, Fields: in.fieldSeq()}
	}
}

// nullChecks groups the null checks of the fields by placement.
func nullChecks(fields []*Property) *NullChecks {
	checks := &NullChecks{Pre: []string{}, Post: []string{}}
	for _, f := range fields {
		switch f.NullCheck {
		case schema.PreNullCheck:
			checks.Pre = append(checks.Pre, f.Name)
		case schema.PostNullCheck:
			checks.Post = append(checks.Post, f.Name)
		}
	}
	return checks
}

func constructorPlan(in *planInput) *MemberPlan {
	return &MemberPlan{
		Kind:           KindConstructor,
		Access:         in.ctorAccess,
		Fields:         in.fieldSeq(),
		PreConstructor: in.preConstructorText(),
		Checks:         nullChecks(in.fields),
		AllowCustom:    in.opts.Has(schema.AllowCustomConstructors),
	}
}

func equalsPlan(in *planInput) *MemberPlan {
	return &MemberPlan{
		Kind:      KindEquals,
		Fields:    in.fieldSeq(),
		Operators: in.opts.Has(schema.IncludeOperatorEquals),
	}
}

func toStringPlan(in *planInput) *MemberPlan {
	return &MemberPlan{
		Kind:   KindToString,
		Fields: in.fieldSeq(),
		Format: stringFormat(in.class, in.fields),
	}
}

// stringFormat returns "Name(a=<a>, b=<b>)".
func stringFormat(class string, fields []*Property) string {
	var b strings.Builder
	b.WriteString(class)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString("=<")
		b.WriteString(f.Name)
		b.WriteByte('>')
	}
	b.WriteByte(')')
	return b.String()
}

func withPlan(in *planInput) *MemberPlan {
	mutators := make([]*Mutator, len(in.fields))
	for i, f := range in.fields {
		mutators[i] = &Mutator{Field: f.Name, Index: i}
	}
	return &MemberPlan{
		Kind:     KindWith,
		Fields:   in.fieldSeq(),
		Mutators: mutators,
	}
}

// builderPlan carries the constructor checks and pre-constructor text so
// Build runs them even when the constructor itself is excluded.
func builderPlan(in *planInput) *MemberPlan {
	return &MemberPlan{
		Kind:           KindBuilder,
		Access:         in.builderAccess,
		Fields:         in.fieldSeq(),
		PreConstructor: in.preConstructorText(),
		Checks:         nullChecks(in.fields),
		ToBuilder:      !in.opts.Has(schema.ExcludeToBuilder),
	}
}

package gen

import (
	"github.com/syssam/valobj/schema"
)

// Diagnostic is a non-fatal finding about the options of a class.
type Diagnostic struct {
	Rule    Rule   `json:"rule" yaml:"rule" msgpack:"rule"`
	Option  string `json:"option" yaml:"option" msgpack:"option"`
	Message string `json:"message" yaml:"message" msgpack:"message"`
}

// implication forces a toggle on whenever another toggle is on.
type implication struct {
	when, then schema.Toggle
}

// implications are applied until no implication changes the option set.
// They only ever turn toggles on, so the pass always terminates.
var implications = []implication{
	{when: schema.ExcludeBuilder, then: schema.ExcludeToBuilder},
}

// exclusion rejects a class that has both toggles on.
type exclusion struct {
	a, b    schema.Toggle
	rule    Rule
	message string
}

var exclusions = []exclusion{
	{
		a:       schema.IncludeOperatorEquals,
		b:       schema.ExcludeEquals,
		rule:    RuleOperatorsRequireEquals,
		message: "equality operators delegate to Equals, which is excluded",
	},
}

// deadOption reports an option that has no effect when another is on.
type deadOption struct {
	dead, because schema.Toggle
	message       string
}

var deadOptions = []deadOption{
	{
		dead:    schema.AllowCustomConstructors,
		because: schema.ExcludeConstructor,
		message: "no constructor is generated, so custom constructors cannot conflict with it",
	},
}

// Normalize applies the cross-option rules of a class in a fixed order:
// implications to a fixed point, dead option detection, then exclusions.
// It returns the normalized option set and the non-fatal diagnostics, or a
// ConfigurationError for the first violated exclusion.
func Normalize(class string, opts schema.Options) (schema.Options, []Diagnostic, error) {
	for changed := true; changed; {
		changed = false
		for _, im := range implications {
			if opts.Has(im.when) && !opts.Has(im.then) {
				opts = opts.With(im.then)
				changed = true
			}
		}
	}
	var diags []Diagnostic
	for _, d := range deadOptions {
		if opts.Has(d.dead) && opts.Has(d.because) {
			diags = append(diags, Diagnostic{
				Rule:    RuleDeadOption,
				Option:  string(d.dead),
				Message: d.message,
			})
		}
	}
	for _, ex := range exclusions {
		if opts.Has(ex.a) && opts.Has(ex.b) {
			return schema.Options{}, nil, NewConfigurationError(class, ex.rule, string(ex.a), ex.message)
		}
	}
	return opts, diags, nil
}

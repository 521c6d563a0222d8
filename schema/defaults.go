package schema

// ClassDefaults holds the values a class starts from before its own
// configuration is applied.
type ClassDefaults struct {
	// Options that are on by default.
	Options Options
	// ConstructorAccess is the default constructor access level.
	ConstructorAccess AccessLevel
	// BuilderAccess is the default builder access level.
	BuilderAccess AccessLevel
}

// defaults is the read-only default table. It is built from the toggle
// vocabulary once and never written afterwards.
var defaults = func() ClassDefaults {
	d := ClassDefaults{
		ConstructorAccess: Public,
		BuilderAccess:     Public,
	}
	for _, ti := range toggles {
		if ti.Default {
			d.Options = d.Options.With(ti.Toggle)
		}
	}
	return d
}()

// Defaults returns a copy of the default table.
func Defaults() ClassDefaults {
	return ClassDefaults{
		Options:           defaults.Options.clone(),
		ConstructorAccess: defaults.ConstructorAccess,
		BuilderAccess:     defaults.BuilderAccess,
	}
}

// Default reports the default state of a toggle.
func Default(t Toggle) bool {
	return defaults.Options.Has(t)
}

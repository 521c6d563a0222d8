package schema

import "fmt"

// AccessLevel is the access modifier of a generated member.
type AccessLevel string

// Access levels, from the most permissive to the most restrictive.
const (
	Public            AccessLevel = "Public"
	Protected         AccessLevel = "Protected"
	Internal          AccessLevel = "Internal"
	Private           AccessLevel = "Private"
	ProtectedInternal AccessLevel = "ProtectedInternal"
)

var accessLevels = []AccessLevel{Public, Protected, Internal, Private, ProtectedInternal}

// AccessLevels returns all access levels in declaration order.
func AccessLevels() []AccessLevel {
	return append([]AccessLevel(nil), accessLevels...)
}

// Valid reports whether a is a known access level.
func (a AccessLevel) Valid() bool {
	for _, l := range accessLevels {
		if l == a {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (a AccessLevel) String() string {
	return string(a)
}

// ParseAccessLevel parses an access level name. Matching is case-insensitive
// and ignores '-' and '_', so "protected_internal" parses as ProtectedInternal.
func ParseAccessLevel(s string) (AccessLevel, error) {
	key := normalizeName(s)
	for _, l := range accessLevels {
		if normalizeName(string(l)) == key {
			return l, nil
		}
	}
	return "", fmt.Errorf("schema: unknown access level %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler. Known names are
// normalized; unknown names are kept verbatim and fail Valid, so the class
// declaring them is rejected on its own instead of its whole file.
func (a *AccessLevel) UnmarshalText(text []byte) error {
	l, err := ParseAccessLevel(string(text))
	if err != nil {
		*a = AccessLevel(text)
		return nil
	}
	*a = l
	return nil
}

// NullCheck is the placement of a not-null precondition relative to the
// other constructor statements.
type NullCheck string

const (
	// NoNullCheck means no check is generated.
	NoNullCheck NullCheck = ""
	// PreNullCheck places the check at the start of the constructor.
	PreNullCheck NullCheck = "Pre"
	// PostNullCheck places the check at the end of the constructor.
	PostNullCheck NullCheck = "Post"
)

// String implements fmt.Stringer.
func (n NullCheck) String() string {
	if n == NoNullCheck {
		return "None"
	}
	return string(n)
}

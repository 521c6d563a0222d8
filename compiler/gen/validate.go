package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/syssam/valobj/compiler/load"
)

// validate is safe for concurrent use and caches struct metadata, so a
// single instance serves every class.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateClass checks the identity fields of a class declaration and the
// uniqueness of its property names. Property fields are checked by
// validateProperty.
func validateClass(c *load.Class) error {
	if c == nil {
		return NewMalformedInputError("", "", "nil class", nil)
	}
	if err := validate.StructPartial(c, "Name"); err != nil {
		return NewMalformedInputError("", "", describe(err), err)
	}
	if c.Access != "" && !c.Access.Valid() {
		return NewMalformedInputError(c.Name, "", fmt.Sprintf("unknown access level %q", c.Access), nil)
	}
	if c.ConstructorAccess != nil && !c.ConstructorAccess.Valid() {
		return NewMalformedInputError(c.Name, "", fmt.Sprintf("unknown constructor access level %q", *c.ConstructorAccess), nil)
	}
	if c.BuilderAccess != nil && !c.BuilderAccess.Valid() {
		return NewMalformedInputError(c.Name, "", fmt.Sprintf("unknown builder access level %q", *c.BuilderAccess), nil)
	}
	seen := make(map[string]int, len(c.Properties))
	for i, p := range c.Properties {
		if p == nil || p.Name == "" {
			continue
		}
		if j, ok := seen[p.Name]; ok {
			return NewMalformedInputError(c.Name, p.Name, fmt.Sprintf("duplicate property (positions %d and %d)", j, i), nil)
		}
		seen[p.Name] = i
	}
	return nil
}

// validateProperty checks that a property declaration carries a name and a
// type token.
func validateProperty(class string, pos int, p *load.Property) error {
	if p == nil {
		return NewMalformedInputError(class, fmt.Sprintf("#%d", pos), "nil property", nil)
	}
	if err := validate.Struct(p); err != nil {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("#%d", pos)
		}
		return NewMalformedInputError(class, name, describe(err), err)
	}
	return nil
}

// describe turns validator errors into a short message.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, "missing "+strings.ToLower(fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(msgs, ", ")
}

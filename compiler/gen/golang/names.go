package golang

import (
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/valobj/compiler/gen"
	"github.com/syssam/valobj/schema"
)

const (
	runtimePkg = "github.com/syssam/valobj"
	// Receiver and local names start with an underscore, so they never
	// collide with parameters derived from property names.
	recv    = "_v"
	other   = "_o"
	builder = "_b"
)

// methods are the member names a property accessor must not take.
var methods = map[string]bool{
	"Equal":     true,
	"NotEqual":  true,
	"Hash":      true,
	"String":    true,
	"ToBuilder": true,
}

// exported reports whether an access level maps to an exported Go name.
func exported(a schema.AccessLevel) bool {
	switch a {
	case schema.Internal, schema.Private:
		return false
	default:
		return true
	}
}

// names holds the Go identifiers of a rendered class.
type names struct {
	class string
	typ   string
	// pascal is the exported form of the class name, used in derived names.
	pascal  string
	fields  map[string]string
	getters map[string]string
}

func newNames(c *gen.Contract) *names {
	n := &names{
		class:   c.Class,
		pascal:  inflect.Camelize(c.Class),
		fields:  make(map[string]string, len(c.Properties)),
		getters: make(map[string]string, len(c.Properties)),
	}
	n.typ = n.pascal
	if !exported(c.Access) {
		n.typ = inflect.CamelizeDownFirst(c.Class)
	}
	for _, p := range c.Properties {
		id := inflect.CamelizeDownFirst(p.Name)
		if token.IsKeyword(id) || id == n.typ || id == "valobj" {
			id += "_"
		}
		n.fields[p.Name] = id
		getter := inflect.Camelize(p.Name)
		if methods[getter] {
			getter = "Get" + getter
		}
		n.getters[p.Name] = getter
	}
	return n
}

// field returns the struct field and parameter name of a property.
func (n *names) field(p *gen.Property) string {
	return n.fields[p.Name]
}

// getter returns the accessor name of a property.
func (n *names) getter(p *gen.Property) string {
	return n.getters[p.Name]
}

// pascalOf returns the exported form of a property name, used in With and
// Set method names.
func (n *names) pascalOf(p *gen.Property) string {
	return inflect.Camelize(p.Name)
}

// constructor returns the constructor name for the given access level.
func (n *names) constructor(a schema.AccessLevel) string {
	if exported(a) {
		return "New" + n.pascal
	}
	return "new" + n.pascal
}

// builder returns the builder type name for the given access level.
func (n *names) builder(a schema.AccessLevel) string {
	if exported(a) {
		return n.pascal + "Builder"
	}
	return inflect.CamelizeDownFirst(n.class) + "Builder"
}

// newBuilder returns the builder constructor name.
func (n *names) newBuilder(a schema.AccessLevel) string {
	if exported(a) {
		return "New" + n.pascal + "Builder"
	}
	return "new" + n.pascal + "Builder"
}

// typeCode returns the code of a property type token. A token naming a type
// of another package is qualified with its import path when the property
// carries one. Other tokens are emitted verbatim.
func typeCode(p *gen.Property) *jen.Statement {
	tok := strings.TrimSpace(p.Type)
	if p.PkgPath == "" {
		return jen.Id(tok)
	}
	prefix, rest := splitPrefix(tok)
	pkg, name, ok := strings.Cut(rest, ".")
	if !ok || pkg == "" || name == "" || strings.ContainsAny(rest, "[]*(){}, ") || strings.Contains(name, ".") {
		return jen.Id(tok)
	}
	if prefix == "" {
		return jen.Qual(p.PkgPath, name)
	}
	return jen.Op(prefix).Qual(p.PkgPath, name)
}

// splitPrefix splits the pointer, slice and array markers off a type token.
func splitPrefix(tok string) (prefix, rest string) {
	i := 0
	for i < len(tok) {
		switch tok[i] {
		case '*':
			i++
			continue
		case '[':
			j := strings.IndexByte(tok[i:], ']')
			if j < 0 {
				return tok[:i], tok[i:]
			}
			i += j + 1
			continue
		}
		break
	}
	return tok[:i], tok[i:]
}

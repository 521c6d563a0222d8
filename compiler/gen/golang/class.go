package golang

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valobj/compiler/gen"
)

// genClass generates the struct of a contract and all its planned members.
func genClass(f *jen.File, c *gen.Contract) {
	n := newNames(c)
	fields := c.Fields()

	genStruct(f, n, c, fields)
	genGetters(f, n, fields)

	if p, ok := c.Plan(gen.KindConstructor); ok {
		genConstructor(f, n, p)
	}
	if p, ok := c.Plan(gen.KindEquals); ok {
		genEqual(f, n, p)
	}
	if p, ok := c.Plan(gen.KindOperatorEquals); ok {
		genNotEqual(f, n, p)
	}
	if p, ok := c.Plan(gen.KindHashCode); ok {
		genHash(f, n, p)
	}
	if p, ok := c.Plan(gen.KindToString); ok {
		genString(f, n, p)
	}
	if p, ok := c.Plan(gen.KindWith); ok {
		genWith(f, n, p)
	}
	if p, ok := c.Plan(gen.KindBuilder); ok {
		genBuilder(f, n, p)
		if tb, ok := c.Plan(gen.KindToBuilder); ok {
			genToBuilder(f, n, p, tb)
		}
	}
}

// genStruct generates the value struct. Computed properties have no field:
// they are implemented by hand.
func genStruct(f *jen.File, n *names, c *gen.Contract, fields []*gen.Property) {
	if c.Comment != "" {
		f.Comment(c.Comment)
	} else {
		f.Commentf("%s is a value class.", n.typ)
	}
	var computed []string
	for _, p := range c.Properties {
		if p.Computed {
			computed = append(computed, p.Name)
		}
	}
	if len(computed) > 0 {
		f.Comment("")
		f.Commentf("Computed properties: %s.", strings.Join(computed, ", "))
	}
	f.Type().Id(n.typ).StructFunc(func(grp *jen.Group) {
		for _, p := range fields {
			if p.Comment != "" {
				grp.Comment(p.Comment)
			}
			grp.Id(n.field(p)).Add(typeCode(p))
		}
	})
}

func genGetters(f *jen.File, n *names, fields []*gen.Property) {
	for _, p := range fields {
		f.Commentf("%s returns the %s property.", n.getter(p), p.Name)
		f.Func().Params(jen.Id(recv).Id(n.typ)).Id(n.getter(p)).Params().Add(typeCode(p)).Block(
			jen.Return(jen.Id(recv).Dot(n.field(p))),
		)
	}
}

// results returns the result list of a constructor or Build method. Members
// that run null checks also return an error.
func results(n *names, p *gen.MemberPlan) jen.Code {
	if p.Checks.Empty() {
		return jen.Id(n.typ)
	}
	return jen.Parens(jen.List(jen.Id(n.typ), jen.Error()))
}

// checkNotNil returns the statement checking one property.
func checkNotNil(n *names, name string, value jen.Code) jen.Code {
	return jen.If(
		jen.Err().Op(":=").Qual(runtimePkg, "CheckNotNil").Call(jen.Lit(n.class), jen.Lit(name), value),
		jen.Err().Op("!=").Nil(),
	).Block(
		jen.Return(jen.Id(n.typ).Values(), jen.Err()),
	)
}

// construct appends the statements shared by the constructor and Build:
// the pre-constructor text, the Pre checks, the assignments and the Post
// checks, in this order. Parameters must be in scope under their field name.
func construct(grp *jen.Group, n *names, p *gen.MemberPlan) {
	if p.PreConstructor != nil && *p.PreConstructor != "" {
		grp.Id(*p.PreConstructor)
	}
	byName := make(map[string]*gen.Property, len(p.Fields))
	for _, fd := range p.Fields {
		byName[fd.Name] = fd
	}
	value := jen.Id(n.typ).Values(jen.DictFunc(func(d jen.Dict) {
		for _, fd := range p.Fields {
			d[jen.Id(n.field(fd))] = jen.Id(n.field(fd))
		}
	}))
	if p.Checks.Empty() {
		grp.Return(value)
		return
	}
	for _, name := range p.Checks.Pre {
		grp.Add(checkNotNil(n, name, jen.Id(n.field(byName[name]))))
	}
	if len(p.Checks.Post) == 0 {
		grp.Return(value, jen.Nil())
		return
	}
	grp.Id(recv).Op(":=").Add(value)
	for _, name := range p.Checks.Post {
		grp.Add(checkNotNil(n, name, jen.Id(recv).Dot(n.field(byName[name]))))
	}
	grp.Return(jen.Id(recv), jen.Nil())
}

func genConstructor(f *jen.File, n *names, p *gen.MemberPlan) {
	name := n.constructor(p.Access)
	f.Commentf("%s returns a new %s.", name, n.typ)
	if p.AllowCustom {
		f.Comment("")
		f.Comment("Hand-written constructors may be declared next to it.")
	}
	f.Func().Id(name).ParamsFunc(func(grp *jen.Group) {
		for _, fd := range p.Fields {
			param := jen.Id(n.field(fd)).Add(typeCode(fd))
			if fd.PreParam != nil && *fd.PreParam != "" {
				param = jen.Id(*fd.PreParam).Add(param)
			}
			grp.Add(param)
		}
	}).Add(results(n, p)).BlockFunc(func(grp *jen.Group) {
		construct(grp, n, p)
	})
}

func genEqual(f *jen.File, n *names, p *gen.MemberPlan) {
	f.Commentf("Equal reports whether %s and %s hold equal values.", recv, other)
	var cond *jen.Statement
	for i, fd := range p.Fields {
		eq := jen.Qual("reflect", "DeepEqual").Call(jen.Id(recv).Dot(n.field(fd)), jen.Id(other).Dot(n.field(fd)))
		if i == 0 {
			cond = eq
		} else {
			cond = cond.Op("&&").Line().Add(eq)
		}
	}
	if cond == nil {
		cond = jen.True()
	}
	f.Func().Params(jen.Id(recv).Id(n.typ)).Id("Equal").Params(jen.Id(other).Id(n.typ)).Bool().Block(
		jen.Return(cond),
	)
}

// genNotEqual generates the inequality counterpart of Equal. Go has no
// operator overloading, so == and != become Equal and NotEqual.
func genNotEqual(f *jen.File, n *names, _ *gen.MemberPlan) {
	f.Commentf("NotEqual reports whether %s and %s differ.", recv, other)
	f.Func().Params(jen.Id(recv).Id(n.typ)).Id("NotEqual").Params(jen.Id(other).Id(n.typ)).Bool().Block(
		jen.Return(jen.Op("!").Id(recv).Dot("Equal").Call(jen.Id(other))),
	)
}

func genHash(f *jen.File, n *names, p *gen.MemberPlan) {
	f.Comment("Hash returns a hash code consistent with Equal.")
	f.Func().Params(jen.Id(recv).Id(n.typ)).Id("Hash").Params().Uint64().Block(
		jen.Return(jen.Qual(runtimePkg, "Hash").CallFunc(func(grp *jen.Group) {
			for _, fd := range p.Fields {
				grp.Id(recv).Dot(n.field(fd))
			}
		})),
	)
}

// stringFormat turns a plan format such as "Point(x=<x>)" into a fmt
// format string and its arguments.
func stringFormat(n *names, p *gen.MemberPlan) (string, []jen.Code) {
	format := strings.ReplaceAll(p.Format, "%", "%%")
	args := make([]jen.Code, 0, len(p.Fields))
	for _, fd := range p.Fields {
		format = strings.Replace(format, fmt.Sprintf("<%s>", fd.Name), "%v", 1)
		args = append(args, jen.Id(recv).Dot(n.field(fd)))
	}
	return format, args
}

func genString(f *jen.File, n *names, p *gen.MemberPlan) {
	format, args := stringFormat(n, p)
	ret := jen.Lit(format)
	if len(args) > 0 {
		ret = jen.Qual("fmt", "Sprintf").Call(append([]jen.Code{jen.Lit(format)}, args...)...)
	}
	f.Comment("String implements the fmt.Stringer interface.")
	f.Func().Params(jen.Id(recv).Id(n.typ)).Id("String").Params().String().Block(
		jen.Return(ret),
	)
}

func genWith(f *jen.File, n *names, p *gen.MemberPlan) {
	for _, m := range p.Mutators {
		fd := p.Fields[m.Index]
		name := "With" + n.pascalOf(fd)
		id := n.field(fd)
		f.Commentf("%s returns a copy of %s with %s replaced.", name, recv, fd.Name)
		f.Func().Params(jen.Id(recv).Id(n.typ)).Id(name).Params(jen.Id(id).Add(typeCode(fd))).Id(n.typ).Block(
			jen.Id(recv).Dot(id).Op("=").Id(id),
			jen.Return(jen.Id(recv)),
		)
	}
}

// genBuilder generates the builder type, its setters and Build. Build runs
// the same checks as the constructor, which may not be generated.
func genBuilder(f *jen.File, n *names, p *gen.MemberPlan) {
	typ := n.builder(p.Access)
	f.Commentf("%s builds %s values.", typ, n.typ)
	f.Type().Id(typ).StructFunc(func(grp *jen.Group) {
		for _, fd := range p.Fields {
			grp.Id(n.field(fd)).Add(typeCode(fd))
		}
	})

	ctor := n.newBuilder(p.Access)
	f.Commentf("%s returns an empty %s.", ctor, typ)
	f.Func().Id(ctor).Params().Op("*").Id(typ).Block(
		jen.Return(jen.Op("&").Id(typ).Values()),
	)

	for _, fd := range p.Fields {
		name := "Set" + n.pascalOf(fd)
		id := n.field(fd)
		f.Commentf("%s sets the %s property.", name, fd.Name)
		f.Func().Params(jen.Id(builder).Op("*").Id(typ)).Id(name).Params(jen.Id(id).Add(typeCode(fd))).Op("*").Id(typ).Block(
			jen.Id(builder).Dot(id).Op("=").Id(id),
			jen.Return(jen.Id(builder)),
		)
	}

	f.Commentf("Build returns the %s held by the builder.", n.typ)
	f.Func().Params(jen.Id(builder).Op("*").Id(typ)).Id("Build").Params().Add(results(n, p)).BlockFunc(func(grp *jen.Group) {
		if len(p.Fields) > 0 {
			grp.ListFunc(func(lhs *jen.Group) {
				for _, fd := range p.Fields {
					lhs.Id(n.field(fd))
				}
			}).Op(":=").ListFunc(func(rhs *jen.Group) {
				for _, fd := range p.Fields {
					rhs.Id(builder).Dot(n.field(fd))
				}
			})
		}
		construct(grp, n, p)
	})
}

func genToBuilder(f *jen.File, n *names, b, p *gen.MemberPlan) {
	typ := n.builder(b.Access)
	f.Commentf("ToBuilder returns a builder initialized with the values of %s.", recv)
	f.Func().Params(jen.Id(recv).Id(n.typ)).Id("ToBuilder").Params().Op("*").Id(typ).Block(
		jen.Return(jen.Op("&").Id(typ).Values(jen.DictFunc(func(d jen.Dict) {
			for _, fd := range p.Fields {
				d[jen.Id(n.field(fd))] = jen.Id(recv).Dot(n.field(fd))
			}
		}))),
	)
}

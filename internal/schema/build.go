package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	kotlinpoet "github.com/square/kotlinpoet-sub003"
)

var jvmInline = kotlinpoet.NewClassName("kotlin.jvm", "JvmInline")

// Build returns the file spec described by f, rendered with default
// options unless f overrides them.
func (f *File) Build() (*kotlinpoet.FileSpec, error) {
	return f.BuildWith(kotlinpoet.DefaultRenderOptions())
}

// BuildWith is like Build but starts from base render options. Options
// set in the file take precedence.
func (f *File) BuildWith(base kotlinpoet.RenderOptions) (spec *kotlinpoet.FileSpec, err error) {
	defer recoverUsage(&err)
	b := builder{pkg: f.Package}
	spec = kotlinpoet.NewFileSpec(f.Package, f.Name).Options(f.Options.apply(base))
	if f.Comment != "" {
		spec.AddFileComment("%L", f.Comment)
	}
	for _, imp := range f.Imports {
		if err := addImport(spec, imp); err != nil {
			return nil, err
		}
	}
	for _, a := range f.TypeAliases {
		typ, err := b.typeName(a.Type, false, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "type alias %s", a.Name)
		}
		alias := kotlinpoet.NewTypeAlias(a.Name, typ)
		if a.Kdoc != "" {
			alias.AddKdoc("%L", a.Kdoc)
		}
		spec.AddTypeAlias(alias)
	}
	for i := range f.Types {
		ts, err := b.typeSpec(&f.Types[i], nil)
		if err != nil {
			return nil, err
		}
		spec.AddType(ts)
	}
	for _, p := range f.Properties {
		ps, err := b.property(p, nil)
		if err != nil {
			return nil, err
		}
		spec.AddProperty(ps)
	}
	for _, fn := range f.Functions {
		fs, err := b.function(fn, nil)
		if err != nil {
			return nil, err
		}
		spec.AddFunction(fs)
	}
	return spec, nil
}

func (o *Options) apply(base kotlinpoet.RenderOptions) kotlinpoet.RenderOptions {
	if o == nil {
		return base
	}
	if o.Indent != "" {
		base.Indent = o.Indent
	}
	if o.ColumnLimit > 0 {
		base.ColumnLimit = o.ColumnLimit
	}
	if o.ExplicitAPI != nil {
		base.ExplicitAPI = *o.ExplicitAPI
	}
	if len(o.DefaultImports) > 0 {
		base.DefaultImports = o.DefaultImports
	}
	return base
}

func addImport(spec *kotlinpoet.FileSpec, imp Import) error {
	dot := strings.LastIndexByte(imp.Name, '.')
	if dot <= 0 || dot == len(imp.Name)-1 {
		return errors.Newf("import %q is not a qualified name", imp.Name)
	}
	qualifier, name := imp.Name[:dot], imp.Name[dot+1:]
	if imp.Alias == "" {
		spec.AddImport(qualifier, name)
		return nil
	}
	if startsUpper(name) {
		c, err := bestGuess(imp.Name)
		if err != nil {
			return err
		}
		spec.AddAliasedImport(c, imp.Alias)
		return nil
	}
	var member kotlinpoet.MemberName
	if startsUpper(qualifier[strings.LastIndexByte(qualifier, '.')+1:]) {
		c, err := bestGuess(qualifier)
		if err != nil {
			return err
		}
		member = kotlinpoet.NewMemberInClass(c, name)
	} else {
		member = kotlinpoet.NewMember(qualifier, name)
	}
	spec.AddAliasedMemberImport(member, imp.Alias)
	return nil
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

type builder struct {
	pkg string
}

func (b builder) typeName(s string, nullable bool, scope []string) (kotlinpoet.TypeName, error) {
	if s == "" {
		return nil, errors.New("missing type")
	}
	t, err := ParseTypeName(s, b.pkg, scope...)
	if err != nil {
		return nil, err
	}
	if nullable {
		t = kotlinpoet.Nullable(t)
	}
	return t, nil
}

func parseModifiers(keywords []string) ([]kotlinpoet.KModifier, error) {
	mods := make([]kotlinpoet.KModifier, 0, len(keywords))
	for _, k := range keywords {
		m, ok := kotlinpoet.ParseModifier(k)
		if !ok {
			return nil, errors.Newf("unknown modifier %q", k)
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// typeVariables parses declarations like "T", "out T" or
// "T : Comparable<T>". It returns them and scope extended with their names.
func (b builder) typeVariables(decls []string, scope []string) ([]*kotlinpoet.TypeVariableName, []string, error) {
	type decl struct {
		name, variance, bound string
	}
	parsed := make([]decl, len(decls))
	for i, d := range decls {
		head, bound, _ := strings.Cut(d, ":")
		fields := strings.Fields(head)
		switch {
		case len(fields) == 1:
			parsed[i] = decl{name: fields[0]}
		case len(fields) == 2 && (fields[0] == "in" || fields[0] == "out" || fields[0] == "reified"):
			parsed[i] = decl{name: fields[1], variance: fields[0]}
		default:
			return nil, nil, errors.Newf("invalid type variable %q", d)
		}
		parsed[i].bound = strings.TrimSpace(bound)
		scope = append(scope, parsed[i].name)
	}

	tvs := make([]*kotlinpoet.TypeVariableName, len(parsed))
	for i, d := range parsed {
		tv := kotlinpoet.NewTypeVariable(d.name)
		if d.bound != "" {
			bound, err := b.typeName(d.bound, false, scope)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "bound of %s", d.name)
			}
			tv = tv.WithBounds(bound)
		}
		switch d.variance {
		case "in":
			tv = tv.WithVariance(kotlinpoet.In)
		case "out":
			tv = tv.WithVariance(kotlinpoet.Out)
		case "reified":
			tv = tv.Reified()
		}
		tvs[i] = tv
	}
	return tvs, scope, nil
}

func (b builder) typeSpec(t *Type, scope []string) (*kotlinpoet.TypeSpec, error) {
	ts, err := b.buildType(t, scope)
	return ts, errors.Wrapf(err, "type %s", t.Name)
}

func (b builder) buildType(t *Type, scope []string) (*kotlinpoet.TypeSpec, error) {
	var ts *kotlinpoet.TypeSpec
	switch t.Kind {
	case KindData:
		ts = kotlinpoet.NewClass(t.Name).AddModifiers(kotlinpoet.Data)
	case KindValue:
		ts = kotlinpoet.NewValueClass(t.Name).AddAnnotation(kotlinpoet.NewAnnotationSpec(jvmInline))
	case KindEnum:
		ts = kotlinpoet.NewEnum(t.Name)
	case KindInterface:
		ts = kotlinpoet.NewInterface(t.Name)
	case KindObject:
		ts = kotlinpoet.NewObject(t.Name)
	default:
		ts = kotlinpoet.NewClass(t.Name)
	}
	mods, err := parseModifiers(t.Modifiers)
	if err != nil {
		return nil, err
	}
	ts.AddModifiers(mods...)
	if t.Kdoc != "" {
		ts.AddKdoc("%L", t.Kdoc)
	}
	tvs, scope, err := b.typeVariables(t.TypeVariables, scope)
	if err != nil {
		return nil, err
	}
	for _, tv := range tvs {
		ts.AddTypeVariable(tv)
	}

	if t.Superclass != "" {
		st, err := b.typeName(t.Superclass, false, scope)
		if err != nil {
			return nil, errors.Wrap(err, "superclass")
		}
		ts.Superclass(st)
	}
	for _, arg := range t.SuperclassArgs {
		ts.AddSuperclassConstructorParameter("%L", arg)
	}
	for _, s := range t.Interfaces {
		it, err := b.typeName(s, false, scope)
		if err != nil {
			return nil, errors.Wrap(err, "interface")
		}
		ts.AddSuperinterface(it)
	}

	for _, c := range t.Constants {
		var body *kotlinpoet.TypeSpec
		if len(c.Args) > 0 {
			body = kotlinpoet.NewAnonymousClass()
			for _, arg := range c.Args {
				body.AddSuperclassConstructorParameter("%L", arg)
			}
		}
		ts.AddEnumConstant(c.Name, body)
	}

	switch t.Kind {
	case KindInterface, KindObject:
		for _, p := range t.Properties {
			if t.Kind == KindInterface && p.Default != "" {
				return nil, errors.Newf("interface property %s cannot have a default", p.Name)
			}
			ps, err := b.property(p, scope)
			if err != nil {
				return nil, err
			}
			ts.AddProperty(ps)
		}
	default:
		if err := b.constructorProperties(ts, t.Properties, scope); err != nil {
			return nil, err
		}
	}

	for _, fn := range t.Functions {
		fs, err := b.function(fn, scope)
		if err != nil {
			return nil, err
		}
		ts.AddFunction(fs)
	}
	for i := range t.Types {
		nested, err := b.typeSpec(&t.Types[i], scope)
		if err != nil {
			return nil, err
		}
		ts.AddType(nested)
	}
	return ts, nil
}

// constructorProperties declares props as val or var parameters of the
// primary constructor.
func (b builder) constructorProperties(ts *kotlinpoet.TypeSpec, props []Property, scope []string) error {
	if len(props) == 0 {
		return nil
	}
	ctor := kotlinpoet.NewConstructor()
	for _, p := range props {
		typ, err := b.typeName(p.Type, p.Nullable, scope)
		if err != nil {
			return errors.Wrapf(err, "property %s", p.Name)
		}
		mods, err := parseModifiers(p.Modifiers)
		if err != nil {
			return errors.Wrapf(err, "property %s", p.Name)
		}
		param := kotlinpoet.NewParameterSpec(p.Name, typ)
		if p.Default != "" {
			param.DefaultValue("%L", p.Default)
		}
		ctor.AddParameter(param)
		prop := kotlinpoet.NewPropertySpec(p.Name, typ, mods...).
			Mutable(p.Mutable).
			Initializer("%N", p.Name)
		if p.Kdoc != "" {
			prop.AddKdoc("%L", p.Kdoc)
		}
		ts.AddProperty(prop)
	}
	ts.PrimaryConstructor(ctor)
	return nil
}

func (b builder) property(p Property, scope []string) (*kotlinpoet.PropertySpec, error) {
	typ, err := b.typeName(p.Type, p.Nullable, scope)
	if err != nil {
		return nil, errors.Wrapf(err, "property %s", p.Name)
	}
	mods, err := parseModifiers(p.Modifiers)
	if err != nil {
		return nil, errors.Wrapf(err, "property %s", p.Name)
	}
	ps := kotlinpoet.NewPropertySpec(p.Name, typ, mods...).Mutable(p.Mutable)
	if p.Default != "" {
		ps.Initializer("%L", p.Default)
	}
	if p.Kdoc != "" {
		ps.AddKdoc("%L", p.Kdoc)
	}
	return ps, nil
}

func (b builder) function(fn Function, scope []string) (*kotlinpoet.FunSpec, error) {
	fs, err := b.buildFunction(fn, scope)
	return fs, errors.Wrapf(err, "function %s", fn.Name)
}

func (b builder) buildFunction(fn Function, scope []string) (*kotlinpoet.FunSpec, error) {
	fs := kotlinpoet.NewFunSpec(fn.Name)
	mods, err := parseModifiers(fn.Modifiers)
	if err != nil {
		return nil, err
	}
	fs.AddModifiers(mods...)
	if fn.Kdoc != "" {
		fs.AddKdoc("%L", fn.Kdoc)
	}
	tvs, scope, err := b.typeVariables(fn.TypeVariables, scope)
	if err != nil {
		return nil, err
	}
	for _, tv := range tvs {
		fs.AddTypeVariable(tv)
	}
	if fn.Receiver != "" {
		recv, err := b.typeName(fn.Receiver, false, scope)
		if err != nil {
			return nil, errors.Wrap(err, "receiver")
		}
		fs.Receiver(recv)
	}
	for _, p := range fn.Params {
		typ, err := b.typeName(p.Type, false, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", p.Name)
		}
		param := kotlinpoet.NewParameterSpec(p.Name, typ)
		if p.Default != "" {
			param.DefaultValue("%L", p.Default)
		}
		fs.AddParameter(param)
	}
	if fn.Returns != "" {
		rt, err := b.typeName(fn.Returns, false, scope)
		if err != nil {
			return nil, errors.Wrap(err, "return type")
		}
		fs.Returns(rt)
	}
	switch {
	case fn.Body == "":
	case fn.Returns != "":
		fs.AddStatement("return %L", fn.Body)
	default:
		fs.AddStatement("%L", fn.Body)
	}
	return fs, nil
}

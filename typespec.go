package kotlinpoet

import (
	"slices"
)

type typeSpecKind int

const (
	classKind typeSpecKind = iota
	objectKind
	interfaceKind
)

func (k typeSpecKind) keyword() string {
	switch k {
	case objectKind:
		return "object"
	case interfaceKind:
		return "interface"
	default:
		return "class"
	}
}

func (k typeSpecKind) String() string {
	return k.keyword()
}

func (k typeSpecKind) implicitPropertyModifiers(modifiers modifierSet) modifierSet {
	ret := newModifierSet(Public)
	if k == interfaceKind {
		ret = ret.with(Abstract)
	}
	switch {
	case modifiers.contains(Annotation):
	case modifiers.contains(Expect):
		ret = ret.with(Expect)
	case modifiers.contains(External):
		ret = ret.with(External)
	}
	return ret
}

func (k typeSpecKind) implicitFunctionModifiers(modifiers modifierSet) modifierSet {
	ret := newModifierSet(Public)
	if k == interfaceKind {
		ret = ret.with(Abstract)
	}
	return ret.union(expectOrExternal(modifiers))
}

func (k typeSpecKind) implicitTypeModifiers(modifiers modifierSet) modifierSet {
	return expectOrExternal(modifiers)
}

func expectOrExternal(modifiers modifierSet) modifierSet {
	switch {
	case modifiers.contains(Expect):
		return newModifierSet(Expect)
	case modifiers.contains(External):
		return newModifierSet(External)
	}
	return 0
}

type superinterface struct {
	typ      TypeName
	delegate *CodeBlock
}

type enumConstant struct {
	name string
	spec *TypeSpec
}

// TypeSpec is a class, object, interface, enum or annotation declaration,
// or an anonymous class.
type TypeSpec struct {
	kind             typeSpecKind
	name             string
	kdoc             CodeBlock
	annotations      []*AnnotationSpec
	modifiers        modifierSet
	contextReceivers []TypeName
	typeVariables    []*TypeVariableName

	primaryConstructor   *FunSpec
	superclass           TypeName
	superclassCtorParams []CodeBlock
	superinterfaces      []superinterface

	enumConstants    []enumConstant
	propertySpecs    []*PropertySpec
	initializerIndex int
	initializerBlock CodeBlockBuilder
	funSpecs         []*FunSpec
	typeSpecs        []*TypeSpec
	typeAliasSpecs   []*TypeAliasSpec
}

func newTypeSpec(kind typeSpecKind, name string, modifiers ...KModifier) *TypeSpec {
	t := &TypeSpec{kind: kind, name: name, superclass: AnyType, initializerIndex: -1}
	for _, m := range modifiers {
		t.modifiers = t.modifiers.with(m)
	}
	return t
}

func requireTypeName(name string) string {
	requiref(name != "", "type name is empty")
	return name
}

// NewClass returns a class declaration.
func NewClass(name string) *TypeSpec {
	return newTypeSpec(classKind, requireTypeName(name))
}

// NewExpectClass returns an `expect class` declaration.
func NewExpectClass(name string) *TypeSpec {
	return newTypeSpec(classKind, requireTypeName(name), Expect)
}

// NewValueClass returns a `value class`, which must have a primary
// constructor with a single val parameter.
func NewValueClass(name string) *TypeSpec {
	return newTypeSpec(classKind, requireTypeName(name), Value)
}

// NewObject returns an object declaration.
func NewObject(name string) *TypeSpec {
	return newTypeSpec(objectKind, requireTypeName(name))
}

// NewCompanionObject returns a companion object. name may be empty.
func NewCompanionObject(name string) *TypeSpec {
	return newTypeSpec(objectKind, name, Companion)
}

// NewInterface returns an interface declaration.
func NewInterface(name string) *TypeSpec {
	return newTypeSpec(interfaceKind, requireTypeName(name))
}

// NewFunInterface returns a functional (SAM) interface.
func NewFunInterface(name string) *TypeSpec {
	return newTypeSpec(interfaceKind, requireTypeName(name), Fun)
}

// NewEnum returns an enum class.
func NewEnum(name string) *TypeSpec {
	return newTypeSpec(classKind, requireTypeName(name), Enum)
}

// NewAnnotationClass returns an annotation class.
func NewAnnotationClass(name string) *TypeSpec {
	return newTypeSpec(classKind, requireTypeName(name), Annotation)
}

// NewAnonymousClass returns an anonymous class, for object expressions and
// enum constants with bodies.
func NewAnonymousClass() *TypeSpec {
	return newTypeSpec(classKind, "")
}

// Name returns the type name, which is empty for anonymous classes and
// unnamed companion objects.
func (t *TypeSpec) Name() string {
	return t.name
}

func (t *TypeSpec) isAnonymous() bool {
	return t.name == "" && t.kind == classKind
}

func (t *TypeSpec) isEnum() bool {
	return t.kind == classKind && t.modifiers.contains(Enum)
}

func (t *TypeSpec) isAnnotation() bool {
	return t.kind == classKind && t.modifiers.contains(Annotation)
}

func (t *TypeSpec) isCompanion() bool {
	return t.kind == objectKind && t.modifiers.contains(Companion)
}

func (t *TypeSpec) isValueClass() bool {
	return t.kind == classKind && t.modifiers.containsAny(Inline, Value)
}

func (t *TypeSpec) isSimpleClass() bool {
	return t.kind == classKind && !t.isEnum() && !t.isAnnotation()
}

func (t *TypeSpec) hasNestedType(name string) bool {
	for _, nested := range t.typeSpecs {
		if nested.name == name {
			return true
		}
	}
	return false
}

func (t *TypeSpec) hasEnumConstant(name string) bool {
	for _, c := range t.enumConstants {
		if c.name == name {
			return true
		}
	}
	return false
}

// AddKdoc appends to the documentation.
func (t *TypeSpec) AddKdoc(format string, args ...interface{}) *TypeSpec {
	t.kdoc = t.kdoc.ToBuilder().Add(format, args...).Build()
	return t
}

// AddAnnotation adds an annotation.
func (t *TypeSpec) AddAnnotation(a *AnnotationSpec) *TypeSpec {
	t.annotations = append(t.annotations, a)
	return t
}

// AddModifiers adds modifiers. Anonymous classes take no modifiers.
func (t *TypeSpec) AddModifiers(modifiers ...KModifier) *TypeSpec {
	requiref(!t.isAnonymous(), "modifiers are forbidden on anonymous types")
	for _, m := range modifiers {
		t.modifiers = t.modifiers.with(m)
	}
	return t
}

// ContextReceivers sets the context receivers of a class.
func (t *TypeSpec) ContextReceivers(receivers ...TypeName) *TypeSpec {
	requiref(t.isSimpleClass(), "context receivers can only be applied on simple classes")
	t.contextReceivers = slices.Clone(receivers)
	return t
}

// AddTypeVariable adds a type variable.
func (t *TypeSpec) AddTypeVariable(tv *TypeVariableName) *TypeSpec {
	t.typeVariables = append(t.typeVariables, tv)
	return t
}

// PrimaryConstructor sets the primary constructor. Constructor parameters
// that match a property of the same name, type and initializer are
// declared as val or var parameters.
func (t *TypeSpec) PrimaryConstructor(ctor *FunSpec) *TypeSpec {
	requiref(t.kind == classKind, "%s can't have a primary constructor", t.kind)
	if ctor != nil {
		requiref(ctor.IsConstructor(), "expected a constructor but was %s", ctor.name)
		requiref(ctor.delegateConstructor == "", "primary constructor can't delegate to other constructors")
	}
	t.primaryConstructor = ctor
	return t
}

func (t *TypeSpec) checkCanHaveSuperclass() {
	requiref(t.isSimpleClass() || t.kind == objectKind, "only classes can have super classes, not %s", t.kind)
	requiref(!t.isValueClass(), "value/inline classes cannot have super classes")
}

// Superclass sets the superclass.
func (t *TypeSpec) Superclass(superclass TypeName) *TypeSpec {
	t.checkCanHaveSuperclass()
	requiref(TypesEqual(t.superclass, AnyType), "superclass already set to %v", t.superclass)
	t.superclass = superclass
	return t
}

// AddSuperclassConstructorParameter adds an argument to the superclass
// constructor call.
func (t *TypeSpec) AddSuperclassConstructorParameter(format string, args ...interface{}) *TypeSpec {
	t.checkCanHaveSuperclass()
	t.superclassCtorParams = append(t.superclassCtorParams, CodeBlockOf(format, args...))
	return t
}

// AddSuperinterface adds an implemented interface.
func (t *TypeSpec) AddSuperinterface(typ TypeName) *TypeSpec {
	t.setSuperinterface(typ, nil)
	return t
}

// AddSuperinterfaceDelegate adds an interface implemented by delegation,
// as in `Map<K, V> by backing`.
func (t *TypeSpec) AddSuperinterfaceDelegate(typ TypeName, delegate CodeBlock) *TypeSpec {
	if delegate.IsEmpty() {
		return t.AddSuperinterface(typ)
	}
	requiref(t.isSimpleClass() || t.kind == objectKind, "delegation only allowed for classes and objects (found %s '%s')", t.kind, t.name)
	requiref(!typ.IsNullable(), "expected non-nullable type but was '%v'", NonNullable(typ))
	for _, s := range t.superinterfaces {
		if TypesEqual(s.typ, typ) && s.delegate != nil {
			failf("'%s' can not delegate to %v by %v with existing declaration by %v", t.name, typ, delegate, *s.delegate)
		}
	}
	t.setSuperinterface(typ, &delegate)
	return t
}

// AddSuperinterfaceDelegateParameter delegates typ to the primary
// constructor parameter named param.
func (t *TypeSpec) AddSuperinterfaceDelegateParameter(typ TypeName, param string) *TypeSpec {
	requiref(t.primaryConstructor != nil, "delegating to constructor parameter requires not-null constructor")
	requiref(t.primaryConstructor.parameter(param) != nil, "no such constructor parameter '%s' to delegate to for type '%s'", param, t.name)
	return t.AddSuperinterfaceDelegate(typ, CodeBlockOf("%N", param))
}

func (t *TypeSpec) setSuperinterface(typ TypeName, delegate *CodeBlock) {
	for i, s := range t.superinterfaces {
		if TypesEqual(s.typ, typ) {
			t.superinterfaces[i].delegate = delegate
			return
		}
	}
	t.superinterfaces = append(t.superinterfaces, superinterface{typ: typ, delegate: delegate})
}

// AddEnumConstant adds an enum constant. body may be nil, or an anonymous
// class with constructor arguments or members.
func (t *TypeSpec) AddEnumConstant(name string, body *TypeSpec) *TypeSpec {
	requiref(name != "name" && name != "ordinal", "constant with name %q conflicts with a supertype member with the same name", name)
	if body == nil {
		body = NewAnonymousClass()
	}
	for i, c := range t.enumConstants {
		if c.name == name {
			t.enumConstants[i].spec = body
			return t
		}
	}
	t.enumConstants = append(t.enumConstants, enumConstant{name: name, spec: body})
	return t
}

// AddProperty adds a property.
func (t *TypeSpec) AddProperty(p *PropertySpec) *TypeSpec {
	if t.modifiers.contains(Expect) {
		requiref(p.initializer == nil, "properties in expect classes can't have initializers")
		requiref(p.getter == nil && p.setter == nil, "properties in expect classes can't have getters and setters")
	}
	if t.isEnum() {
		requiref(p.name != "name" && p.name != "ordinal", "%s is a final supertype member and can't be redeclared or overridden", p.name)
	}
	t.propertySpecs = append(t.propertySpecs, p)
	return t
}

// AddInitializerBlock adds an init block. It is emitted after the
// properties added so far, and properties added afterwards are never
// declared in the primary constructor.
func (t *TypeSpec) AddInitializerBlock(block CodeBlock) *TypeSpec {
	requiref(t.isSimpleClass() || t.isEnum() || t.kind == objectKind, "%s can't have initializer blocks", t.kind)
	requiref(!t.modifiers.contains(Expect), "expect %s can't have initializer blocks", t.kind)
	t.initializerIndex = len(t.propertySpecs)
	t.initializerBlock.Add("init {\n").Indent().AddCode(block).Unindent().Add("}\n")
	return t
}

// AddFunction adds a function or secondary constructor.
func (t *TypeSpec) AddFunction(f *FunSpec) *TypeSpec {
	t.funSpecs = append(t.funSpecs, f)
	return t
}

// AddType adds a nested type.
func (t *TypeSpec) AddType(nested *TypeSpec) *TypeSpec {
	t.typeSpecs = append(t.typeSpecs, nested)
	return t
}

// AddTypeAlias adds a nested type alias.
func (t *TypeSpec) AddTypeAlias(a *TypeAliasSpec) *TypeSpec {
	t.typeAliasSpecs = append(t.typeAliasSpecs, a)
	return t
}

// String renders the declaration with fully qualified names.
func (t *TypeSpec) String() string {
	return renderString(func(w *codeWriter) {
		t.emit(w, "", 0)
	})
}

func (t *TypeSpec) check() {
	if len(t.enumConstants) > 0 {
		requiref(t.isEnum(), "%s is not an enum and cannot have enum constants", t.name)
	}
	external := t.modifiers.contains(External)
	if len(t.superclassCtorParams) > 0 {
		requiref(!external, "delegated constructor call in external class is not allowed")
	}
	requiref(!t.isAnonymous() || len(t.typeVariables) == 0, "type variables are forbidden on anonymous types")

	abstract := t.modifiers.containsAny(Abstract, Sealed) || t.kind == interfaceKind || t.isEnum()
	for _, f := range t.funSpecs {
		requiref(!external || f.delegateConstructor == "", "delegated constructor call in external class is not allowed")
		requiref(abstract || !f.modifiers.contains(Abstract), "non-abstract type %s cannot declare abstract function %s", t.name, f.name)
		switch {
		case t.kind == interfaceKind:
			requireNoneOf(f.modifiers, Internal, Protected)
			requireNoneOrOneOf(f.modifiers, Abstract, Private)
		case t.isAnnotation():
			failf("annotation class %s cannot declare member function %s", t.name, f.name)
		case t.modifiers.contains(Expect):
			requiref(f.body.IsEmpty(), "functions in expect classes can't have bodies")
		}
	}
	for _, p := range t.propertySpecs {
		requiref(abstract || !p.modifiers.contains(Abstract), "non-abstract type %s cannot declare abstract property %s", t.name, p.name)
		if len(p.contextReceivers) > 0 && !t.kind.implicitPropertyModifiers(t.modifiers).contains(Abstract) && !p.modifiers.contains(Abstract) {
			requiref(p.getter != nil, "non-abstract properties with context receivers require a %s", getterName)
			requiref(!p.mutable || p.setter != nil, "non-abstract mutable properties with context receivers require a %s", setterName)
		}
	}
	if t.isAnnotation() && t.primaryConstructor != nil {
		requireNoneOf(t.primaryConstructor.modifiers, Internal, Protected, Private, Abstract)
	}
	if t.primaryConstructor == nil {
		hasSecondary := slices.ContainsFunc(t.funSpecs, (*FunSpec).IsConstructor)
		requiref(!hasSecondary || len(t.superclassCtorParams) == 0,
			"types without a primary constructor cannot specify secondary constructors and superclass constructor parameters")
	}
	if t.isValueClass() {
		if t.primaryConstructor != nil {
			requiref(len(t.primaryConstructor.parameters) == 1, "value/inline classes must have 1 parameter in constructor")
			underlying := t.property(t.primaryConstructor.parameters[0].name)
			requiref(underlying != nil && !underlying.mutable, "value/inline classes must have a single read-only (val) property parameter")
		}
		requiref(len(t.propertySpecs) > 0, "value/inline classes must have at least 1 property")
	}
	if t.kind == interfaceKind && t.modifiers.contains(Fun) && len(t.superinterfaces) == 0 {
		var abstractFuns []string
		for _, f := range t.funSpecs {
			if f.modifiers.contains(Abstract) {
				abstractFuns = append(abstractFuns, f.name)
			}
		}
		requiref(len(abstractFuns) == 1, "functional interfaces must have exactly one abstract function. Contained %d: %v", len(abstractFuns), abstractFuns)
	}
	companions := 0
	for _, nested := range t.typeSpecs {
		if nested.isCompanion() {
			companions++
		}
	}
	requiref(companions <= 1, "multiple companion objects are present but only one is allowed")
	if companions == 1 {
		requiref(t.isSimpleClass() || t.kind == interfaceKind || t.isEnum() || t.isAnnotation(), "%s types can't have a companion object", t.kind)
	}
}

func (t *TypeSpec) property(name string) *PropertySpec {
	for _, p := range t.propertySpecs {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (t *TypeSpec) hasInitializer() bool {
	return t.initializerIndex != -1 && !t.initializerBlock.IsEmpty()
}

// constructorProperties returns the properties that can be declared as
// primary constructor parameters, keyed by name.
func (t *TypeSpec) constructorProperties() map[string]*PropertySpec {
	if t.primaryConstructor == nil {
		return nil
	}
	candidates := t.propertySpecs
	if t.hasInitializer() {
		candidates = candidates[:t.initializerIndex]
	}
	ret := map[string]*PropertySpec{}
	for _, p := range candidates {
		if p.getter != nil || p.setter != nil {
			continue
		}
		param := t.primaryConstructor.parameter(p.name)
		if param == nil || !TypesEqual(param.typ, p.typ) || !initializedFromParameter(p, param) {
			continue
		}
		ret[p.name] = p.fromConstructorParameter(param)
	}
	return ret
}

func initializedFromParameter(p *PropertySpec, param *ParameterSpec) bool {
	if p.initializer == nil {
		return false
	}
	return CodeBlockOf("%N", param.name).String() == escapeName(p.initializer.String(), false)
}

func (t *TypeSpec) hasNoBody(ctorProps map[string]*PropertySpec) bool {
	for _, p := range t.propertySpecs {
		if _, ok := ctorProps[p.name]; !ok {
			return false
		}
	}
	return len(t.enumConstants) == 0 &&
		t.initializerBlock.IsEmpty() &&
		(t.primaryConstructor == nil || t.primaryConstructor.body.IsEmpty()) &&
		len(t.funSpecs) == 0 &&
		len(t.typeSpecs) == 0 &&
		len(t.typeAliasSpecs) == 0
}

func (t *TypeSpec) kdocWithConstructorDocs() CodeBlock {
	classKdoc := t.kdoc.ensureEndsWithNewLine()
	ctorKdoc := NewCodeBlockBuilder()
	if t.primaryConstructor != nil {
		if !t.primaryConstructor.kdoc.IsEmpty() {
			ctorKdoc.Add("@constructor %L", t.primaryConstructor.kdoc.ensureEndsWithNewLine())
		}
		for _, p := range t.primaryConstructor.parameters {
			if !p.kdoc.IsEmpty() {
				ctorKdoc.Add("@param %L %L", p.name, p.kdoc.ensureEndsWithNewLine())
			}
		}
	}
	var blocks []CodeBlock
	for _, cb := range []CodeBlock{classKdoc, ctorKdoc.Build()} {
		if !cb.IsEmpty() {
			blocks = append(blocks, cb)
		}
	}
	return JoinToCode(blocks, "\n")
}

func (t *TypeSpec) supertypeList(superCall bool, areNestedExternal bool) []CodeBlock {
	var ret []CodeBlock
	if !TypesEqual(t.superclass, AnyType) {
		if superCall && !areNestedExternal && !t.modifiers.contains(Expect) {
			ret = append(ret, CodeBlockOf("%T(%L)", t.superclass, JoinToCode(t.superclassCtorParams, ", ")))
		} else {
			ret = append(ret, CodeBlockOf("%T", t.superclass))
		}
	}
	for _, s := range t.superinterfaces {
		if s.delegate == nil {
			ret = append(ret, CodeBlockOf("%T", s.typ))
		} else {
			ret = append(ret, CodeBlockOf("%T by %L", s.typ, *s.delegate))
		}
	}
	return ret
}

// emit writes the declaration. enumName is set when t is the body of that
// enum constant. implicit holds the modifiers implied by the enclosing
// type.
func (t *TypeSpec) emit(w *codeWriter, enumName string, implicit modifierSet) {
	t.check()
	nestedExternal := implicit.contains(External)
	areNestedExternal := t.modifiers.contains(External) || nestedExternal

	// Nested classes interrupt wrapped line indentation.
	previousStatementLine := w.statementLine
	w.statementLine = -1
	defer func() { w.statementLine = previousStatementLine }()

	ctorProps := t.constructorProperties()
	superCtorParams := JoinToCode(t.superclassCtorParams, ", ")
	noBody := t.hasNoBody(ctorProps)

	switch {
	case enumName != "":
		w.emitKdoc(t.kdocWithConstructorDocs())
		w.emitAnnotations(t.annotations, false)
		w.emitCode("%N", enumName)
		if !superCtorParams.IsEmpty() {
			w.emit("(")
			w.emitCodeBlock(superCtorParams, false, false)
			w.emit(")")
		}
		if noBody {
			return
		}
		w.emit(" {\n")
	case t.isAnonymous():
		w.emitCode("object")
		if supertypes := t.supertypeList(true, areNestedExternal); len(supertypes) > 0 {
			w.emitCodeBlock(JoinToCodeWith(supertypes, ", ", " : ", ""), false, false)
		}
		if noBody {
			w.emit(" {\n}")
			return
		}
		w.emit(" {\n")
	default:
		w.emitKdoc(t.kdocWithConstructorDocs())
		w.emitContextReceivers(t.contextReceivers, "\n")
		w.emitAnnotations(t.annotations, false)
		implicitOwn := newModifierSet(Public)
		if nestedExternal {
			implicitOwn = implicitOwn.with(External)
		}
		w.emitModifiers(t.modifiers, implicitOwn)
		w.emit(t.kind.keyword())
		if t.name != "" {
			w.emitCode(" %N", t.name)
		}
		w.emitTypeVariables(t.typeVariables)

		wrapSupertypes := false
		if ctor := t.primaryConstructor; ctor != nil {
			// Parameters may shadow nested type names.
			w.pushType(t)
			if len(ctor.annotations) > 0 {
				w.emit(" ")
				w.emitAnnotations(ctor.annotations, true)
			}
			if !ctor.modifiers.isEmpty() {
				if len(ctor.annotations) == 0 {
					w.emit(" ")
				}
				w.emitModifiers(ctor.modifiers, 0)
			}
			if len(ctor.annotations) > 0 || !ctor.modifiers.isEmpty() {
				w.emit("constructor")
			}
			emitParameterList(w, ctor.parameters, true, func(param *ParameterSpec) {
				wrapSupertypes = true
				if prop, ok := ctorProps[param.name]; ok {
					prop.emit(w, newModifierSet(Public), propertyEmitOptions{emitKdoc: true, inline: true})
					param.emitDefaultValue(w)
				} else {
					param.emit(w, true, false)
				}
			})
			w.popType()
		}

		superCall := t.primaryConstructor != nil || !slices.ContainsFunc(t.funSpecs, (*FunSpec).IsConstructor)
		if supertypes := t.supertypeList(superCall, areNestedExternal); len(supertypes) > 0 {
			separator := ",♢"
			if wrapSupertypes {
				separator = ",\n    "
			}
			w.emitCodeBlock(JoinToCodeWith(supertypes, separator, " : ", ""), false, false)
		}
		w.emitWhereBlock(t.typeVariables)
		if noBody {
			w.emit("\n")
			return
		}
		w.emit(" {\n")
	}

	w.pushType(t)
	w.indent(1)
	first := true
	for _, c := range t.enumConstants {
		if !first {
			w.emit("\n")
		}
		c.spec.emit(w, c.name, 0)
		w.emit(",")
		first = false
	}
	if t.isEnum() {
		if !first {
			w.emit("\n")
		}
		if len(t.propertySpecs) > 0 || len(t.funSpecs) > 0 || len(t.typeSpecs) > 0 || !t.initializerBlock.IsEmpty() {
			w.emit(";\n")
		}
	}

	initializerEmitted := false
	emitInitializer := func() {
		if initializerEmitted {
			return
		}
		initializerEmitted = true
		if t.hasInitializer() {
			if !first {
				w.emit("\n")
			}
			w.emitCodeBlock(t.initializerBlock.Build(), false, false)
			first = false
		}
	}
	propertyImplicit := t.kind.implicitPropertyModifiers(t.modifiers)
	for i, p := range t.propertySpecs {
		if i == t.initializerIndex {
			emitInitializer()
		}
		if _, ok := ctorProps[p.name]; ok {
			continue
		}
		if !first {
			w.emit("\n")
		}
		p.emit(w, propertyImplicit, propertyEmitOptions{withInitializer: true, emitKdoc: true})
		first = false
	}
	emitInitializer()

	if ctor := t.primaryConstructor; ctor != nil && !ctor.body.IsEmpty() {
		w.emit("init {\n")
		w.indent(1)
		w.emitCodeBlock(ctor.body.Build(), false, false)
		w.unindent(1)
		w.emit("}\n")
	}

	funImplicit := t.kind.implicitFunctionModifiers(t.modifiers.union(implicit))
	for _, f := range t.funSpecs {
		if !f.IsConstructor() {
			continue
		}
		if !first {
			w.emit("\n")
		}
		f.emit(w, t.name, funImplicit, false)
		first = false
	}
	for _, f := range t.funSpecs {
		if f.IsConstructor() {
			continue
		}
		if !first {
			w.emit("\n")
		}
		f.emit(w, t.name, funImplicit, true)
		first = false
	}

	typeImplicit := t.kind.implicitTypeModifiers(t.modifiers.union(implicit))
	if areNestedExternal {
		typeImplicit = typeImplicit.with(External)
	}
	for _, nested := range t.typeSpecs {
		if !first {
			w.emit("\n")
		}
		nested.emit(w, "", typeImplicit)
		first = false
	}
	for _, a := range t.typeAliasSpecs {
		if !first {
			w.emit("\n")
		}
		a.emit(w)
		first = false
	}

	w.unindent(1)
	w.popType()
	w.emit("}")
	if enumName == "" && !t.isAnonymous() {
		w.emit("\n")
	}
}

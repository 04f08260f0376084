package kotlinpoet

var typeAliasModifiers = newModifierSet(Public, Internal, Private, Actual)

// TypeAliasSpec is a typealias declaration.
type TypeAliasSpec struct {
	name          string
	typ           TypeName
	kdoc          CodeBlock
	annotations   []*AnnotationSpec
	modifiers     modifierSet
	typeVariables []*TypeVariableName
}

// NewTypeAlias returns `typealias name = typ`.
func NewTypeAlias(name string, typ TypeName) *TypeAliasSpec {
	requiref(name != "", "type alias name is empty")
	requiref(typ != nil, "type alias %s has no type", name)
	return &TypeAliasSpec{name: name, typ: typ}
}

// Name returns the alias name.
func (a *TypeAliasSpec) Name() string {
	return a.name
}

// Type returns the aliased type.
func (a *TypeAliasSpec) Type() TypeName {
	return a.typ
}

// AddKdoc appends to the documentation.
func (a *TypeAliasSpec) AddKdoc(format string, args ...interface{}) *TypeAliasSpec {
	a.kdoc = a.kdoc.ToBuilder().Add(format, args...).Build()
	return a
}

// AddAnnotation adds an annotation.
func (a *TypeAliasSpec) AddAnnotation(spec *AnnotationSpec) *TypeAliasSpec {
	a.annotations = append(a.annotations, spec)
	return a
}

// AddModifiers adds modifiers: a visibility or actual.
func (a *TypeAliasSpec) AddModifiers(modifiers ...KModifier) *TypeAliasSpec {
	for _, m := range modifiers {
		requiref(m.valid() && typeAliasModifiers.contains(m), "unexpected type alias modifier %s", m)
		a.modifiers = a.modifiers.with(m)
	}
	return a
}

// AddTypeVariable adds a type variable. Type alias parameters take no
// variance and cannot be reified.
func (a *TypeAliasSpec) AddTypeVariable(tv *TypeVariableName) *TypeAliasSpec {
	requiref(tv.variance == noVariance, "type alias type variables cannot have variance")
	requiref(!tv.reified, "type alias type variables cannot be reified")
	a.typeVariables = append(a.typeVariables, tv)
	return a
}

// String renders the alias with fully qualified names.
func (a *TypeAliasSpec) String() string {
	return renderString(a.emit)
}

func (a *TypeAliasSpec) emit(w *codeWriter) {
	w.emitKdoc(a.kdoc.ensureEndsWithNewLine())
	w.emitAnnotations(a.annotations, false)
	w.emitModifiers(a.modifiers, newModifierSet(Public))
	w.emitCode("typealias %N", a.name)
	w.emitTypeVariables(a.typeVariables)
	w.emitCode(" = %T", a.typ)
	w.emit("\n")
}

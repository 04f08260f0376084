package kotlinpoet

import (
	"slices"
)

// PropertySpec is a property declaration: a class member or a top-level
// val or var.
type PropertySpec struct {
	name             string
	typ              TypeName
	mutable          bool
	kdoc             CodeBlock
	annotations      []*AnnotationSpec
	modifiers        modifierSet
	typeVariables    []*TypeVariableName
	contextReceivers []TypeName
	receiverType     TypeName
	initializer      *CodeBlock
	delegated        bool
	getter           *FunSpec
	setter           *FunSpec
}

// NewPropertySpec returns a read-only property.
func NewPropertySpec(name string, typ TypeName, modifiers ...KModifier) *PropertySpec {
	requiref(name != "", "property name is empty")
	requiref(typ != nil, "property %s has no type", name)
	p := &PropertySpec{name: name, typ: typ}
	return p.AddModifiers(modifiers...)
}

// Name returns the property name.
func (p *PropertySpec) Name() string {
	return p.name
}

// Type returns the property type.
func (p *PropertySpec) Type() TypeName {
	return p.typ
}

// Mutable makes the property a var when mutable is true.
func (p *PropertySpec) Mutable(mutable bool) *PropertySpec {
	p.mutable = mutable
	return p
}

// AddKdoc appends to the documentation.
func (p *PropertySpec) AddKdoc(format string, args ...interface{}) *PropertySpec {
	p.kdoc = p.kdoc.ToBuilder().Add(format, args...).Build()
	return p
}

// AddAnnotation adds an annotation.
func (p *PropertySpec) AddAnnotation(a *AnnotationSpec) *PropertySpec {
	p.annotations = append(p.annotations, a)
	return p
}

// AddModifiers adds modifiers.
func (p *PropertySpec) AddModifiers(modifiers ...KModifier) *PropertySpec {
	for _, m := range modifiers {
		checkModifierTarget(m, targetProperty, "property "+p.name)
		p.modifiers = p.modifiers.with(m)
	}
	return p
}

// AddTypeVariable adds a type variable, as used by generic extension
// properties.
func (p *PropertySpec) AddTypeVariable(tv *TypeVariableName) *PropertySpec {
	p.typeVariables = append(p.typeVariables, tv)
	return p
}

// ContextReceivers sets the context receivers.
func (p *PropertySpec) ContextReceivers(receivers ...TypeName) *PropertySpec {
	p.contextReceivers = slices.Clone(receivers)
	return p
}

// Receiver makes this an extension property of receiver.
func (p *PropertySpec) Receiver(receiver TypeName) *PropertySpec {
	p.receiverType = receiver
	return p
}

// Initializer sets the initial value expression.
func (p *PropertySpec) Initializer(format string, args ...interface{}) *PropertySpec {
	return p.InitializerCode(CodeBlockOf(format, args...))
}

// InitializerCode sets the initial value expression.
func (p *PropertySpec) InitializerCode(cb CodeBlock) *PropertySpec {
	p.initializer = &cb
	p.delegated = false
	return p
}

// Delegate sets a delegate expression, emitted after `by`.
func (p *PropertySpec) Delegate(format string, args ...interface{}) *PropertySpec {
	cb := CodeBlockOf(format, args...)
	p.initializer = &cb
	p.delegated = true
	return p
}

// Getter sets the getter, which must be made with NewGetter.
func (p *PropertySpec) Getter(f *FunSpec) *PropertySpec {
	requiref(f == nil || f.name == getterName, "%s is not a getter", funName(f))
	p.getter = f
	return p
}

// Setter sets the setter, which must be made with NewSetter.
func (p *PropertySpec) Setter(f *FunSpec) *PropertySpec {
	requiref(f == nil || f.name == setterName, "%s is not a setter", funName(f))
	p.setter = f
	return p
}

// String renders the property with fully qualified names.
func (p *PropertySpec) String() string {
	return renderString(func(w *codeWriter) {
		p.emit(w, 0, propertyEmitOptions{withInitializer: true, emitKdoc: true})
	})
}

func (p *PropertySpec) check() {
	requiref(p.mutable || p.setter == nil, "only a mutable property can have a setter")
	reified := slices.ContainsFunc(p.typeVariables, (*TypeVariableName).IsReified)
	if reified {
		requiref((p.getter != nil || p.setter != nil) &&
			(p.getter == nil || p.getter.modifiers.contains(Inline)) &&
			(p.setter == nil || p.setter.modifiers.contains(Inline)),
			"only type parameters of properties with inline getters and/or setters can be reified")
	}
}

// fromConstructorParameter returns a copy of p declared by the primary
// constructor parameter param. The parameter's kdoc stays with the class
// header as a @param tag.
func (p *PropertySpec) fromConstructorParameter(param *ParameterSpec) *PropertySpec {
	c := *p
	c.annotations = append(slices.Clone(p.annotations), param.annotations...)
	c.modifiers = p.modifiers.union(param.modifiers)
	return &c
}

type propertyEmitOptions struct {
	withInitializer   bool
	emitKdoc          bool
	inline            bool
	inlineAnnotations bool
}

func (p *PropertySpec) emit(w *codeWriter, implicit modifierSet, opts propertyEmitOptions) {
	p.check()
	inlineProperty := p.getter != nil && p.getter.modifiers.contains(Inline) &&
		(!p.mutable || (p.setter != nil && p.setter.modifiers.contains(Inline)))
	modifiers := p.modifiers
	if inlineProperty {
		modifiers = modifiers.with(Inline)
	}

	if opts.emitKdoc {
		w.emitKdoc(p.kdoc.ensureEndsWithNewLine())
	}
	w.emitContextReceivers(p.contextReceivers, "\n")
	w.emitAnnotations(p.annotations, opts.inlineAnnotations)
	w.emitModifiers(modifiers, implicit)
	if p.mutable {
		w.emitCode("var ")
	} else {
		w.emitCode("val ")
	}
	if len(p.typeVariables) > 0 {
		w.emitTypeVariables(p.typeVariables)
		w.emit(WrapSpace)
	}
	if p.receiverType != nil {
		if _, ok := p.receiverType.(*LambdaTypeName); ok {
			w.emitCode("(%T).", p.receiverType)
		} else {
			w.emitCode("%T.", p.receiverType)
		}
	}
	w.emitCode("%N:♢%T", p.name, p.typ)
	if opts.withInitializer && p.initializer != nil {
		if p.delegated {
			w.emit("♢by♢")
		} else {
			w.emitCode("♢=♢")
		}
		format := "«%L»"
		if p.initializer.hasStatements() {
			format = "%L"
		}
		w.emitCodeBlock(CodeBlockOf(format, p.initializer.trimTrailingNewLine("")), p.modifiers.contains(Const), false)
	}
	w.emitWhereBlock(p.typeVariables)
	if !opts.inline {
		w.emit("\n")
	}

	// Accessors inherit the property's visibility.
	accessorImplicit := implicit &^ visibilityModifiers
	if inlineProperty {
		accessorImplicit = accessorImplicit.with(Inline)
	}
	for _, accessor := range []*FunSpec{p.getter, p.setter} {
		if accessor == nil || accessor.isRedundantAccessor() {
			continue
		}
		w.emitCode(Indent)
		accessor.emit(w, "", accessorImplicit, false)
		w.emitCode(Unindent)
	}
}

package kotlinpoet

import (
	"slices"
)

// ParameterSpec is a parameter of a function, constructor or function
// type.
type ParameterSpec struct {
	name         string
	typ          TypeName
	modifiers    modifierSet
	annotations  []*AnnotationSpec
	defaultValue *CodeBlock
	kdoc         CodeBlock
}

var parameterModifiers = newModifierSet(Vararg, Noinline, Crossinline)

// NewParameterSpec returns a parameter with the given name and type.
func NewParameterSpec(name string, typ TypeName, modifiers ...KModifier) *ParameterSpec {
	requiref(name != "", "parameter name is empty")
	requiref(typ != nil, "parameter %s has no type", name)
	p := &ParameterSpec{name: name, typ: typ}
	return p.AddModifiers(modifiers...)
}

// NewUnnamedParameter returns a parameter with only a type, as used in
// function types like (String) -> Unit.
func NewUnnamedParameter(typ TypeName) *ParameterSpec {
	requiref(typ != nil, "parameter has no type")
	return &ParameterSpec{typ: typ}
}

// Name returns the parameter name, which is empty for unnamed parameters.
func (p *ParameterSpec) Name() string {
	return p.name
}

// Type returns the parameter type.
func (p *ParameterSpec) Type() TypeName {
	return p.typ
}

// AddModifiers adds modifiers. Only vararg, noinline and crossinline are
// allowed on parameters.
func (p *ParameterSpec) AddModifiers(modifiers ...KModifier) *ParameterSpec {
	for _, m := range modifiers {
		requiref(m.valid() && parameterModifiers.contains(m), "unexpected parameter modifier %s", m)
		p.modifiers = p.modifiers.with(m)
	}
	return p
}

// AddAnnotation adds an annotation.
func (p *ParameterSpec) AddAnnotation(a *AnnotationSpec) *ParameterSpec {
	p.annotations = append(p.annotations, a)
	return p
}

// DefaultValue sets the default value expression.
func (p *ParameterSpec) DefaultValue(format string, args ...interface{}) *ParameterSpec {
	return p.DefaultValueCode(CodeBlockOf(format, args...))
}

// DefaultValueCode sets the default value expression.
func (p *ParameterSpec) DefaultValueCode(cb CodeBlock) *ParameterSpec {
	p.defaultValue = &cb
	return p
}

// AddKdoc appends to the parameter documentation, which is emitted as a
// @param tag of the enclosing function or class.
func (p *ParameterSpec) AddKdoc(format string, args ...interface{}) *ParameterSpec {
	p.kdoc = p.kdoc.ToBuilder().Add(format, args...).Build()
	return p
}

// String renders the parameter with fully qualified names.
func (p *ParameterSpec) String() string {
	return renderString(func(w *codeWriter) {
		p.emit(w, true, true)
	})
}

func (p *ParameterSpec) copy() *ParameterSpec {
	c := *p
	c.annotations = slices.Clone(p.annotations)
	return &c
}

func (p *ParameterSpec) emit(w *codeWriter, includeType, inlineAnnotations bool) {
	w.emitAnnotations(p.annotations, inlineAnnotations)
	w.emitModifiers(p.modifiers, 0)
	if p.name != "" {
		w.emitCode("%N", p.name)
		if includeType {
			w.emitCode(":·")
		}
	}
	if includeType {
		w.emitCode("%T", p.typ)
	}
	p.emitDefaultValue(w)
}

func (p *ParameterSpec) emitDefaultValue(w *codeWriter) {
	if p.defaultValue == nil {
		return
	}
	if p.defaultValue.hasStatements() {
		w.emitCode(" = %L", *p.defaultValue)
	} else {
		w.emitCode(" = «%L»", *p.defaultValue)
	}
}

// emitParameterList writes params in parentheses. More than two
// parameters, or forceNewLines, put each parameter on its own line with a
// trailing comma. each emits one parameter; nil means the full parameter.
func emitParameterList(w *codeWriter, params []*ParameterSpec, forceNewLines bool, each func(p *ParameterSpec)) {
	if each == nil {
		each = func(p *ParameterSpec) { p.emit(w, true, true) }
	}
	w.emit("(")
	if len(params) > 0 {
		newLines := len(params) > 2 || forceNewLines
		if newLines {
			w.emit("\n")
			w.indent(1)
		}
		for i, p := range params {
			if i > 0 && !newLines {
				w.emit(", ")
			}
			each(p)
			if newLines {
				w.emit(",\n")
			}
		}
		if newLines {
			w.unindent(1)
		}
	}
	w.emit(")")
}

package kotlinpoet

import (
	"slices"
	"strings"
)

const (
	constructorName = "constructor()"
	getterName      = "get()"
	setterName      = "set()"
)

var (
	returnPrefix       = CodeBlockOf("return ")
	returnPrefixNbsp   = CodeBlockOf("return" + NonWrappingSpace)
	throwPrefix        = CodeBlockOf("throw ")
	throwPrefixNbsp    = CodeBlockOf("throw" + NonWrappingSpace)
	returnWithSpace    = "return "
	returnWithoutBreak = "return" + NonWrappingSpace
)

// FunSpec is a function, constructor or property accessor.
type FunSpec struct {
	name                    string
	kdoc                    CodeBlock
	returnKdoc              CodeBlock
	receiverKdoc            CodeBlock
	annotations             []*AnnotationSpec
	modifiers               modifierSet
	typeVariables           []*TypeVariableName
	contextReceivers        []TypeName
	receiverType            TypeName
	returnType              TypeName
	parameters              []*ParameterSpec
	delegateConstructor     string
	delegateConstructorArgs []CodeBlock
	body                    CodeBlockBuilder
}

// NewFunSpec returns a function named name that returns Unit.
func NewFunSpec(name string) *FunSpec {
	requiref(name != "", "function name is empty")
	return &FunSpec{name: name, returnType: UnitType}
}

// NewFunSpecFor returns a function implementing member. Operator members
// get the operator modifier.
func NewFunSpecFor(member MemberName) *FunSpec {
	f := NewFunSpec(member.simpleName)
	if member.operator != NoOperator {
		f.AddModifiers(Operator)
	}
	return f
}

// NewConstructor returns a constructor, for use as a primary or secondary
// constructor of a class.
func NewConstructor() *FunSpec {
	return &FunSpec{name: constructorName, returnType: UnitType}
}

// NewGetter returns a property getter.
func NewGetter() *FunSpec {
	return &FunSpec{name: getterName, returnType: UnitType}
}

// NewSetter returns a property setter.
func NewSetter() *FunSpec {
	return &FunSpec{name: setterName, returnType: UnitType}
}

func funName(f *FunSpec) string {
	if f == nil {
		return "<nil>"
	}
	return f.name
}

// Name returns the function name. Constructors and accessors have the
// names "constructor()", "get()" and "set()".
func (f *FunSpec) Name() string {
	return f.name
}

// IsConstructor reports whether f was made with NewConstructor.
func (f *FunSpec) IsConstructor() bool {
	return f.name == constructorName
}

// IsAccessor reports whether f is a getter or setter.
func (f *FunSpec) IsAccessor() bool {
	return f.name == getterName || f.name == setterName
}

// Parameters returns the parameters, in order.
func (f *FunSpec) Parameters() []*ParameterSpec {
	return slices.Clone(f.parameters)
}

// Body returns the function body.
func (f *FunSpec) Body() CodeBlock {
	return f.body.Build()
}

// AddKdoc appends to the documentation.
func (f *FunSpec) AddKdoc(format string, args ...interface{}) *FunSpec {
	f.kdoc = f.kdoc.ToBuilder().Add(format, args...).Build()
	return f
}

// AddAnnotation adds an annotation.
func (f *FunSpec) AddAnnotation(a *AnnotationSpec) *FunSpec {
	f.annotations = append(f.annotations, a)
	return f
}

// AddModifiers adds modifiers.
func (f *FunSpec) AddModifiers(modifiers ...KModifier) *FunSpec {
	for _, m := range modifiers {
		f.modifiers = f.modifiers.with(m)
	}
	return f
}

// AddTypeVariable adds a type variable.
func (f *FunSpec) AddTypeVariable(tv *TypeVariableName) *FunSpec {
	requiref(!f.IsAccessor(), "%s cannot have type variables", f.name)
	f.typeVariables = append(f.typeVariables, tv)
	return f
}

// ContextReceivers sets the context receivers.
func (f *FunSpec) ContextReceivers(receivers ...TypeName) *FunSpec {
	requiref(!f.IsConstructor(), "constructors cannot have context receivers")
	requiref(!f.IsAccessor(), "%s cannot have context receivers", f.name)
	f.contextReceivers = slices.Clone(receivers)
	return f
}

// Receiver makes f an extension function of receiver.
func (f *FunSpec) Receiver(receiver TypeName) *FunSpec {
	requiref(!f.IsConstructor(), "%s cannot have receiver type", f.name)
	f.receiverType = receiver
	return f
}

// ReceiverKdoc documents the receiver with a @receiver tag.
func (f *FunSpec) ReceiverKdoc(format string, args ...interface{}) *FunSpec {
	f.receiverKdoc = CodeBlockOf(format, args...)
	return f
}

// Returns sets the return type.
func (f *FunSpec) Returns(returnType TypeName) *FunSpec {
	requiref(!f.IsConstructor() && !f.IsAccessor(), "%s cannot have a return type", f.name)
	requiref(returnType != nil, "return type is nil")
	f.returnType = returnType
	return f
}

// ReturnsKdoc documents the return value with a @return tag.
func (f *FunSpec) ReturnsKdoc(format string, args ...interface{}) *FunSpec {
	f.returnKdoc = CodeBlockOf(format, args...)
	return f
}

// AddParameter adds a parameter.
func (f *FunSpec) AddParameter(p *ParameterSpec) *FunSpec {
	f.parameters = append(f.parameters, p)
	return f
}

// AddParam adds a parameter with the given name, type and modifiers.
func (f *FunSpec) AddParam(name string, typ TypeName, modifiers ...KModifier) *FunSpec {
	return f.AddParameter(NewParameterSpec(name, typ, modifiers...))
}

// CallThisConstructor makes a secondary constructor delegate to another
// constructor of the same class.
func (f *FunSpec) CallThisConstructor(args ...CodeBlock) *FunSpec {
	return f.callConstructor("this", args)
}

// CallSuperConstructor makes a secondary constructor delegate to a
// constructor of the superclass.
func (f *FunSpec) CallSuperConstructor(args ...CodeBlock) *FunSpec {
	return f.callConstructor("super", args)
}

func (f *FunSpec) callConstructor(constructor string, args []CodeBlock) *FunSpec {
	requiref(f.IsConstructor(), "only constructors can delegate to other constructors")
	f.delegateConstructor = constructor
	f.delegateConstructorArgs = slices.Clone(args)
	return f
}

// AddCode appends code to the body.
func (f *FunSpec) AddCode(format string, args ...interface{}) *FunSpec {
	f.body.Add(format, args...)
	return f
}

// AddNamedCode appends code with named arguments to the body.
func (f *FunSpec) AddNamedCode(format string, args map[string]interface{}) *FunSpec {
	f.body.AddNamed(format, args)
	return f
}

// AddCodeBlock appends cb to the body.
func (f *FunSpec) AddCodeBlock(cb CodeBlock) *FunSpec {
	f.body.AddCode(cb)
	return f
}

// AddComment appends a // comment line to the body.
func (f *FunSpec) AddComment(format string, args ...interface{}) *FunSpec {
	f.body.Add("//·"+strings.ReplaceAll(format, " ", NonWrappingSpace)+"\n", args...)
	return f
}

// AddStatement appends a statement to the body.
func (f *FunSpec) AddStatement(format string, args ...interface{}) *FunSpec {
	f.body.AddStatement(format, args...)
	return f
}

// BeginControlFlow opens a block in the body. See
// CodeBlockBuilder.BeginControlFlow.
func (f *FunSpec) BeginControlFlow(controlFlow string, args ...interface{}) *FunSpec {
	f.body.BeginControlFlow(controlFlow, args...)
	return f
}

// NextControlFlow closes the open block and starts another.
func (f *FunSpec) NextControlFlow(controlFlow string, args ...interface{}) *FunSpec {
	f.body.NextControlFlow(controlFlow, args...)
	return f
}

// EndControlFlow closes the open block.
func (f *FunSpec) EndControlFlow() *FunSpec {
	f.body.EndControlFlow()
	return f
}

// String renders the function as a member of a class named Constructor,
// with fully qualified names.
func (f *FunSpec) String() string {
	return renderString(func(w *codeWriter) {
		f.emit(w, "Constructor", newModifierSet(Public), true)
	})
}

func (f *FunSpec) parameter(name string) *ParameterSpec {
	for _, p := range f.parameters {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (f *FunSpec) isExternalGetter() bool {
	return f.name == getterName && f.modifiers.contains(External)
}

func (f *FunSpec) isEmptySetter() bool {
	return f.name == setterName && len(f.parameters) == 0
}

// isRedundantAccessor reports whether an accessor adds nothing to the
// default one, so it can be left out.
func (f *FunSpec) isRedundantAccessor() bool {
	return f.IsAccessor() && f.body.IsEmpty() && len(f.parameters) == 0 &&
		f.modifiers.isEmpty() && len(f.annotations) == 0 && f.kdoc.IsEmpty()
}

func (f *FunSpec) check() {
	body := !f.body.IsEmpty()
	requiref(!body || !f.modifiers.containsAny(Abstract, Expect), "abstract or expect function %s cannot have code", f.name)
	switch f.name {
	case getterName:
		requiref(!f.isExternalGetter() || !body, "external getter cannot have code")
		requiref(len(f.parameters) == 0, "%s cannot have parameters", f.name)
	case setterName:
		requiref(len(f.parameters) <= 1, "%s can have at most one parameter", f.name)
		requiref(len(f.parameters) > 0 || !body, "parameterless setter cannot have code")
	}
	if !f.modifiers.contains(Inline) {
		for _, tv := range f.typeVariables {
			requiref(!tv.reified, "only type parameters of inline functions can be reified")
		}
	}
}

func (f *FunSpec) emit(w *codeWriter, enclosingName string, implicit modifierSet, includeKdocTags bool) {
	f.check()
	body := f.body.Build()
	if includeKdocTags {
		w.emitKdoc(f.kdocWithTags())
	} else {
		w.emitKdoc(f.kdoc.ensureEndsWithNewLine())
	}
	w.emitContextReceivers(f.contextReceivers, "\n")
	w.emitAnnotations(f.annotations, false)
	w.emitModifiers(f.modifiers, implicit)

	if !f.IsConstructor() && !f.IsAccessor() {
		w.emitCode("fun ")
	}
	if len(f.typeVariables) > 0 {
		w.emitTypeVariables(f.typeVariables)
		w.emit(" ")
	}
	f.emitSignature(w, body)
	w.emitWhereBlock(f.typeVariables)

	if f.shouldOmitBody(implicit, body) {
		w.emit("\n")
		return
	}
	if expr, ok := asExpressionBody(body); ok {
		w.emitCodeBlock(CodeBlockOf(" = %L", expr), false, true)
	} else if !f.isEmptySetter() {
		w.emitCode(" {\n")
		w.indent(1)
		w.emitCodeBlock(returnsWithoutLinebreak(body), false, true)
		w.unindent(1)
		w.emit("}\n")
	} else {
		w.emit("\n")
	}
}

func (f *FunSpec) shouldOmitBody(implicit modifierSet, body CodeBlock) bool {
	all := f.modifiers.union(implicit)
	if f.modifiers.contains(Abstract) || all.contains(Expect) {
		requiref(body.IsEmpty(), "function %s cannot have code", f.name)
		return true
	}
	return body.IsEmpty() && (f.IsConstructor() || all.contains(External) || implicit.contains(Abstract))
}

func (f *FunSpec) emitSignature(w *codeWriter, body CodeBlock) {
	switch {
	case f.IsConstructor():
		w.emitCode("constructor")
	case f.name == getterName:
		w.emitCode("get")
	case f.name == setterName:
		w.emitCode("set")
	default:
		if f.receiverType != nil {
			if _, ok := f.receiverType.(*LambdaTypeName); ok {
				w.emitCode("(%T).", f.receiverType)
			} else {
				w.emitCode("%T.", f.receiverType)
			}
		}
		w.emitCode("%N", f.name)
	}

	if !f.isEmptySetter() && !f.isExternalGetter() {
		emitParameterList(w, f.parameters, false, func(p *ParameterSpec) {
			p.emit(w, f.name != setterName, true)
		})
	}

	if !TypesEqual(f.returnType, UnitType) || f.emitUnitReturnType(body) {
		w.emitCode(": %T", f.returnType)
	}

	if f.delegateConstructor != "" {
		w.emitCodeBlock(JoinToCodeWith(f.delegateConstructorArgs, ", ", " : "+f.delegateConstructor+"(", ")"), false, false)
	}
}

// emitUnitReturnType reports whether an explicit `: Unit` is needed, which
// is only the case for expression bodies.
func (f *FunSpec) emitUnitReturnType(body CodeBlock) bool {
	if f.IsConstructor() || f.IsAccessor() {
		return false
	}
	_, ok := asExpressionBody(body)
	return ok
}

func (f *FunSpec) kdocWithTags() CodeBlock {
	kdoc := f.kdoc.ensureEndsWithNewLine()
	b := kdoc.ToBuilder()
	hasDoc := !kdoc.IsEmpty()
	newLineAdded := false
	if !f.receiverKdoc.IsEmpty() {
		if hasDoc {
			b.Add("\n")
			newLineAdded = true
		}
		b.Add("@receiver %L", f.receiverKdoc.ensureEndsWithNewLine())
	}
	for i, p := range f.parameters {
		if p.kdoc.IsEmpty() {
			continue
		}
		if !newLineAdded && i == 0 && hasDoc {
			b.Add("\n")
			newLineAdded = true
		}
		b.Add("@param %L %L", p.name, p.kdoc.ensureEndsWithNewLine())
	}
	if !f.returnKdoc.IsEmpty() {
		if !newLineAdded && hasDoc {
			b.Add("\n")
		}
		b.Add("@return %L", f.returnKdoc.ensureEndsWithNewLine())
	}
	return b.Build()
}

// asExpressionBody returns the expression of a body that is a single
// return or throw statement.
func asExpressionBody(body CodeBlock) (CodeBlock, bool) {
	cb := body.trim()
	if cb.IsEmpty() || cb.hasUnmatchedClosingStatement() {
		return CodeBlock{}, false
	}
	if expr, ok := cb.withoutPrefix(returnPrefix); ok {
		return expr, true
	}
	if expr, ok := cb.withoutPrefix(returnPrefixNbsp); ok {
		return expr, true
	}
	if _, ok := cb.withoutPrefix(throwPrefix); ok {
		return cb, true
	}
	if _, ok := cb.withoutPrefix(throwPrefixNbsp); ok {
		return cb, true
	}
	return CodeBlock{}, false
}

// returnsWithoutLinebreak keeps the line wrapper from breaking between
// `return` and its expression.
func returnsWithoutLinebreak(body CodeBlock) CodeBlock {
	var b *CodeBlockBuilder
	for i, part := range body.formatParts {
		if strings.HasPrefix(part, returnWithSpace) {
			if b == nil {
				b = body.ToBuilder()
			}
			b.formatParts[i] = strings.Replace(part, returnWithSpace, returnWithoutBreak, 1)
		}
	}
	if b == nil {
		return body
	}
	return b.Build()
}

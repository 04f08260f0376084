package kotlinpoet

import (
	"fmt"
	"slices"
)

// TypeKind is an enumeration of the allowed categories of TypeNames.
type TypeKind int

const (
	KindInvalid TypeKind = iota
	// The type is a class, interface or object, possibly nested. The type is
	// a *ClassName.
	KindClass
	// The type is a generic class applied to type arguments, like
	// List<String>. The type is a *ParameterizedTypeName.
	KindParameterized
	// The type is a function type, like (Int) -> String. The type is a
	// *LambdaTypeName.
	KindLambda
	// The type is a use-site variance projection, like `out Number` or `*`.
	// It is only valid as a type argument. The type is a *WildcardTypeName.
	KindWildcard
	// The type is a reference to a type parameter, like T. The type is a
	// *TypeVariableName.
	KindTypeVariable
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindParameterized:
		return "parameterized"
	case KindLambda:
		return "lambda"
	case KindWildcard:
		return "wildcard"
	case KindTypeVariable:
		return "type variable"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// TypeName is a reference to a Kotlin type, as it appears at a use site. It
// is one of *ClassName, *ParameterizedTypeName, *LambdaTypeName,
// *WildcardTypeName or *TypeVariableName. TypeNames are immutable; the
// methods that appear to modify one return a copy.
//
// The String method renders the type with all class names fully qualified.
type TypeName interface {
	fmt.Stringer
	// Kind returns the kind of type this instance represents.
	Kind() TypeKind
	// IsNullable reports whether the type is marked with '?'.
	IsNullable() bool
	// Annotations returns the type-use annotations, like @Nullable in
	// `@Nullable String`.
	Annotations() []*AnnotationSpec

	copyType(nullable bool, annotations []*AnnotationSpec) TypeName
	// emitType writes the type without its annotations and without the
	// trailing '?'.
	emitType(w *codeWriter)
}

// typeBase holds what all TypeName kinds share.
type typeBase struct {
	nullable    bool
	annotations []*AnnotationSpec
}

func (b *typeBase) IsNullable() bool {
	return b.nullable
}

func (b *typeBase) Annotations() []*AnnotationSpec {
	return slices.Clone(b.annotations)
}

func (b *typeBase) isAnnotated() bool {
	return len(b.annotations) > 0
}

// Nullable returns a copy of t marked nullable.
func Nullable(t TypeName) TypeName {
	return t.copyType(true, t.Annotations())
}

// NonNullable returns a copy of t that is not marked nullable.
func NonNullable(t TypeName) TypeName {
	return t.copyType(false, t.Annotations())
}

// Annotated returns a copy of t with the given annotations added.
func Annotated(t TypeName, annotations ...*AnnotationSpec) TypeName {
	return t.copyType(t.IsNullable(), append(t.Annotations(), annotations...))
}

// WithoutAnnotations returns a copy of t with no type-use annotations.
func WithoutAnnotations(t TypeName) TypeName {
	return t.copyType(t.IsNullable(), nil)
}

// emitTypeName writes a complete type use: annotations, the type itself and
// the nullable marker.
func emitTypeName(w *codeWriter, t TypeName) {
	emitTypeAnnotations(w, t)
	t.emitType(w)
	emitNullable(w, t)
}

func emitTypeAnnotations(w *codeWriter, t TypeName) {
	for _, a := range t.Annotations() {
		a.emit(w, true, false)
		w.emit(" ")
	}
}

func emitNullable(w *codeWriter, t TypeName) {
	if t.IsNullable() {
		w.emit("?")
	}
}

func typeString(t TypeName) string {
	return renderString(func(w *codeWriter) {
		w.emitCode("%T", t)
	})
}

// TypesEqual reports whether a and b denote the same type use, including
// nullability and annotations. Type variables also compare their bounds,
// variance and reified flag.
func TypesEqual(a, b TypeName) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.String() != b.String() {
		return false
	}
	if av, ok := a.(*TypeVariableName); ok {
		bv := b.(*TypeVariableName)
		return av.variance == bv.variance && av.reified == bv.reified &&
			slices.EqualFunc(av.bounds, bv.bounds, TypesEqual)
	}
	return true
}

// ParameterizedTypeName is a generic class applied to type arguments, like
// Map<String, Int>.
type ParameterizedTypeName struct {
	typeBase
	enclosingType TypeName
	rawType       *ClassName
	typeArguments []TypeName
}

var _ TypeName = (*ParameterizedTypeName)(nil)

// Parameterized returns rawType applied to typeArguments. At least one type
// argument is required.
func Parameterized(rawType *ClassName, typeArguments ...TypeName) *ParameterizedTypeName {
	requiref(len(typeArguments) > 0, "no type arguments: %s", rawType.CanonicalName())
	return newParameterized(nil, rawType, typeArguments)
}

func newParameterized(enclosing TypeName, rawType *ClassName, typeArguments []TypeName) *ParameterizedTypeName {
	requiref(enclosing != nil || len(typeArguments) > 0, "no type arguments: %s", rawType.CanonicalName())
	for _, t := range typeArguments {
		requiref(t != nil, "type argument of %s is nil", rawType.CanonicalName())
	}
	return &ParameterizedTypeName{
		enclosingType: enclosing,
		rawType:       NonNullable(rawType).(*ClassName),
		typeArguments: slices.Clone(typeArguments),
	}
}

// NestedClass returns a parameterized type for the class named name, nested
// inside this type, applied to typeArguments. The nested class may take no
// type arguments, as in Outer<String>.Inner.
func (p *ParameterizedTypeName) NestedClass(name string, typeArguments ...TypeName) *ParameterizedTypeName {
	return newParameterized(p, p.rawType.NestedClass(name), typeArguments)
}

func (p *ParameterizedTypeName) Kind() TypeKind {
	return KindParameterized
}

// RawType returns the generic class, like Map for Map<String, Int>.
func (p *ParameterizedTypeName) RawType() *ClassName {
	return p.rawType
}

// TypeArguments returns the type arguments, in order.
func (p *ParameterizedTypeName) TypeArguments() []TypeName {
	return slices.Clone(p.typeArguments)
}

// EnclosingType returns the parameterized type this one is nested in, or nil.
func (p *ParameterizedTypeName) EnclosingType() TypeName {
	return p.enclosingType
}

func (p *ParameterizedTypeName) String() string {
	return typeString(p)
}

func (p *ParameterizedTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	c := *p
	c.nullable = nullable
	c.annotations = annotations
	return &c
}

func (p *ParameterizedTypeName) emitType(w *codeWriter) {
	if p.enclosingType != nil {
		emitTypeAnnotations(w, p.enclosingType)
		p.enclosingType.emitType(w)
		w.emit("." + p.rawType.SimpleName())
	} else {
		emitTypeAnnotations(w, p.rawType)
		p.rawType.emitType(w)
	}
	if len(p.typeArguments) > 0 {
		w.emit("<")
		for i, arg := range p.typeArguments {
			if i > 0 {
				w.emit(",·")
			}
			emitTypeName(w, arg)
		}
		w.emit(">")
	}
}

// WildcardTypeName is a use-site variance projection: `out T`, `in T` or
// the star projection `*`.
type WildcardTypeName struct {
	typeBase
	outType TypeName
	inType  TypeName
}

var _ TypeName = (*WildcardTypeName)(nil)

// ProducerOf returns `out t`. ProducerOf(NullableAny) is the star projection.
func ProducerOf(t TypeName) *WildcardTypeName {
	requiref(t != nil, "wildcard bound is nil")
	return &WildcardTypeName{outType: t}
}

// ConsumerOf returns `in t`.
func ConsumerOf(t TypeName) *WildcardTypeName {
	requiref(t != nil, "wildcard bound is nil")
	return &WildcardTypeName{outType: NullableAny, inType: t}
}

func (t *WildcardTypeName) Kind() TypeKind {
	return KindWildcard
}

// OutType returns the upper bound. It is Any? for consumer wildcards.
func (t *WildcardTypeName) OutType() TypeName {
	return t.outType
}

// InType returns the lower bound, or nil for producer wildcards.
func (t *WildcardTypeName) InType() TypeName {
	return t.inType
}

func (t *WildcardTypeName) isStar() bool {
	c, ok := t.outType.(*ClassName)
	return t.inType == nil && ok && c.sameClass(AnyType) && c.nullable && !c.isAnnotated()
}

func (t *WildcardTypeName) String() string {
	return typeString(t)
}

func (t *WildcardTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	c := *t
	c.nullable = nullable
	c.annotations = annotations
	return &c
}

func (t *WildcardTypeName) emitType(w *codeWriter) {
	switch {
	case t.inType != nil:
		w.emitCode("in %T", t.inType)
	case t.isStar():
		w.emit("*")
	default:
		w.emitCode("out %T", t.outType)
	}
}

// TypeVariableName is a reference to a type parameter. When declared (in a
// class, function, property or type alias) its bounds, variance and reified
// flag are emitted too.
type TypeVariableName struct {
	typeBase
	name     string
	bounds   []TypeName
	variance KModifier
	reified  bool
}

var _ TypeName = (*TypeVariableName)(nil)

// noVariance is the variance of an invariant type variable.
const noVariance KModifier = -1

// NewTypeVariable returns a type variable named name. With no bounds the
// variable is bounded by Any?.
func NewTypeVariable(name string, bounds ...TypeName) *TypeVariableName {
	requiref(name != "", "type variable name is empty")
	if len(bounds) == 0 {
		bounds = []TypeName{NullableAny}
	}
	return &TypeVariableName{name: name, bounds: slices.Clone(bounds), variance: noVariance}
}

func (t *TypeVariableName) Kind() TypeKind {
	return KindTypeVariable
}

// Name returns the name of the variable, like T.
func (t *TypeVariableName) Name() string {
	return t.name
}

// Bounds returns the upper bounds of the variable.
func (t *TypeVariableName) Bounds() []TypeName {
	return slices.Clone(t.bounds)
}

// IsReified reports whether the variable is declared `reified`.
func (t *TypeVariableName) IsReified() bool {
	return t.reified
}

// WithVariance returns a copy with declaration-site variance In or Out.
func (t *TypeVariableName) WithVariance(variance KModifier) *TypeVariableName {
	requiref(variance == In || variance == Out, "%s is not a variance modifier", variance)
	c := *t
	c.variance = variance
	return &c
}

// Reified returns a copy marked `reified`.
func (t *TypeVariableName) Reified() *TypeVariableName {
	c := *t
	c.reified = true
	return &c
}

// WithBounds returns a copy with the given bounds appended. An Any? bound is
// dropped once other bounds are present.
func (t *TypeVariableName) WithBounds(bounds ...TypeName) *TypeVariableName {
	c := *t
	c.bounds = nil
	for _, b := range append(slices.Clone(t.bounds), bounds...) {
		if !TypesEqual(b, NullableAny) {
			c.bounds = append(c.bounds, b)
		}
	}
	if len(c.bounds) == 0 {
		c.bounds = []TypeName{NullableAny}
	}
	return &c
}

func (t *TypeVariableName) String() string {
	return typeString(t)
}

func (t *TypeVariableName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	c := *t
	c.nullable = nullable
	c.annotations = annotations
	return &c
}

func (t *TypeVariableName) emitType(w *codeWriter) {
	w.emit(t.name)
}

// LambdaTypeName is a function type, like `suspend String.(Int) -> Unit`.
type LambdaTypeName struct {
	typeBase
	receiver         TypeName
	contextReceivers []TypeName
	parameters       []*ParameterSpec
	returnType       TypeName
	suspending       bool
}

var _ TypeName = (*LambdaTypeName)(nil)

// LambdaOf returns a function type from unnamed parameter types to
// returnType.
func LambdaOf(returnType TypeName, parameterTypes ...TypeName) *LambdaTypeName {
	params := make([]*ParameterSpec, len(parameterTypes))
	for i, t := range parameterTypes {
		params[i] = NewUnnamedParameter(t)
	}
	return NewLambdaTypeName(nil, params, returnType)
}

// NewLambdaTypeName returns a function type. receiver may be nil. Parameters
// must not have modifiers, annotations or default values.
func NewLambdaTypeName(receiver TypeName, parameters []*ParameterSpec, returnType TypeName) *LambdaTypeName {
	requiref(returnType != nil, "lambda return type is nil")
	for _, p := range parameters {
		requiref(len(p.annotations) == 0, "Parameters with annotations are not allowed")
		requiref(p.modifiers.isEmpty(), "Parameters with modifiers are not allowed")
		requiref(p.defaultValue == nil, "Parameters with default values are not allowed")
	}
	return &LambdaTypeName{
		receiver:   receiver,
		parameters: slices.Clone(parameters),
		returnType: returnType,
	}
}

// Suspending returns a copy marked `suspend`.
func (t *LambdaTypeName) Suspending() *LambdaTypeName {
	c := *t
	c.suspending = true
	return &c
}

// WithContextReceivers returns a copy with the given context receivers.
func (t *LambdaTypeName) WithContextReceivers(receivers ...TypeName) *LambdaTypeName {
	c := *t
	c.contextReceivers = slices.Clone(receivers)
	return &c
}

func (t *LambdaTypeName) Kind() TypeKind {
	return KindLambda
}

// Receiver returns the receiver type, or nil.
func (t *LambdaTypeName) Receiver() TypeName {
	return t.receiver
}

// Parameters returns the parameters, in order.
func (t *LambdaTypeName) Parameters() []*ParameterSpec {
	return slices.Clone(t.parameters)
}

// ReturnType returns the return type.
func (t *LambdaTypeName) ReturnType() TypeName {
	return t.returnType
}

// IsSuspending reports whether the function type is `suspend`.
func (t *LambdaTypeName) IsSuspending() bool {
	return t.suspending
}

func (t *LambdaTypeName) String() string {
	return typeString(t)
}

func (t *LambdaTypeName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	c := *t
	c.nullable = nullable
	c.annotations = annotations
	return &c
}

func (t *LambdaTypeName) emitType(w *codeWriter) {
	if t.nullable {
		w.emit("(")
	}
	if t.suspending {
		w.emit("suspend ")
	}
	w.emitContextReceivers(t.contextReceivers, " ")
	if t.receiver != nil {
		if len(t.receiver.Annotations()) > 0 {
			w.emitCode("(%T).", t.receiver)
		} else {
			w.emitCode("%T.", t.receiver)
		}
	}
	emitParameterList(w, t.parameters, false, nil)
	if _, ok := t.returnType.(*LambdaTypeName); ok {
		w.emitCode(" -> (%T)", t.returnType)
	} else {
		w.emitCode(" -> %T", t.returnType)
	}
	if t.nullable {
		w.emit(")")
	}
}

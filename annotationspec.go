package kotlinpoet

import (
	"slices"
)

// UseSiteTarget selects which element generated from a Kotlin declaration
// an annotation applies to, as in @get:JvmName("x").
type UseSiteTarget int

const (
	NoUseSiteTarget UseSiteTarget = iota
	FileTarget
	PropertyTarget
	FieldTarget
	GetTarget
	SetTarget
	ReceiverTarget
	ParamTarget
	SetParamTarget
	DelegateTarget
)

var useSiteKeywords = [...]string{
	FileTarget:     "file",
	PropertyTarget: "property",
	FieldTarget:    "field",
	GetTarget:      "get",
	SetTarget:      "set",
	ReceiverTarget: "receiver",
	ParamTarget:    "param",
	SetParamTarget: "setparam",
	DelegateTarget: "delegate",
}

// Keyword returns the target as written before the colon.
func (t UseSiteTarget) Keyword() string {
	if t <= NoUseSiteTarget || int(t) >= len(useSiteKeywords) {
		return ""
	}
	return useSiteKeywords[t]
}

// AnnotationSpec is an annotation on a declaration or type use.
type AnnotationSpec struct {
	typ           TypeName
	members       []CodeBlock
	useSiteTarget UseSiteTarget
}

// NewAnnotationSpec returns an annotation of the given type, which must be
// a class or a parameterized class.
func NewAnnotationSpec(typ TypeName) *AnnotationSpec {
	switch typ.(type) {
	case *ClassName, *ParameterizedTypeName:
	default:
		failf("annotation type must be a class, got %v", typ)
	}
	return &AnnotationSpec{typ: typ}
}

// TypeName returns the annotation type.
func (a *AnnotationSpec) TypeName() TypeName {
	return a.typ
}

// Members returns the annotation arguments.
func (a *AnnotationSpec) Members() []CodeBlock {
	return slices.Clone(a.members)
}

// UseSiteTarget returns the use-site target, or NoUseSiteTarget.
func (a *AnnotationSpec) UseSiteTarget() UseSiteTarget {
	return a.useSiteTarget
}

// AddMember adds an argument, such as `name = %S`.
func (a *AnnotationSpec) AddMember(format string, args ...interface{}) *AnnotationSpec {
	return a.AddMemberCode(CodeBlockOf(format, args...))
}

// AddMemberCode adds an argument.
func (a *AnnotationSpec) AddMemberCode(cb CodeBlock) *AnnotationSpec {
	a.members = append(a.members, cb)
	return a
}

// WithUseSiteTarget sets the use-site target.
func (a *AnnotationSpec) WithUseSiteTarget(t UseSiteTarget) *AnnotationSpec {
	a.useSiteTarget = t
	return a
}

// String renders the annotation inline with fully qualified names.
func (a *AnnotationSpec) String() string {
	return renderString(func(w *codeWriter) {
		a.emit(w, true, false)
	})
}

// emit writes the annotation. asParameter is set when the annotation is an
// argument of another annotation, where it is written without '@' and
// always with parentheses.
func (a *AnnotationSpec) emit(w *codeWriter, inline, asParameter bool) {
	if !asParameter {
		w.emit("@")
	}
	if a.useSiteTarget != NoUseSiteTarget {
		w.emit(a.useSiteTarget.Keyword() + ":")
	}
	w.emitCode("%T", a.typ)
	if len(a.members) == 0 && !asParameter {
		return
	}

	whitespace, separator, suffix := "", ", ", ""
	if !inline {
		whitespace, separator = "\n", ",\n"
		if len(a.members) > 1 {
			suffix = ","
		}
	}
	w.emit("(")
	if len(a.members) > 1 {
		w.emit(whitespace)
		w.indent(1)
	}
	members := make([]CodeBlock, len(a.members))
	for i, m := range a.members {
		if inline {
			m = m.replaceAll(Indent, "").replaceAll(Unindent, "")
		}
		members[i] = m
	}
	w.emitCodeBlock(JoinToCodeWith(members, separator, "", suffix), true, false)
	if len(a.members) > 1 {
		w.unindent(1)
		w.emit(whitespace)
	}
	w.emit(")")
}

package kotlinpoet

// MemberName is a reference to a function or property, used with %M. A
// member is either top-level in a package or declared in a class.
type MemberName struct {
	packageName    string
	enclosingClass *ClassName
	simpleName     string
	operator       KOperator
	isExtension    bool
}

// NewMember returns the top-level member simpleName in package pkg.
func NewMember(pkg, simpleName string) MemberName {
	requiref(simpleName != "", "member name is empty")
	return MemberName{packageName: pkg, simpleName: simpleName}
}

// NewExtensionMember returns the top-level extension member simpleName in
// package pkg. Extension members are always imported, because Kotlin has no
// qualified syntax for calling an extension.
func NewExtensionMember(pkg, simpleName string) MemberName {
	m := NewMember(pkg, simpleName)
	m.isExtension = true
	return m
}

// NewMemberInClass returns the member simpleName declared in class c.
func NewMemberInClass(c *ClassName, simpleName string) MemberName {
	requiref(simpleName != "", "member name is empty")
	return MemberName{packageName: c.PackageName(), enclosingClass: c, simpleName: simpleName}
}

// NewOperatorMember returns the operator function for op in package pkg.
// With %M it emits the operator symbol, for example "+=", after importing
// the function.
func NewOperatorMember(pkg string, op KOperator) MemberName {
	requiref(op > NoOperator && op < numOperators, "invalid operator %d", int(op))
	return MemberName{packageName: pkg, simpleName: op.FunctionName(), operator: op}
}

// PackageName returns the package that declares the member.
func (m MemberName) PackageName() string {
	return m.packageName
}

// EnclosingClassName returns the class that declares the member, or nil for
// top-level members.
func (m MemberName) EnclosingClassName() *ClassName {
	return m.enclosingClass
}

// SimpleName returns the name of the member.
func (m MemberName) SimpleName() string {
	return m.simpleName
}

// Operator returns the operator this member overloads, or NoOperator.
func (m MemberName) Operator() KOperator {
	return m.operator
}

// IsExtension reports whether the member is an extension.
func (m MemberName) IsExtension() bool {
	return m.isExtension
}

// CanonicalName returns the fully-qualified name, like "kotlin.io.println".
func (m MemberName) CanonicalName() string {
	switch {
	case m.enclosingClass != nil:
		return m.enclosingClass.CanonicalName() + "." + m.simpleName
	case m.packageName != "":
		return m.packageName + "." + m.simpleName
	default:
		return m.simpleName
	}
}

// Reference returns a callable reference to the member: ::name for top-level
// members and Type::name for class members.
func (m MemberName) Reference() CodeBlock {
	if m.enclosingClass == nil {
		return CodeBlockOf("::%M", m)
	}
	return CodeBlockOf("%T::%N", m.enclosingClass, m.simpleName)
}

func (m MemberName) String() string {
	return m.CanonicalName()
}

func (m MemberName) equal(o MemberName) bool {
	if (m.enclosingClass == nil) != (o.enclosingClass == nil) {
		return false
	}
	if m.enclosingClass != nil && !m.enclosingClass.sameClass(o.enclosingClass) {
		return false
	}
	return m.packageName == o.packageName && m.simpleName == o.simpleName &&
		m.operator == o.operator && m.isExtension == o.isExtension
}

func (m MemberName) emit(w *codeWriter) {
	if m.operator == NoOperator {
		w.emit(escapeSegmentsIfNecessary(w.lookupMemberName(m)))
		return
	}
	w.lookupMemberName(m)
	w.emit(m.operator.Symbol())
}

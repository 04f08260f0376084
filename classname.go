package kotlinpoet

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ClassName is a fully-qualified class, interface or object name, possibly
// nested inside other classes.
type ClassName struct {
	typeBase
	// names[0] is the package (possibly empty), followed by the simple names
	// from outermost to innermost.
	names []string
}

var _ TypeName = (*ClassName)(nil)

// NewClassName returns the class simpleNames nested in order inside package
// pkg. NewClassName("kotlin.collections", "Map", "Entry") is Map.Entry.
func NewClassName(pkg string, simpleNames ...string) *ClassName {
	requiref(len(simpleNames) > 0, "simpleNames must not be empty")
	for _, n := range simpleNames {
		requiref(n != "", "simpleNames must not contain empty items: %q", simpleNames)
	}
	return &ClassName{names: append([]string{pkg}, simpleNames...)}
}

// BestGuess returns a class name for s, assuming that package segments start
// with a lower-case letter and class names start with an upper-case letter.
// It panics with a usage error when s does not fit that pattern.
func BestGuess(s string) *ClassName {
	p := 0
	for p < len(s) {
		r, _ := utf8.DecodeRuneInString(s[p:])
		if !unicode.IsLower(r) {
			break
		}
		dot := strings.IndexByte(s[p:], '.')
		requiref(dot >= 0, "couldn't make a guess for %s", s)
		p += dot + 1
	}
	pkg := ""
	if p > 0 {
		pkg = s[:p-1]
	}
	var simpleNames []string
	for _, part := range strings.Split(s[p:], ".") {
		r, _ := utf8.DecodeRuneInString(part)
		requiref(part != "" && unicode.IsUpper(r), "couldn't make a guess for %s", s)
		simpleNames = append(simpleNames, part)
	}
	return NewClassName(pkg, simpleNames...)
}

func (c *ClassName) Kind() TypeKind {
	return KindClass
}

// PackageName returns the package, like "kotlin.collections" for Map.Entry.
func (c *ClassName) PackageName() string {
	return c.names[0]
}

// SimpleName returns the innermost name, like "Entry" for Map.Entry.
func (c *ClassName) SimpleName() string {
	return c.names[len(c.names)-1]
}

// SimpleNames returns the enclosing classes, outermost first, followed by
// the simple name: ["Map", "Entry"] for Map.Entry.
func (c *ClassName) SimpleNames() []string {
	return slices.Clone(c.names[1:])
}

// CanonicalName returns the fully-qualified name using '.' as separator,
// like "kotlin.collections.Map.Entry".
func (c *ClassName) CanonicalName() string {
	if c.names[0] == "" {
		return strings.Join(c.names[1:], ".")
	}
	return strings.Join(c.names, ".")
}

// ReflectionName returns the JVM binary name, which separates nested classes
// with '$', like "kotlin.collections.Map$Entry".
func (c *ClassName) ReflectionName() string {
	top := c.TopLevelClassName().CanonicalName()
	if len(c.names) == 2 {
		return top
	}
	return top + "$" + strings.Join(c.names[2:], "$")
}

// EnclosingClassName returns the class that c is nested in, or nil for a
// top-level class.
func (c *ClassName) EnclosingClassName() *ClassName {
	if len(c.names) == 2 {
		return nil
	}
	return &ClassName{names: slices.Clone(c.names[:len(c.names)-1])}
}

// TopLevelClassName returns the outermost class in c's nesting chain.
func (c *ClassName) TopLevelClassName() *ClassName {
	return &ClassName{names: slices.Clone(c.names[:2])}
}

// NestedClass returns the class named name nested inside c.
func (c *ClassName) NestedClass(name string) *ClassName {
	requiref(name != "", "nested class name is empty")
	return &ClassName{names: append(slices.Clone(c.names), name)}
}

// PeerClass returns the class named name in the same package and enclosing
// class as c.
func (c *ClassName) PeerClass(name string) *ClassName {
	requiref(name != "", "peer class name is empty")
	names := slices.Clone(c.names)
	names[len(names)-1] = name
	return &ClassName{names: names}
}

// ConstructorReference returns a callable reference to the constructor, like
// ::Foo or Outer::Inner.
func (c *ClassName) ConstructorReference() CodeBlock {
	if enclosing := c.EnclosingClassName(); enclosing != nil {
		return CodeBlockOf("%T::%N", enclosing, c.SimpleName())
	}
	return CodeBlockOf("::%T", c)
}

// Member returns the member simpleName declared in c.
func (c *ClassName) Member(simpleName string) MemberName {
	return NewMemberInClass(c, simpleName)
}

// Nullable returns a nullable copy of c.
func (c *ClassName) Nullable() *ClassName {
	return c.copyType(true, c.annotations).(*ClassName)
}

// Parameterized applies typeArguments to c.
func (c *ClassName) Parameterized(typeArguments ...TypeName) *ParameterizedTypeName {
	return Parameterized(c, typeArguments...)
}

// sameClass reports whether c and o name the same class, ignoring
// nullability and annotations.
func (c *ClassName) sameClass(o *ClassName) bool {
	return o != nil && slices.Equal(c.names, o.names)
}

// compare orders class names by package and simple names.
func (c *ClassName) compare(o *ClassName) int {
	return slices.Compare(c.names, o.names)
}

func (c *ClassName) String() string {
	return typeString(c)
}

func (c *ClassName) copyType(nullable bool, annotations []*AnnotationSpec) TypeName {
	return &ClassName{typeBase: typeBase{nullable: nullable, annotations: annotations}, names: c.names}
}

func (c *ClassName) emitType(w *codeWriter) {
	w.emit(escapeSegmentsIfNecessary(w.lookupName(c)))
}

// Well-known types.
var (
	AnyType          = NewClassName("kotlin", "Any")
	ArrayType        = NewClassName("kotlin", "Array")
	UnitType         = NewClassName("kotlin", "Unit")
	BooleanType      = NewClassName("kotlin", "Boolean")
	ByteType         = NewClassName("kotlin", "Byte")
	ShortType        = NewClassName("kotlin", "Short")
	IntType          = NewClassName("kotlin", "Int")
	LongType         = NewClassName("kotlin", "Long")
	CharType         = NewClassName("kotlin", "Char")
	FloatType        = NewClassName("kotlin", "Float")
	DoubleType       = NewClassName("kotlin", "Double")
	StringType       = NewClassName("kotlin", "String")
	CharSequenceType = NewClassName("kotlin", "CharSequence")
	ComparableType   = NewClassName("kotlin", "Comparable")
	ThrowableType    = NewClassName("kotlin", "Throwable")
	AnnotationType   = NewClassName("kotlin", "Annotation")
	NothingType      = NewClassName("kotlin", "Nothing")
	NumberType       = NewClassName("kotlin", "Number")
	EnumType         = NewClassName("kotlin", "Enum")

	Iterable          = NewClassName("kotlin.collections", "Iterable")
	Collection        = NewClassName("kotlin.collections", "Collection")
	List              = NewClassName("kotlin.collections", "List")
	Set               = NewClassName("kotlin.collections", "Set")
	Map               = NewClassName("kotlin.collections", "Map")
	MapEntry          = Map.NestedClass("Entry")
	MutableIterable   = NewClassName("kotlin.collections", "MutableIterable")
	MutableCollection = NewClassName("kotlin.collections", "MutableCollection")
	MutableList       = NewClassName("kotlin.collections", "MutableList")
	MutableSet        = NewClassName("kotlin.collections", "MutableSet")
	MutableMap        = NewClassName("kotlin.collections", "MutableMap")
	MutableMapEntry   = MutableMap.NestedClass("Entry")

	BooleanArray = NewClassName("kotlin", "BooleanArray")
	ByteArray    = NewClassName("kotlin", "ByteArray")
	CharArray    = NewClassName("kotlin", "CharArray")
	ShortArray   = NewClassName("kotlin", "ShortArray")
	IntArray     = NewClassName("kotlin", "IntArray")
	LongArray    = NewClassName("kotlin", "LongArray")
	FloatArray   = NewClassName("kotlin", "FloatArray")
	DoubleArray  = NewClassName("kotlin", "DoubleArray")

	UByteType  = NewClassName("kotlin", "UByte")
	UShortType = NewClassName("kotlin", "UShort")
	UIntType   = NewClassName("kotlin", "UInt")
	ULongType  = NewClassName("kotlin", "ULong")

	// NullableAny is Any?, the implicit upper bound of type variables.
	NullableAny = AnyType.Nullable()
	// Star is the star projection, *.
	Star = ProducerOf(NullableAny)
)

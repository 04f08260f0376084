package kotlinpoet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassName(t *testing.T) {
	entry := NewClassName("kotlin.collections", "Map", "Entry")
	assert.Equal(t, KindClass, entry.Kind())
	assert.Equal(t, "kotlin.collections", entry.PackageName())
	assert.Equal(t, "Entry", entry.SimpleName())
	assert.Equal(t, []string{"Map", "Entry"}, entry.SimpleNames())
	assert.Equal(t, "kotlin.collections.Map.Entry", entry.CanonicalName())
	assert.Equal(t, "kotlin.collections.Map$Entry", entry.ReflectionName())
	assert.True(t, TypesEqual(Map, entry.EnclosingClassName()))
	assert.True(t, TypesEqual(Map, entry.TopLevelClassName()))
	assert.Nil(t, Map.EnclosingClassName())
	assert.True(t, TypesEqual(MapEntry, entry))
	assert.Equal(t, "kotlin.collections.Map.Key", entry.PeerClass("Key").CanonicalName())

	noPackage := NewClassName("", "Foo", "Bar")
	assert.Equal(t, "Foo.Bar", noPackage.CanonicalName())
	assert.Equal(t, "Foo$Bar", noPackage.ReflectionName())

	assertUsageError(t, func() { NewClassName("com.example") })
	assertUsageError(t, func() { NewClassName("com.example", "Foo", "") })
}

func TestBestGuess(t *testing.T) {
	testCases := []struct {
		input string
		pkg   string
		names []string
	}{
		{"kotlin.String", "kotlin", []string{"String"}},
		{"com.example.Outer.Inner", "com.example", []string{"Outer", "Inner"}},
		{"Widget", "", []string{"Widget"}},
	}
	for _, tc := range testCases {
		c := BestGuess(tc.input)
		assert.Equal(t, tc.pkg, c.PackageName(), tc.input)
		assert.Equal(t, tc.names, c.SimpleNames(), tc.input)
	}
	for _, bad := range []string{"", "kotlin", "com.example.", "com.example.lower", "com..Foo"} {
		assertUsageError(t, func() { BestGuess(bad) })
	}
}

func TestTypeStrings(t *testing.T) {
	widget := NewClassName("com.example", "Widget")
	tv := NewTypeVariable("T")
	testCases := []struct {
		typ  TypeName
		kind TypeKind
		want string
	}{
		{widget, KindClass, "com.example.Widget"},
		{Nullable(widget), KindClass, "com.example.Widget?"},
		{Map.Parameterized(StringType, Nullable(IntType)), KindParameterized,
			"kotlin.collections.Map<kotlin.String, kotlin.Int?>"},
		{Nullable(List.Parameterized(Star)), KindParameterized, "kotlin.collections.List<*>?"},
		{widget.Parameterized(StringType).NestedClass("Part"), KindParameterized,
			"com.example.Widget<kotlin.String>.Part"},
		{ProducerOf(NumberType), KindWildcard, "out kotlin.Number"},
		{ConsumerOf(StringType), KindWildcard, "in kotlin.String"},
		{Star, KindWildcard, "*"},
		{tv, KindTypeVariable, "T"},
		{Nullable(tv), KindTypeVariable, "T?"},
		{LambdaOf(UnitType), KindLambda, "() -> kotlin.Unit"},
		{LambdaOf(BooleanType, StringType, IntType), KindLambda, "(kotlin.String, kotlin.Int) -> kotlin.Boolean"},
		{Nullable(LambdaOf(UnitType, StringType)), KindLambda, "((kotlin.String) -> kotlin.Unit)?"},
		{LambdaOf(UnitType).Suspending(), KindLambda, "suspend () -> kotlin.Unit"},
		{NewLambdaTypeName(StringType, nil, IntType), KindLambda, "kotlin.String.() -> kotlin.Int"},
		{LambdaOf(LambdaOf(UnitType), IntType), KindLambda, "(kotlin.Int) -> (() -> kotlin.Unit)"},
		{NewLambdaTypeName(nil, []*ParameterSpec{NewParameterSpec("name", StringType)}, UnitType), KindLambda,
			"(name: kotlin.String) -> kotlin.Unit"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.kind, tc.typ.Kind(), tc.want)
		assert.Equal(t, tc.want, tc.typ.String())
	}
}

func TestAnnotatedTypes(t *testing.T) {
	ann := NewAnnotationSpec(NewClassName("com.example", "Marker"))
	typ := Annotated(StringType, ann)
	assert.Equal(t, "@com.example.Marker kotlin.String", typ.String())
	assert.Len(t, typ.Annotations(), 1)
	assert.Empty(t, StringType.Annotations())
	assert.Equal(t, "kotlin.String", WithoutAnnotations(typ).String())

	receiver := Annotated(StringType, ann)
	lambda := NewLambdaTypeName(receiver, nil, UnitType)
	assert.Equal(t, "(@com.example.Marker kotlin.String).() -> kotlin.Unit", lambda.String())
}

func TestNullability(t *testing.T) {
	n := Nullable(StringType)
	assert.True(t, n.IsNullable())
	assert.False(t, StringType.IsNullable())
	assert.False(t, NonNullable(n).IsNullable())
	assert.True(t, TypesEqual(StringType, NonNullable(n)))
	assert.False(t, TypesEqual(StringType, n))

	// the raw type of a parameterized type is never nullable
	p := Parameterized(Nullable(List).(*ClassName), StringType)
	assert.False(t, p.RawType().IsNullable())
}

func TestTypeVariables(t *testing.T) {
	tv := NewTypeVariable("T")
	require.Len(t, tv.Bounds(), 1)
	assert.True(t, TypesEqual(NullableAny, tv.Bounds()[0]))

	bounded := tv.WithBounds(NumberType, ComparableType.Parameterized(NewTypeVariable("T")))
	assert.Len(t, bounded.Bounds(), 2)
	assert.False(t, TypesEqual(tv, bounded))
	assert.True(t, TypesEqual(tv, NewTypeVariable("T")))

	out := tv.WithVariance(Out)
	assert.False(t, TypesEqual(tv, out))
	assert.True(t, tv.Reified().IsReified())
	assert.False(t, tv.IsReified())
	assertUsageError(t, func() { tv.WithVariance(Public) })
}

func TestTypesEqual(t *testing.T) {
	assert.True(t, TypesEqual(nil, nil))
	assert.False(t, TypesEqual(StringType, nil))
	assert.True(t, TypesEqual(List.Parameterized(StringType), List.Parameterized(StringType)))
	assert.False(t, TypesEqual(List.Parameterized(StringType), Set.Parameterized(StringType)))
	assert.False(t, TypesEqual(ProducerOf(StringType), ConsumerOf(StringType)))
}

func TestLambdaParameters(t *testing.T) {
	assertUsageError(t, func() {
		NewLambdaTypeName(nil, []*ParameterSpec{NewParameterSpec("x", IntType).DefaultValue("0")}, UnitType)
	})
	assertUsageError(t, func() {
		NewLambdaTypeName(nil, []*ParameterSpec{NewParameterSpec("x", IntType, Vararg)}, UnitType)
	})
	assertUsageError(t, func() { Parameterized(List) })
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "type variable", KindTypeVariable.String())
	assert.Equal(t, "TypeKind(42)", TypeKind(42).String())
}

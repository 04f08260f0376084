package kotlinpoet

import (
	"testing"
)

func TestTypeSpec(t *testing.T) {
	shape := NewClassName("com.example", "Shape")
	drawable := NewClassName("com.example", "Drawable")
	runnable := NewClassName("java.lang", "Runnable")
	testCases := []struct {
		name string
		typ  *TypeSpec
		want string
	}{
		{
			name: "empty class",
			typ:  NewClass("Empty"),
			want: "class Empty\n",
		},
		{
			name: "data class",
			typ: NewClass("Point").
				AddModifiers(Data).
				PrimaryConstructor(NewConstructor().AddParam("x", IntType).AddParam("y", IntType)).
				AddProperty(NewPropertySpec("x", IntType).Initializer("x")).
				AddProperty(NewPropertySpec("y", IntType).Initializer("y")),
			want: `data class Point(
  val x: kotlin.Int,
  val y: kotlin.Int,
)
`,
		},
		{
			name: "constructor parameter that is not a property",
			typ: NewClass("Box").
				PrimaryConstructor(NewConstructor().AddParam("size", IntType)).
				AddProperty(NewPropertySpec("area", IntType).Initializer("size * size")),
			want: `class Box(
  size: kotlin.Int,
) {
  val area: kotlin.Int = size * size
}
`,
		},
		{
			name: "supertypes",
			typ: NewClass("Circle").
				PrimaryConstructor(NewConstructor().AddParam("radius", DoubleType)).
				Superclass(shape).
				AddSuperclassConstructorParameter("%S", "circle").
				AddSuperinterface(drawable),
			want: `class Circle(
  radius: kotlin.Double,
) : com.example.Shape("circle"),
    com.example.Drawable
`,
		},
		{
			name: "supertypes without constructor",
			typ:  NewClass("Square").Superclass(shape).AddSuperinterface(drawable),
			want: "class Square : com.example.Shape(), com.example.Drawable\n",
		},
		{
			name: "interface",
			typ: NewInterface("Named").
				AddProperty(NewPropertySpec("name", StringType)).
				AddFunction(NewFunSpec("describe").Returns(StringType)),
			want: `interface Named {
  val name: kotlin.String

  fun describe(): kotlin.String
}
`,
		},
		{
			name: "object",
			typ: NewObject("Util").
				AddFunction(NewFunSpec("id").AddParam("x", IntType).Returns(IntType).AddStatement("return x")),
			want: `object Util {
  fun id(x: kotlin.Int): kotlin.Int = x
}
`,
		},
		{
			name: "abstract class",
			typ:  NewClass("Base").AddModifiers(Abstract).AddFunction(NewFunSpec("run").AddModifiers(Abstract)),
			want: "abstract class Base {\n  abstract fun run()\n}\n",
		},
		{
			name: "enum",
			typ:  NewEnum("Color").AddEnumConstant("RED", nil).AddEnumConstant("GREEN", nil),
			want: "enum class Color {\n  RED,\n  GREEN,\n}\n",
		},
		{
			name: "enum with constructor",
			typ: NewEnum("Planet").
				PrimaryConstructor(NewConstructor().AddParam("mass", DoubleType)).
				AddProperty(NewPropertySpec("mass", DoubleType).Initializer("mass")).
				AddEnumConstant("EARTH", NewAnonymousClass().AddSuperclassConstructorParameter("%L", 1.5)),
			want: `enum class Planet(
  val mass: kotlin.Double,
) {
  EARTH(1.5),
  ;
}
`,
		},
		{
			name: "enum constant with body",
			typ: NewEnum("Op").
				AddEnumConstant("PLUS", NewAnonymousClass().AddFunction(
					NewFunSpec("apply").AddModifiers(Override).
						AddParam("a", IntType).AddParam("b", IntType).
						Returns(IntType).
						AddStatement("return a + b"))).
				AddFunction(NewFunSpec("apply").AddModifiers(Abstract).
					AddParam("a", IntType).AddParam("b", IntType).
					Returns(IntType)),
			want: `enum class Op {
  PLUS {
    override fun apply(a: kotlin.Int, b: kotlin.Int): kotlin.Int = a + b
  },
  ;

  abstract fun apply(a: kotlin.Int, b: kotlin.Int): kotlin.Int
}
`,
		},
		{
			name: "companion object",
			typ: NewClass("Registry").AddType(NewCompanionObject("").
				AddProperty(NewPropertySpec("DEFAULT", StringType, Const).Initializer("%S", "x"))),
			want: `class Registry {
  companion object {
    const val DEFAULT: kotlin.String = "x"
  }
}
`,
		},
		{
			name: "value class",
			typ: NewValueClass("Id").
				AddAnnotation(NewAnnotationSpec(NewClassName("kotlin.jvm", "JvmInline"))).
				PrimaryConstructor(NewConstructor().AddParam("value", StringType)).
				AddProperty(NewPropertySpec("value", StringType).Initializer("value")),
			want: `@kotlin.jvm.JvmInline
value class Id(
  val value: kotlin.String,
)
`,
		},
		{
			name: "initializer block",
			typ: NewClass("Counter").
				AddProperty(NewPropertySpec("count", IntType).Mutable(true).Initializer("%L", 0)).
				AddInitializerBlock(CodeBlockOf("count = 1\n")),
			want: `class Counter {
  var count: kotlin.Int = 0

  init {
    count = 1
  }
}
`,
		},
		{
			name: "kdoc with constructor parameters",
			typ: NewClass("User").
				AddKdoc("A user.").
				PrimaryConstructor(NewConstructor().AddParameter(NewParameterSpec("name", StringType).AddKdoc("the name"))).
				AddProperty(NewPropertySpec("name", StringType).Initializer("name")),
			want: `/**
 * A user.
 *
 * @param name the name
 */
class User(
  val name: kotlin.String,
)
`,
		},
		{
			name: "generic class",
			typ: NewClass("Box").
				AddTypeVariable(NewTypeVariable("T").WithVariance(Out)).
				PrimaryConstructor(NewConstructor().AddParam("item", NewTypeVariable("T"))).
				AddProperty(NewPropertySpec("item", NewTypeVariable("T")).Initializer("item")),
			want: `class Box<out T>(
  val item: T,
)
`,
		},
		{
			name: "nested types use simple names",
			typ: NewClass("Outer").
				AddType(NewClass("Inner")).
				AddProperty(NewPropertySpec("inner", NewClassName("", "Outer", "Inner")).Initializer("Inner()")),
			want: `class Outer {
  val inner: Inner = Inner()

  class Inner
}
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checkCode(t, tc.want, tc.typ.String())
		})
	}

	t.Run("anonymous class", func(t *testing.T) {
		anon := NewAnonymousClass().
			AddSuperinterface(runnable).
			AddFunction(NewFunSpec("run").AddModifiers(Override))
		checkCode(t, "object : java.lang.Runnable {\n  override fun run() {\n  }\n}", CodeBlockOf("%L", anon).String())
	})
}

func TestTypeSpecErrors(t *testing.T) {
	testCases := map[string]func() *TypeSpec{
		"abstract function in concrete class": func() *TypeSpec {
			return NewClass("C").AddFunction(NewFunSpec("f").AddModifiers(Abstract))
		},
		"enum constants outside an enum": func() *TypeSpec {
			return NewClass("C").AddEnumConstant("A", nil)
		},
		"two companions": func() *TypeSpec {
			return NewClass("C").AddType(NewCompanionObject("")).AddType(NewCompanionObject("Other"))
		},
		"value class without property": func() *TypeSpec {
			return NewValueClass("V").PrimaryConstructor(NewConstructor().AddParam("v", IntType))
		},
		"fun interface with two abstract functions": func() *TypeSpec {
			return NewFunInterface("F").
				AddFunction(NewFunSpec("a").AddModifiers(Abstract)).
				AddFunction(NewFunSpec("b").AddModifiers(Abstract))
		},
		"annotation class with function": func() *TypeSpec {
			return NewAnnotationClass("A").AddFunction(NewFunSpec("f"))
		},
	}
	for name, build := range testCases {
		t.Run(name, func(t *testing.T) {
			typ := build()
			assertUsageError(t, func() { _ = typ.String() })
		})
	}

	t.Run("builder checks", func(t *testing.T) {
		assertUsageError(t, func() { NewInterface("I").PrimaryConstructor(NewConstructor()) })
		assertUsageError(t, func() { NewInterface("I").Superclass(AnyType) })
		assertUsageError(t, func() { NewEnum("E").AddEnumConstant("name", nil) })
		assertUsageError(t, func() { NewAnonymousClass().AddModifiers(Private) })
		assertUsageError(t, func() { NewClass("") })
		assertUsageError(t, func() { NewClass("C").PrimaryConstructor(NewFunSpec("f")) })
	})
}

func TestTypeAliasSpec(t *testing.T) {
	checkCode(t, "typealias Names = kotlin.collections.List<kotlin.String>\n",
		NewTypeAlias("Names", List.Parameterized(StringType)).String())

	tv := NewTypeVariable("T")
	alias := NewTypeAlias("Predicate", LambdaOf(BooleanType, tv)).
		AddTypeVariable(tv).
		AddModifiers(Internal).
		AddKdoc("Tests a value.")
	checkCode(t, "/**\n * Tests a value.\n */\ninternal typealias Predicate<T> = (T) -> kotlin.Boolean\n", alias.String())

	assertUsageError(t, func() { NewTypeAlias("A", StringType).AddTypeVariable(tv.WithVariance(In)) })
	assertUsageError(t, func() { NewTypeAlias("A", StringType).AddModifiers(Data) })
}

func TestAnnotationSpec(t *testing.T) {
	deprecated := NewClassName("kotlin", "Deprecated")
	checkCode(t, "@kotlin.Deprecated", NewAnnotationSpec(deprecated).String())
	checkCode(t, `@kotlin.Deprecated("old")`, NewAnnotationSpec(deprecated).AddMember("%S", "old").String())
	checkCode(t, `@kotlin.Deprecated(message = "x", level = kotlin.DeprecationLevel.ERROR)`,
		NewAnnotationSpec(deprecated).
			AddMember("message = %S", "x").
			AddMember("level = %T.%L", NewClassName("kotlin", "DeprecationLevel"), "ERROR").
			String())
	checkCode(t, `@get:kotlin.jvm.JvmName("x")`,
		NewAnnotationSpec(NewClassName("kotlin.jvm", "JvmName")).
			WithUseSiteTarget(GetTarget).
			AddMember("%S", "x").
			String())

	nested := NewAnnotationSpec(NewClassName("com.example", "Inner")).AddMember("%L", 1)
	checkCode(t, `@com.example.Outer(com.example.Inner(1))`,
		NewAnnotationSpec(NewClassName("com.example", "Outer")).AddMember("%L", nested).String())

	assertUsageError(t, func() { NewAnnotationSpec(LambdaOf(UnitType)) })
}

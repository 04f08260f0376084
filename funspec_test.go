package kotlinpoet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func checkCode(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}
}

func TestFunSpec(t *testing.T) {
	testCases := []struct {
		name string
		fun  *FunSpec
		want string
	}{
		{
			name: "expression body",
			fun: NewFunSpec("greet").
				AddParam("name", StringType).
				Returns(StringType).
				AddStatement("return %S + name", "Hello, "),
			want: "fun greet(name: kotlin.String): kotlin.String = \"Hello, \" + name\n",
		},
		{
			name: "block body",
			fun: NewFunSpec("log").
				AddParam("message", StringType).
				AddComment("print it twice").
				AddStatement("println(message)").
				AddStatement("println(%S)", "done"),
			want: `fun log(message: kotlin.String) {
  // print it twice
  println(message)
  println("done")
}
`,
		},
		{
			name: "empty body",
			fun:  NewFunSpec("noop"),
			want: "fun noop() {\n}\n",
		},
		{
			name: "throw expression declares Unit",
			fun:  NewFunSpec("fail").AddStatement("throw %T()", NewClassName("kotlin", "IllegalStateException")),
			want: "fun fail(): kotlin.Unit = throw kotlin.IllegalStateException()\n",
		},
		{
			name: "abstract",
			fun:  NewFunSpec("size").AddModifiers(Abstract).Returns(IntType),
			want: "abstract fun size(): kotlin.Int\n",
		},
		{
			name: "many parameters",
			fun: NewFunSpec("sum").
				AddParam("a", IntType).
				AddParam("b", IntType).
				AddParameter(NewParameterSpec("c", IntType).DefaultValue("%L", 0)),
			want: `fun sum(
  a: kotlin.Int,
  b: kotlin.Int,
  c: kotlin.Int = 0,
) {
}
`,
		},
		{
			name: "generic extension",
			fun: NewFunSpec("firstOrNull").
				AddTypeVariable(NewTypeVariable("T")).
				Receiver(List.Parameterized(NewTypeVariable("T"))).
				Returns(Nullable(NewTypeVariable("T"))).
				AddStatement("return if (isEmpty()) null else get(0)"),
			want: "fun <T> kotlin.collections.List<T>.firstOrNull(): T? = if (isEmpty()) null else get(0)\n",
		},
		{
			name: "reified",
			fun: NewFunSpec("typeName").
				AddModifiers(Inline).
				AddTypeVariable(NewTypeVariable("T").Reified()).
				Returns(StringType).
				AddStatement("return %T::class.simpleName!!", NewTypeVariable("T")),
			want: "inline fun <reified T> typeName(): kotlin.String = T::class.simpleName!!\n",
		},
		{
			name: "where clause",
			fun: NewFunSpec("max").
				AddTypeVariable(NewTypeVariable("T", NumberType, ComparableType.Parameterized(NewTypeVariable("T")))).
				AddParam("items", List.Parameterized(NewTypeVariable("T"))).
				Returns(NewTypeVariable("T")).
				AddStatement("return items.max()"),
			want: "fun <T> max(items: kotlin.collections.List<T>): T where T : kotlin.Number, T : kotlin.Comparable<T> = items.max()\n",
		},
		{
			name: "keyword name",
			fun:  NewFunSpec("object").AddModifiers(Private),
			want: "private fun `object`() {\n}\n",
		},
		{
			name: "secondary constructor",
			fun:  NewConstructor().AddParam("x", IntType).CallThisConstructor(CodeBlockOf("x"), CodeBlockOf("%L", 0)),
			want: "constructor(x: kotlin.Int) : this(x, 0)\n",
		},
		{
			name: "vararg",
			fun: NewFunSpec("print").
				AddParam("items", AnyType, Vararg).
				AddStatement("items.forEach(::println)"),
			want: "fun print(vararg items: kotlin.Any) {\n  items.forEach(::println)\n}\n",
		},
		{
			name: "control flow",
			fun: NewFunSpec("sign").
				AddParam("x", IntType).
				Returns(IntType).
				BeginControlFlow("if (x < 0)").
				AddStatement("return -1").
				EndControlFlow().
				AddStatement("return if (x == 0) 0 else 1"),
			want: `fun sign(x: kotlin.Int): kotlin.Int {
  if (x < 0) {
    return -1
  }
  return if (x == 0) 0 else 1
}
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checkCode(t, tc.want, tc.fun.String())
		})
	}
}

func TestFunSpecKdoc(t *testing.T) {
	fun := NewFunSpec("add").
		AddKdoc("Adds two numbers.").
		AddParameter(NewParameterSpec("a", IntType).AddKdoc("the first")).
		AddParam("b", IntType).
		Returns(IntType).
		ReturnsKdoc("the sum").
		AddStatement("return a + b")
	want := `/**
 * Adds two numbers.
 *
 * @param a the first
 * @return the sum
 */
fun add(a: kotlin.Int, b: kotlin.Int): kotlin.Int = a + b
`
	checkCode(t, want, fun.String())
}

func TestFunSpecErrors(t *testing.T) {
	t.Run("abstract with code", func(t *testing.T) {
		f := NewFunSpec("run").AddModifiers(Abstract).AddStatement("println()")
		assertUsageError(t, func() { _ = f.String() })
	})
	t.Run("reified without inline", func(t *testing.T) {
		f := NewFunSpec("run").AddTypeVariable(NewTypeVariable("T").Reified())
		assertUsageError(t, func() { _ = f.String() })
	})
	t.Run("getter with parameters", func(t *testing.T) {
		f := NewGetter().AddParam("x", IntType)
		assertUsageError(t, func() { _ = f.String() })
	})
	t.Run("constructor return type", func(t *testing.T) {
		assertUsageError(t, func() { NewConstructor().Returns(IntType) })
	})
	t.Run("delegation from a function", func(t *testing.T) {
		assertUsageError(t, func() { NewFunSpec("f").CallSuperConstructor() })
	})
	t.Run("empty name", func(t *testing.T) {
		assertUsageError(t, func() { NewFunSpec("") })
	})
}

func TestFunSpecFor(t *testing.T) {
	f := NewFunSpecFor(NewOperatorMember("com.example", Plus))
	assert.Equal(t, "plus", f.Name())
	checkCode(t, "operator fun plus() {\n}\n", f.String())
}

func TestParameterSpec(t *testing.T) {
	checkCode(t, "vararg items: kotlin.String", NewParameterSpec("items", StringType, Vararg).String())
	checkCode(t, "count: kotlin.Int = 1", NewParameterSpec("count", IntType).DefaultValue("%L", 1).String())
	checkCode(t, "`in`: kotlin.String", NewParameterSpec("in", StringType).String())
	assertUsageError(t, func() { NewParameterSpec("x", IntType, Private) })
	assertUsageError(t, func() { NewParameterSpec("", IntType) })
}

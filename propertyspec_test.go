package kotlinpoet

import (
	"testing"
)

func TestPropertySpec(t *testing.T) {
	deprecated := NewClassName("kotlin", "Deprecated")
	level := NewClassName("kotlin", "DeprecationLevel")
	testCases := []struct {
		name string
		prop *PropertySpec
		want string
	}{
		{
			name: "initializer",
			prop: NewPropertySpec("name", StringType).Initializer("%S", "x"),
			want: "val name: kotlin.String = \"x\"\n",
		},
		{
			name: "mutable private",
			prop: NewPropertySpec("count", IntType, Private).Mutable(true).Initializer("%L", 0),
			want: "private var count: kotlin.Int = 0\n",
		},
		{
			name: "const keeps newlines escaped",
			prop: NewPropertySpec("GREETING", StringType, Const).Initializer("%S", "hi\nthere"),
			want: "const val GREETING: kotlin.String = \"hi\\nthere\"\n",
		},
		{
			name: "multi-line string",
			prop: NewPropertySpec("text", StringType).Initializer("%S", "a\nb"),
			want: "val text: kotlin.String = \"\"\"\n    |a\n    |b\n    \"\"\".trimMargin()\n",
		},
		{
			name: "getter",
			prop: NewPropertySpec("size", IntType).Getter(NewGetter().AddStatement("return items.size")),
			want: "val size: kotlin.Int\n  get() = items.size\n",
		},
		{
			name: "setter",
			prop: NewPropertySpec("name", StringType).
				Mutable(true).
				Initializer("%S", "").
				Setter(NewSetter().AddParam("value", StringType).AddStatement("field = value.trim()")),
			want: `var name: kotlin.String = ""
  set(value) {
    field = value.trim()
  }
`,
		},
		{
			name: "redundant getter is omitted",
			prop: NewPropertySpec("x", IntType).Initializer("%L", 1).Getter(NewGetter()),
			want: "val x: kotlin.Int = 1\n",
		},
		{
			name: "delegate",
			prop: NewPropertySpec("lazyValue", StringType).Delegate("lazy { %S }", "v"),
			want: "val lazyValue: kotlin.String by lazy { \"v\" }\n",
		},
		{
			name: "extension",
			prop: NewPropertySpec("lastIndex", IntType).
				Receiver(StringType).
				Getter(NewGetter().AddStatement("return length - 1")),
			want: "val kotlin.String.lastIndex: kotlin.Int\n  get() = length - 1\n",
		},
		{
			name: "kdoc",
			prop: NewPropertySpec("id", LongType, Lateinit).Mutable(true).AddKdoc("The identifier."),
			want: "/**\n * The identifier.\n */\nlateinit var id: kotlin.Long\n",
		},
		{
			name: "annotations",
			prop: NewPropertySpec("old", IntType).
				AddAnnotation(NewAnnotationSpec(deprecated).
					AddMember("message = %S", "use new").
					AddMember("level = %T.%L", level, "ERROR")),
			want: `@kotlin.Deprecated(
  message = "use new",
  level = kotlin.DeprecationLevel.ERROR,
)
val old: kotlin.Int
`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checkCode(t, tc.want, tc.prop.String())
		})
	}
}

func TestPropertySpecErrors(t *testing.T) {
	t.Run("setter on val", func(t *testing.T) {
		p := NewPropertySpec("x", IntType).Setter(NewSetter().AddParam("value", IntType))
		assertUsageError(t, func() { _ = p.String() })
	})
	t.Run("getter that is not a getter", func(t *testing.T) {
		assertUsageError(t, func() { NewPropertySpec("x", IntType).Getter(NewFunSpec("get")) })
	})
	t.Run("modifier for another target", func(t *testing.T) {
		assertUsageError(t, func() { NewPropertySpec("x", IntType, Data) })
	})
	t.Run("reified without inline accessors", func(t *testing.T) {
		p := NewPropertySpec("x", IntType).AddTypeVariable(NewTypeVariable("T").Reified())
		assertUsageError(t, func() { _ = p.String() })
	})
}

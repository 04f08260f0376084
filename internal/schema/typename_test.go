package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeName(t *testing.T) {
	testCases := []struct {
		in            string
		typeVariables []string
		want          string
	}{
		{in: "String", want: "kotlin.String"},
		{in: "Widget", want: "com.example.Widget"},
		{in: "Widget?", want: "com.example.Widget?"},
		{in: "T", typeVariables: []string{"T"}, want: "T"},
		{in: "T?", typeVariables: []string{"K", "T"}, want: "T?"},
		{in: "com.example.Outer.Inner", want: "com.example.Outer.Inner"},
		{in: "kotlin.collections.Map<String, com.example.User?>",
			want: "kotlin.collections.Map<kotlin.String, com.example.User?>"},
		{in: "List<List<Int>>", want: "kotlin.collections.List<kotlin.collections.List<kotlin.Int>>"},
		{in: "List<out Number>", want: "kotlin.collections.List<out kotlin.Number>"},
		{in: "Map<*, in T>", typeVariables: []string{"T"}, want: "kotlin.collections.Map<*, in T>"},
		{in: "() -> Unit", want: "() -> kotlin.Unit"},
		{in: "suspend (Int, String) -> Unit", want: "suspend (kotlin.Int, kotlin.String) -> kotlin.Unit"},
		{in: "(() -> Unit)?", want: "(() -> kotlin.Unit)?"},
		{in: "(Int) -> (String) -> Boolean",
			want: "(kotlin.Int) -> ((kotlin.String) -> kotlin.Boolean)"},
		{in: "(String)", want: "kotlin.String"},
		{in: "  IntArray ", want: "kotlin.IntArray"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			typ, err := ParseTypeName(tc.in, "com.example", tc.typeVariables...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, typ.String())
		})
	}
}

func TestParseTypeNameErrors(t *testing.T) {
	testCases := map[string]string{
		"":                  "expected a type, found end of input",
		"List<>":            "empty type argument list",
		"(Int, String)":     "expected -> after parameter list",
		"String String":     `unexpected "String"`,
		"suspend Int":       "expected a function type after suspend",
		"suspend (Int)":     "expected -> after suspend parameter list",
		"Map<String Int>":   `expected ',', found "Int"`,
		"com.example.":      "expected a name after '.'",
		"com.example.lower": "invalid type",
		"(Int) - Unit":      `expected '>', found "Unit"`,
	}
	for in, want := range testCases {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTypeName(in, "com.example")
			require.Error(t, err)
			assert.ErrorContains(t, err, want)
			assert.ErrorContains(t, err, "invalid type")
		})
	}
}

package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kotlinpoet "github.com/square/kotlinpoet-sub003"
)

func render(t *testing.T, f *File) string {
	t.Helper()
	spec, err := f.Build()
	require.NoError(t, err)
	src, err := spec.Render(nil)
	require.NoError(t, err)
	return src
}

func TestLoad(t *testing.T) {
	want, err := os.ReadFile("testdata/users.kt")
	require.NoError(t, err)

	for _, path := range []string{"testdata/users.yaml", "testdata/users.toml"} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			f, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, path, f.Path)
			assert.Equal(t, "com.example.model", f.Package)
			require.Len(t, f.Types, 2)
			assert.Equal(t, KindData, f.Types[0].Kind)

			spec, err := f.Build()
			require.NoError(t, err)
			assert.Equal(t, filepath.Join("com", "example", "model", "Users.kt"), spec.RelativePath())
			src, err := spec.Render(nil)
			require.NoError(t, err)
			if diff := cmp.Diff(string(want), src); diff != "" {
				t.Errorf("wrong generated output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/users.json")
	require.Error(t, err)
	assert.ErrorContains(t, err, `unsupported schema format ".json"`)
	assert.Contains(t, errors.FlattenHints(err), ".toml")

	_, err = Load("testdata/missing.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("package: [unterminated"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.ErrorContains(t, err, bad)
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestParseYAMLDefaults(t *testing.T) {
	f, err := ParseYAML([]byte(`
package: com.example
types:
  - name: Widget
`))
	require.NoError(t, err)
	assert.Equal(t, "Widget", f.Name)
	assert.Equal(t, KindClass, f.Types[0].Kind)
	assert.Equal(t, "package com.example\n\nclass Widget\n", render(t, f))
}

func TestValidationErrors(t *testing.T) {
	testCases := map[string]struct {
		yaml string
		want string
	}{
		"unknown key": {
			yaml: "package: a\nname: A\nnope: 1\n",
			want: "field nope not found",
		},
		"no name": {
			yaml: "types:\n  - name: A\n  - name: B\n",
			want: "name is required",
		},
		"empty file": {
			yaml: "name: Empty\n",
			want: "file Empty declares nothing",
		},
		"unnamed type": {
			yaml: "name: F\ntypes:\n  - kind: class\n",
			want: "type without a name",
		},
		"unknown kind": {
			yaml: "types:\n  - name: A\n    kind: struct\n",
			want: `type A: unknown kind "struct"`,
		},
		"empty data class": {
			yaml: "types:\n  - name: A\n    kind: data\n",
			want: "data class A must have at least one property",
		},
		"value class": {
			yaml: "types:\n  - name: A\n    kind: value\n",
			want: "value class A must have exactly one property",
		},
		"constants outside enum": {
			yaml: "types:\n  - name: A\n    constants:\n      - name: X\n",
			want: "type A has constants but is not an enum",
		},
		"nested": {
			yaml: "types:\n  - name: Outer\n    types:\n      - name: Inner\n        kind: nope\n",
			want: `in Outer: type Inner: unknown kind "nope"`,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestParseTOMLUnknownKeys(t *testing.T) {
	_, err := ParseTOML([]byte("name = \"A\"\ncolour = \"red\"\n[[types]]\nname = \"A\"\n"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown keys")
	assert.ErrorContains(t, err, "colour")

	_, err = ParseTOML([]byte("name = "))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestBuild(t *testing.T) {
	f, err := ParseYAML([]byte(`
package: com.example
name: Misc
options:
  default_imports: [kotlin, kotlin.jvm]
imports:
  - name: com.other.Widget
    alias: OtherWidget
  - name: kotlinx.coroutines.launch
    alias: go
  - name: com.other.Widget.Companion.create
    alias: makeWidget
type_aliases:
  - name: Handler
    type: (String) -> Unit
    kdoc: Handles a line.
types:
  - kind: value
    name: Email
    properties:
      - name: address
        type: String
  - kind: interface
    name: Repo
    type_variables: ["T : Comparable<T>"]
    functions:
      - name: find
        params:
          - name: id
            type: Long
        returns: T?
  - kind: object
    name: Defaults
    properties:
      - name: TIMEOUT
        type: Int
        modifiers: [const]
        default: "30"
`))
	require.NoError(t, err)
	want := `package com.example

import com.other.Widget as OtherWidget
import com.other.Widget.Companion.create as makeWidget
import kotlinx.coroutines.launch as go

/**
 * Handles a line.
 */
typealias Handler = (String) -> Unit

@JvmInline
value class Email(
  val address: String,
)

interface Repo<T : Comparable<T>> {
  fun find(id: Long): T?
}

object Defaults {
  const val TIMEOUT: Int = 30
}
`
	if diff := cmp.Diff(want, render(t, f)); diff != "" {
		t.Errorf("wrong generated output (-want +got):\n%s", diff)
	}
}

func TestBuildWithOptions(t *testing.T) {
	f, err := ParseYAML([]byte(`
package: com.example
options:
  indent: "    "
  explicit_api: true
types:
  - name: Counter
    properties:
      - name: count
        type: Int
        mutable: true
        default: "0"
    functions:
      - name: reset
        body: count = 0
`))
	require.NoError(t, err)
	base := kotlinpoet.DefaultRenderOptions()
	base.DefaultImports = []string{"kotlin"}
	spec, err := f.BuildWith(base)
	require.NoError(t, err)
	src, err := spec.Render(nil)
	require.NoError(t, err)
	want := `package com.example

public class Counter(
    public var count: Int = 0,
) {
    public fun reset() {
        count = 0
    }
}
`
	if diff := cmp.Diff(want, src); diff != "" {
		t.Errorf("wrong generated output (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	testCases := map[string]struct {
		yaml  string
		want  string
		usage bool
	}{
		"bad property type": {
			yaml: "types:\n  - name: A\n    properties:\n      - name: x\n        type: List<>\n",
			want: "type A: property x: invalid type",
		},
		"missing type": {
			yaml: "types:\n  - name: A\n    properties:\n      - name: x\n",
			want: "property x: missing type",
		},
		"unknown modifier": {
			yaml: "name: F\nfunctions:\n  - name: f\n    modifiers: [sometimes]\n",
			want: `function f: unknown modifier "sometimes"`,
		},
		"interface default": {
			yaml: "types:\n  - name: I\n    kind: interface\n    properties:\n      - name: x\n        type: Int\n        default: \"1\"\n",
			want: "interface property x cannot have a default",
		},
		"bad type variable": {
			yaml: "name: F\nfunctions:\n  - name: f\n    type_variables: [\"a b c\"]\n",
			want: `invalid type variable "a b c"`,
		},
		"bad bound": {
			yaml: "name: F\nfunctions:\n  - name: f\n    type_variables: [\"T : (\"]\n",
			want: "bound of T",
		},
		"bad import": {
			yaml: "name: F\nimports:\n  - name: Widget\nfunctions:\n  - name: f\n",
			want: `import "Widget" is not a qualified name`,
		},
		"bad superclass": {
			yaml: "types:\n  - name: A\n    superclass: \"com.example.\"\n",
			want: "type A: superclass",
		},
		"misplaced modifier": {
			yaml: "name: F\nproperties:\n  - name: x\n    type: Int\n    modifiers: [enum]\n",
			want: "unexpected modifier",
			usage: true,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			f, err := ParseYAML([]byte(tc.yaml))
			require.NoError(t, err)
			_, err = f.Build()
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
			assert.Equal(t, tc.usage, errors.Is(err, kotlinpoet.ErrUsage))
		})
	}
}

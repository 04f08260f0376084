package kotlinpoet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSpecImports(t *testing.T) {
	widget := NewClassName("com.example.model", "Widget")
	file := NewFileSpec("com.example", "Widgets").
		AddFileComment("Generated. Do not edit.").
		AddAnnotation(NewAnnotationSpec(NewClassName("kotlin.jvm", "JvmName")).AddMember("%S", "WidgetsKt")).
		AddProperty(NewPropertySpec("widgets", List.Parameterized(widget)).
			Initializer("%M()", NewMember("kotlin.collections", "emptyList"))).
		Options(RenderOptions{DefaultImports: []string{"kotlin", "kotlin.collections"}})
	want := `// Generated. Do not edit.
@file:JvmName("WidgetsKt")

package com.example

import com.example.model.Widget
import kotlin.jvm.JvmName

val widgets: List<Widget> = emptyList()
`
	got, err := file.Render(nil)
	require.NoError(t, err)
	checkCode(t, want, got)

	// the plan still knows about the default imports
	plan, err := file.CollectImports()
	require.NoError(t, err)
	_, ok := plan.Lookup("kotlin.collections.List")
	assert.True(t, ok)
	assert.Len(t, plan.Imports(), 4)
}

func TestFileSpecExplicitImports(t *testing.T) {
	file := NewFileSpec("com.example", "Explicit").
		AddImport("com.example.util", "helper").
		AddAliasedImport(NewClassName("com.other", "Widget"), "OtherWidget").
		AddProperty(NewPropertySpec("w", NewClassName("com.other", "Widget")).Initializer("helper()"))
	want := `package com.example

import com.example.util.helper
import com.other.Widget as OtherWidget

val w: OtherWidget = helper()
`
	checkCode(t, want, file.String())
}

func TestFileSpecAliasedMemberImport(t *testing.T) {
	compute := NewMember("com.other", "compute")
	file := NewFileSpec("com.example", "Members").
		AddAliasedMemberImport(compute, "otherCompute").
		AddFunction(NewFunSpec("run").AddStatement("%M()", compute))
	want := `package com.example

import com.other.compute as otherCompute

fun run() {
  otherCompute()
}
`
	checkCode(t, want, file.String())
}

func TestFileSpecSamePackage(t *testing.T) {
	file := NewFileSpec("com.example", "Local").
		AddProperty(NewPropertySpec("l", NewClassName("com.example", "Local")))
	checkCode(t, "package com.example\n\nval l: Local\n", file.String())
}

func TestFileSpecDeclarationsShadowImports(t *testing.T) {
	file := NewFileSpec("com.example", "Conflict").
		AddType(NewClass("Builder")).
		AddProperty(NewPropertySpec("other", NewClassName("com.a", "Builder")))
	want := `package com.example

import com.a.Builder as ABuilder

class Builder

val other: ABuilder
`
	checkCode(t, want, file.String())
}

func TestFileSpecDefaultPackage(t *testing.T) {
	file := NewFileSpec("", "Script").AddFunction(NewFunSpec("main"))
	checkCode(t, "fun main() {\n}\n", file.String())
	assert.Equal(t, "Script.kt", file.RelativePath())
}

func TestFileSpecExplicitAPI(t *testing.T) {
	file := NewFileSpec("com.example", "Api").
		Options(RenderOptions{ExplicitAPI: true, DefaultImports: []string{"kotlin"}}).
		AddProperty(NewPropertySpec("x", IntType).Initializer("%L", 1)).
		AddFunction(NewFunSpec("f").AddModifiers(Private))
	want := `package com.example

public val x: Int = 1

private fun f() {
}
`
	checkCode(t, want, file.String())
}

func TestFileSpecTypeAlias(t *testing.T) {
	file := NewFileSpec("com.example", "Aliases").
		AddTypeAlias(NewTypeAlias("Names", List.Parameterized(StringType)))
	want := `package com.example

import kotlin.String
import kotlin.collections.List

typealias Names = List<String>
`
	checkCode(t, want, file.String())
}

func TestFileSpecAccessors(t *testing.T) {
	typ := NewClass("Main")
	file := NewFileSpec("com.example.app", "Main.kt").AddType(typ)
	assert.Equal(t, "Main", file.Name())
	assert.Equal(t, "com.example.app", file.PackageName())
	assert.Equal(t, filepath.Join("com", "example", "app", "Main.kt"), file.RelativePath())
	assert.Equal(t, []FileMember{typ}, file.Members())

	forType := FileForType("com.example", NewObject("Registry"))
	assert.Equal(t, "Registry", forType.Name())
}

func TestFileSpecUsageErrors(t *testing.T) {
	assertUsageError(t, func() { NewFileSpec("com.example", "") })
	assertUsageError(t, func() { NewFileSpec("com.example", "dir/Main") })
	assertUsageError(t, func() { NewFileSpec("com.example", "Main").AddImport("com.other", "*") })
	assertUsageError(t, func() { NewFileSpec("com.example", "Main").AddImport("com.other") })
	assertUsageError(t, func() { NewFileSpec("com.example", "Main").AddType(NewAnonymousClass()) })
	assertUsageError(t, func() { NewFileSpec("com.example", "Main").AddFunction(NewConstructor()) })
	assertUsageError(t, func() { NewFileSpec("com.example", "Main").AddAliasedImport(StringType, "") })
	assertUsageError(t, func() {
		ann := NewAnnotationSpec(NewClassName("kotlin", "Suppress")).WithUseSiteTarget(GetTarget)
		NewFileSpec("com.example", "Main").AddAnnotation(ann)
	})
}

func brokenFile() *FileSpec {
	return NewFileSpec("com.example", "Broken").
		AddFunction(NewFunSpec("run").AddModifiers(Abstract).AddStatement("println()"))
}

func TestFileSpecRenderError(t *testing.T) {
	_, err := brokenFile().Render(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsage)

	var buf bytes.Buffer
	n, err := brokenFile().WriteTo(&buf)
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Zero(t, buf.Len())
}

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closingBuffer) Close() error {
	b.closed = true
	return nil
}

func TestWriteFiles(t *testing.T) {
	a := NewFileSpec("com.example", "A").AddType(NewClass("A"))
	b := NewFileSpec("com.example.sub", "B").AddType(NewClass("B"))
	outputs := map[string]*closingBuffer{}
	err := WriteFiles(func(path string) (io.Writer, error) {
		buf := &closingBuffer{}
		outputs[path] = buf
		return buf, nil
	}, a, b)
	require.NoError(t, err)
	require.Len(t, outputs, 2)

	outA := outputs[filepath.Join("com", "example", "A.kt")]
	require.NotNil(t, outA)
	assert.True(t, outA.closed)
	assert.Equal(t, "package com.example\n\nclass A\n", outA.String())

	t.Run("writer error", func(t *testing.T) {
		err := WriteFiles(func(path string) (io.Writer, error) {
			return nil, errors.New("no space")
		}, a)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "A.kt")
		assert.Contains(t, err.Error(), "no space")
	})

	t.Run("render error opens no writer", func(t *testing.T) {
		opened := false
		err := WriteFiles(func(path string) (io.Writer, error) {
			opened = true
			return io.Discard, nil
		}, brokenFile())
		require.Error(t, err)
		assert.False(t, opened)
	})
}

func TestWriteFilesToFileSystem(t *testing.T) {
	dir := t.TempDir()
	var files []*FileSpec
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		files = append(files, NewFileSpec("com.example.gen", name).AddType(NewClass(name)))
	}
	require.NoError(t, WriteFilesToFileSystem(dir, files...))

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		data, err := os.ReadFile(filepath.Join(dir, "com", "example", "gen", name+".kt"))
		require.NoError(t, err)
		assert.Equal(t, "package com.example.gen\n\nclass "+name+"\n", string(data))
	}

	err := WriteFilesToFileSystem(dir, brokenFile())
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "com", "example", "Broken.kt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFile(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteFile(&sb, NewFileSpec("com.example", "X").AddType(NewObject("X"))))
	assert.Equal(t, "package com.example\n\nobject X\n", sb.String())
}

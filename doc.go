// Package kotlinpoet is a library to assist with generating Kotlin code. It
// models Kotlin declarations (files, types, functions, properties, type
// aliases) and renders them as formatted source, with import statements
// managed automatically.
//
// The API and functionality are strongly influenced by KotlinPoet
// (https://github.com/square/kotlinpoet), the Java library of the same name.
//
// # Types
//
// TypeName is the way this package represents Kotlin types. It is a closed
// set: ClassName, ParameterizedTypeName, LambdaTypeName, WildcardTypeName
// and TypeVariableName. Well-known types such as kotlin.String and
// kotlin.collections.List are available as variables (StringType,
// List, ...). Members (top-level functions and properties, class members
// and extension functions) are referred to with MemberName.
//
// # Elements
//
// FileSpec is the root of a model: it holds top-level declarations made with
// TypeSpec, FunSpec, PropertySpec and TypeAliasSpec. Specs are mutable and
// their methods return the receiver so calls can be chained:
//
//	greeter := kotlinpoet.NewClass("Greeter").
//		PrimaryConstructor(kotlinpoet.NewConstructor().
//			AddParam("name", kotlinpoet.StringType)).
//		AddProperty(kotlinpoet.NewPropertySpec("name", kotlinpoet.StringType).
//			Initializer("name"))
//	src, err := kotlinpoet.FileForType("com.example", greeter).Render(nil)
//
// Statements and expressions are not modeled. Function bodies, initializers
// and annotation arguments are CodeBlock values built from format strings.
//
// # Code blocks
//
// A format string interleaves literal text with placeholders that consume
// arguments:
//
//	%L  a literal: numbers, code blocks, specs and type names as code
//	%S  a string, quoted and escaped
//	%P  a string template, quoted but with ${...} left intact
//	%N  a name, escaped with backticks if needed
//	%T  a type, imported when possible
//	%M  a member, imported when possible
//	%%  a percent sign
//
// Arguments are taken in order (%L %L), by index (%1L %2L) or by name
// (%food:L with AddNamed or AddTemplate). A few characters are markers:
// ⇥ and ⇤ indent and unindent, « and » open and close a statement, ♢ is a
// space where a line may be wrapped and · is a space where it may not.
//
// # Imports
//
// Files are rendered in two passes. The first pass (CollectImports) records
// every class and member that could be imported. The import resolver then
// picks one plain import per simple name and gives every other candidate
// with that simple name an alias built from its package, such as ABuilder
// and BBuilder for a.Builder and b.Builder. The second pass (Render) writes
// the source using the resulting ImportPlan.
//
// # Errors
//
// Mistakes such as a format string whose placeholders do not match its
// arguments, or an abstract function with a body, are usage errors. Builder
// methods panic with them, like regexp.MustCompile. Render, CollectImports,
// WriteTo and WriteFile recover them and return them as errors that match
// ErrUsage with errors.Is.
package kotlinpoet

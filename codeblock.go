package kotlinpoet

import (
	"reflect"
	"slices"
	"strings"
)

// Structural markers. They may appear anywhere in a format string and
// consume no argument.
const (
	// Indent increases the indentation level by one.
	Indent = "⇥"
	// Unindent decreases the indentation level by one.
	Unindent = "⇤"
	// OpenStatement starts a statement. Lines that wrap inside a statement
	// are indented twice.
	OpenStatement = "«"
	// CloseStatement ends a statement.
	CloseStatement = "»"
	// WrapSpace is a space at which the line may be wrapped.
	WrapSpace = "♢"
	// NonWrappingSpace is a space at which the line is never wrapped.
	NonWrappingSpace = "·"
)

var noArgPlaceholders = []string{Indent, Unindent, OpenStatement, CloseStatement}

func isNoArgPlaceholder(part string) bool {
	return slices.Contains(noArgPlaceholders, part)
}

// isPlaceholder reports whether a format part is a marker or a %X directive
// rather than literal text.
func isPlaceholder(part string) bool {
	return isNoArgPlaceholder(part) || (len(part) == 2 && part[0] == '%')
}

// consumesArg reports whether a format part is a %X directive that has an
// argument.
func consumesArg(part string) bool {
	return len(part) == 2 && part[0] == '%' && part[1] != '%'
}

// CodeBlock is a fragment of Kotlin code: a sequence of format parts (literal
// text, %X directives and structural markers) and the arguments consumed by
// the directives, in order. A CodeBlock is immutable.
//
// The directives are:
//
//	%L  a literal, emitted as is. Numbers are formatted with '_' grouping.
//	    Code blocks, specs and type names are emitted recursively.
//	%N  a name, escaped with backticks when it is a keyword or otherwise not
//	    a valid identifier.
//	%S  a string, emitted as a quoted and escaped string literal.
//	%P  like %S but '$' is not escaped, so string templates work.
//	%T  a type. The type is imported if possible.
//	%M  a member. The member is imported if possible.
//	%%  a literal percent sign.
//
// Arguments are consumed in order (%L) or by 1-based index (%2L), but the two
// styles may not be mixed in one format string. The markers ⇥, ⇤, « and »
// change indentation and delimit statements; ♢ marks a place where a long
// line may wrap and · is a space that never wraps.
type CodeBlock struct {
	formatParts []string
	args        []interface{}
}

// CodeBlockOf returns a code block for format and args. It panics with an
// ErrUsage error when they do not match.
func CodeBlockOf(format string, args ...interface{}) CodeBlock {
	return NewCodeBlockBuilder().Add(format, args...).Build()
}

// NewCodeBlock is like CodeBlockOf but returns an error instead of
// panicking.
func NewCodeBlock(format string, args ...interface{}) (cb CodeBlock, err error) {
	defer catch(&err)
	return CodeBlockOf(format, args...), nil
}

// IsEmpty reports whether the block has no code.
func (c CodeBlock) IsEmpty() bool {
	return len(c.formatParts) == 0
}

// ToBuilder returns a builder initialized with the contents of c.
func (c CodeBlock) ToBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{formatParts: slices.Clone(c.formatParts), args: slices.Clone(c.args)}
}

// String renders the block with all names fully qualified.
func (c CodeBlock) String() string {
	return renderString(func(w *codeWriter) {
		w.emitCodeBlock(c, false, false)
	})
}

// Equal reports whether c and o render the same code.
func (c CodeBlock) Equal(o CodeBlock) bool {
	return c.String() == o.String()
}

// withoutPrefix returns the rest of c after prefix, or false if c does not
// start with prefix. The last part of prefix only needs to be a string prefix
// of the corresponding part of c.
func (c CodeBlock) withoutPrefix(prefix CodeBlock) (CodeBlock, bool) {
	if len(c.formatParts) < len(prefix.formatParts) || len(c.args) < len(prefix.args) {
		return CodeBlock{}, false
	}
	argCount := 0
	var first *string
	for i, part := range prefix.formatParts {
		if c.formatParts[i] != part {
			if i != len(prefix.formatParts)-1 || !strings.HasPrefix(c.formatParts[i], part) {
				return CodeBlock{}, false
			}
			rest := c.formatParts[i][len(part):]
			first = &rest
		}
		if consumesArg(part) {
			if !argsEqual(c.args[argCount], prefix.args[argCount]) {
				return CodeBlock{}, false
			}
			argCount++
		}
	}
	var parts []string
	if first != nil {
		parts = append(parts, *first)
	}
	parts = append(parts, c.formatParts[len(prefix.formatParts):]...)
	return CodeBlock{formatParts: parts, args: slices.Clone(c.args[len(prefix.args):])}, true
}

// trim drops structural markers from both ends.
func (c CodeBlock) trim() CodeBlock {
	start, end := 0, len(c.formatParts)
	for start < end && isNoArgPlaceholder(c.formatParts[start]) {
		start++
	}
	for start < end && isNoArgPlaceholder(c.formatParts[end-1]) {
		end--
	}
	if start == 0 && end == len(c.formatParts) {
		return c
	}
	return CodeBlock{formatParts: c.formatParts[start:end], args: c.args}
}

func (c CodeBlock) replaceAll(old, replacement string) CodeBlock {
	parts := make([]string, len(c.formatParts))
	for i, p := range c.formatParts {
		parts[i] = strings.ReplaceAll(p, old, replacement)
	}
	return CodeBlock{formatParts: parts, args: c.args}
}

func (c CodeBlock) hasStatements() bool {
	for _, p := range c.formatParts {
		if strings.Contains(p, OpenStatement) {
			return true
		}
	}
	return false
}

func (c CodeBlock) hasUnmatchedClosingStatement() bool {
	open := 0
	for _, p := range c.formatParts {
		switch p {
		case OpenStatement:
			open++
		case CloseStatement:
			if open == 0 {
				return true
			}
			open--
		}
	}
	return false
}

func (c CodeBlock) ensureEndsWithNewLine() CodeBlock {
	return c.trimTrailingNewLine("\n")
}

// trimTrailingNewLine removes trailing newlines from the last part of the
// block (or from its last argument, when the block ends in a directive whose
// argument is a string) and appends replacement.
func (c CodeBlock) trimTrailingNewLine(replacement string) CodeBlock {
	trimmed := c.trim()
	if c.IsEmpty() || trimmed.IsEmpty() {
		return c
	}
	b := c.ToBuilder()
	last := trimmed.formatParts[len(trimmed.formatParts)-1]
	if isPlaceholder(last) && len(b.args) > 0 {
		if s, ok := b.args[len(b.args)-1].(string); ok {
			b.args[len(b.args)-1] = strings.TrimRight(s, "\n") + replacement
		}
		return b.Build()
	}
	for i := len(b.formatParts) - 1; i >= 0; i-- {
		if b.formatParts[i] == last {
			b.formatParts[i] = strings.TrimRight(last, "\n")
			break
		}
	}
	if replacement != "" {
		b.formatParts = append(b.formatParts, replacement)
	}
	return b.Build()
}

func argsEqual(a, b interface{}) bool {
	switch a := a.(type) {
	case TypeName:
		bt, ok := b.(TypeName)
		return ok && TypesEqual(a, bt)
	case MemberName:
		bm, ok := b.(MemberName)
		return ok && a.equal(bm)
	case CodeBlock:
		bc, ok := b.(CodeBlock)
		return ok && a.Equal(bc)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// JoinToCode joins blocks with separator, like strings.Join.
func JoinToCode(blocks []CodeBlock, separator string) CodeBlock {
	return JoinToCodeWith(blocks, separator, "", "")
}

// JoinToCodeWith joins blocks with separator and surrounds the result with
// prefix and suffix.
func JoinToCodeWith(blocks []CodeBlock, separator, prefix, suffix string) CodeBlock {
	placeholders := make([]string, len(blocks))
	args := make([]interface{}, len(blocks))
	for i, b := range blocks {
		placeholders[i] = "%L"
		args[i] = b
	}
	return CodeBlockOf(prefix+strings.Join(placeholders, separator)+suffix, args...)
}

// CodeBlockBuilder accumulates a CodeBlock. Its methods panic with ErrUsage
// errors on malformed input and return the builder for chaining.
type CodeBlockBuilder struct {
	formatParts []string
	args        []interface{}
}

// NewCodeBlockBuilder returns an empty builder.
func NewCodeBlockBuilder() *CodeBlockBuilder {
	return &CodeBlockBuilder{}
}

// IsEmpty reports whether nothing has been added.
func (b *CodeBlockBuilder) IsEmpty() bool {
	return len(b.formatParts) == 0
}

// AddCode appends the contents of cb.
func (b *CodeBlockBuilder) AddCode(cb CodeBlock) *CodeBlockBuilder {
	b.formatParts = append(b.formatParts, cb.formatParts...)
	b.args = append(b.args, cb.args...)
	return b
}

// AddStatement appends format as a single statement followed by a newline.
func (b *CodeBlockBuilder) AddStatement(format string, args ...interface{}) *CodeBlockBuilder {
	b.Add(OpenStatement)
	b.Add(format, args...)
	return b.Add("\n" + CloseStatement)
}

// BeginControlFlow starts a block like `if (x) {`. The opening brace is added
// unless controlFlow already ends an open brace, as in a lambda header
// `list.forEach { item ->`. The following code is indented.
func (b *CodeBlockBuilder) BeginControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	b.Add(withOpeningBrace(controlFlow), args...)
	return b.Indent()
}

func withOpeningBrace(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '{' {
			return s + "\n"
		} else if s[i] == '}' {
			break
		}
	}
	return s + " {\n"
}

// NextControlFlow closes the current block and opens another, like
// `} else {`.
func (b *CodeBlockBuilder) NextControlFlow(controlFlow string, args ...interface{}) *CodeBlockBuilder {
	b.Unindent()
	b.Add("} "+controlFlow+" {\n", args...)
	return b.Indent()
}

// EndControlFlow closes the current block.
func (b *CodeBlockBuilder) EndControlFlow() *CodeBlockBuilder {
	b.Unindent()
	return b.Add("}\n")
}

// Indent increases the indentation of the code that follows.
func (b *CodeBlockBuilder) Indent() *CodeBlockBuilder {
	b.formatParts = append(b.formatParts, Indent)
	return b
}

// Unindent decreases the indentation of the code that follows.
func (b *CodeBlockBuilder) Unindent() *CodeBlockBuilder {
	b.formatParts = append(b.formatParts, Unindent)
	return b
}

// WithIndent runs fn with the indentation increased by one level.
func (b *CodeBlockBuilder) WithIndent(fn func(b *CodeBlockBuilder)) *CodeBlockBuilder {
	b.Indent()
	fn(b)
	return b.Unindent()
}

// Clear removes everything added so far.
func (b *CodeBlockBuilder) Clear() *CodeBlockBuilder {
	b.formatParts = nil
	b.args = nil
	return b
}

// Build returns the accumulated code block.
func (b *CodeBlockBuilder) Build() CodeBlock {
	return CodeBlock{formatParts: slices.Clone(b.formatParts), args: slices.Clone(b.args)}
}

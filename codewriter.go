package kotlinpoet

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// codeWriter renders specs and code blocks. It tracks indentation, the
// enclosing types (to resolve nested type names) and, while collecting
// imports, the types and members that could be imported. A codeWriter is
// used for a single render and is not safe for concurrent use.
type codeWriter struct {
	out  *lineWrapper
	opts RenderOptions

	indentLevel     int
	kdoc            bool
	comment         bool
	trailingNewline bool
	// statementLine is -1 outside a statement, otherwise the number of
	// lines the current statement has spanned so far.
	statementLine int

	packageName   string
	inPackage     bool
	typeSpecStack []*TypeSpec

	imports         map[string]Import
	importedTypes   map[string]*ClassName
	importedMembers map[string]MemberName

	// Populated while rendering: names that could be imported, keyed by the
	// simple name they would be referenced by, in order of first use.
	importableTypes   map[string][]*ClassName
	importableMembers map[string][]MemberName
	// Simple names used unqualified in the output.
	referencedNames map[string]struct{}
}

func newCodeWriter(out io.StringWriter, opts RenderOptions, plan *ImportPlan) *codeWriter {
	opts = opts.withDefaults()
	w := &codeWriter{
		out:               newLineWrapper(out, opts.Indent, opts.ColumnLimit),
		opts:              opts,
		statementLine:     -1,
		imports:           map[string]Import{},
		importedTypes:     map[string]*ClassName{},
		importedMembers:   map[string]MemberName{},
		importableTypes:   map[string][]*ClassName{},
		importableMembers: map[string][]MemberName{},
		referencedNames:   map[string]struct{}{},
	}
	if plan != nil {
		for k, v := range plan.imports {
			w.imports[k] = v
		}
		for k, v := range plan.types {
			w.importedTypes[k] = v
		}
		for k, v := range plan.members {
			w.importedMembers[k] = v
		}
	}
	return w
}

// renderString renders with no imports and no column limit, so every class
// name comes out fully qualified.
func renderString(fn func(w *codeWriter)) string {
	var sb strings.Builder
	w := newCodeWriter(&sb, RenderOptions{Indent: DefaultIndent, ColumnLimit: math.MaxInt}, nil)
	fn(w)
	mustNotFail(w.close())
	return sb.String()
}

// renderInto runs fn with this writer's state but a separate output, and
// returns what fn wrote.
func (w *codeWriter) renderInto(fn func()) string {
	var sb strings.Builder
	saved := w.out
	w.out = newLineWrapper(&sb, DefaultIndent, math.MaxInt)
	fn()
	mustNotFail(w.out.close())
	w.out = saved
	return sb.String()
}

func (w *codeWriter) close() error {
	return w.out.close()
}

func (w *codeWriter) indent(levels int) {
	w.indentLevel += levels
}

func (w *codeWriter) unindent(levels int) {
	requiref(w.indentLevel-levels >= 0, "cannot unindent %d from %d", levels, w.indentLevel)
	w.indentLevel -= levels
}

func (w *codeWriter) pushPackage(pkg string) {
	if w.inPackage {
		panic(errors.AssertionFailedf("package already set: %s", w.packageName))
	}
	w.packageName = pkg
	w.inPackage = true
}

func (w *codeWriter) popPackage() {
	if !w.inPackage {
		panic(errors.AssertionFailedf("package not set"))
	}
	w.packageName = ""
	w.inPackage = false
}

func (w *codeWriter) pushType(t *TypeSpec) {
	w.typeSpecStack = append(w.typeSpecStack, t)
}

func (w *codeWriter) popType() {
	w.typeSpecStack = w.typeSpecStack[:len(w.typeSpecStack)-1]
}

func (w *codeWriter) emitComment(cb CodeBlock) {
	w.trailingNewline = true
	w.comment = true
	defer func() { w.comment = false }()
	w.emitCodeBlock(cb, false, false)
	w.emit("\n")
}

func (w *codeWriter) emitKdoc(cb CodeBlock) {
	if cb.IsEmpty() {
		return
	}
	w.emit("/**\n")
	w.kdoc = true
	func() {
		defer func() { w.kdoc = false }()
		w.emitCodeBlock(cb, false, true)
	}()
	w.emit(" */\n")
}

func (w *codeWriter) emitAnnotations(annotations []*AnnotationSpec, inline bool) {
	for _, a := range annotations {
		a.emit(w, inline, false)
		if inline {
			w.emit(" ")
		} else {
			w.emit("\n")
		}
	}
}

// emitModifiers writes modifiers in canonical order, skipping those already
// implied by the context. An implied `public` is only written in explicit
// API mode.
func (w *codeWriter) emitModifiers(modifiers, implicit modifierSet) {
	if w.shouldEmitPublic(modifiers, implicit) {
		w.emit(Public.Keyword())
		w.emit(" ")
	}
	for _, m := range modifiers.list() {
		if m == Public || implicit.contains(m) {
			continue
		}
		w.emit(m.Keyword())
		w.emit(" ")
	}
}

func (w *codeWriter) shouldEmitPublic(modifiers, implicit modifierSet) bool {
	if !w.opts.ExplicitAPI {
		return modifiers.contains(Public) && !implicit.contains(Public)
	}
	if modifiers.contains(Public) {
		return true
	}
	if !implicit.contains(Public) || modifiers.contains(Override) {
		return false
	}
	return !modifiers.containsAny(Private, Internal, Protected)
}

func (w *codeWriter) emitContextReceivers(receivers []TypeName, suffix string) {
	if len(receivers) == 0 {
		return
	}
	blocks := make([]CodeBlock, len(receivers))
	for i, r := range receivers {
		blocks[i] = CodeBlockOf("%T", r)
	}
	w.emitCodeBlock(JoinToCodeWith(blocks, ", ", "context(", ")"), false, false)
	w.emit(suffix)
}

func (w *codeWriter) emitTypeVariables(typeVariables []*TypeVariableName) {
	if len(typeVariables) == 0 {
		return
	}
	w.emit("<")
	for i, tv := range typeVariables {
		if i > 0 {
			w.emit(", ")
		}
		if tv.variance != noVariance {
			w.emit(tv.variance.Keyword() + " ")
		}
		if tv.reified {
			w.emit("reified ")
		}
		w.emitCode("%L", tv.name)
		if len(tv.bounds) == 1 && !TypesEqual(tv.bounds[0], NullableAny) {
			w.emitCode(" : %T", tv.bounds[0])
		}
	}
	w.emit(">")
}

func (w *codeWriter) emitWhereBlock(typeVariables []*TypeVariableName) {
	first := true
	for _, tv := range typeVariables {
		if len(tv.bounds) <= 1 {
			continue
		}
		for _, bound := range tv.bounds {
			if first {
				w.emitCode(" where ")
			} else {
				w.emitCode(", ")
			}
			w.emitCode("%L : %T", tv.name, bound)
			first = false
		}
	}
}

func (w *codeWriter) emitCode(format string, args ...interface{}) {
	w.emitCodeBlock(CodeBlockOf(format, args...), false, false)
}

func (w *codeWriter) emitCodeBlock(cb CodeBlock, constantContext, ensureTrailingNewline bool) {
	a := 0
	for _, part := range cb.formatParts {
		switch part {
		case "%L":
			w.emitLiteral(cb.args[a], constantContext)
			a++
		case "%N":
			w.emit(cb.args[a].(string))
			a++
		case "%S":
			w.emitStringLiteral(cb.args[a], false, constantContext)
			a++
		case "%P":
			arg := cb.args[a]
			if nested, ok := arg.(CodeBlock); ok {
				arg = w.renderInto(func() { w.emitCodeBlock(nested, false, false) })
			}
			w.emitStringLiteral(arg, true, constantContext)
			a++
		case "%T":
			emitTypeName(w, cb.args[a].(TypeName))
			a++
		case "%M":
			cb.args[a].(MemberName).emit(w)
			a++
		case "%%":
			w.emit("%")
		case Indent:
			w.indent(1)
		case Unindent:
			w.unindent(1)
		case OpenStatement:
			if w.statementLine != -1 {
				panic(errors.WithHint(
					usageErrorf("can't open a new statement until the current statement is closed (« followed by another « without a closing »)\n%s", describeCodeBlock(cb)),
					"use AddStatement for each statement rather than nesting them"))
			}
			w.statementLine = 0
		case CloseStatement:
			if w.statementLine == -1 {
				panic(errors.WithHint(
					usageErrorf("can't close a statement that hasn't been opened (» is not preceded by an opening «)\n%s", describeCodeBlock(cb)),
					"check that code blocks passed to %L are balanced"))
			}
			if w.statementLine > 0 {
				w.unindent(2)
			}
			w.statementLine = -1
		default:
			w.emit(part)
		}
	}
	if ensureTrailingNewline && w.out.hasPendingSegments() {
		w.emit("\n")
	}
}

func describeCodeBlock(cb CodeBlock) string {
	parts := make([]string, len(cb.formatParts))
	for i, p := range cb.formatParts {
		var sb strings.Builder
		for _, r := range p {
			sb.WriteString(characterLiteral(r))
		}
		parts[i] = sb.String()
	}
	return fmt.Sprintf("- Format parts: [%s]\n- Arguments: %v", strings.Join(parts, ", "), cb.args)
}

func (w *codeWriter) emitStringLiteral(arg interface{}, raw, constantContext bool) {
	s, ok := arg.(string)
	if !ok {
		w.emitNonWrapping("null")
		return
	}
	w.emitNonWrapping(stringLiteralWithQuotes(s, raw, constantContext))
}

func (w *codeWriter) emitLiteral(o interface{}, constantContext bool) {
	switch o := o.(type) {
	case nil:
		w.emit("null")
	case *TypeSpec:
		o.emit(w, "", 0)
	case *AnnotationSpec:
		o.emit(w, true, constantContext)
	case *PropertySpec:
		o.emit(w, 0, propertyEmitOptions{withInitializer: true, emitKdoc: true})
	case *FunSpec:
		o.emit(w, "", newModifierSet(Public), true)
	case *TypeAliasSpec:
		o.emit(w)
	case CodeBlock:
		w.emitCodeBlock(o, constantContext, false)
	case TypeName:
		emitTypeName(w, o)
	case MemberName:
		o.emit(w)
	case string:
		w.emit(o)
	default:
		w.emit(fmt.Sprint(o))
	}
}

// lookupName returns the shortest name that refers to className in the
// current context: a simple or partially qualified name when className is
// imported, nested in the current type or in the current package, and the
// canonical name otherwise.
func (w *codeWriter) lookupName(className *ClassName) string {
	nameResolved := false
	for c := className; c != nil; c = c.EnclosingClassName() {
		alias := w.imports[c.CanonicalName()].Alias
		simpleName := c.SimpleName()
		if alias != "" {
			simpleName = alias
		}
		resolved := w.resolve(simpleName)
		nameResolved = resolved != nil
		if resolved != nil && resolved.sameClass(c) {
			if alias == "" {
				w.referencedNames[className.TopLevelClassName().SimpleName()] = struct{}{}
			}
			nested := className.names[len(c.names):]
			if len(nested) == 0 {
				return simpleName
			}
			return simpleName + "." + strings.Join(nested, ".")
		}
	}

	if nameResolved {
		return className.CanonicalName()
	}

	if w.inPackage && w.packageName == className.PackageName() {
		w.referencedNames[className.TopLevelClassName().SimpleName()] = struct{}{}
		return strings.Join(className.SimpleNames(), ".")
	}

	if !w.kdoc {
		w.importableType(className)
	}
	return className.CanonicalName()
}

func (w *codeWriter) lookupMemberName(m MemberName) string {
	simpleName := m.simpleName
	if alias := w.imports[m.CanonicalName()].Alias; alias != "" {
		simpleName = alias
	}
	if imported, ok := w.importedMembers[simpleName]; ok {
		if imported.equal(m) {
			// A method of the enclosing type with the same name would win.
			if !m.isExtension && simpleName == m.simpleName && w.isMethodNameUsedInCurrentContext(simpleName) {
				return m.CanonicalName()
			}
			return simpleName
		}
		if m.enclosingClass != nil {
			return w.lookupName(m.enclosingClass) + "." + simpleName
		}
	}

	if w.inPackage && w.packageName == m.packageName && m.enclosingClass == nil {
		w.referencedNames[m.simpleName] = struct{}{}
		return m.simpleName
	}

	if !w.kdoc && (m.isExtension || !w.isMethodNameUsedInCurrentContext(m.simpleName)) {
		w.importableMember(m)
	}
	return m.CanonicalName()
}

func (w *codeWriter) isMethodNameUsedInCurrentContext(simpleName string) bool {
	for i := len(w.typeSpecStack) - 1; i >= 0; i-- {
		t := w.typeSpecStack[i]
		for _, f := range t.funSpecs {
			if f.name == simpleName {
				return true
			}
		}
		if !t.modifiers.contains(Inner) {
			break
		}
	}
	return false
}

func (w *codeWriter) importableType(className *ClassName) {
	candidate := className.TopLevelClassName()
	simpleName := candidate.SimpleName()
	if alias := w.imports[className.CanonicalName()].Alias; alias != "" {
		candidate, simpleName = className, alias
	}
	// A plain member with the same name stays qualified instead; extension
	// members share the collision group and get aliased.
	if slices.ContainsFunc(w.importableMembers[simpleName], func(m MemberName) bool { return !m.isExtension }) {
		return
	}
	w.importableTypes[simpleName] = append(w.importableTypes[simpleName], candidate)
}

func (w *codeWriter) importableMember(m MemberName) {
	if m.packageName == "" {
		return
	}
	simpleName := m.simpleName
	if alias := w.imports[m.CanonicalName()].Alias; alias != "" {
		simpleName = alias
	}
	// Extension members cannot be called qualified, so they are always
	// candidates, even when a type already claims the name.
	if _, clash := w.importableTypes[simpleName]; clash && !m.isExtension {
		return
	}
	w.importableMembers[simpleName] = append(w.importableMembers[simpleName], m)
}

// resolve returns the class that simpleName refers to in the current
// context, or nil.
func (w *codeWriter) resolve(simpleName string) *ClassName {
	for i := len(w.typeSpecStack) - 1; i >= 0; i-- {
		if w.typeSpecStack[i].hasNestedType(simpleName) {
			return w.stackClassName(i, simpleName)
		}
	}
	if len(w.typeSpecStack) > 0 {
		top := w.typeSpecStack[0]
		if top.name == simpleName {
			return NewClassName(w.packageName, simpleName)
		}
		if top.isEnum() && top.hasEnumConstant(simpleName) {
			return NewClassName(w.packageName, top.name).NestedClass(simpleName)
		}
	}
	return w.importedTypes[simpleName]
}

func (w *codeWriter) stackClassName(depth int, simpleName string) *ClassName {
	c := NewClassName(w.packageName, w.typeSpecStack[0].name)
	for i := 1; i <= depth; i++ {
		c = c.NestedClass(w.typeSpecStack[i].name)
	}
	return c.NestedClass(simpleName)
}

// emit writes s, taking care of indentation, comment prefixes and the extra
// indentation of wrapped statements.
func (w *codeWriter) emit(s string) {
	w.emitText(s, false)
}

func (w *codeWriter) emitNonWrapping(s string) {
	w.emitText(s, true)
}

func (w *codeWriter) emitText(s string, nonWrapping bool) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			if (w.kdoc || w.comment) && w.trailingNewline {
				w.emitIndentation()
				if w.kdoc {
					w.out.appendNonWrapping(" *")
				} else {
					w.out.appendNonWrapping("//")
				}
			}
			w.out.newline()
			w.trailingNewline = true
			if w.statementLine != -1 {
				if w.statementLine == 0 {
					w.indent(2)
				}
				w.statementLine++
			}
		}
		if line == "" {
			continue
		}
		if w.trailingNewline {
			w.emitIndentation()
			if w.kdoc {
				w.out.appendNonWrapping(" * ")
			} else if w.comment {
				w.out.appendNonWrapping("// ")
			}
		}
		if nonWrapping {
			w.out.appendNonWrapping(line)
		} else if w.kdoc {
			w.out.append(line, w.indentLevel, " * ")
		} else {
			w.out.append(line, w.indentLevel+2, "")
		}
		w.trailingNewline = false
	}
}

func (w *codeWriter) emitIndentation() {
	for i := 0; i < w.indentLevel; i++ {
		w.out.appendNonWrapping(w.opts.Indent)
	}
}

// importCandidates returns what the collecting pass learned: the importable
// types and members by simple name, and the simple names used unqualified.
func (w *codeWriter) importCandidates() importCandidates {
	return importCandidates{
		types:      w.importableTypes,
		members:    w.importableMembers,
		referenced: w.referencedNames,
	}
}

package kotlinpoet

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileMember is a top-level declaration of a Kotlin file: a *TypeSpec, a
// *FunSpec, a *PropertySpec or a *TypeAliasSpec.
type FileMember interface {
	emitFileMember(w *codeWriter)
}

func (t *TypeSpec) emitFileMember(w *codeWriter) {
	t.emit(w, "", 0)
}

func (f *FunSpec) emitFileMember(w *codeWriter) {
	f.emit(w, "", newModifierSet(Public), true)
}

func (p *PropertySpec) emitFileMember(w *codeWriter) {
	p.emit(w, newModifierSet(Public), propertyEmitOptions{withInitializer: true, emitKdoc: true})
}

func (a *TypeAliasSpec) emitFileMember(w *codeWriter) {
	a.emit(w)
}

func memberName(m FileMember) string {
	switch m := m.(type) {
	case *TypeSpec:
		return m.name
	case *FunSpec:
		return m.name
	case *PropertySpec:
		return m.name
	case *TypeAliasSpec:
		return m.name
	default:
		return ""
	}
}

// FileSpec represents a Kotlin source file. It has methods for adding
// top-level declarations and explicit imports. Types and members referenced
// through ClassName and MemberName values are imported automatically when
// the file is rendered; colliding simple names are imported with aliases.
//
// To construct a FileSpec, use NewFileSpec.
type FileSpec struct {
	packageName string
	name        string
	comment     CodeBlock
	annotations []*AnnotationSpec
	members     []FileMember
	// explicit imports, keyed by qualified name
	imports map[string]Import
	opts    RenderOptions
}

// NewFileSpec returns an empty file named name (without the ".kt"
// extension) in package pkg. The empty package is the default package.
func NewFileSpec(pkg, name string) *FileSpec {
	requiref(name != "", "file name is empty")
	requiref(filepath.Base(name) == name && !strings.ContainsAny(name, `/\`),
		"file name %q must be a base name with no path", name)
	return &FileSpec{
		packageName: pkg,
		name:        strings.TrimSuffix(name, ".kt"),
		imports:     map[string]Import{},
		opts:        DefaultRenderOptions(),
	}
}

// FileForType returns a file in package pkg that declares only t and is
// named after it.
func FileForType(pkg string, t *TypeSpec) *FileSpec {
	requiref(t.name != "", "anonymous classes cannot be file members")
	return NewFileSpec(pkg, t.name).AddType(t)
}

// PackageName returns the file's package.
func (f *FileSpec) PackageName() string {
	return f.packageName
}

// Name returns the file name without extension.
func (f *FileSpec) Name() string {
	return f.name
}

// Members returns the top-level declarations in insertion order.
func (f *FileSpec) Members() []FileMember {
	return slices.Clone(f.members)
}

// RelativePath returns the path of the file relative to a source root,
// with one directory per package segment, like com/example/Widget.kt.
func (f *FileSpec) RelativePath() string {
	var parts []string
	if f.packageName != "" {
		parts = strings.Split(f.packageName, ".")
	}
	parts = append(parts, f.name+".kt")
	return filepath.Join(parts...)
}

// Options sets the render options. Zero fields fall back to defaults.
func (f *FileSpec) Options(opts RenderOptions) *FileSpec {
	f.opts = opts
	return f
}

// AddFileComment appends to the comment written above the package
// declaration.
func (f *FileSpec) AddFileComment(format string, args ...interface{}) *FileSpec {
	f.comment = f.comment.ToBuilder().Add(format, args...).Build()
	return f
}

// AddAnnotation adds a file annotation, which is always written with the
// file: use-site target.
func (f *FileSpec) AddAnnotation(a *AnnotationSpec) *FileSpec {
	requiref(a.useSiteTarget == NoUseSiteTarget || a.useSiteTarget == FileTarget,
		"file annotation %v has use-site target %s", a.typ, a.useSiteTarget.Keyword())
	c := *a
	c.useSiteTarget = FileTarget
	f.annotations = append(f.annotations, &c)
	return f
}

// AddType adds a top-level type.
func (f *FileSpec) AddType(t *TypeSpec) *FileSpec {
	requiref(!t.isAnonymous(), "anonymous classes cannot be file members")
	return f.addMember(t)
}

// AddFunction adds a top-level function.
func (f *FileSpec) AddFunction(fn *FunSpec) *FileSpec {
	requiref(!fn.IsConstructor() && !fn.IsAccessor(), "cannot add %s to file %s", fn.name, f.name)
	return f.addMember(fn)
}

// AddProperty adds a top-level property.
func (f *FileSpec) AddProperty(p *PropertySpec) *FileSpec {
	return f.addMember(p)
}

// AddTypeAlias adds a type alias.
func (f *FileSpec) AddTypeAlias(a *TypeAliasSpec) *FileSpec {
	return f.addMember(a)
}

func (f *FileSpec) addMember(m FileMember) *FileSpec {
	f.members = append(f.members, m)
	return f
}

// AddImport adds explicit imports of the named members or classes of pkg,
// which may be a package or the canonical name of a class. Explicit imports
// are written even if nothing in the file references them.
func (f *FileSpec) AddImport(pkg string, names ...string) *FileSpec {
	requiref(len(names) > 0, "no names to import from %s", pkg)
	for _, name := range names {
		requiref(name != "*", "wildcard imports are not allowed")
		qualified := name
		if pkg != "" {
			qualified = pkg + "." + name
		}
		f.imports[qualified] = Import{QualifiedName: qualified}
	}
	return f
}

// AddClassImport imports the named members of c.
func (f *FileSpec) AddClassImport(c *ClassName, names ...string) *FileSpec {
	return f.AddImport(c.CanonicalName(), names...)
}

// AddMemberImport imports m.
func (f *FileSpec) AddMemberImport(m MemberName) *FileSpec {
	canonical := m.CanonicalName()
	f.imports[canonical] = Import{QualifiedName: canonical}
	return f
}

// AddAliasedImport imports c under alias. References to c and its nested
// classes use the alias.
func (f *FileSpec) AddAliasedImport(c *ClassName, alias string) *FileSpec {
	return f.addAliased(c.CanonicalName(), alias)
}

// AddAliasedMemberImport imports m under alias.
func (f *FileSpec) AddAliasedMemberImport(m MemberName, alias string) *FileSpec {
	return f.addAliased(m.CanonicalName(), alias)
}

func (f *FileSpec) addAliased(canonical, alias string) *FileSpec {
	requiref(alias != "", "empty alias for %s", canonical)
	f.imports[canonical] = Import{QualifiedName: canonical, Alias: alias}
	return f
}

// CollectImports runs the collecting pass over the file and returns the
// resulting import plan.
func (f *FileSpec) CollectImports() (plan *ImportPlan, err error) {
	defer catch(&err)
	return f.collectImports(), nil
}

func (f *FileSpec) collectImports() *ImportPlan {
	opts := f.opts
	opts.ColumnLimit = math.MaxInt
	explicit := newImportPlan()
	for k, v := range f.imports {
		explicit.imports[k] = v
	}
	w := newCodeWriter(io.Discard.(io.StringWriter), opts, explicit)
	f.emit(w, true)
	mustNotFail(w.close())

	plan := resolveImports(w.importCandidates(), f.imports)
	Logger().Debug("collected imports",
		zap.String(fieldFile, f.RelativePath()),
		zap.Int(fieldImports, len(plan.imports)))
	return plan
}

// Render runs the final pass with the given plan and returns the Kotlin
// source. A nil plan is computed with CollectImports first.
func (f *FileSpec) Render(plan *ImportPlan) (src string, err error) {
	defer catch(&err)
	if plan == nil {
		plan = f.collectImports()
	}
	var buf strings.Builder
	w := newCodeWriter(&buf, f.opts, plan)
	f.emit(w, false)
	if err := w.close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteTo renders the file and writes it to out. Nothing is written if
// rendering fails.
func (f *FileSpec) WriteTo(out io.Writer) (int64, error) {
	src, err := f.Render(nil)
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(out, src)
	return int64(n), err
}

// String renders the file, panicking on error.
func (f *FileSpec) String() string {
	src, err := f.Render(nil)
	mustNotFail(err)
	return src
}

func (f *FileSpec) emit(w *codeWriter, collecting bool) {
	if !f.comment.IsEmpty() {
		w.emitComment(f.comment)
	}
	if len(f.annotations) > 0 {
		w.emitAnnotations(f.annotations, false)
		w.emit("\n")
	}

	w.pushPackage(f.packageName)
	if f.packageName != "" {
		w.emitCode("package %L\n", escapeSegmentsIfNecessary(f.packageName))
		w.emit("\n")
	}

	imports := f.importsToWrite(w, collecting)
	for _, imp := range imports {
		w.emitCode("import %L\n", imp.String())
	}
	if len(imports) > 0 {
		w.emit("\n")
	}

	for _, m := range f.members {
		// Imports must not shadow the file's own declarations.
		w.referencedNames[memberName(m)] = struct{}{}
	}
	for i, m := range f.members {
		if i > 0 {
			w.emit("\n")
		}
		m.emitFileMember(w)
	}
	w.popPackage()
}

// importsToWrite returns the plain imports sorted, minus those from default
// packages, followed by the aliased imports sorted.
func (f *FileSpec) importsToWrite(w *codeWriter, collecting bool) []Import {
	var defaults map[string]struct{}
	if !collecting {
		defaults = make(map[string]struct{}, len(f.opts.DefaultImports))
		for _, pkg := range f.opts.DefaultImports {
			defaults[escapeSegmentsIfNecessary(pkg)] = struct{}{}
		}
	}
	var ret []Import
	for _, imp := range sortImports(w.imports) {
		if imp.Alias == "" {
			if _, ok := defaults[escapeSegmentsIfNecessary(imp.packageName())]; ok {
				continue
			}
		}
		ret = append(ret, imp)
	}
	return ret
}

// WriteFile renders f and writes it to out.
func WriteFile(out io.Writer, f *FileSpec) error {
	_, err := f.WriteTo(out)
	return err
}

// WriteFiles renders each file and writes it to the writer that outFn
// returns for the file's relative path. Writers that implement io.Closer
// are closed after the file is written.
func WriteFiles(outFn func(path string) (io.Writer, error), files ...*FileSpec) error {
	for _, file := range files {
		if err := writeFile(outFn, file); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(outFn func(path string) (io.Writer, error), file *FileSpec) (err error) {
	path := file.RelativePath()
	src, err := file.Render(nil)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	out, err := outFn(path)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	if c, ok := out.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "%s", path)
			}
		}()
	}
	if _, err := io.Copy(out, bytes.NewBufferString(src)); err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	Logger().Debug("wrote file", zap.String(fieldPath, path))
	return nil
}

// WriteFilesToFileSystem writes the files under rootDir, creating package
// directories as needed. Files are rendered concurrently.
func WriteFilesToFileSystem(rootDir string, files ...*FileSpec) error {
	outFn := func(path string) (io.Writer, error) {
		fullPath := filepath.Join(rootDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return nil, err
		}
		return os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, file := range files {
		file := file
		g.Go(func() error {
			return writeFile(outFn, file)
		})
	}
	return g.Wait()
}

package schema

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/cockroachdb/errors"

	kotlinpoet "github.com/square/kotlinpoet-sub003"
)

// builtins are the kotlin and kotlin.collections types that may be written
// without a package.
var builtins = map[string]*kotlinpoet.ClassName{}

func init() {
	for _, c := range []*kotlinpoet.ClassName{
		kotlinpoet.AnyType, kotlinpoet.ArrayType, kotlinpoet.UnitType, kotlinpoet.BooleanType,
		kotlinpoet.ByteType, kotlinpoet.ShortType, kotlinpoet.IntType, kotlinpoet.LongType,
		kotlinpoet.CharType, kotlinpoet.FloatType, kotlinpoet.DoubleType, kotlinpoet.StringType,
		kotlinpoet.CharSequenceType, kotlinpoet.ComparableType, kotlinpoet.ThrowableType,
		kotlinpoet.NothingType, kotlinpoet.NumberType,
		kotlinpoet.Iterable, kotlinpoet.Collection, kotlinpoet.List, kotlinpoet.Set, kotlinpoet.Map,
		kotlinpoet.MutableIterable, kotlinpoet.MutableCollection, kotlinpoet.MutableList,
		kotlinpoet.MutableSet, kotlinpoet.MutableMap,
		kotlinpoet.BooleanArray, kotlinpoet.ByteArray, kotlinpoet.CharArray, kotlinpoet.ShortArray,
		kotlinpoet.IntArray, kotlinpoet.LongArray, kotlinpoet.FloatArray, kotlinpoet.DoubleArray,
		kotlinpoet.UByteType, kotlinpoet.UShortType, kotlinpoet.UIntType, kotlinpoet.ULongType,
	} {
		builtins[c.SimpleName()] = c
	}
}

// ParseTypeName parses a Kotlin type as written in source, such as
//
//	kotlin.collections.Map<String, com.example.User?>
//	suspend (Int, String) -> Unit
//	(() -> Unit)?
//
// Qualified names are split into package and classes by case, as
// kotlinpoet.BestGuess does. A bare name is a type variable if it is in
// typeVariables, a builtin such as String or List, or otherwise a class in
// pkg.
func ParseTypeName(s, pkg string, typeVariables ...string) (t kotlinpoet.TypeName, err error) {
	p := &typeParser{pkg: pkg, typeVariables: map[string]bool{}}
	for _, tv := range typeVariables {
		p.typeVariables[tv] = true
	}
	p.s.Init(strings.NewReader(s))
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = s
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		p.fail("%s", msg)
	}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			err = errors.Newf("invalid type %q: %s", s, pe.msg)
		}
	}()
	p.next()
	t = p.parseType()
	if p.tok != scanner.EOF {
		p.fail("unexpected %s", p.describe())
	}
	return t, nil
}

type parseError struct {
	msg string
}

type typeParser struct {
	s             scanner.Scanner
	tok           rune
	pkg           string
	typeVariables map[string]bool
}

func (p *typeParser) fail(format string, args ...interface{}) {
	panic(parseError{msg: fmt.Sprintf("col %d: ", p.s.Position.Column) + fmt.Sprintf(format, args...)})
}

func (p *typeParser) next() {
	p.tok = p.s.Scan()
}

func (p *typeParser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", p.s.TokenText())
}

func (p *typeParser) expect(tok rune) {
	if p.tok != tok {
		p.fail("expected %q, found %s", tok, p.describe())
	}
	p.next()
}

func (p *typeParser) parseType() kotlinpoet.TypeName {
	var t kotlinpoet.TypeName
	switch {
	case p.tok == scanner.Ident && p.s.TokenText() == "suspend":
		p.next()
		if p.tok != '(' {
			p.fail("expected a function type after suspend")
		}
		p.next()
		params := p.parseList(')')
		lambda, ok := p.parseLambda(params)
		if !ok {
			p.fail("expected -> after suspend parameter list")
		}
		return lambda.Suspending()
	case p.tok == '(':
		p.next()
		elems := p.parseList(')')
		if lambda, ok := p.parseLambda(elems); ok {
			return lambda
		}
		if len(elems) != 1 {
			p.fail("expected -> after parameter list")
		}
		t = elems[0]
	case p.tok == scanner.Ident:
		t = p.parseClassType()
	default:
		p.fail("expected a type, found %s", p.describe())
	}
	if p.tok == '?' {
		p.next()
		t = kotlinpoet.Nullable(t)
	}
	return t
}

// parseList parses comma-separated types up to and including end.
func (p *typeParser) parseList(end rune) []kotlinpoet.TypeName {
	var ret []kotlinpoet.TypeName
	for p.tok != end {
		if len(ret) > 0 {
			p.expect(',')
		}
		ret = append(ret, p.parseType())
	}
	p.next()
	return ret
}

func (p *typeParser) parseLambda(params []kotlinpoet.TypeName) (*kotlinpoet.LambdaTypeName, bool) {
	if p.tok != '-' {
		return nil, false
	}
	p.next()
	p.expect('>')
	return kotlinpoet.LambdaOf(p.parseType(), params...), true
}

func (p *typeParser) parseClassType() kotlinpoet.TypeName {
	segments := []string{p.s.TokenText()}
	p.next()
	for p.tok == '.' {
		p.next()
		if p.tok != scanner.Ident {
			p.fail("expected a name after '.', found %s", p.describe())
		}
		segments = append(segments, p.s.TokenText())
		p.next()
	}

	var class *kotlinpoet.ClassName
	switch name := segments[0]; {
	case len(segments) > 1:
		var err error
		class, err = bestGuess(strings.Join(segments, "."))
		if err != nil {
			p.fail("%v", err)
		}
	case p.typeVariables[name]:
		return kotlinpoet.NewTypeVariable(name)
	case builtins[name] != nil:
		class = builtins[name]
	default:
		class = kotlinpoet.NewClassName(p.pkg, name)
	}

	if p.tok != '<' {
		return class
	}
	p.next()
	var args []kotlinpoet.TypeName
	for p.tok != '>' {
		if len(args) > 0 {
			p.expect(',')
		}
		args = append(args, p.parseTypeArgument())
	}
	p.next()
	if len(args) == 0 {
		p.fail("empty type argument list")
	}
	return class.Parameterized(args...)
}

func (p *typeParser) parseTypeArgument() kotlinpoet.TypeName {
	if p.tok == '*' {
		p.next()
		return kotlinpoet.Star
	}
	if p.tok == scanner.Ident {
		switch p.s.TokenText() {
		case "out":
			p.next()
			return kotlinpoet.ProducerOf(p.parseType())
		case "in":
			p.next()
			return kotlinpoet.ConsumerOf(p.parseType())
		}
	}
	return p.parseType()
}

func bestGuess(s string) (c *kotlinpoet.ClassName, err error) {
	defer recoverUsage(&err)
	return kotlinpoet.BestGuess(s), nil
}

// recoverUsage turns a kotlinpoet usage panic into an error.
func recoverUsage(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && errors.Is(e, kotlinpoet.ErrUsage) {
		*err = e
		return
	}
	panic(r)
}

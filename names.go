package kotlinpoet

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Decapitalize returns s with its first character lower-cased. It does not
// check whether s is a valid Kotlin identifier.
func Decapitalize(s string) string {
	if s == "" {
		return s
	}
	r, sz := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		panic(fmt.Sprintf("%q is not valid UTF8", s))
	}
	return cases.Lower(language.Und).String(s[:sz]) + s[sz:]
}

// Capitalize returns s with its first character title-cased, leaving the
// rest of the string untouched ("fooBar" becomes "FooBar").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, sz := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		panic(fmt.Sprintf("%q is not valid UTF8", s))
	}
	// Casers carry state, so each call gets its own.
	return cases.Title(language.Und, cases.NoLower).String(s[:sz]) + s[sz:]
}

// keywords are Kotlin's hard, soft and modifier keywords, plus a few names
// that still break code when left unescaped.
var keywords = map[string]struct{}{}

func init() {
	for _, k := range []string{
		// hard
		"as", "break", "class", "continue", "do", "else", "false", "for", "fun", "if", "in",
		"interface", "is", "null", "object", "package", "return", "super", "this", "throw",
		"true", "try", "typealias", "typeof", "val", "var", "when", "while",
		// soft
		"by", "catch", "constructor", "delegate", "dynamic", "field", "file", "finally", "get",
		"import", "init", "param", "property", "receiver", "set", "setparam", "where",
		// modifiers
		"actual", "abstract", "annotation", "companion", "const", "crossinline", "data", "enum",
		"expect", "external", "final", "infix", "inline", "inner", "internal", "lateinit",
		"noinline", "open", "operator", "out", "override", "private", "protected", "public",
		"reified", "sealed", "suspend", "tailrec", "value", "vararg",
		// no longer keywords, but unsafe unescaped
		"header", "impl",
		// reserved
		"yield",
	} {
		keywords[k] = struct{}{}
	}
}

// IsKeyword reports whether s is a Kotlin keyword.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$' ||
		unicode.Is(unicode.Sc, r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Pc, r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Cf, r)
}

const illegalIdentifierChars = ".;[]/<>:\\"

func alreadyEscaped(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`")
}

func allUnderscores(s string) bool {
	return s != "" && strings.Trim(s, "_") == ""
}

func isJavaIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) {
			return false
		}
		if i > 0 && !isIdentifierPart(r) {
			return false
		}
	}
	return s != ""
}

// escapeIfNecessary wraps s in backticks when it is not usable as a plain
// Kotlin identifier: keywords, names containing '$', names made only of
// underscores, and names with non-identifier characters. Names containing
// characters that cannot appear even in backticks are rejected.
func escapeIfNecessary(s string) string {
	return escapeName(s, true)
}

func escapeName(s string, validate bool) string {
	if s == "" || alreadyEscaped(s) {
		return s
	}
	escaped := s
	if !isJavaIdentifier(s) || IsKeyword(s) || strings.Contains(s, "$") || allUnderscores(s) {
		escaped = "`" + s + "`"
	}
	if validate && strings.ContainsAny(s, illegalIdentifierChars) {
		var bad []string
		for _, c := range illegalIdentifierChars {
			if strings.ContainsRune(s, c) {
				bad = append(bad, string(c))
			}
		}
		failf("can't escape identifier %s because it contains illegal characters: %s", escaped, strings.Join(bad, ""))
	}
	return escaped
}

// escapeSegmentsIfNecessary escapes each '.'-separated segment of s,
// dropping empty segments.
func escapeSegmentsIfNecessary(s string) string {
	segments := strings.Split(s, ".")
	out := segments[:0]
	for _, seg := range segments {
		if seg != "" {
			out = append(out, escapeIfNecessary(seg))
		}
	}
	return strings.Join(out, ".")
}

// escapeAsAlias rewrites s into a plain identifier usable after `as` in an
// import. Backtick-escaped aliases are not resolved by the Kotlin compiler, so
// this uses substitutions instead of backticks.
func escapeAsAlias(s string) string {
	if allUnderscores(s) {
		return s + "0"
	}
	if IsKeyword(s) {
		return "__" + s
	}
	var b strings.Builder
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) {
			b.WriteByte('_')
		}
		switch {
		case r == '$':
			b.WriteString("__")
		case !isIdentifierPart(r):
			fmt.Fprintf(&b, "_U%04x", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// toIdentifier converts an arbitrary suggestion into a valid identifier by
// replacing illegal characters with '_'.
func toIdentifier(suggestion string) string {
	var b strings.Builder
	for i, r := range suggestion {
		if i == 0 && !isIdentifierStart(r) && isIdentifierPart(r) {
			b.WriteByte('_')
		}
		if isIdentifierPart(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

package kotlinpoet

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	namedArgument  = regexp.MustCompile(`^%([\w_]+):(\w)`)
	lowercaseStart = regexp.MustCompile(`^[a-z]+[\w_]*$`)
)

func nextPotentialPlaceholder(format string, start int) int {
	i := strings.IndexAny(format[start:], "%"+Indent+Unindent+OpenStatement+CloseStatement)
	if i < 0 {
		return -1
	}
	return start + i
}

// leadingMarker returns the structural marker format starts with, if any.
func leadingMarker(format string) string {
	for _, m := range noArgPlaceholders {
		if strings.HasPrefix(format, m) {
			return m
		}
	}
	return ""
}

// Add appends format with its arguments. See CodeBlock for the directives.
func (b *CodeBlockBuilder) Add(format string, args ...interface{}) *CodeBlockBuilder {
	hasRelative, hasIndexed := false, false
	relativeCount := 0
	indexedCount := make([]int, len(args))

	p := 0
	for p < len(format) {
		if m := leadingMarker(format[p:]); m != "" {
			b.formatParts = append(b.formatParts, m)
			p += len(m)
			continue
		}
		if format[p] != '%' {
			next := nextPotentialPlaceholder(format, p+1)
			if next < 0 {
				next = len(format)
			}
			b.formatParts = append(b.formatParts, format[p:next])
			p = next
			continue
		}

		p++ // '%'
		indexStart := p
		var c byte
		for {
			requiref(p < len(format), "dangling format characters in '%s'", format)
			c = format[p]
			p++
			if c < '0' || c > '9' {
				break
			}
		}
		indexEnd := p - 1

		if c == '%' {
			requiref(indexStart == indexEnd, "%%%% may not have an index")
			b.formatParts = append(b.formatParts, "%%")
			continue
		}

		var index int
		if indexStart < indexEnd {
			n, err := strconv.Atoi(format[indexStart:indexEnd])
			requiref(err == nil, "invalid index %q in '%s'", format[indexStart:indexEnd], format)
			index = n - 1
			hasIndexed = true
			if index >= 0 && index < len(args) {
				indexedCount[index]++
			}
		} else {
			index = relativeCount
			hasRelative = true
			relativeCount++
		}

		if index < 0 || index >= len(args) {
			failf("index %d for '%s' not in range (received %d arguments)",
				index+1, format[indexStart-1:indexEnd+1], len(args))
		}
		if hasIndexed && hasRelative {
			panic(errors.WithHint(usageErrorf("cannot mix indexed and positional parameters"),
				"use either %L or %1L style placeholders throughout one format string"))
		}

		b.addArgument(format, c, args[index])
		b.formatParts = append(b.formatParts, "%"+string(c))
	}

	if hasRelative || !hasIndexed {
		requiref(relativeCount >= len(args), "unused arguments: expected %d, received %d", relativeCount, len(args))
	}
	if hasIndexed {
		var unused []string
		for i, n := range indexedCount {
			if n == 0 {
				unused = append(unused, "%"+strconv.Itoa(i+1))
			}
		}
		if len(unused) == 1 {
			failf("unused argument: %s", unused[0])
		} else if len(unused) > 1 {
			failf("unused arguments: %s", strings.Join(unused, ", "))
		}
	}
	return b
}

// AddNamed appends format, whose directives name their arguments, as in
// "%food:L". Argument names must start with a lower-case letter.
func (b *CodeBlockBuilder) AddNamed(format string, args map[string]interface{}) *CodeBlockBuilder {
	for name := range args {
		requiref(lowercaseStart.MatchString(name), "argument '%s' must start with a lowercase character", name)
	}
	p := 0
	for p < len(format) {
		next := nextPotentialPlaceholder(format, p)
		if next < 0 {
			b.formatParts = append(b.formatParts, format[p:])
			break
		}
		if p != next {
			b.formatParts = append(b.formatParts, format[p:next])
			p = next
		}

		if m := leadingMarker(format[p:]); m != "" {
			b.formatParts = append(b.formatParts, m)
			p += len(m)
			continue
		}
		if match := namedArgument.FindStringSubmatch(format[p:]); match != nil {
			name := match[1]
			arg, ok := args[name]
			requiref(ok, "Missing named argument for %%%s", name)
			c := match[2][0]
			b.addArgument(format, c, arg)
			b.formatParts = append(b.formatParts, "%"+string(c))
			p += len(match[0])
			continue
		}
		requiref(p < len(format)-1, "dangling %% at end")
		requiref(format[p+1] == '%', "unknown format %%%c at %d in '%s'", format[p+1], p+1, format)
		b.formatParts = append(b.formatParts, "%%")
		p += 2
	}
	return b
}

func (b *CodeBlockBuilder) addArgument(format string, c byte, arg interface{}) {
	switch c {
	case 'N':
		b.args = append(b.args, escapeIfNecessary(argToName(arg)))
	case 'L':
		b.args = append(b.args, argToLiteral(arg))
	case 'S':
		b.args = append(b.args, argToString(arg))
	case 'P':
		if cb, ok := arg.(CodeBlock); ok {
			b.args = append(b.args, cb)
		} else {
			b.args = append(b.args, argToString(arg))
		}
	case 'T':
		t, ok := arg.(TypeName)
		requiref(ok && t != nil, "expected type but was %v", arg)
		b.args = append(b.args, t)
	case 'M':
		m, ok := arg.(MemberName)
		requiref(ok, "expected member but was %v", arg)
		b.args = append(b.args, m)
	default:
		failf("invalid format string: '%s'", format)
	}
}

func argToName(o interface{}) string {
	switch o := o.(type) {
	case string:
		return o
	case *ParameterSpec:
		return o.name
	case *PropertySpec:
		return o.name
	case *FunSpec:
		return o.name
	case *TypeSpec:
		requiref(o.name != "", "expected name but was an anonymous type")
		return o.name
	case MemberName:
		return o.simpleName
	case fmt.Stringer:
		return o.String()
	default:
		failf("expected name but was %v", o)
		return ""
	}
}

func argToString(o interface{}) interface{} {
	switch o := o.(type) {
	case nil:
		return nil
	case string:
		return o
	case fmt.Stringer:
		return o.String()
	default:
		return fmt.Sprint(o)
	}
}

func argToLiteral(o interface{}) interface{} {
	switch o := o.(type) {
	case int:
		return groupDigits(strconv.FormatInt(int64(o), 10))
	case int8:
		return groupDigits(strconv.FormatInt(int64(o), 10))
	case int16:
		return groupDigits(strconv.FormatInt(int64(o), 10))
	case int32:
		return groupDigits(strconv.FormatInt(int64(o), 10))
	case int64:
		return groupDigits(strconv.FormatInt(o, 10))
	case uint:
		return groupDigits(strconv.FormatUint(uint64(o), 10))
	case uint8:
		return groupDigits(strconv.FormatUint(uint64(o), 10))
	case uint16:
		return groupDigits(strconv.FormatUint(uint64(o), 10))
	case uint32:
		return groupDigits(strconv.FormatUint(uint64(o), 10))
	case uint64:
		return groupDigits(strconv.FormatUint(o, 10))
	case float32:
		return formatFloat(float64(o), 32)
	case float64:
		return formatFloat(o, 64)
	default:
		return o
	}
}

// formatFloat renders f with the shortest representation that round-trips,
// at least one fractional digit and '_' digit grouping. float32 values get
// the Kotlin Float suffix.
func formatFloat(f float64, bitSize int) string {
	typ, suffix := "Double", ""
	if bitSize == 32 {
		typ, suffix = "Float", "f"
	}
	switch {
	case math.IsNaN(f):
		return typ + ".NaN"
	case math.IsInf(f, 1):
		return typ + ".POSITIVE_INFINITY"
	case math.IsInf(f, -1):
		return typ + ".NEGATIVE_INFINITY"
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	whole, frac, ok := strings.Cut(s, ".")
	if !ok {
		frac = "0"
	}
	return groupDigits(whole) + "." + frac + suffix
}

// groupDigits inserts '_' between groups of three digits in an integer
// string, which may start with '-'.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	sb.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte('_')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

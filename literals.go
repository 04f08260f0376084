package kotlinpoet

import (
	"fmt"
	"strings"
)

// characterLiteral returns the escaped form of r as it appears between
// quotes in a Kotlin character or string literal.
func characterLiteral(r rune) string {
	switch {
	case r == '\b':
		return `\b`
	case r == '\t':
		return `\t`
	case r == '\n':
		return `\n`
	case r == '\r':
		return `\r`
	case r == '"':
		return `"`
	case r == '\'':
		return `\'`
	case r == '\\':
		return `\\`
	case isISOControl(r):
		return fmt.Sprintf(`\u%04x`, r)
	default:
		return string(r)
	}
}

func isISOControl(r rune) bool {
	return (r >= 0 && r <= 0x1f) || (r >= 0x7f && r <= 0x9f)
}

const escapedDollar = "${'$'}"

// stringLiteralWithQuotes returns value as a Kotlin string literal, quotes
// included. Values with newlines become raw strings with a margin, unless
// they appear in a constant context (annotation arguments, const
// initializers) where trimMargin() cannot be called. Inside raw strings '$'
// is left alone so templates still work.
func stringLiteralWithQuotes(value string, insideRawString, constantContext bool) string {
	var sb strings.Builder
	if !constantContext && strings.Contains(value, "\n") {
		sb.WriteString("\"\"\"\n|")
		for i := 0; i < len(value); i++ {
			c := value[i]
			switch {
			case strings.HasPrefix(value[i:], `"""`):
				sb.WriteString(`""${'"'}`)
				i += 2
			case c == '\n':
				sb.WriteString("\n|")
			case c == '$' && !insideRawString:
				sb.WriteString(escapedDollar)
			default:
				sb.WriteByte(c)
			}
		}
		if !strings.HasSuffix(value, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(`""".trimMargin()`)
		return sb.String()
	}

	quote := `"`
	if insideRawString {
		quote = `"""`
	}
	sb.WriteString(quote)
	for _, r := range value {
		switch {
		case r == '\'':
			sb.WriteByte('\'')
		case r == '"' && !insideRawString:
			sb.WriteString(`\"`)
		case r == '$' && !insideRawString:
			sb.WriteString(escapedDollar)
		case insideRawString:
			sb.WriteRune(r)
		default:
			sb.WriteString(characterLiteral(r))
		}
	}
	sb.WriteString(quote)
	return sb.String()
}

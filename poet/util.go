package poet

import (
	"fmt"
	"strings"
	"unicode"
)

// reservedWords may not be used as declaration names.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
}

// IsName reports whether s is a valid TypeScript identifier that is not a
// reserved word. Declared bindings (types, functions, parameters) use it.
func IsName(s string) bool {
	return !reservedWords[s] && isIdentifier(s)
}

// IsMemberName reports whether s may name a property or enum member without
// quoting. Reserved words are allowed there: `{ default: string; in: number }`.
func IsMemberName(s string) bool {
	return isIdentifier(s)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)):
		default:
			return false
		}
	}
	return true
}

// stringLiteralWithQuotes returns value as a single-quoted TypeScript string
// literal. An embedded newline ends the literal and continues it with `+` on
// a new line prefixed by continuationIndent.
func stringLiteralWithQuotes(value, continuationIndent string) string {
	var sb strings.Builder
	sb.Grow(len(value) + 2)
	sb.WriteByte('\'')
	for i, c := range value {
		switch c {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
			if i+1 < len(value) {
				sb.WriteString("' +\n")
				sb.WriteString(continuationIndent)
				sb.WriteByte('\'')
			}
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, c)
			} else {
				sb.WriteRune(c)
			}
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

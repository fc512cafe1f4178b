package repair

import (
	"strconv"
	"strings"
)

// Every fixer in this file is a pure text-to-text transformation that walks
// the input with the same quote/escape discipline: a double quote opens a
// string, a backslash escapes exactly the next character, and nothing
// inside a string is ever treated as structural syntax. A backslash at the
// very end of the input is a literal character, never an out-of-bounds
// escape.

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// FixQuotes converts single-quoted string delimiters to double quotes. An
// escaped single quote inside a single-quoted run becomes a literal
// apostrophe, and an unescaped double quote inside a single-quoted run is
// escaped, since the delimiter character changed.
func FixQuotes(s string) string {
	const (
		stOut = iota
		stDouble
		stSingle
	)
	var b strings.Builder
	b.Grow(len(s))
	st := stOut
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch st {
		case stOut:
			switch c {
			case '\'':
				b.WriteByte('"')
				st = stSingle
			case '"':
				b.WriteByte(c)
				st = stDouble
			default:
				b.WriteByte(c)
			}
		case stDouble:
			if c == '\\' {
				b.WriteByte(c)
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
				continue
			}
			if c == '"' {
				st = stOut
			}
			b.WriteByte(c)
		case stSingle:
			switch c {
			case '\\':
				if i+1 < len(s) {
					i++
					if s[i] == '\'' {
						b.WriteByte('\'')
					} else {
						b.WriteByte('\\')
						b.WriteByte(s[i])
					}
					continue
				}
				b.WriteByte(c)
			case '\'':
				b.WriteByte('"')
				st = stOut
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

// QuoteKeys wraps bare identifier keys in double quotes. An identifier
// (letters, digits, underscore, dollar) counts as a key when it appears
// right after '{' or ',' and is followed, possibly after whitespace, by a
// colon. Quoted keys and bare values are untouched.
func QuoteKeys(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	inStr, esc := false, false
	last := byte(0) // last significant byte outside strings
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			b.WriteByte(c)
			last = c
			continue
		}
		if isIdentStart(c) && (last == '{' || last == ',') {
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			k := j
			for k < len(s) && isSpace(s[k]) {
				k++
			}
			if k < len(s) && s[k] == ':' {
				b.WriteByte('"')
				b.WriteString(s[i:j])
				b.WriteByte('"')
				last = '"'
			} else {
				b.WriteString(s[i:j])
				last = s[j-1]
			}
			i = j - 1
			continue
		}
		b.WriteByte(c)
		if !isSpace(c) {
			last = c
		}
	}
	return b.String()
}

// StripComments removes // line comments and /* block */ comments that
// occur outside of strings. Comment markers inside strings are preserved
// verbatim. An unterminated block comment swallows the rest of the input.
func StripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			i += 2
			for i < len(s) {
				if s[i] == '*' && i+1 < len(s) && s[i+1] == '/' {
					i++
					break
				}
				i++
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FixTrailingCommas deletes a comma that is followed, after only
// whitespace, by a closing '}' or ']'.
func FixTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			k := i + 1
			for k < len(s) && isSpace(s[k]) {
				k++
			}
			if k < len(s) && (s[k] == '}' || s[k] == ']') {
				continue // drop the comma; whitespace and closer copy as usual
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CloseBrackets appends the closers still owed at end of input: a closing
// quote first when the scan ends inside an unterminated string, then the
// expected '}' / ']' closers innermost-first. Best-effort recovery for
// truncated output; extra unmatched closers are left alone (see
// BalanceBrackets).
func CloseBrackets(s string) string {
	var stack []byte
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if !inStr && len(stack) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(stack) + 1)
	b.WriteString(s)
	if inStr {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// BalanceBrackets removes extra unmatched closers in addition to appending
// the missing ones at the end. Used when the text has both truncation and
// spurious closing tokens.
func BalanceBrackets(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	var stack []byte
	inStr, esc := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
			b.WriteByte(c)
		case '{':
			stack = append(stack, '}')
			b.WriteByte(c)
		case '[':
			stack = append(stack, ']')
			b.WriteByte(c)
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
				b.WriteByte(c)
			}
			// spurious closer: dropped
		default:
			b.WriteByte(c)
		}
	}
	if inStr {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

var specialNumberTokens = []string{"NaN", "Infinity", "-Infinity", "undefined"}

// FixSpecialNumbers replaces NaN, Infinity, -Infinity, and undefined
// appearing in value position (immediately after a colon) with null, or
// with their quoted string form when stringify is set.
func FixSpecialNumbers(s string, stringify bool) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc, valuePos := false, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			valuePos = false
			b.WriteByte(c)
			continue
		}
		if c == ':' {
			valuePos = true
			b.WriteByte(c)
			continue
		}
		if isSpace(c) {
			b.WriteByte(c)
			continue
		}
		if valuePos {
			replaced := false
			for _, tok := range specialNumberTokens {
				if !strings.HasPrefix(s[i:], tok) {
					continue
				}
				if end := i + len(tok); end < len(s) && isIdentPart(s[end]) {
					continue // longer identifier, not the bare token
				}
				if stringify {
					b.WriteByte('"')
					b.WriteString(tok)
					b.WriteByte('"')
				} else {
					b.WriteString("null")
				}
				i += len(tok) - 1
				replaced = true
				break
			}
			valuePos = false
			if replaced {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// FixNumberFormats rewrites number literals JSON cannot parse when they
// appear in value position: a leading bare decimal point (.5 -> 0.5), a
// trailing bare decimal point (5. -> 5.0), and hex/octal/binary integer
// literals (0x1f, 0o17, 0b101) into base-10 decimal form.
func FixNumberFormats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inStr, esc, valuePos := false, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			valuePos = false
			b.WriteByte(c)
			continue
		}
		if c == ':' {
			valuePos = true
			b.WriteByte(c)
			continue
		}
		if isSpace(c) {
			b.WriteByte(c)
			continue
		}
		if valuePos {
			if c == '-' {
				b.WriteByte(c) // sign keeps value position
				continue
			}
			if c == '.' && i+1 < len(s) && isDigit(s[i+1]) {
				b.WriteString("0.")
				valuePos = false
				continue
			}
			if c == '0' && i+1 < len(s) {
				if out, next, ok := rewriteRadixLiteral(s, i); ok {
					b.WriteString(out)
					i = next - 1
					valuePos = false
					continue
				}
			}
			if isDigit(c) {
				j := i
				for j < len(s) && isDigit(s[j]) {
					j++
				}
				b.WriteString(s[i:j])
				if j < len(s) && s[j] == '.' && (j+1 >= len(s) || !isDigit(s[j+1])) {
					b.WriteString(".0")
					j++
				}
				i = j - 1
				valuePos = false
				continue
			}
			valuePos = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// rewriteRadixLiteral rewrites a 0x/0o/0b literal starting at i into its
// decimal form, returning the replacement and the index just past the
// literal. ok is false when the text is not a radix literal.
func rewriteRadixLiteral(s string, i int) (string, int, bool) {
	base := 0
	digits := ""
	switch s[i+1] {
	case 'x', 'X':
		base, digits = 16, "0123456789abcdefABCDEF"
	case 'o', 'O':
		base, digits = 8, "01234567"
	case 'b', 'B':
		base, digits = 2, "01"
	default:
		return "", 0, false
	}
	j := i + 2
	for j < len(s) && strings.IndexByte(digits, s[j]) >= 0 {
		j++
	}
	if j == i+2 {
		return "", 0, false
	}
	n, err := strconv.ParseInt(s[i+2:j], base, 64)
	if err != nil {
		return "", 0, false
	}
	return strconv.FormatInt(n, 10), j, true
}

// InsertMissingCommas inserts a comma between two adjacent value tokens
// that lack one. The trigger is heuristic: a token boundary is assumed when
// a value-opening byte follows a value-closing byte across whitespace (or
// immediately, for back-to-back strings). Malformed input is inherently
// ambiguous here, so this fixer is not part of the default pipeline.
func InsertMissingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	inStr, esc := false, false
	last := byte(0)
	sawSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			b.WriteByte(c)
			if esc {
				esc = false
				continue
			}
			if c == '\\' {
				esc = true
				continue
			}
			if c == '"' {
				inStr = false
				last = '"'
				sawSpace = false
			}
			continue
		}
		if isSpace(c) {
			sawSpace = true
			b.WriteByte(c)
			continue
		}
		valueEnd := last == '"' || last == '}' || last == ']' || isDigit(last) ||
			last == 'e' || last == 'l' // true/false/null end bytes
		valueStart := c == '"' || c == '{' || c == '[' || isDigit(c) || c == '-'
		if valueEnd && valueStart && (sawSpace || (c == '"' && last == '"')) {
			b.WriteByte(',')
		}
		if c == '"' {
			inStr = true
		}
		b.WriteByte(c)
		last = c
		sawSpace = false
	}
	return b.String()
}

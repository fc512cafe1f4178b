package repair

import (
	"regexp"
	"strings"
)

// Extractors locate a JSON-shaped substring inside the surrounding prose an
// LLM tends to produce. Both are idempotent: running one on already-clean
// input returns it unchanged.

var (
	jsonFenceRe = regexp.MustCompile("(?si)```json[ \t]*\r?\n?(.*?)```")
	anyFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z0-9]*[ \t]*\r?\n?(.*?)```")
	inlineRe    = regexp.MustCompile("`([^`\n]+)`")
)

// ExtractMarkdown isolates JSON from markdown fencing. It prefers a fenced
// block tagged json (case-insensitive), then any fenced block whose content
// starts with '{' or '[', then a short inline backtick span holding a
// balanced object or array. When nothing matches it returns the trimmed
// input with extracted=false.
func ExtractMarkdown(s string) (string, bool) {
	if m := jsonFenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	for _, m := range anyFenceRe.FindAllStringSubmatch(s, -1) {
		content := strings.TrimSpace(m[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content, true
		}
	}
	// Scan for inline spans with fenced blocks blanked out, so a fence's
	// own backtick runs cannot pair with a real inline backtick.
	unfenced := anyFenceRe.ReplaceAllString(s, " ")
	for _, m := range inlineRe.FindAllStringSubmatch(unfenced, -1) {
		content := strings.TrimSpace(m[1])
		if len(content) < 2 {
			continue
		}
		if content[0] != '{' && content[0] != '[' {
			continue
		}
		opener, closer := content[0], byte('}')
		if opener == '[' {
			closer = ']'
		}
		if span, _, ok := balancedSpan(content, opener, closer); ok && span == content {
			return content, true
		}
	}
	return strings.TrimSpace(s), false
}

// ExtractJSON isolates the first balanced JSON value from free prose. Input
// that already looks like a complete object or array passes through
// unchanged. Otherwise the first balanced {...} span wins, then the first
// balanced [...] span; when both exist the one starting earlier wins. With
// no balanced span at all (truncated output) everything from the first
// opening bracket onward is taken, leaving the bracket fixers to close it.
func ExtractJSON(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if len(t) >= 2 {
		if (t[0] == '{' && t[len(t)-1] == '}') || (t[0] == '[' && t[len(t)-1] == ']') {
			return t, false
		}
	}
	objSpan, objStart, objOK := balancedSpan(t, '{', '}')
	arrSpan, arrStart, arrOK := balancedSpan(t, '[', ']')
	switch {
	case objOK && arrOK:
		if objStart <= arrStart {
			return objSpan, true
		}
		return arrSpan, true
	case objOK:
		return objSpan, true
	case arrOK:
		return arrSpan, true
	}
	start := strings.IndexAny(t, "{[")
	if start > 0 {
		return t[start:], true
	}
	return s, false
}

// balancedSpan finds the first balanced open...close span, tracking string
// and escape state so brackets inside strings never count.
func balancedSpan(s string, opener, closer byte) (string, int, bool) {
	start := -1
	depth := 0
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
			// tracked before the first opener too, so a bracket quoted in
			// the surrounding prose cannot start the span
			inStr = true
		case opener:
			if start < 0 {
				start = i
			}
			depth++
		case closer:
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], start, true
				}
			}
		}
	}
	return "", 0, false
}

package llmskema

import (
	"strconv"
	"strings"
)

// Path is the ordered sequence of object-key/array-index steps from the
// validation root to a location in the input. Segments are string keys or
// int indices.
type Path []any

// Pointer renders the path as an RFC 6901 JSON Pointer. The empty path
// renders as "/" (the validation root).
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range p {
		b.WriteByte('/')
		switch s := seg.(type) {
		case string:
			// escape '~' -> '~0', '/' -> '~1' per RFC6901
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1"))
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			b.WriteString("?")
		}
	}
	return b.String()
}

// child returns a new Path extended by one segment. The receiver is never
// mutated; contexts at different depths may share prefixes safely.
func (p Path) child(seg any) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

package llmskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeInvalidLiteral       = "invalid_literal"
	CodeInvalidEnumValue     = "invalid_enum_value"
	CodeInvalidUnion         = "invalid_union"
	CodeInvalidDiscriminator = "invalid_union_discriminator"
	CodeInvalidString        = "invalid_string"
	CodeInvalidDate          = "invalid_date"
	CodeInvalidIntersection  = "invalid_intersection_types"
	CodeNotMultipleOf        = "not_multiple_of"
	CodeNotFinite            = "not_finite"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeUnrecognizedKeys     = "unrecognized_keys"
	CodeParseError           = "parse_error"
	CodeCustom               = "custom"
)

// Issue represents a single validation entry.
type Issue struct {
	Code    string // One of the codes listed above.
	Path    Path   // Segments from the validation root (strings and ints).
	Message string
	// Params carries structured parameters (e.g., {"minimum":1, "inclusive":true})
	// for i18n and observability.
	Params map[string]any
	// Nested carries the per-branch issues collected while trying union members.
	// Populated only for invalid_union.
	Nested Issues
}

// Pointer renders the issue path as a JSON Pointer (for example: /items/2/price).
func (it Issue) Pointer() string { return it.Path.Pointer() }

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// GroupByPath buckets issues by their rendered JSON Pointer. Bucket contents
// keep traversal order.
func GroupByPath(iss Issues) map[string]Issues {
	out := make(map[string]Issues, len(iss))
	for _, it := range iss {
		p := it.Pointer()
		out[p] = append(out[p], it)
	}
	return out
}

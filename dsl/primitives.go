package dsl

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// ---- string ----

type stringCheckKind int

const (
	scMin stringCheckKind = iota
	scMax
	scLength
	scEmail
	scURL
	scUUID
	scCUID
	scRegex
	scIncludes
	scStartsWith
	scEndsWith
	scTrim
	scToLower
	scToUpper
	scDate
	scDateTime
)

type stringCheck struct {
	kind stringCheckKind
	n    int
	re   *regexp.Regexp
	arg  string
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlRe   = regexp.MustCompile(`(?i)^(https?|ftp)://[^\s/$.?#][^\s]*$`)
	cuidRe  = regexp.MustCompile(`(?i)^c[^\s-]{8,}$`)
)

// StringSchema validates strings through an ordered list of checks. Some
// checks transform the running value (Trim, ToLower, ToUpper) and feed the
// checks that follow; the rest only assert. Assertion failures do not stop
// later checks, so one string can accumulate several issues.
type StringSchema struct {
	checks []stringCheck
	meta   llmskema.Meta
}

// String returns a fresh string schema.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) clone() *StringSchema {
	cp := &StringSchema{meta: s.meta}
	cp.checks = make([]stringCheck, len(s.checks), len(s.checks)+1)
	copy(cp.checks, s.checks)
	return cp
}

func (s *StringSchema) with(c stringCheck) *StringSchema {
	cp := s.clone()
	cp.checks = append(cp.checks, c)
	return cp
}

// Min requires at least n characters (runes).
func (s *StringSchema) Min(n int) *StringSchema { return s.with(stringCheck{kind: scMin, n: n}) }

// Max allows at most n characters (runes).
func (s *StringSchema) Max(n int) *StringSchema { return s.with(stringCheck{kind: scMax, n: n}) }

// Length requires exactly n characters (runes).
func (s *StringSchema) Length(n int) *StringSchema { return s.with(stringCheck{kind: scLength, n: n}) }

// Email asserts an email-shaped value.
func (s *StringSchema) Email() *StringSchema { return s.with(stringCheck{kind: scEmail}) }

// URL asserts an http(s)/ftp URL.
func (s *StringSchema) URL() *StringSchema { return s.with(stringCheck{kind: scURL}) }

// UUID asserts an RFC 4122 UUID.
func (s *StringSchema) UUID() *StringSchema { return s.with(stringCheck{kind: scUUID}) }

// CUID asserts a cuid-shaped identifier.
func (s *StringSchema) CUID() *StringSchema { return s.with(stringCheck{kind: scCUID}) }

// Regex asserts a match against re.
func (s *StringSchema) Regex(re *regexp.Regexp) *StringSchema {
	return s.with(stringCheck{kind: scRegex, re: re})
}

// Includes asserts that sub occurs in the value.
func (s *StringSchema) Includes(sub string) *StringSchema {
	return s.with(stringCheck{kind: scIncludes, arg: sub})
}

// StartsWith asserts the given prefix.
func (s *StringSchema) StartsWith(p string) *StringSchema {
	return s.with(stringCheck{kind: scStartsWith, arg: p})
}

// EndsWith asserts the given suffix.
func (s *StringSchema) EndsWith(p string) *StringSchema {
	return s.with(stringCheck{kind: scEndsWith, arg: p})
}

// Date asserts a calendar date in 2006-01-02 form.
func (s *StringSchema) Date() *StringSchema { return s.with(stringCheck{kind: scDate}) }

// DateTime asserts an RFC 3339 timestamp.
func (s *StringSchema) DateTime() *StringSchema { return s.with(stringCheck{kind: scDateTime}) }

// Trim transforms the running value with strings.TrimSpace before any
// later check runs.
func (s *StringSchema) Trim() *StringSchema { return s.with(stringCheck{kind: scTrim}) }

// ToLower lower-cases the running value.
func (s *StringSchema) ToLower() *StringSchema { return s.with(stringCheck{kind: scToLower}) }

// ToUpper upper-cases the running value.
func (s *StringSchema) ToUpper() *StringSchema { return s.with(stringCheck{kind: scToUpper}) }

// Describe attaches a human-readable description.
func (s *StringSchema) Describe(d string) *StringSchema {
	cp := s.clone()
	cp.meta.Description = d
	return cp
}

// Example attaches an example value.
func (s *StringSchema) Example(v any) *StringSchema {
	cp := s.clone()
	cp.meta.Examples = append(append([]any(nil), s.meta.Examples...), v)
	return cp
}

func (s *StringSchema) Kind() llmskema.Kind { return llmskema.KindString }
func (s *StringSchema) Const() (any, bool) { return nil, false }
func (s *StringSchema) Meta() llmskema.Meta { return s.meta }

func (s *StringSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	str, ok := v.(string)
	if !ok {
		coerced := false
		if pc.Coerce() {
			str, coerced = stringify(v)
		}
		if !coerced {
			report(pc, llmskema.CodeInvalidType, map[string]any{
				"expected": "string", "received": typeName(v),
			})
			return v, false
		}
	}
	valid := true
	for _, c := range s.checks {
		switch c.kind {
		case scTrim:
			str = strings.TrimSpace(str)
		case scToLower:
			str = strings.ToLower(str)
		case scToUpper:
			str = strings.ToUpper(str)
		case scMin:
			if utf8.RuneCountInString(str) < c.n {
				report(pc, llmskema.CodeTooSmall, map[string]any{
					"type": "string", "minimum": c.n, "inclusive": true,
				})
				valid = false
			}
		case scMax:
			if utf8.RuneCountInString(str) > c.n {
				report(pc, llmskema.CodeTooBig, map[string]any{
					"type": "string", "maximum": c.n, "inclusive": true,
				})
				valid = false
			}
		case scLength:
			if got := utf8.RuneCountInString(str); got < c.n {
				report(pc, llmskema.CodeTooSmall, map[string]any{
					"type": "string", "minimum": c.n, "exact": true,
				})
				valid = false
			} else if got > c.n {
				report(pc, llmskema.CodeTooBig, map[string]any{
					"type": "string", "maximum": c.n, "exact": true,
				})
				valid = false
			}
		case scEmail:
			if !emailRe.MatchString(str) {
				report(pc, llmskema.CodeInvalidString, map[string]any{"validation": "email"})
				valid = false
			}
		case scURL:
			if !urlRe.MatchString(str) {
				report(pc, llmskema.CodeInvalidString, map[string]any{"validation": "url"})
				valid = false
			}
		case scUUID:
			if _, err := uuid.Parse(str); err != nil {
				report(pc, llmskema.CodeInvalidString, map[string]any{"validation": "uuid"})
				valid = false
			}
		case scCUID:
			if !cuidRe.MatchString(str) {
				report(pc, llmskema.CodeInvalidString, map[string]any{"validation": "cuid"})
				valid = false
			}
		case scRegex:
			if !c.re.MatchString(str) {
				report(pc, llmskema.CodeInvalidString, map[string]any{"validation": "regex"})
				valid = false
			}
		case scIncludes:
			if !strings.Contains(str, c.arg) {
				report(pc, llmskema.CodeInvalidString, map[string]any{
					"validation": "includes", "includes": c.arg,
				})
				valid = false
			}
		case scStartsWith:
			if !strings.HasPrefix(str, c.arg) {
				report(pc, llmskema.CodeInvalidString, map[string]any{
					"validation": "startsWith", "startsWith": c.arg,
				})
				valid = false
			}
		case scEndsWith:
			if !strings.HasSuffix(str, c.arg) {
				report(pc, llmskema.CodeInvalidString, map[string]any{
					"validation": "endsWith", "endsWith": c.arg,
				})
				valid = false
			}
		case scDate:
			if _, err := time.Parse("2006-01-02", str); err != nil {
				report(pc, llmskema.CodeInvalidDate, map[string]any{"validation": "date"})
				valid = false
			}
		case scDateTime:
			if _, err := time.Parse(time.RFC3339, str); err != nil {
				report(pc, llmskema.CodeInvalidDate, map[string]any{"validation": "datetime"})
				valid = false
			}
		}
		if !valid && pc.FailFast() {
			return str, false
		}
	}
	return str, valid
}

func (s *StringSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "string", Description: s.meta.Description, Examples: s.meta.Examples}
	for _, c := range s.checks {
		switch c.kind {
		case scMin:
			n := c.n
			out.MinLength = &n
		case scMax:
			n := c.n
			out.MaxLength = &n
		case scLength:
			n := c.n
			out.MinLength = &n
			out.MaxLength = &n
		case scEmail:
			out.Format = "email"
		case scURL:
			out.Format = "uri"
		case scUUID:
			out.Format = "uuid"
		case scCUID:
			out.Format = "cuid"
		case scDate:
			out.Format = "date"
		case scDateTime:
			out.Format = "date-time"
		case scRegex:
			out.Pattern = c.re.String()
		}
	}
	return out
}

// ---- number ----

type numberCheckKind int

const (
	ncMin numberCheckKind = iota
	ncMax
	ncInt
	ncPositive
	ncNegative
	ncNonNegative
	ncNonPositive
	ncMultipleOf
	ncFinite
)

type numberCheck struct {
	kind      numberCheckKind
	value     float64
	inclusive bool
}

// multipleOfEps absorbs the floating-point error of Mod for MultipleOf.
const multipleOfEps = 1e-9

// NumberSchema validates numeric values. All numeric representations
// (json.Number, float64, ints) canonicalize to float64; NaN is rejected as
// an invalid type even though it is a number to the host language.
type NumberSchema struct {
	checks []numberCheck
	meta   llmskema.Meta
}

// Number returns a fresh number schema.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) clone() *NumberSchema {
	cp := &NumberSchema{meta: s.meta}
	cp.checks = make([]numberCheck, len(s.checks), len(s.checks)+1)
	copy(cp.checks, s.checks)
	return cp
}

func (s *NumberSchema) with(c numberCheck) *NumberSchema {
	cp := s.clone()
	cp.checks = append(cp.checks, c)
	return cp
}

// Min requires v >= n.
func (s *NumberSchema) Min(n float64) *NumberSchema {
	return s.with(numberCheck{kind: ncMin, value: n, inclusive: true})
}

// Max requires v <= n.
func (s *NumberSchema) Max(n float64) *NumberSchema {
	return s.with(numberCheck{kind: ncMax, value: n, inclusive: true})
}

// GreaterThan requires v > n.
func (s *NumberSchema) GreaterThan(n float64) *NumberSchema {
	return s.with(numberCheck{kind: ncMin, value: n})
}

// LessThan requires v < n.
func (s *NumberSchema) LessThan(n float64) *NumberSchema {
	return s.with(numberCheck{kind: ncMax, value: n})
}

// Int requires an integral value.
func (s *NumberSchema) Int() *NumberSchema { return s.with(numberCheck{kind: ncInt}) }

// Positive requires v > 0.
func (s *NumberSchema) Positive() *NumberSchema { return s.with(numberCheck{kind: ncPositive}) }

// Negative requires v < 0.
func (s *NumberSchema) Negative() *NumberSchema { return s.with(numberCheck{kind: ncNegative}) }

// NonNegative requires v >= 0.
func (s *NumberSchema) NonNegative() *NumberSchema { return s.with(numberCheck{kind: ncNonNegative}) }

// NonPositive requires v <= 0.
func (s *NumberSchema) NonPositive() *NumberSchema { return s.with(numberCheck{kind: ncNonPositive}) }

// MultipleOf requires v to be a multiple of n, tolerant of floating-point
// error in both the remainder and its complement.
func (s *NumberSchema) MultipleOf(n float64) *NumberSchema {
	return s.with(numberCheck{kind: ncMultipleOf, value: n})
}

// Finite rejects +Inf and -Inf.
func (s *NumberSchema) Finite() *NumberSchema { return s.with(numberCheck{kind: ncFinite}) }

// Describe attaches a human-readable description.
func (s *NumberSchema) Describe(d string) *NumberSchema {
	cp := s.clone()
	cp.meta.Description = d
	return cp
}

// Example attaches an example value.
func (s *NumberSchema) Example(v any) *NumberSchema {
	cp := s.clone()
	cp.meta.Examples = append(append([]any(nil), s.meta.Examples...), v)
	return cp
}

func (s *NumberSchema) Kind() llmskema.Kind { return llmskema.KindNumber }
func (s *NumberSchema) Const() (any, bool) { return nil, false }
func (s *NumberSchema) Meta() llmskema.Meta { return s.meta }

func (s *NumberSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	f, ok := toFloat(v)
	if !ok && pc.Coerce() {
		if str, isStr := v.(string); isStr {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil && !math.IsNaN(parsed) {
				f, ok = parsed, true
			}
			// unparseable strings fall through so the type check fails cleanly
		}
	}
	if !ok || math.IsNaN(f) {
		received := typeName(v)
		if ok {
			received = "nan"
		}
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "number", "received": received,
		})
		return v, false
	}
	valid := true
	for _, c := range s.checks {
		switch c.kind {
		case ncMin:
			if (c.inclusive && f < c.value) || (!c.inclusive && f <= c.value) {
				report(pc, llmskema.CodeTooSmall, map[string]any{
					"type": "number", "minimum": c.value, "inclusive": c.inclusive,
				})
				valid = false
			}
		case ncMax:
			if (c.inclusive && f > c.value) || (!c.inclusive && f >= c.value) {
				report(pc, llmskema.CodeTooBig, map[string]any{
					"type": "number", "maximum": c.value, "inclusive": c.inclusive,
				})
				valid = false
			}
		case ncInt:
			if f != math.Trunc(f) {
				report(pc, llmskema.CodeInvalidType, map[string]any{
					"expected": "integer", "received": "float",
				})
				valid = false
			}
		case ncPositive:
			if f <= 0 {
				report(pc, llmskema.CodeTooSmall, map[string]any{
					"type": "number", "minimum": float64(0), "inclusive": false,
				})
				valid = false
			}
		case ncNegative:
			if f >= 0 {
				report(pc, llmskema.CodeTooBig, map[string]any{
					"type": "number", "maximum": float64(0), "inclusive": false,
				})
				valid = false
			}
		case ncNonNegative:
			if f < 0 {
				report(pc, llmskema.CodeTooSmall, map[string]any{
					"type": "number", "minimum": float64(0), "inclusive": true,
				})
				valid = false
			}
		case ncNonPositive:
			if f > 0 {
				report(pc, llmskema.CodeTooBig, map[string]any{
					"type": "number", "maximum": float64(0), "inclusive": true,
				})
				valid = false
			}
		case ncMultipleOf:
			r := math.Abs(math.Mod(f, c.value))
			if r > multipleOfEps && math.Abs(c.value)-r > multipleOfEps {
				report(pc, llmskema.CodeNotMultipleOf, map[string]any{"multipleOf": c.value})
				valid = false
			}
		case ncFinite:
			if math.IsInf(f, 0) {
				report(pc, llmskema.CodeNotFinite, nil)
				valid = false
			}
		}
		if !valid && pc.FailFast() {
			return f, false
		}
	}
	return f, valid
}

func (s *NumberSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "number", Description: s.meta.Description, Examples: s.meta.Examples}
	for _, c := range s.checks {
		switch c.kind {
		case ncMin:
			v := c.value
			if c.inclusive {
				out.Minimum = &v
			} else {
				out.ExclusiveMinimum = &v
			}
		case ncMax:
			v := c.value
			if c.inclusive {
				out.Maximum = &v
			} else {
				out.ExclusiveMaximum = &v
			}
		case ncInt:
			out.Type = "integer"
		case ncPositive:
			z := float64(0)
			out.ExclusiveMinimum = &z
		case ncNegative:
			z := float64(0)
			out.ExclusiveMaximum = &z
		case ncNonNegative:
			z := float64(0)
			out.Minimum = &z
		case ncNonPositive:
			z := float64(0)
			out.Maximum = &z
		case ncMultipleOf:
			v := c.value
			out.MultipleOf = &v
		}
	}
	return out
}

// ---- bool ----

// BoolSchema validates booleans. In lenient mode the strings "true"/"1"/
// "yes" and "false"/"0"/"no" (case-insensitive, trimmed) and the numbers
// 1/0 coerce; anything else fails the type check.
type BoolSchema struct {
	meta llmskema.Meta
}

// Bool returns a fresh bool schema.
func Bool() *BoolSchema { return &BoolSchema{} }

// Describe attaches a human-readable description.
func (s *BoolSchema) Describe(d string) *BoolSchema {
	cp := *s
	cp.meta.Description = d
	return &cp
}

// Example attaches an example value.
func (s *BoolSchema) Example(v any) *BoolSchema {
	cp := *s
	cp.meta.Examples = append(append([]any(nil), s.meta.Examples...), v)
	return &cp
}

func (s *BoolSchema) Kind() llmskema.Kind { return llmskema.KindBool }
func (s *BoolSchema) Const() (any, bool) { return nil, false }
func (s *BoolSchema) Meta() llmskema.Meta { return s.meta }

func (s *BoolSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if pc.Coerce() {
		switch t := v.(type) {
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true", "1", "yes":
				return true, true
			case "false", "0", "no":
				return false, true
			}
		default:
			if f, ok := toFloat(v); ok {
				if f == 1 {
					return true, true
				}
				if f == 0 {
					return false, true
				}
			}
		}
	}
	report(pc, llmskema.CodeInvalidType, map[string]any{
		"expected": "bool", "received": typeName(v),
	})
	return v, false
}

func (s *BoolSchema) JSONSchema() *js.Schema {
	return &js.Schema{Type: "boolean", Description: s.meta.Description, Examples: s.meta.Examples}
}

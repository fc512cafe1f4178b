package dsl

import (
	"context"
	"strings"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// LiteralSchema accepts exactly one value. Numeric literals compare after
// canonicalizing both sides to float64, so json.Number(1), int(1) and
// float64(1) all match Literal(1).
type LiteralSchema struct {
	value any
	meta  llmskema.Meta
}

// Literal returns a schema matching exactly v.
func Literal(v any) *LiteralSchema { return &LiteralSchema{value: v} }

// Describe attaches a human-readable description.
func (s *LiteralSchema) Describe(d string) *LiteralSchema {
	cp := *s
	cp.meta.Description = d
	return &cp
}

func (s *LiteralSchema) Kind() llmskema.Kind { return llmskema.KindLiteral }
func (s *LiteralSchema) Const() (any, bool) { return s.value, true }
func (s *LiteralSchema) Meta() llmskema.Meta { return s.meta }

func (s *LiteralSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if literalEqual(s.value, v) {
		return s.value, true
	}
	report(pc, llmskema.CodeInvalidLiteral, map[string]any{"expected": s.value})
	return v, false
}

func (s *LiteralSchema) JSONSchema() *js.Schema {
	return &js.Schema{Const: s.value, Description: s.meta.Description}
}

func literalEqual(want, got any) bool {
	if wf, ok := toFloat(want); ok {
		gf, ok2 := toFloat(got)
		return ok2 && wf == gf
	}
	return want == got
}

// NullSchema accepts only JSON null.
type NullSchema struct{}

// Null returns a schema matching only null.
func Null() *NullSchema { return &NullSchema{} }

func (s *NullSchema) Kind() llmskema.Kind { return llmskema.KindNull }
func (s *NullSchema) Const() (any, bool) { return nil, true }
func (s *NullSchema) Meta() llmskema.Meta { return llmskema.Meta{} }

func (s *NullSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if v == nil {
		return nil, true
	}
	report(pc, llmskema.CodeInvalidType, map[string]any{
		"expected": "null", "received": typeName(v),
	})
	return v, false
}

func (s *NullSchema) JSONSchema() *js.Schema { return &js.Schema{Type: "null"} }

// UndefinedSchema accepts only genuine absence, never null or any present
// value. Rarely useful alone; it exists for completeness next to Null.
type UndefinedSchema struct{}

// Undefined returns a schema matching only absence.
func Undefined() *UndefinedSchema { return &UndefinedSchema{} }

func (s *UndefinedSchema) Kind() llmskema.Kind { return llmskema.KindUndefined }
func (s *UndefinedSchema) Const() (any, bool) { return nil, false }
func (s *UndefinedSchema) Meta() llmskema.Meta { return llmskema.Meta{} }

func (s *UndefinedSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if llmskema.IsMissing(v) {
		return llmskema.Missing, true
	}
	report(pc, llmskema.CodeInvalidType, map[string]any{
		"expected": "undefined", "received": typeName(v),
	})
	return v, false
}

func (s *UndefinedSchema) JSONSchema() *js.Schema { return &js.Schema{} }

// AnySchema accepts every value, including absence.
type AnySchema struct{}

// Any returns a schema that accepts everything unchanged.
func Any() *AnySchema { return &AnySchema{} }

func (s *AnySchema) Kind() llmskema.Kind { return llmskema.KindAny }
func (s *AnySchema) Const() (any, bool) { return nil, false }
func (s *AnySchema) Meta() llmskema.Meta { return llmskema.Meta{} }

func (s *AnySchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	return v, true
}

func (s *AnySchema) JSONSchema() *js.Schema { return &js.Schema{} }

// UnknownSchema accepts every value, like Any, but records the intent that
// the value is deliberately untyped rather than truly unconstrained.
type UnknownSchema struct{}

// Unknown returns a schema that accepts everything unchanged.
func Unknown() *UnknownSchema { return &UnknownSchema{} }

func (s *UnknownSchema) Kind() llmskema.Kind { return llmskema.KindUnknown }
func (s *UnknownSchema) Const() (any, bool) { return nil, false }
func (s *UnknownSchema) Meta() llmskema.Meta { return llmskema.Meta{} }

func (s *UnknownSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	return v, true
}

func (s *UnknownSchema) JSONSchema() *js.Schema { return &js.Schema{} }

// EnumSchema accepts one of a fixed set of strings. In lenient mode
// matching is case-insensitive and returns the canonical member.
type EnumSchema struct {
	values []string
	meta   llmskema.Meta
}

// Enum returns a schema matching one of values.
func Enum(values ...string) *EnumSchema {
	return &EnumSchema{values: append([]string(nil), values...)}
}

// Describe attaches a human-readable description.
func (s *EnumSchema) Describe(d string) *EnumSchema {
	cp := &EnumSchema{values: s.values, meta: s.meta}
	cp.meta.Description = d
	return cp
}

// Values returns the enum members in declaration order.
func (s *EnumSchema) Values() []string { return append([]string(nil), s.values...) }

func (s *EnumSchema) Kind() llmskema.Kind { return llmskema.KindEnum }
func (s *EnumSchema) Const() (any, bool) { return nil, false }
func (s *EnumSchema) Meta() llmskema.Meta { return s.meta }

func (s *EnumSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	str, ok := v.(string)
	if !ok {
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "string", "received": typeName(v),
		})
		return v, false
	}
	for _, m := range s.values {
		if str == m {
			return m, true
		}
	}
	if pc.Coerce() {
		for _, m := range s.values {
			if strings.EqualFold(str, m) {
				return m, true
			}
		}
	}
	report(pc, llmskema.CodeInvalidEnumValue, map[string]any{
		"options": append([]string(nil), s.values...), "received": str,
	})
	return v, false
}

func (s *EnumSchema) JSONSchema() *js.Schema {
	opts := make([]any, len(s.values))
	for i, m := range s.values {
		opts[i] = m
	}
	return &js.Schema{Type: "string", Enum: opts, Description: s.meta.Description}
}

package dsl

import (
	"context"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// OptionalSchema lets a value be absent. Absence passes through as the
// Missing sentinel so enclosing objects can drop the key; present values
// (including null) validate against the inner schema.
type OptionalSchema struct {
	inner llmskema.Schema
}

// Optional wraps schema so absence is accepted.
func Optional(schema llmskema.Schema) *OptionalSchema { return &OptionalSchema{inner: schema} }

// Unwrap returns the inner schema.
func (s *OptionalSchema) Unwrap() llmskema.Schema { return s.inner }

func (s *OptionalSchema) Kind() llmskema.Kind { return llmskema.KindOptional }
func (s *OptionalSchema) Const() (any, bool) { return s.inner.Const() }
func (s *OptionalSchema) Meta() llmskema.Meta { return s.inner.Meta() }

func (s *OptionalSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if llmskema.IsMissing(v) {
		return llmskema.Missing, true
	}
	return s.inner.Validate(ctx, v, pc)
}

func (s *OptionalSchema) JSONSchema() *js.Schema { return s.inner.JSONSchema() }

// NullableSchema lets a value be null. Null passes through; everything
// else, including absence, goes to the inner schema.
type NullableSchema struct {
	inner llmskema.Schema
}

// Nullable wraps schema so null is accepted.
func Nullable(schema llmskema.Schema) *NullableSchema { return &NullableSchema{inner: schema} }

// Unwrap returns the inner schema.
func (s *NullableSchema) Unwrap() llmskema.Schema { return s.inner }

func (s *NullableSchema) Kind() llmskema.Kind { return llmskema.KindNullable }
func (s *NullableSchema) Const() (any, bool) { return s.inner.Const() }
func (s *NullableSchema) Meta() llmskema.Meta { return s.inner.Meta() }

func (s *NullableSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if v == nil {
		return nil, true
	}
	return s.inner.Validate(ctx, v, pc)
}

func (s *NullableSchema) JSONSchema() *js.Schema {
	inner := s.inner.JSONSchema()
	return &js.Schema{OneOf: []*js.Schema{inner, {Type: "null"}}}
}

// RefineSchema runs a caller-supplied predicate after the inner schema
// validates. A predicate failure reports one custom-code issue with the
// configured message; the inner schema's issues are reported as usual.
type RefineSchema struct {
	inner llmskema.Schema
	check func(v any) bool
	msg   string
}

// Refine wraps schema with an arbitrary predicate over the validated value.
func Refine(schema llmskema.Schema, msg string, check func(v any) bool) *RefineSchema {
	return &RefineSchema{inner: schema, check: check, msg: msg}
}

// Unwrap returns the inner schema.
func (s *RefineSchema) Unwrap() llmskema.Schema { return s.inner }

func (s *RefineSchema) Kind() llmskema.Kind { return s.inner.Kind() }
func (s *RefineSchema) Const() (any, bool) { return s.inner.Const() }
func (s *RefineSchema) Meta() llmskema.Meta { return s.inner.Meta() }

func (s *RefineSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	out, ok := s.inner.Validate(ctx, v, pc)
	if !ok {
		return out, false
	}
	if !s.check(out) {
		pc.Report(llmskema.Issue{Code: llmskema.CodeCustom, Message: s.msg})
		return out, false
	}
	return out, true
}

func (s *RefineSchema) JSONSchema() *js.Schema { return s.inner.JSONSchema() }

// DefaultSchema substitutes a value when the input is absent. Null is a
// present value and is not substituted; it goes to the inner schema and
// fails there unless the inner schema is nullable.
type DefaultSchema struct {
	inner llmskema.Schema
	value any
}

// Default wraps schema so absence yields value instead of an error.
func Default(schema llmskema.Schema, value any) *DefaultSchema {
	return &DefaultSchema{inner: schema, value: value}
}

// Unwrap returns the inner schema.
func (s *DefaultSchema) Unwrap() llmskema.Schema { return s.inner }

func (s *DefaultSchema) Kind() llmskema.Kind { return llmskema.KindDefault }
func (s *DefaultSchema) Const() (any, bool) { return s.inner.Const() }
func (s *DefaultSchema) Meta() llmskema.Meta { return s.inner.Meta() }

func (s *DefaultSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	if llmskema.IsMissing(v) {
		if pc.ApplyDefaults() {
			return s.value, true
		}
		return llmskema.Missing, true
	}
	return s.inner.Validate(ctx, v, pc)
}

func (s *DefaultSchema) JSONSchema() *js.Schema {
	out := s.inner.JSONSchema()
	cp := *out
	cp.Default = s.value
	return &cp
}

package dsl

import (
	"context"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// ArraySchema validates every element of a slice against one element
// schema. Element failures do not stop later elements; the output keeps the
// best-effort value for every index.
type ArraySchema struct {
	elem llmskema.Schema
	min  *int
	max  *int
	meta llmskema.Meta
}

// Array returns a schema validating arrays of elem.
func Array(elem llmskema.Schema) *ArraySchema { return &ArraySchema{elem: elem} }

func (s *ArraySchema) clone() *ArraySchema {
	cp := *s
	return &cp
}

// Min requires at least n elements.
func (s *ArraySchema) Min(n int) *ArraySchema {
	cp := s.clone()
	cp.min = &n
	return cp
}

// Max allows at most n elements.
func (s *ArraySchema) Max(n int) *ArraySchema {
	cp := s.clone()
	cp.max = &n
	return cp
}

// Length requires exactly n elements.
func (s *ArraySchema) Length(n int) *ArraySchema {
	cp := s.clone()
	cp.min = &n
	cp.max = &n
	return cp
}

// Describe attaches a human-readable description.
func (s *ArraySchema) Describe(d string) *ArraySchema {
	cp := s.clone()
	cp.meta.Description = d
	return cp
}

func (s *ArraySchema) Kind() llmskema.Kind { return llmskema.KindArray }
func (s *ArraySchema) Const() (any, bool) { return nil, false }
func (s *ArraySchema) Meta() llmskema.Meta { return s.meta }

func (s *ArraySchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	arr, ok := v.([]any)
	if !ok {
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "array", "received": typeName(v),
		})
		return v, false
	}

	valid := true
	if s.min != nil && len(arr) < *s.min {
		report(pc, llmskema.CodeTooSmall, map[string]any{
			"type": "array", "minimum": *s.min, "inclusive": true,
		})
		valid = false
	}
	if s.max != nil && len(arr) > *s.max {
		report(pc, llmskema.CodeTooBig, map[string]any{
			"type": "array", "maximum": *s.max, "inclusive": true,
		})
		valid = false
	}
	if !valid && pc.FailFast() {
		return arr, false
	}

	out := make([]any, len(arr))
	for i, el := range arr {
		res, elemOK := s.elem.Validate(ctx, el, pc.Child(i))
		out[i] = res
		if !elemOK {
			valid = false
			if pc.FailFast() {
				return out, false
			}
		}
	}
	return out, valid
}

func (s *ArraySchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", Items: s.elem.JSONSchema(), Description: s.meta.Description}
	if s.min != nil {
		n := *s.min
		out.MinItems = &n
	}
	if s.max != nil {
		n := *s.max
		out.MaxItems = &n
	}
	return out
}

// TupleSchema validates a fixed-arity array where each position has its own
// schema. With a Rest schema the tuple becomes variadic: extra elements
// validate against it.
type TupleSchema struct {
	items []llmskema.Schema
	rest  llmskema.Schema
	meta  llmskema.Meta
}

// Tuple returns a schema validating [items[0], items[1], ...].
func Tuple(items ...llmskema.Schema) *TupleSchema {
	return &TupleSchema{items: append([]llmskema.Schema(nil), items...)}
}

// Rest allows elements beyond the fixed positions, each validated against
// schema.
func (s *TupleSchema) Rest(schema llmskema.Schema) *TupleSchema {
	cp := &TupleSchema{items: s.items, rest: schema, meta: s.meta}
	return cp
}

// Describe attaches a human-readable description.
func (s *TupleSchema) Describe(d string) *TupleSchema {
	cp := &TupleSchema{items: s.items, rest: s.rest, meta: s.meta}
	cp.meta.Description = d
	return cp
}

func (s *TupleSchema) Kind() llmskema.Kind { return llmskema.KindTuple }
func (s *TupleSchema) Const() (any, bool) { return nil, false }
func (s *TupleSchema) Meta() llmskema.Meta { return s.meta }

func (s *TupleSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	arr, ok := v.([]any)
	if !ok {
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "array", "received": typeName(v),
		})
		return v, false
	}

	if s.rest == nil && len(arr) != len(s.items) {
		if len(arr) < len(s.items) {
			report(pc, llmskema.CodeTooSmall, map[string]any{
				"type": "array", "minimum": len(s.items), "exact": true,
			})
		} else {
			report(pc, llmskema.CodeTooBig, map[string]any{
				"type": "array", "maximum": len(s.items), "exact": true,
			})
		}
		return arr, false
	}
	if s.rest != nil && len(arr) < len(s.items) {
		report(pc, llmskema.CodeTooSmall, map[string]any{
			"type": "array", "minimum": len(s.items), "inclusive": true,
		})
		return arr, false
	}

	valid := true
	out := make([]any, len(arr))
	for i, el := range arr {
		schema := s.rest
		if i < len(s.items) {
			schema = s.items[i]
		}
		res, elemOK := schema.Validate(ctx, el, pc.Child(i))
		out[i] = res
		if !elemOK {
			valid = false
			if pc.FailFast() {
				return out, false
			}
		}
	}
	return out, valid
}

func (s *TupleSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "array", Description: s.meta.Description}
	for _, item := range s.items {
		out.PrefixItems = append(out.PrefixItems, item.JSONSchema())
	}
	n := len(s.items)
	out.MinItems = &n
	if s.rest != nil {
		out.Items = s.rest.JSONSchema()
	} else {
		m := n
		out.MaxItems = &m
	}
	return out
}

package dsl

import (
	"context"
	"fmt"
	"sort"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// UnionSchema tries its members in declaration order and accepts the first
// that validates without issues. On total failure it reports one
// invalid_union issue carrying every branch's issues as Nested, so callers
// see why each alternative was rejected.
type UnionSchema struct {
	members []llmskema.Schema
	meta    llmskema.Meta
}

// Union returns a schema matching any one of members. Order matters: put
// the most specific member first, since the first success wins.
func Union(members ...llmskema.Schema) *UnionSchema {
	return &UnionSchema{members: append([]llmskema.Schema(nil), members...)}
}

// Describe attaches a human-readable description.
func (s *UnionSchema) Describe(d string) *UnionSchema {
	cp := &UnionSchema{members: s.members, meta: s.meta}
	cp.meta.Description = d
	return cp
}

func (s *UnionSchema) Kind() llmskema.Kind { return llmskema.KindUnion }
func (s *UnionSchema) Const() (any, bool) { return nil, false }
func (s *UnionSchema) Meta() llmskema.Meta { return s.meta }

func (s *UnionSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	var nested llmskema.Issues
	for _, m := range s.members {
		b := pc.Branch()
		res, ok := m.Validate(ctx, v, b)
		if ok && !b.HasIssues() {
			return res, true
		}
		nested = append(nested, b.Issues()...)
	}
	pc.Report(llmskema.Issue{
		Code:    llmskema.CodeInvalidUnion,
		Message: tMessage(llmskema.CodeInvalidUnion),
		Nested:  nested,
	})
	return v, false
}

func (s *UnionSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Description: s.meta.Description}
	for _, m := range s.members {
		out.OneOf = append(out.OneOf, m.JSONSchema())
	}
	return out
}

// DiscriminatedUnionSchema dispatches on one field's literal value instead
// of trialling every member. The dispatch table is built at construction,
// so a malformed member set fails immediately instead of at parse time.
type DiscriminatedUnionSchema struct {
	field   string
	members []llmskema.Schema
	byTag   map[string]llmskema.Schema
	options []string
	meta    llmskema.Meta
}

// DiscriminatedUnion returns a union dispatching on the named field. Every
// member must be an object schema declaring that field as a string literal;
// anything else panics, since it is a programming error in the schema
// definition, not a data error.
func DiscriminatedUnion(field string, members ...llmskema.Schema) *DiscriminatedUnionSchema {
	s := &DiscriminatedUnionSchema{
		field:   field,
		members: append([]llmskema.Schema(nil), members...),
		byTag:   map[string]llmskema.Schema{},
	}
	for i, m := range members {
		fs, ok := m.(llmskema.FieldSchemas)
		if !ok {
			panic(fmt.Sprintf("dsl: discriminated union member %d is not an object schema", i))
		}
		tagSchema, ok := fs.FieldSchema(field)
		if !ok {
			panic(fmt.Sprintf("dsl: discriminated union member %d has no field %q", i, field))
		}
		tag, ok := tagSchema.Const()
		if !ok {
			panic(fmt.Sprintf("dsl: discriminated union member %d: field %q is not a literal", i, field))
		}
		str, ok := tag.(string)
		if !ok {
			panic(fmt.Sprintf("dsl: discriminated union member %d: field %q literal is not a string", i, field))
		}
		if _, dup := s.byTag[str]; dup {
			panic(fmt.Sprintf("dsl: discriminated union: duplicate discriminator value %q", str))
		}
		s.byTag[str] = m
		s.options = append(s.options, str)
	}
	sort.Strings(s.options)
	return s
}

// Describe attaches a human-readable description.
func (s *DiscriminatedUnionSchema) Describe(d string) *DiscriminatedUnionSchema {
	cp := *s
	cp.meta.Description = d
	return &cp
}

func (s *DiscriminatedUnionSchema) Kind() llmskema.Kind { return llmskema.KindDiscriminatedUnion }
func (s *DiscriminatedUnionSchema) Const() (any, bool) { return nil, false }
func (s *DiscriminatedUnionSchema) Meta() llmskema.Meta { return s.meta }

func (s *DiscriminatedUnionSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "object", "received": typeName(v),
		})
		return v, false
	}
	tag, _ := m[s.field].(string)
	member, found := s.byTag[tag]
	if !found {
		pc.Child(s.field).Report(llmskema.Issue{
			Code:    llmskema.CodeInvalidDiscriminator,
			Message: tMessage(llmskema.CodeInvalidDiscriminator),
			Params: map[string]any{
				"options": append([]string(nil), s.options...), "received": m[s.field],
			},
		})
		return v, false
	}
	return member.Validate(ctx, v, pc)
}

func (s *DiscriminatedUnionSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Description: s.meta.Description}
	for _, m := range s.members {
		out.OneOf = append(out.OneOf, m.JSONSchema())
	}
	return out
}

// IntersectionSchema validates a value against both operands and merges the
// results. Two objects merge shallowly with the right side winning on key
// collision; identical non-object results pass through; anything else is an
// intersection type error.
type IntersectionSchema struct {
	left  llmskema.Schema
	right llmskema.Schema
	meta  llmskema.Meta
}

// Intersection returns a schema requiring v to satisfy both left and right.
func Intersection(left, right llmskema.Schema) *IntersectionSchema {
	return &IntersectionSchema{left: left, right: right}
}

// Describe attaches a human-readable description.
func (s *IntersectionSchema) Describe(d string) *IntersectionSchema {
	cp := *s
	cp.meta.Description = d
	return &cp
}

func (s *IntersectionSchema) Kind() llmskema.Kind { return llmskema.KindIntersection }
func (s *IntersectionSchema) Const() (any, bool) { return nil, false }
func (s *IntersectionSchema) Meta() llmskema.Meta { return s.meta }

func (s *IntersectionSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	lv, lok := s.left.Validate(ctx, v, pc)
	rb := pc.Branch()
	rv, rok := s.right.Validate(ctx, v, rb)
	pc.Adopt(rb)
	if !lok || !rok {
		return v, false
	}

	lm, lIsMap := lv.(map[string]any)
	rm, rIsMap := rv.(map[string]any)
	switch {
	case lIsMap && rIsMap:
		out := make(map[string]any, len(lm)+len(rm))
		for k, val := range lm {
			out[k] = val
		}
		for k, val := range rm {
			out[k] = val
		}
		return out, true
	case !lIsMap && !rIsMap:
		if literalEqual(lv, rv) {
			return rv, true
		}
	}
	report(pc, llmskema.CodeInvalidIntersection, nil)
	return v, false
}

func (s *IntersectionSchema) JSONSchema() *js.Schema {
	return &js.Schema{
		AllOf:       []*js.Schema{s.left.JSONSchema(), s.right.JSONSchema()},
		Description: s.meta.Description,
	}
}

package dsl

import (
	"context"
	"sort"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// ObjectSchema validates maps against a set of named fields. Fields are
// visited in declaration order so issue ordering is deterministic. The
// unknown-key policy defaults to stripping.
type ObjectSchema struct {
	keys   []string
	fields map[string]llmskema.Schema
	policy llmskema.UnknownPolicy
	meta   llmskema.Meta
}

// Object returns an empty object schema with the strip policy.
func Object() *ObjectSchema {
	return &ObjectSchema{fields: map[string]llmskema.Schema{}}
}

func (s *ObjectSchema) clone() *ObjectSchema {
	cp := &ObjectSchema{
		keys:   append([]string(nil), s.keys...),
		fields: make(map[string]llmskema.Schema, len(s.fields)),
		policy: s.policy,
		meta:   s.meta,
	}
	for k, v := range s.fields {
		cp.fields[k] = v
	}
	return cp
}

// Field adds or replaces one named field.
func (s *ObjectSchema) Field(name string, schema llmskema.Schema) *ObjectSchema {
	cp := s.clone()
	if _, exists := cp.fields[name]; !exists {
		cp.keys = append(cp.keys, name)
	}
	cp.fields[name] = schema
	return cp
}

// Extend adds the given fields, replacing any that already exist. It is
// Merge restricted to a field map literal.
func (s *ObjectSchema) Extend(fields map[string]llmskema.Schema) *ObjectSchema {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	cp := s
	for _, name := range names {
		cp = cp.Field(name, fields[name])
	}
	return cp
}

// Merge combines two object schemas. other's fields win on collision, and
// other's unknown-key policy is kept.
func (s *ObjectSchema) Merge(other *ObjectSchema) *ObjectSchema {
	cp := s.clone()
	for _, name := range other.keys {
		if _, exists := cp.fields[name]; !exists {
			cp.keys = append(cp.keys, name)
		}
		cp.fields[name] = other.fields[name]
	}
	cp.policy = other.policy
	return cp
}

// Pick keeps only the named fields.
func (s *ObjectSchema) Pick(names ...string) *ObjectSchema {
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}
	cp := &ObjectSchema{fields: map[string]llmskema.Schema{}, policy: s.policy, meta: s.meta}
	for _, name := range s.keys {
		if keep[name] {
			cp.keys = append(cp.keys, name)
			cp.fields[name] = s.fields[name]
		}
	}
	return cp
}

// Omit drops the named fields.
func (s *ObjectSchema) Omit(names ...string) *ObjectSchema {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	cp := &ObjectSchema{fields: map[string]llmskema.Schema{}, policy: s.policy, meta: s.meta}
	for _, name := range s.keys {
		if !drop[name] {
			cp.keys = append(cp.keys, name)
			cp.fields[name] = s.fields[name]
		}
	}
	return cp
}

// Partial makes every field optional.
func (s *ObjectSchema) Partial() *ObjectSchema {
	cp := s.clone()
	for _, name := range cp.keys {
		if _, already := cp.fields[name].(*OptionalSchema); !already {
			cp.fields[name] = Optional(cp.fields[name])
		}
	}
	return cp
}

// Required undoes Partial: any Optional wrapper is unwrapped.
func (s *ObjectSchema) Required() *ObjectSchema {
	cp := s.clone()
	for _, name := range cp.keys {
		if opt, ok := cp.fields[name].(*OptionalSchema); ok {
			cp.fields[name] = opt.Unwrap()
		}
	}
	return cp
}

// Strict rejects unknown keys with a single unrecognized_keys issue.
func (s *ObjectSchema) Strict() *ObjectSchema {
	cp := s.clone()
	cp.policy = llmskema.UnknownStrict
	return cp
}

// Strip silently drops unknown keys. This is the default.
func (s *ObjectSchema) Strip() *ObjectSchema {
	cp := s.clone()
	cp.policy = llmskema.UnknownStrip
	return cp
}

// Passthrough copies unknown keys to the output untouched.
func (s *ObjectSchema) Passthrough() *ObjectSchema {
	cp := s.clone()
	cp.policy = llmskema.UnknownPassthrough
	return cp
}

// Describe attaches a human-readable description.
func (s *ObjectSchema) Describe(d string) *ObjectSchema {
	cp := s.clone()
	cp.meta.Description = d
	return cp
}

// FieldSchema returns the schema declared for name.
func (s *ObjectSchema) FieldSchema(name string) (llmskema.Schema, bool) {
	sch, ok := s.fields[name]
	return sch, ok
}

func (s *ObjectSchema) Kind() llmskema.Kind { return llmskema.KindObject }
func (s *ObjectSchema) Const() (any, bool) { return nil, false }
func (s *ObjectSchema) Meta() llmskema.Meta { return s.meta }

func (s *ObjectSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "object", "received": typeName(v),
		})
		return v, false
	}

	out := make(map[string]any, len(m))
	valid := true
	for _, name := range s.keys {
		raw, present := m[name]
		if !present {
			raw = llmskema.Missing
		}
		res, fieldOK := s.fields[name].Validate(ctx, raw, pc.Child(name))
		if !fieldOK {
			valid = false
			if pc.FailFast() {
				return out, false
			}
		}
		if !llmskema.IsMissing(res) {
			out[name] = res
		}
	}

	if s.policy != llmskema.UnknownStrip {
		var unknown []string
		for k := range m {
			if _, declared := s.fields[k]; !declared {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		switch s.policy {
		case llmskema.UnknownPassthrough:
			for _, k := range unknown {
				out[k] = m[k]
			}
		case llmskema.UnknownStrict:
			if len(unknown) > 0 {
				report(pc, llmskema.CodeUnrecognizedKeys, map[string]any{"keys": unknown})
				valid = false
			}
		}
	}
	return out, valid
}

func (s *ObjectSchema) JSONSchema() *js.Schema {
	out := &js.Schema{Type: "object", Description: s.meta.Description}
	if len(s.keys) > 0 {
		out.Properties = map[string]*js.Schema{}
	}
	for _, name := range s.keys {
		field := s.fields[name]
		out.Properties[name] = field.JSONSchema()
		if !isOptionalField(field) {
			out.Required = append(out.Required, name)
		}
	}
	switch s.policy {
	case llmskema.UnknownStrict:
		out.AdditionalProperties = false
	case llmskema.UnknownPassthrough:
		out.AdditionalProperties = true
	}
	return out
}

// isOptionalField reports whether a field may be absent: Optional wrappers
// and Default wrappers (which substitute on absence) are both non-required.
func isOptionalField(s llmskema.Schema) bool {
	switch s.(type) {
	case *OptionalSchema, *DefaultSchema:
		return true
	}
	return false
}

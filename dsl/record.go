package dsl

import (
	"context"
	"sort"

	llmskema "github.com/reoring/llmskema"
	js "github.com/reoring/llmskema/jsonschema"
)

// RecordSchema validates a homogeneous map: every key against one schema,
// every value against another. Keys are visited in sorted order so issue
// ordering is deterministic. An entry survives to the output only when both
// its key and its value validate.
type RecordSchema struct {
	key  llmskema.Schema
	val  llmskema.Schema
	meta llmskema.Meta
}

// Record returns a schema validating map keys against key and map values
// against val.
func Record(key, val llmskema.Schema) *RecordSchema {
	return &RecordSchema{key: key, val: val}
}

// Describe attaches a human-readable description.
func (s *RecordSchema) Describe(d string) *RecordSchema {
	cp := &RecordSchema{key: s.key, val: s.val, meta: s.meta}
	cp.meta.Description = d
	return cp
}

func (s *RecordSchema) Kind() llmskema.Kind { return llmskema.KindRecord }
func (s *RecordSchema) Const() (any, bool) { return nil, false }
func (s *RecordSchema) Meta() llmskema.Meta { return s.meta }

func (s *RecordSchema) Validate(ctx context.Context, v any, pc *llmskema.ParseContext) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		report(pc, llmskema.CodeInvalidType, map[string]any{
			"expected": "object", "received": typeName(v),
		})
		return v, false
	}

	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	valid := true
	out := make(map[string]any, len(m))
	for _, name := range names {
		child := pc.Child(name)
		keyRes, keyOK := s.key.Validate(ctx, name, child)
		valRes, valOK := s.val.Validate(ctx, m[name], child)
		if !keyOK || !valOK {
			valid = false
			if pc.FailFast() {
				return out, false
			}
			continue
		}
		outKey, isStr := keyRes.(string)
		if !isStr {
			outKey = name
		}
		out[outKey] = valRes
	}
	return out, valid
}

func (s *RecordSchema) JSONSchema() *js.Schema {
	return &js.Schema{
		Type:                 "object",
		PropertyNames:        s.key.JSONSchema(),
		AdditionalProperties: s.val.JSONSchema(),
		Description:          s.meta.Description,
	}
}

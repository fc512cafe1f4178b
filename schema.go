package llmskema

import (
	"context"

	js "github.com/reoring/llmskema/jsonschema"
)

// Kind is the closed enumeration of schema variants. Every Schema reports
// exactly one Kind, which makes dispatch over variants explicit instead of
// relying on type assertions against concrete builder types.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindLiteral
	KindNull
	KindAny
	KindUnknown
	KindEnum
	KindArray
	KindObject
	KindRecord
	KindTuple
	KindUnion
	KindDiscriminatedUnion
	KindIntersection
	KindOptional
	KindNullable
	KindDefault
	KindUndefined
)

var kindNames = [...]string{
	"string", "number", "bool", "literal", "null", "any", "unknown",
	"enum", "array", "object", "record", "tuple", "union",
	"discriminated_union", "intersection", "optional", "nullable", "default",
	"undefined",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown_kind"
}

// Meta is the human-facing metadata carried by a schema node. It never
// affects validation; exporters read it when emitting JSON Schema.
type Meta struct {
	Description string
	Examples    []any
}

// Schema is the uniform validate contract implemented by every variant.
//
// Schema values are immutable once constructed: every chainable
// configuration method on a builder returns a new node, so a base schema
// can be shared across derived schemas and across goroutines freely.
type Schema interface {
	// Kind identifies the variant.
	Kind() Kind

	// Validate checks v against the schema, reporting failures as Issues on
	// pc and returning the (possibly transformed) value plus a validity
	// flag. The returned value is best-effort even when ok is false, which
	// is what allows ParseLLM to surface a partial value for retry prompts.
	Validate(ctx context.Context, v any, pc *ParseContext) (any, bool)

	// JSONSchema projects the node into the export representation.
	JSONSchema() *js.Schema

	// Const reports the literal constant this schema matches, if any. This
	// is the capability discriminated unions use to build their lookup
	// table without reaching into a member's internals.
	Const() (any, bool)

	// Meta returns the node's description/examples metadata.
	Meta() Meta
}

// FieldSchemas is implemented by object-like schemas that can expose the
// schema attached to a named member. Discriminated unions require it of
// every member.
type FieldSchemas interface {
	FieldSchema(name string) (Schema, bool)
}

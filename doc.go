// Package llmskema provides:
//
// - Composable schema validation for dynamic values (Parse/SafeParse/ParseLLM)
// - A stable error model via Issues (path segments, code, message)
// - A tolerant JSON repair pipeline for LLM text output (repair/)
// - JSON Schema projection for prompt/tool definitions (jsonschema/)
//
// Design policy:
// - Keep only public APIs in the root package; builders live under dsl/.
// - Schema nodes are immutable; every chainable configuration call returns
//   a new node, so base schemas can be shared freely.
// - Validation never panics: failures aggregate as Issues on the
//   ParseContext and surface by value.
//
// Typical usage:
//
//	user := dsl.Object().
//		Field("name", dsl.String().Min(1)).
//		Field("age", dsl.Number().Int().Min(0))
//
//	r := llmskema.ParseLLM(ctx, user, "```json\n{name: 'Reo', age: 30,}\n```")
//	if !r.OK {
//		// r.Issues has every problem found; r.Partial has what did validate.
//	}
package llmskema

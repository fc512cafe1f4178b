package llmskema

import (
	"context"
	"strings"

	"github.com/reoring/llmskema/i18n"
	"github.com/reoring/llmskema/repair"
)

// Result is the outward-facing outcome of SafeParse and ParseLLM. Exactly
// one of Value or Issues is populated.
type Result struct {
	OK     bool
	Value  any
	Issues Issues
	// Partial is the deepest partially-valid value reconstructed before the
	// overall result was deemed invalid. Populated by ParseLLM on failure,
	// intended to be fed back into a retry prompt alongside the issues.
	Partial any
}

// Parse validates v against s in strict mode and returns the typed value,
// or the aggregated Issues as an error.
func Parse(ctx context.Context, s Schema, v any, opts ...ParseOpt) (any, error) {
	r := SafeParse(ctx, s, v, opts...)
	if !r.OK {
		return nil, r.Issues
	}
	return r.Value, nil
}

// SafeParse validates v against s in strict mode. It never returns an
// error; failures are reported on the Result.
func SafeParse(ctx context.Context, s Schema, v any, opts ...ParseOpt) Result {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	pc := NewParseContext(Strict)
	pc.failFast = opt.FailFast
	out, _ := s.Validate(ctx, v, pc)
	if pc.HasIssues() {
		return Result{Issues: pc.Issues()}
	}
	return Result{OK: true, Value: out}
}

// ParseLLM validates LLM output against s. String (or []byte) input is
// first run through the repair pipeline, and the schema tree runs in
// lenient mode: type coercion, case-insensitive enum matching, and default
// substitution. Text the pipeline cannot turn into JSON is still offered to
// the schema as a bare string, so answers like "yes" or "ACTIVE" coerce
// against scalar schemas. On failure the Result carries the full issue list
// plus a best-effort partial value.
func ParseLLM(ctx context.Context, s Schema, v any, opts ...LLMOpt) Result {
	var opt LLMOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}

	switch t := v.(type) {
	case string:
		rr := repair.Repair(t)
		if !rr.OK {
			// not JSON even after repair; the raw text may still be a
			// coercible scalar ("yes", "30", a bare enum member)
			if r := validateLenient(ctx, s, strings.TrimSpace(t), opt); r.OK {
				return r
			}
			return Result{Issues: Issues{{
				Code:    CodeParseError,
				Path:    Path{},
				Message: i18n.T(CodeParseError, nil),
				Params:  map[string]any{"error": rr.Err.Error()},
			}}}
		}
		v = rr.Data
	case []byte:
		return ParseLLM(ctx, s, string(t), opts...)
	}

	return validateLenient(ctx, s, v, opt)
}

func validateLenient(ctx context.Context, s Schema, v any, opt LLMOpt) Result {
	pc := NewParseContext(Lenient)
	pc.coerce = !opt.NoCoerce
	pc.defaults = !opt.NoDefaults
	pc.failFast = opt.FailFast
	out, _ := s.Validate(ctx, v, pc)
	if pc.HasIssues() {
		return Result{Issues: pc.Issues(), Partial: out}
	}
	return Result{OK: true, Value: out}
}

// ParseJSON decodes data as strict JSON and validates it against s. The
// ParseOpt size/depth guards apply to the decoded input.
func ParseJSON(ctx context.Context, s Schema, data []byte, opts ...ParseOpt) (any, error) {
	v, err := decodeGuarded(data, JSONBytes, opts)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, s, v, opts...)
}

// ParseYAML decodes data as YAML and validates it against s. LLMs asked for
// JSON sometimes answer in YAML; this keeps that input on the same
// validation path.
func ParseYAML(ctx context.Context, s Schema, data []byte, opts ...ParseOpt) (any, error) {
	v, err := decodeGuarded(data, YAMLBytes, opts)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, s, v, opts...)
}

func decodeGuarded(data []byte, decode func([]byte) (any, error), opts []ParseOpt) (any, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, Issues{{
			Code:    CodeTooBig,
			Path:    Path{},
			Message: i18n.T(CodeTooBig, nil),
			Params:  map[string]any{"type": "bytes", "maximum": opt.MaxBytes, "got": int64(len(data))},
		}}
	}
	v, err := decode(data)
	if err != nil {
		return nil, Issues{{
			Code:    CodeParseError,
			Path:    Path{},
			Message: i18n.T(CodeParseError, nil),
			Params:  map[string]any{"error": err.Error()},
		}}
	}
	if opt.MaxDepth > 0 && valueDepth(v) > opt.MaxDepth {
		return nil, Issues{{
			Code:    CodeTooBig,
			Path:    Path{},
			Message: i18n.T(CodeTooBig, nil),
			Params:  map[string]any{"type": "depth", "maximum": opt.MaxDepth},
		}}
	}
	return v, nil
}

// valueDepth measures container nesting of a decoded value.
func valueDepth(v any) int {
	switch t := v.(type) {
	case map[string]any:
		max := 0
		for _, e := range t {
			if d := valueDepth(e); d > max {
				max = d
			}
		}
		return max + 1
	case []any:
		max := 0
		for _, e := range t {
			if d := valueDepth(e); d > max {
				max = d
			}
		}
		return max + 1
	default:
		return 0
	}
}

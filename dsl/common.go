package dsl

import (
	"encoding/json"
	"strconv"

	llmskema "github.com/reoring/llmskema"
	"github.com/reoring/llmskema/i18n"
)

// report appends a coded issue at the context's current path.
func report(pc *llmskema.ParseContext, code string, params map[string]any) {
	pc.Report(llmskema.Issue{Code: code, Message: i18n.T(code, nil), Params: params})
}

// tMessage resolves the translated message for a code. For validators that
// build the Issue by hand (unions, wrappers) instead of going through
// report.
func tMessage(code string) string { return i18n.T(code, nil) }

// typeName renders a dynamic value's type the way issue params describe it.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		if llmskema.IsMissing(v) {
			return "undefined"
		}
		return "unknown"
	}
}

// toFloat converts any numeric representation to float64. ok is false for
// non-numeric values; NaN from a json.Number never occurs (the decoder
// rejects it), but callers still guard.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// stringify renders a primitive the way lenient string validation wants it.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

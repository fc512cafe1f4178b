package dsl_test

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"testing"

	llmskema "github.com/reoring/llmskema"
	"github.com/reoring/llmskema/dsl"
)

func mustParse(t *testing.T, s llmskema.Schema, v any) any {
	t.Helper()
	out, err := llmskema.Parse(context.Background(), s, v)
	if err != nil {
		t.Fatalf("Parse(%v) failed: %v", v, err)
	}
	return out
}

func mustFail(t *testing.T, s llmskema.Schema, v any) llmskema.Issues {
	t.Helper()
	r := llmskema.SafeParse(context.Background(), s, v)
	if r.OK {
		t.Fatalf("SafeParse(%v) unexpectedly succeeded with %v", v, r.Value)
	}
	return r.Issues
}

// lenientParse validates v against s in lenient mode. The value is wrapped
// in a decoded object so it reaches the schema as an already-decoded value;
// a bare string argument to ParseLLM first goes through the repair pipeline
// (and, for unrepairable text, is retried as a raw scalar).
func lenientParse(t *testing.T, s llmskema.Schema, v any) any {
	t.Helper()
	obj := dsl.Object().Field("v", s)
	r := llmskema.ParseLLM(context.Background(), obj, map[string]any{"v": v})
	if !r.OK {
		t.Fatalf("lenient parse of %v failed: %v", v, r.Issues)
	}
	return r.Value.(map[string]any)["v"]
}

// lenientFail is the failing counterpart of lenientParse.
func lenientFail(t *testing.T, s llmskema.Schema, v any) llmskema.Issues {
	t.Helper()
	obj := dsl.Object().Field("v", s)
	r := llmskema.ParseLLM(context.Background(), obj, map[string]any{"v": v})
	if r.OK {
		t.Fatalf("lenient parse of %v unexpectedly succeeded with %v", v, r.Value)
	}
	return r.Issues
}

func TestString(t *testing.T) {
	s := dsl.String().Min(2).Max(5)
	if got := mustParse(t, s, "abc"); got != "abc" {
		t.Errorf("got %v", got)
	}
	iss := mustFail(t, s, "a")
	if iss[0].Code != llmskema.CodeTooSmall {
		t.Errorf("code = %s", iss[0].Code)
	}
	iss = mustFail(t, s, "abcdef")
	if iss[0].Code != llmskema.CodeTooBig {
		t.Errorf("code = %s", iss[0].Code)
	}
	iss = mustFail(t, s, 42)
	if iss[0].Code != llmskema.CodeInvalidType {
		t.Errorf("code = %s", iss[0].Code)
	}
	if iss[0].Params["received"] != "number" {
		t.Errorf("received = %v", iss[0].Params["received"])
	}
}

func TestStringChecksDoNotShortCircuit(t *testing.T) {
	s := dsl.String().Min(10).StartsWith("x")
	iss := mustFail(t, s, "abc")
	if len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", iss)
	}
	if iss[0].Code != llmskema.CodeTooSmall || iss[1].Code != llmskema.CodeInvalidString {
		t.Errorf("codes = %s, %s", iss[0].Code, iss[1].Code)
	}
}

func TestStringTransformsFeedLaterChecks(t *testing.T) {
	s := dsl.String().Trim().ToLower().Min(3)
	if got := mustParse(t, s, "  HELLO  "); got != "hello" {
		t.Errorf("got %v", got)
	}
	// trimmed length is what the check sees
	mustFail(t, s, "  ab  ")
}

func TestStringFormats(t *testing.T) {
	tests := []struct {
		name   string
		schema llmskema.Schema
		good   string
		bad    string
	}{
		{"email", dsl.String().Email(), "a@b.co", "not-an-email"},
		{"url", dsl.String().URL(), "https://example.com/x", "example dot com"},
		{"uuid", dsl.String().UUID(), "9b2b1c62-7e4d-4f4b-8a53-1c7d2b9f0e11", "not-a-uuid"},
		{"regex", dsl.String().Regex(regexp.MustCompile(`^\d+$`)), "123", "12a"},
		{"includes", dsl.String().Includes("mid"), "amidst", "none"},
		{"startsWith", dsl.String().StartsWith("pre"), "prefix", "suffix"},
		{"endsWith", dsl.String().EndsWith("fix"), "prefix", "prefab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustParse(t, tt.schema, tt.good)
			iss := mustFail(t, tt.schema, tt.bad)
			if iss[0].Code != llmskema.CodeInvalidString {
				t.Errorf("code = %s", iss[0].Code)
			}
		})
	}
}

func TestStringDates(t *testing.T) {
	mustParse(t, dsl.String().Date(), "2024-06-01")
	iss := mustFail(t, dsl.String().Date(), "June 1st")
	if iss[0].Code != llmskema.CodeInvalidDate {
		t.Errorf("code = %s", iss[0].Code)
	}
	mustParse(t, dsl.String().DateTime(), "2024-06-01T10:30:00Z")
	mustFail(t, dsl.String().DateTime(), "2024-06-01")
}

func TestStringLenientCoercion(t *testing.T) {
	s := dsl.String()
	if got := lenientParse(t, s, json.Number("42")); got != "42" {
		t.Errorf("got %v", got)
	}
	if got := lenientParse(t, s, true); got != "true" {
		t.Errorf("got %v", got)
	}
	// strict mode still rejects
	mustFail(t, s, 42)
}

func TestStringImmutable(t *testing.T) {
	base := dsl.String()
	longer := base.Min(10)
	if _, err := llmskema.Parse(context.Background(), base, "ab"); err != nil {
		t.Errorf("base was mutated by Min: %v", err)
	}
	mustFail(t, longer, "ab")
}

func TestNumber(t *testing.T) {
	s := dsl.Number().Min(0).Max(100)
	if got := mustParse(t, s, json.Number("42")); got != float64(42) {
		t.Errorf("got %v (%T)", got, got)
	}
	if got := mustParse(t, s, 7.5); got != 7.5 {
		t.Errorf("got %v", got)
	}
	iss := mustFail(t, s, json.Number("-1"))
	if iss[0].Code != llmskema.CodeTooSmall {
		t.Errorf("code = %s", iss[0].Code)
	}
	iss = mustFail(t, s, "42")
	if iss[0].Code != llmskema.CodeInvalidType {
		t.Errorf("code = %s", iss[0].Code)
	}
}

func TestNumberInt(t *testing.T) {
	s := dsl.Number().Int()
	mustParse(t, s, json.Number("3"))
	iss := mustFail(t, s, json.Number("3.5"))
	if iss[0].Code != llmskema.CodeInvalidType || iss[0].Params["expected"] != "integer" {
		t.Errorf("issue = %+v", iss[0])
	}
}

func TestNumberSignChecks(t *testing.T) {
	mustParse(t, dsl.Number().Positive(), json.Number("1"))
	mustFail(t, dsl.Number().Positive(), json.Number("0"))
	mustParse(t, dsl.Number().NonNegative(), json.Number("0"))
	mustFail(t, dsl.Number().Negative(), json.Number("0"))
	mustParse(t, dsl.Number().NonPositive(), json.Number("0"))
}

func TestNumberMultipleOf(t *testing.T) {
	s := dsl.Number().MultipleOf(0.1)
	// 0.3 is not exactly representable; the check must tolerate the error
	mustParse(t, s, json.Number("0.3"))
	iss := mustFail(t, s, json.Number("0.35"))
	if iss[0].Code != llmskema.CodeNotMultipleOf {
		t.Errorf("code = %s", iss[0].Code)
	}
}

func TestNumberRejectsNaN(t *testing.T) {
	iss := mustFail(t, dsl.Number(), math.NaN())
	if iss[0].Code != llmskema.CodeInvalidType || iss[0].Params["received"] != "nan" {
		t.Errorf("issue = %+v", iss[0])
	}
}

func TestNumberFinite(t *testing.T) {
	mustParse(t, dsl.Number(), math.Inf(1))
	iss := mustFail(t, dsl.Number().Finite(), math.Inf(1))
	if iss[0].Code != llmskema.CodeNotFinite {
		t.Errorf("code = %s", iss[0].Code)
	}
}

func TestNumberLenientCoercion(t *testing.T) {
	s := dsl.Number()
	if got := lenientParse(t, s, "30"); got != float64(30) {
		t.Errorf("got %v", got)
	}
	if got := lenientParse(t, s, " 2.5 "); got != 2.5 {
		t.Errorf("got %v", got)
	}
	iss := lenientFail(t, s, "not a number")
	if iss[0].Params["received"] != "string" {
		t.Errorf("received = %v", iss[0].Params["received"])
	}
}

func TestBool(t *testing.T) {
	s := dsl.Bool()
	if got := mustParse(t, s, true); got != true {
		t.Errorf("got %v", got)
	}
	mustFail(t, s, "true")
	mustFail(t, s, 1)
}

func TestBoolLenientCoercion(t *testing.T) {
	s := dsl.Bool()
	for _, in := range []any{"true", "1", "YES", " yes ", json.Number("1")} {
		if got := lenientParse(t, s, in); got != true {
			t.Errorf("lenient %v = %v, want true", in, got)
		}
	}
	for _, in := range []any{"false", "0", "No", json.Number("0")} {
		if got := lenientParse(t, s, in); got != false {
			t.Errorf("lenient %v = %v, want false", in, got)
		}
	}
	lenientFail(t, s, "maybe")
}

func TestLiteral(t *testing.T) {
	s := dsl.Literal("v1")
	mustParse(t, s, "v1")
	iss := mustFail(t, s, "v2")
	if iss[0].Code != llmskema.CodeInvalidLiteral {
		t.Errorf("code = %s", iss[0].Code)
	}
	// numeric literals normalize across representations
	n := dsl.Literal(1)
	mustParse(t, n, json.Number("1"))
	mustParse(t, n, float64(1))
}

func TestNullAnyUnknown(t *testing.T) {
	mustParse(t, dsl.Null(), nil)
	mustFail(t, dsl.Null(), "x")
	// absence-only variant: a present null is not absence
	s := dsl.Object().Field("gone", dsl.Undefined())
	mustParse(t, s, map[string]any{})
	mustFail(t, s, map[string]any{"gone": nil})
	if got := mustParse(t, dsl.Any(), map[string]any{"k": 1}); got == nil {
		t.Error("Any dropped the value")
	}
	mustParse(t, dsl.Unknown(), []any{1, 2})
}

func TestEnum(t *testing.T) {
	s := dsl.Enum("active", "inactive")
	mustParse(t, s, "active")
	iss := mustFail(t, s, "archived")
	if iss[0].Code != llmskema.CodeInvalidEnumValue {
		t.Errorf("code = %s", iss[0].Code)
	}
	// strict is case-sensitive
	mustFail(t, s, "ACTIVE")
	// lenient matches case-insensitively and returns the canonical member
	if got := lenientParse(t, s, "ACTIVE"); got != "active" {
		t.Errorf("got %v", got)
	}
}

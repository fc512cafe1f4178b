package dsl_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	llmskema "github.com/reoring/llmskema"
	"github.com/reoring/llmskema/dsl"
)

func TestUnionFirstMatchWins(t *testing.T) {
	s := dsl.Union(dsl.String(), dsl.Number())
	if got := mustParse(t, s, "x"); got != "x" {
		t.Errorf("got %v", got)
	}
	if got := mustParse(t, s, json.Number("1")); got != float64(1) {
		t.Errorf("got %v", got)
	}
}

func TestUnionOrderBreaksTies(t *testing.T) {
	// both members accept "a"; the literal runs first and must win
	s := dsl.Union(dsl.Literal("a"), dsl.String())
	if got := mustParse(t, s, "a"); got != "a" {
		t.Errorf("got %v", got)
	}
	// the general member still catches the rest
	if got := mustParse(t, s, "b"); got != "b" {
		t.Errorf("got %v", got)
	}
}

func TestUnionFailureCarriesBranchIssues(t *testing.T) {
	s := dsl.Union(dsl.String(), dsl.Number())
	iss := mustFail(t, s, true)
	if len(iss) != 1 {
		t.Fatalf("issues = %v", iss)
	}
	if iss[0].Code != llmskema.CodeInvalidUnion {
		t.Errorf("code = %s", iss[0].Code)
	}
	if len(iss[0].Nested) != 2 {
		t.Errorf("nested = %v", iss[0].Nested)
	}
}

func TestUnionBranchIssuesDoNotLeak(t *testing.T) {
	s := dsl.Object().Field("v", dsl.Union(dsl.String(), dsl.Number()))
	got := mustParse(t, s, map[string]any{"v": json.Number("1")})
	if !reflect.DeepEqual(got, map[string]any{"v": float64(1)}) {
		t.Errorf("got %v", got)
	}
}

func TestDiscriminatedUnion(t *testing.T) {
	s := dsl.DiscriminatedUnion("type",
		dsl.Object().Field("type", dsl.Literal("circle")).Field("radius", dsl.Number()),
		dsl.Object().Field("type", dsl.Literal("square")).Field("side", dsl.Number()),
	)

	got := mustParse(t, s, map[string]any{"type": "circle", "radius": json.Number("2")})
	want := map[string]any{"type": "circle", "radius": float64(2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}

	iss := mustFail(t, s, map[string]any{"type": "triangle"})
	if iss[0].Code != llmskema.CodeInvalidDiscriminator {
		t.Fatalf("code = %s", iss[0].Code)
	}
	if iss[0].Pointer() != "/type" {
		t.Errorf("pointer = %q", iss[0].Pointer())
	}
	if !reflect.DeepEqual(iss[0].Params["options"], []string{"circle", "square"}) {
		t.Errorf("options = %v", iss[0].Params["options"])
	}

	// the matched member reports its own field issues
	iss = mustFail(t, s, map[string]any{"type": "circle", "radius": "big"})
	if iss[0].Pointer() != "/radius" {
		t.Errorf("pointer = %q", iss[0].Pointer())
	}
}

func TestDiscriminatedUnionPanicsOnBadMember(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a member without the discriminator literal")
		}
	}()
	dsl.DiscriminatedUnion("type",
		dsl.Object().Field("type", dsl.String()),
	)
}

func TestIntersectionMergesObjects(t *testing.T) {
	s := dsl.Intersection(
		dsl.Object().Field("a", dsl.String()),
		dsl.Object().Field("b", dsl.Number()),
	)
	got := mustParse(t, s, map[string]any{"a": "x", "b": json.Number("1")})
	want := map[string]any{"a": "x", "b": float64(1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}
}

func TestIntersectionRightWinsOnCollision(t *testing.T) {
	s := dsl.Intersection(
		dsl.Object().Field("v", dsl.Any()).Passthrough(),
		dsl.Object().Field("v", dsl.Number()),
	)
	got := mustParse(t, s, map[string]any{"v": json.Number("1")}).(map[string]any)
	if got["v"] != float64(1) {
		t.Errorf("v = %v (%T)", got["v"], got["v"])
	}
}

func TestIntersectionNonObjects(t *testing.T) {
	same := dsl.Intersection(dsl.String(), dsl.String().Min(1))
	if got := mustParse(t, same, "x"); got != "x" {
		t.Errorf("got %v", got)
	}

	mixed := dsl.Intersection(dsl.String(), dsl.Object())
	iss := mustFail(t, mixed, "x")
	hasCode := false
	for _, it := range iss {
		if it.Code == llmskema.CodeInvalidType {
			hasCode = true
		}
	}
	if !hasCode {
		t.Errorf("issues = %v", iss)
	}
}

func TestIntersectionCollectsBothSides(t *testing.T) {
	s := dsl.Intersection(
		dsl.Object().Field("a", dsl.String()),
		dsl.Object().Field("b", dsl.Number()),
	)
	iss := mustFail(t, s, map[string]any{})
	if len(iss) != 2 {
		t.Fatalf("issues = %v", iss)
	}
	if iss[0].Pointer() != "/a" || iss[1].Pointer() != "/b" {
		t.Errorf("pointers = %q, %q", iss[0].Pointer(), iss[1].Pointer())
	}
}

func TestOptional(t *testing.T) {
	s := dsl.Object().Field("nick", dsl.Optional(dsl.String()))

	got := mustParse(t, s, map[string]any{}).(map[string]any)
	if _, present := got["nick"]; present {
		t.Errorf("absent optional appeared in output: %v", got)
	}

	got = mustParse(t, s, map[string]any{"nick": "x"}).(map[string]any)
	if got["nick"] != "x" {
		t.Errorf("got %v", got)
	}

	// null is present, not absent
	mustFail(t, s, map[string]any{"nick": nil})
}

func TestNullable(t *testing.T) {
	s := dsl.Object().Field("nick", dsl.Nullable(dsl.String()))

	got := mustParse(t, s, map[string]any{"nick": nil}).(map[string]any)
	if v, present := got["nick"]; !present || v != nil {
		t.Errorf("got %v", got)
	}

	// absence is not null
	mustFail(t, s, map[string]any{})
}

func TestDefault(t *testing.T) {
	s := dsl.Object().Field("role", dsl.Default(dsl.String(), "user"))

	got := mustParse(t, s, map[string]any{}).(map[string]any)
	if got["role"] != "user" {
		t.Errorf("got %v", got)
	}

	got = mustParse(t, s, map[string]any{"role": "admin"}).(map[string]any)
	if got["role"] != "admin" {
		t.Errorf("got %v", got)
	}

	// null is present and does not trigger the default
	mustFail(t, s, map[string]any{"role": nil})
}

func TestDefaultDisabled(t *testing.T) {
	s := dsl.Object().Field("role", dsl.Default(dsl.String(), "user"))
	r := llmskema.ParseLLM(context.Background(), s, map[string]any{}, llmskema.LLMOpt{NoDefaults: true})
	if !r.OK {
		t.Fatalf("failed: %v", r.Issues)
	}
	if _, present := r.Value.(map[string]any)["role"]; present {
		t.Errorf("default applied despite NoDefaults: %v", r.Value)
	}
}

func TestRefine(t *testing.T) {
	even := dsl.Refine(dsl.Number().Int(), "must be even", func(v any) bool {
		f, _ := v.(float64)
		return int64(f)%2 == 0
	})
	mustParse(t, even, json.Number("4"))
	iss := mustFail(t, even, json.Number("3"))
	if iss[0].Code != llmskema.CodeCustom || iss[0].Message != "must be even" {
		t.Errorf("issue = %+v", iss[0])
	}
	// inner issues surface without running the predicate
	iss = mustFail(t, even, "x")
	if iss[0].Code != llmskema.CodeInvalidType {
		t.Errorf("code = %s", iss[0].Code)
	}
}

func TestWrapperCombination(t *testing.T) {
	s := dsl.Object().Field("nick", dsl.Optional(dsl.Nullable(dsl.String())))
	mustParse(t, s, map[string]any{})
	mustParse(t, s, map[string]any{"nick": nil})
	mustParse(t, s, map[string]any{"nick": "x"})
	mustFail(t, s, map[string]any{"nick": 1})
}

package repair_test

import (
	"testing"

	"github.com/reoring/llmskema/repair"
)

func TestFixQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single quoted object", `{'name': 'test'}`, `{"name": "test"}`},
		{"escaped apostrophe", `{'name': 'test\'s value'}`, `{"name": "test's value"}`},
		{"double quote inside single quoted", `{'say': 'he said "hi"'}`, `{"say": "he said \"hi\""}`},
		{"single quote inside double quoted untouched", `{"name": "it's fine"}`, `{"name": "it's fine"}`},
		{"mixed quoting", `{'a': "x", 'b': 'y'}`, `{"a": "x", "b": "y"}`},
		{"already clean", `{"a": 1}`, `{"a": 1}`},
		{"dangling backslash", `{'a': 'x\`, `{"a": "x\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.FixQuotes(tt.in); got != tt.want {
				t.Errorf("FixQuotes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuoteKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare keys", `{name: "x", age: 1}`, `{"name": "x", "age": 1}`},
		{"dollar and underscore", `{$id: 1, _v: 2}`, `{"$id": 1, "_v": 2}`},
		{"bare value untouched", `{"ok": true}`, `{"ok": true}`},
		{"identifier in string untouched", `{"a": "name: x"}`, `{"a": "name: x"}`},
		{"nested", `{outer: {inner: 1}}`, `{"outer": {"inner": 1}}`},
		{"whitespace before colon", "{name : 1}", `{"name" : 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.QuoteKeys(tt.in); got != tt.want {
				t.Errorf("QuoteKeys(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line comment", "{\"a\": 1 // note\n}", "{\"a\": 1 \n}"},
		{"block comment", `{"a": /* note */ 1}`, `{"a":  1}`},
		{"comment marker in string", `{"url": "http://x"}`, `{"url": "http://x"}`},
		{"unterminated block", `{"a": 1} /* trailing`, `{"a": 1} `},
		{"multiline block", "{\"a\": 1 /* one\ntwo */, \"b\": 2}", `{"a": 1 , "b": 2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.StripComments(tt.in); got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixTrailingCommas(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object", `{"a": 1,}`, `{"a": 1}`},
		{"array", `[1, 2, 3,]`, `[1, 2, 3]`},
		{"with whitespace", "{\"a\": 1,\n}", "{\"a\": 1\n}"},
		{"comma in string untouched", `{"a": "1,}"}`, `{"a": "1,}"}`},
		{"nested", `{"a": [1,],}`, `{"a": [1]}`},
		{"no trailing comma", `{"a": 1}`, `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.FixTrailingCommas(tt.in); got != tt.want {
				t.Errorf("FixTrailingCommas(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCloseBrackets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"truncated array", `[1, 2, 3`, `[1, 2, 3]`},
		{"truncated object", `{"a": 1`, `{"a": 1}`},
		{"nested innermost first", `{"a": [1, 2`, `{"a": [1, 2]}`},
		{"unterminated string closed first", `{"a": "xy`, `{"a": "xy"}`},
		{"balanced untouched", `{"a": [1]}`, `{"a": [1]}`},
		{"bracket in string not counted", `{"a": "["`, `{"a": "["}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.CloseBrackets(tt.in); got != tt.want {
				t.Errorf("CloseBrackets(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBalanceBrackets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spurious closer dropped", `{"a": 1}}`, `{"a": 1}`},
		{"mismatched closer dropped", `[1, 2}`, `[1, 2]`},
		{"missing closer appended", `{"a": [1`, `{"a": [1]}`},
		{"balanced untouched", `[{"a": 1}]`, `[{"a": 1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.BalanceBrackets(tt.in); got != tt.want {
				t.Errorf("BalanceBrackets(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFixSpecialNumbers(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		stringify bool
		want      string
	}{
		{"nan to null", `{"v": NaN}`, false, `{"v": null}`},
		{"infinity to null", `{"v": Infinity}`, false, `{"v": null}`},
		{"negative infinity to null", `{"v": -Infinity}`, false, `{"v": null}`},
		{"undefined to null", `{"v": undefined}`, false, `{"v": null}`},
		{"stringified", `{"v": NaN}`, true, `{"v": "NaN"}`},
		{"token in string untouched", `{"v": "NaN"}`, false, `{"v": "NaN"}`},
		{"longer identifier untouched", `{"v": NaNish}`, false, `{"v": NaNish}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.FixSpecialNumbers(tt.in, tt.stringify); got != tt.want {
				t.Errorf("FixSpecialNumbers(%q, %v) = %q, want %q", tt.in, tt.stringify, got, tt.want)
			}
		})
	}
}

func TestFixNumberFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading dot", `{"v": .5}`, `{"v": 0.5}`},
		{"trailing dot", `{"v": 5.}`, `{"v": 5.0}`},
		{"hex", `{"v": 0x1f}`, `{"v": 31}`},
		{"octal", `{"v": 0o17}`, `{"v": 15}`},
		{"binary", `{"v": 0b101}`, `{"v": 5}`},
		{"negative leading dot", `{"v": -.5}`, `{"v": -0.5}`},
		{"plain number untouched", `{"v": 1.25}`, `{"v": 1.25}`},
		{"number in string untouched", `{"v": ".5"}`, `{"v": ".5"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.FixNumberFormats(tt.in); got != tt.want {
				t.Errorf("FixNumberFormats(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInsertMissingCommas(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"between strings", `["a" "b"]`, `["a", "b"]`},
		{"back to back strings", `["a""b"]`, `["a","b"]`},
		{"between object members", "{\"a\": 1\n\"b\": 2}", "{\"a\": 1\n,\"b\": 2}"},
		{"already correct", `[1, 2]`, `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repair.InsertMissingCommas(tt.in); got != tt.want {
				t.Errorf("InsertMissingCommas(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Package repair turns "almost-JSON" text produced by LLMs (markdown
// fencing, comments, single quotes, trailing commas, truncation) into
// strictly parseable JSON. Each fixer is an independently exported pure
// transformation; Repair composes them in a fixed pipeline and records
// which stages actually changed the text.
package repair

import (
	"bytes"
	"errors"

	j "github.com/goccy/go-json"
)

// Stage identifies one pipeline stage.
type Stage int

const (
	StageMarkdownExtract Stage = iota
	StageTextExtract
	StageStripComments
	StageFixQuotes
	StageQuoteKeys
	StageSpecialNumbers
	StageNumberFormats
	StageTrailingCommas
	StageCloseBrackets
)

var stageTags = [...]string{
	"markdown_extract", "text_extract", "strip_comments", "fix_quotes",
	"quote_keys", "special_numbers", "number_formats", "trailing_commas",
	"close_brackets",
}

func (st Stage) String() string {
	if int(st) < len(stageTags) {
		return stageTags[st]
	}
	return "unknown_stage"
}

// Action records one stage that changed the text, byte-for-byte.
type Action struct {
	Stage       Stage
	Description string
}

// Result is the outcome of a Repair call.
type Result struct {
	OK       bool
	Data     any    // parsed value when OK
	Text     string // final text after all stages
	Repaired bool   // true when any stage changed the original
	Actions  []Action
	Err      error // strict parse error when !OK
}

type options struct {
	disabled         map[Stage]bool
	stringifySpecial bool
	balanceBrackets  bool
}

// Option configures the repair pipeline.
type Option func(*options)

// WithoutStages disables the given pipeline stages.
func WithoutStages(stages ...Stage) Option {
	return func(o *options) {
		for _, st := range stages {
			o.disabled[st] = true
		}
	}
}

// WithStringifiedSpecialNumbers replaces NaN/Infinity/undefined with their
// quoted string form instead of null.
func WithStringifiedSpecialNumbers() Option {
	return func(o *options) { o.stringifySpecial = true }
}

// WithBalancedBrackets makes the final bracket stage also remove spurious
// extra closers, not just append missing ones.
func WithBalancedBrackets() Option {
	return func(o *options) { o.balanceBrackets = true }
}

// Repair runs the extraction and fixer stages in their fixed order, then
// attempts a strict parse of the final text. Order matters: extraction must
// precede the structural fixers because fixers assume a single JSON value,
// special-number and number-format fixing precede trailing-comma removal,
// and bracket closing is last since every prior stage can change the
// unmatched-bracket count. Repair never returns an error by panic or
// otherwise; a failed final parse is a normal OK=false result.
func Repair(text string, opts ...Option) Result {
	cfg := options{disabled: map[Stage]bool{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cur := trimSpace(text)
	var actions []Action

	if !cfg.disabled[StageMarkdownExtract] {
		if out, ok := ExtractMarkdown(cur); ok {
			if out != cur {
				actions = append(actions, Action{StageMarkdownExtract, "extracted fenced code block"})
			}
			cur = out
		}
	}
	if !cfg.disabled[StageTextExtract] {
		if out, ok := ExtractJSON(cur); ok {
			if out != cur {
				actions = append(actions, Action{StageTextExtract, "extracted embedded JSON value"})
			}
			cur = out
		}
	}

	run := func(st Stage, desc string, f func(string) string) {
		if cfg.disabled[st] {
			return
		}
		if out := f(cur); out != cur {
			actions = append(actions, Action{st, desc})
			cur = out
		}
	}

	run(StageStripComments, "removed comments", StripComments)
	run(StageFixQuotes, "converted single-quoted strings", FixQuotes)
	run(StageQuoteKeys, "quoted bare object keys", QuoteKeys)
	run(StageSpecialNumbers, "replaced special number tokens", func(s string) string {
		return FixSpecialNumbers(s, cfg.stringifySpecial)
	})
	run(StageNumberFormats, "normalized number formats", FixNumberFormats)
	run(StageTrailingCommas, "removed trailing commas", FixTrailingCommas)
	if cfg.balanceBrackets {
		run(StageCloseBrackets, "balanced brackets", BalanceBrackets)
	} else {
		run(StageCloseBrackets, "closed unterminated brackets", CloseBrackets)
	}

	res := Result{Text: cur, Repaired: len(actions) > 0, Actions: actions}
	data, err := decodeStrict(cur)
	if err != nil {
		res.Err = err
		return res
	}
	res.OK = true
	res.Data = data
	return res
}

// Parse repairs text and returns the parsed value, or the strict parse
// error when repair could not produce valid JSON.
func Parse(text string, opts ...Option) (any, error) {
	res := Repair(text, opts...)
	if !res.OK {
		return nil, res.Err
	}
	return res.Data, nil
}

// IsValid reports whether text is already strictly valid JSON. No repair is
// attempted.
func IsValid(text string) bool { return j.Valid([]byte(text)) }

func decodeStrict(text string) (any, error) {
	dec := j.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return v, nil
}

var errTrailingData = errors.New("repair: trailing data after JSON value")

func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

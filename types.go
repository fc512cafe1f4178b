package llmskema

// Mode selects how tolerant validation is about the shape of the input.
type Mode int

const (
	// Strict validates with no coercion: exact type and shape matching.
	Strict Mode = iota
	// Lenient enables type coercion, case-insensitive enum matching, and the
	// other affordances needed for messy real-world text.
	Lenient
)

// UnknownPolicy controls how unknown object keys are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (default).
	UnknownStrict                           // Reject unknown keys with an issue.
	UnknownPassthrough                      // Copy unknown keys through unchanged.
)

// ParseOpt bundles options for the strict entry points.
type ParseOpt struct {
	// MaxDepth caps nesting of decoded byte-source input (0 = unlimited).
	MaxDepth int
	// MaxBytes caps the size of byte-source input (0 = unlimited).
	MaxBytes int64
	// FailFast stops validation at the first issue instead of collecting all
	// of them. Off by default; LLM-retry workflows want the complete picture.
	FailFast bool
}

// LLMOpt bundles options for ParseLLM.
type LLMOpt struct {
	// NoCoerce disables lenient type coercion (string->number, "yes"->true, ...).
	NoCoerce bool
	// NoDefaults disables default substitution for absent values.
	NoDefaults bool
	// FailFast stops validation at the first issue.
	FailFast bool
}

// missingType is the sentinel for a value that was absent from the input, as
// opposed to present-and-null. Object validation passes it to field schemas
// so Optional/Default wrappers can react to genuine absence.
type missingType struct{}

// Missing is the absence sentinel. Comparable, so `v == Missing` works.
var Missing missingType

// IsMissing reports whether v is the absence sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missingType)
	return ok
}

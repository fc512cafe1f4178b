package llmskema

// issueSink is the shared mutable issue collection owned by a root context.
// Child contexts hold the same sink, so one "has any issues" check works at
// any level without walking a parent chain.
type issueSink struct {
	issues Issues
}

// ParseContext is the per-call state threaded through a recursive validate
// pass: the structural path, the operating mode, and a handle on the issue
// collection shared with every ancestor up to the root.
//
// A ParseContext must not be shared across concurrent top-level calls; each
// call constructs its own via NewParseContext.
type ParseContext struct {
	mode     Mode
	path     Path
	sink     *issueSink
	failFast bool
	coerce   bool
	defaults bool
}

// NewParseContext returns a root context for one top-level validate call.
func NewParseContext(mode Mode) *ParseContext {
	return &ParseContext{
		mode:     mode,
		sink:     &issueSink{},
		coerce:   mode == Lenient,
		defaults: true,
	}
}

// Mode reports the active validation mode.
func (pc *ParseContext) Mode() Mode { return pc.mode }

// Coerce reports whether lenient type coercion is enabled.
func (pc *ParseContext) Coerce() bool { return pc.mode == Lenient && pc.coerce }

// ApplyDefaults reports whether Default wrappers substitute on absence.
func (pc *ParseContext) ApplyDefaults() bool { return pc.defaults }

// FailFast reports whether validation should stop at the first issue.
func (pc *ParseContext) FailFast() bool { return pc.failFast }

// Path returns the current structural path. Callers must not mutate it.
func (pc *ParseContext) Path() Path { return pc.path }

// Child derives a context one segment deeper. The child shares the
// receiver's issue sink, so anything it reports is visible at the root.
func (pc *ParseContext) Child(seg any) *ParseContext {
	c := *pc
	c.path = pc.path.child(seg)
	return &c
}

// Branch derives a context at the same path with a fresh, isolated issue
// collection. Used to trial one union/intersection branch without polluting
// the parent on failure; adopt the branch's issues with Adopt if they turn
// out to be relevant.
func (pc *ParseContext) Branch() *ParseContext {
	c := *pc
	c.sink = &issueSink{}
	return &c
}

// Report appends an issue. A nil path is stamped with the context's current
// path; an explicit path (set by composite validators rebasing child issues)
// is kept as-is.
func (pc *ParseContext) Report(it Issue) {
	if it.Path == nil {
		it.Path = make(Path, len(pc.path))
		copy(it.Path, pc.path)
	}
	pc.sink.issues = append(pc.sink.issues, it)
}

// HasIssues reports whether any issue has been collected on this context's
// sink (shared with ancestors, isolated for branches).
func (pc *ParseContext) HasIssues() bool { return len(pc.sink.issues) > 0 }

// Issues returns the collected issues in the order they were raised.
func (pc *ParseContext) Issues() Issues { return pc.sink.issues }

// Adopt copies every issue collected on a Branch context into the receiver.
func (pc *ParseContext) Adopt(b *ParseContext) {
	pc.sink.issues = append(pc.sink.issues, b.sink.issues...)
}

// Package dsl provides the schema factories and builders: primitives
// (String, Number, Bool, Literal, Enum), composites (Object, Array, Tuple,
// Record, Union, DiscriminatedUnion, Intersection), and the Optional /
// Nullable / Default wrappers.
//
// Builders are persistent: every chainable configuration call returns a new
// schema node and never mutates the receiver, so a base schema can be
// shared across derived schemas and across goroutines.
//
//	base := dsl.String()
//	short := base.Max(8)   // base is unaffected
//	email := base.Email()  // so is this
package dsl

// Package ir provides the intermediate representation (IR) for XML documents.
//
// The IR is a small tree of nodes: elements with ordered attributes and
// children, plus text, comment and processing-instruction leaves. Document
// order is preserved everywhere, which is what makes the patch layer's
// positional edits (and their idempotence) well defined.
//
// Namespaces are carried as resolved URIs in Name.Space. The IR itself never
// deals in prefixes; mapping URIs back to prefixes is the encoder's job and
// is configured explicitly there.
package ir

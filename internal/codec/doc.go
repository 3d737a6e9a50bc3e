// Package codec converts between board documents and types.Board.
//
// Decode treats its input as untrusted: the text is checked against the
// embedded JSON Schema before it is unmarshaled, and any mismatch is
// reported as a *DecodeError naming the offending field. Encode produces
// the canonical document text with two-space indentation.
package codec

// Package transform implements the pure board update operations.
//
// Every function computes a new state from an old one and never writes into
// the slices it was given. When an operation is rejected (blank title, empty
// batch) or refers to something that does not exist (stale list id, index
// out of range) the input is returned unchanged. For slice results that is
// the identical slice, so callers can detect a no-op with Same.
//
// Functions operating on lists take and return []types.List. Operations that
// span the archive take and return a whole types.Board.
package transform

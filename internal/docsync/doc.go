// Package docsync keeps a live editing session and the authoritative
// board document in step.
//
// The two sides talk through a Conn. A Session asks for the document
// (load), decodes the reply (update), and from then on sends the whole
// board after every change (edit). The Authority answers load requests
// and persists edits, ignoring the first edit after a load, which is the
// session echoing back what it just received, and skipping writes that
// would not change the persisted text.
package docsync

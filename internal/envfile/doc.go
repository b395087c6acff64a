// Package envfile implements an order-preserving, comment-preserving
// in-memory form of a .env document.
//
// A Document is an arena of entries, each either a KEY=VALUE
// assignment or a pass-through line (full-line comment, blank line, or
// malformed input kept verbatim), plus a key index for O(1) lookup.
// Parsing never fails: anything that is not a well-formed assignment
// is carried through untouched.
//
// Round-trip guarantee: a document parsed and serialized without
// mutation reproduces its input byte for byte, because unmodified
// entries remember their source line. Mutated and new entries are
// formatted with a fixed quoting rule (single quotes when the value
// contains whitespace, '#', '$', or is empty), so files written by
// this package always re-read to the same document.
//
// Saves go through a temp file and rename in the same directory, so a
// concurrent reader never observes a partially written file.
package envfile

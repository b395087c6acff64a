// Package audit provides audit trail logging for koru operations.
//
// Profile operations (set, delete, copy, use, merge, export, seal) are
// recorded in a log under the profile root, which helps answer "when
// did this profile change and how" without inspecting file timestamps.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<root>/audit.jsonl
//
// Each entry contains:
//   - A unique entry ID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation name
//   - Operation-specific details (category, profile, key names)
//
// Key values are never written to the log; only key names.
//
// # Usage
//
//	audit.Log(root, audit.Entry{
//	    Operation: "set",
//	    Category:  "llm",
//	    Profile:   "groq",
//	    Keys:      []string{"LLM_MODEL"},
//	})
//
// Logging is best-effort: a failed append never fails the operation.
package audit

// Package appdefaults persists per-application default profile
// selections.
//
// Each application gets one record at <root>/defaults/<app>.conf with
// category=profile lines. Records are independent of profile storage:
// binding a profile does not require it to exist yet, and deleting a
// profile does not touch bindings.
//
// For merging, an app with no record simply contributes no selections;
// only explicit display of a nonexistent app is an error.
package appdefaults

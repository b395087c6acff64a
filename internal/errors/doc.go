// Package errors provides typed error values for the koru application.
//
// Typed errors allow callers to handle specific conditions
// programmatically with errors.Is() and errors.As() rather than string
// matching. Each type carries the payload the CLI layer needs to print
// a precise, actionable message.
//
// # Error Kinds
//
//   - StorageError: I/O failure reading or writing a profile or record
//   - NotFoundError: category/profile/key/app absent, with the Entity
//     field identifying which one
//   - ValidationError: required keys missing on a validated write,
//     with the exact missing key list
//   - MergeError: a merge selection refers to a nonexistent profile
//
// # Usage
//
// Return errors from internal packages:
//
//	if !exists {
//	    return "", &korerrors.NotFoundError{Entity: korerrors.EntityProfile, Category: cat, Profile: name}
//	}
//
// Handle errors in the CLI layer:
//
//	val, err := mgr.Get(cat, prof, key)
//	if errors.Is(err, korerrors.ErrProfileNotFound) {
//	    // Show user-friendly message
//	}
//
// Extract payloads:
//
//	var verr *korerrors.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println("missing:", strings.Join(verr.Missing, ", "))
//	}
package errors

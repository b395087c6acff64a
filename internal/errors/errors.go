package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is checks. The typed errors below match these
// through their Is methods, so callers can branch on the condition
// without caring about the payload.
var (
	// ErrCategoryNotFound indicates the category directory does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProfileNotFound indicates the profile file does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrKeyNotFound indicates the key is absent from the profile.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAppNotFound indicates no defaults record exists for the app.
	ErrAppNotFound = errors.New("app not found")
)

// Entity identifies which kind of object a NotFoundError refers to.
type Entity string

const (
	EntityCategory Entity = "category"
	EntityProfile  Entity = "profile"
	EntityKey      Entity = "key"
	EntityApp      Entity = "app"
)

// NotFoundError reports a missing category, profile, key, or app.
// The Entity field distinguishes which of the four was missing.
type NotFoundError struct {
	Entity   Entity
	Category string
	Profile  string
	Key      string
	App      string
}

func (e *NotFoundError) Error() string {
	switch e.Entity {
	case EntityCategory:
		return fmt.Sprintf("category not found: %s", e.Category)
	case EntityProfile:
		return fmt.Sprintf("profile not found: %s/%s", e.Category, e.Profile)
	case EntityKey:
		return fmt.Sprintf("key not found: %s in %s/%s", e.Key, e.Category, e.Profile)
	case EntityApp:
		return fmt.Sprintf("app not found: %s", e.App)
	}
	return "not found"
}

// Is lets errors.Is match the sentinel for the missing entity.
func (e *NotFoundError) Is(target error) bool {
	switch e.Entity {
	case EntityCategory:
		return target == ErrCategoryNotFound
	case EntityProfile:
		return target == ErrProfileNotFound
	case EntityKey:
		return target == ErrKeyNotFound
	case EntityApp:
		return target == ErrAppNotFound
	}
	return false
}

// StorageError reports an I/O failure while reading or writing a
// profile, defaults record, or category declaration file.
type StorageError struct {
	Op   string // "read", "write", "delete", "list"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError reports required keys that were missing or empty on a
// validated write. The write is not committed when this is returned.
type ValidationError struct {
	Category string
	Profile  string
	Missing  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile %s/%s missing required keys: %s",
		e.Category, e.Profile, strings.Join(e.Missing, ", "))
}

// MergeError reports a merge selection that refers to a nonexistent
// profile. It wraps the underlying NotFoundError.
type MergeError struct {
	Category string
	Profile  string
	Err      error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("cannot merge %s/%s: %v", e.Category, e.Profile, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

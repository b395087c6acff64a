// Package configs resolves the koru profile root and provides TOML
// persistence helpers.
//
// The profile root holds one directory per category, a defaults/
// directory for per-app bindings, and categories.toml for category
// declarations. Resolution order for the root is the --home flag, the
// KORU_HOME environment variable, then ~/.koru. The resolved root is
// always passed explicitly to the packages that need it.
package configs

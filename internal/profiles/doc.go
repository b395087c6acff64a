// Package profiles implements the profile repository and the merge
// engine.
//
// A repository is a directory tree: one directory per category, one
// .env file per profile, plus categories.toml holding required-key
// declarations. The Manager owns all on-disk state; the merge engine
// only reads it and computes a transient mapping owned by the caller.
//
// # Layout
//
//	<root>/
//	  categories.toml
//	  llm/
//	    groq.env
//	    openrouter.env
//	  devices/
//	    rpi3.env
//	  defaults/          (reserved for app bindings, see appdefaults)
//
// Concurrent invocations against the same profile race; the last
// writer wins at the file level. Individual saves are atomic (temp
// file plus rename), so a losing write never leaves a torn file.
package profiles

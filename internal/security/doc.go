// Package security provides secret masking for display and symmetric
// sealing of profile values.
//
// Masking is a display-layer concern: the profile store always hands
// out unmasked mappings, and MaskMap is applied only where values are
// printed or exported with masking requested.
//
// Sealing replaces a value with an opaque "ENC:" token using
// nacl/secretbox and a 32-byte key stored base64-encoded next to the
// profile root. The profile store never interprets the prefix; sealed
// values travel through set, get, merge, and export like any other
// string.
package security

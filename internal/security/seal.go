package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

// SealedPrefix marks a value as sealed ciphertext. The profile store
// treats such values as opaque strings; only this layer interprets
// the prefix.
const SealedPrefix = "ENC:"

// KeyFileName is the default key file name under the profile root.
const KeyFileName = ".koru.key"

// GenerateKey creates a new random 32-byte secretbox key.
func GenerateKey() (*[32]byte, error) {
	var key [32]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return &key, nil
}

// SaveKey writes a key to path, base64-encoded, readable only by the
// owner.
func SaveKey(path string, key *[32]byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key[:])
	if err := os.WriteFile(path, []byte(encoded+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// LoadKey reads a base64-encoded key from path.
func LoadKey(path string) (*[32]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("key file %s is not valid base64: %w", path, err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("key file %s holds %d bytes, want 32", path, len(raw))
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

// LoadOrCreateKey loads the key at path, generating and saving a new
// one if the file does not exist. The second return reports whether a
// key was created.
func LoadOrCreateKey(path string) (*[32]byte, bool, error) {
	if _, err := os.Stat(path); err == nil {
		key, err := LoadKey(path)
		return key, false, err
	}
	key, err := GenerateKey()
	if err != nil {
		return nil, false, err
	}
	if err := SaveKey(path, key); err != nil {
		return nil, false, err
	}
	return key, true, nil
}

// IsSealed reports whether a value is sealed ciphertext.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, SealedPrefix)
}

// SealValue encrypts a plaintext value into an opaque ENC: token.
// The random nonce is prepended to the ciphertext before encoding.
func SealValue(value string, key *[32]byte) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(value), &nonce, key)
	return SealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenValue decrypts an ENC: token back to plaintext.
func OpenValue(token string, key *[32]byte) (string, error) {
	if !IsSealed(token) {
		return "", fmt.Errorf("value is not sealed")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, SealedPrefix))
	if err != nil {
		return "", fmt.Errorf("sealed value is not valid base64: %w", err)
	}
	if len(raw) < 24 {
		return "", fmt.Errorf("sealed value is too short")
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, key)
	if !ok {
		return "", fmt.Errorf("failed to decrypt value: wrong key or corrupt data")
	}
	return string(plain), nil
}

// SealMap returns a copy of data with values sealed. With
// onlySensitive, values under non-sensitive keys pass through
// unchanged. Already-sealed values are never double-sealed.
func SealMap(data map[string]string, key *[32]byte, onlySensitive bool) (map[string]string, error) {
	result := make(map[string]string, len(data))
	for k, v := range data {
		if IsSealed(v) || (onlySensitive && !IsSensitiveKey(k)) {
			result[k] = v
			continue
		}
		sealed, err := SealValue(v, key)
		if err != nil {
			return nil, err
		}
		result[k] = sealed
	}
	return result, nil
}

// OpenMap returns a copy of data with sealed values decrypted.
// Unsealed values pass through unchanged.
func OpenMap(data map[string]string, key *[32]byte) (map[string]string, error) {
	result := make(map[string]string, len(data))
	for k, v := range data {
		if !IsSealed(v) {
			result[k] = v
			continue
		}
		plain, err := OpenValue(v, key)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", k, err)
		}
		result[k] = plain
	}
	return result, nil
}

package security

import "regexp"

// sensitivePattern matches key names that likely hold secrets.
var sensitivePattern = regexp.MustCompile(
	`(?i)(PASSWORD|PASSWD|PASS|SECRET|TOKEN|API_?KEY|PRIVATE|ACCESS_KEY|ACCESS_TOKEN|AUTHORIZATION|AUTH|CREDENTIALS?)`)

// DefaultVisibleChars is how many leading characters a masked value
// keeps for recognizability.
const DefaultVisibleChars = 4

// IsSensitiveKey reports whether a key name likely holds a secret.
func IsSensitiveKey(key string) bool {
	return sensitivePattern.MatchString(key)
}

// MaskValue masks a value, keeping only the first visible characters.
// Values no longer than the visible window are fully masked. The
// window counts runes, so multi-byte values are never cut mid-rune.
func MaskValue(value string, visible int) string {
	runes := []rune(value)
	if len(runes) <= visible {
		return "***"
	}
	return string(runes[:visible]) + "***"
}

// MaskMap returns a copy of data with sensitive values masked. The
// input is not modified; masking belongs to the display layer only.
func MaskMap(data map[string]string) map[string]string {
	result := make(map[string]string, len(data))
	for key, value := range data {
		if IsSensitiveKey(key) {
			result[key] = MaskValue(value, DefaultVisibleChars)
		} else {
			result[key] = value
		}
	}
	return result
}

package auth

import (
	"fmt"
	"os"
	"strings"
)

// DefaultWeakPasswords contains common weak passwords that must be
// rejected. Registration falls back to this list when the security config
// does not supply one.
var DefaultWeakPasswords = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"test123",
	"default",
	"root",
}

// minSecretLength is the minimum required length for the JWT signing secret.
const minSecretLength = 32

// ValidateJWTSecret validates the JWT signing secret from the environment
// at application startup. It must be called before the server starts so a
// missing or guessable secret fails fast instead of issuing forgeable
// tokens.
//
// Requirements:
//   - the variable must not be empty
//   - the secret must be at least 32 characters
//   - the secret must not be a simple numeric or keyboard pattern
//   - the secret must not be based on a common weak password
//
// The returned error names the variable but never echoes its value.
func ValidateJWTSecret(envVar string) error {
	secret := os.Getenv(envVar)

	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: %s must not be empty", envVar)
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: %s must be at least %d characters (current length: %d)",
			envVar, minSecretLength, len(secret))
	}
	if isSimpleNumericPattern(secret) {
		return fmt.Errorf("jwt secret validation failed: %s must not be a simple numeric pattern", envVar)
	}
	if isKeyboardPattern(secret) {
		return fmt.Errorf("jwt secret validation failed: %s must not contain a keyboard pattern", envVar)
	}

	lowerSecret := strings.ToLower(secret)
	for _, weak := range DefaultWeakPasswords {
		if strings.HasPrefix(lowerSecret, weak) {
			return fmt.Errorf("jwt secret validation failed: %s must not be based on common weak passwords", envVar)
		}
	}

	return nil
}

// isSimpleNumericPattern checks for repeated characters and plain
// ascending or descending digit runs, like "111111..." or "123456...".
func isSimpleNumericPattern(s string) bool {
	if isRepeatedChar(s) {
		return true
	}

	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	isAscending := true
	isDescending := true
	for i := 1; i < len(s); i++ {
		diff := int(s[i]) - int(s[i-1])
		// Ascending wraps 9->0, descending wraps 0->9.
		if diff != 1 && diff != -9 {
			isAscending = false
		}
		if diff != -1 && diff != 9 {
			isDescending = false
		}
	}
	return isAscending || isDescending
}

// isRepeatedChar checks if the string is a single repeated character.
func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}
	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"qwerty",
	"asdfgh",
	"zxcvb",
}

func isKeyboardPattern(s string) bool {
	lower := strings.ToLower(s)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
		if strings.Contains(lower, reverse(pattern)) {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

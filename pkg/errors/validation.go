package errors

import (
	"strings"
	"unicode"
)

// ValidateBoardName validates a user-supplied keyboard name.
// Names end up in file names and download URLs, so the rules are
// intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "keyboard name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "keyboard name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "keyboard name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "keyboard name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

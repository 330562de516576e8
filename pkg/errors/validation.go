package errors

import (
	"strings"
	"unicode"
)

// ValidatePlayerName validates an imported player name for safety before it
// is used in storage keys and export file names.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidRoster, "player name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidRoster, "player name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoster, "player name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidRoster, "player name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateJerseyNumber validates an imported jersey number. Numbers are kept
// as strings ("00" and "0" are distinct on a garment) but must be short and
// digit-only.
func ValidateJerseyNumber(number string) error {
	if number == "" {
		return New(ErrCodeInvalidRoster, "jersey number cannot be empty")
	}
	if len(number) > 3 {
		return New(ErrCodeInvalidRoster, "jersey number too long (max 3 digits)")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidRoster, "jersey number must be digits only: %q", number)
		}
	}
	return nil
}

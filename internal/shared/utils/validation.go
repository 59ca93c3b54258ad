package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxPathLength    = 4096
	MaxNameLength    = 255
	MaxPatternLength = 256
	MaxIDLength      = 128
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// CommandIDPattern allows alphanumeric, hyphens, underscores, and dots
	// (for group.command format)
	CommandIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidatePath validates a path parameter before resolution
func ValidatePath(path, fieldName string, required bool) error {
	return ValidateString(path, fieldName, 1, MaxPathLength, required)
}

// ValidateName validates a single path component: no separators, no NUL,
// no "." / ".." aliases
func ValidateName(name, fieldName string) error {
	if err := ValidateString(name, fieldName, 1, MaxNameLength, true); err != nil {
		return err
	}
	if strings.ContainsRune(name, '/') {
		return fmt.Errorf("%s must not contain path separators", fieldName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%s must not be a relative path alias", fieldName)
	}
	return nil
}

// ValidatePattern validates a search pattern
func ValidatePattern(pattern string) error {
	return ValidateString(pattern, "pattern", 1, MaxPatternLength, true)
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateCommandID validates a command ID field (allows dots for
// group.command format)
func ValidateCommandID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !CommandIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxTabSize bounds configured and requested tab widths.
const MaxTabSize = 64

var extensionRegex = regexp.MustCompile(`^[a-z0-9_+\-]+$`)

// TabSize checks that a tab width is within 1..MaxTabSize.
func TabSize(name string, value int) error {
	if err := PositiveInt(name, value); err != nil {
		return err
	}
	if value > MaxTabSize {
		return fmt.Errorf("%s must be at most %d", name, MaxTabSize)
	}
	return nil
}

// Extension validates a normalized (lower-case, no leading dot) extension.
// Only the last extension segment is ever looked up, so dots are rejected.
func Extension(ext string) error {
	if strings.ContainsAny(ext, `/\`) {
		return fmt.Errorf("invalid extension %q: must not contain path separators", ext)
	}
	if !extensionRegex.MatchString(ext) {
		return fmt.Errorf("invalid extension %q", ext)
	}
	return nil
}

// PositiveInt checks that an integer value is greater than zero
func PositiveInt(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

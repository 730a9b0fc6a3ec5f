package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// wallNameRegex matches the short segment identifiers used in plan files,
// e.g. "N1", "W3", "island".
var wallNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateWallName validates a wall segment name from a plan file.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
//   - Letters, digits, underscore and dash only, starting with a letter
func ValidateWallName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidWall, "wall name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidWall, "wall name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWall, "wall name contains invalid control characters")
		}
	}

	if !wallNameRegex.MatchString(name) {
		return New(ErrCodeInvalidWall, "invalid wall name: %q", name)
	}

	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidatePlanFilename validates a plan filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidatePlanFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPlan, "plan filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPlan, "plan filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPlan, "plan filename cannot be a hidden file")
	}

	return nil
}

// ValidateScale validates a rendering scale factor (units per inch).
// Scales are clamped conceptually to a sane drafting range; values outside
// it are almost always flag typos.
func ValidateScale(scale float64) error {
	if scale <= 0 {
		return New(ErrCodeInvalidScale, "scale must be positive, got %g", scale)
	}
	if scale > 100 {
		return New(ErrCodeInvalidScale, "scale too large (max 100 units/inch), got %g", scale)
	}
	return nil
}

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLabelLength bounds node labels so they stay usable as table cells and DOT ids.
const maxLabelLength = 64

// labelRegex matches labels usable in layout expressions and window bindings.
var labelRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateLabel validates a node label.
//
// Labels must start with a letter or underscore and may contain letters,
// digits, '_', '.' and '-'. The empty label is valid and means "unnamed".
func ValidateLabel(label string) error {
	if label == "" {
		return nil
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	if !labelRegex.MatchString(label) {
		return New(ErrCodeInvalidInput, "invalid label: %q", label)
	}
	return nil
}

// MaxGeometry bounds explicit coordinates and extents. With sizes bounded the
// same way, size*extent products stay below 2^60.
const MaxGeometry = 1 << 30

// ValidateExtent validates an explicit width or height.
// Coordinates may be negative on multi-monitor setups; extents may not.
func ValidateExtent(name string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidGeometry, "%s must not be negative, got %d", name, v)
	}
	if v > MaxGeometry {
		return New(ErrCodeInvalidGeometry, "%s %d exceeds %d", name, v, MaxGeometry)
	}
	return nil
}

// ValidateCoordinate validates an explicit x or y.
func ValidateCoordinate(name string, v int) error {
	if v < -MaxGeometry || v > MaxGeometry {
		return New(ErrCodeInvalidGeometry, "%s %d is outside [-%d, %d]", name, v, MaxGeometry, MaxGeometry)
	}
	return nil
}

// selectorKinds lists the prefixes accepted by ValidateSelector.
var selectorKinds = []string{"pid:", "title:", "id:"}

// ValidateSelector validates a window selector string.
//
// Accepted forms:
//   - "click"
//   - "pid:<n>", "id:<handle>", "title:<text>"
//   - a bare number (handle or pid)
func ValidateSelector(sel string) error {
	if sel == "" {
		return New(ErrCodeInvalidInput, "window selector cannot be empty")
	}

	for _, r := range sel {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "window selector contains invalid control characters")
		}
	}

	if sel == "click" {
		return nil
	}

	for _, prefix := range selectorKinds {
		if strings.HasPrefix(sel, prefix) {
			if strings.TrimPrefix(sel, prefix) == "" {
				return New(ErrCodeInvalidInput, "window selector %q has an empty value", sel)
			}
			return nil
		}
	}

	lower := strings.ToLower(sel)
	digits, hex := strings.CutPrefix(lower, "0x")
	if digits == "" {
		return New(ErrCodeInvalidInput, "unknown window selector: %q", sel)
	}
	for _, r := range digits {
		if unicode.IsDigit(r) || (hex && r >= 'a' && r <= 'f') {
			continue
		}
		return New(ErrCodeInvalidInput, "unknown window selector: %q", sel)
	}
	return nil
}

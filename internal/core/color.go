package core

import "strings"

// Color is an opaque color token for a screen cell.
// Tokens are hex strings ("#RRGGBB") so they can be handed to lipgloss
// directly; the empty token means the terminal default.
type Color string

// ColorDefault leaves the terminal's own color in place.
const ColorDefault Color = ""

// IsDefault reports whether the color is the terminal default.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// Normalize returns the token upper-cased with a leading '#'.
// Non-hex tokens are returned unchanged.
func (c Color) Normalize() Color {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return ColorDefault
	}
	if !strings.HasPrefix(s, "#") {
		if !isHex(s) {
			return c
		}
		s = "#" + s
	}
	return Color(strings.ToUpper(s))
}

// isHex reports whether s is a 6-digit hex string.
func isHex(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

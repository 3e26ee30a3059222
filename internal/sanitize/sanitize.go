// Package sanitize turns raw contact field text into display-safe strings.
package sanitize

import (
	"strings"
	"unicode"
)

var displayReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeForDisplay maps & < > " ' to their markup-safe escapes.
// Applying it twice double-escapes.
func EscapeForDisplay(text string) string {
	if text == "" {
		return ""
	}
	return displayReplacer.Replace(text)
}

// NormalizePhone trims the value and drops whitespace, hyphens, parentheses,
// and periods.
func NormalizePhone(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '-', '(', ')', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ForTerminal strips control characters so server-provided text cannot carry
// escape sequences into the TUI. Line breaks and tabs become single spaces.
func ForTerminal(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

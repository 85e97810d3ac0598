package textutil

import (
	"strings"

	"golang.org/x/text/width"
)

// fieldSeparators are the column separators recognized in pasted rows.
const fieldSeparators = "\t,"

// NormalizeIdentifier trims whitespace, drops a UTF-8 byte order mark and folds
// full-width characters (for example "１２３") to their narrow forms.
func NormalizeIdentifier(value string) string {
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.TrimSpace(width.Narrow.String(value))
}

// IsDigits reports whether value is non-empty and made of ASCII digits only.
func IsDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// HasSeparator reports whether line contains a recognized column separator.
func HasSeparator(line string) bool {
	return strings.ContainsAny(line, fieldSeparators)
}

// FirstField returns the first non-empty field of line when it contains a
// column separator, otherwise the trimmed line itself.
func FirstField(line string) string {
	line = strings.TrimSpace(line)
	if !HasSeparator(line) {
		return line
	}
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(fieldSeparators, r)
	})
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			return trimmed
		}
	}
	return line
}

// Clip shortens value to at most limit runes, appending "..." when cut.
func Clip(value string, limit int) string {
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}

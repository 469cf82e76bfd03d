// backend/src/security/validation/sanitizers.go
package validation

import (
	"strings"
	"unicode"
)

// StripUnprintable removes non-printable characters from spreadsheet cell
// text, allowing common whitespace like space, tab, newline, and carriage
// return. Exported workbooks occasionally carry stray control bytes.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// CleanCellText normalizes a cell value for downstream processing: strip
// control bytes, then trim surrounding whitespace.
func CleanCellText(s string) string {
	return strings.TrimSpace(StripUnprintable(s))
}

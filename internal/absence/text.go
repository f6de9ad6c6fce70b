package absence

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText NFC-normalizes free text and trims surrounding whitespace,
// so that visually identical notes and labels compare equal.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

package models

import (
	"strings"

	"golang.org/x/text/width"
)

// cleanIdentifier trims codes typed through an IME and folds full-width characters so
// "ＡＢＣ１２３" and "ABC123" are stored identically.
func cleanIdentifier(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

func cleanCode(s string) string {
	return strings.ToUpper(cleanIdentifier(s))
}

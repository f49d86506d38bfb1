package texting

import (
	"strings"
	"unicode"
)

// Words folds text and splits it on every rune that is neither a letter nor a digit.
func Words(text string) []string {
	return strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

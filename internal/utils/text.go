package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText trims input and drops NUL bytes and invalid UTF-8 sequences, neither of
// which Postgres accepts in text columns.
func CleanText(input string) string {
	if strings.Contains(input, "\x00") || !utf8.ValidString(input) {
		input = strings.ToValidUTF8(input, "")
		input = strings.ReplaceAll(input, "\x00", "")
	}
	return strings.TrimSpace(input)
}

// ExceedsLength counts characters, not bytes.
func ExceedsLength(input string, limit int) bool {
	return utf8.RuneCountInString(input) > limit
}

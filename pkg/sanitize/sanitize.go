// Package sanitize strips markup and bounds the length of untrusted free text
// before it is persisted or echoed back.
package sanitize

import (
	"regexp"
	"strings"
)

// tagPattern matches anything between '<' and the next '>'. This is a single
// regex pass, not an HTML parser: malformed or nested tags may be only
// partially stripped, which is acceptable for forum text.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Clean trims whitespace, truncates to maxLength characters and removes
// markup tags. It returns "" for empty input. The truncation counts runes,
// not bytes, so multi-byte text (e.g. Telugu) is not cut mid-character.
func Clean(text string, maxLength int) string {
	if text == "" || maxLength <= 0 {
		return ""
	}

	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxLength {
		text = string(runes[:maxLength])
	}

	return tagPattern.ReplaceAllString(text, "")
}

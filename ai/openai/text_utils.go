package openai

import "unicode/utf8"

// truncateRunes cuts s to at most max runes without splitting a rune.
// A non-positive max leaves s unchanged.
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}

// utils/avatar.go
package utils

import "strings"

// ProcessAvatar derives the avatar string shown next to a display name.
// Multi-word names become initials ("Ada Lovelace" → "AL"); single-word names
// keep their first two characters ("ada" → "ad", "a" → "a").
func ProcessAvatar(displayName string) string {
	trimmed := strings.TrimSpace(displayName)
	if strings.ContainsAny(trimmed, " \t\n") {
		var b strings.Builder
		for _, word := range strings.Fields(trimmed) {
			r := []rune(word)
			b.WriteRune(r[0])
		}
		return b.String()
	}
	r := []rune(trimmed)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}
